package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func CorsMiddleware(allowOrigins string) fiber.Handler {
	if allowOrigins == "" {
		allowOrigins = "*"
	}
	return cors.New(cors.Config{
		AllowOrigins: allowOrigins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS,HEAD",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization,X-Request-ID",
		// credentials are only allowed with an explicit origin list
		AllowCredentials: allowOrigins != "*",
	})
}
