package middleware

import (
	"github.com/gofiber/fiber/v2"

	"taskmaster/domain/services"
	"taskmaster/pkg/logger"
	"taskmaster/pkg/utils"
)

// Protected verifies the bearer token and stores the identity in fiber locals.
// The identity is trusted as issued; the user directory is not consulted.
func Protected(userService services.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()

		token := utils.ExtractTokenFromHeader(c.Get(fiber.HeaderAuthorization))
		userCtx, err := userService.VerifyToken(token)
		if err != nil {
			logger.WarnContext(ctx, "Token validation failed", "path", c.Path(), "error", err)
			return utils.HandleError(c, err)
		}

		utils.SetUserInContext(c, userCtx)
		c.SetUserContext(logger.ContextWithUserID(ctx, userCtx.ID))

		return c.Next()
	}
}
