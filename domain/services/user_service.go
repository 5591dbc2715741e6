package services

import (
	"context"

	"taskmaster/domain/dto"
	"taskmaster/pkg/utils"
)

type UserService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	// Me reads the directory; NotFound when the token outlived its user.
	Me(ctx context.Context, userID string) (*dto.PublicUser, error)
	// VerifyToken does not consult the user directory.
	VerifyToken(token string) (*utils.UserContext, error)
}
