package serviceimpl

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"taskmaster/domain/dto"
	"taskmaster/domain/models"
	"taskmaster/domain/repositories"
	"taskmaster/domain/services"
	"taskmaster/pkg/apperror"
	"taskmaster/pkg/logger"
	"taskmaster/pkg/utils"
)

const (
	msgInvalidCredentials = "Invalid credentials"
	msgEmailTaken         = "User with this email already exists"
)

type UserServiceImpl struct {
	userRepo   repositories.UserRepository
	tokens     *utils.TokenManager
	bcryptCost int
	now        Clock
}

func NewUserService(userRepo repositories.UserRepository, tokens *utils.TokenManager, bcryptCost int, now Clock) services.UserService {
	return &UserServiceImpl{
		userRepo:   userRepo,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		now:        now,
	}
}

func (s *UserServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, apperror.Internal(err)
	}
	if existing != nil {
		logger.WarnContext(ctx, "Email already exists", "email", req.Email)
		return nil, apperror.Conflict(msgEmailTaken)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to hash password", "error", err)
		return nil, apperror.Internal(err)
	}

	user := &models.User{
		ID:        uuid.NewString(),
		Email:     req.Email,
		Password:  string(hashedPassword),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		CreatedAt: s.now(),
	}

	// the lookup above races with concurrent registrations, the store has the final say
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			logger.WarnContext(ctx, "Email already exists", "email", req.Email)
			return nil, apperror.Conflict(msgEmailTaken)
		}
		logger.ErrorContext(ctx, "Failed to create user", "error", err)
		return nil, apperror.Internal(err)
	}

	token, err := s.tokens.Generate(user.ID, user.Email)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to generate JWT", "user_id", user.ID, "error", err)
		return nil, apperror.Internal(err)
	}

	logger.InfoContext(ctx, "User registered", "user_id", user.ID, "email", user.Email)

	return &dto.AuthResponse{
		Message: "User registered successfully",
		Token:   token,
		User:    *dto.UserToPublicUser(user),
	}, nil
}

func (s *UserServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			logger.WarnContext(ctx, "Login failed - email not found", "email", req.Email)
			return nil, apperror.Auth(msgInvalidCredentials)
		}
		return nil, apperror.Internal(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		logger.WarnContext(ctx, "Login failed - invalid password", "user_id", user.ID)
		return nil, apperror.Auth(msgInvalidCredentials)
	}

	token, err := s.tokens.Generate(user.ID, user.Email)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to generate JWT", "user_id", user.ID, "error", err)
		return nil, apperror.Internal(err)
	}

	logger.InfoContext(ctx, "User logged in", "user_id", user.ID)

	return &dto.AuthResponse{
		Message: "Login successful",
		Token:   token,
		User:    *dto.UserToPublicUser(user),
	}, nil
}

func (s *UserServiceImpl) Me(ctx context.Context, userID string) (*dto.PublicUser, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, repoError(err, msgUserNotFound)
	}
	return dto.UserToPublicUser(user), nil
}

func (s *UserServiceImpl) VerifyToken(token string) (*utils.UserContext, error) {
	user, err := s.tokens.Validate(token)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrMissingToken):
			return nil, apperror.Auth("Access token is required")
		case errors.Is(err, utils.ErrExpiredToken):
			return nil, apperror.Auth("Token has expired")
		default:
			return nil, apperror.Auth("Invalid token")
		}
	}
	return user, nil
}
