package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"tienda/internal/domain"
	"tienda/internal/dto"
	apperrors "tienda/internal/errors"
)

type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindTakenFields(ctx context.Context, username, email string) (bool, bool, error)
	RoleExists(ctx context.Context, roleID int) (bool, error)
	Create(ctx context.Context, u domain.User) (uint, error)
}

type TokenIssuer interface {
	Issue(userID uint, roleID int) (string, error)
}

type AuthService struct {
	users  UserRepository
	tokens TokenIssuer
	logger *zap.Logger
}

func NewAuthService(users UserRepository, tokens TokenIssuer, logger *zap.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, logger: logger}
}

// HashPassword returns the bcrypt hash stored for a user password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *AuthService) Signup(ctx context.Context, req dto.SignupRequest) (uint, error) {
	usernameTaken, emailTaken, err := s.users.FindTakenFields(ctx, req.Username, req.Email)
	if err != nil {
		return 0, apperrors.NewInternalError("check taken user fields", err)
	}

	var details []apperrors.ValidationDetail
	if usernameTaken {
		details = append(details, apperrors.ValidationDetail{Field: "username", Message: "username is already in use"})
	}
	if emailTaken {
		details = append(details, apperrors.ValidationDetail{Field: "email", Message: "email is already in use"})
	}

	roleExists, err := s.users.RoleExists(ctx, req.RoleID)
	if err != nil {
		return 0, apperrors.NewInternalError("check role", err)
	}
	if !roleExists {
		details = append(details, apperrors.ValidationDetail{Field: "roleId", Message: "role does not exist"})
	}

	if len(details) > 0 {
		return 0, apperrors.NewValidationError("signup rejected", details...)
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return 0, apperrors.NewInternalError("hash password", err)
	}

	id, err := s.users.Create(ctx, domain.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		RoleID:       req.RoleID,
	})
	if err != nil {
		if ce, ok := apperrors.IsConflictError(err); ok {
			return 0, apperrors.NewValidationError("signup rejected", apperrors.ValidationDetail{
				Field:   "username",
				Message: ce.Message,
			})
		}
		return 0, apperrors.NewInternalError("create user", err)
	}

	s.logger.Info("user registered", zap.Uint("userId", id), zap.Int("roleId", req.RoleID))
	return id, nil
}

func (s *AuthService) Signin(ctx context.Context, req dto.SigninRequest) (*dto.SigninResult, error) {
	user, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			return nil, apperrors.NewNotFoundError("user not found")
		}
		return nil, apperrors.NewInternalError("find user", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return nil, apperrors.NewUnauthorizedError("invalid password")
	}
	if err != nil {
		return nil, apperrors.NewInternalError("compare password", err)
	}

	token, err := s.tokens.Issue(user.ID, user.RoleID)
	if err != nil {
		return nil, apperrors.NewInternalError("issue token", err)
	}

	return &dto.SigninResult{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		RoleID:   user.RoleID,
		Token:    token,
	}, nil
}
