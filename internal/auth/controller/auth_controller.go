package controller

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"tienda/internal/auth/middleware"
	"tienda/internal/commons"
	"tienda/internal/domain"
	"tienda/internal/dto"
	apperrors "tienda/internal/errors"
	"tienda/internal/validation"
)

type AuthService interface {
	Signup(ctx context.Context, req dto.SignupRequest) (uint, error)
	Signin(ctx context.Context, req dto.SigninRequest) (*dto.SigninResult, error)
}

type AuthController struct {
	service    AuthService
	sessionTTL time.Duration
	logger     *zap.Logger
}

func NewAuthController(service AuthService, sessionTTL time.Duration, logger *zap.Logger) *AuthController {
	return &AuthController{
		service:    service,
		sessionTTL: sessionTTL,
		logger:     logger,
	}
}

func (c *AuthController) Signup(w http.ResponseWriter, r *http.Request) {
	var req dto.SignupRequest
	if err := commons.DecodeJSON(r, &req); err != nil {
		c.handleServiceError(w, r, err)
		return
	}

	if err := validation.Struct(req); err != nil {
		c.handleServiceError(w, r, err)
		return
	}

	id, err := c.service.Signup(r.Context(), req)
	if err != nil {
		c.handleServiceError(w, r, err)
		return
	}

	commons.WriteJSON(w, http.StatusCreated, dto.SignupResponse{
		TraceID: commons.TraceIDFromContext(r.Context()),
		Message: "User registered successfully!",
		ID:      id,
	}, c.logger)
}

func (c *AuthController) Signin(w http.ResponseWriter, r *http.Request) {
	var req dto.SigninRequest
	if err := commons.DecodeJSON(r, &req); err != nil {
		c.handleServiceError(w, r, err)
		return
	}

	if err := validation.Struct(req); err != nil {
		c.handleServiceError(w, r, err)
		return
	}

	result, err := c.service.Signin(r.Context(), req)
	if err != nil {
		c.handleServiceError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    result.Token,
		Path:     "/",
		MaxAge:   int(c.sessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	commons.WriteJSON(w, http.StatusOK, dto.SigninResponse{
		ID:       result.UserID,
		Username: result.Username,
		Email:    result.Email,
		Role:     domain.RoleName(result.RoleID),
		Token:    result.Token,
	}, c.logger)
}

func (c *AuthController) Signout(w http.ResponseWriter, r *http.Request) {
	message := "No active session."
	if _, err := r.Cookie(middleware.SessionCookie); err == nil {
		message = "You've been signed out!"
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	commons.WriteJSON(w, http.StatusOK, dto.MessageResponse{
		TraceID: commons.TraceIDFromContext(r.Context()),
		Message: message,
	}, c.logger)
}

func (c *AuthController) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		commons.WriteValidationError(w, r, ve.Message, ve.Details, c.logger)
		return
	}

	if _, ok := apperrors.IsNotFoundError(err); ok {
		commons.WriteError(w, r, http.StatusNotFound, "NOT_FOUND", err.Error(), c.logger)
		return
	}

	if _, ok := apperrors.IsUnauthorizedError(err); ok {
		commons.WriteError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", err.Error(), c.logger)
		return
	}

	c.logger.Error("auth operation failed",
		zap.String("traceId", commons.TraceIDFromContext(r.Context())),
		zap.Error(err),
	)
	commons.WriteError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "an unexpected error occurred", c.logger)
}
