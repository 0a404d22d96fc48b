package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/kokorocoach/server/domain"
	"github.com/kokorocoach/server/domain/entities"
	"github.com/kokorocoach/server/internal/auth"
)

const minPasswordLength = 6

func (s *Server) register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request format",
		})
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "missing_fields",
			Message: "Email and password are required",
		})
	}

	if s.emailWhitelist != nil && !contains(s.emailWhitelist, req.Email) {
		return c.JSON(http.StatusForbidden, ErrorResponse{
			Error:   "not_whitelisted",
			Message: "Registration is currently invite-only",
		})
	}

	if _, err := s.users.GetByEmail(c.Request().Context(), req.Email); err == nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "email_taken",
			Message: "This email is already registered",
		})
	} else if !errors.Is(err, domain.ErrNotFound) {
		return s.internalError(c, "register lookup failed", err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return s.internalError(c, "password hashing failed", err)
	}

	user := &entities.User{Email: req.Email, HashedPassword: hash}
	if err := s.users.Create(c.Request().Context(), user); err != nil {
		return s.internalError(c, "user creation failed", err)
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID))
	return c.JSON(http.StatusCreated, user)
}

func (s *Server) login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request format",
		})
	}

	user, err := s.users.GetByEmail(c.Request().Context(), strings.TrimSpace(req.Email))
	if err != nil || !auth.VerifyPassword(req.Password, user.HashedPassword) {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "invalid_credentials",
			Message: "Email or password is incorrect",
		})
	}

	token, err := s.issuer.Generate(user.ID, user.Email)
	if err != nil {
		return s.internalError(c, "token generation failed", err)
	}

	return c.JSON(http.StatusOK, TokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (s *Server) getMe(c echo.Context) error {
	user, err := s.users.GetByID(c.Request().Context(), currentUserID(c))
	if err != nil {
		return s.internalError(c, "user lookup failed", err)
	}

	// Older accounts predate the timezone column; backfill the default.
	if user.Timezone == nil {
		tz := "Asia/Shanghai"
		user.Timezone = &tz
		if err := s.users.Update(c.Request().Context(), user); err != nil {
			return s.internalError(c, "timezone backfill failed", err)
		}
	}
	return c.JSON(http.StatusOK, user)
}

func (s *Server) updateMe(c echo.Context) error {
	var req UserUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request format",
		})
	}

	user, err := s.users.GetByID(c.Request().Context(), currentUserID(c))
	if err != nil {
		return s.internalError(c, "user lookup failed", err)
	}

	if req.Username != nil {
		user.Username = req.Username
	}
	if req.Avatar != nil {
		user.Avatar = req.Avatar
	}
	if req.Timezone != nil {
		user.Timezone = req.Timezone
	}

	if req.NewPassword != nil && *req.NewPassword != "" {
		if req.CurrentPassword == nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "missing_current_password",
				Message: "Current password is required to change password",
			})
		}
		if !auth.VerifyPassword(*req.CurrentPassword, user.HashedPassword) {
			return c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "wrong_password",
				Message: "Current password is incorrect",
			})
		}
		if len(*req.NewPassword) < minPasswordLength {
			return c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "password_too_short",
				Message: "New password must be at least 6 characters",
			})
		}
		hash, err := auth.HashPassword(*req.NewPassword)
		if err != nil {
			return s.internalError(c, "password hashing failed", err)
		}
		user.HashedPassword = hash
	}

	if err := s.users.Update(c.Request().Context(), user); err != nil {
		return s.internalError(c, "user update failed", err)
	}
	return c.JSON(http.StatusOK, user)
}

func (s *Server) internalError(c echo.Context, msg string, err error) error {
	s.logger.Error(msg, zap.Error(err))
	return c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "Something went wrong",
	})
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
