package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const userIDContextKey = "userID"

// requireAuth guards an endpoint with JWT bearer authentication and
// stashes the authenticated user ID on the request context.
func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			return c.JSON(http.StatusUnauthorized, ErrorResponse{
				Error:   "missing_token",
				Message: "Bearer token is required in Authorization header",
			})
		}

		claims, err := s.issuer.Validate(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			s.logger.Warn("rejected request with invalid token", zap.Error(err))
			return c.JSON(http.StatusUnauthorized, ErrorResponse{
				Error:   "invalid_token",
				Message: "Invalid or expired token",
			})
		}

		c.Set(userIDContextKey, claims.UserID)
		return next(c)
	}
}

// currentUserID returns the user ID set by requireAuth.
func currentUserID(c echo.Context) string {
	id, _ := c.Get(userIDContextKey).(string)
	return id
}
