package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kokorocoach/server/domain"
	"github.com/kokorocoach/server/domain/entities"
)

func (s *Server) listSessions(c echo.Context) error {
	sessions, err := s.sessions.ListByUser(c.Request().Context(), currentUserID(c))
	if err != nil {
		return s.internalError(c, "session listing failed", err)
	}
	return c.JSON(http.StatusOK, sessions)
}

func (s *Server) createSession(c echo.Context) error {
	var req SessionCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request format",
		})
	}

	session := &entities.Session{
		UserID:            currentUserID(c),
		Title:             req.Title,
		ConversationStyle: req.ConversationStyle,
	}
	if err := s.sessions.Create(c.Request().Context(), session); err != nil {
		return s.internalError(c, "session creation failed", err)
	}
	return c.JSON(http.StatusCreated, session)
}

func (s *Server) getSession(c echo.Context) error {
	session, err := s.sessions.GetWithMessages(c.Request().Context(), currentUserID(c), c.Param("id"))
	if errors.Is(err, domain.ErrNotFound) {
		return sessionNotFound(c)
	}
	if err != nil {
		return s.internalError(c, "session lookup failed", err)
	}
	return c.JSON(http.StatusOK, session)
}

func (s *Server) deleteSession(c echo.Context) error {
	err := s.sessions.Delete(c.Request().Context(), currentUserID(c), c.Param("id"))
	if errors.Is(err, domain.ErrNotFound) {
		return sessionNotFound(c)
	}
	if err != nil {
		return s.internalError(c, "session deletion failed", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) updateSessionTitle(c echo.Context) error {
	var req SessionTitleUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request format",
		})
	}

	session, err := s.sessions.UpdateTitle(c.Request().Context(), currentUserID(c), c.Param("id"), req.Title)
	if errors.Is(err, domain.ErrNotFound) {
		return sessionNotFound(c)
	}
	if err != nil {
		return s.internalError(c, "session title update failed", err)
	}
	return c.JSON(http.StatusOK, session)
}

func (s *Server) addMessage(c echo.Context) error {
	var req MessageCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request format",
		})
	}
	if req.Role != string(entities.RoleUser) && req.Role != string(entities.RoleAssistant) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_role",
			Message: "Role must be user or assistant",
		})
	}

	message := &entities.Message{
		SessionID:   c.Param("id"),
		Role:        req.Role,
		Content:     req.Content,
		Translation: req.Translation,
		Feedback:    req.Feedback,
		AudioBase64: req.AudioBase64,
	}
	err := s.sessions.AppendMessage(c.Request().Context(), currentUserID(c), message)
	if errors.Is(err, domain.ErrNotFound) {
		return sessionNotFound(c)
	}
	if err != nil {
		return s.internalError(c, "message creation failed", err)
	}
	return c.JSON(http.StatusCreated, message)
}

func sessionNotFound(c echo.Context) error {
	return c.JSON(http.StatusNotFound, ErrorResponse{
		Error:   "session_not_found",
		Message: "Session does not exist",
	})
}
