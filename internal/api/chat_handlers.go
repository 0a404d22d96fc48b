package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/kokorocoach/server/domain"
	"github.com/kokorocoach/server/domain/entities"
)

func (s *Server) handleChat(c echo.Context) error {
	var req entities.ChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request format",
		})
	}

	result, err := s.chat.Chat(c.Request().Context(), req)
	if err != nil {
		return s.gatewayError(c, "chat turn failed", err)
	}
	return c.JSON(http.StatusOK, result)
}

func (s *Server) handleTTS(c echo.Context) error {
	var req TTSRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request format",
		})
	}
	if req.Text == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "missing_fields",
			Message: "Text is required",
		})
	}

	audio, err := s.chat.SynthesizeSpeech(c.Request().Context(), req.Text, req.Speaker)
	if err != nil {
		return s.gatewayError(c, "speech synthesis failed", err)
	}
	return c.JSON(http.StatusOK, TTSResponse{AudioBase64: audio})
}

func (s *Server) handleTitle(c echo.Context) error {
	var req TitleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request format",
		})
	}

	// Summarize never fails; the worst case is the fallback title.
	title := s.title.Summarize(c.Request().Context(), req.Transcript)
	return c.JSON(http.StatusOK, TitleResponse{Title: title})
}

// gatewayError maps upstream failures onto 502/504 and everything else
// onto 500. Chat failures carry no partial data.
func (s *Server) gatewayError(c echo.Context, msg string, err error) error {
	var gatewayErr *domain.GatewayError
	if errors.As(err, &gatewayErr) {
		status := http.StatusBadGateway
		if gatewayErr.Kind == domain.GatewayTimeout {
			status = http.StatusGatewayTimeout
		}
		s.logger.Error(msg, zap.Int("status", status), zap.Error(err))
		return c.JSON(status, ErrorResponse{
			Error:   "upstream_error",
			Message: gatewayErr.Detail,
		})
	}
	return s.internalError(c, msg, err)
}
