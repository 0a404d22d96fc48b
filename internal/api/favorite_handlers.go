package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kokorocoach/server/domain"
	"github.com/kokorocoach/server/domain/entities"
)

func (s *Server) listFavorites(c echo.Context) error {
	favorites, err := s.favorites.ListByUser(c.Request().Context(), currentUserID(c))
	if err != nil {
		return s.internalError(c, "favorite listing failed", err)
	}
	return c.JSON(http.StatusOK, favorites)
}

func (s *Server) createFavorite(c echo.Context) error {
	var req FavoriteCreateRequest
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

	favorite := &entities.Favorite{
		UserID:      currentUserID(c),
		Text:        req.Text,
		Translation: req.Translation,
		Source:      req.Source,
	}
	if err := s.favorites.Create(c.Request().Context(), favorite); err != nil {
		return s.internalError(c, "favorite creation failed", err)
	}
	return c.JSON(http.StatusCreated, favorite)
}

func (s *Server) updateFavorite(c echo.Context) error {
	var req FavoriteUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request format",
		})
	}

	favorite, err := s.favorites.UpdateReview(c.Request().Context(), currentUserID(c),
		c.Param("id"), req.Mastery, req.ReviewCount, req.MarkReviewed)
	if errors.Is(err, domain.ErrNotFound) {
		return favoriteNotFound(c)
	}
	if err != nil {
		return s.internalError(c, "favorite update failed", err)
	}
	return c.JSON(http.StatusOK, favorite)
}

func (s *Server) deleteFavorite(c echo.Context) error {
	err := s.favorites.Delete(c.Request().Context(), currentUserID(c), c.Param("id"))
	if errors.Is(err, domain.ErrNotFound) {
		return favoriteNotFound(c)
	}
	if err != nil {
		return s.internalError(c, "favorite deletion failed", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func favoriteNotFound(c echo.Context) error {
	return c.JSON(http.StatusNotFound, ErrorResponse{
		Error:   "favorite_not_found",
		Message: "Favorite does not exist",
	})
}
