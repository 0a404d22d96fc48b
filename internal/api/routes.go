package api

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/kokorocoach/server/domain/entities"
	"github.com/kokorocoach/server/domain/repositories"
	"github.com/kokorocoach/server/internal/auth"
)

// ChatExecutor runs the chat-turn pipeline and the standalone speech
// synthesis operation.
type ChatExecutor interface {
	Chat(ctx context.Context, req entities.ChatRequest) (entities.ChatResult, error)
	SynthesizeSpeech(ctx context.Context, text, speaker string) (string, error)
}

// TitleSummarizer derives a short session title; it never fails.
type TitleSummarizer interface {
	Summarize(ctx context.Context, transcript string) string
}

// Server holds every dependency the REST surface needs. All of them
// are constructed once in main.
type Server struct {
	chat           ChatExecutor
	title          TitleSummarizer
	users          repositories.UserRepository
	sessions       repositories.SessionRepository
	favorites      repositories.FavoriteRepository
	issuer         *auth.TokenIssuer
	emailWhitelist []string
	logger         *zap.Logger
}

// NewServer creates the REST surface. emailWhitelist nil means open
// registration.
func NewServer(
	chat ChatExecutor,
	title TitleSummarizer,
	users repositories.UserRepository,
	sessions repositories.SessionRepository,
	favorites repositories.FavoriteRepository,
	issuer *auth.TokenIssuer,
	emailWhitelist []string,
	logger *zap.Logger,
) *Server {
	return &Server{
		chat:           chat,
		title:          title,
		users:          users,
		sessions:       sessions,
		favorites:      favorites,
		issuer:         issuer,
		emailWhitelist: emailWhitelist,
		logger:         logger,
	}
}

// Register initializes all API routes.
func (s *Server) Register(e *echo.Echo) {
	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"service": "kokoro-coach",
		})
	})

	api := e.Group("/api")

	// Auth
	api.POST("/auth/register", s.register)
	api.POST("/auth/login", s.login)
	api.GET("/auth/me", s.getMe, s.requireAuth)
	api.PUT("/auth/me", s.updateMe, s.requireAuth)

	// Sessions and messages
	api.GET("/sessions", s.listSessions, s.requireAuth)
	api.POST("/sessions", s.createSession, s.requireAuth)
	api.GET("/sessions/:id", s.getSession, s.requireAuth)
	api.DELETE("/sessions/:id", s.deleteSession, s.requireAuth)
	api.PUT("/sessions/:id/title", s.updateSessionTitle, s.requireAuth)
	api.POST("/sessions/:id/messages", s.addMessage, s.requireAuth)

	// Favorites
	api.GET("/favorites", s.listFavorites, s.requireAuth)
	api.POST("/favorites", s.createFavorite, s.requireAuth)
	api.PUT("/favorites/:id", s.updateFavorite, s.requireAuth)
	api.DELETE("/favorites/:id", s.deleteFavorite, s.requireAuth)

	// Generation pipeline
	api.POST("/chat", s.handleChat)
	api.POST("/tts", s.handleTTS)
	api.POST("/title", s.handleTitle)
}
