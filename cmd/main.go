package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/kokorocoach/server/adapters/llm"
	"github.com/kokorocoach/server/adapters/sqlite"
	"github.com/kokorocoach/server/adapters/tts"
	"github.com/kokorocoach/server/domain/repositories"
	"github.com/kokorocoach/server/internal/api"
	"github.com/kokorocoach/server/internal/auth"
	"github.com/kokorocoach/server/internal/config"
	"github.com/kokorocoach/server/usecase"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	ctx := context.Background()

	// Storage
	store, err := sqlite.Open(ctx, cfg.DatabasePath, logger)
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}
	defer store.Close()

	// Generation backend
	client, err := llm.NewClient(ctx, cfg.GoogleAPIKey)
	if err != nil {
		logger.Fatal("failed to create Gemini client", zap.Error(err))
	}
	generator, err := llm.NewGemini(client, llm.GeminiConfig{
		Model: cfg.ChatModel,
	}, logger)
	if err != nil {
		logger.Fatal("failed to create text generator", zap.Error(err))
	}

	synthesizer, err := newSynthesizer(cfg, client, logger)
	if err != nil {
		logger.Fatal("failed to create speech synthesizer", zap.Error(err))
	}

	// Usecase services
	chatService := usecase.NewChatService(generator, synthesizer, cfg.AttachChatAudio, logger)
	titleService := usecase.NewTitleService(generator, logger)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	if len(cfg.CORSOrigins) > 0 {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: cfg.CORSOrigins,
			AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization},
		}))
	} else {
		e.Use(middleware.CORS())
	}

	// Initialize API routes
	issuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	server := api.NewServer(
		chatService,
		titleService,
		sqlite.NewUserStore(store),
		sqlite.NewSessionStore(store),
		sqlite.NewFavoriteStore(store),
		issuer,
		cfg.EmailWhitelist,
		logger,
	)
	server.Register(e)

	// Graceful shutdown
	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("shutting down the server", zap.Error(err))
		}
	}()

	logger.Info("server started",
		zap.String("port", cfg.Port),
		zap.String("synthesis_provider", string(cfg.SynthesisProvider)),
	)

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("server is shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited")
}

// newSynthesizer selects the speech-synthesis strategy configured at
// startup. Both strategies satisfy the same interface; nothing above
// this point knows which one is running.
func newSynthesizer(cfg config.Config, client *genai.Client, logger *zap.Logger) (repositories.SpeechSynthesizer, error) {
	switch cfg.SynthesisProvider {
	case config.ProviderGemini:
		return tts.NewGeminiSynthesizer(client, tts.GeminiSynthesizerConfig{
			Model:   cfg.TTSModel,
			Voice:   cfg.GeminiVoice,
			Timeout: cfg.SynthesisTimeout,
		}, logger)
	case config.ProviderVoicevox:
		return tts.NewVoicevox(tts.VoicevoxConfig{
			BaseURL: cfg.VoicevoxURL,
			Speaker: cfg.VoicevoxSpeaker,
			Timeout: cfg.SynthesisTimeout,
		}, logger)
	default:
		return nil, fmt.Errorf("unknown synthesis provider %q", cfg.SynthesisProvider)
	}
}
