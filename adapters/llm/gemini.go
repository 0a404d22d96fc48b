package llm

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/kokorocoach/server/domain/repositories"
)

const defaultTimeout = 30 * time.Second

// GeminiConfig holds configuration for the Gemini text-generation adapter.
type GeminiConfig struct {
	Model   string        // Required: chat/title model identifier
	Timeout time.Duration // Optional: per-call deadline (default 30s)
}

// Gemini implements the TextGenerator interface using Google's Gemini API.
// The genai client is constructed once in main and shared; this adapter
// never rebuilds it.
type Gemini struct {
	client  *genai.Client
	logger  *zap.Logger
	model   string
	timeout time.Duration
}

var _ repositories.TextGenerator = (*Gemini)(nil)

// NewClient creates the process-wide genai client.
func NewClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("google API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return client, nil
}

// NewGemini creates a new Gemini text-generation adapter.
func NewGemini(client *genai.Client, config GeminiConfig, logger *zap.Logger) (*Gemini, error) {
	if config.Model == "" {
		return nil, fmt.Errorf("model identifier is required")
	}
	timeout := config.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &Gemini{
		client:  client,
		logger:  logger,
		model:   config.Model,
		timeout: timeout,
	}, nil
}

// GenerateText produces free-form text from a prompt.
func (g *Gemini) GenerateText(ctx context.Context, prompt string) (string, error) {
	return g.generate(ctx, prompt, &genai.GenerateContentConfig{
		ResponseMIMEType: "text/plain",
	})
}

// GenerateStructured produces text constrained to the chat response
// schema. Gemini is only biased toward the shape, not bound to it, so
// callers still validate the returned text.
func (g *Gemini) GenerateStructured(ctx context.Context, prompt string) (string, error) {
	return g.generate(ctx, prompt, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   ChatResponseSchema,
	})
}

func (g *Gemini) generate(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}

	response, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		g.logger.Error("Gemini generation call failed",
			zap.String("model", g.model),
			zap.Error(err))
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	if len(response.Candidates) == 0 || response.Candidates[0].Content == nil {
		return "", nil
	}

	var text string
	for _, part := range response.Candidates[0].Content.Parts {
		if part.Text != "" {
			text += part.Text
		}
	}
	return text, nil
}
