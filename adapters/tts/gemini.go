package tts

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/kokorocoach/server/domain"
	"github.com/kokorocoach/server/domain/repositories"
	"github.com/kokorocoach/server/internal/audio"
)

const defaultGeminiTimeout = 60 * time.Second

// GeminiSynthesizerConfig holds configuration for the embedded-model
// synthesis strategy.
type GeminiSynthesizerConfig struct {
	Model   string        // Required: audio-capable model identifier
	Voice   string        // Optional: default prebuilt voice name
	Timeout time.Duration // Optional: per-call deadline (default 60s)
}

// GeminiSynthesizer implements SpeechSynthesizer by calling the
// generation backend in audio-output mode. The response carries raw
// 24 kHz mono PCM16LE inline; the adapter wraps it in a WAV container
// so the caller always receives a complete playable file.
type GeminiSynthesizer struct {
	client  *genai.Client
	logger  *zap.Logger
	model   string
	voice   string
	timeout time.Duration
}

var _ repositories.SpeechSynthesizer = (*GeminiSynthesizer)(nil)

// NewGeminiSynthesizer creates the embedded-model synthesis strategy.
func NewGeminiSynthesizer(client *genai.Client, config GeminiSynthesizerConfig, logger *zap.Logger) (*GeminiSynthesizer, error) {
	if config.Model == "" {
		return nil, fmt.Errorf("model identifier is required")
	}
	timeout := config.Timeout
	if timeout == 0 {
		timeout = defaultGeminiTimeout
	}
	return &GeminiSynthesizer{
		client:  client,
		logger:  logger,
		model:   config.Model,
		voice:   config.Voice,
		timeout: timeout,
	}, nil
}

// Synthesize converts text to a WAV file. Any response shape other than
// inline audio in the first candidate's first part is a terminal
// failure for this call; there are no retries.
func (g *GeminiSynthesizer) Synthesize(ctx context.Context, text string, speaker string) ([]byte, error) {
	voice := speaker
	if voice == "" {
		voice = g.voice
	}

	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
	}
	if voice != "" {
		config.SpeechConfig = &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: voice},
			},
		}
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	contents := []*genai.Content{genai.NewContentFromText(text, genai.RoleUser)}

	response, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		g.logger.Error("Gemini TTS call failed",
			zap.String("model", g.model),
			zap.Error(err))
		return nil, domain.NewBadGatewayError("TTS API call failed", err)
	}

	if len(response.Candidates) == 0 ||
		response.Candidates[0].Content == nil ||
		len(response.Candidates[0].Content.Parts) == 0 {
		g.logger.Warn("Gemini TTS response carried no content parts")
		return nil, domain.NewBadGatewayError("TTS generation failed", nil)
	}

	part := response.Candidates[0].Content.Parts[0]
	if part.InlineData == nil || len(part.InlineData.Data) == 0 {
		g.logger.Warn("Gemini TTS response carried no inline audio",
			zap.String("mimeType", partMIMEType(part)))
		return nil, domain.NewBadGatewayError("no audio data received", nil)
	}

	wav, err := audio.EncodeWAV(part.InlineData.Data, 0, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("encode wav: %w", err)
	}
	return wav, nil
}

func partMIMEType(part *genai.Part) string {
	if part.InlineData != nil {
		return part.InlineData.MIMEType
	}
	return ""
}
