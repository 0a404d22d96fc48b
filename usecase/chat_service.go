package usecase

import (
	"context"
	"encoding/base64"
	"fmt"

	"go.uber.org/zap"

	"github.com/kokorocoach/server/domain"
	"github.com/kokorocoach/server/domain/entities"
	"github.com/kokorocoach/server/domain/repositories"
)

// ChatService coordinates one chat turn: build the prompt, call the
// generation backend, validate the structured response, then optionally
// attach synthesized audio for the reply.
type ChatService struct {
	generator   repositories.TextGenerator
	synthesizer repositories.SpeechSynthesizer
	attachAudio bool
	logger      *zap.Logger
}

// NewChatService creates a new chat service. synthesizer may be nil
// when no synthesis backend is deployed; attachAudio decides whether a
// chat turn auto-attaches audio, a composition choice fixed at startup.
func NewChatService(generator repositories.TextGenerator, synthesizer repositories.SpeechSynthesizer, attachAudio bool, logger *zap.Logger) *ChatService {
	return &ChatService{
		generator:   generator,
		synthesizer: synthesizer,
		attachAudio: attachAudio,
		logger:      logger,
	}
}

// Chat executes a single chat turn. Text failure aborts the whole turn
// with no partial result. Audio failure is absorbed: the text fields of
// a successful turn are returned unchanged with audio absent.
func (s *ChatService) Chat(ctx context.Context, req entities.ChatRequest) (entities.ChatResult, error) {
	prompt := BuildChatPrompt(req)

	raw, err := s.generator.GenerateStructured(ctx, prompt)
	if err != nil {
		return entities.ChatResult{}, fmt.Errorf("chat generation: %w", err)
	}

	result, err := ParseChatResult(raw)
	if err != nil {
		return entities.ChatResult{}, err
	}

	if s.attachAudio && s.synthesizer != nil {
		wav, synthErr := s.synthesizer.Synthesize(ctx, result.Reply, "")
		if synthErr != nil {
			// Text success is independent of audio success. The turn
			// already produced a valid result; ship it without audio.
			s.logger.Warn("speech synthesis failed for chat turn, returning text only",
				zap.String("session_id", req.SessionID),
				zap.Error(synthErr))
		} else {
			encoded := base64.StdEncoding.EncodeToString(wav)
			result.AudioBase64 = &encoded
		}
	}

	return result, nil
}

// SynthesizeSpeech serves the standalone TTS operation. Unlike the
// auto-attach step inside Chat, failures here surface to the caller.
func (s *ChatService) SynthesizeSpeech(ctx context.Context, text, speaker string) (string, error) {
	if s.synthesizer == nil {
		return "", domain.NewBadGatewayError("speech synthesis is not configured", nil)
	}
	wav, err := s.synthesizer.Synthesize(ctx, text, speaker)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(wav), nil
}
