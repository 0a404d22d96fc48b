package usecase

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/kokorocoach/server/domain/repositories"
)

const (
	titleMaxRunes = 20
	fallbackTitle = "新しい話題"
)

// TitleService derives a short session title from a transcript. It
// shares the text-generation call path with ChatService but runs in
// free-text mode and never fails the caller: any backend failure or
// unusable response resolves to the fixed fallback title.
type TitleService struct {
	generator repositories.TextGenerator
	logger    *zap.Logger
}

// NewTitleService creates a new title service.
func NewTitleService(generator repositories.TextGenerator, logger *zap.Logger) *TitleService {
	return &TitleService{generator: generator, logger: logger}
}

// Summarize produces a non-empty title of at most 20 characters.
func (s *TitleService) Summarize(ctx context.Context, transcript string) string {
	raw, err := s.generator.GenerateText(ctx, BuildTitlePrompt(transcript))
	if err != nil {
		s.logger.Warn("title generation failed, using fallback", zap.Error(err))
		return fallbackTitle
	}
	return sanitizeTitle(raw)
}

// sanitizeTitle keeps only the first line, strips surrounding
// whitespace and common punctuation, and truncates to the title length
// limit. Titles are Japanese text, so the limit counts runes.
func sanitizeTitle(raw string) string {
	line := strings.TrimSpace(raw)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	line = strings.Trim(line, " \r，。,.")

	runes := []rune(line)
	if len(runes) > titleMaxRunes {
		runes = runes[:titleMaxRunes]
	}

	title := strings.TrimSpace(string(runes))
	if title == "" {
		return fallbackTitle
	}
	return title
}
