package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"go.uber.org/zap/zaptest"
)

func TestSanitizeTitle(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain title", "買い物の練習", "買い物の練習"},
		{"surrounding whitespace", "  旅行の計画  ", "旅行の計画"},
		{"keeps first line only", "面接の準備\n他の候補: 仕事の話", "面接の準備"},
		{"strips punctuation", "。駅での会話、", "駅での会話"},
		{"truncates to twenty runes", strings.Repeat("あ", 30), strings.Repeat("あ", 20)},
		{"empty input falls back", "", fallbackTitle},
		{"punctuation only falls back", " ，。,. ", fallbackTitle},
		{"windows line ending", "天気の話\r\n別案", "天気の話"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sanitizeTitle(tt.raw)
			assert.Equal(t, tt.want, got)
			assert.NotEmpty(t, got)
			assert.LessOrEqual(t, utf8.RuneCountInString(got), titleMaxRunes)
		})
	}
}

func TestSummarizeNeverFails(t *testing.T) {
	gen := &stubGenerator{textErr: errors.New("backend down")}
	svc := NewTitleService(gen, zaptest.NewLogger(t))

	got := svc.Summarize(context.Background(), "user: こんにちは")
	assert.Equal(t, fallbackTitle, got)
}

func TestSummarizeUsesTitlePrompt(t *testing.T) {
	gen := &stubGenerator{text: "挨拶の練習"}
	svc := NewTitleService(gen, zaptest.NewLogger(t))

	got := svc.Summarize(context.Background(), "user: こんにちは")
	assert.Equal(t, "挨拶の練習", got)
	assert.True(t, strings.HasSuffix(gen.lastPrompt, "user: こんにちは"))
	assert.Contains(t, gen.lastPrompt, "20 个字以内")
}
