package tts

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kokorocoach/server/domain"
	"github.com/kokorocoach/server/domain/repositories"
)

const (
	defaultVoicevoxTimeout = 60 * time.Second
	defaultVoicevoxSpeaker = "1"
)

// VoicevoxConfig holds configuration for the remote two-step synthesis
// strategy.
type VoicevoxConfig struct {
	BaseURL string        // Required: VOICEVOX engine base URL
	Speaker string        // Optional: default speaker identifier (default "1")
	Timeout time.Duration // Optional: per-request deadline (default 60s)
}

// Voicevox implements SpeechSynthesizer against a VOICEVOX engine. A
// synthesis is two sequential HTTP calls: build the query parameter
// document, then submit that document for synthesis. The second call's
// body is exactly the first call's response, so a first-step failure
// short-circuits the whole operation.
type Voicevox struct {
	baseURL    string
	speaker    string
	httpClient *http.Client
	logger     *zap.Logger
}

var _ repositories.SpeechSynthesizer = (*Voicevox)(nil)

// NewVoicevox creates the remote synthesis strategy.
func NewVoicevox(config VoicevoxConfig, logger *zap.Logger) (*Voicevox, error) {
	if config.BaseURL == "" {
		return nil, fmt.Errorf("voicevox base URL is required")
	}
	speaker := config.Speaker
	if speaker == "" {
		speaker = defaultVoicevoxSpeaker
	}
	timeout := config.Timeout
	if timeout == 0 {
		timeout = defaultVoicevoxTimeout
	}
	return &Voicevox{
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		speaker:    speaker,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}, nil
}

// Synthesize converts text to a finished audio file. The engine returns
// a complete WAV body; the bytes are passed through untouched.
func (v *Voicevox) Synthesize(ctx context.Context, text string, speaker string) ([]byte, error) {
	sp := speaker
	if sp == "" {
		sp = v.speaker
	}

	queryDoc, err := v.buildAudioQuery(ctx, text, sp)
	if err != nil {
		return nil, err
	}
	return v.synthesize(ctx, queryDoc, sp)
}

func (v *Voicevox) buildAudioQuery(ctx context.Context, text, speaker string) ([]byte, error) {
	params := url.Values{}
	params.Set("text", text)
	params.Set("speaker", speaker)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		v.baseURL+"/audio_query?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build audio_query request: %w", err)
	}

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return nil, v.classifyTransportError("audio_query", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		v.logger.Error("VOICEVOX audio_query returned error status",
			zap.Int("status", resp.StatusCode))
		return nil, domain.NewBadGatewayError(
			fmt.Sprintf("VOICEVOX audio_query returned status %d", resp.StatusCode), nil)
	}

	doc, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, v.classifyTransportError("audio_query", err)
	}
	return doc, nil
}

func (v *Voicevox) synthesize(ctx context.Context, queryDoc []byte, speaker string) ([]byte, error) {
	params := url.Values{}
	params.Set("speaker", speaker)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		v.baseURL+"/synthesis?"+params.Encode(), bytes.NewReader(queryDoc))
	if err != nil {
		return nil, fmt.Errorf("build synthesis request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return nil, v.classifyTransportError("synthesis", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		v.logger.Error("VOICEVOX synthesis returned error status",
			zap.Int("status", resp.StatusCode))
		return nil, domain.NewBadGatewayError(
			fmt.Sprintf("VOICEVOX synthesis returned status %d", resp.StatusCode), nil)
	}

	wav, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, v.classifyTransportError("synthesis", err)
	}
	return wav, nil
}

// classifyTransportError distinguishes deadline expiry from every other
// transport failure so callers can map them to 504 vs 502.
func (v *Voicevox) classifyTransportError(step string, err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		v.logger.Error("VOICEVOX request timed out", zap.String("step", step), zap.Error(err))
		return domain.NewGatewayTimeoutError("VOICEVOX "+step+" timed out", err)
	}
	v.logger.Error("VOICEVOX request failed", zap.String("step", step), zap.Error(err))
	return domain.NewBadGatewayError("VOICEVOX "+step+" failed", err)
}
