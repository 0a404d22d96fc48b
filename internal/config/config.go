package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// SynthesisProvider selects which speech-synthesis strategy is active.
// The choice is made once at process start and never at call time.
type SynthesisProvider string

const (
	ProviderGemini   SynthesisProvider = "gemini"
	ProviderVoicevox SynthesisProvider = "voicevox"
)

// Config contains all runtime settings for the coaching server. Every
// client is constructed exactly once in main from this struct; nothing
// is lazily initialized at request time.
type Config struct {
	Port            string
	ShutdownTimeout time.Duration
	CORSOrigins     []string

	DatabasePath string

	JWTSecret      string
	TokenTTL       time.Duration
	EmailWhitelist []string // nil means registration is open

	GoogleAPIKey string
	ChatModel    string
	TTSModel     string

	SynthesisProvider SynthesisProvider
	SynthesisTimeout  time.Duration
	GeminiVoice       string
	VoicevoxURL       string
	VoicevoxSpeaker   string

	// AttachChatAudio makes the chat turn auto-attach synthesized audio
	// for the reply. Audio failures never break the text response.
	AttachChatAudio bool
}

// Load reads environment variables and applies safe defaults.
func Load() (Config, error) {
	cfg := Config{
		Port:              envOrDefault("PORT", "8080"),
		ShutdownTimeout:   10 * time.Second,
		CORSOrigins:       splitAndTrim(envOrDefault("CORS_ORIGINS", "http://localhost:5173")),
		DatabasePath:      envOrDefault("DATABASE_PATH", "chatbot.db"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		TokenTTL:          7 * 24 * time.Hour,
		EmailWhitelist:    nil,
		GoogleAPIKey:      os.Getenv("GOOGLE_API_KEY"),
		ChatModel:         envOrDefault("CHAT_MODEL", "gemini-2.0-flash-exp"),
		TTSModel:          envOrDefault("TTS_MODEL", "gemini-2.5-flash-preview-tts"),
		SynthesisProvider: SynthesisProvider(envOrDefault("TTS_PROVIDER", string(ProviderGemini))),
		SynthesisTimeout:  60 * time.Second,
		GeminiVoice:       envOrDefault("GEMINI_TTS_VOICE", "Kore"),
		VoicevoxURL:       envOrDefault("VOICEVOX_URL", "http://localhost:50021"),
		VoicevoxSpeaker:   envOrDefault("VOICEVOX_SPEAKER", "1"),
		AttachChatAudio:   true,
	}

	if whitelist := os.Getenv("EMAIL_WHITELIST"); whitelist != "" {
		cfg.EmailWhitelist = splitAndTrim(whitelist)
	}

	if v := os.Getenv("ATTACH_CHAT_AUDIO"); v != "" {
		attach, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid ATTACH_CHAT_AUDIO %q: %w", v, err)
		}
		cfg.AttachChatAudio = attach
	}

	var err error
	cfg.ShutdownTimeout, err = durationFromEnv("SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)
	if err != nil {
		return Config{}, err
	}
	cfg.SynthesisTimeout, err = durationFromEnv("TTS_TIMEOUT", cfg.SynthesisTimeout)
	if err != nil {
		return Config{}, err
	}
	cfg.TokenTTL, err = durationFromEnv("TOKEN_TTL", cfg.TokenTTL)
	if err != nil {
		return Config{}, err
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET environment variable is required")
	}
	if c.GoogleAPIKey == "" {
		return fmt.Errorf("GOOGLE_API_KEY environment variable is required")
	}
	switch c.SynthesisProvider {
	case ProviderGemini, ProviderVoicevox:
	default:
		return fmt.Errorf("unknown TTS_PROVIDER %q (want %q or %q)",
			c.SynthesisProvider, ProviderGemini, ProviderVoicevox)
	}
	if c.SynthesisProvider == ProviderVoicevox && c.VoicevoxURL == "" {
		return fmt.Errorf("VOICEVOX_URL is required when TTS_PROVIDER is voicevox")
	}
	return nil
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func durationFromEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}

func splitAndTrim(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
