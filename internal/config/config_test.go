package config

import (
	"os"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("GOOGLE_API_KEY", "test-api-key")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.SynthesisProvider != ProviderGemini {
		t.Errorf("expected default provider gemini, got %s", cfg.SynthesisProvider)
	}
	if cfg.SynthesisTimeout != 60*time.Second {
		t.Errorf("expected default synthesis timeout 60s, got %s", cfg.SynthesisTimeout)
	}
	if !cfg.AttachChatAudio {
		t.Error("expected chat audio attach to default on")
	}
	if cfg.EmailWhitelist != nil {
		t.Errorf("expected open registration by default, got whitelist %v", cfg.EmailWhitelist)
	}
}

func TestLoadMissingSecrets(t *testing.T) {
	os.Unsetenv("JWT_SECRET")
	os.Unsetenv("GOOGLE_API_KEY")

	if _, err := Load(); err == nil {
		t.Error("expected error when JWT_SECRET is not set")
	}

	t.Setenv("JWT_SECRET", "test-secret")
	if _, err := Load(); err == nil {
		t.Error("expected error when GOOGLE_API_KEY is not set")
	}
}

func TestLoadUnknownProvider(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("TTS_PROVIDER", "espeak")

	if _, err := Load(); err == nil {
		t.Error("expected error for unknown synthesis provider")
	}
}

func TestLoadVoicevoxProvider(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("TTS_PROVIDER", "voicevox")
	t.Setenv("VOICEVOX_SPEAKER", "8")
	t.Setenv("ATTACH_CHAT_AUDIO", "false")
	t.Setenv("TTS_TIMEOUT", "15s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.SynthesisProvider != ProviderVoicevox {
		t.Errorf("expected voicevox provider, got %s", cfg.SynthesisProvider)
	}
	if cfg.VoicevoxSpeaker != "8" {
		t.Errorf("expected speaker 8, got %s", cfg.VoicevoxSpeaker)
	}
	if cfg.AttachChatAudio {
		t.Error("expected chat audio attach disabled")
	}
	if cfg.SynthesisTimeout != 15*time.Second {
		t.Errorf("expected synthesis timeout 15s, got %s", cfg.SynthesisTimeout)
	}
}

func TestLoadEmailWhitelist(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("EMAIL_WHITELIST", "a@example.com, b@example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(cfg.EmailWhitelist) != 2 || cfg.EmailWhitelist[1] != "b@example.com" {
		t.Errorf("unexpected whitelist %v", cfg.EmailWhitelist)
	}
}
