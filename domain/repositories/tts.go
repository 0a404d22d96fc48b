package repositories

import "context"

// SpeechSynthesizer abstracts a speech-synthesis backend. Exactly one
// implementation is selected at process start. speaker overrides the
// configured default voice; pass "" to use the default. The returned
// bytes are a complete, playable audio file.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text string, speaker string) ([]byte, error)
}
