package usecase

import (
	"encoding/json"
	"strings"

	"github.com/kokorocoach/server/domain"
	"github.com/kokorocoach/server/domain/entities"
)

// chatPayload mirrors the response schema with pointer fields so that a
// missing key is distinguishable from a present-but-empty value.
type chatPayload struct {
	Reply            *string `json:"reply"`
	ReplyTranslation *string `json:"replyTranslation"`
	Feedback         *struct {
		CorrectedSentence *string `json:"correctedSentence"`
		Explanation       *string `json:"explanation"`
		NaturalnessScore  *int    `json:"naturalnessScore"`
	} `json:"feedback"`
}

// ParseChatResult validates raw generation output against the chat
// response contract. The backend is only guided toward the schema, so
// anything can come back: empty text, non-JSON, a bare array, or an
// object missing required fields. All of those are upstream contract
// violations surfaced as bad-gateway errors — never a partially-filled
// result, and never retried here.
func ParseChatResult(raw string) (entities.ChatResult, error) {
	if strings.TrimSpace(raw) == "" {
		return entities.ChatResult{}, domain.NewBadGatewayError("model returned an empty response", nil)
	}

	var payload chatPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return entities.ChatResult{}, domain.NewBadGatewayError("model returned malformed JSON", err)
	}

	if payload.Reply == nil || payload.ReplyTranslation == nil || payload.Feedback == nil {
		return entities.ChatResult{}, domain.NewBadGatewayError("model response is missing required fields", nil)
	}
	fb := payload.Feedback
	if fb.CorrectedSentence == nil || fb.Explanation == nil || fb.NaturalnessScore == nil {
		return entities.ChatResult{}, domain.NewBadGatewayError("model response is missing feedback fields", nil)
	}

	return entities.ChatResult{
		Reply:            *payload.Reply,
		ReplyTranslation: *payload.ReplyTranslation,
		Feedback: entities.FeedbackPayload{
			CorrectedSentence: *fb.CorrectedSentence,
			Explanation:       *fb.Explanation,
			NaturalnessScore:  *fb.NaturalnessScore,
		},
	}, nil
}
