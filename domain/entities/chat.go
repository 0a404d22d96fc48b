package entities

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ConversationStyle selects the tone of the coaching prompt.
type ConversationStyle string

const (
	StyleCasual ConversationStyle = "casual"
	StyleFormal ConversationStyle = "formal"
)

// ConversationTurn is a single immutable turn in a conversation.
type ConversationTurn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is one validated inbound chat turn. An unrecognized style is
// never rejected; the prompt falls back to casual wording while the value
// itself is echoed back as given.
type ChatRequest struct {
	SessionID string             `json:"sessionId"`
	Messages  []ConversationTurn `json:"messages"`
	Style     ConversationStyle  `json:"style"`
}

// FeedbackPayload is the pedagogical feedback that must accompany every
// reply. Absence of any field is an upstream contract violation.
type FeedbackPayload struct {
	CorrectedSentence string `json:"correctedSentence"`
	Explanation       string `json:"explanation"`
	NaturalnessScore  int    `json:"naturalnessScore"`
}

// ChatResult is the assembled outcome of a chat turn. AudioBase64 is
// populated only when speech synthesis succeeds; its absence is not an
// error.
type ChatResult struct {
	Reply            string          `json:"reply"`
	ReplyTranslation string          `json:"replyTranslation"`
	Feedback         FeedbackPayload `json:"feedback"`
	AudioBase64      *string         `json:"audioBase64,omitempty"`
}
