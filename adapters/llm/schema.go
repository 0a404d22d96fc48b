package llm

import "google.golang.org/genai"

// ChatResponseSchema is the structured-output constraint handed to the
// generation backend for chat turns. It mirrors the shape that
// usecase.ParseChatResult validates: the backend is guided to emit
// exactly this object, but the response is still checked on the way in.
var ChatResponseSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"reply":            {Type: genai.TypeString},
		"replyTranslation": {Type: genai.TypeString},
		"feedback": {
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"correctedSentence": {Type: genai.TypeString},
				"explanation":       {Type: genai.TypeString},
				"naturalnessScore":  {Type: genai.TypeInteger},
			},
			Required: []string{"correctedSentence", "explanation", "naturalnessScore"},
		},
		"audioBase64": {Type: genai.TypeString},
	},
	Required: []string{"reply", "replyTranslation", "feedback"},
}
