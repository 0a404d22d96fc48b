package api

import "github.com/kokorocoach/server/domain/entities"

// ErrorResponse is the uniform error body across all endpoints.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Auth

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type UserUpdateRequest struct {
	Username        *string `json:"username"`
	Avatar          *string `json:"avatar"`
	Timezone        *string `json:"timezone"`
	CurrentPassword *string `json:"current_password"`
	NewPassword     *string `json:"new_password"`
}

// Sessions

type SessionCreateRequest struct {
	Title             string `json:"title"`
	ConversationStyle string `json:"conversation_style"`
}

type SessionTitleUpdateRequest struct {
	Title string `json:"title"`
}

type MessageCreateRequest struct {
	Role        string  `json:"role"`
	Content     string  `json:"content"`
	Translation *string `json:"translation"`
	Feedback    *string `json:"feedback"`
	AudioBase64 *string `json:"audio_base64"`
}

// Favorites

type FavoriteCreateRequest struct {
	Text        string  `json:"text"`
	Translation *string `json:"translation"`
	Source      *string `json:"source"`
}

type FavoriteUpdateRequest struct {
	Mastery      *int `json:"mastery"`
	ReviewCount  *int `json:"review_count"`
	MarkReviewed bool `json:"mark_reviewed"`
}

// Chat pipeline

// ChatResponse mirrors entities.ChatResult; the result is returned
// verbatim, audio included only when synthesis succeeded.
type ChatResponse = entities.ChatResult

type TTSRequest struct {
	Text    string `json:"text"`
	Speaker string `json:"speaker"`
}

type TTSResponse struct {
	AudioBase64 string `json:"audioBase64"`
}

type TitleRequest struct {
	Transcript string `json:"transcript"`
}

type TitleResponse struct {
	Title string `json:"title"`
}
