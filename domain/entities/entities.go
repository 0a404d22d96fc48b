package entities

import (
	"errors"
	"time"
)

// User represents a learner account
type User struct {
	ID             string    `json:"id" db:"id"`
	Email          string    `json:"email" db:"email"`
	Username       *string   `json:"username" db:"username"`
	HashedPassword string    `json:"-" db:"hashed_password"`
	Avatar         *string   `json:"avatar" db:"avatar"`
	Timezone       *string   `json:"timezone" db:"timezone"`
	IsActive       bool      `json:"is_active" db:"is_active"`
	IsVerified     bool      `json:"is_verified" db:"is_verified"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// Session represents a conversation session owned by a user
type Session struct {
	ID                string    `json:"id" db:"id"`
	UserID            string    `json:"user_id" db:"user_id"`
	Title             string    `json:"title" db:"title"`
	ConversationStyle string    `json:"conversation_style" db:"conversation_style"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
	Messages          []Message `json:"messages,omitempty" db:"-"`
}

// Message represents a single stored message in a session
type Message struct {
	ID          string    `json:"id" db:"id"`
	SessionID   string    `json:"session_id" db:"session_id"`
	Role        string    `json:"role" db:"role"` // "user" or "assistant"
	Content     string    `json:"content" db:"content"`
	Translation *string   `json:"translation" db:"translation"`
	Feedback    *string   `json:"feedback" db:"feedback"` // serialized FeedbackPayload
	AudioBase64 *string   `json:"audio_base64" db:"audio_base64"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// Favorite represents a bookmarked phrase with review bookkeeping
type Favorite struct {
	ID             string     `json:"id" db:"id"`
	UserID         string     `json:"user_id" db:"user_id"`
	Text           string     `json:"text" db:"text"`
	Translation    *string    `json:"translation" db:"translation"`
	Source         *string    `json:"source" db:"source"`
	Mastery        int        `json:"mastery" db:"mastery"`
	ReviewCount    int        `json:"review_count" db:"review_count"`
	LastReviewedAt *time.Time `json:"last_reviewed_at" db:"last_reviewed_at"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
}

// Domain validation methods
func (u *User) Validate() error {
	if u.Email == "" {
		return errors.New("email is required")
	}
	if u.HashedPassword == "" {
		return errors.New("password hash is required")
	}
	return nil
}

func (s *Session) Validate() error {
	if s.UserID == "" {
		return errors.New("user id is required")
	}
	return nil
}
