package repositories

import (
	"context"

	"github.com/kokorocoach/server/domain/entities"
)

// UserRepository defines data access methods for users
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id string) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	Update(ctx context.Context, user *entities.User) error
}

// SessionRepository defines data access methods for conversation sessions
// and their messages. All lookups are scoped to the owning user.
type SessionRepository interface {
	Create(ctx context.Context, session *entities.Session) error
	ListByUser(ctx context.Context, userID string) ([]*entities.Session, error)
	GetWithMessages(ctx context.Context, userID, sessionID string) (*entities.Session, error)
	UpdateTitle(ctx context.Context, userID, sessionID, title string) (*entities.Session, error)
	Delete(ctx context.Context, userID, sessionID string) error
	AppendMessage(ctx context.Context, userID string, message *entities.Message) error
}

// FavoriteRepository defines data access methods for bookmarked phrases.
type FavoriteRepository interface {
	Create(ctx context.Context, favorite *entities.Favorite) error
	ListByUser(ctx context.Context, userID string) ([]*entities.Favorite, error)
	// UpdateReview adjusts mastery and review bookkeeping. Nil fields are
	// left untouched; markReviewed stamps last_reviewed_at with now.
	UpdateReview(ctx context.Context, userID, favoriteID string, mastery, reviewCount *int, markReviewed bool) (*entities.Favorite, error)
	Delete(ctx context.Context, userID, favoriteID string) error
}
