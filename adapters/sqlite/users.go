package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/kokorocoach/server/domain"
	"github.com/kokorocoach/server/domain/entities"
	"github.com/kokorocoach/server/domain/repositories"
)

// UserStore implements repositories.UserRepository on the shared Store.
type UserStore struct {
	store *Store
}

var _ repositories.UserRepository = (*UserStore)(nil)

// NewUserStore creates a user repository backed by the store.
func NewUserStore(store *Store) *UserStore {
	return &UserStore{store: store}
}

func (s *UserStore) Create(ctx context.Context, user *entities.User) error {
	if err := user.Validate(); err != nil {
		return err
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := s.store.clock().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	user.IsActive = true

	_, err := s.store.db.ExecContext(ctx, `
INSERT INTO users (id, email, username, hashed_password, avatar, timezone, is_active, is_verified, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID, user.Email, user.Username, user.HashedPassword, user.Avatar,
		user.Timezone, user.IsActive, user.IsVerified, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *UserStore) GetByID(ctx context.Context, id string) (*entities.User, error) {
	return s.getBy(ctx, "id = ?", id)
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	return s.getBy(ctx, "email = ?", email)
}

func (s *UserStore) getBy(ctx context.Context, where string, arg any) (*entities.User, error) {
	row := s.store.db.QueryRowContext(ctx, `
SELECT id, email, username, hashed_password, avatar, timezone, is_active, is_verified, created_at, updated_at
FROM users WHERE `+where, arg)

	var u entities.User
	err := row.Scan(&u.ID, &u.Email, &u.Username, &u.HashedPassword, &u.Avatar,
		&u.Timezone, &u.IsActive, &u.IsVerified, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select user: %w", err)
	}
	return &u, nil
}

func (s *UserStore) Update(ctx context.Context, user *entities.User) error {
	user.UpdatedAt = s.store.clock().UTC()
	res, err := s.store.db.ExecContext(ctx, `
UPDATE users SET username = ?, hashed_password = ?, avatar = ?, timezone = ?, is_verified = ?, updated_at = ?
WHERE id = ?`,
		user.Username, user.HashedPassword, user.Avatar, user.Timezone,
		user.IsVerified, user.UpdatedAt, user.ID)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
