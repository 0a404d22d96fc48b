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

// FavoriteStore implements repositories.FavoriteRepository on the
// shared Store.
type FavoriteStore struct {
	store *Store
}

var _ repositories.FavoriteRepository = (*FavoriteStore)(nil)

// NewFavoriteStore creates a favorite repository backed by the store.
func NewFavoriteStore(store *Store) *FavoriteStore {
	return &FavoriteStore{store: store}
}

func (s *FavoriteStore) Create(ctx context.Context, favorite *entities.Favorite) error {
	if favorite.UserID == "" {
		return errors.New("user id is required")
	}
	if favorite.Text == "" {
		return errors.New("text is required")
	}
	if favorite.ID == "" {
		favorite.ID = uuid.NewString()
	}
	favorite.CreatedAt = s.store.clock().UTC()

	_, err := s.store.db.ExecContext(ctx, `
INSERT INTO favorites (id, user_id, text, translation, source, mastery, review_count, last_reviewed_at, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		favorite.ID, favorite.UserID, favorite.Text, favorite.Translation,
		favorite.Source, favorite.Mastery, favorite.ReviewCount,
		favorite.LastReviewedAt, favorite.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert favorite: %w", err)
	}
	return nil
}

func (s *FavoriteStore) ListByUser(ctx context.Context, userID string) ([]*entities.Favorite, error) {
	rows, err := s.store.db.QueryContext(ctx, `
SELECT id, user_id, text, translation, source, mastery, review_count, last_reviewed_at, created_at
FROM favorites WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer rows.Close()

	favorites := []*entities.Favorite{}
	for rows.Next() {
		var f entities.Favorite
		if err := rows.Scan(&f.ID, &f.UserID, &f.Text, &f.Translation, &f.Source,
			&f.Mastery, &f.ReviewCount, &f.LastReviewedAt, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan favorite: %w", err)
		}
		favorites = append(favorites, &f)
	}
	return favorites, rows.Err()
}

func (s *FavoriteStore) UpdateReview(ctx context.Context, userID, favoriteID string, mastery, reviewCount *int, markReviewed bool) (*entities.Favorite, error) {
	fav, err := s.get(ctx, userID, favoriteID)
	if err != nil {
		return nil, err
	}

	if mastery != nil {
		fav.Mastery = *mastery
	}
	if reviewCount != nil {
		fav.ReviewCount = *reviewCount
	}
	if markReviewed {
		now := s.store.clock().UTC()
		fav.LastReviewedAt = &now
	}

	_, err = s.store.db.ExecContext(ctx, `
UPDATE favorites SET mastery = ?, review_count = ?, last_reviewed_at = ?
WHERE id = ? AND user_id = ?`,
		fav.Mastery, fav.ReviewCount, fav.LastReviewedAt, favoriteID, userID)
	if err != nil {
		return nil, fmt.Errorf("update favorite: %w", err)
	}
	return fav, nil
}

func (s *FavoriteStore) Delete(ctx context.Context, userID, favoriteID string) error {
	res, err := s.store.db.ExecContext(ctx,
		`DELETE FROM favorites WHERE id = ? AND user_id = ?`, favoriteID, userID)
	if err != nil {
		return fmt.Errorf("delete favorite: %w", err)
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

func (s *FavoriteStore) get(ctx context.Context, userID, favoriteID string) (*entities.Favorite, error) {
	row := s.store.db.QueryRowContext(ctx, `
SELECT id, user_id, text, translation, source, mastery, review_count, last_reviewed_at, created_at
FROM favorites WHERE id = ? AND user_id = ?`, favoriteID, userID)

	var f entities.Favorite
	err := row.Scan(&f.ID, &f.UserID, &f.Text, &f.Translation, &f.Source,
		&f.Mastery, &f.ReviewCount, &f.LastReviewedAt, &f.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select favorite: %w", err)
	}
	return &f, nil
}
