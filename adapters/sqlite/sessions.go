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

// SessionStore implements repositories.SessionRepository on the shared
// Store. Every operation is scoped to the owning user.
type SessionStore struct {
	store *Store
}

var _ repositories.SessionRepository = (*SessionStore)(nil)

// NewSessionStore creates a session repository backed by the store.
func NewSessionStore(store *Store) *SessionStore {
	return &SessionStore{store: store}
}

func (s *SessionStore) Create(ctx context.Context, session *entities.Session) error {
	if err := session.Validate(); err != nil {
		return err
	}
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	if session.ConversationStyle == "" {
		session.ConversationStyle = string(entities.StyleCasual)
	}
	now := s.store.clock().UTC()
	session.CreatedAt = now
	session.UpdatedAt = now

	_, err := s.store.db.ExecContext(ctx, `
INSERT INTO sessions (id, user_id, title, conversation_style, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)`,
		session.ID, session.UserID, session.Title, session.ConversationStyle,
		session.CreatedAt, session.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (s *SessionStore) ListByUser(ctx context.Context, userID string) ([]*entities.Session, error) {
	rows, err := s.store.db.QueryContext(ctx, `
SELECT id, user_id, title, conversation_style, created_at, updated_at
FROM sessions WHERE user_id = ? ORDER BY updated_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	sessions := []*entities.Session{}
	for rows.Next() {
		var sess entities.Session
		if err := rows.Scan(&sess.ID, &sess.UserID, &sess.Title, &sess.ConversationStyle,
			&sess.CreatedAt, &sess.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, &sess)
	}
	return sessions, rows.Err()
}

func (s *SessionStore) GetWithMessages(ctx context.Context, userID, sessionID string) (*entities.Session, error) {
	sess, err := s.get(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	rows, err := s.store.db.QueryContext(ctx, `
SELECT id, session_id, role, content, translation, feedback, audio_base64, created_at
FROM messages WHERE session_id = ? ORDER BY created_at ASC`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	sess.Messages = []entities.Message{}
	for rows.Next() {
		var m entities.Message
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Role, &m.Content,
			&m.Translation, &m.Feedback, &m.AudioBase64, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		sess.Messages = append(sess.Messages, m)
	}
	return sess, rows.Err()
}

func (s *SessionStore) UpdateTitle(ctx context.Context, userID, sessionID, title string) (*entities.Session, error) {
	res, err := s.store.db.ExecContext(ctx, `
UPDATE sessions SET title = ?, updated_at = ? WHERE id = ? AND user_id = ?`,
		title, s.store.clock().UTC(), sessionID, userID)
	if err != nil {
		return nil, fmt.Errorf("update session title: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, domain.ErrNotFound
	}
	return s.get(ctx, userID, sessionID)
}

func (s *SessionStore) Delete(ctx context.Context, userID, sessionID string) error {
	res, err := s.store.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE id = ? AND user_id = ?`, sessionID, userID)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
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

func (s *SessionStore) AppendMessage(ctx context.Context, userID string, message *entities.Message) error {
	// Ownership check before the insert; a foreign session is a 404,
	// not a foreign-key error.
	if _, err := s.get(ctx, userID, message.SessionID); err != nil {
		return err
	}

	if message.ID == "" {
		message.ID = uuid.NewString()
	}
	message.CreatedAt = s.store.clock().UTC()

	_, err := s.store.db.ExecContext(ctx, `
INSERT INTO messages (id, session_id, role, content, translation, feedback, audio_base64, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		message.ID, message.SessionID, message.Role, message.Content,
		message.Translation, message.Feedback, message.AudioBase64, message.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx,
		`UPDATE sessions SET updated_at = ? WHERE id = ?`,
		message.CreatedAt, message.SessionID)
	if err != nil {
		return fmt.Errorf("touch session: %w", err)
	}
	return nil
}

func (s *SessionStore) get(ctx context.Context, userID, sessionID string) (*entities.Session, error) {
	row := s.store.db.QueryRowContext(ctx, `
SELECT id, user_id, title, conversation_style, created_at, updated_at
FROM sessions WHERE id = ? AND user_id = ?`, sessionID, userID)

	var sess entities.Session
	err := row.Scan(&sess.ID, &sess.UserID, &sess.Title, &sess.ConversationStyle,
		&sess.CreatedAt, &sess.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select session: %w", err)
	}
	return &sess, nil
}
