package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vbonduro/smartbite/internal/domain"
)

type SessionStore struct {
	db *sql.DB
}

func NewSessionStore(db *sql.DB) *SessionStore {
	return &SessionStore{db: db}
}

func (s *SessionStore) Create(ctx context.Context, id string) (*domain.ChatSession, error) {
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (id) VALUES (?)
	`, id); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return s.GetByID(ctx, id)
}

func (s *SessionStore) GetByID(ctx context.Context, id string) (*domain.ChatSession, error) {
	sess := &domain.ChatSession{}
	var endedAt sql.NullTime
	err := s.db.QueryRowContext(ctx, `
		SELECT id, started_at, ended_at FROM sessions WHERE id = ?
	`, id).Scan(&sess.ID, &sess.StartedAt, &endedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if endedAt.Valid {
		sess.EndedAt = &endedAt.Time
	}
	return sess, nil
}

// End stamps the session's end time. Ending an already-ended session keeps
// the first end time.
func (s *SessionStore) End(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE sessions SET ended_at = COALESCE(ended_at, datetime('now')) WHERE id = ?
	`, id)
	if err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("session not found")
	}

	return nil
}
