package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/vbonduro/smartbite/internal/domain"
)

// MessageStore keeps the transcript of messages shown in each session.
type MessageStore struct {
	db *sql.DB
}

func NewMessageStore(db *sql.DB) *MessageStore {
	return &MessageStore{db: db}
}

func (s *MessageStore) Create(ctx context.Context, sessionID string, msg *domain.Message) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO messages (id, session_id, author, content, image_url) VALUES (?, ?, ?, ?, ?)
	`, msg.ID, sessionID, msg.Author, msg.Content, firstImageURL(msg))
	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

func (s *MessageStore) UpdateContent(ctx context.Context, id, content string) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE messages SET content = ?, updated_at = datetime('now') WHERE id = ?
	`, content, id)
	if err != nil {
		return fmt.Errorf("failed to update message: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("message not found")
	}

	return nil
}

// ListBySession returns a session's messages in the order they were sent.
func (s *MessageStore) ListBySession(ctx context.Context, sessionID string) ([]*domain.TranscriptEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, author, content, image_url, created_at, updated_at FROM messages
		WHERE session_id = ? ORDER BY seq ASC
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("failed to close rows", "error", err)
		}
	}()

	entries := []*domain.TranscriptEntry{}
	for rows.Next() {
		e := &domain.TranscriptEntry{}
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Author, &e.Content, &e.ImageURL, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating messages: %w", err)
	}

	return entries, nil
}

func firstImageURL(msg *domain.Message) string {
	for _, el := range msg.Elements {
		if el.URL != "" {
			return el.URL
		}
	}
	return ""
}
