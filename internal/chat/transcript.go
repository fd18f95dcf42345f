package chat

import (
	"context"
	"log/slog"

	"github.com/vbonduro/smartbite/internal/domain"
)

// Transcript persists the messages rendered during a session.
type Transcript interface {
	Create(ctx context.Context, sessionID string, msg *domain.Message) error
	UpdateContent(ctx context.Context, id, content string) error
}

type transcriptSender struct {
	next      Sender
	sessionID string
	store     Transcript
	logger    *slog.Logger
}

// WithTranscript records every message passed through next. Recording
// failures are logged and never interrupt the conversation.
func WithTranscript(next Sender, sessionID string, store Transcript, logger *slog.Logger) Sender {
	return &transcriptSender{
		next:      next,
		sessionID: sessionID,
		store:     store,
		logger:    logger,
	}
}

func (t *transcriptSender) Send(ctx context.Context, msg *domain.Message) error {
	if err := t.next.Send(ctx, msg); err != nil {
		return err
	}
	if err := t.store.Create(ctx, t.sessionID, msg); err != nil {
		t.logger.Error("failed to record message", "session_id", t.sessionID, "message_id", msg.ID, "error", err)
	}
	return nil
}

func (t *transcriptSender) Update(ctx context.Context, msg *domain.Message) error {
	if err := t.next.Update(ctx, msg); err != nil {
		return err
	}
	if err := t.store.UpdateContent(ctx, msg.ID, msg.Content); err != nil {
		t.logger.Error("failed to record message update", "session_id", t.sessionID, "message_id", msg.ID, "error", err)
	}
	return nil
}

func (t *transcriptSender) RemoveAction(ctx context.Context, action domain.Action) error {
	return t.next.RemoveAction(ctx, action)
}
