// Package chat routes chat lifecycle events to the SmartBite assistant.
//
// A transport (the WebSocket server or the terminal REPL) creates one Session
// per conversation and feeds its events to an Assistant in order:
// OnSessionStart, then any number of OnMessage/OnAction, then OnSessionEnd.
// Sessions share nothing, so different sessions may run concurrently, but the
// events of one session must not be delivered concurrently.
package chat

import (
	"context"

	"github.com/vbonduro/smartbite/internal/cart"
	"github.com/vbonduro/smartbite/internal/domain"
)

// Sender renders messages for one session. Messages arrive with their ID set;
// Update refers back to a message previously passed to Send.
type Sender interface {
	Send(ctx context.Context, msg *domain.Message) error
	Update(ctx context.Context, msg *domain.Message) error
	RemoveAction(ctx context.Context, action domain.Action) error
}

// Session is the state owned by one conversation.
type Session struct {
	ID   string
	Cart *cart.Cart
	out  Sender
}

func NewSession(id string, out Sender) *Session {
	return &Session{
		ID:   id,
		Cart: cart.New(),
		out:  out,
	}
}
