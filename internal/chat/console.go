package chat

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/vbonduro/smartbite/internal/domain"
)

// ConsoleSender renders a session as plain text. Placeholder messages are
// printed when they are filled in rather than when they are first sent.
type ConsoleSender struct {
	w       io.Writer
	pending map[string]bool
	actions map[string]domain.Action
}

func NewConsoleSender(w io.Writer) *ConsoleSender {
	return &ConsoleSender{
		w:       w,
		pending: make(map[string]bool),
		actions: make(map[string]domain.Action),
	}
}

func (c *ConsoleSender) Send(_ context.Context, msg *domain.Message) error {
	if msg.Content == "" && len(msg.Elements) == 0 {
		c.pending[msg.ID] = true
		return nil
	}
	for _, a := range msg.Actions {
		c.actions[a.ID] = a
	}
	return c.print(msg)
}

func (c *ConsoleSender) Update(_ context.Context, msg *domain.Message) error {
	delete(c.pending, msg.ID)
	return c.print(msg)
}

func (c *ConsoleSender) RemoveAction(_ context.Context, action domain.Action) error {
	delete(c.actions, action.ID)
	return nil
}

// Action returns the live action registered under name, if any.
func (c *ConsoleSender) Action(name string) (domain.Action, bool) {
	for _, a := range c.actions {
		if a.Name == name {
			return a, true
		}
	}
	return domain.Action{}, false
}

func (c *ConsoleSender) print(msg *domain.Message) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", msg.Author, msg.Content)
	for _, a := range msg.Actions {
		fmt.Fprintf(&b, "  [%s] %s\n", a.Name, a.Label)
	}
	for _, el := range msg.Elements {
		fmt.Fprintf(&b, "  %s: %s\n", el.Name, el.URL)
	}
	b.WriteString("\n")
	if _, err := io.WriteString(c.w, b.String()); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	return nil
}
