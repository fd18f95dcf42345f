// Package cart holds the shopping list owned by a single chat session.
//
// Nothing in the assistant currently adds items; the cart renders and clears
// whatever it holds, so it stays empty until an insertion path exists.
package cart

import (
	"fmt"
	"strings"
)

// Cart is an ordered list of shopping items. Duplicates are kept and items
// render in insertion order. A Cart belongs to one session and is not safe
// for concurrent use.
type Cart struct {
	items []string
}

func New() *Cart {
	return &Cart{}
}

func (c *Cart) Add(items ...string) {
	c.items = append(c.items, items...)
}

// Items returns a copy of the cart contents.
func (c *Cart) Items() []string {
	out := make([]string, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) Len() int {
	return len(c.items)
}

func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

func (c *Cart) Clear() {
	c.items = nil
}

// Bulleted renders header followed by one "• item" line per item.
func (c *Cart) Bulleted(header string) string {
	var b strings.Builder
	b.WriteString(header)
	for _, item := range c.items {
		b.WriteString("\n• ")
		b.WriteString(item)
	}
	return b.String()
}

// Numbered renders header, a blank line, then a 1-based numbered list.
func (c *Cart) Numbered(header string) string {
	lines := make([]string, 0, len(c.items))
	for i, item := range c.items {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, item))
	}
	return header + "\n\n" + strings.Join(lines, "\n")
}
