package domain

import (
	"strings"
	"time"
)

// AssistantAuthor is the author name shown on messages produced by the assistant.
const AssistantAuthor = "smartbite"

// Action is a user-clickable command attached to a message.
type Action struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Label   string         `json:"label"`
	Payload map[string]any `json:"payload,omitempty"`
}

// Element is a file attached to a message. Incoming elements reference an
// uploaded file by Path (its storage key); outgoing elements reference an
// external image by URL.
type Element struct {
	Name    string `json:"name"`
	Mime    string `json:"mime,omitempty"`
	Path    string `json:"path,omitempty"`
	URL     string `json:"url,omitempty"`
	Display string `json:"display,omitempty"`
}

// IsImage reports whether the element carries an image content type.
func (e Element) IsImage() bool {
	return strings.Contains(e.Mime, "image")
}

// Message is a chat message rendered to the user. ID is assigned by the
// sender on first send and is used for later updates.
type Message struct {
	ID       string    `json:"id"`
	Author   string    `json:"author,omitempty"`
	Content  string    `json:"content"`
	Actions  []Action  `json:"actions,omitempty"`
	Elements []Element `json:"elements,omitempty"`
}

// IncomingMessage is a message submitted by the user.
type IncomingMessage struct {
	Content  string
	Elements []Element
}

type ChatSession struct {
	ID        string
	StartedAt time.Time
	EndedAt   *time.Time
}

// TranscriptEntry is the persisted form of a message sent during a session.
type TranscriptEntry struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	ImageURL  string    `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
