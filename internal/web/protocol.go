package web

import "github.com/vbonduro/smartbite/internal/domain"

// Frame types exchanged over /ws. Every frame is a JSON object whose "type"
// field selects the shape of the rest.
const (
	// client -> server
	frameMessage = "message"
	frameAction  = "action"

	// server -> client
	frameSession      = "session"
	frameUpdate       = "update"
	frameRemoveAction = "remove_action"
	frameError        = "error"
)

// Error codes carried by error frames.
const (
	errCodeInvalidMessage = "invalid_message"
	errCodeInvalidUpload  = "invalid_upload"
	errCodeUnknownAction  = "unknown_action"
	errCodeInternal       = "internal"
)

type baseFrame struct {
	Type string `json:"type"`
}

type uploadElement struct {
	Name string `json:"name"`
	Mime string `json:"mime"`
	Data string `json:"data"` // base64
}

type messageIn struct {
	Content  string          `json:"content"`
	Elements []uploadElement `json:"elements"`
}

type actionIn struct {
	ActionID string `json:"action_id"`
	Name     string `json:"name"`
}

type sessionOut struct {
	Type      string `json:"type"`
	SessionID string `json:"session_id"`
}

type messageOut struct {
	Type string `json:"type"`
	domain.Message
}

type updateOut struct {
	Type    string `json:"type"`
	ID      string `json:"id"`
	Content string `json:"content"`
}

type removeActionOut struct {
	Type     string `json:"type"`
	ActionID string `json:"action_id"`
}

type errorOut struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}
