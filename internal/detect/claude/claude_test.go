package claude

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/liushuangls/go-anthropic/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func messageResponse(text string) map[string]any {
	return map[string]any{
		"id":          "msg_test",
		"type":        "message",
		"role":        "assistant",
		"model":       "claude-opus-4-6",
		"stop_reason": "end_turn",
		"content": []map[string]any{
			{"type": "text", "text": text},
		},
		"usage": map[string]any{"input_tokens": 10, "output_tokens": 5},
	}
}

func TestClaudeDetect(t *testing.T) {
	var gotKey string
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/messages"))
		gotKey = r.Header.Get("x-api-key")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(messageResponse("Here are the ingredients:\nEgg\ntomato\negg"))
	}))
	defer server.Close()

	d := NewClaudeDetector("sk-test", "claude-opus-4-6", anthropic.WithBaseURL(server.URL))

	res, err := d.Detect(context.Background(), bytes.NewReader([]byte{0xFF, 0xD8}), "image/heic")
	require.NoError(t, err)

	assert.Equal(t, "sk-test", gotKey)
	assert.Equal(t, "claude-opus-4-6", gotBody["model"])
	assert.Len(t, res.Boxes, 3)
	assert.Equal(t, []string{"egg", "tomato"}, res.Labels())

	// The image block is sent first with a MIME type the API accepts.
	msgs := gotBody["messages"].([]any)
	content := msgs[0].(map[string]any)["content"].([]any)
	source := content[0].(map[string]any)["source"].(map[string]any)
	assert.Equal(t, "image/jpeg", source["media_type"])
}

func TestClaudeDetectNothingFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(messageResponse(""))
	}))
	defer server.Close()

	d := NewClaudeDetector("sk-test", "claude-opus-4-6", anthropic.WithBaseURL(server.URL))
	res, err := d.Detect(context.Background(), bytes.NewReader([]byte{0xFF, 0xD8}), "image/png")
	require.NoError(t, err)
	assert.True(t, res.Empty())
}

func TestClaudeDetectAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"rate_limit_error","message":"rate limited"}}`))
	}))
	defer server.Close()

	d := NewClaudeDetector("sk-test", "claude-opus-4-6", anthropic.WithBaseURL(server.URL))
	_, err := d.Detect(context.Background(), bytes.NewReader([]byte{0xFF, 0xD8}), "image/jpeg")
	assert.Error(t, err)
}

func TestClaudeDetectReadError(t *testing.T) {
	d := NewClaudeDetector("sk-test", "claude-opus-4-6")
	_, err := d.Detect(context.Background(), &errReader{}, "image/jpeg")
	assert.Error(t, err)
}

func TestNormaliseMIME(t *testing.T) {
	assert.Equal(t, "image/png", normaliseMIME("image/png"))
	assert.Equal(t, "image/webp", normaliseMIME("image/webp"))
	assert.Equal(t, "image/jpeg", normaliseMIME("image/heic"))
}

// errReader always returns an error on Read.
type errReader struct{}

func (e *errReader) Read(_ []byte) (int, error) {
	return 0, io.ErrUnexpectedEOF
}
