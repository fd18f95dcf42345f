package stockimage

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestURL(t *testing.T) {
	l := New("", false, slog.Default())

	assert.Equal(t, "https://source.unsplash.com/600x400/?egg,food", l.URL("egg"))
	assert.Equal(t, "https://source.unsplash.com/600x400/?recipe,food", l.URL(""))
	assert.Equal(t, "https://source.unsplash.com/600x400/?hot+dog,food", l.URL("hot dog"))
}

func TestResolveWithoutValidation(t *testing.T) {
	// Unreachable base URL is still returned when validation is off.
	l := New("http://localhost:99999/", false, slog.Default())

	u, ok := l.Resolve(context.Background(), "tomato")
	assert.True(t, ok)
	assert.Equal(t, "http://localhost:99999/?tomato,food", u)
}

func TestResolveWithValidation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		if r.URL.RawQuery == "missing,food" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	l := New(server.URL+"/", true, slog.Default())

	_, ok := l.Resolve(context.Background(), "egg")
	assert.True(t, ok)

	_, ok = l.Resolve(context.Background(), "missing")
	assert.False(t, ok)
}

func TestResolveValidationUnreachable(t *testing.T) {
	l := New("http://localhost:99999/", true, slog.Default())

	_, ok := l.Resolve(context.Background(), "egg")
	assert.False(t, ok)
}

func TestResolveLogsHiddenImage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	var buf bytes.Buffer
	l := New(server.URL+"/", true, slog.New(slog.NewJSONHandler(&buf, nil)))

	_, ok := l.Resolve(context.Background(), "egg")
	assert.False(t, ok)
	assert.Contains(t, buf.String(), "stock image lookup failed")
	assert.Contains(t, buf.String(), `"status":404`)
}
