// Package stockimage builds stock-photo URLs for suggested dishes.
package stockimage

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
)

// DefaultBaseURL serves a random 600x400 photo matching the query terms.
const DefaultBaseURL = "https://source.unsplash.com/600x400/"

// FallbackQuery is used when there is nothing to search for.
const FallbackQuery = "recipe"

type Lookup struct {
	baseURL  string
	validate bool
	client   *http.Client
	logger   *slog.Logger
}

// New returns a Lookup. With validate set, Resolve checks that the URL answers
// before returning it; otherwise URLs are returned unchecked.
func New(baseURL string, validate bool, logger *slog.Logger) *Lookup {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Lookup{
		baseURL:  baseURL,
		validate: validate,
		client:   &http.Client{},
		logger:   logger,
	}
}

// URL returns the stock photo URL for query without any network call.
func (l *Lookup) URL(query string) string {
	if query == "" {
		query = FallbackQuery
	}
	return fmt.Sprintf("%s?%s,food", l.baseURL, url.QueryEscape(query))
}

// Resolve returns the URL for query and whether it should be shown. Without
// validation it is always shown. With validation, a failed or non-2xx/3xx
// HEAD request hides it.
func (l *Lookup) Resolve(ctx context.Context, query string) (string, bool) {
	u := l.URL(query)
	if !l.validate {
		return u, true
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, u, nil)
	if err != nil {
		l.logger.Warn("stock image request invalid", "url", u, "error", err)
		return u, false
	}
	resp, err := l.client.Do(req)
	if err != nil {
		l.logger.Warn("stock image unreachable", "url", u, "error", err)
		return u, false
	}
	_ = resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		l.logger.Warn("stock image lookup failed", "url", u, "status", resp.StatusCode)
		return u, false
	}
	return u, true
}
