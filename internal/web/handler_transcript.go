package web

import (
	"encoding/json"
	"net/http"
)

func (s *Server) handleListMessages(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	sess, err := s.sessions.GetByID(r.Context(), id)
	if err != nil {
		http.Error(w, "failed to get session", http.StatusInternalServerError)
		s.logger.Error("get session failed", "session_id", id, "error", err)
		return
	}
	if sess == nil {
		http.NotFound(w, r)
		return
	}

	entries, err := s.messages.ListBySession(r.Context(), id)
	if err != nil {
		http.Error(w, "failed to list messages", http.StatusInternalServerError)
		s.logger.Error("list messages failed", "session_id", id, "error", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]any{
		"session_id": sess.ID,
		"started_at": sess.StartedAt,
		"ended_at":   sess.EndedAt,
		"messages":   entries,
	}); err != nil {
		s.logger.Error("encode transcript failed", "session_id", id, "error", err)
	}
}
