package api

import (
	"net/http"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.DB.Ping(r.Context()); err != nil {
		respondJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": "degraded",
		})
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"status":       "ok",
		"import_queue": s.ImportPool.QueueSize(),
	})
}
