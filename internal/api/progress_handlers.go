package api

import (
	"net/http"
)

func (s *Server) handleGetProgress(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	rec, err := s.ProgressService.GetProgress(r.Context(), user.PublicID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

// Counts come in as JSON numbers. Clients have been seen sending fractions
// and even negative values, so the service normalizes rather than rejects.
type recordSessionRequest struct {
	CorrectAnswers float64 `json:"correctAnswers"`
	TotalQuestions float64 `json:"totalQuestions"`
}

func (s *Server) handleRecordSession(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	var req recordSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	rec, err := s.ProgressService.RecordSession(r.Context(), user.PublicID, req.CorrectAnswers, req.TotalQuestions)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, rec)
}
