package api

import (
	"net/http"
)

func (s *Server) handleStartQuiz(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	deckID, err := pathID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	session, cards, err := s.QuizService.StartQuiz(r.Context(), user.ID, deckID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"session": session,
		"cards":   cards,
	})
}

func (s *Server) handleGetQuiz(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	sessionID, err := pathID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	session, answers, err := s.QuizService.SessionSummary(r.Context(), user.ID, sessionID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"session": session,
		"answers": answers,
	})
}

type submitAnswerRequest struct {
	CardID int64  `json:"cardId"`
	Answer string `json:"answer"`
}

func (s *Server) handleSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	sessionID, err := pathID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req submitAnswerRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	answer, err := s.QuizService.SubmitAnswer(r.Context(), user.ID, sessionID, req.CardID, req.Answer)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, answer)
}

func (s *Server) handleFinishQuiz(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	sessionID, err := pathID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	session, rec, err := s.QuizService.FinishQuiz(r.Context(), user, sessionID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"session":  session,
		"progress": rec,
	})
}
