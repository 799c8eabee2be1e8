package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/healthz", s.handleHealth)
	r.Post("/register", s.handleRegister)
	r.Post("/login", s.handleLogin)
	r.Post("/logout", s.handleLogout)

	r.Group(func(r chi.Router) {
		r.Use(s.userMiddleware)

		r.Get("/me", s.handleMe)
		r.Patch("/me", s.handleUpdateMe)

		r.Get("/progress", s.handleGetProgress)
		r.Post("/progress/sessions", s.handleRecordSession)

		r.Get("/decks", s.handleListDecks)
		r.Post("/decks", s.handleCreateDeck)
		r.Get("/decks/{id}", s.handleGetDeck)
		r.Post("/decks/{id}/delete", s.handleDeleteDeck)
		r.Post("/decks/{id}/cards", s.handleAddCard)
		r.Post("/decks/{id}/import", s.handleImportCards)

		r.Get("/decks/{id}/quiz", s.handleStartQuiz)
		r.Get("/quizzes/{id}", s.handleGetQuiz)
		r.Post("/quizzes/{id}/answers", s.handleSubmitAnswer)
		r.Post("/quizzes/{id}/finish", s.handleFinishQuiz)
	})

	return r
}
