package api

import (
	"net/http"

	"github.com/TobiAkinkuotu/flashcard-server/internal/models"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	user, err := s.UserService.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		handleError(w, r, err)
		return
	}

	setSessionCookie(w, user.PublicID)
	respondJSON(w, http.StatusCreated, user)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	user, err := s.UserService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		handleError(w, r, err)
		return
	}

	setSessionCookie(w, user.PublicID)
	respondJSON(w, http.StatusOK, user)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	clearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, userFromContext(r.Context()))
}

type updateMeRequest struct {
	Name      *string `json:"name"`
	AvatarURL *string `json:"avatarUrl"`
}

func (s *Server) handleUpdateMe(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	var req updateMeRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	updated, err := s.UserService.UpdateProfile(r.Context(), user.PublicID, models.UserUpdate{
		Name:      req.Name,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}
