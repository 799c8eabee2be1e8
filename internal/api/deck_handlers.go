package api

import (
	"io"
	"net/http"
	"strconv"

	"github.com/TobiAkinkuotu/flashcard-server/internal/errors"
	"github.com/TobiAkinkuotu/flashcard-server/internal/models"
	"github.com/TobiAkinkuotu/flashcard-server/internal/worker"
)

type createDeckRequest struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
}

func (s *Server) handleCreateDeck(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	var req createDeckRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	deck, err := s.DeckService.CreateDeck(r.Context(), user.ID, req.Title, req.Subtitle)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, deck)
}

func (s *Server) handleListDecks(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	q := r.URL.Query()

	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))

	filter := models.DeckFilter{
		UserID:   user.ID,
		Title:    q.Get("title"),
		Limit:    limit,
		Offset:   offset,
		OrderBy:  q.Get("order_by"),
		OrderDir: q.Get("order_dir"),
	}

	decks, total, err := s.DeckService.ListDecks(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"decks": decks,
		"total": total,
	})
}

func (s *Server) handleGetDeck(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	deckID, err := pathID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	deck, err := s.DeckService.GetDeck(r.Context(), user.ID, deckID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, deck)
}

func (s *Server) handleDeleteDeck(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	deckID, err := pathID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.DeckService.DeleteDeck(r.Context(), user.ID, deckID); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type addCardRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

func (s *Server) handleAddCard(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	deckID, err := pathID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req addCardRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	card, err := s.DeckService.AddCard(r.Context(), user.ID, deckID, req.Question, req.Answer)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, card)
}

// handleImportCards accepts a JSON array of cards and queues the insert on
// the worker pool. Ownership is checked here, before the job is queued,
// because the job itself runs without the user's context.
func (s *Server) handleImportCards(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	deckID, err := pathID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	if _, err := s.DeckService.GetDeck(r.Context(), user.ID, deckID); err != nil {
		handleError(w, r, err)
		return
	}

	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		handleError(w, r, errors.NewBadRequestError("payload too large or unreadable"))
		return
	}

	job := &worker.ImportCardsJob{Decks: s.DeckService, DeckID: deckID, Payload: payload}
	if !s.ImportPool.TrySubmit(job) {
		handleError(w, r, errors.NewUnavailableError("import queue is full, try again later"))
		return
	}

	respondJSON(w, http.StatusAccepted, map[string]any{
		"status": "queued",
	})
}
