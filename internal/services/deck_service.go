package services

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/TobiAkinkuotu/flashcard-server/internal/errors"
	"github.com/TobiAkinkuotu/flashcard-server/internal/logger"
	"github.com/TobiAkinkuotu/flashcard-server/internal/models"
	"github.com/TobiAkinkuotu/flashcard-server/internal/repository"
)

// DeckService handles deck and card management
type DeckService interface {
	CreateDeck(ctx context.Context, userID int64, title, subtitle string) (*models.Deck, error)
	GetDeck(ctx context.Context, userID, deckID int64) (*models.Deck, error)
	ListDecks(ctx context.Context, filter models.DeckFilter) ([]models.Deck, int, error)
	DeleteDeck(ctx context.Context, userID, deckID int64) error
	AddCard(ctx context.Context, userID, deckID int64, question, answer string) (*models.Card, error)
	ImportCards(ctx context.Context, deckID int64, payload []byte) (int, error)
}

type deckService struct {
	deckRepo repository.DeckRepository
}

// NewDeckService creates a new DeckService
func NewDeckService(deckRepo repository.DeckRepository) DeckService {
	return &deckService{deckRepo: deckRepo}
}

func (s *deckService) CreateDeck(ctx context.Context, userID int64, title, subtitle string) (*models.Deck, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, errors.NewValidationError("title is required")
	}

	deck := &models.Deck{UserID: userID, Title: title, Subtitle: strings.TrimSpace(subtitle)}
	if err := s.deckRepo.Insert(ctx, deck); err != nil {
		logger.FromContext(ctx).Error("failed to create deck: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return deck, nil
}

// GetDeck loads a deck and verifies it belongs to the requesting user.
// Decks owned by someone else are reported as not found rather than
// forbidden so the API does not leak which IDs exist.
func (s *deckService) GetDeck(ctx context.Context, userID, deckID int64) (*models.Deck, error) {
	deck, err := s.deckRepo.Get(ctx, deckID)
	if err != nil {
		logger.FromContext(ctx).Error("failed to load deck: deck_id=%d: %v", deckID, err)
		return nil, errors.NewInternalError(err)
	}
	if deck == nil || deck.UserID != userID {
		return nil, errors.NewNotFoundError("deck not found")
	}
	return deck, nil
}

func (s *deckService) ListDecks(ctx context.Context, filter models.DeckFilter) ([]models.Deck, int, error) {
	log := logger.FromContext(ctx)

	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 50
	}

	decks, err := s.deckRepo.List(ctx, filter)
	if err != nil {
		log.Error("failed to list decks: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}
	total, err := s.deckRepo.Count(ctx, filter)
	if err != nil {
		log.Error("failed to count decks: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}
	return decks, total, nil
}

func (s *deckService) DeleteDeck(ctx context.Context, userID, deckID int64) error {
	if _, err := s.GetDeck(ctx, userID, deckID); err != nil {
		return err
	}
	if err := s.deckRepo.Delete(ctx, deckID); err != nil {
		logger.FromContext(ctx).Error("failed to delete deck: deck_id=%d: %v", deckID, err)
		return errors.NewInternalError(err)
	}
	return nil
}

func (s *deckService) AddCard(ctx context.Context, userID, deckID int64, question, answer string) (*models.Card, error) {
	if _, err := s.GetDeck(ctx, userID, deckID); err != nil {
		return nil, err
	}

	question = strings.TrimSpace(question)
	answer = strings.TrimSpace(answer)
	if question == "" || answer == "" {
		return nil, errors.NewValidationError("question and answer are required")
	}

	card := &models.Card{DeckID: deckID, Question: question, Answer: answer}
	if err := s.deckRepo.InsertCard(ctx, card); err != nil {
		logger.FromContext(ctx).Error("failed to add card: deck_id=%d: %v", deckID, err)
		return nil, errors.NewInternalError(err)
	}
	return card, nil
}

type importedCard struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// ImportCards parses a JSON array of question/answer pairs and inserts the
// usable ones in one batch. Entries with a blank question or answer are
// skipped, not treated as errors. Ownership is checked by the caller before
// the job is queued.
func (s *deckService) ImportCards(ctx context.Context, deckID int64, payload []byte) (int, error) {
	log := logger.FromContext(ctx)

	var entries []importedCard
	if err := json.Unmarshal(payload, &entries); err != nil {
		return 0, errors.NewBadRequestError("payload must be a JSON array of {question, answer} objects")
	}

	cards := make([]models.Card, 0, len(entries))
	for _, entry := range entries {
		question := strings.TrimSpace(entry.Question)
		answer := strings.TrimSpace(entry.Answer)
		if question == "" || answer == "" {
			continue
		}
		cards = append(cards, models.Card{Question: question, Answer: answer})
	}
	if len(cards) == 0 {
		return 0, errors.NewValidationError("no usable cards in payload")
	}

	if err := s.deckRepo.InsertCardBatch(ctx, deckID, cards); err != nil {
		log.Error("failed to import cards: deck_id=%d: %v", deckID, err)
		return 0, errors.NewInternalError(err)
	}

	total, err := s.deckRepo.CountCards(ctx, deckID)
	if err != nil {
		log.Warn("failed to count cards after import: deck_id=%d: %v", deckID, err)
	}
	log.Info("imported cards: deck_id=%d, added=%d, skipped=%d, total=%d", deckID, len(cards), len(entries)-len(cards), total)
	return len(cards), nil
}
