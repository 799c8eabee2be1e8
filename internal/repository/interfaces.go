package repository

import (
	"context"

	"github.com/TobiAkinkuotu/flashcard-server/internal/models"
)

// ProgressRepository stores one cumulative progress record per user, keyed by
// the user's public ID. Get returns (nil, nil) when no record exists yet.
type ProgressRepository interface {
	Get(ctx context.Context, userID string) (*models.ProgressRecord, error)
	Put(ctx context.Context, userID string, rec models.ProgressRecord) error
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByPublicID(ctx context.Context, publicID string) (*models.User, error)
	Update(ctx context.Context, id int64, update models.UserUpdate) error
}

type DeckRepository interface {
	Insert(ctx context.Context, deck *models.Deck) error
	Get(ctx context.Context, id int64) (*models.Deck, error)
	List(ctx context.Context, filter models.DeckFilter) ([]models.Deck, error)
	Count(ctx context.Context, filter models.DeckFilter) (int, error)
	Delete(ctx context.Context, id int64) error
	InsertCard(ctx context.Context, card *models.Card) error
	InsertCardBatch(ctx context.Context, deckID int64, cards []models.Card) error
	CardsForDeck(ctx context.Context, deckID int64) ([]models.Card, error)
	CountCards(ctx context.Context, deckID int64) (int, error)
}

type QuizRepository interface {
	InsertSession(ctx context.Context, session *models.QuizSession) error
	GetSession(ctx context.Context, id int64) (*models.QuizSession, error)
	UpdateSession(ctx context.Context, session *models.QuizSession) error
	GetActiveSession(ctx context.Context, userID, deckID int64) (*models.QuizSession, error)
	InsertAnswer(ctx context.Context, answer *models.QuizAnswer) error
	SessionAnswers(ctx context.Context, sessionID int64) ([]models.QuizAnswer, error)
}
