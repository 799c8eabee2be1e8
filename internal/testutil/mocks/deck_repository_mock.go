package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/TobiAkinkuotu/flashcard-server/internal/models"
)

// MockDeckRepository is a mock implementation of repository.DeckRepository
type MockDeckRepository struct {
	mock.Mock
}

func (m *MockDeckRepository) Insert(ctx context.Context, deck *models.Deck) error {
	args := m.Called(ctx, deck)
	return args.Error(0)
}

func (m *MockDeckRepository) Get(ctx context.Context, id int64) (*models.Deck, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Deck), args.Error(1)
}

func (m *MockDeckRepository) List(ctx context.Context, filter models.DeckFilter) ([]models.Deck, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Deck), args.Error(1)
}

func (m *MockDeckRepository) Count(ctx context.Context, filter models.DeckFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

func (m *MockDeckRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDeckRepository) InsertCard(ctx context.Context, card *models.Card) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockDeckRepository) InsertCardBatch(ctx context.Context, deckID int64, cards []models.Card) error {
	args := m.Called(ctx, deckID, cards)
	return args.Error(0)
}

func (m *MockDeckRepository) CardsForDeck(ctx context.Context, deckID int64) ([]models.Card, error) {
	args := m.Called(ctx, deckID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Card), args.Error(1)
}

func (m *MockDeckRepository) CountCards(ctx context.Context, deckID int64) (int, error) {
	args := m.Called(ctx, deckID)
	return args.Int(0), args.Error(1)
}
