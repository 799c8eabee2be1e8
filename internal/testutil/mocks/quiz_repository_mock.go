package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/TobiAkinkuotu/flashcard-server/internal/models"
)

// MockQuizRepository is a mock implementation of repository.QuizRepository
type MockQuizRepository struct {
	mock.Mock
}

func (m *MockQuizRepository) InsertSession(ctx context.Context, session *models.QuizSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockQuizRepository) GetSession(ctx context.Context, id int64) (*models.QuizSession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.QuizSession), args.Error(1)
}

func (m *MockQuizRepository) UpdateSession(ctx context.Context, session *models.QuizSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockQuizRepository) GetActiveSession(ctx context.Context, userID, deckID int64) (*models.QuizSession, error) {
	args := m.Called(ctx, userID, deckID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.QuizSession), args.Error(1)
}

func (m *MockQuizRepository) InsertAnswer(ctx context.Context, answer *models.QuizAnswer) error {
	args := m.Called(ctx, answer)
	return args.Error(0)
}

func (m *MockQuizRepository) SessionAnswers(ctx context.Context, sessionID int64) ([]models.QuizAnswer, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.QuizAnswer), args.Error(1)
}
