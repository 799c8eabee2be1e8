package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/TobiAkinkuotu/flashcard-server/internal/models"
)

// MockProgressRepository is a mock implementation of repository.ProgressRepository
type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) Get(ctx context.Context, userID string) (*models.ProgressRecord, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProgressRecord), args.Error(1)
}

func (m *MockProgressRepository) Put(ctx context.Context, userID string, rec models.ProgressRecord) error {
	args := m.Called(ctx, userID, rec)
	return args.Error(0)
}
