package services

import (
	"context"
	"time"

	"github.com/TobiAkinkuotu/flashcard-server/internal/errors"
	"github.com/TobiAkinkuotu/flashcard-server/internal/logger"
	"github.com/TobiAkinkuotu/flashcard-server/internal/models"
	"github.com/TobiAkinkuotu/flashcard-server/internal/progress"
	"github.com/TobiAkinkuotu/flashcard-server/internal/repository"
)

// ProgressService handles cumulative per-user study statistics
type ProgressService interface {
	GetProgress(ctx context.Context, userID string) (models.ProgressRecord, error)
	RecordSession(ctx context.Context, userID string, sessionCorrect, sessionTotal float64) (models.ProgressRecord, error)
}

type progressService struct {
	progressRepo repository.ProgressRepository
	now          func() time.Time
}

// ProgressOption configures a ProgressService.
type ProgressOption func(*progressService)

// WithClock replaces the time source, used by tests.
func WithClock(now func() time.Time) ProgressOption {
	return func(s *progressService) { s.now = now }
}

// NewProgressService creates a new ProgressService
func NewProgressService(progressRepo repository.ProgressRepository, opts ...ProgressOption) ProgressService {
	s := &progressService{
		progressRepo: progressRepo,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetProgress returns the user's record, or the zero-value defaults for a
// user who has never finished a session. Absence is not an error.
func (s *progressService) GetProgress(ctx context.Context, userID string) (models.ProgressRecord, error) {
	if userID == "" {
		return models.ProgressRecord{}, errors.NewValidationError("user id is required")
	}

	rec, err := s.progressRepo.Get(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Error("failed to load progress: user_id=%s: %v", userID, err)
		return models.ProgressRecord{}, errors.NewPersistenceError(err)
	}
	if rec == nil {
		return models.ProgressRecord{}, nil
	}
	return *rec, nil
}

// RecordSession merges one finished session into the user's record and
// persists the result. Counts arrive as floats because clients send JSON
// numbers; anything unusable is clamped rather than rejected.
//
// Read and write are not atomic. Two sessions finishing at the same instant
// can race and the later write wins; for a single user updating their own
// record this is acceptable.
func (s *progressService) RecordSession(ctx context.Context, userID string, sessionCorrect, sessionTotal float64) (models.ProgressRecord, error) {
	log := logger.FromContext(ctx)

	if userID == "" {
		return models.ProgressRecord{}, errors.NewValidationError("user id is required")
	}

	stored, err := s.progressRepo.Get(ctx, userID)
	if err != nil {
		log.Error("failed to load progress: user_id=%s: %v", userID, err)
		return models.ProgressRecord{}, errors.NewPersistenceError(err)
	}

	current := models.ProgressRecord{}
	if stored != nil {
		current = *stored
	}

	updated := progress.Apply(current,
		progress.NormalizeCount(sessionCorrect),
		progress.NormalizeCount(sessionTotal),
		s.now())

	if err := s.progressRepo.Put(ctx, userID, updated); err != nil {
		log.Error("failed to store progress: user_id=%s: %v", userID, err)
		return models.ProgressRecord{}, errors.NewPersistenceError(err)
	}

	log.Debug("recorded session: user_id=%s, streak=%d, completed=%d", userID, updated.Streak, updated.Completed)
	return updated, nil
}
