package services

import (
	"context"
	"strings"
	"time"

	"github.com/TobiAkinkuotu/flashcard-server/internal/errors"
	"github.com/TobiAkinkuotu/flashcard-server/internal/logger"
	"github.com/TobiAkinkuotu/flashcard-server/internal/models"
	"github.com/TobiAkinkuotu/flashcard-server/internal/repository"
)

// QuizService runs quiz sessions over a deck and feeds finished sessions
// into the progress record
type QuizService interface {
	StartQuiz(ctx context.Context, userID, deckID int64) (*models.QuizSession, []models.Card, error)
	SubmitAnswer(ctx context.Context, userID, sessionID, cardID int64, answer string) (*models.QuizAnswer, error)
	FinishQuiz(ctx context.Context, user *models.User, sessionID int64) (*models.QuizSession, models.ProgressRecord, error)
	SessionSummary(ctx context.Context, userID, sessionID int64) (*models.QuizSession, []models.QuizAnswer, error)
}

type quizService struct {
	quizRepo    repository.QuizRepository
	deckRepo    repository.DeckRepository
	progressSvc ProgressService
	now         func() time.Time
}

// NewQuizService creates a new QuizService
func NewQuizService(quizRepo repository.QuizRepository, deckRepo repository.DeckRepository, progressSvc ProgressService) QuizService {
	return &quizService{
		quizRepo:    quizRepo,
		deckRepo:    deckRepo,
		progressSvc: progressSvc,
		now:         time.Now,
	}
}

// StartQuiz opens a session over the deck's cards. If the user already has an
// unfinished session on this deck it is resumed instead of starting another.
func (s *quizService) StartQuiz(ctx context.Context, userID, deckID int64) (*models.QuizSession, []models.Card, error) {
	log := logger.FromContext(ctx)

	deck, err := s.deckRepo.Get(ctx, deckID)
	if err != nil {
		log.Error("failed to load deck: deck_id=%d: %v", deckID, err)
		return nil, nil, errors.NewInternalError(err)
	}
	if deck == nil || deck.UserID != userID {
		return nil, nil, errors.NewNotFoundError("deck not found")
	}

	cards, err := s.deckRepo.CardsForDeck(ctx, deckID)
	if err != nil {
		log.Error("failed to load cards: deck_id=%d: %v", deckID, err)
		return nil, nil, errors.NewInternalError(err)
	}
	if len(cards) == 0 {
		return nil, nil, errors.NewValidationError("deck has no cards to quiz")
	}

	active, err := s.quizRepo.GetActiveSession(ctx, userID, deckID)
	if err != nil {
		log.Error("failed to check active session: %v", err)
		return nil, nil, errors.NewInternalError(err)
	}
	if active != nil {
		return active, cards, nil
	}

	session := &models.QuizSession{UserID: userID, DeckID: deckID, TotalCards: len(cards)}
	if err := s.quizRepo.InsertSession(ctx, session); err != nil {
		log.Error("failed to create session: %v", err)
		return nil, nil, errors.NewInternalError(err)
	}
	return session, cards, nil
}

func (s *quizService) SubmitAnswer(ctx context.Context, userID, sessionID, cardID int64, answer string) (*models.QuizAnswer, error) {
	log := logger.FromContext(ctx)

	session, err := s.loadOwnedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.CompletedAt != nil {
		return nil, errors.NewConflictError("quiz is already finished")
	}

	card, err := s.cardInDeck(ctx, session.DeckID, cardID)
	if err != nil {
		return nil, err
	}

	quizAnswer := &models.QuizAnswer{
		SessionID:  sessionID,
		CardID:     cardID,
		Answer:     answer,
		WasCorrect: answersMatch(answer, card.Answer),
	}
	if err := s.quizRepo.InsertAnswer(ctx, quizAnswer); err != nil {
		log.Error("failed to record answer: session_id=%d: %v", sessionID, err)
		return nil, errors.NewInternalError(err)
	}

	session.AnsweredCount++
	if quizAnswer.WasCorrect {
		session.CorrectCount++
	}
	if err := s.quizRepo.UpdateSession(ctx, session); err != nil {
		log.Error("failed to update session counts: session_id=%d: %v", sessionID, err)
		return nil, errors.NewInternalError(err)
	}
	return quizAnswer, nil
}

// FinishQuiz closes the session and records it in the user's progress
// exactly once. Finishing an already finished session is a conflict, which
// keeps a double-tapped finish button from inflating the totals.
func (s *quizService) FinishQuiz(ctx context.Context, user *models.User, sessionID int64) (*models.QuizSession, models.ProgressRecord, error) {
	log := logger.FromContext(ctx)

	session, err := s.loadOwnedSession(ctx, user.ID, sessionID)
	if err != nil {
		return nil, models.ProgressRecord{}, err
	}
	if session.CompletedAt != nil {
		return nil, models.ProgressRecord{}, errors.NewConflictError("quiz is already finished")
	}

	completedAt := s.now().UTC()
	session.CompletedAt = &completedAt
	if err := s.quizRepo.UpdateSession(ctx, session); err != nil {
		log.Error("failed to close session: session_id=%d: %v", sessionID, err)
		return nil, models.ProgressRecord{}, errors.NewInternalError(err)
	}

	rec, err := s.progressSvc.RecordSession(ctx, user.PublicID,
		float64(session.CorrectCount), float64(session.AnsweredCount))
	if err != nil {
		return nil, models.ProgressRecord{}, err
	}
	return session, rec, nil
}

// SessionSummary returns a session and every answer recorded against it.
func (s *quizService) SessionSummary(ctx context.Context, userID, sessionID int64) (*models.QuizSession, []models.QuizAnswer, error) {
	session, err := s.loadOwnedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, nil, err
	}

	answers, err := s.quizRepo.SessionAnswers(ctx, sessionID)
	if err != nil {
		logger.FromContext(ctx).Error("failed to load answers: session_id=%d: %v", sessionID, err)
		return nil, nil, errors.NewInternalError(err)
	}
	return session, answers, nil
}

func (s *quizService) loadOwnedSession(ctx context.Context, userID, sessionID int64) (*models.QuizSession, error) {
	session, err := s.quizRepo.GetSession(ctx, sessionID)
	if err != nil {
		logger.FromContext(ctx).Error("failed to load session: session_id=%d: %v", sessionID, err)
		return nil, errors.NewInternalError(err)
	}
	if session == nil || session.UserID != userID {
		return nil, errors.NewNotFoundError("quiz session not found")
	}
	return session, nil
}

func (s *quizService) cardInDeck(ctx context.Context, deckID, cardID int64) (*models.Card, error) {
	cards, err := s.deckRepo.CardsForDeck(ctx, deckID)
	if err != nil {
		logger.FromContext(ctx).Error("failed to load cards: deck_id=%d: %v", deckID, err)
		return nil, errors.NewInternalError(err)
	}
	for i := range cards {
		if cards[i].ID == cardID {
			return &cards[i], nil
		}
	}
	return nil, errors.NewNotFoundError("card not found in this deck")
}

// answersMatch compares case-insensitively with surrounding whitespace
// stripped, so "Paris " counts for "paris".
func answersMatch(given, expected string) bool {
	return strings.EqualFold(strings.TrimSpace(given), strings.TrimSpace(expected))
}
