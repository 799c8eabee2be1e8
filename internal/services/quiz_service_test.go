package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/TobiAkinkuotu/flashcard-server/internal/errors"
	"github.com/TobiAkinkuotu/flashcard-server/internal/models"
	"github.com/TobiAkinkuotu/flashcard-server/internal/services"
	"github.com/TobiAkinkuotu/flashcard-server/internal/testutil/mocks"
)

func testUser() *models.User {
	return &models.User{ID: 1, PublicID: "pub-1", Name: "Ada", Email: "ada@example.com"}
}

func quizFixtures() (*mocks.MockQuizRepository, *mocks.MockDeckRepository, *mocks.MockProgressRepository, services.QuizService) {
	quizRepo := new(mocks.MockQuizRepository)
	deckRepo := new(mocks.MockDeckRepository)
	progressRepo := new(mocks.MockProgressRepository)
	progressSvc := services.NewProgressService(progressRepo, services.WithClock(fixedClock("2024-03-10T14:00:00Z")))
	svc := services.NewQuizService(quizRepo, deckRepo, progressSvc)
	return quizRepo, deckRepo, progressRepo, svc
}

func TestStartQuiz_CreatesSession(t *testing.T) {
	quizRepo, deckRepo, _, svc := quizFixtures()

	deckRepo.On("Get", mock.Anything, int64(7)).Return(&models.Deck{ID: 7, UserID: 1, Title: "Biology"}, nil)
	deckRepo.On("CardsForDeck", mock.Anything, int64(7)).Return([]models.Card{
		{ID: 1, DeckID: 7, Question: "q1", Answer: "a1"},
		{ID: 2, DeckID: 7, Question: "q2", Answer: "a2"},
	}, nil)
	quizRepo.On("GetActiveSession", mock.Anything, int64(1), int64(7)).Return(nil, nil)
	quizRepo.On("InsertSession", mock.Anything, mock.AnythingOfType("*models.QuizSession")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.QuizSession).ID = 42
		}).Return(nil)

	session, cards, err := svc.StartQuiz(context.Background(), 1, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(42), session.ID)
	assert.Equal(t, 2, session.TotalCards)
	assert.Len(t, cards, 2)
}

func TestStartQuiz_ResumesActiveSession(t *testing.T) {
	quizRepo, deckRepo, _, svc := quizFixtures()

	deckRepo.On("Get", mock.Anything, int64(7)).Return(&models.Deck{ID: 7, UserID: 1}, nil)
	deckRepo.On("CardsForDeck", mock.Anything, int64(7)).Return([]models.Card{{ID: 1}}, nil)
	quizRepo.On("GetActiveSession", mock.Anything, int64(1), int64(7)).
		Return(&models.QuizSession{ID: 9, UserID: 1, DeckID: 7, TotalCards: 1, AnsweredCount: 1}, nil)

	session, _, err := svc.StartQuiz(context.Background(), 1, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(9), session.ID, "the open session is resumed")
	quizRepo.AssertNotCalled(t, "InsertSession")
}

func TestStartQuiz_OtherUsersDeckIsNotFound(t *testing.T) {
	_, deckRepo, _, svc := quizFixtures()

	deckRepo.On("Get", mock.Anything, int64(7)).Return(&models.Deck{ID: 7, UserID: 99}, nil)

	_, _, err := svc.StartQuiz(context.Background(), 1, 7)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestStartQuiz_EmptyDeckRejected(t *testing.T) {
	_, deckRepo, _, svc := quizFixtures()

	deckRepo.On("Get", mock.Anything, int64(7)).Return(&models.Deck{ID: 7, UserID: 1}, nil)
	deckRepo.On("CardsForDeck", mock.Anything, int64(7)).Return([]models.Card{}, nil)

	_, _, err := svc.StartQuiz(context.Background(), 1, 7)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestSubmitAnswer_ComparesNormalized(t *testing.T) {
	quizRepo, deckRepo, _, svc := quizFixtures()

	quizRepo.On("GetSession", mock.Anything, int64(5)).
		Return(&models.QuizSession{ID: 5, UserID: 1, DeckID: 7, TotalCards: 1}, nil)
	deckRepo.On("CardsForDeck", mock.Anything, int64(7)).
		Return([]models.Card{{ID: 3, DeckID: 7, Question: "Capital of France?", Answer: "Paris"}}, nil)
	quizRepo.On("InsertAnswer", mock.Anything, mock.AnythingOfType("*models.QuizAnswer")).Return(nil)
	quizRepo.On("UpdateSession", mock.Anything, mock.AnythingOfType("*models.QuizSession")).Return(nil)

	answer, err := svc.SubmitAnswer(context.Background(), 1, 5, 3, "  paris ")
	require.NoError(t, err)
	assert.True(t, answer.WasCorrect, "comparison ignores case and surrounding whitespace")
}

func TestSubmitAnswer_FinishedSessionRejected(t *testing.T) {
	quizRepo, _, _, svc := quizFixtures()

	done := time.Now().UTC()
	quizRepo.On("GetSession", mock.Anything, int64(5)).
		Return(&models.QuizSession{ID: 5, UserID: 1, DeckID: 7, CompletedAt: &done}, nil)

	_, err := svc.SubmitAnswer(context.Background(), 1, 5, 3, "paris")
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CONFLICT", appErr.Code)
	quizRepo.AssertNotCalled(t, "InsertAnswer")
}

func TestFinishQuiz_RecordsProgressOnce(t *testing.T) {
	quizRepo, _, progressRepo, svc := quizFixtures()

	quizRepo.On("GetSession", mock.Anything, int64(5)).
		Return(&models.QuizSession{ID: 5, UserID: 1, DeckID: 7, TotalCards: 4, CorrectCount: 3, AnsweredCount: 4}, nil)
	quizRepo.On("UpdateSession", mock.Anything, mock.AnythingOfType("*models.QuizSession")).Return(nil)
	progressRepo.On("Get", mock.Anything, "pub-1").Return(nil, nil)
	progressRepo.On("Put", mock.Anything, "pub-1", mock.AnythingOfType("models.ProgressRecord")).Return(nil)

	session, rec, err := svc.FinishQuiz(context.Background(), testUser(), 5)
	require.NoError(t, err)
	require.NotNil(t, session.CompletedAt)
	assert.Equal(t, 1, rec.Completed)
	assert.Equal(t, 3, rec.TotalCorrectAnswers)
	assert.Equal(t, 4, rec.TotalQuestionsAnswered)
	assert.Equal(t, 75, rec.Accuracy)
	progressRepo.AssertNumberOfCalls(t, "Put", 1)
}

func TestFinishQuiz_AlreadyFinishedDoesNotDoubleCount(t *testing.T) {
	quizRepo, _, progressRepo, svc := quizFixtures()

	done := time.Now().UTC()
	quizRepo.On("GetSession", mock.Anything, int64(5)).
		Return(&models.QuizSession{ID: 5, UserID: 1, DeckID: 7, CompletedAt: &done}, nil)

	_, _, err := svc.FinishQuiz(context.Background(), testUser(), 5)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CONFLICT", appErr.Code)
	progressRepo.AssertNotCalled(t, "Put")
}

func TestSessionSummary_ReturnsAnswers(t *testing.T) {
	quizRepo, _, _, svc := quizFixtures()

	quizRepo.On("GetSession", mock.Anything, int64(5)).
		Return(&models.QuizSession{ID: 5, UserID: 1, DeckID: 7, TotalCards: 2, CorrectCount: 1, AnsweredCount: 2}, nil)
	quizRepo.On("SessionAnswers", mock.Anything, int64(5)).Return([]models.QuizAnswer{
		{ID: 1, SessionID: 5, CardID: 3, Answer: "paris", WasCorrect: true},
		{ID: 2, SessionID: 5, CardID: 4, Answer: "rome", WasCorrect: false},
	}, nil)

	session, answers, err := svc.SessionSummary(context.Background(), 1, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), session.ID)
	require.Len(t, answers, 2)
	assert.True(t, answers[0].WasCorrect)
	assert.False(t, answers[1].WasCorrect)
}

func TestSessionSummary_SomeoneElsesSessionIsNotFound(t *testing.T) {
	quizRepo, _, _, svc := quizFixtures()

	quizRepo.On("GetSession", mock.Anything, int64(5)).
		Return(&models.QuizSession{ID: 5, UserID: 99, DeckID: 7}, nil)

	_, _, err := svc.SessionSummary(context.Background(), 1, 5)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
	quizRepo.AssertNotCalled(t, "SessionAnswers")
}

func TestFinishQuiz_SomeoneElsesSessionIsNotFound(t *testing.T) {
	quizRepo, _, _, svc := quizFixtures()

	quizRepo.On("GetSession", mock.Anything, int64(5)).
		Return(&models.QuizSession{ID: 5, UserID: 99, DeckID: 7}, nil)

	_, _, err := svc.FinishQuiz(context.Background(), testUser(), 5)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}
