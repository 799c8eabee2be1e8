package sqlstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/TobiAkinkuotu/flashcard-server/internal/db"
	"github.com/TobiAkinkuotu/flashcard-server/internal/models"
	"github.com/TobiAkinkuotu/flashcard-server/internal/repository"
	"github.com/TobiAkinkuotu/flashcard-server/internal/repository/sqlstore"
	"github.com/TobiAkinkuotu/flashcard-server/internal/testutil"
)

type QuizRepositorySuite struct {
	suite.Suite
	db     *db.DB
	repo   repository.QuizRepository
	userID int64
	deckID int64
	cardID int64
}

func (s *QuizRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlstore.NewQuizRepository(s.db)

	ctx := context.Background()
	users := sqlstore.NewUserRepository(s.db)
	decks := sqlstore.NewDeckRepository(s.db)

	user := &models.User{PublicID: "pub-1", Name: "Ada", Email: "ada@example.com", PasswordHash: "x"}
	s.Require().NoError(users.Create(ctx, user))
	s.userID = user.ID

	deck := &models.Deck{UserID: user.ID, Title: "Biology"}
	s.Require().NoError(decks.Insert(ctx, deck))
	s.deckID = deck.ID

	card := &models.Card{DeckID: deck.ID, Question: "q", Answer: "a"}
	s.Require().NoError(decks.InsertCard(ctx, card))
	s.cardID = card.ID
}

func (s *QuizRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *QuizRepositorySuite) TestInsertAndGetSession() {
	ctx := context.Background()
	session := &models.QuizSession{UserID: s.userID, DeckID: s.deckID, TotalCards: 5}
	s.Require().NoError(s.repo.InsertSession(ctx, session))
	s.Greater(session.ID, int64(0))

	got, err := s.repo.GetSession(ctx, session.ID)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal(5, got.TotalCards)
	s.Nil(got.CompletedAt)
}

func (s *QuizRepositorySuite) TestActiveSessionLookup() {
	ctx := context.Background()

	active, err := s.repo.GetActiveSession(ctx, s.userID, s.deckID)
	s.Require().NoError(err)
	s.Nil(active)

	session := &models.QuizSession{UserID: s.userID, DeckID: s.deckID, TotalCards: 5}
	s.Require().NoError(s.repo.InsertSession(ctx, session))

	active, err = s.repo.GetActiveSession(ctx, s.userID, s.deckID)
	s.Require().NoError(err)
	s.Require().NotNil(active)
	s.Equal(session.ID, active.ID)

	now := time.Now().UTC()
	session.CompletedAt = &now
	s.Require().NoError(s.repo.UpdateSession(ctx, session))

	active, err = s.repo.GetActiveSession(ctx, s.userID, s.deckID)
	s.Require().NoError(err)
	s.Nil(active, "a completed session is no longer active")
}

func (s *QuizRepositorySuite) TestUpdateSessionCounts() {
	ctx := context.Background()
	session := &models.QuizSession{UserID: s.userID, DeckID: s.deckID, TotalCards: 5}
	s.Require().NoError(s.repo.InsertSession(ctx, session))

	session.CorrectCount = 3
	session.AnsweredCount = 4
	s.Require().NoError(s.repo.UpdateSession(ctx, session))

	got, err := s.repo.GetSession(ctx, session.ID)
	s.Require().NoError(err)
	s.Equal(3, got.CorrectCount)
	s.Equal(4, got.AnsweredCount)
}

func (s *QuizRepositorySuite) TestAnswersRoundtrip() {
	ctx := context.Background()
	session := &models.QuizSession{UserID: s.userID, DeckID: s.deckID, TotalCards: 1}
	s.Require().NoError(s.repo.InsertSession(ctx, session))

	answer := &models.QuizAnswer{SessionID: session.ID, CardID: s.cardID, Answer: "a", WasCorrect: true}
	s.Require().NoError(s.repo.InsertAnswer(ctx, answer))

	answers, err := s.repo.SessionAnswers(ctx, session.ID)
	s.Require().NoError(err)
	s.Require().Len(answers, 1)
	s.Equal(s.cardID, answers[0].CardID)
	s.True(answers[0].WasCorrect)
}

func TestQuizRepositorySuite(t *testing.T) {
	suite.Run(t, new(QuizRepositorySuite))
}
