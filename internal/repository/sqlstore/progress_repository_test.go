package sqlstore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/TobiAkinkuotu/flashcard-server/internal/db"
	"github.com/TobiAkinkuotu/flashcard-server/internal/models"
	"github.com/TobiAkinkuotu/flashcard-server/internal/repository"
	"github.com/TobiAkinkuotu/flashcard-server/internal/repository/sqlstore"
	"github.com/TobiAkinkuotu/flashcard-server/internal/testutil"
)

type ProgressRepositorySuite struct {
	suite.Suite
	db   *db.DB
	repo repository.ProgressRepository
}

func (s *ProgressRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlstore.NewProgressRepository(s.db)
}

func (s *ProgressRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *ProgressRepositorySuite) TestGetMissingReturnsNil() {
	rec, err := s.repo.Get(context.Background(), "nobody")
	s.Require().NoError(err)
	s.Nil(rec)
}

func (s *ProgressRepositorySuite) TestPutThenGet() {
	ctx := context.Background()
	want := models.ProgressRecord{
		Completed:              3,
		TotalCorrectAnswers:    17,
		TotalQuestionsAnswered: 20,
		Accuracy:               85,
		Streak:                 3,
		LastCompleted:          "2024-03-10",
	}

	s.Require().NoError(s.repo.Put(ctx, "user-1", want))

	got, err := s.repo.Get(ctx, "user-1")
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal(want, *got)
}

func (s *ProgressRepositorySuite) TestPutOverwritesExistingRecord() {
	ctx := context.Background()

	first := models.ProgressRecord{Completed: 1, TotalCorrectAnswers: 2, TotalQuestionsAnswered: 4, Accuracy: 50, Streak: 1, LastCompleted: "2024-03-10"}
	second := models.ProgressRecord{Completed: 2, TotalCorrectAnswers: 5, TotalQuestionsAnswered: 8, Accuracy: 63, Streak: 2, LastCompleted: "2024-03-11"}

	s.Require().NoError(s.repo.Put(ctx, "user-1", first))
	s.Require().NoError(s.repo.Put(ctx, "user-1", second))

	got, err := s.repo.Get(ctx, "user-1")
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal(second, *got)
}

func (s *ProgressRepositorySuite) TestRecordsAreIsolatedPerUser() {
	ctx := context.Background()

	s.Require().NoError(s.repo.Put(ctx, "alice", models.ProgressRecord{Completed: 1, Streak: 1}))
	s.Require().NoError(s.repo.Put(ctx, "bob", models.ProgressRecord{Completed: 9, Streak: 4}))

	alice, err := s.repo.Get(ctx, "alice")
	s.Require().NoError(err)
	s.Equal(1, alice.Completed)

	bob, err := s.repo.Get(ctx, "bob")
	s.Require().NoError(err)
	s.Equal(9, bob.Completed)
	s.Equal(4, bob.Streak)
}

func TestProgressRepositorySuite(t *testing.T) {
	suite.Run(t, new(ProgressRepositorySuite))
}
