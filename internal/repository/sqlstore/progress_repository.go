package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	"github.com/TobiAkinkuotu/flashcard-server/internal/db"
	"github.com/TobiAkinkuotu/flashcard-server/internal/models"
	"github.com/TobiAkinkuotu/flashcard-server/internal/repository"
)

type progressRepository struct {
	db *db.DB
}

// NewProgressRepository returns a SQL-backed progress store.
func NewProgressRepository(database *db.DB) repository.ProgressRepository {
	return &progressRepository{db: database}
}

func (r *progressRepository) Get(ctx context.Context, userID string) (*models.ProgressRecord, error) {
	query := `
		SELECT completed, total_correct, total_answered, accuracy, streak, last_completed
		FROM progress
		WHERE user_id = ?
	`
	var rec models.ProgressRecord
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&rec.Completed,
		&rec.TotalCorrectAnswers,
		&rec.TotalQuestionsAnswered,
		&rec.Accuracy,
		&rec.Streak,
		&rec.LastCompleted,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *progressRepository) Put(ctx context.Context, userID string, rec models.ProgressRecord) error {
	query := r.db.Dialect().UpsertProgressQuery()
	_, err := r.db.ExecContext(ctx, query,
		userID,
		rec.Completed,
		rec.TotalCorrectAnswers,
		rec.TotalQuestionsAnswered,
		rec.Accuracy,
		rec.Streak,
		rec.LastCompleted,
	)
	return err
}
