package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	"github.com/TobiAkinkuotu/flashcard-server/internal/db"
	"github.com/TobiAkinkuotu/flashcard-server/internal/models"
	"github.com/TobiAkinkuotu/flashcard-server/internal/repository"
)

type quizRepository struct {
	db *db.DB
}

func NewQuizRepository(database *db.DB) repository.QuizRepository {
	return &quizRepository{db: database}
}

const sessionColumns = "id, user_id, deck_id, total_cards, correct_count, answered_count, completed_at, created_at"

func (r *quizRepository) InsertSession(ctx context.Context, session *models.QuizSession) error {
	query := `
		INSERT INTO quiz_sessions (user_id, deck_id, total_cards, correct_count, answered_count)
		VALUES (?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(ctx, query,
		session.UserID, session.DeckID, session.TotalCards, session.CorrectCount, session.AnsweredCount)
	if err != nil {
		return err
	}
	session.ID = id
	return nil
}

func (r *quizRepository) GetSession(ctx context.Context, id int64) (*models.QuizSession, error) {
	return r.scanSession(r.db.QueryRowContext(ctx,
		"SELECT "+sessionColumns+" FROM quiz_sessions WHERE id = ?", id))
}

func (r *quizRepository) UpdateSession(ctx context.Context, session *models.QuizSession) error {
	query := `
		UPDATE quiz_sessions
		SET correct_count = ?, answered_count = ?, completed_at = ?
		WHERE id = ?
	`
	_, err := r.db.ExecContext(ctx, query,
		session.CorrectCount, session.AnsweredCount, session.CompletedAt, session.ID)
	return err
}

// GetActiveSession returns the newest unfinished session for the user and
// deck, or nil when every session has been completed.
func (r *quizRepository) GetActiveSession(ctx context.Context, userID, deckID int64) (*models.QuizSession, error) {
	query := "SELECT " + sessionColumns + ` FROM quiz_sessions
		WHERE user_id = ? AND deck_id = ? AND completed_at IS NULL
		ORDER BY id DESC LIMIT 1`
	return r.scanSession(r.db.QueryRowContext(ctx, query, userID, deckID))
}

func (r *quizRepository) InsertAnswer(ctx context.Context, answer *models.QuizAnswer) error {
	query := `
		INSERT INTO quiz_answers (session_id, card_id, answer, was_correct)
		VALUES (?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(ctx, query,
		answer.SessionID, answer.CardID, answer.Answer, answer.WasCorrect)
	if err != nil {
		return err
	}
	answer.ID = id
	return nil
}

func (r *quizRepository) SessionAnswers(ctx context.Context, sessionID int64) ([]models.QuizAnswer, error) {
	query := `
		SELECT id, session_id, card_id, answer, was_correct, created_at
		FROM quiz_answers
		WHERE session_id = ?
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	answers := []models.QuizAnswer{}
	for rows.Next() {
		var answer models.QuizAnswer
		if err := rows.Scan(&answer.ID, &answer.SessionID, &answer.CardID,
			&answer.Answer, &answer.WasCorrect, &answer.CreatedAt); err != nil {
			return nil, err
		}
		answers = append(answers, answer)
	}
	return answers, rows.Err()
}

func (r *quizRepository) scanSession(row *sql.Row) (*models.QuizSession, error) {
	var session models.QuizSession
	err := row.Scan(
		&session.ID,
		&session.UserID,
		&session.DeckID,
		&session.TotalCards,
		&session.CorrectCount,
		&session.AnsweredCount,
		&session.CompletedAt,
		&session.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}
