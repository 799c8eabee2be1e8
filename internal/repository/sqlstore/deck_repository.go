package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/TobiAkinkuotu/flashcard-server/internal/db"
	"github.com/TobiAkinkuotu/flashcard-server/internal/models"
	"github.com/TobiAkinkuotu/flashcard-server/internal/repository"
)

type deckRepository struct {
	db      *db.DB
	builder squirrel.StatementBuilderType
}

func NewDeckRepository(database *db.DB) repository.DeckRepository {
	return &deckRepository{
		db:      database,
		builder: squirrel.StatementBuilder.PlaceholderFormat(database.Dialect().Placeholder()),
	}
}

func (r *deckRepository) Insert(ctx context.Context, deck *models.Deck) error {
	query := "INSERT INTO decks (user_id, title, subtitle) VALUES (?, ?, ?)"
	id, err := r.db.ExecReturningID(ctx, query, deck.UserID, deck.Title, deck.Subtitle)
	if err != nil {
		return err
	}
	deck.ID = id
	return nil
}

func (r *deckRepository) Get(ctx context.Context, id int64) (*models.Deck, error) {
	query := `
		SELECT d.id, d.user_id, d.title, d.subtitle, d.created_at,
		       (SELECT COUNT(*) FROM cards c WHERE c.deck_id = d.id) AS card_count
		FROM decks d
		WHERE d.id = ?
	`
	var deck models.Deck
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&deck.ID, &deck.UserID, &deck.Title, &deck.Subtitle, &deck.CreatedAt, &deck.CardCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &deck, nil
}

func (r *deckRepository) List(ctx context.Context, filter models.DeckFilter) ([]models.Deck, error) {
	q := r.builder.
		Select("d.id", "d.user_id", "d.title", "d.subtitle", "d.created_at",
			"(SELECT COUNT(*) FROM cards c WHERE c.deck_id = d.id) AS card_count").
		From("decks d")

	q = applyDeckFilter(q, filter)
	q = q.OrderBy(deckOrderClause(filter))
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	// The builder already used the right placeholders; query the pool directly.
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	decks := []models.Deck{}
	for rows.Next() {
		var deck models.Deck
		if err := rows.Scan(&deck.ID, &deck.UserID, &deck.Title, &deck.Subtitle,
			&deck.CreatedAt, &deck.CardCount); err != nil {
			return nil, err
		}
		decks = append(decks, deck)
	}
	return decks, rows.Err()
}

func (r *deckRepository) Count(ctx context.Context, filter models.DeckFilter) (int, error) {
	q := applyDeckFilter(r.builder.Select("COUNT(*)").From("decks d"), filter)
	query, args, err := q.ToSql()
	if err != nil {
		return 0, err
	}
	var count int
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&count)
	return count, err
}

func applyDeckFilter(q squirrel.SelectBuilder, filter models.DeckFilter) squirrel.SelectBuilder {
	if filter.UserID != 0 {
		q = q.Where(squirrel.Eq{"d.user_id": filter.UserID})
	}
	if filter.Title != "" {
		q = q.Where(squirrel.Like{"d.title": "%" + filter.Title + "%"})
	}
	return q
}

// deckOrderClause whitelists sortable columns so client input never reaches
// the ORDER BY clause directly.
func deckOrderClause(filter models.DeckFilter) string {
	column := "d.created_at"
	switch filter.OrderBy {
	case "title":
		column = "d.title"
	case "created_at", "":
	}
	dir := "DESC"
	if strings.EqualFold(filter.OrderDir, "asc") {
		dir = "ASC"
	}
	return column + " " + dir
}

// Delete removes a deck and everything hanging off it in one transaction.
func (r *deckRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	steps := []string{
		`DELETE FROM quiz_answers WHERE session_id IN (SELECT id FROM quiz_sessions WHERE deck_id = ?)`,
		`DELETE FROM quiz_sessions WHERE deck_id = ?`,
		`DELETE FROM cards WHERE deck_id = ?`,
		`DELETE FROM decks WHERE id = ?`,
	}
	for _, step := range steps {
		if _, err := tx.ExecContext(ctx, r.db.Rewrite(step), id); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *deckRepository) InsertCard(ctx context.Context, card *models.Card) error {
	query := "INSERT INTO cards (deck_id, question, answer) VALUES (?, ?, ?)"
	id, err := r.db.ExecReturningID(ctx, query, card.DeckID, card.Question, card.Answer)
	if err != nil {
		return err
	}
	card.ID = id
	return nil
}

// InsertCardBatch inserts all cards or none of them.
func (r *deckRepository) InsertCardBatch(ctx context.Context, deckID int64, cards []models.Card) error {
	if len(cards) == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := r.db.Rewrite("INSERT INTO cards (deck_id, question, answer) VALUES (?, ?, ?)")
	for _, card := range cards {
		if _, err := tx.ExecContext(ctx, query, deckID, card.Question, card.Answer); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *deckRepository) CardsForDeck(ctx context.Context, deckID int64) ([]models.Card, error) {
	query := "SELECT id, deck_id, question, answer, created_at FROM cards WHERE deck_id = ? ORDER BY id"
	rows, err := r.db.QueryContext(ctx, query, deckID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cards := []models.Card{}
	for rows.Next() {
		var card models.Card
		if err := rows.Scan(&card.ID, &card.DeckID, &card.Question, &card.Answer, &card.CreatedAt); err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, rows.Err()
}

func (r *deckRepository) CountCards(ctx context.Context, deckID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM cards WHERE deck_id = ?", deckID).Scan(&count)
	return count, err
}
