package worker

import (
	"context"
)

// CardImporter is the slice of the deck service the import job needs.
type CardImporter interface {
	ImportCards(ctx context.Context, deckID int64, payload []byte) (int, error)
}

// ImportCardsJob parses and inserts an uploaded card file in the background.
type ImportCardsJob struct {
	Decks   CardImporter
	DeckID  int64
	Payload []byte
}

func (j *ImportCardsJob) Name() string { return "import_cards" }

func (j *ImportCardsJob) Run(ctx context.Context) error {
	_, err := j.Decks.ImportCards(ctx, j.DeckID, j.Payload)
	return err
}
