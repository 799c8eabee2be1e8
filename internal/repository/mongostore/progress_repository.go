package mongostore

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/TobiAkinkuotu/flashcard-server/internal/models"
	"github.com/TobiAkinkuotu/flashcard-server/internal/repository"
)

// progressRepository keeps one progress document per user, keyed by the
// user's public ID as the document _id.
type progressRepository struct {
	coll *mongo.Collection
}

func NewProgressRepository(database *mongo.Database) repository.ProgressRepository {
	return &progressRepository{coll: database.Collection("progress")}
}

type progressDocument struct {
	UserID                 string `bson:"_id"`
	Completed              int    `bson:"completed"`
	TotalCorrectAnswers    int    `bson:"totalCorrectAnswers"`
	TotalQuestionsAnswered int    `bson:"totalQuestionsAnswered"`
	Accuracy               int    `bson:"accuracy"`
	Streak                 int    `bson:"streak"`
	LastCompleted          string `bson:"lastCompleted"`
}

func (r *progressRepository) Get(ctx context.Context, userID string) (*models.ProgressRecord, error) {
	var doc progressDocument
	err := r.coll.FindOne(ctx, bson.M{"_id": userID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &models.ProgressRecord{
		Completed:              doc.Completed,
		TotalCorrectAnswers:    doc.TotalCorrectAnswers,
		TotalQuestionsAnswered: doc.TotalQuestionsAnswered,
		Accuracy:               doc.Accuracy,
		Streak:                 doc.Streak,
		LastCompleted:          doc.LastCompleted,
	}, nil
}

func (r *progressRepository) Put(ctx context.Context, userID string, rec models.ProgressRecord) error {
	doc := progressDocument{
		UserID:                 userID,
		Completed:              rec.Completed,
		TotalCorrectAnswers:    rec.TotalCorrectAnswers,
		TotalQuestionsAnswered: rec.TotalQuestionsAnswered,
		Accuracy:               rec.Accuracy,
		Streak:                 rec.Streak,
		LastCompleted:          rec.LastCompleted,
	}
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": userID}, doc, options.Replace().SetUpsert(true))
	return err
}
