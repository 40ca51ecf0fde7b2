package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"advisor-api/internal/model"
)

// AnswerRepo handles MongoDB operations for answers
type AnswerRepo interface {
	Upsert(ctx context.Context, answer *model.Answer) error
	GetBySubmission(ctx context.Context, submissionID string) ([]*model.Answer, error)
	DeleteBySubmission(ctx context.Context, submissionID string) error
}

type answerRepo struct {
	collection *mongo.Collection
}

// NewAnswerRepo creates a new answer repository
func NewAnswerRepo(db *mongo.Database) AnswerRepo {
	return &answerRepo{
		collection: db.Collection("answers"),
	}
}

// Upsert replaces any prior value for the (submission, question) key as
// a delete-then-insert. Retrying the same submission is idempotent:
// same key, same effect.
func (r *answerRepo) Upsert(ctx context.Context, answer *model.Answer) error {
	if answer.AnsweredAt.IsZero() {
		answer.AnsweredAt = time.Now()
	}

	filter := bson.M{
		"submissionId": answer.SubmissionID,
		"questionKey":  answer.QuestionKey,
	}
	if _, err := r.collection.DeleteMany(ctx, filter); err != nil {
		return err
	}

	if answer.ID == "" {
		answer.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.collection.InsertOne(ctx, answer)
	return err
}

func (r *answerRepo) GetBySubmission(ctx context.Context, submissionID string) ([]*model.Answer, error) {
	opts := options.Find().SetSort(bson.D{{Key: "answeredAt", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"submissionId": submissionID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var answers []*model.Answer
	if err := cursor.All(ctx, &answers); err != nil {
		return nil, err
	}
	return answers, nil
}

func (r *answerRepo) DeleteBySubmission(ctx context.Context, submissionID string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"submissionId": submissionID})
	return err
}
