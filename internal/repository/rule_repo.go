package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"advisor-api/internal/model"
)

// RuleRepo handles MongoDB operations for the decision matrix
type RuleRepo interface {
	Create(ctx context.Context, rule *model.DecisionRule) (string, error)
	List(ctx context.Context) ([]*model.DecisionRule, error)
	Find(ctx context.Context, questionKey, answerValue string) ([]*model.DecisionRule, error)
	Exists(ctx context.Context, questionKey, answerValue, offeringKey string) (bool, error)
	Delete(ctx context.Context, id string) error
	DeleteByQuestion(ctx context.Context, questionKey string) error
	DeleteByOffering(ctx context.Context, offeringKey string) error
}

type ruleRepo struct {
	collection *mongo.Collection
}

// NewRuleRepo creates a new decision rule repository
func NewRuleRepo(db *mongo.Database) RuleRepo {
	return &ruleRepo{
		collection: db.Collection("decision_rules"),
	}
}

func (r *ruleRepo) Create(ctx context.Context, rule *model.DecisionRule) (string, error) {
	if rule.ID == "" {
		rule.ID = primitive.NewObjectID().Hex()
	}
	if _, err := r.collection.InsertOne(ctx, rule); err != nil {
		return "", err
	}
	return rule.ID, nil
}

func (r *ruleRepo) List(ctx context.Context) ([]*model.DecisionRule, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "questionKey", Value: 1},
		{Key: "answerValue", Value: 1},
		{Key: "offeringKey", Value: 1},
	})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rules []*model.DecisionRule
	if err := cursor.All(ctx, &rules); err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *ruleRepo) Find(ctx context.Context, questionKey, answerValue string) ([]*model.DecisionRule, error) {
	filter := bson.M{"questionKey": questionKey, "answerValue": answerValue}
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rules []*model.DecisionRule
	if err := cursor.All(ctx, &rules); err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *ruleRepo) Exists(ctx context.Context, questionKey, answerValue, offeringKey string) (bool, error) {
	filter := bson.M{
		"questionKey": questionKey,
		"answerValue": answerValue,
		"offeringKey": offeringKey,
	}
	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ruleRepo) Delete(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *ruleRepo) DeleteByQuestion(ctx context.Context, questionKey string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"questionKey": questionKey})
	return err
}

func (r *ruleRepo) DeleteByOffering(ctx context.Context, offeringKey string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"offeringKey": offeringKey})
	return err
}
