package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"advisor-api/internal/model"
)

// OfferingRepo handles MongoDB operations for the offering catalog
type OfferingRepo interface {
	Create(ctx context.Context, offering *model.Offering) error
	GetByKey(ctx context.Context, key string) (*model.Offering, error)
	GetByKeys(ctx context.Context, keys []string) ([]*model.Offering, error)
	List(ctx context.Context) ([]*model.Offering, error)
	Update(ctx context.Context, offering *model.Offering) error
	Delete(ctx context.Context, key string) error
}

type offeringRepo struct {
	collection *mongo.Collection
}

// NewOfferingRepo creates a new offering repository
func NewOfferingRepo(db *mongo.Database) OfferingRepo {
	return &offeringRepo{
		collection: db.Collection("offerings"),
	}
}

func (r *offeringRepo) Create(ctx context.Context, offering *model.Offering) error {
	offering.CreatedAt = time.Now()
	offering.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, offering)
	return err
}

func (r *offeringRepo) GetByKey(ctx context.Context, key string) (*model.Offering, error) {
	var offering model.Offering
	err := r.collection.FindOne(ctx, bson.M{"key": key}).Decode(&offering)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &offering, nil
}

func (r *offeringRepo) GetByKeys(ctx context.Context, keys []string) ([]*model.Offering, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	cursor, err := r.collection.Find(ctx, bson.M{"key": bson.M{"$in": keys}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var offerings []*model.Offering
	if err := cursor.All(ctx, &offerings); err != nil {
		return nil, err
	}
	return offerings, nil
}

func (r *offeringRepo) List(ctx context.Context) ([]*model.Offering, error) {
	opts := options.Find().SetSort(bson.D{{Key: "displayOrder", Value: 1}, {Key: "key", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var offerings []*model.Offering
	if err := cursor.All(ctx, &offerings); err != nil {
		return nil, err
	}
	return offerings, nil
}

func (r *offeringRepo) Update(ctx context.Context, offering *model.Offering) error {
	offering.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"key": offering.Key}, offering)
	return err
}

func (r *offeringRepo) Delete(ctx context.Context, key string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"key": key})
	return err
}
