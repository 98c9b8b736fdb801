package providerRepo

import (
	"context"
	"fmt"
	"time"

	"handyhub/models"
	"handyhub/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoProviderRepo implements ProviderRepository using MongoDB.
type MongoProviderRepo struct {
	coll *mongo.Collection
}

// NewMongoProviderRepo creates a ProviderRepository backed by the
// "providers" collection of the given database.
func NewMongoProviderRepo(db *mongo.Database) ProviderRepository {
	return &MongoProviderRepo{coll: db.Collection("providers")}
}

func (r *MongoProviderRepo) Create(provider *models.Provider) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := r.coll.InsertOne(ctx, provider); err != nil {
		return fmt.Errorf("failed to create provider: %w", err)
	}
	return nil
}

func (r *MongoProviderRepo) GetByID(id string) (*models.Provider, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var provider models.Provider
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&provider); err != nil {
		return nil, fmt.Errorf("failed to fetch provider with id %s: %w", id, err)
	}
	return &provider, nil
}

func (r *MongoProviderRepo) GetByEmail(email string) (*models.Provider, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var provider models.Provider
	if err := r.coll.FindOne(ctx, bson.M{"profile.email": email}).Decode(&provider); err != nil {
		return nil, fmt.Errorf("failed to fetch provider with email %s: %w", email, err)
	}
	return &provider, nil
}

func (r *MongoProviderRepo) GetByIDWithProjection(id string, proj bson.M) (*models.Provider, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	opts := options.FindOne().SetProjection(proj)
	var provider models.Provider
	if err := r.coll.FindOne(ctx, bson.M{"id": id}, opts).Decode(&provider); err != nil {
		return nil, fmt.Errorf("failed to fetch provider with id %s: %w", id, err)
	}
	return &provider, nil
}

func (r *MongoProviderRepo) UpdateFields(id string, fields bson.M) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	fields["updatedAt"] = time.Now().UTC()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update provider with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("provider with id %s: %w", id, mongo.ErrNoDocuments)
	}
	return nil
}

func (r *MongoProviderRepo) TouchLastActive(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := r.coll.UpdateOne(ctx, bson.M{"id": id},
		bson.M{"$set": bson.M{"lastActiveAt": time.Now().UTC()}})
	return err
}

func (r *MongoProviderRepo) SetVerification(id string, v models.ProviderVerification) error {
	return r.UpdateFields(id, bson.M{"verification": v})
}

// UpdateRatings overwrites the denormalized rating summary. Only the
// aggregator calls this; a failed recomputation never reaches it, so the
// previous aggregate stays in place.
func (r *MongoProviderRepo) UpdateRatings(id string, ratings models.Ratings) error {
	return r.UpdateFields(id, bson.M{"ratings": ratings})
}

func (r *MongoProviderRepo) List(filter bson.M, page utils.PageParams) ([]models.Provider, int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count providers: %w", err)
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(page.Skip()).
		SetLimit(int64(page.Limit))
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list providers: %w", err)
	}
	defer cursor.Close(ctx)
	var providers []models.Provider
	if err := cursor.All(ctx, &providers); err != nil {
		return nil, 0, fmt.Errorf("failed to decode providers: %w", err)
	}
	return providers, total, nil
}
