package adminRepo

import (
	"context"
	"fmt"
	"time"

	"handyhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoAdminRepo implements AdminRepository using MongoDB.
type MongoAdminRepo struct {
	coll *mongo.Collection
}

// NewMongoAdminRepo creates an AdminRepository backed by the "admins"
// collection of the given database.
func NewMongoAdminRepo(db *mongo.Database) AdminRepository {
	return &MongoAdminRepo{coll: db.Collection("admins")}
}

func (r *MongoAdminRepo) Create(admin *models.Admin) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := r.coll.InsertOne(ctx, admin); err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}
	return nil
}

func (r *MongoAdminRepo) GetByID(id string) (*models.Admin, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var admin models.Admin
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&admin); err != nil {
		return nil, fmt.Errorf("failed to fetch admin with id %s: %w", id, err)
	}
	return &admin, nil
}

func (r *MongoAdminRepo) GetByEmail(email string) (*models.Admin, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var admin models.Admin
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&admin); err != nil {
		return nil, fmt.Errorf("failed to fetch admin with email %s: %w", email, err)
	}
	return &admin, nil
}

func (r *MongoAdminRepo) GetByIDWithProjection(id string, proj bson.M) (*models.Admin, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	opts := options.FindOne().SetProjection(proj)
	var admin models.Admin
	if err := r.coll.FindOne(ctx, bson.M{"id": id}, opts).Decode(&admin); err != nil {
		return nil, fmt.Errorf("failed to fetch admin with id %s: %w", id, err)
	}
	return &admin, nil
}

func (r *MongoAdminRepo) TouchLastActive(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := r.coll.UpdateOne(ctx, bson.M{"id": id},
		bson.M{"$set": bson.M{"lastActiveAt": time.Now().UTC()}})
	return err
}

// EnsureIndexes creates the unique id/email indexes.
func (r *MongoAdminRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create admin indexes: %w", err)
	}
	return nil
}
