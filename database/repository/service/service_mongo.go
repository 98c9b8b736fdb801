package serviceRepo

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

// MongoServiceRepo implements ServiceRepository using MongoDB.
type MongoServiceRepo struct {
	coll *mongo.Collection
}

// NewMongoServiceRepo creates a ServiceRepository backed by the "services"
// collection of the given database.
func NewMongoServiceRepo(db *mongo.Database) ServiceRepository {
	return &MongoServiceRepo{coll: db.Collection("services")}
}

func (r *MongoServiceRepo) Create(service *models.Service) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := r.coll.InsertOne(ctx, service); err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	return nil
}

func (r *MongoServiceRepo) GetByID(id string) (*models.Service, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var service models.Service
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&service); err != nil {
		return nil, fmt.Errorf("failed to fetch service with id %s: %w", id, err)
	}
	return &service, nil
}

func (r *MongoServiceRepo) UpdateFields(id string, fields bson.M) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	fields["updatedAt"] = time.Now().UTC()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update service with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("service with id %s: %w", id, mongo.ErrNoDocuments)
	}
	return nil
}

func (r *MongoServiceRepo) AddImage(id string, imageURL string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{
		"$push": bson.M{"images": imageURL},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("failed to add image to service %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("service with id %s: %w", id, mongo.ErrNoDocuments)
	}
	return nil
}

// UpdateRatings overwrites the denormalized rating summary. Only the
// aggregator calls this.
func (r *MongoServiceRepo) UpdateRatings(id string, ratings models.Ratings) error {
	return r.UpdateFields(id, bson.M{"ratings": ratings})
}

// Search lists services matching the criteria, newest first unless a sort
// is requested.
func (r *MongoServiceRepo) Search(criteria ServiceSearchCriteria, page utils.PageParams) ([]models.Service, int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if criteria.Status != "" {
		filter["status"] = criteria.Status
	}
	if criteria.Category != "" {
		filter["category"] = bson.M{"$regex": criteria.Category, "$options": "i"}
	}
	if criteria.ProviderID != "" {
		filter["providerId"] = criteria.ProviderID
	}
	if criteria.Query != "" {
		filter["name"] = bson.M{"$regex": criteria.Query, "$options": "i"}
	}
	price := bson.M{}
	if criteria.MinPrice > 0 {
		price["$gte"] = criteria.MinPrice
	}
	if criteria.MaxPrice > 0 {
		price["$lte"] = criteria.MaxPrice
	}
	if len(price) > 0 {
		filter["price.amount"] = price
	}
	if criteria.MinRating > 0 {
		filter["ratings.averageRating"] = bson.M{"$gte": criteria.MinRating}
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count services: %w", err)
	}

	sort := bson.D{{Key: "createdAt", Value: -1}}
	switch criteria.SortBy {
	case "price":
		sort = bson.D{{Key: "price.amount", Value: 1}}
	case "rating":
		sort = bson.D{{Key: "ratings.averageRating", Value: -1}}
	}
	opts := options.Find().
		SetSort(sort).
		SetSkip(page.Skip()).
		SetLimit(int64(page.Limit))

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("service search query failed: %w", err)
	}
	defer cursor.Close(ctx)
	var services []models.Service
	if err := cursor.All(ctx, &services); err != nil {
		return nil, 0, fmt.Errorf("failed to decode services: %w", err)
	}
	return services, total, nil
}
