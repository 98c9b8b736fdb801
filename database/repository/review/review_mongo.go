package reviewRepo

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

// MongoReviewRepo implements ReviewRepository using MongoDB.
type MongoReviewRepo struct {
	coll *mongo.Collection
}

// NewMongoReviewRepo creates a ReviewRepository backed by the "reviews"
// collection of the given database.
func NewMongoReviewRepo(db *mongo.Database) ReviewRepository {
	return &MongoReviewRepo{coll: db.Collection("reviews")}
}

func (r *MongoReviewRepo) Create(review *models.Review) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := r.coll.InsertOne(ctx, review); err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

func (r *MongoReviewRepo) GetByID(id string) (*models.Review, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var review models.Review
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&review); err != nil {
		return nil, fmt.Errorf("failed to fetch review with id %s: %w", id, err)
	}
	return &review, nil
}

func (r *MongoReviewRepo) FindByBookingAndUser(bookingID, userID string) (*models.Review, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var review models.Review
	filter := bson.M{"bookingId": bookingID, "userId": userID}
	if err := r.coll.FindOne(ctx, filter).Decode(&review); err != nil {
		return nil, fmt.Errorf("failed to fetch review for booking %s by user %s: %w", bookingID, userID, err)
	}
	return &review, nil
}

func (r *MongoReviewRepo) List(filter bson.M, page utils.PageParams) ([]models.Review, int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(page.Skip()).
		SetLimit(int64(page.Limit))
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer cursor.Close(ctx)
	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, 0, fmt.Errorf("failed to decode reviews: %w", err)
	}
	return reviews, total, nil
}

func (r *MongoReviewRepo) SetStatus(id, status string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{
		"$set": bson.M{"status": status, "updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("failed to set status of review %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("review with id %s: %w", id, mongo.ErrNoDocuments)
	}
	return nil
}

// MarkHelpful adds userID to the helpful set and bumps the count in the
// same update. The filter excludes reviews already voted by this user, so
// repeating the call is a no-op. Returns whether the document changed.
func (r *MongoReviewRepo) MarkHelpful(id, userID string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	filter := bson.M{"id": id, "helpful.users": bson.M{"$ne": userID}}
	update := bson.M{
		"$addToSet": bson.M{"helpful.users": userID},
		"$inc":      bson.M{"helpful.count": 1},
		"$set":      bson.M{"updatedAt": time.Now().UTC()},
	}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to mark review %s helpful: %w", id, err)
	}
	return result.ModifiedCount > 0, nil
}

// UnmarkHelpful is the inverse of MarkHelpful, a no-op when the user has
// not voted.
func (r *MongoReviewRepo) UnmarkHelpful(id, userID string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	filter := bson.M{"id": id, "helpful.users": userID}
	update := bson.M{
		"$pull": bson.M{"helpful.users": userID},
		"$inc":  bson.M{"helpful.count": -1},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to unmark review %s helpful: %w", id, err)
	}
	return result.ModifiedCount > 0, nil
}
