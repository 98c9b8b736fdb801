package reviewRepo

import (
	"context"
	"fmt"
	"math"
	"time"

	"handyhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// consideredStatuses are the review statuses that count toward aggregates.
// Rejected and hidden reviews are excluded.
var consideredStatuses = []string{models.ReviewPending, models.ReviewApproved}

// AggregateForService derives the rating summary for a service strictly
// from the current review set. A zero-review service yields a zero summary.
func (r *MongoReviewRepo) AggregateForService(serviceID string) (models.Ratings, error) {
	return r.aggregate(bson.M{"serviceId": serviceID})
}

// AggregateForProvider derives the rating summary for a provider across
// all of its services.
func (r *MongoReviewRepo) AggregateForProvider(providerID string) (models.Ratings, error) {
	return r.aggregate(bson.M{"providerId": providerID})
}

func (r *MongoReviewRepo) aggregate(match bson.M) (models.Ratings, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	match["status"] = bson.M{"$in": consideredStatuses}
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: match}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":     nil,
			"average": bson.M{"$avg": "$rating"},
			"total":   bson.M{"$sum": 1},
		}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return models.Ratings{}, fmt.Errorf("rating aggregation failed: %w", err)
	}
	defer cursor.Close(ctx)

	if !cursor.Next(ctx) {
		if err := cursor.Err(); err != nil {
			return models.Ratings{}, fmt.Errorf("rating aggregation cursor error: %w", err)
		}
		// No considered reviews left.
		return models.Ratings{}, nil
	}
	var row struct {
		Average float64 `bson:"average"`
		Total   int     `bson:"total"`
	}
	if err := cursor.Decode(&row); err != nil {
		return models.Ratings{}, fmt.Errorf("failed to decode rating aggregation: %w", err)
	}
	return models.Ratings{
		AverageRating: roundToOneDecimal(row.Average),
		TotalReviews:  row.Total,
	}, nil
}

func roundToOneDecimal(v float64) float64 {
	return math.Round(v*10) / 10
}
