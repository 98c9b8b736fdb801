package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"handyhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Stats derives the dashboard summary with a single aggregation pass:
// booking counts per status and total revenue over completed bookings.
func (r *MongoBookingRepo) Stats() (*BookingStats, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.M{
			"_id":     "$status",
			"count":   bson.M{"$sum": 1},
			"revenue": bson.M{"$sum": "$pricing.totalAmount"},
		}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("booking stats aggregation failed: %w", err)
	}
	defer cursor.Close(ctx)

	stats := &BookingStats{CountsByStatus: make(map[string]int64)}
	for cursor.Next(ctx) {
		var row struct {
			Status  string  `bson:"_id"`
			Count   int64   `bson:"count"`
			Revenue float64 `bson:"revenue"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode booking stats row: %w", err)
		}
		stats.CountsByStatus[row.Status] = row.Count
		if row.Status == models.BookingCompleted {
			stats.TotalRevenue = row.Revenue
		}
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("booking stats cursor error: %w", err)
	}
	return stats, nil
}
