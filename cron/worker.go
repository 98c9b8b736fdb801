package cron

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	bookingRepo "handyhub/database/repository/booking"
	"handyhub/models"
	"handyhub/services/review"
	"handyhub/utils"

	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// WorkerDeps are the collaborators the background handlers need.
type WorkerDeps struct {
	Reviews  review.ReviewService
	Bookings bookingRepo.BookingRepository
}

// InitWorker runs the asynq worker in the background. Task failures are
// retried by asynq; startup failures retry with backoff before giving up.
func InitWorker(addr, password string, db int, deps WorkerDeps) {
	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: addr, Password: password, DB: db},
		asynq.Config{
			Concurrency: 10,
			Queues:      map[string]int{"default": 1},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeRatingRecompute, handleRatingRecompute(deps.Reviews))
	mux.HandleFunc(TypeBookingReminder, handleBookingReminder(deps.Bookings))

	go func() {
		logger := utils.GetLogger()
		const maxAttempts = 5
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			logger.Info("starting background worker", zap.Int("attempt", attempt))
			err := srv.Run(mux)
			if err == nil {
				return
			}
			logger.Error("background worker failed to start",
				zap.Int("attempt", attempt), zap.Error(err))
			if attempt == maxAttempts {
				logger.Error("background worker giving up after max attempts")
				return
			}
			time.Sleep(time.Duration(attempt*2) * time.Second)
		}
	}()
}

// handleRatingRecompute rescans the review set and rewrites the
// denormalized aggregates. The rescan is idempotent so redelivery is safe.
func handleRatingRecompute(reviews review.ReviewService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p ratingRecomputePayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			utils.GetLogger().Error("invalid recompute payload", zap.Error(err))
			return fmt.Errorf("invalid recompute payload: %w", err)
		}
		if err := reviews.RecomputeAggregates(p.ServiceID, p.ProviderID); err != nil {
			utils.GetLogger().Error("aggregate recompute failed",
				zap.String("serviceId", p.ServiceID),
				zap.String("providerId", p.ProviderID),
				zap.Error(err))
			return err
		}
		return nil
	}
}

// handleBookingReminder posts an upcoming-appointment note into the
// booking's message thread. Bookings that left the confirmed state since
// scheduling are skipped.
func handleBookingReminder(bookings bookingRepo.BookingRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p bookingReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			utils.GetLogger().Error("invalid reminder payload", zap.Error(err))
			return fmt.Errorf("invalid reminder payload: %w", err)
		}
		bk, err := bookings.GetByID(p.BookingID)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				utils.GetLogger().Warn("reminder for missing booking",
					zap.String("bookingId", p.BookingID))
				return nil
			}
			return err
		}
		if bk.Status != models.BookingConfirmed {
			utils.GetLogger().Debug("skipping reminder, booking no longer confirmed",
				zap.String("bookingId", p.BookingID), zap.String("status", bk.Status))
			return nil
		}
		msg := models.BookingMessage{
			From: "system",
			Body: fmt.Sprintf("Reminder: your appointment is scheduled for %s.",
				bk.ScheduledDate.Format(time.RFC1123)),
			At: time.Now().UTC(),
		}
		if err := bookings.AppendMessage(p.BookingID, msg); err != nil {
			return err
		}
		utils.GetLogger().Info("booking reminder delivered",
			zap.String("bookingId", p.BookingID))
		return nil
	}
}
