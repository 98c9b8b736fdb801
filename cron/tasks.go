package cron

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"handyhub/utils"
)

const (
	TypeRatingRecompute = "rating:recompute"
	TypeBookingReminder = "booking:reminder"
)

// ratingRecomputePayload identifies the entities whose denormalized
// aggregates must be rescanned.
type ratingRecomputePayload struct {
	ServiceID  string `json:"serviceId"`
	ProviderID string `json:"providerId"`
}

// bookingReminderPayload identifies the booking a reminder fires for.
type bookingReminderPayload struct {
	BookingID string `json:"bookingId"`
}

// Enqueuer pushes background tasks onto the asynq queue. It satisfies
// both the review service's AggregateEnqueuer and the booking service's
// ReminderEnqueuer.
type Enqueuer struct {
	client *asynq.Client
}

// NewEnqueuer builds an Enqueuer over the given redis queue.
func NewEnqueuer(addr, password string, db int) *Enqueuer {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &Enqueuer{client: client}
}

// EnqueueRecompute schedules a full aggregate rescan for the service and
// its provider. Duplicate tasks are harmless, the rescan is idempotent.
func (e *Enqueuer) EnqueueRecompute(serviceID, providerID string) error {
	payload, err := json.Marshal(ratingRecomputePayload{ServiceID: serviceID, ProviderID: providerID})
	if err != nil {
		return fmt.Errorf("failed to marshal recompute payload: %w", err)
	}
	task := asynq.NewTask(TypeRatingRecompute, payload)
	if _, err := e.client.Enqueue(task, asynq.MaxRetry(3)); err != nil {
		return fmt.Errorf("failed to enqueue recompute task: %w", err)
	}
	utils.GetLogger().Debug("enqueued rating recompute",
		zap.String("serviceId", serviceID), zap.String("providerId", providerID))
	return nil
}

// EnqueueReminder schedules a booking reminder to fire at the given time.
func (e *Enqueuer) EnqueueReminder(bookingID string, at time.Time) error {
	payload, err := json.Marshal(bookingReminderPayload{BookingID: bookingID})
	if err != nil {
		return fmt.Errorf("failed to marshal reminder payload: %w", err)
	}
	task := asynq.NewTask(TypeBookingReminder, payload)
	if _, err := e.client.Enqueue(task, asynq.ProcessAt(at), asynq.MaxRetry(3)); err != nil {
		return fmt.Errorf("failed to enqueue reminder task: %w", err)
	}
	utils.GetLogger().Debug("enqueued booking reminder",
		zap.String("bookingId", bookingID), zap.Time("at", at))
	return nil
}

// Close releases the underlying queue connection.
func (e *Enqueuer) Close() error {
	return e.client.Close()
}
