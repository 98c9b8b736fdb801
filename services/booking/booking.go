package booking

import (
	"errors"
	"fmt"
	"time"

	bookingRepo "handyhub/database/repository/booking"
	serviceRepo "handyhub/database/repository/service"
	"handyhub/models"
	"handyhub/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const (
	maxReasonLength  = 500
	maxMessageLength = 2000
	reminderLead     = 24 * time.Hour
)

// DefaultBookingService is the production BookingService.
type DefaultBookingService struct {
	Repo        bookingRepo.BookingRepository
	ServiceRepo serviceRepo.ServiceRepository
	Reminders   ReminderEnqueuer
	Logger      *zap.Logger
}

func (s *DefaultBookingService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return utils.GetLogger()
}

// CreateBooking opens a pending booking for an active service. Provider
// and pricing are derived from the service record, never from the client.
func (s *DefaultBookingService) CreateBooking(userID string, in CreateBookingInput) (*models.Booking, error) {
	var fields []utils.FieldError
	if in.ServiceID == "" {
		fields = append(fields, utils.FieldError{Field: "serviceId", Message: "is required"})
	}
	if in.ScheduledDate.IsZero() {
		fields = append(fields, utils.FieldError{Field: "scheduledDate", Message: "is required"})
	} else if in.ScheduledDate.Before(time.Now()) {
		fields = append(fields, utils.FieldError{Field: "scheduledDate", Message: "must be in the future", Value: in.ScheduledDate})
	}
	if len(fields) > 0 {
		return nil, utils.NewValidationError(fields)
	}

	svc, err := s.ServiceRepo.GetByID(in.ServiceID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NewAppError(utils.CodeNotFound, "service not found")
		}
		return nil, err
	}
	if svc.Status != models.ServiceActive {
		return nil, utils.NewValidationError([]utils.FieldError{{
			Field:   "serviceId",
			Message: "service is not available for booking",
			Value:   svc.Status,
		}})
	}

	now := time.Now().UTC()
	booking := &models.Booking{
		ID:            uuid.NewString(),
		UserID:        userID,
		ProviderID:    svc.ProviderID,
		ServiceID:     svc.ID,
		Status:        models.BookingPending,
		ScheduledDate: in.ScheduledDate.UTC(),
		Address:       in.Address,
		Pricing:       models.BookingPricing{TotalAmount: svc.Price.Amount, Currency: "USD"},
		Notes:         in.Notes,
		StatusHistory: []models.StatusChange{{
			Status: models.BookingPending,
			By:     utils.AudienceUser,
			At:     now,
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.Create(booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// GetBooking returns the booking when the actor is its customer, its
// provider, or an admin.
func (s *DefaultBookingService) GetBooking(id string, actor models.Actor) (*models.Booking, error) {
	booking, err := s.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NewAppError(utils.CodeNotFound, "booking not found")
		}
		return nil, err
	}
	if !canAccess(booking, actor) {
		return nil, utils.NewAppError(utils.CodeForbidden, "you do not have access to this booking")
	}
	return booking, nil
}

func canAccess(b *models.Booking, actor models.Actor) bool {
	switch actor.Role {
	case utils.AudienceAdmin:
		return true
	case utils.AudienceUser:
		return b.UserID == actor.ID
	case utils.AudienceProvider:
		return b.ProviderID == actor.ID
	default:
		return false
	}
}

// ListBookings lists bookings scoped to the actor: users see their own,
// providers see bookings addressed to them, admins see everything.
func (s *DefaultBookingService) ListBookings(actor models.Actor, filter ListFilter, page utils.PageParams) ([]models.Booking, int64, error) {
	f := bson.M{}
	switch actor.Role {
	case utils.AudienceUser:
		f["userId"] = actor.ID
	case utils.AudienceProvider:
		f["providerId"] = actor.ID
	case utils.AudienceAdmin:
	default:
		return nil, 0, utils.NewAppError(utils.CodeForbidden, "unknown role")
	}
	if filter.Status != "" {
		if !ValidStatus(filter.Status) {
			return nil, 0, utils.NewValidationError([]utils.FieldError{{
				Field: "status", Message: "is not a valid booking status", Value: filter.Status,
			}})
		}
		f["status"] = filter.Status
	}
	date := bson.M{}
	if !filter.DateFrom.IsZero() {
		date["$gte"] = filter.DateFrom
	}
	if !filter.DateTo.IsZero() {
		date["$lte"] = filter.DateTo
	}
	if len(date) > 0 {
		f["scheduledDate"] = date
	}
	return s.Repo.List(f, page)
}

// UpdateBooking applies the allow-listed non-status fields. Status changes
// go through UpdateStatus exclusively.
func (s *DefaultBookingService) UpdateBooking(id string, actor models.Actor, in UpdateBookingInput) (*models.Booking, error) {
	booking, err := s.GetBooking(id, actor)
	if err != nil {
		return nil, err
	}
	if IsTerminal(booking.Status) {
		return nil, utils.NewValidationError([]utils.FieldError{{
			Field: "status", Message: "booking is closed and can no longer be edited", Value: booking.Status,
		}})
	}

	fields := bson.M{}
	if in.ScheduledDate != nil {
		if in.ScheduledDate.Before(time.Now()) {
			return nil, utils.NewValidationError([]utils.FieldError{{
				Field: "scheduledDate", Message: "must be in the future", Value: *in.ScheduledDate,
			}})
		}
		fields["scheduledDate"] = in.ScheduledDate.UTC()
	}
	if in.Address != nil {
		fields["address"] = *in.Address
	}
	if in.Notes != nil {
		fields["notes"] = *in.Notes
	}
	if len(fields) == 0 {
		return booking, nil
	}
	if err := s.Repo.UpdateFields(id, fields); err != nil {
		return nil, err
	}
	return s.Repo.GetByID(id)
}

// UpdateStatus drives the status machine. Only the booking's provider or
// an admin may call it; the target must be a member of the status enum and
// reachable from the current status.
func (s *DefaultBookingService) UpdateStatus(id string, actor models.Actor, target, reason string) (*models.Booking, error) {
	if !ValidStatus(target) {
		return nil, utils.NewValidationError([]utils.FieldError{{
			Field: "status", Message: "is not a valid booking status", Value: target,
		}})
	}
	if len(reason) > maxReasonLength {
		return nil, utils.NewValidationError([]utils.FieldError{{
			Field: "reason", Message: fmt.Sprintf("must be at most %d characters", maxReasonLength),
		}})
	}
	if actor.Role != utils.AudienceProvider && actor.Role != utils.AudienceAdmin {
		return nil, utils.NewAppError(utils.CodeForbidden, "only the provider or an admin may change a booking's status")
	}

	booking, err := s.GetBooking(id, actor)
	if err != nil {
		return nil, err
	}
	if !CanTransition(booking.Status, target) {
		return nil, utils.NewValidationError([]utils.FieldError{{
			Field:   "status",
			Message: fmt.Sprintf("cannot transition from %s to %s", booking.Status, target),
			Value:   target,
		}})
	}

	change := models.StatusChange{Status: target, Reason: reason, By: actor.Role, At: time.Now().UTC()}
	if err := s.Repo.UpdateStatus(id, change); err != nil {
		return nil, err
	}

	if target == models.BookingConfirmed {
		s.scheduleReminder(booking)
	}
	return s.Repo.GetByID(id)
}

// Cancel is the customer-facing termination: a status transition, never a
// record deletion, so history is preserved. Admins may cancel on a user's
// behalf.
func (s *DefaultBookingService) Cancel(id string, actor models.Actor, reason string) (*models.Booking, error) {
	if actor.Role != utils.AudienceUser && actor.Role != utils.AudienceAdmin {
		return nil, utils.NewAppError(utils.CodeForbidden, "only the customer or an admin may cancel a booking")
	}
	if len(reason) > maxReasonLength {
		return nil, utils.NewValidationError([]utils.FieldError{{
			Field: "reason", Message: fmt.Sprintf("must be at most %d characters", maxReasonLength),
		}})
	}
	booking, err := s.GetBooking(id, actor)
	if err != nil {
		return nil, err
	}
	if !CanTransition(booking.Status, models.BookingCancelled) {
		return nil, utils.NewValidationError([]utils.FieldError{{
			Field:   "status",
			Message: fmt.Sprintf("cannot cancel a booking in status %s", booking.Status),
			Value:   booking.Status,
		}})
	}
	change := models.StatusChange{Status: models.BookingCancelled, Reason: reason, By: actor.Role, At: time.Now().UTC()}
	if err := s.Repo.UpdateStatus(id, change); err != nil {
		return nil, err
	}
	return s.Repo.GetByID(id)
}

// AddMessage appends a note to the booking thread.
func (s *DefaultBookingService) AddMessage(id string, actor models.Actor, body string) (*models.Booking, error) {
	if body == "" || len(body) > maxMessageLength {
		return nil, utils.NewValidationError([]utils.FieldError{{
			Field: "body", Message: fmt.Sprintf("must be between 1 and %d characters", maxMessageLength),
		}})
	}
	if actor.Role == utils.AudienceAdmin {
		return nil, utils.NewAppError(utils.CodeForbidden, "the booking thread belongs to the customer and the provider")
	}
	if _, err := s.GetBooking(id, actor); err != nil {
		return nil, err
	}
	msg := models.BookingMessage{From: actor.Role, Body: body, At: time.Now().UTC()}
	if err := s.Repo.AppendMessage(id, msg); err != nil {
		return nil, err
	}
	return s.Repo.GetByID(id)
}

// Stats exposes the aggregate dashboard summary.
func (s *DefaultBookingService) Stats() (*bookingRepo.BookingStats, error) {
	return s.Repo.Stats()
}

// scheduleReminder queues an upcoming-booking reminder a day ahead of the
// scheduled date. Best effort: a queue failure only logs.
func (s *DefaultBookingService) scheduleReminder(b *models.Booking) {
	if s.Reminders == nil {
		return
	}
	at := b.ScheduledDate.Add(-reminderLead)
	if at.Before(time.Now()) {
		return
	}
	if err := s.Reminders.EnqueueReminder(b.ID, at); err != nil {
		s.logger().Warn("failed to schedule booking reminder",
			zap.String("bookingID", b.ID), zap.Error(err))
	}
}
