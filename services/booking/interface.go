package booking

import (
	"time"

	bookingRepo "handyhub/database/repository/booking"
	"handyhub/models"
	"handyhub/utils"
)

// CreateBookingInput is the allow-listed payload for creating a booking.
type CreateBookingInput struct {
	ServiceID     string
	ScheduledDate time.Time
	Address       string
	Notes         string
}

// UpdateBookingInput carries the non-status fields the general update
// operation may touch. Nil pointers leave the field unchanged; unknown
// fields never reach the persistence layer.
type UpdateBookingInput struct {
	ScheduledDate *time.Time
	Address       *string
	Notes         *string
}

// ListFilter narrows a booking listing. The actor's role decides the
// ownership scope applied on top of it.
type ListFilter struct {
	Status   string
	DateFrom time.Time
	DateTo   time.Time
}

// ReminderEnqueuer schedules an upcoming-booking reminder.
type ReminderEnqueuer interface {
	EnqueueReminder(bookingID string, at time.Time) error
}

// BookingService governs booking creation, the status machine, and the
// booking message thread.
type BookingService interface {
	CreateBooking(userID string, in CreateBookingInput) (*models.Booking, error)
	GetBooking(id string, actor models.Actor) (*models.Booking, error)
	ListBookings(actor models.Actor, filter ListFilter, page utils.PageParams) ([]models.Booking, int64, error)
	UpdateBooking(id string, actor models.Actor, in UpdateBookingInput) (*models.Booking, error)
	UpdateStatus(id string, actor models.Actor, target, reason string) (*models.Booking, error)
	Cancel(id string, actor models.Actor, reason string) (*models.Booking, error)
	AddMessage(id string, actor models.Actor, body string) (*models.Booking, error)
	Stats() (*bookingRepo.BookingStats, error)
}
