package models

import "time"

// Booking statuses. Completed and cancelled are terminal.
const (
	BookingPending     = "pending"
	BookingConfirmed   = "confirmed"
	BookingInProgress  = "in-progress"
	BookingCompleted   = "completed"
	BookingCancelled   = "cancelled"
	BookingRescheduled = "rescheduled"
	BookingNoShow      = "no-show"
	BookingDisputed    = "disputed"
)

// BookingPricing holds the agreed charge for a booking.
type BookingPricing struct {
	TotalAmount float64 `bson:"totalAmount" json:"totalAmount"`
	Currency    string  `bson:"currency" json:"currency"`
}

// BookingMessage is a free-form note exchanged on a booking thread.
type BookingMessage struct {
	From string    `bson:"from" json:"from"` // "user" or "provider"
	Body string    `bson:"body" json:"body"`
	At   time.Time `bson:"at" json:"at"`
}

// StatusChange records one transition in a booking's history.
type StatusChange struct {
	Status string    `bson:"status" json:"status"`
	Reason string    `bson:"reason,omitempty" json:"reason,omitempty"`
	By     string    `bson:"by" json:"by"` // actor role: user/provider/admin
	At     time.Time `bson:"at" json:"at"`
}

// Booking is a scheduled engagement between a user and a provider for one
// service. Bookings are never hard-deleted; cancellation is a status.
type Booking struct {
	ID            string           `bson:"id" json:"id"`
	UserID        string           `bson:"userId" json:"userId"`
	ProviderID    string           `bson:"providerId" json:"providerId"`
	ServiceID     string           `bson:"serviceId" json:"serviceId"`
	Status        string           `bson:"status" json:"status"`
	ScheduledDate time.Time        `bson:"scheduledDate" json:"scheduledDate"`
	Address       string           `bson:"address,omitempty" json:"address,omitempty"`
	Pricing       BookingPricing   `bson:"pricing" json:"pricing"`
	Notes         string           `bson:"notes,omitempty" json:"notes,omitempty"`
	Messages      []BookingMessage `bson:"messages,omitempty" json:"messages,omitempty"`
	StatusHistory []StatusChange   `bson:"statusHistory,omitempty" json:"statusHistory,omitempty"`
	CreatedAt     time.Time        `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time        `bson:"updatedAt" json:"updatedAt"`
}

// ActiveBookingStatuses are the non-terminal statuses that block deletion
// of the parent service.
var ActiveBookingStatuses = []string{BookingPending, BookingConfirmed, BookingInProgress}
