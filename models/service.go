package models

import "time"

// Service statuses. Deletion is a soft transition to inactive, never a
// record removal.
const (
	ServiceActive   = "active"
	ServiceInactive = "inactive"
)

// ServicePrice describes how a service is charged, e.g. 45.00 per "hour".
type ServicePrice struct {
	Amount float64 `bson:"amount" json:"amount"`
	Unit   string  `bson:"unit" json:"unit"`
}

// Service is a bookable offering published by a provider.
type Service struct {
	ID          string       `bson:"id" json:"id"`
	ProviderID  string       `bson:"providerId" json:"providerId"`
	Name        string       `bson:"name" json:"name"`
	Category    string       `bson:"category" json:"category"`
	Description string       `bson:"description,omitempty" json:"description,omitempty"`
	Images      []string     `bson:"images,omitempty" json:"images,omitempty"`
	Price       ServicePrice `bson:"price" json:"price"`
	Status      string       `bson:"status" json:"status"`
	Ratings     Ratings      `bson:"ratings" json:"ratings"`
	CreatedAt   time.Time    `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time    `bson:"updatedAt" json:"updatedAt"`
}
