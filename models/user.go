package models

import "time"

// User is a customer account that browses services and creates bookings.
type User struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	Phone        string    `bson:"phone" json:"phone,omitempty"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	Avatar       string    `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Status       string    `bson:"status" json:"status"`
	LastActiveAt time.Time `bson:"lastActiveAt,omitzero" json:"lastActiveAt,omitzero"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}
