package models

import "time"

// Admin is a dashboard operator account.
type Admin struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	Role         string    `bson:"role" json:"role"` // "admin" or "superadmin"
	Status       string    `bson:"status" json:"status"`
	LastActiveAt time.Time `bson:"lastActiveAt,omitzero" json:"lastActiveAt,omitzero"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}
