package models

import "time"

// ProviderProfile carries the public-facing details of a provider.
type ProviderProfile struct {
	BusinessName string `bson:"businessName" json:"businessName"`
	Email        string `bson:"email" json:"email"`
	Phone        string `bson:"phone" json:"phone,omitempty"`
	Bio          string `bson:"bio,omitempty" json:"bio,omitempty"`
	Avatar       string `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Address      string `bson:"address,omitempty" json:"address,omitempty"`
	ServiceArea  string `bson:"serviceArea,omitempty" json:"serviceArea,omitempty"`
}

// Verification statuses for providers. A provider must be verified before
// the provider guard will accept its token, independent of account status.
const (
	VerificationPending  = "pending"
	VerificationVerified = "verified"
	VerificationRejected = "rejected"
)

// ProviderVerification tracks the KYC-style review of a provider account.
type ProviderVerification struct {
	Status   string `bson:"status" json:"status"`
	Document string `bson:"document,omitempty" json:"document,omitempty"`
	Note     string `bson:"note,omitempty" json:"note,omitempty"`
}

// Provider is a business account offering services on the marketplace.
type Provider struct {
	ID           string               `bson:"id" json:"id"`
	Profile      ProviderProfile      `bson:"profile" json:"profile"`
	PasswordHash string               `bson:"passwordHash" json:"-"`
	Status       string               `bson:"status" json:"status"`
	Verification ProviderVerification `bson:"verification" json:"verification"`
	Ratings      Ratings              `bson:"ratings" json:"ratings"`
	LastActiveAt time.Time            `bson:"lastActiveAt,omitzero" json:"lastActiveAt,omitzero"`
	CreatedAt    time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time            `bson:"updatedAt" json:"updatedAt"`
}
