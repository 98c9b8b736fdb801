package models

// Ratings is the denormalized rating summary carried by services and
// providers. It is a write target of the rating aggregator only and is
// never editable by clients.
type Ratings struct {
	AverageRating float64 `bson:"averageRating" json:"averageRating"`
	TotalReviews  int     `bson:"totalReviews" json:"totalReviews"`
}

// Account statuses shared by users and providers.
const (
	AccountActive    = "active"
	AccountSuspended = "suspended"
	AccountDeleted   = "deleted"
)

// Actor identifies the authenticated caller of an operation, as resolved
// by the access guards.
type Actor struct {
	ID   string
	Role string // "user", "provider" or "admin"
}
