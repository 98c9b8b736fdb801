package models

import "time"

// Review moderation statuses.
const (
	ReviewPending  = "pending"
	ReviewApproved = "approved"
	ReviewRejected = "rejected"
	ReviewHidden   = "hidden"
)

// RatingBreakdown carries the sub-ratings a reviewer supplies. Cleanliness
// is optional; when present the overall mean is taken over five fields
// instead of four.
type RatingBreakdown struct {
	Quality     float64  `bson:"quality" json:"quality"`
	Punctuality float64  `bson:"punctuality" json:"punctuality"`
	Behavior    float64  `bson:"behavior" json:"behavior"`
	Pricing     float64  `bson:"pricing" json:"pricing"`
	Cleanliness *float64 `bson:"cleanliness,omitempty" json:"cleanliness,omitempty"`
}

// HelpfulVotes tracks which users found a review helpful. Count is kept in
// sync with the Users set; both change in the same update.
type HelpfulVotes struct {
	Count int      `bson:"count" json:"count"`
	Users []string `bson:"users,omitempty" json:"users,omitempty"`
}

// Review is one user's evaluation of one completed booking. Rating is
// always derived from the breakdown, never client-settable.
type Review struct {
	ID         string          `bson:"id" json:"id"`
	BookingID  string          `bson:"bookingId" json:"bookingId"`
	UserID     string          `bson:"userId" json:"userId"`
	ProviderID string          `bson:"providerId" json:"providerId"`
	ServiceID  string          `bson:"serviceId" json:"serviceId"`
	Rating     float64         `bson:"rating" json:"rating"`
	Breakdown  RatingBreakdown `bson:"breakdown" json:"breakdown"`
	Comment    string          `bson:"comment,omitempty" json:"comment,omitempty"`
	Helpful    HelpfulVotes    `bson:"helpful" json:"helpful"`
	Status     string          `bson:"status" json:"status"`
	CreatedAt  time.Time       `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time       `bson:"updatedAt" json:"updatedAt"`
}
