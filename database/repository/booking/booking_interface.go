package bookingRepo

import (
	"handyhub/models"
	"handyhub/utils"

	"go.mongodb.org/mongo-driver/bson"
)

// BookingStats is the aggregate dashboard summary.
type BookingStats struct {
	CountsByStatus map[string]int64 `json:"countsByStatus"`
	TotalRevenue   float64          `json:"totalRevenue"`
}

// BookingRepository defines persistence operations for bookings. Bookings
// are never deleted; every terminal outcome is a status.
type BookingRepository interface {
	Create(booking *models.Booking) error
	GetByID(id string) (*models.Booking, error)
	UpdateFields(id string, fields bson.M) error
	UpdateStatus(id string, change models.StatusChange) error
	AppendMessage(id string, msg models.BookingMessage) error
	List(filter bson.M, page utils.PageParams) ([]models.Booking, int64, error)
	CountActiveByService(serviceID string) (int64, error)
	Stats() (*BookingStats, error)
	EnsureIndexes() error
}
