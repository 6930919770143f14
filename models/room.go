package models

import (
	"time"

	"gorm.io/gorm"
)

// Room statuses. Status is derived from reservations and maintenance
// windows; it is never authoritative on its own (see services.ComputeRoomStatus).
const (
	RoomAvailable   = "available"
	RoomOccupied    = "occupied"
	RoomMaintenance = "maintenance"
)

// Room types offered by the hotel.
const (
	RoomTypeSingle       = "single"
	RoomTypeDouble       = "double"
	RoomTypeSuite        = "suite"
	RoomTypeDeluxe       = "deluxe"
	RoomTypePresidential = "presidential"
)

// Room is one bookable physical unit. Units sharing (Type, Name) form a
// pool and are commercially interchangeable; guests never pick a unit,
// the allocator does.
type Room struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	RoomNumber string  `json:"roomNumber" gorm:"column:room_number;uniqueIndex;type:varchar(50)"`
	Type       string  `json:"type" gorm:"index:idx_rooms_pool;type:varchar(32)"`
	Name       string  `json:"name" gorm:"index:idx_rooms_pool;type:varchar(100)"`
	Capacity   int     `json:"capacity"`
	Price      float64 `json:"price"`
	Status     string  `json:"status" gorm:"type:varchar(32);default:available"`
	IsActive   bool    `json:"isActive" gorm:"column:is_active;default:true"`

	// MaintenanceUntil is date-only. nil while Status == maintenance means
	// the unit is in indefinite maintenance.
	MaintenanceUntil *time.Time `json:"maintenanceUntil,omitempty" gorm:"column:maintenance_until"`
}

// ValidRoomType reports whether t names one of the offered room types.
func ValidRoomType(t string) bool {
	switch t {
	case RoomTypeSingle, RoomTypeDouble, RoomTypeSuite, RoomTypeDeluxe, RoomTypePresidential:
		return true
	}
	return false
}
