package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Reservation statuses. cancelled is terminal; checked-out becomes
// effectively terminal once the stay is paid and archived.
const (
	ReservationPending    = "pending"
	ReservationConfirmed  = "confirmed"
	ReservationCheckedIn  = "checked-in"
	ReservationCheckedOut = "checked-out"
	ReservationCancelled  = "cancelled"
)

// Payment statuses.
const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentRefunded = "refunded"
)

// Reservation is one booked stay on a specific physical room, with a
// half-open [CheckIn, CheckOut) date range. For a fixed RoomID no two
// reservations with status in {pending, confirmed, checked-in} may overlap.
type Reservation struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	ReferenceCode string `gorm:"column:reference_code;size:64;uniqueIndex" json:"referenceCode"`
	RoomID        uint   `gorm:"column:room_id;index" json:"roomId"`

	CheckIn  time.Time `gorm:"column:check_in" json:"checkIn"`
	CheckOut time.Time `gorm:"column:check_out" json:"checkOut"`

	Status        string `gorm:"column:status;size:32;index" json:"status"`
	PaymentStatus string `gorm:"column:payment_status;size:32" json:"paymentStatus"`

	GuestName  string `gorm:"column:guest_name;size:255" json:"guestName"`
	GuestEmail string `gorm:"column:guest_email;size:255" json:"guestEmail"`
	GuestPhone string `gorm:"column:guest_phone;size:64" json:"guestPhone,omitempty"`
	Adults     int    `gorm:"column:adults;default:1" json:"adults"`
	Children   int    `gorm:"column:children;default:0" json:"children"`

	// Draft list of accompanying guests as entered at booking time.
	AccompanyingGuests datatypes.JSON `gorm:"column:accompanying_guests" json:"accompanyingGuests,omitempty"`

	Room Room `gorm:"foreignKey:RoomID;references:ID" json:"room,omitempty"`
}

// ActiveReservationStatuses are the statuses that hold a room: they block
// availability and count toward pool occupancy.
var ActiveReservationStatuses = []string{
	ReservationPending,
	ReservationConfirmed,
	ReservationCheckedIn,
}

// IsActiveStatus reports whether status holds the room against new bookings.
func IsActiveStatus(status string) bool {
	return status == ReservationPending ||
		status == ReservationConfirmed ||
		status == ReservationCheckedIn
}

// ValidReservationStatus reports whether status names a lifecycle state.
func ValidReservationStatus(status string) bool {
	switch status {
	case ReservationPending, ReservationConfirmed, ReservationCheckedIn,
		ReservationCheckedOut, ReservationCancelled:
		return true
	}
	return false
}
