package services

import (
	"time"

	"github.com/Jose888-pixe/Web-hotel-sub000/models"
	"github.com/Jose888-pixe/Web-hotel-sub000/utils"
)

// Pure lifecycle rules, shared by the HTTP layer and the daily sweep.

// CheckTransition validates a requested reservation transition. The state
// machine is deliberately permissive: any authorized actor may request any
// named state, including pending -> checked-in directly. Only cancelled is
// terminal.
func CheckTransition(from, to string) error {
	if !models.ValidReservationStatus(to) {
		return ErrInvalidStatus
	}
	if from == models.ReservationCancelled {
		return ErrTerminalState
	}
	return nil
}

// CleanupAction is the daily sweep's verdict for one reservation.
type CleanupAction int

const (
	// CleanupKeep leaves the reservation untouched.
	CleanupKeep CleanupAction = iota
	// CleanupArchive deletes a past, fully paid stay.
	CleanupArchive
	// CleanupMarkPaymentPending reverts a past, unpaid stay that is still
	// sitting in confirmed/checked-in back to pending.
	CleanupMarkPaymentPending
)

// CleanupDecision classifies one reservation for the daily sweep. Stays
// whose checkout has not passed are always kept; past paid stays are
// archived; past unpaid stays stuck in an active state are reverted to
// pending rather than silently dropped.
func CleanupDecision(r models.Reservation, today time.Time) CleanupAction {
	today = utils.DateOnly(today)
	if !utils.DateOnly(r.CheckOut).Before(today) {
		return CleanupKeep
	}

	if r.PaymentStatus == models.PaymentPaid {
		return CleanupArchive
	}
	if r.Status == models.ReservationConfirmed || r.Status == models.ReservationCheckedIn ||
		r.Status == models.ReservationCheckedOut {
		return CleanupMarkPaymentPending
	}
	return CleanupKeep
}
