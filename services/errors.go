package services

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRange means check-in >= check-out or an unparseable date,
	// rejected before any availability computation.
	ErrInvalidRange = errors.New("invalid date range")

	// ErrNoAvailability means every unit in the pool is occupied or in
	// maintenance for the requested range. A user-facing condition, not a fault.
	ErrNoAvailability = errors.New("no rooms of this type for these dates")

	// ErrUnknownPool means the referenced room or its (type, name) pool no
	// longer exists or has no active units. Logged distinctly, surfaced like
	// ErrNoAvailability.
	ErrUnknownPool = errors.New("unknown room pool")

	// ErrAllocationConflict means the optimistic recheck at commit time found
	// the chosen unit taken by a concurrent request.
	ErrAllocationConflict = errors.New("allocation conflict")

	ErrRoomNotFound        = errors.New("room not found")
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrTerminalState means a transition was requested out of a terminal
	// reservation state.
	ErrTerminalState = errors.New("reservation is in a terminal state")

	ErrInvalidStatus = errors.New("invalid status")
)

// errEligibleConflicted is Book's verdict when every eligible unit was
// taken by concurrent requests during the recheck loop. Callers match
// ErrNoAvailability; ErrAllocationConflict names the cause.
var errEligibleConflicted = fmt.Errorf("%w: %w", ErrNoAvailability, ErrAllocationConflict)
