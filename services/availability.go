package services

import (
	"sort"
	"time"

	"github.com/Jose888-pixe/Web-hotel-sub000/models"
	"github.com/Jose888-pixe/Web-hotel-sub000/utils"
)

// This file is the pure core of the availability calculator: plain
// functions over already-loaded rooms and reservations, no database.
// The service wrappers load the pool and delegate here, and the same
// functions back both the eager (per-request) and the periodic
// (synchronizer) paths.

// maintenanceExpired reports whether a bounded maintenance window has
// already lapsed as of today. Indefinite windows never expire.
func maintenanceExpired(until *time.Time, today time.Time) bool {
	return until != nil && utils.DateOnly(*until).Before(utils.DateOnly(today))
}

// UnitAvailable reports whether a single unit is free for the half-open
// range [checkIn, checkOut). A unit is free iff no active reservation on
// it overlaps the range and no maintenance window intersects it. A unit in
// indefinite maintenance (no MaintenanceUntil) is never free; one with a
// bounded window is unavailable for any checkIn on or before the window end.
func UnitAvailable(unit models.Room, reservations []models.Reservation, checkIn, checkOut time.Time) bool {
	if unit.Status == models.RoomMaintenance {
		if unit.MaintenanceUntil == nil {
			return false
		}
		if !utils.DateOnly(checkIn).After(utils.DateOnly(*unit.MaintenanceUntil)) {
			return false
		}
	}

	for _, r := range reservations {
		if r.RoomID != unit.ID || !models.IsActiveStatus(r.Status) {
			continue
		}
		if utils.Overlaps(r.CheckIn, r.CheckOut, checkIn, checkOut) {
			return false
		}
	}
	return true
}

// AvailableUnits returns the IDs of the pool units free for the range,
// in pool order.
func AvailableUnits(units []models.Room, reservations []models.Reservation, checkIn, checkOut time.Time) []uint {
	free := make([]uint, 0, len(units))
	for _, u := range units {
		if UnitAvailable(u, reservations, checkIn, checkOut) {
			free = append(free, u.ID)
		}
	}
	return free
}

// OccupiedDates computes the dates on which the whole pool is exhausted:
// per date, the set of distinct units held by active reservations or
// maintenance windows, filtered to dates where that set reaches the pool's
// effective capacity. A unit blocked twice on the same day (say a
// maintenance window plus a reservation it still carries) is one busy
// unit, not two. Units in indefinite maintenance are excluded from the
// busy sets and instead reduce effective capacity for all dates, so a
// pool of permanently dark units cannot contribute unbounded future dates.
func OccupiedDates(units []models.Room, reservations []models.Reservation, today time.Time) []time.Time {
	today = utils.DateOnly(today)

	capacity := 0
	counted := make(map[uint]bool, len(units))
	busy := make(map[time.Time]map[uint]struct{})

	mark := func(day time.Time, unitID uint) {
		set, ok := busy[day]
		if !ok {
			set = make(map[uint]struct{})
			busy[day] = set
		}
		set[unitID] = struct{}{}
	}

	for _, u := range units {
		if u.Status == models.RoomMaintenance && u.MaintenanceUntil == nil {
			continue
		}
		capacity++
		counted[u.ID] = true

		if u.Status == models.RoomMaintenance && u.MaintenanceUntil != nil {
			// Window runs from today through the (inclusive) until date.
			until := utils.DateOnly(*u.MaintenanceUntil)
			for _, d := range utils.DaysCovered(today, until.AddDate(0, 0, 1)) {
				mark(d, u.ID)
			}
		}
	}

	if capacity == 0 {
		return nil
	}

	for _, r := range reservations {
		if !models.IsActiveStatus(r.Status) || !counted[r.RoomID] {
			continue
		}
		for _, d := range utils.DaysCovered(r.CheckIn, r.CheckOut) {
			mark(d, r.RoomID)
		}
	}

	dates := make([]time.Time, 0)
	for d, set := range busy {
		if len(set) >= capacity {
			dates = append(dates, d)
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// ComputeRoomStatus derives the status a room should carry as of today,
// given every reservation on it. It is the single source of truth for the
// derived Status field, used eagerly on lifecycle transitions and
// periodically by the synchronizer pass.
func ComputeRoomStatus(room models.Room, reservations []models.Reservation, today time.Time) string {
	today = utils.DateOnly(today)

	if room.Status == models.RoomMaintenance {
		if maintenanceExpired(room.MaintenanceUntil, today) {
			return models.RoomAvailable
		}
		return models.RoomMaintenance
	}

	for _, r := range reservations {
		if r.RoomID != room.ID {
			continue
		}
		// Only guests actually holding the room today count here; a pending
		// reservation blocks availability but does not occupy the room.
		if r.Status != models.ReservationConfirmed && r.Status != models.ReservationCheckedIn {
			continue
		}
		if utils.CoversDay(r.CheckIn, r.CheckOut, today) {
			return models.RoomOccupied
		}
	}
	return models.RoomAvailable
}
