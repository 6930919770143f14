package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Jose888-pixe/Web-hotel-sub000/utils"
)

// AvailabilityService answers the two pool-level questions: which units
// are free for a concrete range, and on which dates the whole pool is
// exhausted. The actual arithmetic lives in the pure functions of
// availability.go; this wrapper loads the pool and caches calendars.
type AvailabilityService struct {
	DB    *gorm.DB
	Rooms *RoomService
	Cache *PoolCache
	Clock utils.Clock
}

func NewAvailabilityService(db *gorm.DB, rooms *RoomService, cache *PoolCache, clock utils.Clock) *AvailabilityService {
	return &AvailabilityService{DB: db, Rooms: rooms, Cache: cache, Clock: clock}
}

// AvailableUnitIDs resolves the viewed room to its pool and returns the
// IDs of units free for [checkIn, checkOut).
func (s *AvailabilityService) AvailableUnitIDs(roomID uint, checkIn, checkOut time.Time) ([]uint, error) {
	if !checkIn.Before(checkOut) {
		return nil, ErrInvalidRange
	}

	room, err := s.Rooms.GetByID(roomID)
	if err != nil {
		return nil, err
	}
	units, err := s.Rooms.PoolFor(room)
	if err != nil {
		return nil, err
	}
	reservations, err := s.Rooms.ActiveReservationsFor(units)
	if err != nil {
		return nil, err
	}
	return AvailableUnits(units, reservations, checkIn, checkOut), nil
}

// OccupiedDates returns the pool's fully-occupied dates for calendar
// rendering, over a rolling horizon bounded by the furthest reservation
// checkout or maintenance window on record. Results are cached per pool.
func (s *AvailabilityService) OccupiedDates(ctx context.Context, roomID uint) ([]time.Time, error) {
	room, err := s.Rooms.GetByID(roomID)
	if err != nil {
		return nil, err
	}
	key := PoolKey(room.Type, room.Name)
	if dates, ok := s.Cache.GetOccupiedDates(ctx, key); ok {
		return dates, nil
	}

	units, err := s.Rooms.PoolFor(room)
	if err != nil {
		return nil, err
	}
	reservations, err := s.Rooms.ActiveReservationsFor(units)
	if err != nil {
		return nil, err
	}

	dates := OccupiedDates(units, reservations, utils.Today(s.Clock))
	s.Cache.SetOccupiedDates(ctx, key, dates)
	return dates, nil
}
