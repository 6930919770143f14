package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/Jose888-pixe/Web-hotel-sub000/models"
	"github.com/Jose888-pixe/Web-hotel-sub000/utils"
)

// RoomService owns physical-room records and the pool index: the
// query-time grouping of active rooms by (type, name).
type RoomService struct {
	DB    *gorm.DB
	Cache *PoolCache
	Clock utils.Clock
}

func NewRoomService(db *gorm.DB, cache *PoolCache, clock utils.Clock) *RoomService {
	return &RoomService{DB: db, Cache: cache, Clock: clock}
}

func (s *RoomService) Create(room *models.Room) error {
	if !models.ValidRoomType(room.Type) {
		return fmt.Errorf("%w: unknown room type %q", ErrInvalidStatus, room.Type)
	}
	if room.Status == "" {
		room.Status = models.RoomAvailable
	}
	return s.DB.Create(room).Error
}

func (s *RoomService) GetAll() ([]models.Room, error) {
	var rooms []models.Room
	err := s.DB.Order("room_number").Find(&rooms).Error
	return rooms, err
}

func (s *RoomService) GetByID(id uint) (models.Room, error) {
	var room models.Room
	if err := s.DB.First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return room, ErrRoomNotFound
		}
		return room, fmt.Errorf("failed to load room %d: %w", id, err)
	}
	return room, nil
}

func (s *RoomService) Update(id uint, updates map[string]interface{}) error {
	// Status and maintenance fields are derived state with their own entry
	// points; generic updates must not touch them.
	delete(updates, "id")
	delete(updates, "status")
	delete(updates, "maintenanceUntil")
	delete(updates, "maintenance_until")
	delete(updates, "created_at")
	delete(updates, "updated_at")
	delete(updates, "deleted_at")

	if t, ok := updates["type"].(string); ok && !models.ValidRoomType(t) {
		return fmt.Errorf("%w: unknown room type %q", ErrInvalidStatus, t)
	}

	res := s.DB.Model(&models.Room{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRoomNotFound
	}
	return nil
}

func (s *RoomService) Delete(id uint) error {
	res := s.DB.Delete(&models.Room{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRoomNotFound
	}
	return nil
}

// PoolFor returns every active room sharing (type, name) with the given
// room, the room itself included. This is how "a room the customer is
// viewing" becomes "the commercial offering it represents".
func (s *RoomService) PoolFor(room models.Room) ([]models.Room, error) {
	var units []models.Room
	err := s.DB.
		Where("type = ? AND name = ? AND is_active = ?", room.Type, room.Name, true).
		Order("id").
		Find(&units).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load pool (%s, %s): %w", room.Type, room.Name, err)
	}
	if len(units) == 0 {
		return nil, ErrUnknownPool
	}
	return units, nil
}

// ActiveReservationsFor loads every reservation in a blocking status on
// any of the given units.
func (s *RoomService) ActiveReservationsFor(units []models.Room) ([]models.Reservation, error) {
	ids := make([]uint, 0, len(units))
	for _, u := range units {
		ids = append(ids, u.ID)
	}
	var reservations []models.Reservation
	err := s.DB.
		Where("room_id IN ? AND status IN ?", ids, models.ActiveReservationStatuses).
		Find(&reservations).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load pool reservations: %w", err)
	}
	return reservations, nil
}

// ListAvailable returns all rooms, dropping those whose pool has zero
// units free for [checkIn, checkOut).
func (s *RoomService) ListAvailable(checkIn, checkOut time.Time) ([]models.Room, error) {
	if !checkIn.Before(checkOut) {
		return nil, ErrInvalidRange
	}

	var rooms []models.Room
	if err := s.DB.Where("is_active = ?", true).Order("room_number").Find(&rooms).Error; err != nil {
		return nil, err
	}
	var reservations []models.Reservation
	if err := s.DB.Where("status IN ?", models.ActiveReservationStatuses).Find(&reservations).Error; err != nil {
		return nil, err
	}

	type poolKey struct{ Type, Name string }
	pools := make(map[poolKey][]models.Room)
	for _, r := range rooms {
		k := poolKey{r.Type, r.Name}
		pools[k] = append(pools[k], r)
	}

	poolHasUnit := make(map[poolKey]bool, len(pools))
	for k, units := range pools {
		poolHasUnit[k] = len(AvailableUnits(units, reservations, checkIn, checkOut)) > 0
	}

	out := make([]models.Room, 0, len(rooms))
	for _, r := range rooms {
		if poolHasUnit[poolKey{r.Type, r.Name}] {
			out = append(out, r)
		}
	}
	return out, nil
}

// SetMaintenance puts a room under maintenance, optionally until a closing
// date (inclusive). A nil until means indefinite maintenance.
func (s *RoomService) SetMaintenance(id uint, until *time.Time) error {
	room, err := s.GetByID(id)
	if err != nil {
		return err
	}

	// A window that already lapsed resolves the same way a synchronizer
	// pass would, straight to the derived status.
	if maintenanceExpired(until, utils.Today(s.Clock)) {
		return s.ClearMaintenance(id)
	}

	updates := map[string]interface{}{
		"status":            models.RoomMaintenance,
		"maintenance_until": nil,
	}
	if until != nil {
		d := utils.DateOnly(*until)
		updates["maintenance_until"] = &d
	}
	if err := s.DB.Model(&models.Room{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to set maintenance on room %d: %w", id, err)
	}

	logrus.WithFields(logrus.Fields{"room": id, "until": until}).Info("room placed under maintenance")
	s.Cache.Invalidate(context.Background(), PoolKey(room.Type, room.Name))
	return nil
}

// ClearMaintenance takes a room out of maintenance, re-deriving its status
// the same way a synchronizer pass would.
func (s *RoomService) ClearMaintenance(id uint) error {
	room, err := s.GetByID(id)
	if err != nil {
		return err
	}

	var reservations []models.Reservation
	if err := s.DB.Where("room_id = ? AND status IN ?", id, models.ActiveReservationStatuses).
		Find(&reservations).Error; err != nil {
		return fmt.Errorf("failed to load reservations for room %d: %w", id, err)
	}

	room.Status = models.RoomAvailable
	room.MaintenanceUntil = nil
	status := ComputeRoomStatus(room, reservations, utils.Today(s.Clock))

	if err := s.DB.Model(&models.Room{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":            status,
		"maintenance_until": nil,
	}).Error; err != nil {
		return fmt.Errorf("failed to clear maintenance on room %d: %w", id, err)
	}

	logrus.WithFields(logrus.Fields{"room": id, "status": status}).Info("room maintenance cleared")
	s.Cache.Invalidate(context.Background(), PoolKey(room.Type, room.Name))
	return nil
}
