package services

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/Jose888-pixe/Web-hotel-sub000/models"
	"github.com/Jose888-pixe/Web-hotel-sub000/utils"
)

// StatusSyncService is the recurring sweep that keeps every room's derived
// status aligned with the reservations and maintenance windows as of today.
type StatusSyncService struct {
	DB    *gorm.DB
	Clock utils.Clock
}

func NewStatusSyncService(db *gorm.DB, clock utils.Clock) *StatusSyncService {
	return &StatusSyncService{DB: db, Clock: clock}
}

// SyncAll runs one pass over all active rooms. Each room is visited once:
// an expired maintenance window is cleared first and ends the room's
// checks for this pass, otherwise the occupancy-derived status is applied.
// A second pass right after produces no further changes.
func (s *StatusSyncService) SyncAll() (int, error) {
	today := utils.Today(s.Clock)

	var rooms []models.Room
	if err := s.DB.Where("is_active = ?", true).Find(&rooms).Error; err != nil {
		return 0, fmt.Errorf("failed to load rooms for status sync: %w", err)
	}

	ids := make([]uint, 0, len(rooms))
	for _, r := range rooms {
		ids = append(ids, r.ID)
	}
	var reservations []models.Reservation
	if len(ids) > 0 {
		if err := s.DB.Where("room_id IN ? AND status IN ?", ids,
			[]string{models.ReservationConfirmed, models.ReservationCheckedIn}).
			Find(&reservations).Error; err != nil {
			return 0, fmt.Errorf("failed to load reservations for status sync: %w", err)
		}
	}

	changed := 0
	for _, room := range rooms {
		// Maintenance expiry check runs first; an expired window is cleared
		// and the room skips the occupancy check this pass.
		if room.Status == models.RoomMaintenance {
			if maintenanceExpired(room.MaintenanceUntil, today) {
				if err := s.DB.Model(&models.Room{}).Where("id = ?", room.ID).Updates(map[string]interface{}{
					"status":            models.RoomAvailable,
					"maintenance_until": nil,
				}).Error; err != nil {
					logrus.Errorf("status sync: failed to expire maintenance on room %d: %v", room.ID, err)
					continue
				}
				logrus.WithField("room", room.ID).Info("maintenance window expired, room available again")
				changed++
			}
			continue
		}

		status := ComputeRoomStatus(room, reservations, today)
		if status == room.Status {
			continue
		}
		if err := s.DB.Model(&models.Room{}).Where("id = ?", room.ID).
			Update("status", status).Error; err != nil {
			logrus.Errorf("status sync: failed to update room %d: %v", room.ID, err)
			continue
		}
		logrus.WithFields(logrus.Fields{"room": room.ID, "from": room.Status, "to": status}).
			Debug("room status synced")
		changed++
	}

	return changed, nil
}
