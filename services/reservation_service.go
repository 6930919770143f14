package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Jose888-pixe/Web-hotel-sub000/models"
	"github.com/Jose888-pixe/Web-hotel-sub000/utils"
)

// ReservationService owns the reservation lifecycle and the allocator:
// turning "a stay of this room type for these dates" into a reservation
// pinned to one concrete unit, without ever double-booking it.
type ReservationService struct {
	DB    *gorm.DB
	Cache *PoolCache
	Clock utils.Clock
}

func NewReservationService(db *gorm.DB, cache *PoolCache, clock utils.Clock) *ReservationService {
	return &ReservationService{DB: db, Cache: cache, Clock: clock}
}

// BookingRequest is the intake payload. RoomID names the room the guest
// was viewing; it only resolves the pool, and the allocated unit may differ.
type BookingRequest struct {
	RoomID             uint
	CheckIn            time.Time
	CheckOut           time.Time
	GuestName          string
	GuestEmail         string
	GuestPhone         string
	Adults             int
	Children           int
	AccompanyingGuests []map[string]interface{}
}

// normalizeGuestList keeps only the fields we store for accompanying guests.
func normalizeGuestList(guestList []map[string]interface{}) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(guestList))
	for _, g := range guestList {
		name := ""
		for _, k := range []string{"fullName", "full_name", "name"} {
			if v, ok := g[k].(string); ok && strings.TrimSpace(v) != "" {
				name = strings.TrimSpace(v)
				break
			}
		}
		if name == "" {
			continue
		}
		typ := "Adult"
		if v, ok := g["type"].(string); ok && strings.TrimSpace(v) != "" {
			typ = strings.TrimSpace(v)
		}
		out = append(out, map[string]interface{}{"fullName": name, "type": typ})
	}
	return out
}

// Book allocates a unit from the pool of the viewed room and creates a
// pending reservation on it. The pool rows are locked for the duration of
// the transaction so two concurrent requests cannot pick the same unit;
// the chosen unit is still re-checked right before the insert, and on a
// conflict the remaining eligible units are tried before giving up.
func (s *ReservationService) Book(req BookingRequest) (*models.Reservation, error) {
	checkIn := utils.DateOnly(req.CheckIn)
	checkOut := utils.DateOnly(req.CheckOut)
	if !checkIn.Before(checkOut) {
		return nil, ErrInvalidRange
	}

	guestsJSON, err := json.Marshal(normalizeGuestList(req.AccompanyingGuests))
	if err != nil {
		return nil, fmt.Errorf("failed to encode guest list: %w", err)
	}

	adults := req.Adults
	if adults <= 0 {
		adults = 1
	}
	children := req.Children
	if children < 0 {
		children = 0
	}

	var reservation models.Reservation
	var viewed models.Room

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&viewed, req.RoomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUnknownPool
			}
			return fmt.Errorf("failed to load room %d: %w", req.RoomID, err)
		}

		// Lock the whole pool: allocation is a check-then-act sequence and
		// must not interleave with another allocation on the same pool.
		var units []models.Room
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("type = ? AND name = ? AND is_active = ?", viewed.Type, viewed.Name, true).
			Order("id").
			Find(&units).Error; err != nil {
			return fmt.Errorf("failed to lock pool (%s, %s): %w", viewed.Type, viewed.Name, err)
		}
		if len(units) == 0 {
			return ErrUnknownPool
		}

		ids := make([]uint, 0, len(units))
		for _, u := range units {
			ids = append(ids, u.ID)
		}
		var reservations []models.Reservation
		if err := tx.
			Where("room_id IN ? AND status IN ?", ids, models.ActiveReservationStatuses).
			Find(&reservations).Error; err != nil {
			return fmt.Errorf("failed to load pool reservations: %w", err)
		}

		eligible := AvailableUnits(units, reservations, checkIn, checkOut)
		if len(eligible) == 0 {
			return ErrNoAvailability
		}

		// Units in a pool are commercially identical, so pick at random:
		// wear levels across rooms and no allocation order leaks to callers.
		rand.Shuffle(len(eligible), func(i, j int) {
			eligible[i], eligible[j] = eligible[j], eligible[i]
		})

		for _, unitID := range eligible {
			var conflicting int64
			if err := tx.Model(&models.Reservation{}).
				Where("room_id = ? AND status IN ? AND check_in < ? AND ? < check_out",
					unitID, models.ActiveReservationStatuses, checkOut, checkIn).
				Count(&conflicting).Error; err != nil {
				return fmt.Errorf("failed to recheck unit %d: %w", unitID, err)
			}
			if conflicting > 0 {
				logrus.WithFields(logrus.Fields{"room": unitID, "err": ErrAllocationConflict}).
					Warn("unit taken during allocation, trying next eligible unit")
				continue
			}

			reservation = models.Reservation{
				ReferenceCode:      utils.GenerateReferenceCode(),
				RoomID:             unitID,
				CheckIn:            checkIn,
				CheckOut:           checkOut,
				Status:             models.ReservationPending,
				PaymentStatus:      models.PaymentPending,
				GuestName:          strings.TrimSpace(req.GuestName),
				GuestEmail:         strings.TrimSpace(req.GuestEmail),
				GuestPhone:         strings.TrimSpace(req.GuestPhone),
				Adults:             adults,
				Children:           children,
				AccompanyingGuests: datatypes.JSON(guestsJSON),
			}
			if err := tx.Create(&reservation).Error; err != nil {
				return fmt.Errorf("failed to create reservation: %w", err)
			}
			return nil
		}

		// Every eligible unit conflicted at commit time.
		return errEligibleConflicted
	})
	if txErr != nil {
		return nil, txErr
	}

	s.Cache.Invalidate(context.Background(), PoolKey(viewed.Type, viewed.Name))

	if err := s.DB.Preload("Room").First(&reservation, reservation.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload reservation %d: %w", reservation.ID, err)
	}
	logrus.WithFields(logrus.Fields{
		"reservation": reservation.ID,
		"reference":   reservation.ReferenceCode,
		"room":        reservation.RoomID,
		"checkIn":     checkIn.Format(utils.DateLayout),
		"checkOut":    checkOut.Format(utils.DateLayout),
	}).Info("reservation created")
	return &reservation, nil
}

// Transition moves a reservation to a requested lifecycle state and keeps
// the room's derived status in step without waiting for the next
// synchronizer pass.
func (s *ReservationService) Transition(id uint, to string) (*models.Reservation, error) {
	var reservation models.Reservation

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&reservation, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReservationNotFound
			}
			return err
		}

		if err := CheckTransition(reservation.Status, to); err != nil {
			return err
		}
		if err := tx.Model(&reservation).Update("status", to).Error; err != nil {
			return fmt.Errorf("failed to update reservation %d: %w", id, err)
		}
		reservation.Status = to

		return s.refreshRoomStatus(tx, reservation.RoomID)
	})
	if txErr != nil {
		return nil, txErr
	}

	s.invalidatePoolOf(reservation.RoomID)
	logrus.WithFields(logrus.Fields{"reservation": id, "status": to}).Info("reservation transitioned")
	return &reservation, nil
}

// ApplyPayment records the payment collaborator's verdict. A completed
// payment on a stay whose checkout already passed archives the
// reservation instead of keeping it live.
func (s *ReservationService) ApplyPayment(id uint, paymentStatus string) (*models.Reservation, bool, error) {
	if paymentStatus != models.PaymentPaid && paymentStatus != models.PaymentRefunded {
		return nil, false, ErrInvalidStatus
	}

	var reservation models.Reservation
	archived := false

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&reservation, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReservationNotFound
			}
			return err
		}

		if err := tx.Model(&reservation).Update("payment_status", paymentStatus).Error; err != nil {
			return fmt.Errorf("failed to update payment status: %w", err)
		}
		reservation.PaymentStatus = paymentStatus

		today := utils.Today(s.Clock)
		if paymentStatus == models.PaymentPaid && utils.DateOnly(reservation.CheckOut).Before(today) {
			if err := tx.Delete(&models.Reservation{}, reservation.ID).Error; err != nil {
				return fmt.Errorf("failed to archive reservation %d: %w", reservation.ID, err)
			}
			archived = true
		}

		return s.refreshRoomStatus(tx, reservation.RoomID)
	})
	if txErr != nil {
		return nil, false, txErr
	}

	s.invalidatePoolOf(reservation.RoomID)
	logrus.WithFields(logrus.Fields{
		"reservation": id,
		"payment":     paymentStatus,
		"archived":    archived,
	}).Info("payment applied")
	return &reservation, archived, nil
}

// CleanupExpired is the daily sweep: archives past paid stays and reverts
// past unpaid stays stuck in an active state back to pending.
func (s *ReservationService) CleanupExpired() error {
	today := utils.Today(s.Clock)

	var expired []models.Reservation
	if err := s.DB.Preload("Room").Where("check_out < ?", today).Find(&expired).Error; err != nil {
		return fmt.Errorf("failed to load expired reservations: %w", err)
	}

	archivedCount, revertedCount := 0, 0
	touchedPools := make(map[string]bool)

	for _, r := range expired {
		switch CleanupDecision(r, today) {
		case CleanupArchive:
			if err := s.DB.Delete(&models.Reservation{}, r.ID).Error; err != nil {
				logrus.Errorf("cleanup: failed to archive reservation %d: %v", r.ID, err)
				continue
			}
			archivedCount++
		case CleanupMarkPaymentPending:
			if err := s.DB.Model(&models.Reservation{}).Where("id = ?", r.ID).
				Update("status", models.ReservationPending).Error; err != nil {
				logrus.Errorf("cleanup: failed to revert reservation %d: %v", r.ID, err)
				continue
			}
			revertedCount++
		default:
			continue
		}
		touchedPools[PoolKey(r.Room.Type, r.Room.Name)] = true
	}

	for key := range touchedPools {
		s.Cache.Invalidate(context.Background(), key)
	}

	if archivedCount > 0 || revertedCount > 0 {
		logrus.WithFields(logrus.Fields{
			"archived": archivedCount,
			"reverted": revertedCount,
		}).Info("reservation cleanup pass finished")
	}
	return nil
}

func (s *ReservationService) GetAll() ([]models.Reservation, error) {
	var list []models.Reservation
	if err := s.DB.Preload("Room").Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve reservations: %w", err)
	}
	return list, nil
}

func (s *ReservationService) GetByID(id uint) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := s.DB.Preload("Room").First(&reservation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, fmt.Errorf("failed to retrieve reservation %d: %w", id, err)
	}
	return &reservation, nil
}

// refreshRoomStatus re-derives one room's status inside the caller's
// transaction, right after a lifecycle change touched its reservations.
func (s *ReservationService) refreshRoomStatus(tx *gorm.DB, roomID uint) error {
	var room models.Room
	if err := tx.First(&room, roomID).Error; err != nil {
		return fmt.Errorf("failed to load room %d: %w", roomID, err)
	}

	var reservations []models.Reservation
	if err := tx.Where("room_id = ? AND status IN ?", roomID,
		[]string{models.ReservationConfirmed, models.ReservationCheckedIn}).
		Find(&reservations).Error; err != nil {
		return fmt.Errorf("failed to load reservations for room %d: %w", roomID, err)
	}

	status := ComputeRoomStatus(room, reservations, utils.Today(s.Clock))
	if status == room.Status {
		return nil
	}
	updates := map[string]interface{}{"status": status}
	if room.Status == models.RoomMaintenance {
		// Leaving maintenance means the window is spent.
		updates["maintenance_until"] = nil
	}
	return tx.Model(&models.Room{}).Where("id = ?", roomID).Updates(updates).Error
}

func (s *ReservationService) invalidatePoolOf(roomID uint) {
	var room models.Room
	if err := s.DB.First(&room, roomID).Error; err != nil {
		return
	}
	s.Cache.Invalidate(context.Background(), PoolKey(room.Type, room.Name))
}
