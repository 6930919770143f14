package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Jose888-pixe/Web-hotel-sub000/models"
	"github.com/Jose888-pixe/Web-hotel-sub000/services"
	"github.com/Jose888-pixe/Web-hotel-sub000/utils"
)

type RoomController struct {
	Rooms        *services.RoomService
	Availability *services.AvailabilityService
}

func NewRoomController(rooms *services.RoomService, availability *services.AvailabilityService) *RoomController {
	return &RoomController{Rooms: rooms, Availability: availability}
}

func parseRoomID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid room id")
		return 0, false
	}
	return uint(id), true
}

// GetRooms lists rooms. With checkIn/checkOut query params it hides rooms
// whose pool has no free unit for that range.
func (rc *RoomController) GetRooms(c *gin.Context) {
	ciRaw := strings.TrimSpace(c.Query("checkIn"))
	coRaw := strings.TrimSpace(c.Query("checkOut"))

	if ciRaw == "" && coRaw == "" {
		rooms, err := rc.Rooms.GetAll()
		if err != nil {
			logrus.Errorf("failed to list rooms: %v", err)
			utils.JSONError(c, http.StatusInternalServerError, "failed to list rooms")
			return
		}
		utils.JSONSuccess(c, http.StatusOK, rooms)
		return
	}

	checkIn, err1 := utils.ParseDate(ciRaw)
	checkOut, err2 := utils.ParseDate(coRaw)
	if err1 != nil || err2 != nil {
		utils.JSONError(c, http.StatusBadRequest, "checkIn and checkOut must be YYYY-MM-DD")
		return
	}

	rooms, err := rc.Rooms.ListAvailable(checkIn, checkOut)
	if err != nil {
		if errors.Is(err, services.ErrInvalidRange) {
			utils.JSONError(c, http.StatusBadRequest, "checkIn must be before checkOut")
			return
		}
		logrus.Errorf("failed to list available rooms: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to list rooms")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

func (rc *RoomController) GetRoom(c *gin.Context) {
	id, ok := parseRoomID(c)
	if !ok {
		return
	}
	room, err := rc.Rooms.GetByID(id)
	if err != nil {
		if errors.Is(err, services.ErrRoomNotFound) {
			utils.JSONError(c, http.StatusNotFound, "room not found")
			return
		}
		logrus.Errorf("failed to load room %d: %v", id, err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to load room")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

func (rc *RoomController) CreateRoom(c *gin.Context) {
	var room models.Room
	if err := c.ShouldBindJSON(&room); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	room.RoomNumber = strings.TrimSpace(room.RoomNumber)
	if room.RoomNumber == "" {
		utils.JSONError(c, http.StatusBadRequest, "roomNumber is required")
		return
	}
	if strings.TrimSpace(room.Name) == "" {
		utils.JSONError(c, http.StatusBadRequest, "name is required")
		return
	}

	if err := rc.Rooms.Create(&room); err != nil {
		if errors.Is(err, services.ErrInvalidStatus) {
			utils.JSONError(c, http.StatusBadRequest, err.Error())
			return
		}
		lc := strings.ToLower(err.Error())
		if strings.Contains(lc, "duplicate") || strings.Contains(lc, "unique") {
			utils.JSONError(c, http.StatusConflict, "room number already exists")
			return
		}
		logrus.Errorf("failed to create room: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to create room")
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, room)
}

func (rc *RoomController) UpdateRoom(c *gin.Context) {
	id, ok := parseRoomID(c)
	if !ok {
		return
	}
	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := rc.Rooms.Update(id, updates); err != nil {
		switch {
		case errors.Is(err, services.ErrRoomNotFound):
			utils.JSONError(c, http.StatusNotFound, "room not found")
		case errors.Is(err, services.ErrInvalidStatus):
			utils.JSONError(c, http.StatusBadRequest, err.Error())
		default:
			logrus.Errorf("failed to update room %d: %v", id, err)
			utils.JSONError(c, http.StatusInternalServerError, "failed to update room")
		}
		return
	}
	utils.JSONMessage(c, http.StatusOK, "room updated")
}

func (rc *RoomController) DeleteRoom(c *gin.Context) {
	id, ok := parseRoomID(c)
	if !ok {
		return
	}
	if err := rc.Rooms.Delete(id); err != nil {
		if errors.Is(err, services.ErrRoomNotFound) {
			utils.JSONError(c, http.StatusNotFound, "room not found")
			return
		}
		logrus.Errorf("failed to delete room %d: %v", id, err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete room")
		return
	}
	utils.JSONMessage(c, http.StatusOK, "room deleted")
}

// GetOccupiedDates paints the pool calendar: every date on which the
// viewed room's pool has zero free units.
func (rc *RoomController) GetOccupiedDates(c *gin.Context) {
	id, ok := parseRoomID(c)
	if !ok {
		return
	}

	dates, err := rc.Availability.OccupiedDates(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRoomNotFound):
			utils.JSONError(c, http.StatusNotFound, "room not found")
		case errors.Is(err, services.ErrUnknownPool):
			logrus.Warnf("occupied-dates query against unknown pool (room %d)", id)
			utils.JSONError(c, http.StatusNotFound, "room not found")
		default:
			logrus.Errorf("failed to compute occupied dates for room %d: %v", id, err)
			utils.JSONError(c, http.StatusInternalServerError, "failed to compute occupied dates")
		}
		return
	}

	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, d.Format(utils.DateLayout))
	}
	utils.JSONSuccess(c, http.StatusOK, out)
}

type roomStatusRequest struct {
	Status           string  `json:"status" binding:"required"`
	MaintenanceUntil *string `json:"maintenanceUntil"`
}

// UpdateRoomStatus is the operator action: place a room under maintenance
// (optionally until a date) or bring it back, applying the same
// consistency rules the synchronizer would.
func (rc *RoomController) UpdateRoomStatus(c *gin.Context) {
	id, ok := parseRoomID(c)
	if !ok {
		return
	}
	var req roomStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	var err error
	switch req.Status {
	case models.RoomMaintenance:
		var until *time.Time
		if req.MaintenanceUntil != nil && strings.TrimSpace(*req.MaintenanceUntil) != "" {
			t, perr := utils.ParseDate(*req.MaintenanceUntil)
			if perr != nil {
				utils.JSONError(c, http.StatusBadRequest, "maintenanceUntil must be YYYY-MM-DD")
				return
			}
			until = &t
		}
		err = rc.Rooms.SetMaintenance(id, until)
	case models.RoomAvailable:
		err = rc.Rooms.ClearMaintenance(id)
	default:
		utils.JSONError(c, http.StatusBadRequest, "status must be maintenance or available")
		return
	}

	if err != nil {
		if errors.Is(err, services.ErrRoomNotFound) {
			utils.JSONError(c, http.StatusNotFound, "room not found")
			return
		}
		logrus.Errorf("failed to change status of room %d: %v", id, err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to change room status")
		return
	}

	room, err := rc.Rooms.GetByID(id)
	if err != nil {
		utils.JSONMessage(c, http.StatusOK, "room status updated")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}
