package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Jose888-pixe/Web-hotel-sub000/models"
	"github.com/Jose888-pixe/Web-hotel-sub000/services"
	"github.com/Jose888-pixe/Web-hotel-sub000/utils"
)

type ReservationController struct {
	Reservations *services.ReservationService
}

func NewReservationController(reservations *services.ReservationService) *ReservationController {
	return &ReservationController{Reservations: reservations}
}

type createReservationRequest struct {
	RoomID             uint                     `json:"roomId" binding:"required"`
	CheckIn            string                   `json:"checkIn" binding:"required"`
	CheckOut           string                   `json:"checkOut" binding:"required"`
	GuestName          string                   `json:"guestName" binding:"required"`
	GuestEmail         string                   `json:"guestEmail" binding:"required"`
	GuestPhone         string                   `json:"guestPhone"`
	Adults             int                      `json:"adults"`
	Children           int                      `json:"children"`
	AccompanyingGuests []map[string]interface{} `json:"accompanyingGuests"`
}

func parseReservationID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid reservation id")
		return 0, false
	}
	return uint(id), true
}

// CreateReservation is the booking intake. The roomId only names the pool
// the guest was browsing; the response carries the unit the allocator
// actually assigned, which may differ.
func (rc *ReservationController) CreateReservation(c *gin.Context) {
	var req createReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	checkIn, err1 := utils.ParseDate(req.CheckIn)
	checkOut, err2 := utils.ParseDate(req.CheckOut)
	if err1 != nil || err2 != nil {
		utils.JSONError(c, http.StatusBadRequest, "checkIn and checkOut must be YYYY-MM-DD")
		return
	}

	reservation, err := rc.Reservations.Book(services.BookingRequest{
		RoomID:             req.RoomID,
		CheckIn:            checkIn,
		CheckOut:           checkOut,
		GuestName:          req.GuestName,
		GuestEmail:         req.GuestEmail,
		GuestPhone:         req.GuestPhone,
		Adults:             req.Adults,
		Children:           req.Children,
		AccompanyingGuests: req.AccompanyingGuests,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidRange):
			utils.JSONError(c, http.StatusBadRequest, "checkIn must be before checkOut")
		case errors.Is(err, services.ErrUnknownPool):
			// Same answer as no availability for the caller, but worth its
			// own log line for diagnosis.
			logrus.Warnf("booking against unknown pool (room %d)", req.RoomID)
			utils.JSONError(c, http.StatusConflict, services.ErrNoAvailability.Error())
		case errors.Is(err, services.ErrNoAvailability):
			utils.JSONError(c, http.StatusConflict, services.ErrNoAvailability.Error())
		default:
			logrus.Errorf("failed to create reservation: %v", err)
			utils.JSONError(c, http.StatusInternalServerError, "failed to create reservation")
		}
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, reservation)
}

func (rc *ReservationController) GetReservations(c *gin.Context) {
	list, err := rc.Reservations.GetAll()
	if err != nil {
		logrus.Errorf("failed to list reservations: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to list reservations")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

func (rc *ReservationController) GetReservationDetails(c *gin.Context) {
	id, ok := parseReservationID(c)
	if !ok {
		return
	}
	reservation, err := rc.Reservations.GetByID(id)
	if err != nil {
		if errors.Is(err, services.ErrReservationNotFound) {
			utils.JSONError(c, http.StatusNotFound, "reservation not found")
			return
		}
		logrus.Errorf("failed to load reservation %d: %v", id, err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to load reservation")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reservation)
}

type transitionRequest struct {
	Status string `json:"status" binding:"required"`
}

func (rc *ReservationController) UpdateReservationStatus(c *gin.Context) {
	id, ok := parseReservationID(c)
	if !ok {
		return
	}
	var req transitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	reservation, err := rc.Reservations.Transition(id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrReservationNotFound):
			utils.JSONError(c, http.StatusNotFound, "reservation not found")
		case errors.Is(err, services.ErrInvalidStatus):
			utils.JSONError(c, http.StatusBadRequest, "unknown reservation status")
		case errors.Is(err, services.ErrTerminalState):
			utils.JSONError(c, http.StatusConflict, "reservation is cancelled")
		default:
			logrus.Errorf("failed to transition reservation %d: %v", id, err)
			utils.JSONError(c, http.StatusInternalServerError, "failed to update reservation")
		}
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reservation)
}

// CancelReservation is the DELETE surface; it cancels rather than erases,
// archival being reserved for past paid stays.
func (rc *ReservationController) CancelReservation(c *gin.Context) {
	id, ok := parseReservationID(c)
	if !ok {
		return
	}
	reservation, err := rc.Reservations.Transition(id, models.ReservationCancelled)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrReservationNotFound):
			utils.JSONError(c, http.StatusNotFound, "reservation not found")
		case errors.Is(err, services.ErrTerminalState):
			utils.JSONError(c, http.StatusConflict, "reservation is already cancelled")
		default:
			logrus.Errorf("failed to cancel reservation %d: %v", id, err)
			utils.JSONError(c, http.StatusInternalServerError, "failed to cancel reservation")
		}
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reservation)
}

type paymentCallbackRequest struct {
	ReservationID uint   `json:"reservationId" binding:"required"`
	PaymentStatus string `json:"paymentStatus" binding:"required"`
}

// PaymentCallback is invoked by the payment collaborator. A paid stay
// whose checkout already passed is archived on the spot.
func (rc *ReservationController) PaymentCallback(c *gin.Context) {
	var req paymentCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	reservation, archived, err := rc.Reservations.ApplyPayment(req.ReservationID, req.PaymentStatus)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrReservationNotFound):
			utils.JSONError(c, http.StatusNotFound, "reservation not found")
		case errors.Is(err, services.ErrInvalidStatus):
			utils.JSONError(c, http.StatusBadRequest, "paymentStatus must be paid or refunded")
		default:
			logrus.Errorf("failed to apply payment to reservation %d: %v", req.ReservationID, err)
			utils.JSONError(c, http.StatusInternalServerError, "failed to apply payment")
		}
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"reservation": reservation,
		"archived":    archived,
	})
}
