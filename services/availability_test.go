package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jose888-pixe/Web-hotel-sub000/models"
	"github.com/Jose888-pixe/Web-hotel-sub000/utils"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func room(id uint, status string, until *time.Time) models.Room {
	return models.Room{
		ID:               id,
		Type:             models.RoomTypeDouble,
		Name:             "Garden Double",
		Status:           status,
		IsActive:         true,
		MaintenanceUntil: until,
	}
}

func reservation(roomID uint, status string, checkIn, checkOut time.Time) models.Reservation {
	return models.Reservation{
		RoomID:   roomID,
		Status:   status,
		CheckIn:  checkIn,
		CheckOut: checkOut,
	}
}

func TestUnitAvailable(t *testing.T) {
	until := date(2024, 6, 10)

	tests := []struct {
		name         string
		unit         models.Room
		reservations []models.Reservation
		checkIn      time.Time
		checkOut     time.Time
		want         bool
	}{
		{
			name:     "free unit",
			unit:     room(1, models.RoomAvailable, nil),
			checkIn:  date(2024, 6, 1),
			checkOut: date(2024, 6, 3),
			want:     true,
		},
		{
			name: "overlapping pending reservation blocks",
			unit: room(1, models.RoomAvailable, nil),
			reservations: []models.Reservation{
				reservation(1, models.ReservationPending, date(2024, 6, 2), date(2024, 6, 4)),
			},
			checkIn:  date(2024, 6, 1),
			checkOut: date(2024, 6, 3),
			want:     false,
		},
		{
			name: "cancelled reservation does not block",
			unit: room(1, models.RoomAvailable, nil),
			reservations: []models.Reservation{
				reservation(1, models.ReservationCancelled, date(2024, 6, 2), date(2024, 6, 4)),
			},
			checkIn:  date(2024, 6, 1),
			checkOut: date(2024, 6, 3),
			want:     true,
		},
		{
			name: "back-to-back stay does not block",
			unit: room(1, models.RoomAvailable, nil),
			reservations: []models.Reservation{
				reservation(1, models.ReservationConfirmed, date(2024, 6, 3), date(2024, 6, 5)),
			},
			checkIn:  date(2024, 6, 1),
			checkOut: date(2024, 6, 3),
			want:     true,
		},
		{
			name: "another unit's reservation is ignored",
			unit: room(1, models.RoomAvailable, nil),
			reservations: []models.Reservation{
				reservation(2, models.ReservationConfirmed, date(2024, 6, 1), date(2024, 6, 5)),
			},
			checkIn:  date(2024, 6, 1),
			checkOut: date(2024, 6, 3),
			want:     true,
		},
		{
			name:     "indefinite maintenance blocks everything",
			unit:     room(1, models.RoomMaintenance, nil),
			checkIn:  date(2030, 1, 1),
			checkOut: date(2030, 1, 5),
			want:     false,
		},
		{
			name:     "checkIn on maintenance end date blocks",
			unit:     room(1, models.RoomMaintenance, &until),
			checkIn:  date(2024, 6, 10),
			checkOut: date(2024, 6, 12),
			want:     false,
		},
		{
			name:     "checkIn after maintenance end date is free",
			unit:     room(1, models.RoomMaintenance, &until),
			checkIn:  date(2024, 6, 11),
			checkOut: date(2024, 6, 13),
			want:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := UnitAvailable(tt.unit, tt.reservations, tt.checkIn, tt.checkOut)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAvailableUnits(t *testing.T) {
	units := []models.Room{
		room(1, models.RoomAvailable, nil),
		room(2, models.RoomAvailable, nil),
	}
	reservations := []models.Reservation{
		reservation(1, models.ReservationConfirmed, date(2024, 6, 1), date(2024, 6, 3)),
		reservation(2, models.ReservationConfirmed, date(2024, 6, 2), date(2024, 6, 4)),
	}

	t.Run("only unit B free on the first night", func(t *testing.T) {
		free := AvailableUnits(units, reservations, date(2024, 6, 1), date(2024, 6, 2))
		assert.Equal(t, []uint{2}, free)
	})

	t.Run("no unit free on the shared night", func(t *testing.T) {
		free := AvailableUnits(units, reservations, date(2024, 6, 2), date(2024, 6, 3))
		assert.Empty(t, free)
	})

	t.Run("both free after the stays", func(t *testing.T) {
		free := AvailableUnits(units, reservations, date(2024, 6, 4), date(2024, 6, 6))
		assert.Equal(t, []uint{1, 2}, free)
	})
}

func TestOccupiedDates(t *testing.T) {
	today := date(2024, 6, 1)

	t.Run("two staggered stays exhaust the pool on the shared day only", func(t *testing.T) {
		units := []models.Room{
			room(1, models.RoomAvailable, nil),
			room(2, models.RoomAvailable, nil),
		}
		reservations := []models.Reservation{
			reservation(1, models.ReservationConfirmed, date(2024, 6, 1), date(2024, 6, 3)),
			reservation(2, models.ReservationConfirmed, date(2024, 6, 2), date(2024, 6, 4)),
		}

		dates := OccupiedDates(units, reservations, today)
		require.Len(t, dates, 1)
		assert.Equal(t, date(2024, 6, 2), dates[0])
	})

	t.Run("single-unit pool mirrors its reservation days", func(t *testing.T) {
		units := []models.Room{room(1, models.RoomAvailable, nil)}
		reservations := []models.Reservation{
			reservation(1, models.ReservationPending, date(2024, 6, 5), date(2024, 6, 8)),
		}

		dates := OccupiedDates(units, reservations, today)
		assert.Equal(t, []time.Time{date(2024, 6, 5), date(2024, 6, 6), date(2024, 6, 7)}, dates)
	})

	t.Run("bounded maintenance counts as occupancy", func(t *testing.T) {
		until := date(2024, 6, 2)
		units := []models.Room{
			room(1, models.RoomMaintenance, &until),
			room(2, models.RoomAvailable, nil),
		}
		reservations := []models.Reservation{
			reservation(2, models.ReservationConfirmed, date(2024, 6, 1), date(2024, 6, 3)),
		}

		// Unit 1 is dark on the 1st and 2nd (inclusive window), unit 2
		// hosts a stay over the 1st and 2nd: pool exhausted both days.
		dates := OccupiedDates(units, reservations, today)
		assert.Equal(t, []time.Time{date(2024, 6, 1), date(2024, 6, 2)}, dates)
	})

	t.Run("maintenance plus reservation on one unit is one busy unit", func(t *testing.T) {
		until := date(2024, 6, 3)
		units := []models.Room{
			room(1, models.RoomMaintenance, &until),
			room(2, models.RoomAvailable, nil),
		}
		reservations := []models.Reservation{
			reservation(1, models.ReservationConfirmed, date(2024, 6, 1), date(2024, 6, 5)),
		}

		// Unit 1 is doubly blocked on the 1st through the 3rd, but unit 2
		// is free the whole time: no date exhausts the pool.
		assert.Empty(t, OccupiedDates(units, reservations, today))
	})

	t.Run("doubly blocked unit still exhausts with the rest of the pool", func(t *testing.T) {
		until := date(2024, 6, 3)
		units := []models.Room{
			room(1, models.RoomMaintenance, &until),
			room(2, models.RoomAvailable, nil),
		}
		reservations := []models.Reservation{
			reservation(1, models.ReservationConfirmed, date(2024, 6, 1), date(2024, 6, 5)),
			reservation(2, models.ReservationConfirmed, date(2024, 6, 2), date(2024, 6, 3)),
		}

		dates := OccupiedDates(units, reservations, today)
		assert.Equal(t, []time.Time{date(2024, 6, 2)}, dates)
	})

	t.Run("indefinite maintenance shrinks capacity instead of tallying", func(t *testing.T) {
		units := []models.Room{
			room(1, models.RoomMaintenance, nil),
			room(2, models.RoomAvailable, nil),
		}
		reservations := []models.Reservation{
			reservation(2, models.ReservationConfirmed, date(2024, 6, 5), date(2024, 6, 7)),
		}

		// Effective capacity is 1, so unit 2's stay alone exhausts the pool.
		dates := OccupiedDates(units, reservations, today)
		assert.Equal(t, []time.Time{date(2024, 6, 5), date(2024, 6, 6)}, dates)
	})

	t.Run("fully dark pool yields no unbounded dates", func(t *testing.T) {
		units := []models.Room{
			room(1, models.RoomMaintenance, nil),
			room(2, models.RoomMaintenance, nil),
		}

		assert.Empty(t, OccupiedDates(units, nil, today))
	})

	t.Run("reservations on excluded units are ignored", func(t *testing.T) {
		units := []models.Room{
			room(1, models.RoomMaintenance, nil),
			room(2, models.RoomAvailable, nil),
		}
		reservations := []models.Reservation{
			reservation(1, models.ReservationConfirmed, date(2024, 6, 5), date(2024, 6, 7)),
		}

		assert.Empty(t, OccupiedDates(units, reservations, today))
	})

	t.Run("dates come back sorted", func(t *testing.T) {
		units := []models.Room{room(1, models.RoomAvailable, nil)}
		reservations := []models.Reservation{
			reservation(1, models.ReservationConfirmed, date(2024, 6, 20), date(2024, 6, 22)),
			reservation(1, models.ReservationConfirmed, date(2024, 6, 5), date(2024, 6, 7)),
		}

		dates := OccupiedDates(units, reservations, today)
		require.Len(t, dates, 4)
		for i := 1; i < len(dates); i++ {
			assert.True(t, dates[i-1].Before(dates[i]))
		}
	})
}

func TestMaintenanceExpired(t *testing.T) {
	today := date(2024, 6, 10)

	past := date(2024, 6, 9)
	onToday := date(2024, 6, 10)
	future := date(2024, 6, 11)

	assert.True(t, maintenanceExpired(&past, today))
	// The until date is inclusive: the unit is serviced through that day.
	assert.False(t, maintenanceExpired(&onToday, today))
	assert.False(t, maintenanceExpired(&future, today))
	assert.False(t, maintenanceExpired(nil, today))
}

func TestComputeRoomStatus(t *testing.T) {
	today := date(2024, 6, 2)

	t.Run("confirmed stay covering today occupies", func(t *testing.T) {
		r := room(1, models.RoomAvailable, nil)
		rs := []models.Reservation{
			reservation(1, models.ReservationConfirmed, date(2024, 6, 1), date(2024, 6, 3)),
		}
		assert.Equal(t, models.RoomOccupied, ComputeRoomStatus(r, rs, today))
	})

	t.Run("pending stay does not occupy", func(t *testing.T) {
		r := room(1, models.RoomAvailable, nil)
		rs := []models.Reservation{
			reservation(1, models.ReservationPending, date(2024, 6, 1), date(2024, 6, 3)),
		}
		assert.Equal(t, models.RoomAvailable, ComputeRoomStatus(r, rs, today))
	})

	t.Run("checkout day frees the room", func(t *testing.T) {
		r := room(1, models.RoomOccupied, nil)
		rs := []models.Reservation{
			reservation(1, models.ReservationCheckedIn, date(2024, 6, 1), date(2024, 6, 2)),
		}
		assert.Equal(t, models.RoomAvailable, ComputeRoomStatus(r, rs, today))
	})

	t.Run("active maintenance window wins over occupancy", func(t *testing.T) {
		until := date(2024, 6, 5)
		r := room(1, models.RoomMaintenance, &until)
		rs := []models.Reservation{
			reservation(1, models.ReservationCheckedIn, date(2024, 6, 1), date(2024, 6, 3)),
		}
		assert.Equal(t, models.RoomMaintenance, ComputeRoomStatus(r, rs, today))
	})

	t.Run("expired maintenance window resolves to available", func(t *testing.T) {
		until := date(2024, 6, 1)
		r := room(1, models.RoomMaintenance, &until)
		assert.Equal(t, models.RoomAvailable, ComputeRoomStatus(r, nil, today))
	})

	t.Run("indefinite maintenance stays maintenance", func(t *testing.T) {
		r := room(1, models.RoomMaintenance, nil)
		assert.Equal(t, models.RoomMaintenance, ComputeRoomStatus(r, nil, today))
	})

	t.Run("idempotent: applying the result changes nothing", func(t *testing.T) {
		r := room(1, models.RoomAvailable, nil)
		rs := []models.Reservation{
			reservation(1, models.ReservationConfirmed, date(2024, 6, 1), date(2024, 6, 3)),
		}

		first := ComputeRoomStatus(r, rs, today)
		r.Status = first
		second := ComputeRoomStatus(r, rs, today)
		assert.Equal(t, first, second)
	})
}

func TestToday(t *testing.T) {
	// Sanity check the clock plumbing used by the sweeps.
	c := utils.RealClock{}
	today := utils.Today(c)
	assert.Equal(t, 0, today.Hour())
	assert.Equal(t, 0, today.Minute())
}
