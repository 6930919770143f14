package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Jose888-pixe/Web-hotel-sub000/models"
)

func TestCheckTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		wantErr error
	}{
		{name: "pending to confirmed", from: models.ReservationPending, to: models.ReservationConfirmed},
		{name: "confirmed to checked-in", from: models.ReservationConfirmed, to: models.ReservationCheckedIn},
		{name: "checked-in to checked-out", from: models.ReservationCheckedIn, to: models.ReservationCheckedOut},
		{name: "pending straight to checked-in", from: models.ReservationPending, to: models.ReservationCheckedIn},
		{name: "confirmed back to pending", from: models.ReservationConfirmed, to: models.ReservationPending},
		{name: "checked-out reopened", from: models.ReservationCheckedOut, to: models.ReservationCheckedIn},
		{name: "anything to cancelled", from: models.ReservationConfirmed, to: models.ReservationCancelled},
		{
			name: "cancelled is terminal", from: models.ReservationCancelled, to: models.ReservationPending,
			wantErr: ErrTerminalState,
		},
		{
			name: "cancelled cannot re-cancel", from: models.ReservationCancelled, to: models.ReservationCancelled,
			wantErr: ErrTerminalState,
		},
		{
			name: "unknown target status", from: models.ReservationPending, to: "archived",
			wantErr: ErrInvalidStatus,
		},
		{
			name: "empty target status", from: models.ReservationPending, to: "",
			wantErr: ErrInvalidStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckTransition(tt.from, tt.to)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCleanupDecision(t *testing.T) {
	today := date(2024, 6, 10)

	mk := func(status, payment string, checkOut time.Time) models.Reservation {
		return models.Reservation{
			Status:        status,
			PaymentStatus: payment,
			CheckIn:       checkOut.AddDate(0, 0, -2),
			CheckOut:      checkOut,
		}
	}

	tests := []struct {
		name string
		r    models.Reservation
		want CleanupAction
	}{
		{
			name: "future stay untouched",
			r:    mk(models.ReservationConfirmed, models.PaymentPending, date(2024, 6, 20)),
			want: CleanupKeep,
		},
		{
			name: "checkout today untouched",
			r:    mk(models.ReservationCheckedIn, models.PaymentPending, date(2024, 6, 10)),
			want: CleanupKeep,
		},
		{
			name: "past and paid is archived",
			r:    mk(models.ReservationCheckedOut, models.PaymentPaid, date(2024, 6, 5)),
			want: CleanupArchive,
		},
		{
			name: "past paid but still checked-in is archived too",
			r:    mk(models.ReservationCheckedIn, models.PaymentPaid, date(2024, 6, 5)),
			want: CleanupArchive,
		},
		{
			name: "past unpaid confirmed reverts to pending",
			r:    mk(models.ReservationConfirmed, models.PaymentPending, date(2024, 6, 5)),
			want: CleanupMarkPaymentPending,
		},
		{
			name: "past unpaid checked-out reverts to pending",
			r:    mk(models.ReservationCheckedOut, models.PaymentPending, date(2024, 6, 5)),
			want: CleanupMarkPaymentPending,
		},
		{
			name: "past unpaid already pending is kept",
			r:    mk(models.ReservationPending, models.PaymentPending, date(2024, 6, 5)),
			want: CleanupKeep,
		},
		{
			name: "past cancelled unpaid is kept",
			r:    mk(models.ReservationCancelled, models.PaymentPending, date(2024, 6, 5)),
			want: CleanupKeep,
		},
		{
			name: "past refunded cancellation is kept",
			r:    mk(models.ReservationCancelled, models.PaymentRefunded, date(2024, 6, 5)),
			want: CleanupKeep,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanupDecision(tt.r, today))
		})
	}
}
