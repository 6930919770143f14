package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd time.Time
		want                       bool
	}{
		{
			name:   "identical ranges",
			aStart: date(2024, 6, 1), aEnd: date(2024, 6, 3),
			bStart: date(2024, 6, 1), bEnd: date(2024, 6, 3),
			want: true,
		},
		{
			name:   "partial overlap",
			aStart: date(2024, 6, 1), aEnd: date(2024, 6, 3),
			bStart: date(2024, 6, 2), bEnd: date(2024, 6, 4),
			want: true,
		},
		{
			name:   "contained range",
			aStart: date(2024, 6, 1), aEnd: date(2024, 6, 10),
			bStart: date(2024, 6, 3), bEnd: date(2024, 6, 4),
			want: true,
		},
		{
			name:   "back-to-back checkout equals checkin",
			aStart: date(2024, 6, 1), aEnd: date(2024, 6, 3),
			bStart: date(2024, 6, 3), bEnd: date(2024, 6, 5),
			want: false,
		},
		{
			name:   "disjoint ranges",
			aStart: date(2024, 6, 1), aEnd: date(2024, 6, 2),
			bStart: date(2024, 6, 10), bEnd: date(2024, 6, 12),
			want: false,
		},
		{
			name:   "single night inside longer stay",
			aStart: date(2024, 6, 2), aEnd: date(2024, 6, 3),
			bStart: date(2024, 6, 1), bEnd: date(2024, 6, 5),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			// Overlap is symmetric.
			assert.Equal(t, tt.want, Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd))
		})
	}
}

func TestDaysCovered(t *testing.T) {
	t.Run("enumerates half-open range", func(t *testing.T) {
		days := DaysCovered(date(2024, 6, 1), date(2024, 6, 4))
		require.Len(t, days, 3)
		assert.Equal(t, date(2024, 6, 1), days[0])
		assert.Equal(t, date(2024, 6, 2), days[1])
		assert.Equal(t, date(2024, 6, 3), days[2])
	})

	t.Run("single night", func(t *testing.T) {
		days := DaysCovered(date(2024, 6, 1), date(2024, 6, 2))
		require.Len(t, days, 1)
		assert.Equal(t, date(2024, 6, 1), days[0])
	})

	t.Run("crosses month boundary", func(t *testing.T) {
		days := DaysCovered(date(2024, 6, 29), date(2024, 7, 2))
		require.Len(t, days, 3)
		assert.Equal(t, date(2024, 6, 30), days[1])
		assert.Equal(t, date(2024, 7, 1), days[2])
	})

	t.Run("start equals end yields nothing", func(t *testing.T) {
		assert.Empty(t, DaysCovered(date(2024, 6, 1), date(2024, 6, 1)))
	})

	t.Run("inverted range yields nothing", func(t *testing.T) {
		assert.Empty(t, DaysCovered(date(2024, 6, 4), date(2024, 6, 1)))
	})

	t.Run("truncates time-of-day", func(t *testing.T) {
		start := time.Date(2024, 6, 1, 15, 30, 0, 0, time.UTC)
		end := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)
		days := DaysCovered(start, end)
		require.Len(t, days, 2)
		assert.Equal(t, date(2024, 6, 1), days[0])
	})
}

func TestCoversDay(t *testing.T) {
	start, end := date(2024, 6, 1), date(2024, 6, 3)

	assert.True(t, CoversDay(start, end, date(2024, 6, 1)))
	assert.True(t, CoversDay(start, end, date(2024, 6, 2)))
	assert.False(t, CoversDay(start, end, date(2024, 6, 3)), "checkout day is not covered")
	assert.False(t, CoversDay(start, end, date(2024, 5, 31)))
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2024-06-01")
	require.NoError(t, err)
	assert.Equal(t, date(2024, 6, 1), got)

	_, err = ParseDate("01/06/2024")
	assert.Error(t, err)

	_, err = ParseDate("")
	assert.Error(t, err)
}
