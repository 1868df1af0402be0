package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// Helper function to create a date
func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func TestReservation_ContainsDate(t *testing.T) {
	res := Reservation{
		CheckInDate:  day(2026, 3, 10),
		CheckOutDate: day(2026, 3, 15),
	}

	tests := []struct {
		name     string
		date     time.Time
		contains bool
	}{
		{"day before check-in", day(2026, 3, 9), false},
		{"check-in day", day(2026, 3, 10), true},
		{"mid stay", day(2026, 3, 12), true},
		{"check-out day", day(2026, 3, 15), true},
		{"day after check-out", day(2026, 3, 16), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.contains, res.ContainsDate(tt.date))
		})
	}
}

func TestReservation_ClippedNights(t *testing.T) {
	tests := []struct {
		name       string
		res        Reservation
		start, end time.Time
		nights     int
	}{
		{
			name:   "stay inside window",
			res:    Reservation{CheckInDate: day(2026, 3, 10), CheckOutDate: day(2026, 3, 13)},
			start:  day(2026, 3, 1),
			end:    day(2026, 3, 31),
			nights: 3,
		},
		{
			name:   "long stay clipped to short window",
			res:    Reservation{CheckInDate: day(2026, 3, 1), CheckOutDate: day(2026, 3, 11)},
			start:  day(2026, 3, 5),
			end:    day(2026, 3, 8),
			nights: 3,
		},
		{
			name:   "stay overhangs window start",
			res:    Reservation{CheckInDate: day(2026, 2, 25), CheckOutDate: day(2026, 3, 5)},
			start:  day(2026, 3, 1),
			end:    day(2026, 3, 31),
			nights: 4,
		},
		{
			name:   "stay overhangs window end",
			res:    Reservation{CheckInDate: day(2026, 3, 28), CheckOutDate: day(2026, 4, 3)},
			start:  day(2026, 3, 1),
			end:    day(2026, 3, 31),
			nights: 3,
		},
		{
			name:   "stay outside window counts zero",
			res:    Reservation{CheckInDate: day(2026, 5, 1), CheckOutDate: day(2026, 5, 5)},
			start:  day(2026, 3, 1),
			end:    day(2026, 3, 31),
			nights: 0,
		},
		{
			name:   "arrival on window's last day is zero nights",
			res:    Reservation{CheckInDate: day(2026, 3, 31), CheckOutDate: day(2026, 4, 5)},
			start:  day(2026, 3, 1),
			end:    day(2026, 3, 31),
			nights: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.nights, tt.res.ClippedNights(tt.start, tt.end))
		})
	}
}

func TestReservation_BilledNights(t *testing.T) {
	res := Reservation{CheckInDate: day(2026, 3, 10), CheckOutDate: day(2026, 3, 20)}

	tests := []struct {
		name   string
		today  time.Time
		nights int
	}{
		{"same-day departure bills one night", day(2026, 3, 10), 1},
		{"next day bills two nights", day(2026, 3, 11), 2},
		{"requested check-out date is ignored", day(2026, 3, 25), 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.nights, res.BilledNights(tt.today))
		})
	}
}

func TestReservation_Overlaps(t *testing.T) {
	res := Reservation{CheckInDate: day(2026, 3, 10), CheckOutDate: day(2026, 3, 15)}

	assert.True(t, res.Overlaps(day(2026, 3, 1), day(2026, 3, 10)))
	assert.True(t, res.Overlaps(day(2026, 3, 15), day(2026, 3, 20)))
	assert.True(t, res.Overlaps(day(2026, 3, 12), day(2026, 3, 13)))
	assert.False(t, res.Overlaps(day(2026, 3, 1), day(2026, 3, 9)))
	assert.False(t, res.Overlaps(day(2026, 3, 16), day(2026, 3, 20)))
}

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate("2026-03-10")
	assert.NoError(t, err)
	assert.Equal(t, day(2026, 3, 10), parsed)

	_, err = ParseDate("10/03/2026")
	assert.Error(t, err)
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 0, DaysBetween(day(2026, 3, 10), day(2026, 3, 10)))
	assert.Equal(t, 5, DaysBetween(day(2026, 3, 10), day(2026, 3, 15)))
	assert.Equal(t, -5, DaysBetween(day(2026, 3, 15), day(2026, 3, 10)))
}
