package database

import (
	"context"
	"testing"

	"hotelier/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testGuest = GuestInfo{
	FirstName: "Carol",
	LastName:  "White",
	Email:     "carol@example.com",
	Phone:     "555-0303",
	Address:   "3 Pine Rd",
}

func TestCheckInGuest_SameDayOccupiesRoom(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	today := models.Today()

	bookingID, err := db.CheckInGuest(ctx, testGuest, 101, today, today.AddDate(0, 0, 3), "conf-1")
	require.NoError(t, err)
	assert.Positive(t, bookingID)

	detail, err := db.GetRoomByNumber(ctx, 101)
	require.NoError(t, err)
	assert.Equal(t, models.RoomOccupied, detail.Room.Status)

	// The reservation is active today and carries its guest
	require.NotNil(t, detail.Reservation)
	assert.Equal(t, bookingID, detail.Reservation.BookingID)
	assert.Zero(t, detail.Reservation.TotalBill)
	assert.False(t, detail.Reservation.IsPaid)
	assert.Equal(t, "conf-1", detail.Reservation.ConfirmationCode)
	require.NotNil(t, detail.Guest)
	assert.Equal(t, "carol@example.com", detail.Guest.Email)
}

func TestCheckInGuest_FutureDateBooksRoom(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	start := models.Today().AddDate(0, 0, 5)

	_, err := db.CheckInGuest(ctx, testGuest, 102, start, start.AddDate(0, 0, 2), "conf-2")
	require.NoError(t, err)

	detail, err := db.GetRoomByNumber(ctx, 102)
	require.NoError(t, err)
	assert.Equal(t, models.RoomBooked, detail.Room.Status)
	// Future stay is not active today
	assert.Nil(t, detail.Reservation)
}

func TestCheckInGuest_ReusesGuestByEmail(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	today := models.Today()

	first, err := db.CheckInGuest(ctx, testGuest, 101, today, today.AddDate(0, 0, 1), "")
	require.NoError(t, err)

	// Same email, different name spelling: identity is reused, not duplicated
	second, err := db.CheckInGuest(ctx, GuestInfo{
		FirstName: "Caroline", LastName: "White", Email: "carol@example.com",
	}, 102, today.AddDate(0, 0, 10), today.AddDate(0, 0, 12), "")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	guests, err := db.SearchGuests(ctx, "carol@example.com")
	require.NoError(t, err)
	assert.Len(t, guests, 1)

	resA, err := db.GetReservation(ctx, first)
	require.NoError(t, err)
	resB, err := db.GetReservation(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, resA.GuestID, resB.GuestID)
}

func TestCheckOutGuest_SameDayBillsOneNight(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	today := models.Today()

	bookingID, err := db.CheckInGuest(ctx, testGuest, 101, today, today.AddDate(0, 0, 5), "")
	require.NoError(t, err)

	res, nights, err := db.CheckOutGuest(ctx, bookingID, 101, 100.0)
	require.NoError(t, err)
	assert.Equal(t, 1, nights)
	assert.Equal(t, 100.0, res.TotalBill)
	assert.True(t, res.IsPaid)

	detail, err := db.GetRoomByNumber(ctx, 101)
	require.NoError(t, err)
	assert.Equal(t, models.RoomNeedsCleaning, detail.Room.Status)
}

func TestCheckOutGuest_IncludesExtraCharges(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	today := models.Today()

	bookingID, err := db.CheckInGuest(ctx, testGuest, 201, today, today.AddDate(0, 0, 3), "")
	require.NoError(t, err)

	_, err = db.AddExtraCharge(ctx, bookingID, 201, "Room service", 42.50)
	require.NoError(t, err)
	_, err = db.AddExtraCharge(ctx, bookingID, 201, "Minibar", 17.50)
	require.NoError(t, err)

	res, nights, err := db.CheckOutGuest(ctx, bookingID, 201, 250.0)
	require.NoError(t, err)
	assert.Equal(t, 1, nights)
	assert.Equal(t, 250.0+42.50+17.50, res.TotalBill)
}

func TestCheckOutGuest_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, _, err := db.CheckOutGuest(context.Background(), 12345, 101, 100.0)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddExtraCharge(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	today := models.Today()

	bookingID, err := db.CheckInGuest(ctx, testGuest, 101, today, today.AddDate(0, 0, 2), "")
	require.NoError(t, err)

	_, err = db.AddExtraCharge(ctx, bookingID, 101, "Laundry", 0)
	assert.ErrorIs(t, err, ErrInvalidAmount)
	_, err = db.AddExtraCharge(ctx, bookingID, 101, "Laundry", -5)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	chargeID, err := db.AddExtraCharge(ctx, bookingID, 101, "Laundry", 15.0)
	require.NoError(t, err)
	assert.Positive(t, chargeID)

	charges, err := db.GetChargesForReservation(ctx, bookingID)
	require.NoError(t, err)
	require.Len(t, charges, 1)
	assert.Equal(t, "Laundry", charges[0].Description)
	assert.Equal(t, 15.0, charges[0].Amount)
	assert.Equal(t, models.Today(), models.DateOnly(charges[0].ChargeDate))

	// Charges do not touch the stored bill before check-out
	res, err := db.GetReservation(ctx, bookingID)
	require.NoError(t, err)
	assert.Zero(t, res.TotalBill)
	assert.False(t, res.IsPaid)
}
