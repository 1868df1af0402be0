package database

import (
	"context"
	"testing"
	"time"

	"hotelier/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func insertGuest(t *testing.T, db *DB, first, last, email string) int64 {
	t.Helper()
	result, err := db.ExecContext(context.Background(),
		"INSERT INTO guests (first_name, last_name, contact_email) VALUES (?, ?, ?)",
		first, last, email)
	require.NoError(t, err)
	id, err := result.LastInsertId()
	require.NoError(t, err)
	return id
}

// insertReservation writes a reservation row directly so tests control the
// stored bill and payment state.
func insertReservation(t *testing.T, db *DB, room, guestID int64, checkIn, checkOut time.Time, bill float64, paid bool) int64 {
	t.Helper()
	result, err := db.ExecContext(context.Background(), `
		INSERT INTO reservations (room_number_fk, guest_id_fk, check_in_date, check_out_date, total_bill, is_paid)
		VALUES (?, ?, ?, ?, ?, ?)`,
		room, guestID,
		checkIn.Format(models.DateLayout), checkOut.Format(models.DateLayout),
		bill, paid)
	require.NoError(t, err)
	id, err := result.LastInsertId()
	require.NoError(t, err)
	return id
}

func TestSumPaidRevenue(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	alice := insertGuest(t, db, "Alice", "Johnson", "alice@example.com")

	// Paid, inside the window
	insertReservation(t, db, 101, alice, day(2026, 3, 5), day(2026, 3, 8), 300, true)
	// Paid, overlapping the window start
	insertReservation(t, db, 102, alice, day(2026, 2, 25), day(2026, 3, 2), 500, true)
	// Unpaid, inside the window: excluded from revenue
	insertReservation(t, db, 201, alice, day(2026, 3, 10), day(2026, 3, 12), 999, false)
	// Paid, entirely outside the window
	insertReservation(t, db, 202, alice, day(2026, 4, 1), day(2026, 4, 5), 800, true)

	total, err := db.SumPaidRevenue(ctx, day(2026, 3, 1), day(2026, 3, 31))
	require.NoError(t, err)
	assert.Equal(t, 800.0, total)

	// Empty window
	total, err = db.SumPaidRevenue(ctx, day(2027, 1, 1), day(2027, 1, 31))
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestGetOverlappingReservations(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	alice := insertGuest(t, db, "Alice", "Johnson", "alice@example.com")

	insertReservation(t, db, 101, alice, day(2026, 3, 5), day(2026, 3, 8), 300, true)
	insertReservation(t, db, 201, alice, day(2026, 3, 10), day(2026, 3, 12), 0, false)
	insertReservation(t, db, 202, alice, day(2026, 4, 1), day(2026, 4, 5), 800, true)

	// Paid and unpaid stays both count
	overlapping, err := db.GetOverlappingReservations(ctx, day(2026, 3, 1), day(2026, 3, 31))
	require.NoError(t, err)
	assert.Len(t, overlapping, 2)

	// Boundary touch: check-out on the window's first day still overlaps
	overlapping, err = db.GetOverlappingReservations(ctx, day(2026, 3, 8), day(2026, 3, 9))
	require.NoError(t, err)
	assert.Len(t, overlapping, 1)
}

func TestGetReservationHistory(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	alice := insertGuest(t, db, "Alice", "Johnson", "alice@example.com")
	bob := insertGuest(t, db, "Bob", "Smith", "bob@example.com")
	insertReservation(t, db, 201, alice, day(2026, 3, 10), day(2026, 3, 12), 500, true)
	insertReservation(t, db, 202, bob, day(2026, 3, 20), day(2026, 3, 22), 0, false)

	t.Run("all rows newest first", func(t *testing.T) {
		rows, err := db.GetReservationHistory(ctx, HistoryFilter{StatusFilter: models.FilterAll})
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "2026-03-20", rows[0].CheckIn)
		assert.Equal(t, "2026-03-10", rows[1].CheckIn)
	})

	t.Run("paid filter", func(t *testing.T) {
		rows, err := db.GetReservationHistory(ctx, HistoryFilter{StatusFilter: models.FilterPaid})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.True(t, rows[0].IsPaid)
		assert.Equal(t, 500.0, rows[0].Bill)
		assert.Equal(t, "Alice Johnson", rows[0].GuestName)
	})

	t.Run("unpaid filter", func(t *testing.T) {
		rows, err := db.GetReservationHistory(ctx, HistoryFilter{StatusFilter: models.FilterUnpaid})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.False(t, rows[0].IsPaid)
	})

	t.Run("guest name search is case-insensitive", func(t *testing.T) {
		rows, err := db.GetReservationHistory(ctx, HistoryFilter{SearchQuery: "ALICE", StatusFilter: models.FilterAll})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "Alice Johnson", rows[0].GuestName)
	})

	t.Run("room number search", func(t *testing.T) {
		rows, err := db.GetReservationHistory(ctx, HistoryFilter{SearchQuery: "202", StatusFilter: models.FilterAll})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, int64(202), rows[0].RoomNumber)
	})

	t.Run("no match is empty, not an error", func(t *testing.T) {
		rows, err := db.GetReservationHistory(ctx, HistoryFilter{SearchQuery: "nobody", StatusFilter: models.FilterAll})
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("date range overlap filter", func(t *testing.T) {
		start := day(2026, 3, 15)
		end := day(2026, 3, 25)
		rows, err := db.GetReservationHistory(ctx, HistoryFilter{
			StatusFilter: models.FilterAll,
			Start:        &start,
			End:          &end,
		})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "2026-03-20", rows[0].CheckIn)
	})
}
