package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"hotelier/internal/models"
)

// GuestInfo carries the guest identity supplied at check-in.
type GuestInfo struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   string
}

// CheckInGuest creates a reservation in a single transaction: the guest is
// resolved by email (reused when present, created otherwise), the
// reservation is inserted with a zero bill, and the room status is set to
// Occupied for a same-day check-in or Booked for a future one.
//
// The room row is updated without an existence check; a reservation against
// an unknown room still commits and the status update is a no-op.
func (db *DB) CheckInGuest(
	ctx context.Context,
	guest GuestInfo,
	roomNumber int64,
	checkIn, checkOut time.Time,
	confirmationCode string,
) (int64, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// Find or create the guest by email
	var guestID int64
	err = tx.QueryRowContext(ctx,
		"SELECT guest_id FROM guests WHERE contact_email = ?", guest.Email,
	).Scan(&guestID)
	if err == sql.ErrNoRows {
		result, insErr := tx.ExecContext(ctx, `
			INSERT INTO guests (first_name, last_name, contact_email, contact_phone, address)
			VALUES (?, ?, ?, ?, ?)`,
			guest.FirstName, guest.LastName, guest.Email, guest.Phone, guest.Address,
		)
		if insErr != nil {
			return 0, fmt.Errorf("insert guest: %w", insErr)
		}
		guestID, insErr = result.LastInsertId()
		if insErr != nil {
			return 0, fmt.Errorf("guest id: %w", insErr)
		}
	} else if err != nil {
		return 0, fmt.Errorf("find guest: %w", err)
	}

	result, err := tx.ExecContext(ctx, `
		INSERT INTO reservations (
			room_number_fk, guest_id_fk, check_in_date, check_out_date,
			total_bill, is_paid, confirmation_code
		) VALUES (?, ?, ?, ?, 0, 0, ?)`,
		roomNumber,
		guestID,
		checkIn.Format(models.DateLayout),
		checkOut.Format(models.DateLayout),
		confirmationCode,
	)
	if err != nil {
		return 0, fmt.Errorf("insert reservation: %w", err)
	}

	bookingID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("booking id: %w", err)
	}

	status := models.RoomBooked
	if models.DateOnly(checkIn).Equal(models.Today()) {
		status = models.RoomOccupied
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE rooms SET status = ? WHERE room_number = ?",
		status, roomNumber,
	); err != nil {
		return 0, fmt.Errorf("update room status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}

	db.logger.Info().
		Int64("booking_id", bookingID).
		Int64("room", roomNumber).
		Int64("guest", guestID).
		Str("status", status).
		Msg("check-in recorded")
	return bookingID, nil
}

// CheckOutGuest finalizes a reservation in a single transaction: the bill is
// nights×rate plus the sum of the reservation's charges, is_paid is set and
// the room moves to Needs Cleaning. Nights are measured from the check-in
// date to today, inclusive of both, never from the requested check-out date.
func (db *DB) CheckOutGuest(
	ctx context.Context,
	reservationID, roomNumber int64,
	ratePerNight float64,
) (*models.Reservation, int, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var res models.Reservation
	var code sql.NullString
	err = tx.QueryRowContext(ctx, `
		SELECT booking_id, room_number_fk, guest_id_fk, check_in_date, check_out_date,
		       total_bill, is_paid, confirmation_code
		FROM reservations WHERE booking_id = ?`,
		reservationID,
	).Scan(
		&res.BookingID, &res.RoomNumber, &res.GuestID, &res.CheckInDate,
		&res.CheckOutDate, &res.TotalBill, &res.IsPaid, &code,
	)
	if err == sql.ErrNoRows {
		return nil, 0, ErrNotFound
	}
	if err != nil {
		return nil, 0, fmt.Errorf("find reservation: %w", err)
	}
	res.ConfirmationCode = code.String

	nights := res.BilledNights(models.Today())
	roomCharge := float64(nights) * ratePerNight

	var extras sql.NullFloat64
	err = tx.QueryRowContext(ctx,
		"SELECT SUM(amount) FROM charges WHERE reservation_id_fk = ?",
		reservationID,
	).Scan(&extras)
	if err != nil {
		return nil, 0, fmt.Errorf("sum charges: %w", err)
	}

	totalBill := roomCharge + extras.Float64

	if _, err := tx.ExecContext(ctx,
		"UPDATE reservations SET total_bill = ?, is_paid = 1 WHERE booking_id = ?",
		totalBill, reservationID,
	); err != nil {
		return nil, 0, fmt.Errorf("update reservation: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE rooms SET status = ? WHERE room_number = ?",
		models.RoomNeedsCleaning, roomNumber,
	); err != nil {
		return nil, 0, fmt.Errorf("update room status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, 0, fmt.Errorf("commit: %w", err)
	}

	res.TotalBill = totalBill
	res.IsPaid = true

	db.logger.Info().
		Int64("booking_id", reservationID).
		Int64("room", roomNumber).
		Int("nights", nights).
		Float64("total_bill", totalBill).
		Msg("check-out recorded")
	return &res, nights, nil
}

// AddExtraCharge appends an immutable charge dated today. The reservation's
// stored total_bill is untouched; charges are aggregated at check-out.
func (db *DB) AddExtraCharge(
	ctx context.Context,
	reservationID, roomNumber int64,
	description string,
	amount float64,
) (int64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}

	result, err := db.ExecContext(ctx, `
		INSERT INTO charges (reservation_id_fk, room_number_fk, description, amount, charge_date)
		VALUES (?, ?, ?, ?, ?)`,
		reservationID, roomNumber, description, amount,
		models.Today().Format(models.DateLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("insert charge: %w", err)
	}

	chargeID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("charge id: %w", err)
	}

	db.logger.Info().
		Int64("charge_id", chargeID).
		Int64("booking_id", reservationID).
		Float64("amount", amount).
		Msg("charge added")
	return chargeID, nil
}

// GetChargesForReservation returns the reservation's charges in creation
// order.
func (db *DB) GetChargesForReservation(ctx context.Context, reservationID int64) ([]models.Charge, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT charge_id, reservation_id_fk, room_number_fk, description, amount, charge_date
		FROM charges WHERE reservation_id_fk = ? ORDER BY charge_id`,
		reservationID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var charges []models.Charge
	for rows.Next() {
		var c models.Charge
		if err := rows.Scan(&c.ID, &c.ReservationID, &c.RoomNumber, &c.Description, &c.Amount, &c.ChargeDate); err != nil {
			return nil, err
		}
		charges = append(charges, c)
	}
	return charges, rows.Err()
}

// GetReservation returns a reservation by booking id.
func (db *DB) GetReservation(ctx context.Context, reservationID int64) (*models.Reservation, error) {
	var res models.Reservation
	var code sql.NullString
	err := db.QueryRowContext(ctx, `
		SELECT booking_id, room_number_fk, guest_id_fk, check_in_date, check_out_date,
		       total_bill, is_paid, confirmation_code
		FROM reservations WHERE booking_id = ?`,
		reservationID,
	).Scan(
		&res.BookingID, &res.RoomNumber, &res.GuestID, &res.CheckInDate,
		&res.CheckOutDate, &res.TotalBill, &res.IsPaid, &code,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	res.ConfirmationCode = code.String
	return &res, nil
}
