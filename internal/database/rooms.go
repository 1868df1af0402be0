package database

import (
	"context"
	"database/sql"
	"fmt"

	"hotelier/internal/models"
)

// GetRoomStatuses returns the dashboard grid: number, type and status of
// every room.
func (db *DB) GetRoomStatuses(ctx context.Context) ([]models.RoomStatusCard, error) {
	rows, err := db.QueryContext(ctx,
		"SELECT room_number, room_type, status FROM rooms ORDER BY room_number")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []models.RoomStatusCard
	for rows.Next() {
		var c models.RoomStatusCard
		if err := rows.Scan(&c.Number, &c.Type, &c.Status); err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

// GetAllRooms returns every room with full details.
func (db *DB) GetAllRooms(ctx context.Context) ([]models.Room, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT room_number, room_type, description, capacity, price_per_night, status
		FROM rooms ORDER BY room_number`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []models.Room
	for rows.Next() {
		var r models.Room
		if err := rows.Scan(&r.Number, &r.Type, &r.Description, &r.Capacity, &r.PricePerNight, &r.Status); err != nil {
			return nil, err
		}
		rooms = append(rooms, r)
	}
	return rooms, rows.Err()
}

// GetRoomsNeedingCleaning returns rooms in "Needs Cleaning" status for the
// housekeeping list.
func (db *DB) GetRoomsNeedingCleaning(ctx context.Context) ([]models.Room, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT room_number, room_type, description, capacity, price_per_night, status
		FROM rooms WHERE status = ? ORDER BY room_number`,
		models.RoomNeedsCleaning)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []models.Room
	for rows.Next() {
		var r models.Room
		if err := rows.Scan(&r.Number, &r.Type, &r.Description, &r.Capacity, &r.PricePerNight, &r.Status); err != nil {
			return nil, err
		}
		rooms = append(rooms, r)
	}
	return rooms, rows.Err()
}

// GetRoomByNumber returns a room with its active reservation (interval
// containing today) and that reservation's guest, when one exists.
func (db *DB) GetRoomByNumber(ctx context.Context, roomNumber int64) (*models.RoomDetail, error) {
	var detail models.RoomDetail
	err := db.QueryRowContext(ctx, `
		SELECT room_number, room_type, description, capacity, price_per_night, status
		FROM rooms WHERE room_number = ?`,
		roomNumber,
	).Scan(
		&detail.Room.Number, &detail.Room.Type, &detail.Room.Description,
		&detail.Room.Capacity, &detail.Room.PricePerNight, &detail.Room.Status,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	today := models.Today().Format(models.DateLayout)
	var res models.Reservation
	var code sql.NullString
	err = db.QueryRowContext(ctx, `
		SELECT booking_id, room_number_fk, guest_id_fk, check_in_date, check_out_date,
		       total_bill, is_paid, confirmation_code
		FROM reservations
		WHERE room_number_fk = ?
		  AND date(check_in_date) <= date(?)
		  AND date(check_out_date) >= date(?)
		LIMIT 1`,
		roomNumber, today, today,
	).Scan(
		&res.BookingID, &res.RoomNumber, &res.GuestID, &res.CheckInDate,
		&res.CheckOutDate, &res.TotalBill, &res.IsPaid, &code,
	)
	if err == sql.ErrNoRows {
		return &detail, nil
	}
	if err != nil {
		return nil, fmt.Errorf("active reservation: %w", err)
	}
	res.ConfirmationCode = code.String
	detail.Reservation = &res

	var g models.Guest
	err = db.QueryRowContext(ctx, `
		SELECT guest_id, first_name, last_name, contact_email, contact_phone, address, is_blacklisted
		FROM guests WHERE guest_id = ?`,
		res.GuestID,
	).Scan(&g.ID, &g.FirstName, &g.LastName, &g.Email, &g.Phone, &g.Address, &g.IsBlacklisted)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("reservation guest: %w", err)
	}
	if err == nil {
		detail.Guest = &g
	}

	return &detail, nil
}

// UpdateRoomStatus sets a room's status. Returns ErrNotFound when the room
// does not exist.
func (db *DB) UpdateRoomStatus(ctx context.Context, roomNumber int64, newStatus string) error {
	result, err := db.ExecContext(ctx,
		"UPDATE rooms SET status = ? WHERE room_number = ?",
		newStatus, roomNumber,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	db.logger.Debug().
		Int64("room", roomNumber).
		Str("status", newStatus).
		Msg("room status updated")
	return nil
}

// RoomDetailsUpdate carries the mutable room fields for UpdateRoomDetails.
// Nil fields are left unchanged.
type RoomDetailsUpdate struct {
	Type          *string
	PricePerNight *float64
	Capacity      *int64
	Description   *string
}

// UpdateRoomDetails updates the mutable fields of a room in one transaction.
func (db *DB) UpdateRoomDetails(ctx context.Context, roomNumber int64, update RoomDetailsUpdate) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var exists int64
	err = tx.QueryRowContext(ctx,
		"SELECT room_number FROM rooms WHERE room_number = ?", roomNumber,
	).Scan(&exists)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("find room: %w", err)
	}

	apply := func(column string, value any) error {
		_, err := tx.ExecContext(ctx,
			fmt.Sprintf("UPDATE rooms SET %s = ? WHERE room_number = ?", column),
			value, roomNumber)
		return err
	}

	if update.Type != nil {
		if err := apply("room_type", *update.Type); err != nil {
			return fmt.Errorf("update room_type: %w", err)
		}
	}
	if update.PricePerNight != nil {
		if err := apply("price_per_night", *update.PricePerNight); err != nil {
			return fmt.Errorf("update price_per_night: %w", err)
		}
	}
	if update.Capacity != nil {
		if err := apply("capacity", *update.Capacity); err != nil {
			return fmt.Errorf("update capacity: %w", err)
		}
	}
	if update.Description != nil {
		if err := apply("description", *update.Description); err != nil {
			return fmt.Errorf("update description: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	db.logger.Info().Int64("room", roomNumber).Msg("room details updated")
	return nil
}

// CountRooms returns the total room inventory size.
func (db *DB) CountRooms(ctx context.Context) (int, error) {
	var count int
	err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM rooms").Scan(&count)
	return count, err
}
