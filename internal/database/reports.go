package database

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"hotelier/internal/models"
)

// HistoryFilter narrows a reservation history query. Zero values mean "no
// filter"; Start/End bound the overlap window when non-nil.
type HistoryFilter struct {
	SearchQuery  string
	StatusFilter string // models.FilterAll, FilterPaid or FilterUnpaid
	Start        *time.Time
	End          *time.Time
}

// GetReservationHistory returns reservations joined with guest and room,
// newest check-in first.
func (db *DB) GetReservationHistory(ctx context.Context, filter HistoryFilter) ([]models.HistoryRow, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT r.booking_id, r.check_in_date, r.check_out_date, r.total_bill, r.is_paid,
		       g.first_name, g.last_name, rm.room_number, rm.room_type
		FROM reservations r
		JOIN guests g ON g.guest_id = r.guest_id_fk
		JOIN rooms rm ON rm.room_number = r.room_number_fk
		WHERE 1=1`)
	var args []any

	switch filter.StatusFilter {
	case models.FilterPaid:
		sb.WriteString(" AND r.is_paid = 1")
	case models.FilterUnpaid:
		sb.WriteString(" AND r.is_paid = 0")
	}

	if filter.SearchQuery != "" {
		term := "%" + filter.SearchQuery + "%"
		sb.WriteString(` AND (lower(g.first_name) LIKE lower(?)
			OR lower(g.last_name) LIKE lower(?)
			OR rm.room_number LIKE ?)`)
		args = append(args, term, term, term)
	}

	if filter.Start != nil {
		sb.WriteString(" AND date(r.check_out_date) >= date(?)")
		args = append(args, filter.Start.Format(models.DateLayout))
	}
	if filter.End != nil {
		sb.WriteString(" AND date(r.check_in_date) <= date(?)")
		args = append(args, filter.End.Format(models.DateLayout))
	}

	sb.WriteString(" ORDER BY r.check_in_date DESC")

	rows, err := db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []models.HistoryRow
	for rows.Next() {
		var (
			row                 models.HistoryRow
			checkIn, checkOut   time.Time
			firstName, lastName string
		)
		if err := rows.Scan(
			&row.BookingID, &checkIn, &checkOut, &row.Bill, &row.IsPaid,
			&firstName, &lastName, &row.RoomNumber, &row.RoomType,
		); err != nil {
			return nil, err
		}
		row.GuestName = firstName + " " + lastName
		row.CheckIn = checkIn.Format(models.DateLayout)
		row.CheckOut = checkOut.Format(models.DateLayout)
		results = append(results, row)
	}
	return results, rows.Err()
}

// SumPaidRevenue totals the final bills of paid reservations whose stay
// interval overlaps [start, end].
func (db *DB) SumPaidRevenue(ctx context.Context, start, end time.Time) (float64, error) {
	var total sql.NullFloat64
	err := db.QueryRowContext(ctx, `
		SELECT SUM(total_bill) FROM reservations
		WHERE is_paid = 1
		  AND date(check_in_date) <= date(?)
		  AND date(check_out_date) >= date(?)`,
		end.Format(models.DateLayout), start.Format(models.DateLayout),
	).Scan(&total)
	if err != nil {
		return 0, err
	}
	return total.Float64, nil
}

// GetOverlappingReservations returns every reservation, paid or not, whose
// stay interval overlaps [start, end].
func (db *DB) GetOverlappingReservations(ctx context.Context, start, end time.Time) ([]models.Reservation, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT booking_id, room_number_fk, guest_id_fk, check_in_date, check_out_date,
		       total_bill, is_paid, confirmation_code
		FROM reservations
		WHERE date(check_in_date) <= date(?)
		  AND date(check_out_date) >= date(?)`,
		end.Format(models.DateLayout), start.Format(models.DateLayout),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reservations []models.Reservation
	for rows.Next() {
		var res models.Reservation
		var code sql.NullString
		if err := rows.Scan(
			&res.BookingID, &res.RoomNumber, &res.GuestID, &res.CheckInDate,
			&res.CheckOutDate, &res.TotalBill, &res.IsPaid, &code,
		); err != nil {
			return nil, err
		}
		res.ConfirmationCode = code.String
		reservations = append(reservations, res)
	}
	return reservations, rows.Err()
}
