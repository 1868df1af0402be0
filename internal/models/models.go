package models

import "time"

// DateLayout is the wire format for all calendar dates.
const DateLayout = "2006-01-02"

// Room statuses. Transitions are owned by the billing/access layer.
const (
	RoomAvailable     = "Available"
	RoomOccupied      = "Occupied"
	RoomNeedsCleaning = "Needs Cleaning"
	RoomOutOfService  = "Out of Service"
	RoomBooked        = "Booked"
)

// User roles.
const (
	RoleAdmin        = "Admin"
	RoleClerk        = "Clerk"
	RoleHousekeeping = "Housekeeping"
)

// Reservation history payment filters.
const (
	FilterAll    = "All"
	FilterPaid   = "Paid"
	FilterUnpaid = "Unpaid"
)

// User is an operator identity for authentication.
type User struct {
	ID           int64  `json:"user_id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
}

// Room is one unit of sellable inventory. Rooms are created at setup and
// never deleted; only status and mutable details change.
type Room struct {
	Number        int64   `json:"room_number"`
	Type          string  `json:"room_type"`
	Description   string  `json:"description"`
	Capacity      int64   `json:"capacity"`
	PricePerNight float64 `json:"price_per_night"`
	Status        string  `json:"status"`
}

// Guest is an identity record keyed by email (upsert-by-email at check-in).
type Guest struct {
	ID            int64  `json:"guest_id"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	IsBlacklisted bool   `json:"is_blacklisted"`
}

// FullName returns the guest's display name.
func (g *Guest) FullName() string {
	return g.FirstName + " " + g.LastName
}

// Reservation links one guest to one room for a date interval.
// TotalBill stays 0 and IsPaid false until check-out finalizes them.
type Reservation struct {
	BookingID        int64     `json:"booking_id"`
	RoomNumber       int64     `json:"room_number"`
	GuestID          int64     `json:"guest_id"`
	CheckInDate      time.Time `json:"check_in_date"`
	CheckOutDate     time.Time `json:"check_out_date"`
	TotalBill        float64   `json:"total_bill"`
	IsPaid           bool      `json:"is_paid"`
	ConfirmationCode string    `json:"confirmation_code"`
}

// Charge is an incidental cost attached to a reservation and its room.
// Charges are immutable once created.
type Charge struct {
	ID            int64     `json:"charge_id"`
	ReservationID int64     `json:"reservation_id"`
	RoomNumber    int64     `json:"room_number"`
	Description   string    `json:"description"`
	Amount        float64   `json:"amount"`
	ChargeDate    time.Time `json:"charge_date"`
}

// DateOnly strips the time-of-day component, keeping the location.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Today returns the current calendar date at midnight UTC.
func Today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// DaysBetween returns the whole number of days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(DateOnly(b).Sub(DateOnly(a)).Hours() / 24)
}

// ContainsDate reports whether the stay interval covers the given date,
// boundaries included. An "active" reservation is one containing today.
func (r *Reservation) ContainsDate(date time.Time) bool {
	d := DateOnly(date)
	return !d.Before(DateOnly(r.CheckInDate)) && !d.After(DateOnly(r.CheckOutDate))
}

// Overlaps reports whether the stay intersects the [start, end] window.
func (r *Reservation) Overlaps(start, end time.Time) bool {
	return !DateOnly(r.CheckInDate).After(DateOnly(end)) &&
		!DateOnly(r.CheckOutDate).Before(DateOnly(start))
}

// ClippedNights returns the number of room-nights this stay contributes to
// the [start, end] report window: the interval is clipped at both ends and
// negative results count as zero.
func (r *Reservation) ClippedNights(start, end time.Time) int {
	stayStart := DateOnly(r.CheckInDate)
	if s := DateOnly(start); s.After(stayStart) {
		stayStart = s
	}
	stayEnd := DateOnly(r.CheckOutDate)
	if e := DateOnly(end); e.Before(stayEnd) {
		stayEnd = e
	}
	nights := DaysBetween(stayStart, stayEnd)
	if nights < 0 {
		return 0
	}
	return nights
}

// BilledNights returns the nights charged at check-out: the span from the
// check-in date to the given day, inclusive of both. A same-day check-out
// bills one night (minimum-one-night policy). The originally requested
// check-out date is deliberately ignored so early and late departures are
// billed for the actual stay.
func (r *Reservation) BilledNights(today time.Time) int {
	return DaysBetween(r.CheckInDate, today) + 1
}
