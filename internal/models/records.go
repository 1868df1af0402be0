package models

// Flat query-result records returned across the presentation boundary.
// No live object graph: joins are materialized here, once, per query.

// RoomStatusCard is one cell of the dashboard room grid.
type RoomStatusCard struct {
	Number int64  `json:"number"`
	Type   string `json:"type"`
	Status string `json:"status"`
}

// RoomDetail is a room with its active reservation and guest, if any.
type RoomDetail struct {
	Room        Room         `json:"room"`
	Reservation *Reservation `json:"reservation,omitempty"`
	Guest       *Guest       `json:"guest,omitempty"`
}

// GuestMatch is one guest search hit.
type GuestMatch struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	Blacklisted bool   `json:"blacklisted"`
}

// HistoryRow is one reservation history entry, joined across
// reservations, guests and rooms.
type HistoryRow struct {
	BookingID  int64   `json:"booking_id"`
	RoomNumber int64   `json:"room_number"`
	RoomType   string  `json:"room_type"`
	GuestName  string  `json:"guest_name"`
	CheckIn    string  `json:"check_in"`
	CheckOut   string  `json:"check_out"`
	Bill       float64 `json:"bill"`
	IsPaid     bool    `json:"is_paid"`
}

// RevenueReport holds the occupancy and revenue KPIs for a date range.
//
// TotalRevenue counts paid stays only, while OccupiedNights counts every
// stay overlapping the window regardless of payment status. The asymmetry
// is intentional and must not be "fixed": ADR and RevPAR are defined over
// these exact inputs.
type RevenueReport struct {
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	PeriodDays      int     `json:"period_days"`
	TotalRooms      int     `json:"total_rooms"`
	TotalRevenue    float64 `json:"total_revenue"`
	OccupiedNights  int     `json:"occupied_nights"`
	AvailableNights int     `json:"available_nights"`
	OccupancyRate   float64 `json:"occupancy_rate"`
	ADR             float64 `json:"adr"`
	RevPAR          float64 `json:"revpar"`
}
