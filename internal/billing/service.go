// Package billing implements the check-in, charge and check-out rules.
package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotelier/internal/database"
	"hotelier/internal/metrics"
	"hotelier/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrInvalidDateFormat is returned for dates not in YYYY-MM-DD form.
var ErrInvalidDateFormat = errors.New("invalid date format, use YYYY-MM-DD")

// Repository is the access-layer surface the billing engine needs.
type Repository interface {
	CheckInGuest(ctx context.Context, guest database.GuestInfo, roomNumber int64, checkIn, checkOut time.Time, confirmationCode string) (int64, error)
	CheckOutGuest(ctx context.Context, reservationID, roomNumber int64, ratePerNight float64) (*models.Reservation, int, error)
	AddExtraCharge(ctx context.Context, reservationID, roomNumber int64, description string, amount float64) (int64, error)
}

// Service validates billing operations and delegates the transactional work
// to the repository.
type Service struct {
	repo   Repository
	logger zerolog.Logger
}

// NewService creates a billing service.
func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.With().Str("component", "billing").Logger(),
	}
}

// CheckInResult reports a successful check-in.
type CheckInResult struct {
	BookingID        int64  `json:"booking_id"`
	ConfirmationCode string `json:"confirmation_code"`
	RoomStatus       string `json:"room_status"`
}

// CheckIn books a room for a guest. Dates arrive as YYYY-MM-DD strings; the
// check-in date must not be in the past (same-day allowed) and the check-out
// date must be strictly after it. The guest is reused by email when known.
func (s *Service) CheckIn(
	ctx context.Context,
	guest database.GuestInfo,
	roomNumber int64,
	checkInStr, checkOutStr string,
) (*CheckInResult, error) {
	checkIn, err := models.ParseDate(checkInStr)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	checkOut, err := models.ParseDate(checkOutStr)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	today := models.Today()
	if models.DateOnly(checkIn).Before(today) {
		return nil, database.ErrPastDate
	}
	if !models.DateOnly(checkOut).After(models.DateOnly(checkIn)) {
		return nil, database.ErrInvalidRange
	}

	code := uuid.NewString()
	bookingID, err := s.repo.CheckInGuest(ctx, guest, roomNumber, checkIn, checkOut, code)
	if err != nil {
		metrics.IncCheckIn("error")
		return nil, fmt.Errorf("check-in: %w", err)
	}

	status := models.RoomBooked
	if models.DateOnly(checkIn).Equal(today) {
		status = models.RoomOccupied
	}
	metrics.IncCheckIn(status)

	s.logger.Info().
		Int64("booking_id", bookingID).
		Int64("room", roomNumber).
		Str("check_in", checkInStr).
		Str("check_out", checkOutStr).
		Msg("guest checked in")

	return &CheckInResult{
		BookingID:        bookingID,
		ConfirmationCode: code,
		RoomStatus:       status,
	}, nil
}

// AddCharge appends an incidental charge to an active reservation. The
// amount must be positive; description emptiness is a boundary concern and
// is not re-checked here.
func (s *Service) AddCharge(
	ctx context.Context,
	reservationID, roomNumber int64,
	description string,
	amount float64,
) (int64, error) {
	chargeID, err := s.repo.AddExtraCharge(ctx, reservationID, roomNumber, description, amount)
	if err != nil {
		return 0, fmt.Errorf("add charge: %w", err)
	}

	metrics.IncChargeAdded()
	return chargeID, nil
}

// Receipt reports a finalized stay.
type Receipt struct {
	BookingID    int64   `json:"booking_id"`
	Nights       int     `json:"nights"`
	RoomCharge   float64 `json:"room_charge"`
	ExtraCharges float64 `json:"extra_charges"`
	TotalBill    float64 `json:"total_bill"`
}

// CheckOut finalizes a reservation: the billed nights run from the check-in
// date through today inclusive, so a same-day departure still pays one
// night, and an early or late departure pays for the actual stay.
func (s *Service) CheckOut(
	ctx context.Context,
	reservationID, roomNumber int64,
	ratePerNight float64,
) (*Receipt, error) {
	res, nights, err := s.repo.CheckOutGuest(ctx, reservationID, roomNumber, ratePerNight)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("check-out: %w", err)
	}

	roomCharge := float64(nights) * ratePerNight
	receipt := &Receipt{
		BookingID:    res.BookingID,
		Nights:       nights,
		RoomCharge:   roomCharge,
		ExtraCharges: res.TotalBill - roomCharge,
		TotalBill:    res.TotalBill,
	}

	metrics.IncCheckOut()
	s.logger.Info().
		Int64("booking_id", reservationID).
		Int("nights", nights).
		Float64("total_bill", res.TotalBill).
		Msg("guest checked out")

	return receipt, nil
}
