// Package reporting computes occupancy and revenue KPIs and serves
// reservation history.
package reporting

import (
	"context"
	"errors"
	"time"

	"hotelier/internal/database"
	"hotelier/internal/metrics"
	"hotelier/internal/models"

	"github.com/rs/zerolog"
)

// ErrInvalidPeriod is returned when the report window is empty or reversed.
var ErrInvalidPeriod = errors.New("end date must be after or equal to the start date")

// Repository is the access-layer surface the reporting engine needs.
type Repository interface {
	SumPaidRevenue(ctx context.Context, start, end time.Time) (float64, error)
	GetOverlappingReservations(ctx context.Context, start, end time.Time) ([]models.Reservation, error)
	CountRooms(ctx context.Context) (int, error)
	GetReservationHistory(ctx context.Context, filter database.HistoryFilter) ([]models.HistoryRow, error)
}

// Service computes reports, optionally caching them.
type Service struct {
	repo   Repository
	cache  *ReportCache // nil when caching is disabled
	logger zerolog.Logger
}

// NewService creates a reporting service. cache may be nil.
func NewService(repo Repository, cache *ReportCache, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		logger: logger.With().Str("component", "reporting").Logger(),
	}
}

// RevenueReport computes the KPIs for [start, end], both dates inclusive.
//
// Revenue sums the bills of PAID reservations overlapping the window, while
// occupied nights count EVERY overlapping reservation clipped to the window.
// The mismatch is inherited behavior and kept as-is.
func (s *Service) RevenueReport(ctx context.Context, start, end time.Time) (*models.RevenueReport, error) {
	periodDays := models.DaysBetween(start, end) + 1
	if periodDays <= 0 {
		return nil, ErrInvalidPeriod
	}

	if s.cache != nil {
		if report, ok := s.cache.Get(ctx, start, end); ok {
			metrics.IncReportGenerated("cache")
			return report, nil
		}
	}

	totalRevenue, err := s.repo.SumPaidRevenue(ctx, start, end)
	if err != nil {
		return nil, err
	}

	totalRooms, err := s.repo.CountRooms(ctx)
	if err != nil {
		return nil, err
	}
	availableNights := totalRooms * periodDays

	reservations, err := s.repo.GetOverlappingReservations(ctx, start, end)
	if err != nil {
		return nil, err
	}

	occupiedNights := 0
	for _, res := range reservations {
		occupiedNights += res.ClippedNights(start, end)
	}

	var occupancyRate, adr, revpar float64
	if availableNights > 0 {
		occupancyRate = float64(occupiedNights) / float64(availableNights) * 100
		revpar = totalRevenue / float64(availableNights)
	}
	if occupiedNights > 0 {
		adr = totalRevenue / float64(occupiedNights)
	}

	report := &models.RevenueReport{
		StartDate:       start.Format(models.DateLayout),
		EndDate:         end.Format(models.DateLayout),
		PeriodDays:      periodDays,
		TotalRooms:      totalRooms,
		TotalRevenue:    totalRevenue,
		OccupiedNights:  occupiedNights,
		AvailableNights: availableNights,
		OccupancyRate:   occupancyRate,
		ADR:             adr,
		RevPAR:          revpar,
	}

	if s.cache != nil {
		s.cache.Set(ctx, report)
	}

	metrics.IncReportGenerated("store")
	s.logger.Debug().
		Str("start", report.StartDate).
		Str("end", report.EndDate).
		Int("occupied_nights", occupiedNights).
		Float64("total_revenue", totalRevenue).
		Msg("revenue report computed")

	return report, nil
}

// ReservationHistory returns filtered reservation rows, newest first.
// A query matching nothing yields an empty result, not an error.
func (s *Service) ReservationHistory(ctx context.Context, filter database.HistoryFilter) ([]models.HistoryRow, error) {
	return s.repo.GetReservationHistory(ctx, filter)
}
