package reporting

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"hotelier/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// ReportCache keeps serialized revenue reports in Redis for a short TTL so
// an operator flipping between screens does not recompute the same window.
// Cache failures are logged and treated as misses.
type ReportCache struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewReportCache wraps a Redis client. A nil client disables caching.
func NewReportCache(client *redis.Client, ttl time.Duration, logger zerolog.Logger) *ReportCache {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ReportCache{
		client: client,
		ttl:    ttl,
		logger: logger.With().Str("component", "report_cache").Logger(),
	}
}

func cacheKey(start, end time.Time) string {
	return fmt.Sprintf("hotelier:report:%s:%s",
		start.Format(models.DateLayout), end.Format(models.DateLayout))
}

// Get returns a cached report for the window, if present.
func (c *ReportCache) Get(ctx context.Context, start, end time.Time) (*models.RevenueReport, bool) {
	data, err := c.client.Get(ctx, cacheKey(start, end)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.logger.Warn().Err(err).Msg("cache read failed")
		return nil, false
	}

	var report models.RevenueReport
	if err := json.Unmarshal(data, &report); err != nil {
		c.logger.Warn().Err(err).Msg("cache entry corrupt")
		return nil, false
	}
	return &report, true
}

// Set stores a report for the configured TTL.
func (c *ReportCache) Set(ctx context.Context, report *models.RevenueReport) {
	data, err := json.Marshal(report)
	if err != nil {
		return
	}

	start, _ := models.ParseDate(report.StartDate)
	end, _ := models.ParseDate(report.EndDate)
	if err := c.client.Set(ctx, cacheKey(start, end), data, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Msg("cache write failed")
	}
}
