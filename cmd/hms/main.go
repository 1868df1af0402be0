// Command hms runs the hotel management core: it opens the store, performs
// first-run setup, and serves health and metrics endpoints while the desktop
// front end works against the same database. With -export-report or
// -export-audit it writes an Excel workbook and exits.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hotelier/internal/config"
	"hotelier/internal/database"
	"hotelier/internal/metrics"
	"hotelier/internal/models"
	"hotelier/internal/reporting"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	exportReport := flag.String("export-report", "", "write a revenue report workbook to this path and exit")
	exportAudit := flag.String("export-audit", "", "write an audit dump of all tables to this path and exit")
	startStr := flag.String("start", "", "report start date (YYYY-MM-DD, defaults to first of this month)")
	endStr := flag.String("end", "", "report end date (YYYY-MM-DD, defaults to today)")
	flag.Parse()

	_ = godotenv.Load()

	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	logger := zerolog.New(output).With().Timestamp().Logger()

	cfg, err := config.Load(os.Getenv("HMS_CONFIG_PATH"))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := database.NewDB(cfg.Database.Path, &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("open db error")
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// First-run setup: create the default admin when no users exist.
	count, err := db.CountUsers(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("count users error")
	}
	if count == 0 {
		if err := db.AddInitialUser(ctx, cfg.Bootstrap.AdminUsername, cfg.Bootstrap.AdminPassword, models.RoleAdmin); err != nil {
			logger.Fatal().Err(err).Msg("failed to create initial admin user")
		}
		logger.Info().Str("username", cfg.Bootstrap.AdminUsername).Msg("default admin user created")
	}

	if *exportAudit != "" {
		if err := runAuditExport(ctx, db, *exportAudit); err != nil {
			logger.Fatal().Err(err).Msg("audit export failed")
		}
		logger.Info().Str("path", *exportAudit).Msg("audit export written")
		return
	}

	var rdb *redis.Client
	var cache *reporting.ReportCache
	if cfg.Redis.Address != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		cache = reporting.NewReportCache(rdb, cfg.ReportCacheTTL(), logger)
	}

	if *exportReport != "" {
		svc := reporting.NewService(db, cache, logger)
		if err := runReportExport(ctx, svc, *startStr, *endStr, *exportReport); err != nil {
			logger.Fatal().Err(err).Msg("report export failed")
		}
		logger.Info().Str("path", *exportReport).Msg("revenue report written")
		return
	}

	if cfg.Monitoring.HealthCheckPort == 0 {
		cfg.Monitoring.HealthCheckPort = 8090
	}
	go startHealthServer(ctx, cfg.Monitoring.HealthCheckPort, db, rdb, &logger)

	if cfg.Monitoring.PrometheusEnabled {
		if cfg.Monitoring.PrometheusPort == 0 {
			cfg.Monitoring.PrometheusPort = 9090
		}
		metrics.Register()
		go startMetricsServer(ctx, cfg.Monitoring.PrometheusPort, &logger)
	}

	backup := database.NewBackupService(cfg.Database.Path, database.BackupConfig{
		Enabled:       cfg.Backup.Enabled,
		IntervalHours: cfg.Backup.IntervalHours,
		Path:          cfg.Backup.Path,
		RetentionDays: cfg.Backup.RetentionDays,
	}, &logger)
	go backup.Start(ctx)

	logger.Info().Msg("hotelier core started")
	<-ctx.Done()
	logger.Info().Msg("shutting down")
}

func runAuditExport(ctx context.Context, db *database.DB, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return reporting.ExportTables(ctx, db, f)
}

func runReportExport(ctx context.Context, svc *reporting.Service, startStr, endStr, path string) error {
	today := models.Today()
	start := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := today

	var err error
	if startStr != "" {
		if start, err = models.ParseDate(startStr); err != nil {
			return fmt.Errorf("invalid start date: %w", err)
		}
	}
	if endStr != "" {
		if end, err = models.ParseDate(endStr); err != nil {
			return fmt.Errorf("invalid end date: %w", err)
		}
	}

	report, err := svc.RevenueReport(ctx, start, end)
	if err != nil {
		return err
	}

	history, err := svc.ReservationHistory(ctx, database.HistoryFilter{
		StatusFilter: models.FilterAll,
		Start:        &start,
		End:          &end,
	})
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return reporting.ExportRevenueReport(report, history, f)
}

func startHealthServer(ctx context.Context, port int, db *database.DB, rdb *redis.Client, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, _ *http.Request) {
		ctxPing, cancel := context.WithTimeout(ctx, time.Second)
		defer cancel()
		if err := db.PingContext(ctxPing); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		if rdb != nil {
			if err := rdb.Ping(ctxPing).Err(); err != nil {
				http.Error(w, "redis not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("health server error")
	}
}

func startMetricsServer(ctx context.Context, port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("metrics server error")
	}
}
