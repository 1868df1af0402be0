// Package database is the access layer over the hotel's SQLite store.
// Every mutating operation is a self-contained transaction: on any failure
// the partial change is rolled back and an error is returned to the caller.
package database

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"hotelier/internal/models"

	_ "github.com/mattn/go-sqlite3" // sqlite3 driver
	"github.com/rs/zerolog"
)

// DB represents the database connection.
type DB struct {
	*sql.DB
	logger *zerolog.Logger
}

var (
	ErrNotFound          = errors.New("not found")
	ErrPastDate          = errors.New("check-in date cannot be in the past")
	ErrInvalidRange      = errors.New("check-out date must be after the check-in date")
	ErrInvalidAmount     = errors.New("charge amount must be positive")
	ErrDuplicateUsername = errors.New("username already exists")
)

// NewDB opens the store at path, creating the schema and seeding demo rooms
// on first launch.
func NewDB(path string, logger *zerolog.Logger) (*DB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// WAL mode and a busy timeout; the single-operator workload never
	// contends, but interrupted writes stay recoverable.
	dsn := path + "?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	instance := &DB{
		DB:     db,
		logger: logger,
	}

	if err := instance.createTables(); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	if err := instance.seedDemoRooms(); err != nil {
		return nil, fmt.Errorf("failed to seed rooms: %w", err)
	}

	logger.Info().Str("path", path).Msg("Database initialized")
	return instance, nil
}

func (db *DB) createTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS users (
			user_id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'Clerk',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS rooms (
			room_number INTEGER PRIMARY KEY,
			room_type TEXT NOT NULL,
			description TEXT,
			capacity INTEGER NOT NULL DEFAULT 1,
			price_per_night REAL NOT NULL DEFAULT 0,
			status TEXT NOT NULL DEFAULT 'Available'
		)`,
		`CREATE TABLE IF NOT EXISTS guests (
			guest_id INTEGER PRIMARY KEY AUTOINCREMENT,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			contact_email TEXT UNIQUE NOT NULL,
			contact_phone TEXT,
			address TEXT,
			is_blacklisted BOOLEAN NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS reservations (
			booking_id INTEGER PRIMARY KEY AUTOINCREMENT,
			room_number_fk INTEGER NOT NULL,
			guest_id_fk INTEGER NOT NULL,
			check_in_date DATE NOT NULL,
			check_out_date DATE NOT NULL,
			total_bill REAL NOT NULL DEFAULT 0,
			is_paid BOOLEAN NOT NULL DEFAULT 0,
			confirmation_code TEXT,
			FOREIGN KEY (room_number_fk) REFERENCES rooms(room_number),
			FOREIGN KEY (guest_id_fk) REFERENCES guests(guest_id)
		)`,
		`CREATE TABLE IF NOT EXISTS charges (
			charge_id INTEGER PRIMARY KEY AUTOINCREMENT,
			reservation_id_fk INTEGER NOT NULL,
			room_number_fk INTEGER NOT NULL,
			description TEXT NOT NULL,
			amount REAL NOT NULL,
			charge_date DATE NOT NULL,
			FOREIGN KEY (reservation_id_fk) REFERENCES reservations(booking_id),
			FOREIGN KEY (room_number_fk) REFERENCES rooms(room_number)
		)`,

		`CREATE INDEX IF NOT EXISTS idx_guests_email ON guests(contact_email)`,
		`CREATE INDEX IF NOT EXISTS idx_rooms_status ON rooms(status)`,
		`CREATE INDEX IF NOT EXISTS idx_reservations_room ON reservations(room_number_fk)`,
		`CREATE INDEX IF NOT EXISTS idx_reservations_guest ON reservations(guest_id_fk)`,
		`CREATE INDEX IF NOT EXISTS idx_reservations_dates ON reservations(check_in_date, check_out_date)`,
		`CREATE INDEX IF NOT EXISTS idx_reservations_paid ON reservations(is_paid)`,
		`CREATE INDEX IF NOT EXISTS idx_charges_reservation ON charges(reservation_id_fk)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("error executing query %s: %w", query, err)
		}
	}
	return nil
}

// seedDemoRooms populates the fixed starter inventory when the rooms table
// is empty.
func (db *DB) seedDemoRooms() error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM rooms").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	rooms := []models.Room{
		{Number: 101, Type: "Single", Description: "Basic room with 1 double bed", Capacity: 2, PricePerNight: 100.0, Status: models.RoomAvailable},
		{Number: 102, Type: "Double", Description: "Standard room with 2 double beds", Capacity: 4, PricePerNight: 150.0, Status: models.RoomAvailable},
		{Number: 201, Type: "Suite", Description: "Luxury suite with separate living area", Capacity: 3, PricePerNight: 250.0, Status: models.RoomAvailable},
		{Number: 202, Type: "Double", Description: "Standard room with 2 double beds", Capacity: 4, PricePerNight: 150.0, Status: models.RoomAvailable},
		{Number: 301, Type: "Single", Description: "Basic room with 1 double bed", Capacity: 2, PricePerNight: 100.0, Status: models.RoomAvailable},
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, r := range rooms {
		if _, err := tx.Exec(`
			INSERT INTO rooms (room_number, room_type, description, capacity, price_per_night, status)
			VALUES (?, ?, ?, ?, ?, ?)`,
			r.Number, r.Type, r.Description, r.Capacity, r.PricePerNight, r.Status,
		); err != nil {
			return fmt.Errorf("insert room %d: %w", r.Number, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	db.logger.Info().Int("rooms", len(rooms)).Msg("Seeded demo rooms")
	return nil
}

func (db *DB) Close() error {
	return db.DB.Close()
}
