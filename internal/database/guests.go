package database

import (
	"context"
	"database/sql"
	"fmt"

	"hotelier/internal/models"
)

// SearchGuests finds guests by case-insensitive substring over first name,
// last name and email, and plain substring over phone.
func (db *DB) SearchGuests(ctx context.Context, query string) ([]models.GuestMatch, error) {
	term := "%" + query + "%"
	rows, err := db.QueryContext(ctx, `
		SELECT guest_id, first_name, last_name, contact_email, contact_phone, address, is_blacklisted
		FROM guests
		WHERE lower(first_name) LIKE lower(?)
		   OR lower(last_name) LIKE lower(?)
		   OR lower(contact_email) LIKE lower(?)
		   OR contact_phone LIKE ?
		ORDER BY guest_id`,
		term, term, term, term,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []models.GuestMatch
	for rows.Next() {
		var g models.Guest
		if err := rows.Scan(&g.ID, &g.FirstName, &g.LastName, &g.Email, &g.Phone, &g.Address, &g.IsBlacklisted); err != nil {
			return nil, err
		}
		matches = append(matches, models.GuestMatch{
			ID:          g.ID,
			Name:        g.FullName(),
			Email:       g.Email,
			Phone:       g.Phone,
			Address:     g.Address,
			Blacklisted: g.IsBlacklisted,
		})
	}
	return matches, rows.Err()
}

// GetGuestByID returns a guest record, or nil when absent.
func (db *DB) GetGuestByID(ctx context.Context, guestID int64) (*models.Guest, error) {
	var g models.Guest
	err := db.QueryRowContext(ctx, `
		SELECT guest_id, first_name, last_name, contact_email, contact_phone, address, is_blacklisted
		FROM guests WHERE guest_id = ?`,
		guestID,
	).Scan(&g.ID, &g.FirstName, &g.LastName, &g.Email, &g.Phone, &g.Address, &g.IsBlacklisted)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// guestColumns maps updatable profile keys to their columns. Unknown keys
// are ignored.
var guestColumns = map[string]string{
	"first_name":     "first_name",
	"last_name":      "last_name",
	"contact_email":  "contact_email",
	"contact_phone":  "contact_phone",
	"address":        "address",
	"is_blacklisted": "is_blacklisted",
}

// UpdateGuestProfile updates guest fields by key in one transaction.
func (db *DB) UpdateGuestProfile(ctx context.Context, guestID int64, fields map[string]any) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var exists int64
	err = tx.QueryRowContext(ctx,
		"SELECT guest_id FROM guests WHERE guest_id = ?", guestID,
	).Scan(&exists)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("find guest: %w", err)
	}

	for key, value := range fields {
		column, ok := guestColumns[key]
		if !ok {
			continue
		}
		if _, err := tx.ExecContext(ctx,
			fmt.Sprintf("UPDATE guests SET %s = ? WHERE guest_id = ?", column),
			value, guestID,
		); err != nil {
			return fmt.Errorf("update %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	db.logger.Info().Int64("guest", guestID).Msg("guest profile updated")
	return nil
}
