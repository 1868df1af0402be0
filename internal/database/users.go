package database

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"

	"hotelier/internal/models"
)

// HashPassword returns the hex-encoded SHA-256 digest of a password.
// The digest is unsalted to stay compatible with the stored credential
// format; see DESIGN.md for the known weakness.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// CountUsers returns the number of user accounts.
func (db *DB) CountUsers(ctx context.Context) (int, error) {
	var count int
	err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count)
	return count, err
}

// AddInitialUser creates a new user account, rejecting duplicate usernames.
func (db *DB) AddInitialUser(ctx context.Context, username, password, role string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var existing int64
	err = tx.QueryRowContext(ctx,
		"SELECT user_id FROM users WHERE username = ?", username,
	).Scan(&existing)
	if err == nil {
		return ErrDuplicateUsername
	}
	if err != sql.ErrNoRows {
		return fmt.Errorf("check existing: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO users (username, password_hash, role) VALUES (?, ?, ?)",
		username, HashPassword(password), role,
	); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	db.logger.Info().Str("username", username).Str("role", role).Msg("user created")
	return nil
}

// GetUserByUsername returns a user account, or nil when absent.
func (db *DB) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := db.QueryRowContext(ctx,
		"SELECT user_id, username, password_hash, role FROM users WHERE username = ?",
		username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CheckCredentials authenticates a user by comparing the hashed password.
// On success it returns the stored role.
func (db *DB) CheckCredentials(ctx context.Context, username, password string) (bool, string, error) {
	user, err := db.GetUserByUsername(ctx, username)
	if err != nil {
		return false, "", err
	}
	if user == nil || user.PasswordHash != HashPassword(password) {
		return false, "", nil
	}
	return true, user.Role, nil
}
