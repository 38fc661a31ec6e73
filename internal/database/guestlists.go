package database

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when a guest list does not exist.
var ErrNotFound = errors.New("guest list not found")

// GenerateShareToken returns a random token for unauthenticated read-only
// access to a guest list.
func GenerateShareToken() (string, error) {
	b := make([]byte, 16)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate share token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// CreateGuestList creates a new draft guest list with a unique share token.
func (db *DB) CreateGuestList(originalFilename, storageKey, status string, eventDate time.Time) (*GuestList, error) {
	// Generate unique token with retry logic
	var token string
	var err error
	maxRetries := 5

	for i := 0; i < maxRetries; i++ {
		token, err = GenerateShareToken()
		if err != nil {
			return nil, err
		}

		// Check if token already exists
		var exists bool
		err = db.QueryRow("SELECT EXISTS(SELECT 1 FROM guest_lists WHERE share_token = $1)", token).Scan(&exists)
		if err != nil {
			return nil, fmt.Errorf("failed to check token uniqueness: %w", err)
		}

		if !exists {
			break
		}

		if i == maxRetries-1 {
			return nil, fmt.Errorf("failed to generate unique share token after %d retries", maxRetries)
		}
	}

	var id int64
	err = db.QueryRow(
		`INSERT INTO guest_lists (original_filename, storage_key, status, share_token, event_date)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		originalFilename, storageKey, status, token, eventDate,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to create guest list: %w", err)
	}

	return db.GetGuestListByID(id)
}

// GetGuestListByID retrieves a guest list by ID.
func (db *DB) GetGuestListByID(id int64) (*GuestList, error) {
	gl := &GuestList{}
	err := db.QueryRow(
		`SELECT id, original_filename, storage_key, status, share_token, event_date, created_at
		 FROM guest_lists WHERE id = $1`,
		id,
	).Scan(&gl.ID, &gl.OriginalFilename, &gl.StorageKey, &gl.Status, &gl.ShareToken,
		&gl.EventDate, &gl.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get guest list: %w", err)
	}

	return gl, nil
}

// GetGuestListByShareToken retrieves a guest list by its share token.
func (db *DB) GetGuestListByShareToken(token string) (*GuestList, error) {
	gl := &GuestList{}
	err := db.QueryRow(
		`SELECT id, original_filename, storage_key, status, share_token, event_date, created_at
		 FROM guest_lists WHERE share_token = $1`,
		token,
	).Scan(&gl.ID, &gl.OriginalFilename, &gl.StorageKey, &gl.Status, &gl.ShareToken,
		&gl.EventDate, &gl.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get guest list by token: %w", err)
	}

	return gl, nil
}

// ListGuestLists retrieves all guest lists, newest first.
func (db *DB) ListGuestLists() ([]*GuestList, error) {
	rows, err := db.Query(
		`SELECT id, original_filename, storage_key, status, share_token, event_date, created_at
		 FROM guest_lists ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list guest lists: %w", err)
	}
	defer rows.Close()

	var lists []*GuestList
	for rows.Next() {
		gl := &GuestList{}
		err := rows.Scan(&gl.ID, &gl.OriginalFilename, &gl.StorageKey, &gl.Status, &gl.ShareToken,
			&gl.EventDate, &gl.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan guest list: %w", err)
		}
		lists = append(lists, gl)
	}

	return lists, rows.Err()
}

// MarkGuestListReady flips a guest list from draft to ready. The update is
// conditional on the current status so that two racing ingestion runs
// cannot both claim the transition; the returned bool reports whether this
// caller won it.
func (db *DB) MarkGuestListReady(id int64) (bool, error) {
	result, err := db.Exec(
		`UPDATE guest_lists SET status = $1 WHERE id = $2 AND status = $3`,
		StatusReady, id, StatusDraft,
	)
	if err != nil {
		return false, fmt.Errorf("failed to mark guest list ready: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}

	return affected == 1, nil
}

// DeleteGuestList deletes a guest list and any guests that belong to it.
func (db *DB) DeleteGuestList(id int64) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`DELETE FROM guests WHERE guest_list_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete guests: %w", err)
	}

	_, err = tx.Exec(`DELETE FROM guest_lists WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete guest list: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
