// Package handlers implements the HTTP surface of the guest-list service.
// Handlers are constructed over a Server interface so tests can supply
// fakes for the database, object store and pipeline.
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/AlexTLDR/guestlist/internal/config"
	"github.com/AlexTLDR/guestlist/internal/csvmap"
	"github.com/AlexTLDR/guestlist/internal/database"
	"github.com/AlexTLDR/guestlist/internal/storage"
)

// Database is the slice of the database layer the handlers need.
type Database interface {
	CreateGuestList(originalFilename, storageKey, status string, eventDate time.Time) (*database.GuestList, error)
	GetGuestListByID(id int64) (*database.GuestList, error)
	GetGuestListByShareToken(token string) (*database.GuestList, error)
	ListGuestLists() ([]*database.GuestList, error)
	GetGuestsByListID(guestListID int64) ([]*database.Guest, error)
	DeleteGuestList(id int64) error
}

// Ingestor runs the bulk ingestion pipeline for one guest list.
type Ingestor interface {
	Run(ctx context.Context, guestListID int64, positions csvmap.Positions) (*database.GuestList, []*database.Guest, error)
}

// PreviewFetcher retrieves a bounded byte prefix of a stored CSV.
type PreviewFetcher interface {
	FetchPrefix(ctx context.Context, key string, n int) ([]byte, bool, error)
}

// Server interface defines the methods needed by handlers.
type Server interface {
	GetDB() Database
	GetConfig() *config.Config
	GetStore() storage.ObjectStore
	GetSessions() *csvmap.Sessions
	GetFetcher() PreviewFetcher
	GetPipeline() Ingestor
}

// parseID parses a guest list ID from a path segment.
func parseID(idStr string) (int64, error) {
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid ID format: %w", err)
	}
	if id <= 0 {
		return 0, fmt.Errorf("invalid ID: must be positive")
	}
	return id, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError returns a structured error body. Messages are intentionally
// generic; internals (storage keys, SQL errors) belong in logs only.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func decodeJSON(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// guestsJSON never serializes as null; an empty collection is [].
func guestsJSON(guests []*database.Guest) []*database.Guest {
	if guests == nil {
		return []*database.Guest{}
	}
	return guests
}
