// Package ingest implements the bulk ingestion pipeline: given a draft
// guest list and a committed position map, it re-fetches the uploaded CSV
// from object storage, transforms the rows, inserts them in sequential
// chunks and flips the list to ready.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/AlexTLDR/guestlist/internal/csvmap"
	"github.com/AlexTLDR/guestlist/internal/database"
)

// DefaultChunkSize bounds the number of rows per INSERT. Chunking exists
// to bound payload size and memory, not for transactional isolation.
const DefaultChunkSize = 1000

// ErrNotDraft is returned when the guest list has already been processed.
var ErrNotDraft = errors.New("guest list is not in draft status")

// ErrConcurrentRun is returned when another run claimed the draft→ready
// transition between this run's inserts and its final status flip.
var ErrConcurrentRun = errors.New("guest list was processed concurrently")

// GuestStore is the slice of the database the pipeline needs.
type GuestStore interface {
	GetGuestListByID(id int64) (*database.GuestList, error)
	InsertGuests(guests []database.Guest) error
	MarkGuestListReady(id int64) (bool, error)
	GetGuestsByListID(guestListID int64) ([]*database.Guest, error)
}

// Pipeline runs one ingestion per call. Runs for distinct guest lists may
// execute concurrently; they touch disjoint rows and need no
// coordination. A run lives exactly as long as the triggering request.
type Pipeline struct {
	db        GuestStore
	fetcher   *Fetcher
	chunkSize int
}

func NewPipeline(db GuestStore, fetcher *Fetcher, chunkSize int) *Pipeline {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Pipeline{db: db, fetcher: fetcher, chunkSize: chunkSize}
}

// Run ingests the CSV behind a draft guest list using the given position
// map, then marks the list ready. On any fetch or insert failure the run
// aborts with the list still in draft; chunks inserted before the failure
// are not rolled back.
func (p *Pipeline) Run(ctx context.Context, guestListID int64, positions csvmap.Positions) (*database.GuestList, []*database.Guest, error) {
	gl, err := p.db.GetGuestListByID(guestListID)
	if err != nil {
		return nil, nil, err
	}
	if gl.Status != database.StatusDraft {
		return nil, nil, ErrNotDraft
	}

	csvText, err := p.fetcher.FetchFull(ctx, gl.StorageKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch CSV for guest list %d: %w", guestListID, err)
	}

	guests := BuildGuests(csvText, guestListID, positions)
	slog.Info("ingestion started",
		"guest_list_id", guestListID,
		"valid_rows", len(guests),
		"chunk_size", p.chunkSize,
	)

	totalChunks := (len(guests) + p.chunkSize - 1) / p.chunkSize
	for i := 0; i < len(guests); i += p.chunkSize {
		end := i + p.chunkSize
		if end > len(guests) {
			end = len(guests)
		}
		chunk := guests[i:end]
		chunkIndex := i/p.chunkSize + 1

		if err := p.db.InsertGuests(chunk); err != nil {
			slog.Error("chunk insert failed",
				"guest_list_id", guestListID,
				"chunk", chunkIndex,
				"total_chunks", totalChunks,
				"chunk_rows", len(chunk),
				"error", err,
			)
			return nil, nil, fmt.Errorf("failed to insert chunk %d/%d: %w", chunkIndex, totalChunks, err)
		}
		slog.Debug("chunk inserted",
			"guest_list_id", guestListID,
			"chunk", chunkIndex,
			"total_chunks", totalChunks,
			"chunk_rows", len(chunk),
		)
	}

	// The flip is conditional on the list still being draft, so readers
	// never observe ready until every chunk above is durable and a racing
	// double-confirm surfaces as an error instead of a silent success.
	won, err := p.db.MarkGuestListReady(guestListID)
	if err != nil {
		return nil, nil, err
	}
	if !won {
		return nil, nil, ErrConcurrentRun
	}

	slog.Info("ingestion completed",
		"guest_list_id", guestListID,
		"rows", len(guests),
		"chunks", totalChunks,
	)

	updated, err := p.db.GetGuestListByID(guestListID)
	if err != nil {
		return nil, nil, err
	}
	inserted, err := p.db.GetGuestsByListID(guestListID)
	if err != nil {
		return nil, nil, err
	}
	return updated, inserted, nil
}
