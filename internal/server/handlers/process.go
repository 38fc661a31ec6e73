package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/AlexTLDR/guestlist/internal/database"
	"github.com/AlexTLDR/guestlist/internal/ingest"
)

type processRequest struct {
	Positions map[string]int `json:"positions"`
}

// HandleProcess runs the bulk ingestion pipeline for a draft guest list
// with the committed column positions, then returns the refreshed record
// and its guests.
func HandleProcess(s Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r.PathValue("id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "Guest list ID is required")
			return
		}

		var req processRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if len(req.Positions) == 0 {
			writeError(w, http.StatusBadRequest, "Column positions are required")
			return
		}

		positions := ingest.ParsePositions(req.Positions)

		gl, guests, err := s.GetPipeline().Run(r.Context(), id, positions)
		switch {
		case errors.Is(err, database.ErrNotFound):
			writeError(w, http.StatusNotFound, "Guest list not found")
			return
		case errors.Is(err, ingest.ErrNotDraft):
			writeError(w, http.StatusConflict, "Guest list has already been processed")
			return
		case errors.Is(err, ingest.ErrConcurrentRun):
			writeError(w, http.StatusConflict, "Guest list was processed by another request")
			return
		case err != nil:
			slog.Error("ingestion failed", "guest_list_id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to process guest list")
			return
		}

		s.GetSessions().Drop(id)

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success":    true,
			"guest_list": gl,
			"guests":     guestsJSON(guests),
		})
	}
}
