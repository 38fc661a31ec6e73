package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/AlexTLDR/guestlist/internal/csvmap"
	"github.com/AlexTLDR/guestlist/internal/database"
)

// HandlePreview fetches the first bytes of a draft guest list's CSV,
// parses the bounded sample and opens a fresh mapping session over its
// columns.
func HandlePreview(s Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r.PathValue("id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "Guest list ID is required")
			return
		}

		gl, err := s.GetDB().GetGuestListByID(id)
		if errors.Is(err, database.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Guest list not found")
			return
		}
		if err != nil {
			slog.Error("failed to fetch guest list", "guest_list_id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to fetch guest list")
			return
		}

		if gl.Status != database.StatusDraft {
			writeError(w, http.StatusConflict, "Guest list has already been processed")
			return
		}

		previewBytes := s.GetConfig().PreviewBytes
		data, truncated, err := s.GetFetcher().FetchPrefix(r.Context(), gl.StorageKey, previewBytes)
		if err != nil {
			slog.Error("failed to fetch CSV preview", "guest_list_id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to fetch CSV preview")
			return
		}

		preview := csvmap.ParsePreview(data, truncated)
		mapping := s.GetSessions().Start(id, len(preview.Columns))

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"preview": preview,
			"mapping": mappingState(mapping),
		})
	}
}

type assignRequest struct {
	Column int    `json:"column"`
	Field  string `json:"field"`
}

// HandleAssignColumn binds a CSV column to a semantic field in the
// guest list's mapping session.
func HandleAssignColumn(s Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r.PathValue("id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "Guest list ID is required")
			return
		}

		mapping, ok := s.GetSessions().Get(id)
		if !ok {
			writeError(w, http.StatusNotFound, "No mapping session; load the preview first")
			return
		}

		var req assignRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		field, ok := csvmap.ParseField(req.Field)
		if !ok {
			writeError(w, http.StatusBadRequest, "Unknown field")
			return
		}

		if err := mapping.Assign(req.Column, field); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid column index")
			return
		}

		writeJSON(w, http.StatusOK, mappingState(mapping))
	}
}

// HandleGetMapping returns the current mapping session state.
func HandleGetMapping(s Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r.PathValue("id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "Guest list ID is required")
			return
		}

		mapping, ok := s.GetSessions().Get(id)
		if !ok {
			writeError(w, http.StatusNotFound, "No mapping session; load the preview first")
			return
		}

		writeJSON(w, http.StatusOK, mappingState(mapping))
	}
}

// mappingState renders a mapping session for the wire: committed
// positions keyed by field name, the presentation column order and
// whether the required fields are assigned.
func mappingState(m *csvmap.Mapping) map[string]interface{} {
	positions := make(map[string]int)
	for field, column := range m.Commit() {
		positions[field.String()] = column
	}
	return map[string]interface{}{
		"positions":    positions,
		"column_order": m.ColumnOrder(),
		"complete":     m.IsComplete(),
	}
}
