package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/AlexTLDR/guestlist/internal/database"
)

type createGuestListRequest struct {
	OriginalFilename string `json:"original_filename"`
	StorageKey       string `json:"storage_key"`
	Status           string `json:"status"`
	EventDate        string `json:"event_date"`
}

// HandleCreateGuestList creates a draft guest list for an uploaded CSV,
// generating its unique share token.
func HandleCreateGuestList(s Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createGuestListRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if req.OriginalFilename == "" {
			writeError(w, http.StatusBadRequest, "Original filename is required")
			return
		}
		if !strings.HasSuffix(strings.ToLower(req.OriginalFilename), ".csv") {
			writeError(w, http.StatusBadRequest, "Only CSV files are allowed")
			return
		}
		if req.StorageKey == "" {
			writeError(w, http.StatusBadRequest, "Storage key is required")
			return
		}
		if req.Status != "" && req.Status != database.StatusDraft {
			writeError(w, http.StatusBadRequest, "New guest lists must be created as draft")
			return
		}

		eventDate, err := time.Parse(time.RFC3339, req.EventDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid event date")
			return
		}

		gl, err := s.GetDB().CreateGuestList(req.OriginalFilename, req.StorageKey, database.StatusDraft, eventDate)
		if err != nil {
			slog.Error("failed to create guest list", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to create guest list")
			return
		}

		writeJSON(w, http.StatusCreated, gl)
	}
}

// HandleListGuestLists returns all guest lists, newest first.
func HandleListGuestLists(s Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lists, err := s.GetDB().ListGuestLists()
		if err != nil {
			slog.Error("failed to list guest lists", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to fetch guest lists")
			return
		}
		if lists == nil {
			lists = []*database.GuestList{}
		}
		writeJSON(w, http.StatusOK, lists)
	}
}

// HandleGetGuestList returns one guest list and its guests. While the
// list is draft the guest collection is always empty, whatever rows might
// technically exist.
func HandleGetGuestList(s Server) http.HandlerFunc {
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

		var guests []*database.Guest
		if gl.Status == database.StatusReady {
			guests, err = s.GetDB().GetGuestsByListID(id)
			if err != nil {
				slog.Error("failed to fetch guests", "guest_list_id", id, "error", err)
				writeError(w, http.StatusInternalServerError, "Failed to fetch guest list")
				return
			}
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"guest_list": gl,
			"guests":     guestsJSON(guests),
		})
	}
}

// HandleSharedGuestList serves the unauthenticated read-only view behind
// a share token.
func HandleSharedGuestList(s Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.PathValue("token")
		if token == "" {
			writeError(w, http.StatusBadRequest, "Share token is required")
			return
		}

		gl, err := s.GetDB().GetGuestListByShareToken(token)
		if errors.Is(err, database.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Guest list not found")
			return
		}
		if err != nil {
			slog.Error("failed to fetch shared guest list", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to fetch guest list")
			return
		}

		var guests []*database.Guest
		if gl.Status == database.StatusReady {
			guests, err = s.GetDB().GetGuestsByListID(gl.ID)
			if err != nil {
				slog.Error("failed to fetch shared guests", "guest_list_id", gl.ID, "error", err)
				writeError(w, http.StatusInternalServerError, "Failed to fetch guest list")
				return
			}
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"guest_list": gl,
			"guests":     guestsJSON(guests),
		})
	}
}

// HandleDeleteGuestList removes a draft guest list along with its stored
// CSV object. Ready lists are immutable in this surface.
func HandleDeleteGuestList(s Server) http.HandlerFunc {
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
			writeError(w, http.StatusInternalServerError, "Failed to delete guest list")
			return
		}

		if gl.Status != database.StatusDraft {
			writeError(w, http.StatusConflict, "Only draft guest lists can be deleted")
			return
		}

		if err := s.GetStore().DeleteObject(r.Context(), gl.StorageKey); err != nil {
			slog.Error("failed to delete stored object", "guest_list_id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to delete guest list")
			return
		}

		if err := s.GetDB().DeleteGuestList(id); err != nil {
			slog.Error("failed to delete guest list", "guest_list_id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to delete guest list")
			return
		}

		s.GetSessions().Drop(id)
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}
