package handlers

import (
	"log/slog"
	"net/http"
	"strings"
)

type presignRequest struct {
	// Filename is the original filename for uploads, or the storage key
	// for read presigns.
	Filename  string `json:"filename"`
	Operation string `json:"operation"`
}

// HandlePresign issues a time-limited signed URL. The default operation
// presigns a PUT for a new CSV upload; operation "read" presigns a GET
// for an existing storage key.
func HandlePresign(s Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req presignRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if req.Filename == "" {
			writeError(w, http.StatusBadRequest, "Filename is required")
			return
		}

		if req.Operation == "read" {
			signed, err := s.GetStore().IssueReadURL(r.Context(), req.Filename)
			if err != nil {
				slog.Error("failed to presign read", "error", err)
				writeError(w, http.StatusInternalServerError, "Failed to generate download URL")
				return
			}
			writeJSON(w, http.StatusOK, signed)
			return
		}

		if !strings.HasSuffix(strings.ToLower(req.Filename), ".csv") {
			writeError(w, http.StatusBadRequest, "Only CSV files are allowed")
			return
		}

		signed, err := s.GetStore().IssueUploadURL(r.Context(), req.Filename)
		if err != nil {
			slog.Error("failed to presign upload", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to generate upload URL")
			return
		}

		writeJSON(w, http.StatusOK, signed)
	}
}
