package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ovalles/cinehall/internal/domain"
	"github.com/ovalles/cinehall/internal/snapshot"
)

// Snapshotter is the minimal interface needed by the admin snapshot
// endpoints.
type Snapshotter interface {
	ExportSnapshot(filename string, opt snapshot.SortOption) error
	ImportSnapshot(filename string) error
}

// HandleSnapshotExport returns an HTTP handler that writes the venue to a
// snapshot file, optionally pre-sorted.
func HandleSnapshotExport(svc Snapshotter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req snapshotRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if req.Filename == "" {
			writeError(w, http.StatusBadRequest, codeMissingFilename, "filename is required")
			return
		}
		opt, ok := snapshot.ParseSortOption(req.Sort)
		if !ok {
			writeError(w, http.StatusBadRequest, codeInvalidSort, "sort must be one of none, title, start, seats")
			return
		}

		if err := svc.ExportSnapshot(req.Filename, opt); err != nil {
			if errors.Is(err, domain.ErrVenueNotInitialized) {
				writeDomainError(w, err)
				return
			}
			writeError(w, http.StatusInternalServerError, codeSnapshotFailed, err.Error())
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(snapshotResponse{Filename: req.Filename})
	}
}

// HandleSnapshotImport returns an HTTP handler that replaces the venue with
// the contents of a snapshot file.
func HandleSnapshotImport(svc Snapshotter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req snapshotRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if req.Filename == "" {
			writeError(w, http.StatusBadRequest, codeMissingFilename, "filename is required")
			return
		}

		if err := svc.ImportSnapshot(req.Filename); err != nil {
			writeError(w, http.StatusBadRequest, codeSnapshotFailed, err.Error())
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(snapshotResponse{Filename: req.Filename})
	}
}

type snapshotRequest struct {
	Filename string `json:"filename"`
	Sort     string `json:"sort"`
}

type snapshotResponse struct {
	Filename string `json:"filename"`
}
