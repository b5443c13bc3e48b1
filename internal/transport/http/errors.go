package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ovalles/cinehall/internal/domain"
)

const (
	codeMethodNotAllowed    = "method_not_allowed"
	codeNotFound            = "not_found"
	codeInvalidRequestBody  = "invalid_request_body"
	codeInvalidSort         = "invalid_sort"
	codeMissingFilename     = "missing_filename"
	codeSessionNotFound     = "session_not_found"
	codeTicketNotFound      = "ticket_not_found"
	codeVenueNotInitialized = "venue_not_initialized"
	codeSessionExpired      = "session_expired"
	codeInsufficientSeats   = "insufficient_seats"
	codeInvalidQuantity     = "invalid_quantity"
	codeInvalidSeatCount    = "invalid_seat_count"
	codeInvalidPrice        = "invalid_price"
	codeMissingStartTime    = "missing_start_time"
	codeSeatsBelowSold      = "seats_below_sold"
	codeRescheduleEarlier   = "reschedule_earlier"
	codeSessionNotInVenue   = "session_not_in_venue"
	codeSnapshotFailed      = "snapshot_failed"
	codeInternalError       = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

// writeDomainError maps the inventory error taxonomy onto HTTP statuses:
// caller faults are 400, business-rule conflicts 409, a missing venue 503.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrVenueNotInitialized):
		writeError(w, http.StatusServiceUnavailable, codeVenueNotInitialized, err.Error())
	case errors.Is(err, domain.ErrSessionExpired):
		writeError(w, http.StatusConflict, codeSessionExpired, err.Error())
	case errors.Is(err, domain.ErrInsufficientSeats):
		writeError(w, http.StatusConflict, codeInsufficientSeats, err.Error())
	case errors.Is(err, domain.ErrInvalidQuantity):
		writeError(w, http.StatusBadRequest, codeInvalidQuantity, err.Error())
	case errors.Is(err, domain.ErrInvalidSeatCount):
		writeError(w, http.StatusBadRequest, codeInvalidSeatCount, err.Error())
	case errors.Is(err, domain.ErrInvalidPrice), errors.Is(err, domain.ErrNegativePrice):
		writeError(w, http.StatusBadRequest, codeInvalidPrice, err.Error())
	case errors.Is(err, domain.ErrMissingStartTime):
		writeError(w, http.StatusBadRequest, codeMissingStartTime, err.Error())
	case errors.Is(err, domain.ErrSeatsBelowSold):
		writeError(w, http.StatusBadRequest, codeSeatsBelowSold, err.Error())
	case errors.Is(err, domain.ErrRescheduleEarlier):
		writeError(w, http.StatusBadRequest, codeRescheduleEarlier, err.Error())
	case errors.Is(err, domain.ErrSessionNotInVenue), errors.Is(err, domain.ErrSessionRequired):
		writeError(w, http.StatusBadRequest, codeSessionNotInVenue, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}
