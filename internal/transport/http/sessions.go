package http

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/ovalles/cinehall/internal/app"
	"github.com/ovalles/cinehall/internal/domain"
)

// SessionCatalog is the minimal interface needed by the session collection
// endpoints.
type SessionCatalog interface {
	ListSessions() ([]*domain.Session, error)
	ListValidSessions() ([]*domain.Session, error)
	CreateSession(in app.CreateSessionInput) (*domain.Session, error)
}

// SessionManager is the minimal interface needed by the single-session
// endpoints.
type SessionManager interface {
	FindSessionByID(id string) (*domain.Session, error)
	UpdateSession(id string, in app.UpdateSessionInput) (bool, error)
	RemoveSession(sess *domain.Session) (bool, error)
	BuyTickets(sess *domain.Session, count int) ([]domain.Ticket, error)
}

// HandleSessions returns an HTTP handler for listing and creating sessions.
func HandleSessions(svc SessionCatalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			listSessions(w, r, svc)
		case http.MethodPost:
			createSession(w, r, svc)
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

func listSessions(w http.ResponseWriter, r *http.Request, svc SessionCatalog) {
	var (
		sessions []*domain.Session
		err      error
	)
	if r.URL.Query().Get("valid") == "true" {
		sessions, err = svc.ListValidSessions()
	} else {
		sessions, err = svc.ListSessions()
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}

	switch r.URL.Query().Get("sort") {
	case "":
	case "title":
		sort.SliceStable(sessions, func(i, j int) bool { return domain.LessByTitle(sessions[i], sessions[j]) })
	case "start":
		sort.SliceStable(sessions, func(i, j int) bool { return domain.LessByStart(sessions[i], sessions[j]) })
	case "seats":
		sort.SliceStable(sessions, func(i, j int) bool { return domain.LessBySeatsDesc(sessions[i], sessions[j]) })
	default:
		writeError(w, http.StatusBadRequest, codeInvalidSort, "sort must be one of title, start, seats")
		return
	}

	resp := make([]sessionResponse, 0, len(sessions))
	for _, s := range sessions {
		resp = append(resp, newSessionResponse(s))
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(resp)
}

func createSession(w http.ResponseWriter, r *http.Request, svc SessionCatalog) {
	var req createSessionRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
		return
	}

	sess, err := svc.CreateSession(app.CreateSessionInput{
		Title:       req.Title,
		StartsAt:    req.StartsAt,
		TotalSeats:  req.TotalSeats,
		TicketPrice: req.TicketPrice,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(newSessionResponse(sess))
}

// HandleSessionByID returns an HTTP handler for /sessions/{id} and
// /sessions/{id}/tickets.
func HandleSessionByID(svc SessionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, sub, ok := parseSessionPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		if sub == "tickets" {
			if r.Method != http.MethodPost {
				writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
				return
			}
			buyTickets(w, r, svc, id)
			return
		}

		switch r.Method {
		case http.MethodGet:
			getSession(w, svc, id)
		case http.MethodPatch:
			updateSession(w, r, svc, id)
		case http.MethodDelete:
			deleteSession(w, svc, id)
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

func getSession(w http.ResponseWriter, svc SessionManager, id string) {
	sess, err := svc.FindSessionByID(id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if sess == nil {
		writeError(w, http.StatusNotFound, codeSessionNotFound, "session not found")
		return
	}

	resp := sessionDetailResponse{sessionResponse: newSessionResponse(sess)}
	for _, t := range sess.Tickets() {
		resp.Tickets = append(resp.Tickets, newTicketResponse(t))
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(resp)
}

func updateSession(w http.ResponseWriter, r *http.Request, svc SessionManager, id string) {
	var req updateSessionRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
		return
	}

	ok, err := svc.UpdateSession(id, app.UpdateSessionInput{
		Title:       req.Title,
		StartsAt:    req.StartsAt,
		TotalSeats:  req.TotalSeats,
		TicketPrice: req.TicketPrice,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, codeSessionNotFound, "session not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func deleteSession(w http.ResponseWriter, svc SessionManager, id string) {
	sess, err := svc.FindSessionByID(id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if sess == nil {
		writeError(w, http.StatusNotFound, codeSessionNotFound, "session not found")
		return
	}
	if _, err := svc.RemoveSession(sess); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func buyTickets(w http.ResponseWriter, r *http.Request, svc SessionManager, id string) {
	var req buyTicketsRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
		return
	}

	sess, err := svc.FindSessionByID(id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if sess == nil {
		writeError(w, http.StatusNotFound, codeSessionNotFound, "session not found")
		return
	}

	tickets, err := svc.BuyTickets(sess, req.Quantity)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	resp := make([]ticketResponse, 0, len(tickets))
	for _, t := range tickets {
		resp = append(resp, newTicketResponse(t))
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(resp)
}

func parseSessionPath(path string) (id, sub string, ok bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) < 2 || parts[0] != "sessions" || parts[1] == "" {
		return "", "", false
	}
	switch len(parts) {
	case 2:
		return parts[1], "", true
	case 3:
		if parts[2] != "tickets" {
			return "", "", false
		}
		return parts[1], parts[2], true
	default:
		return "", "", false
	}
}

type createSessionRequest struct {
	Title       string    `json:"title"`
	StartsAt    time.Time `json:"starts_at"`
	TotalSeats  int       `json:"total_seats"`
	TicketPrice float64   `json:"ticket_price"`
}

type updateSessionRequest struct {
	Title       *string    `json:"title"`
	StartsAt    *time.Time `json:"starts_at"`
	TotalSeats  *int       `json:"total_seats"`
	TicketPrice *float64   `json:"ticket_price"`
}

type buyTicketsRequest struct {
	Quantity int `json:"quantity"`
}

type sessionResponse struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	StartsAt       time.Time `json:"starts_at"`
	TotalSeats     int       `json:"total_seats"`
	AvailableSeats int       `json:"available_seats"`
	TicketPrice    float64   `json:"ticket_price"`
}

type sessionDetailResponse struct {
	sessionResponse
	Tickets []ticketResponse `json:"tickets"`
}

func newSessionResponse(s *domain.Session) sessionResponse {
	return sessionResponse{
		ID:             s.ID(),
		Title:          s.Title(),
		StartsAt:       s.StartsAt(),
		TotalSeats:     s.TotalSeats(),
		AvailableSeats: s.AvailableSeats(),
		TicketPrice:    s.TicketPrice(),
	}
}
