package http

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/ovalles/cinehall/internal/app"
	"github.com/ovalles/cinehall/internal/domain"
)

// TicketService is the minimal interface needed by the ticket endpoints.
type TicketService interface {
	FindTicket(ticketID string) (*app.TicketInfo, error)
	DeleteTicket(ticketID string) (bool, error)
	TransferTicket(ticketID, targetSessionID string) (bool, error)
}

// HandleTickets returns an HTTP handler for /tickets/{id} and
// /tickets/{id}/transfer.
func HandleTickets(svc TicketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, sub, ok := parseTicketPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		if sub == "transfer" {
			if r.Method != http.MethodPost {
				writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
				return
			}
			transferTicket(w, r, svc, id)
			return
		}

		switch r.Method {
		case http.MethodGet:
			getTicket(w, svc, id)
		case http.MethodDelete:
			deleteTicket(w, svc, id)
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

func getTicket(w http.ResponseWriter, svc TicketService, id string) {
	info, err := svc.FindTicket(id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if info == nil {
		writeError(w, http.StatusNotFound, codeTicketNotFound, "ticket not found")
		return
	}

	resp := ticketDetailResponse{
		ticketResponse: newTicketResponse(info.Ticket),
		Valid:          info.Valid,
		SessionTitle:   info.Session.Title(),
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(resp)
}

func deleteTicket(w http.ResponseWriter, svc TicketService, id string) {
	removed, err := svc.DeleteTicket(id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if !removed {
		writeError(w, http.StatusNotFound, codeTicketNotFound, "ticket not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func transferTicket(w http.ResponseWriter, r *http.Request, svc TicketService, id string) {
	var req transferTicketRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
		return
	}
	if req.SessionID == "" {
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "session_id is required")
		return
	}

	moved, err := svc.TransferTicket(id, req.SessionID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if !moved {
		writeError(w, http.StatusNotFound, codeNotFound, "ticket or target session not found")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(transferTicketResponse{
		TicketID:  id,
		SessionID: req.SessionID,
	})
}

func parseTicketPath(path string) (id, sub string, ok bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) < 2 || parts[0] != "tickets" || parts[1] == "" {
		return "", "", false
	}
	switch len(parts) {
	case 2:
		return parts[1], "", true
	case 3:
		if parts[2] != "transfer" {
			return "", "", false
		}
		return parts[1], parts[2], true
	default:
		return "", "", false
	}
}

type transferTicketRequest struct {
	SessionID string `json:"session_id"`
}

type transferTicketResponse struct {
	TicketID  string `json:"ticket_id"`
	SessionID string `json:"session_id"`
}

type ticketResponse struct {
	ID           string    `json:"id"`
	SessionID    string    `json:"session_id"`
	PurchaseTime time.Time `json:"purchase_time"`
	Price        float64   `json:"price"`
}

type ticketDetailResponse struct {
	ticketResponse
	Valid        bool   `json:"valid"`
	SessionTitle string `json:"session_title"`
}

func newTicketResponse(t domain.Ticket) ticketResponse {
	return ticketResponse{
		ID:           t.ID,
		SessionID:    t.SessionID,
		PurchaseTime: t.PurchaseTime,
		Price:        t.Price,
	}
}
