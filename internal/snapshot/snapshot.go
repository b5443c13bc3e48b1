// Package snapshot reads and writes the JSON representation of a venue. The
// document layout mirrors the export format the interactive tooling consumes:
// venue header fields plus the sessions with their owned tickets inline.
package snapshot

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/ovalles/cinehall/internal/domain"
)

// SortOption selects the session order of an exported snapshot.
type SortOption int

const (
	SortNone SortOption = iota
	SortByTitle
	SortByStart
	SortBySeats
)

// ParseSortOption maps the wire names onto a SortOption.
func ParseSortOption(name string) (SortOption, bool) {
	switch name {
	case "", "none":
		return SortNone, true
	case "title":
		return SortByTitle, true
	case "start":
		return SortByStart, true
	case "seats":
		return SortBySeats, true
	default:
		return SortNone, false
	}
}

type venueDoc struct {
	Name      string       `json:"name"`
	Address   string       `json:"address"`
	HallCount int          `json:"hallCount"`
	Sessions  []sessionDoc `json:"sessions"`
}

type sessionDoc struct {
	ID             string      `json:"id"`
	MovieTitle     string      `json:"movieTitle"`
	DateTime       time.Time   `json:"dateTime"`
	TotalSeats     int         `json:"totalSeats"`
	AvailableSeats int         `json:"availableSeats"`
	TicketPrice    float64     `json:"ticketPrice"`
	Tickets        []ticketDoc `json:"tickets"`
}

type ticketDoc struct {
	ID           string    `json:"id"`
	SessionID    string    `json:"sessionId"`
	PurchaseTime time.Time `json:"purchaseTime"`
	Price        float64   `json:"price"`
}

// Write serializes the venue to w, optionally pre-sorting the sessions. Ties
// keep their insertion order.
func Write(w io.Writer, venue *domain.Venue, opt SortOption) error {
	if venue == nil {
		return domain.ErrVenueNotInitialized
	}

	sessions := venue.Sessions()
	switch opt {
	case SortByTitle:
		sort.SliceStable(sessions, func(i, j int) bool { return domain.LessByTitle(sessions[i], sessions[j]) })
	case SortByStart:
		sort.SliceStable(sessions, func(i, j int) bool { return domain.LessByStart(sessions[i], sessions[j]) })
	case SortBySeats:
		sort.SliceStable(sessions, func(i, j int) bool { return domain.LessBySeatsDesc(sessions[i], sessions[j]) })
	}

	doc := venueDoc{
		Name:      venue.Name(),
		Address:   venue.Address(),
		HallCount: venue.HallCount(),
		Sessions:  make([]sessionDoc, 0, len(sessions)),
	}
	for _, s := range sessions {
		tickets := s.Tickets()
		sd := sessionDoc{
			ID:             s.ID(),
			MovieTitle:     s.Title(),
			DateTime:       s.StartsAt(),
			TotalSeats:     s.TotalSeats(),
			AvailableSeats: s.AvailableSeats(),
			TicketPrice:    s.TicketPrice(),
			Tickets:        make([]ticketDoc, 0, len(tickets)),
		}
		for _, t := range tickets {
			sd.Tickets = append(sd.Tickets, ticketDoc{
				ID:           t.ID,
				SessionID:    t.SessionID,
				PurchaseTime: t.PurchaseTime,
				Price:        t.Price,
			})
		}
		doc.Sessions = append(doc.Sessions, sd)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}

// Export writes the venue snapshot to a file.
func Export(venue *domain.Venue, filename string, opt SortOption) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("create snapshot file: %w", err)
	}
	if err := Write(f, venue, opt); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Read rebuilds a venue from r. Each session passes the constructor checks;
// tickets are restored as recorded.
func Read(r io.Reader) (*domain.Venue, error) {
	var doc venueDoc
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}

	venue := domain.NewVenue(doc.Name, doc.Address, doc.HallCount)
	for _, sd := range doc.Sessions {
		tickets := make([]domain.Ticket, 0, len(sd.Tickets))
		for _, td := range sd.Tickets {
			tickets = append(tickets, domain.Ticket{
				ID:           td.ID,
				SessionID:    td.SessionID,
				PurchaseTime: td.PurchaseTime,
				Price:        td.Price,
			})
		}
		s, err := domain.RestoreSession(sd.ID, sd.MovieTitle, sd.DateTime, sd.TotalSeats, sd.AvailableSeats, sd.TicketPrice, tickets)
		if err != nil {
			return nil, fmt.Errorf("restore session %q: %w", sd.ID, err)
		}
		venue.AddSession(s)
	}
	return venue, nil
}

// Import reads a venue snapshot from a file.
func Import(filename string) (*domain.Venue, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open snapshot file: %w", err)
	}
	defer f.Close()
	return Read(f)
}
