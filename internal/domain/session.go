package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Session is a scheduled screening that owns a fixed seat pool and the
// tickets sold against it. All seat accounting goes through its methods so
// that 0 <= available <= total holds after every mutation.
type Session struct {
	id             string
	title          string
	startsAt       time.Time
	totalSeats     int
	availableSeats int
	ticketPrice    float64
	tickets        []Ticket
}

// NewSession creates a session with the full capacity available and a fresh
// identifier.
func NewSession(title string, startsAt time.Time, totalSeats int, ticketPrice float64) (*Session, error) {
	if totalSeats <= 0 {
		return nil, ErrInvalidSeatCount
	}
	if ticketPrice <= 0 {
		return nil, ErrInvalidPrice
	}
	if startsAt.IsZero() {
		return nil, ErrMissingStartTime
	}
	return &Session{
		id:             uuid.NewString(),
		title:          title,
		startsAt:       startsAt,
		totalSeats:     totalSeats,
		availableSeats: totalSeats,
		ticketPrice:    ticketPrice,
	}, nil
}

// RestoreSession rebuilds a session from an external snapshot. It applies the
// same checks as NewSession plus the available-seats bound; tickets are taken
// as-is and are not reconciled against the seat counters.
func RestoreSession(id, title string, startsAt time.Time, totalSeats, availableSeats int, ticketPrice float64, tickets []Ticket) (*Session, error) {
	if id == "" {
		id = uuid.NewString()
	}
	if totalSeats <= 0 {
		return nil, ErrInvalidSeatCount
	}
	if ticketPrice <= 0 {
		return nil, ErrInvalidPrice
	}
	if startsAt.IsZero() {
		return nil, ErrMissingStartTime
	}
	if availableSeats < 0 || availableSeats > totalSeats {
		return nil, fmt.Errorf("%w: %d of %d", ErrSeatsOutOfRange, availableSeats, totalSeats)
	}
	return &Session{
		id:             id,
		title:          title,
		startsAt:       startsAt,
		totalSeats:     totalSeats,
		availableSeats: availableSeats,
		ticketPrice:    ticketPrice,
		tickets:        append([]Ticket{}, tickets...),
	}, nil
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Title() string {
	return s.title
}

func (s *Session) StartsAt() time.Time {
	return s.startsAt
}

func (s *Session) TotalSeats() int {
	return s.totalSeats
}

func (s *Session) AvailableSeats() int {
	return s.availableSeats
}

func (s *Session) TicketPrice() float64 {
	return s.ticketPrice
}

// SoldSeats is the number of live tickets owned by this session.
func (s *Session) SoldSeats() int {
	return s.totalSeats - s.availableSeats
}

// Tickets returns a copy of the owned tickets in purchase order.
func (s *Session) Tickets() []Ticket {
	return append([]Ticket{}, s.tickets...)
}

// IsValid reports whether the session can still sell tickets at the given
// instant. The boundary is closed: exactly at the start time the session is
// already expired.
func (s *Session) IsValid(now time.Time) bool {
	return now.Before(s.startsAt)
}

func (s *Session) IsExpired(now time.Time) bool {
	return !s.IsValid(now)
}

// Purchase mints count tickets at the current unit price, all-or-nothing.
func (s *Session) Purchase(count int, now time.Time) ([]Ticket, error) {
	if s.IsExpired(now) {
		return nil, fmt.Errorf("%w: session %s", ErrSessionExpired, s.id)
	}
	if count <= 0 {
		return nil, ErrInvalidQuantity
	}
	if count > s.availableSeats {
		return nil, fmt.Errorf("%w: %d requested, %d left", ErrInsufficientSeats, count, s.availableSeats)
	}

	minted := make([]Ticket, 0, count)
	for i := 0; i < count; i++ {
		minted = append(minted, Ticket{
			ID:           uuid.NewString(),
			SessionID:    s.id,
			PurchaseTime: now,
			Price:        s.ticketPrice,
		})
	}
	s.tickets = append(s.tickets, minted...)
	s.availableSeats -= count
	return minted, nil
}

// RemoveTicket detaches the ticket and frees its seat. The freed seat is
// capped at the pool size so a double release cannot push available past
// total.
func (s *Session) RemoveTicket(ticketID string) bool {
	for i := range s.tickets {
		if s.tickets[i].ID != ticketID {
			continue
		}
		s.tickets = append(s.tickets[:i], s.tickets[i+1:]...)
		if s.availableSeats < s.totalSeats {
			s.availableSeats++
		}
		return true
	}
	return false
}

// FindTicket returns the owned ticket with the given identifier.
func (s *Session) FindTicket(ticketID string) (Ticket, bool) {
	for _, t := range s.tickets {
		if t.ID == ticketID {
			return t, true
		}
	}
	return Ticket{}, false
}

// RelabelTicket reassigns the identifier of an owned ticket. Transfers use it
// so external holders of the original identifier stay valid.
func (s *Session) RelabelTicket(currentID, newID string) bool {
	for i := range s.tickets {
		if s.tickets[i].ID == currentID {
			s.tickets[i].ID = newID
			return true
		}
	}
	return false
}

// SetTotalSeats resizes the seat pool. The pool can never drop below the
// tickets already sold; available moves by the same delta as total.
func (s *Session) SetTotalSeats(totalSeats int) error {
	if totalSeats < s.SoldSeats() {
		return fmt.Errorf("%w: %d sold", ErrSeatsBelowSold, s.SoldSeats())
	}
	s.availableSeats += totalSeats - s.totalSeats
	s.totalSeats = totalSeats
	return nil
}

// SetTicketPrice changes the unit price for future purchases. Tickets already
// sold keep the price they were bought at.
func (s *Session) SetTicketPrice(price float64) error {
	if price < 0 {
		return ErrNegativePrice
	}
	s.ticketPrice = price
	return nil
}

func (s *Session) Rename(title string) {
	s.title = title
}

func (s *Session) Reschedule(startsAt time.Time) {
	s.startsAt = startsAt
}
