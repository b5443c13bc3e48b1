package app

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ovalles/cinehall/internal/clock"
	"github.com/ovalles/cinehall/internal/domain"
	"github.com/ovalles/cinehall/internal/snapshot"
)

// InventoryService orchestrates ticket operations over one venue. Purchases
// and transfers read seat counters and then write them, so a mutex
// serializes every operation; a single clock reading is taken per operation
// so expiry checks and mutations see one instant.
type InventoryService struct {
	mu    sync.Mutex
	venue *domain.Venue
	clock clock.Clock
}

func NewInventoryService(venue *domain.Venue, clk clock.Clock) *InventoryService {
	return &InventoryService{
		venue: venue,
		clock: clk,
	}
}

// SetVenue replaces the managed venue, e.g. after a snapshot import.
func (s *InventoryService) SetVenue(v *domain.Venue) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.venue = v
}

// ListSessions returns all sessions in insertion order.
func (s *InventoryService) ListSessions() ([]*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.venue == nil {
		return nil, domain.ErrVenueNotInitialized
	}
	return s.venue.Sessions(), nil
}

// ListValidSessions returns the sessions that have not started yet, keeping
// their relative order.
func (s *InventoryService) ListValidSessions() ([]*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.venue == nil {
		return nil, domain.ErrVenueNotInitialized
	}
	now := s.clock.Now()
	valid := make([]*domain.Session, 0)
	for _, sess := range s.venue.Sessions() {
		if sess.IsValid(now) {
			valid = append(valid, sess)
		}
	}
	return valid, nil
}

type CreateSessionInput struct {
	Title       string
	StartsAt    time.Time
	TotalSeats  int
	TicketPrice float64
}

// CreateSession constructs a session and adds it to the venue.
func (s *InventoryService) CreateSession(in CreateSessionInput) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.venue == nil {
		return nil, domain.ErrVenueNotInitialized
	}
	sess, err := domain.NewSession(in.Title, in.StartsAt, in.TotalSeats, in.TicketPrice)
	if err != nil {
		return nil, err
	}
	s.venue.AddSession(sess)
	return sess, nil
}

// AddSession appends an existing session. A nil session reports false rather
// than failing.
func (s *InventoryService) AddSession(sess *domain.Session) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.venue == nil {
		return false, domain.ErrVenueNotInitialized
	}
	return s.venue.AddSession(sess), nil
}

// RemoveSession removes the first matching session; false when absent.
func (s *InventoryService) RemoveSession(sess *domain.Session) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.venue == nil {
		return false, domain.ErrVenueNotInitialized
	}
	return s.venue.RemoveSession(sess), nil
}

// FindSessionByID returns the session or nil when not found.
func (s *InventoryService) FindSessionByID(id string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.venue == nil {
		return nil, domain.ErrVenueNotInitialized
	}
	sess, ok := s.venue.FindSession(id)
	if !ok {
		return nil, nil
	}
	return sess, nil
}

// BuyTickets purchases count tickets on a session that must belong to this
// venue. The purchase itself is delegated to the session and is
// all-or-nothing.
func (s *InventoryService) BuyTickets(sess *domain.Session, count int) ([]domain.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.venue == nil {
		return nil, domain.ErrVenueNotInitialized
	}
	if sess == nil {
		return nil, domain.ErrSessionRequired
	}
	member, ok := s.venue.FindSession(sess.ID())
	if !ok {
		return nil, fmt.Errorf("%w: session %s", domain.ErrSessionNotInVenue, sess.ID())
	}
	now := s.clock.Now()
	if member.IsExpired(now) {
		return nil, fmt.Errorf("%w: session %s", domain.ErrSessionExpired, member.ID())
	}
	return member.Purchase(count, now)
}

// UpdateSessionInput carries optional field updates; a nil field means "no
// change". Supplied non-positive seat counts and prices are also treated as
// "no change", matching the sentinel convention of the data this service
// imports.
type UpdateSessionInput struct {
	Title       *string
	StartsAt    *time.Time
	TotalSeats  *int
	TicketPrice *float64
}

// UpdateSession applies the supplied fields to the session. Validation runs
// before any field is touched: a start time earlier than the current one is
// rejected first, then a seat pool smaller than the tickets already sold.
// Returns false when the session does not exist.
func (s *InventoryService) UpdateSession(id string, in UpdateSessionInput) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.venue == nil {
		return false, domain.ErrVenueNotInitialized
	}
	sess, ok := s.venue.FindSession(id)
	if !ok {
		return false, nil
	}

	if in.StartsAt != nil && in.StartsAt.Before(sess.StartsAt()) {
		return false, fmt.Errorf("%w: session %s", domain.ErrRescheduleEarlier, id)
	}
	if in.TotalSeats != nil && *in.TotalSeats > 0 && *in.TotalSeats < sess.SoldSeats() {
		return false, fmt.Errorf("%w: %d sold", domain.ErrSeatsBelowSold, sess.SoldSeats())
	}

	if in.Title != nil && strings.TrimSpace(*in.Title) != "" {
		sess.Rename(*in.Title)
	}
	if in.StartsAt != nil {
		sess.Reschedule(*in.StartsAt)
	}
	if in.TotalSeats != nil && *in.TotalSeats > 0 {
		if err := sess.SetTotalSeats(*in.TotalSeats); err != nil {
			return false, err
		}
	}
	if in.TicketPrice != nil && *in.TicketPrice > 0 {
		if err := sess.SetTicketPrice(*in.TicketPrice); err != nil {
			return false, err
		}
	}
	return true, nil
}

// DeleteTicket scans all sessions for the owning one and removes the ticket,
// freeing its seat. Returns whether a removal occurred.
func (s *InventoryService) DeleteTicket(ticketID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.venue == nil {
		return false, domain.ErrVenueNotInitialized
	}
	_, owner, ok := s.venue.FindTicket(ticketID)
	if !ok {
		return false, nil
	}
	return owner.RemoveTicket(ticketID), nil
}

// TransferTicket moves a ticket to another session, preserving its
// identifier. All target-side checks run before the source seat is released,
// and the whole move runs under one lock and one clock reading, so the
// release-then-purchase sequence cannot be left half done.
func (s *InventoryService) TransferTicket(ticketID, targetSessionID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.venue == nil {
		return false, domain.ErrVenueNotInitialized
	}
	target, ok := s.venue.FindSession(targetSessionID)
	if !ok {
		return false, nil
	}
	now := s.clock.Now()
	if target.IsExpired(now) {
		return false, fmt.Errorf("%w: session %s", domain.ErrSessionExpired, targetSessionID)
	}
	if target.AvailableSeats() <= 0 {
		return false, fmt.Errorf("%w: session %s is full", domain.ErrInsufficientSeats, targetSessionID)
	}

	_, source, ok := s.venue.FindTicket(ticketID)
	if !ok {
		return false, nil
	}
	if !source.RemoveTicket(ticketID) {
		return false, nil
	}

	minted, err := target.Purchase(1, now)
	if err != nil {
		return false, err
	}
	target.RelabelTicket(minted[0].ID, ticketID)
	return true, nil
}

// TicketInfo is a ticket together with its owning session and derived
// validity.
type TicketInfo struct {
	Ticket  domain.Ticket
	Session *domain.Session
	Valid   bool
}

// FindTicket returns the ticket or nil when not found. A ticket is valid iff
// its owning session exists and has not started.
func (s *InventoryService) FindTicket(ticketID string) (*TicketInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.venue == nil {
		return nil, domain.ErrVenueNotInitialized
	}
	ticket, owner, ok := s.venue.FindTicket(ticketID)
	if !ok {
		return nil, nil
	}
	return &TicketInfo{
		Ticket:  ticket,
		Session: owner,
		Valid:   owner.IsValid(s.clock.Now()),
	}, nil
}

// TotalRevenue reports sold seats times current price summed over all
// sessions.
func (s *InventoryService) TotalRevenue() (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.venue == nil {
		return 0, domain.ErrVenueNotInitialized
	}
	return s.venue.TotalRevenue(), nil
}

// ExportSnapshot writes the venue to a file under the service lock so a
// concurrent mutation cannot tear the snapshot.
func (s *InventoryService) ExportSnapshot(filename string, opt snapshot.SortOption) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.venue == nil {
		return domain.ErrVenueNotInitialized
	}
	return snapshot.Export(s.venue, filename, opt)
}

// ImportSnapshot loads a venue from a file and replaces the managed one.
func (s *InventoryService) ImportSnapshot(filename string) error {
	venue, err := snapshot.Import(filename)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.venue = venue
	return nil
}
