package domain

// Venue is the collection of sessions managed together. Sessions are kept as
// a sequence in insertion order; adding the same session twice is permitted
// and deduplication is the caller's responsibility.
type Venue struct {
	name      string
	address   string
	hallCount int
	sessions  []*Session
}

func NewVenue(name, address string, hallCount int) *Venue {
	return &Venue{
		name:      name,
		address:   address,
		hallCount: hallCount,
	}
}

func (v *Venue) Name() string {
	return v.name
}

func (v *Venue) Address() string {
	return v.address
}

func (v *Venue) HallCount() int {
	return v.hallCount
}

// Sessions returns the sessions in insertion order. The slice is a copy; the
// sessions themselves are shared.
func (v *Venue) Sessions() []*Session {
	return append([]*Session{}, v.sessions...)
}

// AddSession appends the session. A nil session is a no-op signal, not a
// failure.
func (v *Venue) AddSession(s *Session) bool {
	if s == nil {
		return false
	}
	v.sessions = append(v.sessions, s)
	return true
}

// RemoveSession removes the first session with a matching identifier.
func (v *Venue) RemoveSession(s *Session) bool {
	if s == nil {
		return false
	}
	for i, existing := range v.sessions {
		if existing.ID() == s.ID() {
			v.sessions = append(v.sessions[:i], v.sessions[i+1:]...)
			return true
		}
	}
	return false
}

// FindSession returns the first session with the given identifier.
func (v *Venue) FindSession(id string) (*Session, bool) {
	for _, s := range v.sessions {
		if s.ID() == id {
			return s, true
		}
	}
	return nil, false
}

// FindTicket scans all sessions for the ticket and returns it together with
// its owning session.
func (v *Venue) FindTicket(ticketID string) (Ticket, *Session, bool) {
	for _, s := range v.sessions {
		if t, ok := s.FindTicket(ticketID); ok {
			return t, s, true
		}
	}
	return Ticket{}, nil, false
}

// TotalRevenue sums sold seats times the current ticket price over all
// sessions. It deliberately uses the live session price rather than the
// price stored on each ticket; see DESIGN.md.
func (v *Venue) TotalRevenue() float64 {
	var total float64
	for _, s := range v.sessions {
		total += float64(s.SoldSeats()) * s.TicketPrice()
	}
	return total
}
