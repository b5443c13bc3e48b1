package domain

import (
	"errors"
	"testing"
	"time"
)

func TestNewSession(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)

	t.Run("starts with full capacity available", func(t *testing.T) {
		s, err := NewSession("Inception", start, 100, 150.0)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if s.ID() == "" {
			t.Fatalf("expected a generated id")
		}
		if s.AvailableSeats() != 100 || s.TotalSeats() != 100 {
			t.Fatalf("expected 100/100 seats, got %d/%d", s.AvailableSeats(), s.TotalSeats())
		}
		if len(s.Tickets()) != 0 {
			t.Fatalf("expected no tickets, got %d", len(s.Tickets()))
		}
	})

	t.Run("rejects non-positive seats", func(t *testing.T) {
		if _, err := NewSession("x", start, 0, 10); !errors.Is(err, ErrInvalidSeatCount) {
			t.Fatalf("expected ErrInvalidSeatCount, got %v", err)
		}
	})

	t.Run("rejects non-positive price", func(t *testing.T) {
		if _, err := NewSession("x", start, 10, 0); !errors.Is(err, ErrInvalidPrice) {
			t.Fatalf("expected ErrInvalidPrice, got %v", err)
		}
	})

	t.Run("rejects missing start time", func(t *testing.T) {
		if _, err := NewSession("x", time.Time{}, 10, 10); !errors.Is(err, ErrMissingStartTime) {
			t.Fatalf("expected ErrMissingStartTime, got %v", err)
		}
	})
}

func TestSessionValidity(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)
	s, err := NewSession("Inception", start, 10, 100)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	if !s.IsValid(start.Add(-time.Second)) {
		t.Fatalf("expected valid one second before start")
	}
	if s.IsValid(start) {
		t.Fatalf("expected expired exactly at start")
	}
	if !s.IsExpired(start) {
		t.Fatalf("expected IsExpired true exactly at start")
	}
	if s.IsValid(start.Add(time.Second)) {
		t.Fatalf("expected expired after start")
	}
}

func TestSessionPurchase(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)
	now := start.Add(-2 * time.Hour)

	newSess := func(t *testing.T, seats int, price float64) *Session {
		t.Helper()
		s, err := NewSession("Inception", start, seats, price)
		if err != nil {
			t.Fatalf("new session: %v", err)
		}
		return s
	}

	t.Run("mints tickets at current price", func(t *testing.T) {
		s := newSess(t, 10, 150)
		tickets, err := s.Purchase(3, now)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(tickets) != 3 {
			t.Fatalf("expected 3 tickets, got %d", len(tickets))
		}
		if s.AvailableSeats() != 7 {
			t.Fatalf("expected 7 seats left, got %d", s.AvailableSeats())
		}
		for _, tk := range tickets {
			if tk.ID == "" {
				t.Fatalf("expected ticket id to be set")
			}
			if tk.SessionID != s.ID() {
				t.Fatalf("expected session id %s, got %s", s.ID(), tk.SessionID)
			}
			if tk.Price != 150 {
				t.Fatalf("expected price 150, got %v", tk.Price)
			}
			if !tk.PurchaseTime.Equal(now) {
				t.Fatalf("expected purchase time %v, got %v", now, tk.PurchaseTime)
			}
		}
	})

	t.Run("price changes do not touch sold tickets", func(t *testing.T) {
		s := newSess(t, 10, 150)
		tickets, err := s.Purchase(1, now)
		if err != nil {
			t.Fatalf("purchase: %v", err)
		}
		if err := s.SetTicketPrice(200); err != nil {
			t.Fatalf("set price: %v", err)
		}
		if got := s.Tickets()[0].Price; got != tickets[0].Price {
			t.Fatalf("expected stored price %v, got %v", tickets[0].Price, got)
		}
	})

	t.Run("all or nothing on insufficient seats", func(t *testing.T) {
		s := newSess(t, 2, 100)
		_, err := s.Purchase(3, now)
		if !errors.Is(err, ErrInsufficientSeats) {
			t.Fatalf("expected ErrInsufficientSeats, got %v", err)
		}
		if s.AvailableSeats() != 2 {
			t.Fatalf("expected seats unchanged, got %d", s.AvailableSeats())
		}
		if len(s.Tickets()) != 0 {
			t.Fatalf("expected no tickets minted, got %d", len(s.Tickets()))
		}
	})

	t.Run("rejects non-positive count", func(t *testing.T) {
		s := newSess(t, 2, 100)
		if _, err := s.Purchase(0, now); !errors.Is(err, ErrInvalidQuantity) {
			t.Fatalf("expected ErrInvalidQuantity, got %v", err)
		}
	})

	t.Run("rejects expired session regardless of seats", func(t *testing.T) {
		s := newSess(t, 100, 100)
		if _, err := s.Purchase(1, start); !errors.Is(err, ErrSessionExpired) {
			t.Fatalf("expected ErrSessionExpired, got %v", err)
		}
		if s.AvailableSeats() != 100 {
			t.Fatalf("expected seats unchanged, got %d", s.AvailableSeats())
		}
	})

	t.Run("single seat scenario", func(t *testing.T) {
		s := newSess(t, 1, 100)
		if _, err := s.Purchase(1, now); err != nil {
			t.Fatalf("first purchase: %v", err)
		}
		if s.AvailableSeats() != 0 {
			t.Fatalf("expected 0 seats left, got %d", s.AvailableSeats())
		}
		if _, err := s.Purchase(1, now); !errors.Is(err, ErrInsufficientSeats) {
			t.Fatalf("expected ErrInsufficientSeats, got %v", err)
		}
	})
}

func TestSessionRemoveTicket(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)
	now := start.Add(-time.Hour)

	s, err := NewSession("Inception", start, 5, 100)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	tickets, err := s.Purchase(2, now)
	if err != nil {
		t.Fatalf("purchase: %v", err)
	}

	if !s.RemoveTicket(tickets[0].ID) {
		t.Fatalf("expected removal to succeed")
	}
	if s.AvailableSeats() != 4 {
		t.Fatalf("expected 4 seats after removal, got %d", s.AvailableSeats())
	}
	if len(s.Tickets()) != 1 {
		t.Fatalf("expected 1 ticket left, got %d", len(s.Tickets()))
	}

	if s.RemoveTicket(tickets[0].ID) {
		t.Fatalf("expected second removal to report false")
	}
	if s.RemoveTicket("missing") {
		t.Fatalf("expected removal of unknown ticket to report false")
	}
}

func TestSessionSetTotalSeats(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)
	now := start.Add(-time.Hour)

	t.Run("cannot drop below sold", func(t *testing.T) {
		s, _ := NewSession("Inception", start, 100, 100)
		if _, err := s.Purchase(10, now); err != nil {
			t.Fatalf("purchase: %v", err)
		}
		if err := s.SetTotalSeats(5); !errors.Is(err, ErrSeatsBelowSold) {
			t.Fatalf("expected ErrSeatsBelowSold, got %v", err)
		}
		if s.TotalSeats() != 100 || s.AvailableSeats() != 90 {
			t.Fatalf("expected state unchanged, got %d/%d", s.AvailableSeats(), s.TotalSeats())
		}
	})

	t.Run("exactly sold leaves zero available", func(t *testing.T) {
		s, _ := NewSession("Inception", start, 100, 100)
		if _, err := s.Purchase(10, now); err != nil {
			t.Fatalf("purchase: %v", err)
		}
		if err := s.SetTotalSeats(10); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if s.TotalSeats() != 10 || s.AvailableSeats() != 0 {
			t.Fatalf("expected 0/10, got %d/%d", s.AvailableSeats(), s.TotalSeats())
		}
	})

	t.Run("growing the pool grows available by the delta", func(t *testing.T) {
		s, _ := NewSession("Inception", start, 100, 100)
		if _, err := s.Purchase(10, now); err != nil {
			t.Fatalf("purchase: %v", err)
		}
		if err := s.SetTotalSeats(150); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if s.TotalSeats() != 150 || s.AvailableSeats() != 140 {
			t.Fatalf("expected 140/150, got %d/%d", s.AvailableSeats(), s.TotalSeats())
		}
	})
}

func TestSessionSetTicketPrice(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)
	s, _ := NewSession("Inception", start, 10, 100)

	if err := s.SetTicketPrice(-1); !errors.Is(err, ErrNegativePrice) {
		t.Fatalf("expected ErrNegativePrice, got %v", err)
	}
	if s.TicketPrice() != 100 {
		t.Fatalf("expected price unchanged, got %v", s.TicketPrice())
	}
	if err := s.SetTicketPrice(0); err != nil {
		t.Fatalf("expected zero price to be allowed, got %v", err)
	}
}

func TestSessionInvariantsAfterMixedOperations(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)
	now := start.Add(-time.Hour)

	s, _ := NewSession("Inception", start, 20, 100)

	check := func(step string) {
		t.Helper()
		if s.AvailableSeats() < 0 || s.AvailableSeats() > s.TotalSeats() {
			t.Fatalf("%s: available %d out of [0,%d]", step, s.AvailableSeats(), s.TotalSeats())
		}
		if s.SoldSeats() != len(s.Tickets()) {
			t.Fatalf("%s: sold %d does not match %d live tickets", step, s.SoldSeats(), len(s.Tickets()))
		}
	}

	tickets, err := s.Purchase(5, now)
	if err != nil {
		t.Fatalf("purchase: %v", err)
	}
	check("after purchase")

	s.RemoveTicket(tickets[1].ID)
	check("after removal")

	if _, err := s.Purchase(3, now); err != nil {
		t.Fatalf("purchase: %v", err)
	}
	check("after second purchase")

	if err := s.SetTotalSeats(8); err != nil {
		t.Fatalf("resize: %v", err)
	}
	check("after resize")
}

func TestRestoreSession(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)

	t.Run("keeps identity and counters", func(t *testing.T) {
		tickets := []Ticket{{ID: "t-1", SessionID: "s-1", PurchaseTime: start.Add(-time.Hour), Price: 90}}
		s, err := RestoreSession("s-1", "Inception", start, 10, 9, 100, tickets)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if s.ID() != "s-1" {
			t.Fatalf("expected id preserved, got %s", s.ID())
		}
		if s.AvailableSeats() != 9 {
			t.Fatalf("expected 9 available, got %d", s.AvailableSeats())
		}
		if len(s.Tickets()) != 1 || s.Tickets()[0].ID != "t-1" {
			t.Fatalf("expected restored ticket t-1, got %+v", s.Tickets())
		}
	})

	t.Run("rejects available outside the pool", func(t *testing.T) {
		if _, err := RestoreSession("s-1", "x", start, 10, 11, 100, nil); !errors.Is(err, ErrSeatsOutOfRange) {
			t.Fatalf("expected ErrSeatsOutOfRange, got %v", err)
		}
		if _, err := RestoreSession("s-1", "x", start, 10, -1, 100, nil); !errors.Is(err, ErrSeatsOutOfRange) {
			t.Fatalf("expected ErrSeatsOutOfRange, got %v", err)
		}
	})
}
