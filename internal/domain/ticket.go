package domain

import "time"

// Ticket is one sold seat in one session. It carries the price actually paid
// at purchase time, independent of later price changes on the session. The
// back-reference to the owner is an identifier only; the session owns the
// ticket's lifetime.
type Ticket struct {
	ID           string
	SessionID    string
	PurchaseTime time.Time
	Price        float64
}
