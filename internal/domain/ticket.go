package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusClosed     TicketStatus = "closed"
)

// Valid reports whether the status is one of the three allowed values.
func (s TicketStatus) Valid() bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusClosed:
		return true
	}
	return false
}

// Ticket is a work item owned by exactly one user. Priority is free-form
// text and may be empty; description is optional.
type Ticket struct {
	ID          int64
	UserID      int64
	Title       string
	Description string
	Status      TicketStatus
	Priority    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TicketStats aggregates per-owner counts for the dashboard. InProgress
// tickets count toward Total but toward neither Open nor Closed.
type TicketStats struct {
	Total  int64
	Open   int64
	Closed int64
}
