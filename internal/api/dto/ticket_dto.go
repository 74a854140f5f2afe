package dto

import (
	"time"

	"github.com/spec-kit/tickethub/internal/domain"
)

// TicketResponse is the wire shape for a single ticket.
type TicketResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// StatsResponse is the wire shape for get_stats. In-progress tickets count
// toward total only.
type StatsResponse struct {
	Total  int64 `json:"total"`
	Open   int64 `json:"open"`
	Closed int64 `json:"closed"`
}

// FromTicket maps a domain ticket to its response shape. The owner id is
// deliberately omitted; every ticket in a response belongs to the caller.
func FromTicket(t *domain.Ticket) TicketResponse {
	return TicketResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    t.Priority,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// FromTickets maps a slice, yielding an empty slice rather than null.
func FromTickets(tickets []domain.Ticket) []TicketResponse {
	out := make([]TicketResponse, 0, len(tickets))
	for i := range tickets {
		out = append(out, FromTicket(&tickets[i]))
	}
	return out
}

// FromStats maps aggregate counts.
func FromStats(s *domain.TicketStats) StatsResponse {
	return StatsResponse{Total: s.Total, Open: s.Open, Closed: s.Closed}
}
