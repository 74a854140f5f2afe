package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/tickethub/internal/domain"
	"github.com/spec-kit/tickethub/internal/repository"
	apperrors "github.com/spec-kit/tickethub/pkg/util"
)

// TicketInput carries the mutable ticket fields. Updates always supply all
// of them; partial updates are not supported.
type TicketInput struct {
	Title       string
	Description string
	Status      string
	Priority    string
}

// TicketService exposes ownership-scoped ticket operations. Every call
// takes the acting user id resolved from the session; tickets of other
// users are indistinguishable from missing ones.
type TicketService struct {
	tickets repository.TicketRepository
}

// NewTicketService builds the service.
func NewTicketService(tickets repository.TicketRepository) *TicketService {
	return &TicketService{tickets: tickets}
}

// List returns the user's tickets, most recently created first.
func (s *TicketService) List(ctx context.Context, userID int64) ([]domain.Ticket, error) {
	tickets, err := s.tickets.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.NewPersistenceError("Failed to retrieve tickets", err)
	}
	if tickets == nil {
		tickets = []domain.Ticket{}
	}
	return tickets, nil
}

// Get returns a single owned ticket.
func (s *TicketService) Get(ctx context.Context, userID, ticketID int64) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, userID, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Ticket not found")
		}
		return nil, apperrors.NewPersistenceError("Failed to retrieve ticket", err)
	}
	return ticket, nil
}

// Create validates input and persists a new ticket owned by the user.
func (s *TicketService) Create(ctx context.Context, userID int64, input TicketInput) (*domain.Ticket, error) {
	ticket, err := buildTicket(userID, input)
	if err != nil {
		return nil, err
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.NewPersistenceError("Failed to create ticket", err)
	}
	return ticket, nil
}

// Update re-validates input, then overwrites all mutable fields of an
// owned ticket and refreshes its updated timestamp.
func (s *TicketService) Update(ctx context.Context, userID, ticketID int64, input TicketInput) (*domain.Ticket, error) {
	ticket, err := buildTicket(userID, input)
	if err != nil {
		return nil, err
	}
	ticket.ID = ticketID

	if err := s.tickets.Update(ctx, ticket); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Ticket not found or access denied")
		}
		return nil, apperrors.NewPersistenceError("Failed to update ticket", err)
	}
	return ticket, nil
}

// Delete removes an owned ticket. Deleting a missing or non-owned id
// always yields the same not-found error.
func (s *TicketService) Delete(ctx context.Context, userID, ticketID int64) error {
	if err := s.tickets.Delete(ctx, userID, ticketID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("Ticket not found or access denied")
		}
		return apperrors.NewPersistenceError("Failed to delete ticket", err)
	}
	return nil
}

// Stats returns the user's ticket counts.
func (s *TicketService) Stats(ctx context.Context, userID int64) (*domain.TicketStats, error) {
	stats, err := s.tickets.StatsByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.NewPersistenceError("Failed to retrieve stats", err)
	}
	return stats, nil
}

func buildTicket(userID int64, input TicketInput) (*domain.Ticket, error) {
	title := strings.TrimSpace(input.Title)
	status := domain.TicketStatus(strings.TrimSpace(input.Status))

	if title == "" || status == "" {
		return nil, apperrors.NewValidationError("Title and status are required", nil)
	}
	if !status.Valid() {
		return nil, apperrors.NewValidationError("Invalid status", map[string]any{"status": string(status)})
	}

	return &domain.Ticket{
		UserID:      userID,
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Status:      status,
		Priority:    strings.TrimSpace(input.Priority),
	}, nil
}
