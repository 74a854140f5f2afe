package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/spec-kit/tickethub/internal/api/dto"
	"github.com/spec-kit/tickethub/internal/service"
	"github.com/spec-kit/tickethub/internal/session"
	apperrors "github.com/spec-kit/tickethub/pkg/util"
)

// TicketsHandler serves the action-dispatched ticket endpoint. The session
// gate runs before Handle, so a session is always present here.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// Handle dispatches /api/tickets on the action parameter, read from either
// the form body or the query string.
func (h *TicketsHandler) Handle(c *fiber.Ctx) error {
	sess, ok := session.FromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Unauthorized")
	}

	switch formOrQuery(c, "action") {
	case "get_all":
		return h.getAll(c, sess.UserID)
	case "get":
		return h.get(c, sess.UserID)
	case "create":
		return h.create(c, sess.UserID)
	case "update":
		return h.update(c, sess.UserID)
	case "delete":
		return h.delete(c, sess.UserID)
	case "get_stats":
		return h.getStats(c, sess.UserID)
	default:
		return apperrors.NewValidationError("Invalid action", nil)
	}
}

func (h *TicketsHandler) getAll(c *fiber.Ctx, userID int64) error {
	tickets, err := h.service.List(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK("Tickets retrieved", fiber.Map{"tickets": dto.FromTickets(tickets)}))
}

func (h *TicketsHandler) get(c *fiber.Ctx, userID int64) error {
	id, err := ticketID(c)
	if err != nil {
		return apperrors.NewNotFound("Ticket not found")
	}
	ticket, err := h.service.Get(c.UserContext(), userID, id)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK("Ticket retrieved", fiber.Map{"ticket": dto.FromTicket(ticket)}))
}

func (h *TicketsHandler) create(c *fiber.Ctx, userID int64) error {
	ticket, err := h.service.Create(c.UserContext(), userID, ticketInput(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK("Ticket created successfully", fiber.Map{"ticket_id": ticket.ID}))
}

func (h *TicketsHandler) update(c *fiber.Ctx, userID int64) error {
	id, err := ticketID(c)
	if err != nil {
		return apperrors.NewNotFound("Ticket not found or access denied")
	}
	if _, err := h.service.Update(c.UserContext(), userID, id, ticketInput(c)); err != nil {
		return err
	}
	return c.JSON(dto.OK("Ticket updated successfully", nil))
}

func (h *TicketsHandler) delete(c *fiber.Ctx, userID int64) error {
	id, err := ticketID(c)
	if err != nil {
		return apperrors.NewNotFound("Ticket not found or access denied")
	}
	if err := h.service.Delete(c.UserContext(), userID, id); err != nil {
		return err
	}
	return c.JSON(dto.OK("Ticket deleted successfully", nil))
}

func (h *TicketsHandler) getStats(c *fiber.Ctx, userID int64) error {
	stats, err := h.service.Stats(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK("Stats retrieved", fiber.Map{"stats": dto.FromStats(stats)}))
}

func ticketInput(c *fiber.Ctx) service.TicketInput {
	return service.TicketInput{
		Title:       formValue(c, "title"),
		Description: formValue(c, "description"),
		Status:      formValue(c, "status"),
		Priority:    formValue(c, "priority"),
	}
}

func ticketID(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(formOrQuery(c, "id"), 10, 64)
}

// formValue copies the value out of fasthttp's request buffer; the string
// returned by c.FormValue is only valid until the handler returns, and
// these values end up in repository and session records.
func formValue(c *fiber.Ctx, key string) string {
	return utils.CopyString(c.FormValue(key))
}

func formOrQuery(c *fiber.Ctx, key string) string {
	if val := formValue(c, key); val != "" {
		return val
	}
	return utils.CopyString(c.Query(key))
}
