package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/tickethub/internal/api/dto"
	"github.com/spec-kit/tickethub/internal/domain"
	"github.com/spec-kit/tickethub/internal/service"
	"github.com/spec-kit/tickethub/internal/session"
	apperrors "github.com/spec-kit/tickethub/pkg/util"
)

// AuthHandler serves the action-dispatched auth endpoint.
type AuthHandler struct {
	auth *service.AuthService
	gate *session.Gate
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, gate *session.Gate) *AuthHandler {
	return &AuthHandler{auth: authService, gate: gate}
}

// Handle dispatches POST /api/auth on the action form parameter.
func (h *AuthHandler) Handle(c *fiber.Ctx) error {
	switch c.FormValue("action") {
	case "signup":
		return h.signup(c)
	case "login":
		return h.login(c)
	case "logout":
		return h.logout(c)
	case "check_session":
		return h.checkSession(c)
	case "reset_request":
		return h.resetRequest(c)
	case "reset_confirm":
		return h.resetConfirm(c)
	default:
		return apperrors.NewValidationError("Invalid action", nil)
	}
}

func (h *AuthHandler) signup(c *fiber.Ctx) error {
	user, err := h.auth.Register(c.UserContext(),
		formValue(c, "name"),
		formValue(c, "email"),
		formValue(c, "password"),
		formValue(c, "confirm_password"),
	)
	if err != nil {
		return err
	}
	if err := h.gate.Establish(c, user); err != nil {
		return apperrors.NewPersistenceError("Registration failed. Please try again.", err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK("Account created successfully!", sessionUser(user)))
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	user, err := h.auth.Login(c.UserContext(),
		formValue(c, "email"),
		formValue(c, "password"),
	)
	if err != nil {
		return err
	}
	if err := h.gate.Establish(c, user); err != nil {
		return apperrors.NewPersistenceError("Login failed. Please try again.", err)
	}
	return c.JSON(dto.OK("Login successful!", sessionUser(user)))
}

// logout succeeds whether or not a session exists.
func (h *AuthHandler) logout(c *fiber.Ctx) error {
	h.gate.Destroy(c)
	return c.JSON(dto.OK("Logged out successfully", nil))
}

// checkSession reports the bound identity without side effects. The
// no-session case is a plain negative report, not an error.
func (h *AuthHandler) checkSession(c *fiber.Ctx) error {
	sess, ok, err := h.gate.Resolve(c)
	if err != nil {
		return apperrors.NewPersistenceError("Session lookup failed. Please try again.", err)
	}
	if !ok {
		return c.JSON(dto.Fail("No active session"))
	}
	return c.JSON(dto.OK("Session active", dto.SessionUser{
		UserID: sess.UserID,
		Name:   sess.UserName,
		Email:  sess.UserEmail,
	}))
}

func (h *AuthHandler) resetRequest(c *fiber.Ctx) error {
	token, err := h.auth.RequestPasswordReset(c.UserContext(), formValue(c, "email"))
	if err != nil {
		return err
	}
	return c.JSON(dto.OK("Password reset token issued", dto.PasswordReset{
		Token:     token.Token,
		ExpiresAt: token.ExpiresAt,
	}))
}

func (h *AuthHandler) resetConfirm(c *fiber.Ctx) error {
	err := h.auth.ConfirmPasswordReset(c.UserContext(),
		formValue(c, "token"),
		formValue(c, "password"),
		formValue(c, "confirm_password"),
	)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK("Password updated successfully", nil))
}

func sessionUser(user *domain.User) dto.SessionUser {
	return dto.SessionUser{UserID: user.ID, Name: user.Name, Email: user.Email}
}
