package session

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/tickethub/internal/domain"
	apperrors "github.com/spec-kit/tickethub/pkg/util"
)

const sessionKey = "active_session"

// Gate resolves the session cookie on inbound requests and manages the
// cookie lifecycle on login and logout.
type Gate struct {
	tokens       *TokenManager
	store        Store
	cookieName   string
	cookieSecure bool
}

// NewGate constructs the gate.
func NewGate(tokens *TokenManager, store Store, cookieName string, cookieSecure bool) *Gate {
	return &Gate{tokens: tokens, store: store, cookieName: cookieName, cookieSecure: cookieSecure}
}

// Require rejects requests without an active session before any handler
// logic runs. The message matches the envelope contract for protected
// endpoints.
func (g *Gate) Require(c *fiber.Ctx) error {
	sess, ok, err := g.Resolve(c)
	if err != nil {
		return apperrors.NewPersistenceError("Session lookup failed. Please try again.", err)
	}
	if !ok {
		return apperrors.NewUnauthorized("Unauthorized")
	}
	c.Locals(sessionKey, sess)
	return c.Next()
}

// Resolve looks up the session named by the request cookie. Missing
// cookies, unparsable tokens and destroyed or expired records all resolve
// to no session; a store fault is reported as an error so it does not
// masquerade as a logged-out user.
func (g *Gate) Resolve(c *fiber.Ctx) (*domain.Session, bool, error) {
	cookie := c.Cookies(g.cookieName)
	if cookie == "" {
		return nil, false, nil
	}
	sid, err := g.tokens.Parse(cookie)
	if err != nil {
		return nil, false, nil
	}
	sess, err := g.store.Get(c.Context(), sid)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return sess, true, nil
}

// Establish creates a server-side record for the user and sets the signed
// cookie on the response.
func (g *Gate) Establish(c *fiber.Ctx, user *domain.User) error {
	sess := &domain.Session{
		UserID:    user.ID,
		UserName:  user.Name,
		UserEmail: user.Email,
	}
	if err := g.store.Create(c.Context(), sess); err != nil {
		return err
	}

	token, expiresAt, err := g.tokens.Issue(sess.ID)
	if err != nil {
		_ = g.store.Delete(c.Context(), sess.ID)
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     g.cookieName,
		Value:    token,
		Expires:  expiresAt,
		HTTPOnly: true,
		Secure:   g.cookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
	return nil
}

// Destroy deletes the session record (if any) and expires the cookie.
// Safe to call with no active session.
func (g *Gate) Destroy(c *fiber.Ctx) {
	if cookie := c.Cookies(g.cookieName); cookie != "" {
		if sid, err := g.tokens.Parse(cookie); err == nil {
			_ = g.store.Delete(c.Context(), sid)
		}
	}

	c.Cookie(&fiber.Cookie{
		Name:     g.cookieName,
		Value:    "",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   g.cookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}

// FromContext retrieves the session placed by Require.
func FromContext(c *fiber.Ctx) (*domain.Session, bool) {
	val := c.Locals(sessionKey)
	if val == nil {
		return nil, false
	}
	sess, ok := val.(*domain.Session)
	return sess, ok
}
