package httpapi

import (
	"time"

	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"

	"github.com/skycatalog/media-portal/internal/auth"
)

// AuthHandler serves the CAS login round-trip and the session endpoints.
type AuthHandler struct {
	cas      *auth.CASClient
	sessions *auth.SessionManager
	users    auth.UserStore
	cookie   auth.SessionConfig
}

func NewAuthHandler(cas *auth.CASClient, sessions *auth.SessionManager, users auth.UserStore, cookie auth.SessionConfig) *AuthHandler {
	return &AuthHandler{
		cas:      cas,
		sessions: sessions,
		users:    users,
		cookie:   cookie,
	}
}

// Login redirects the browser to the CAS login page.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	return errx.Wrap(c.Redirect(h.cas.LoginURL(), fiber.StatusFound))
}

// Callback receives the browser back from CAS with a service ticket,
// validates it and establishes a session. Missing or rejected tickets loop
// back to the login page instead of erroring, matching the interactive flow.
func (h *AuthHandler) Callback(c *fiber.Ctx) error {
	ticket := c.Query("ticket")
	if ticket == "" {
		return errx.Wrap(c.Redirect(h.cas.LoginURL(), fiber.StatusFound))
	}

	user, err := h.cas.ValidateTicket(c.UserContext(), ticket)
	if err != nil {
		if e := errx.AsErrorX(err); e.Type() == errx.T_Authentication {
			return errx.Wrap(c.Redirect(h.cas.LoginURL(), fiber.StatusFound))
		}
		return errx.Wrap(err)
	}

	if _, err := h.users.RecordLogin(c.UserContext(), *user); err != nil {
		return errx.Wrap(err)
	}

	token, err := h.sessions.Create(*user)
	if err != nil {
		return errx.Wrap(err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cookie.CookieName,
		Value:    token,
		MaxAge:   int(h.cookie.TTL / time.Second),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return errx.Wrap(c.Redirect("/", fiber.StatusFound))
}

// Me returns the authenticated user for the current session.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	viewer := viewerFromCtx(c)
	if viewer == nil {
		return errx.New(
			"not authenticated",
			errx.WithCode(auth.CodeAuthRequired),
			errx.WithType(errx.T_Authentication),
		)
	}

	return errx.Wrap(c.JSON(viewer))
}

// Logout drops the session and tells the client where to finish the CAS
// single sign-out.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if token := c.Cookies(h.cookie.CookieName); token != "" {
		h.sessions.Delete(token)
	}

	c.ClearCookie(h.cookie.CookieName)

	return errx.Wrap(c.JSON(fiber.Map{"logoutUrl": h.cas.LogoutURL()}))
}
