package httpapi

import (
	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"

	"github.com/skycatalog/media-portal/internal/auth"
	"github.com/skycatalog/media-portal/pkg/meta"
)

const viewerLocalKey = "viewer"

// NewSessionMW resolves the session cookie into a viewer for downstream
// handlers. Unauthenticated requests pass through with a nil viewer; routes
// that need one use NewRequireAuthMW.
func NewSessionMW(sessions *auth.SessionManager, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := sessions.Get(c.Cookies(cookieName))
		if user != nil {
			c.Locals(viewerLocalKey, user)
			c.Locals(meta.RequestUser, user.Username)
			c.SetUserContext(meta.InjectMetaToContext(
				c.UserContext(),
				map[meta.ContextKey]string{meta.RequestUser: user.Username},
			))
		}
		return c.Next()
	}
}

// NewRequireAuthMW rejects requests that carry no valid session.
func NewRequireAuthMW() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if viewerFromCtx(c) == nil {
			return errx.New(
				"authentication required",
				errx.WithCode(auth.CodeAuthRequired),
				errx.WithType(errx.T_Authentication),
			)
		}
		return c.Next()
	}
}

func viewerFromCtx(c *fiber.Ctx) *auth.User {
	user, _ := c.Locals(viewerLocalKey).(*auth.User)
	return user
}
