package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const sidCookie = "sid"

// ensureSID returns the visitor's session id, issuing a cookie on first visit.
func ensureSID(c *fiber.Ctx) string {
	if sid, ok := c.Locals("sid").(string); ok && sid != "" {
		return sid
	}
	sid := c.Cookies(sidCookie)
	if _, err := uuid.Parse(sid); err != nil {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     sidCookie,
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   c.Protocol() == "https",
		})
	}
	c.Locals("sid", sid)
	return sid
}
