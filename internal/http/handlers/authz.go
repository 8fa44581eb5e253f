package handlers

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"golang.org/x/crypto/bcrypt"

	applog "urbankicks/internal/log"
)

type AdminCreds struct {
	User         string
	PasswordHash string // bcrypt
}

// RequireAdmin guards admin routes with basic auth checked against a bcrypt
// hash. Without a configured hash the routes answer 404.
func RequireAdmin(creds AdminCreds) fiber.Handler {
	if creds.PasswordHash == "" {
		return func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
		}
	}
	return basicauth.New(basicauth.Config{
		Realm: "urbankicks admin",
		Authorizer: func(user, pass string) bool {
			userOK := subtle.ConstantTimeCompare([]byte(user), []byte(creds.User)) == 1
			passOK := bcrypt.CompareHashAndPassword([]byte(creds.PasswordHash), []byte(pass)) == nil
			return userOK && passOK
		},
		Unauthorized: func(c *fiber.Ctx) error {
			applog.Security(c, "access.denied.admin", nil)
			c.Set(fiber.HeaderWWWAuthenticate, `Basic realm="urbankicks admin"`)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
		},
	})
}
