package handlers

import (
	"github.com/gofiber/fiber/v2"

	"urbankicks/internal/services"
)

// CartBadge exposes the visitor's cart count to every rendered page.
func CartBadge(cart *services.CartService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if sid := c.Cookies(sidCookie); sid != "" {
			c.Locals("CartCount", cart.View(sid).TotalQuantity)
		}
		return c.Next()
	}
}

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if _, ok := data["CartCount"]; !ok {
		n, _ := c.Locals("CartCount").(int)
		data["CartCount"] = n
	}
	return c.Render(tmpl, data)
}

func notFound(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": msg})
}
