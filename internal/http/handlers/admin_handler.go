package handlers

import (
	"slices"

	"github.com/gofiber/fiber/v2"

	"urbankicks/internal/domain"
	"urbankicks/internal/services"
)

type AdminHandler struct {
	Order *services.OrderService
}

// GET /api/v1/admin/orders, newest first.
func (h *AdminHandler) Orders(c *fiber.Ctx) error {
	orders := h.Order.History()
	slices.Reverse(orders)
	if orders == nil {
		orders = []domain.Order{}
	}
	return c.JSON(fiber.Map{"orders": orders, "count": len(orders)})
}
