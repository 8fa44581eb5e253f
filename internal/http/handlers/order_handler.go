package handlers

import (
	"github.com/go-faster/errors"
	"github.com/gofiber/fiber/v2"

	"urbankicks/internal/checkout"
	applog "urbankicks/internal/log"
	"urbankicks/internal/services"
)

const (
	msgEmptyCart   = "Your cart is empty."
	msgMissing     = "Fill in all fields to continue."
	msgOrderPlaced = "Order sent. We will contact you to complete the payment."
)

type OrderHandler struct {
	Cart  *services.CartService
	Order *services.OrderService
}

// checkoutFailure maps a validation error to a user message and the
// offending field, or ok=false for anything unexpected.
func checkoutFailure(err error) (msg, field string, ok bool) {
	var mf *checkout.MissingFieldError
	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		return msgEmptyCart, "", true
	case errors.As(err, &mf):
		return msgMissing, mf.Field, true
	}
	return "", "", false
}

// POST /orders (HTML form)
func (h *OrderHandler) Place(c *fiber.Ctx) error {
	sid := ensureSID(c)
	var form checkout.Form
	if err := c.BodyParser(&form); err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("invalid form")
	}

	order, err := h.Order.Place(c.UserContext(), sid, form)
	if err != nil {
		msg, field, ok := checkoutFailure(err)
		if !ok {
			return err
		}
		applog.Security(c, "order.place.fail", map[string]any{"reason": err.Error(), "field": field})
		cv := h.Cart.View(sid)
		return c.Status(fiber.StatusBadRequest).Render("cart", fiber.Map{
			"Cart": cv, "CartCount": cv.TotalQuantity, "Form": form, "Err": msg,
		})
	}

	applog.Audit(c, "order.place", map[string]any{"order_id": order.ID, "lines": len(order.Lines)})
	cv := h.Cart.View(sid)
	return render(c, "cart", fiber.Map{"Cart": cv, "CartCount": cv.TotalQuantity, "Message": msgOrderPlaced, "Order": order})
}

// POST /api/v1/orders
func (h *OrderHandler) PlaceJSON(c *fiber.Ctx) error {
	sid := ensureSID(c)
	var form checkout.Form
	if err := c.BodyParser(&form); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	order, err := h.Order.Place(c.UserContext(), sid, form)
	if err != nil {
		msg, field, ok := checkoutFailure(err)
		if !ok {
			return err
		}
		applog.Security(c, "order.place.fail", map[string]any{"reason": err.Error(), "field": field})
		body := fiber.Map{"error": msg}
		if field != "" {
			body["field"] = field
		}
		return c.Status(fiber.StatusBadRequest).JSON(body)
	}

	applog.Audit(c, "order.place", map[string]any{"order_id": order.ID, "lines": len(order.Lines)})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"order": order, "message": msgOrderPlaced})
}
