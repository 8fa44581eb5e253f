package handlers

import (
	"strconv"

	"github.com/go-faster/errors"
	"github.com/gofiber/fiber/v2"

	applog "urbankicks/internal/log"
	"urbankicks/internal/services"
	"urbankicks/internal/validate"
)

type CartHandler struct {
	Cart *services.CartService
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	cv := h.Cart.View(ensureSID(c))
	return render(c, "cart", fiber.Map{"Cart": cv, "CartCount": cv.TotalQuantity})
}

// POST /cart (form productId)
func (h *CartHandler) Add(c *fiber.Ctx) error {
	sid := ensureSID(c)
	id, ok := validate.ProductID(c.FormValue("productId"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "productId"})
		return c.Status(fiber.StatusBadRequest).SendString("missing productId")
	}
	if _, err := h.Cart.Add(sid, id); err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			return notFound(c, "This item is no longer available")
		}
		return err
	}
	applog.Audit(c, "cart.add", map[string]any{"product": id})
	return c.Redirect("/cart")
}

// POST /cart/remove (form index)
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	sid := ensureSID(c)
	if idx, ok := validate.Index(c.FormValue("index")); ok {
		if _, removed := h.Cart.Remove(sid, idx); removed {
			applog.Audit(c, "cart.remove", map[string]any{"index": idx})
		}
	}
	return c.Redirect("/cart")
}

// GET /api/v1/cart
func (h *CartHandler) ViewJSON(c *fiber.Ctx) error {
	return c.JSON(h.Cart.View(ensureSID(c)))
}

type addRequest struct {
	ProductID int `json:"productId" form:"productId"`
}

// POST /api/v1/cart
func (h *CartHandler) AddJSON(c *fiber.Ctx) error {
	sid := ensureSID(c)
	var req addRequest
	if err := c.BodyParser(&req); err != nil || req.ProductID < 1 {
		applog.Security(c, "validation.fail", map[string]any{"field": "productId"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing productId"})
	}
	cv, err := h.Cart.Add(sid, req.ProductID)
	if errors.Is(err, services.ErrProductNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
	}
	if err != nil {
		return err
	}
	applog.Audit(c, "cart.add", map[string]any{"product": req.ProductID})
	return c.JSON(cv)
}

// DELETE /api/v1/cart/:index
func (h *CartHandler) RemoveJSON(c *fiber.Ctx) error {
	sid := ensureSID(c)
	idx, ok := validate.Index(c.Params("index"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid index"})
	}
	cv, removed := h.Cart.Remove(sid, idx)
	if !removed {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no cart line at index " + strconv.Itoa(idx)})
	}
	applog.Audit(c, "cart.remove", map[string]any{"index": idx})
	return c.JSON(cv)
}

// GET /api/v1/checkout/summary
func (h *CartHandler) SummaryJSON(c *fiber.Ctx) error {
	cv := h.Cart.View(ensureSID(c))
	return c.JSON(fiber.Map{"summary": cv.Summary, "total": cv.Total})
}
