package handlers

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	applog "urbankicks/internal/log"
	"urbankicks/internal/services"
	"urbankicks/internal/validate"
)

type CatalogHandler struct {
	Catalog *services.CatalogService
}

// Home lists the brands.
func (h *CatalogHandler) Home(c *fiber.Ctx) error {
	return render(c, "home", fiber.Map{"Brands": h.Catalog.Brands()})
}

func (h *CatalogHandler) brandParam(c *fiber.Ctx) (string, bool) {
	raw, err := url.PathUnescape(c.Params("brand"))
	if err != nil {
		return "", false
	}
	brand, ok := validate.Brand(raw)
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "brand"})
	}
	return brand, ok
}

// Brand lists one brand's models.
func (h *CatalogHandler) Brand(c *fiber.Ctx) error {
	brand, ok := h.brandParam(c)
	if !ok {
		return notFound(c, "Brand not found")
	}
	return render(c, "products", fiber.Map{"Brand": brand, "Products": h.Catalog.ProductsByBrand(brand)})
}

func (h *CatalogHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ProductID(c.Params("id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "product"})
		return notFound(c, "This item is no longer available")
	}
	p, found := h.Catalog.GetProduct(id)
	if !found {
		return notFound(c, "This item is no longer available")
	}
	return render(c, "product", fiber.Map{"P": p})
}

// GET /api/v1/brands
func (h *CatalogHandler) BrandsJSON(c *fiber.Ctx) error {
	return c.JSON(h.Catalog.Brands())
}

// GET /api/v1/brands/:brand/products
func (h *CatalogHandler) BrandProductsJSON(c *fiber.Ctx) error {
	brand, ok := h.brandParam(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid brand"})
	}
	return c.JSON(h.Catalog.ProductsByBrand(brand))
}

// GET /api/v1/products/:id
func (h *CatalogHandler) ProductJSON(c *fiber.Ctx) error {
	id, ok := validate.ProductID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product id"})
	}
	p, found := h.Catalog.GetProduct(id)
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
	}
	return c.JSON(p)
}
