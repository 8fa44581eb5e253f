// Package cart implements the visitor's transient shopping cart.
package cart

import (
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"urbankicks/internal/domain"
)

// Cart keeps at most one line per product, in insertion order.
type Cart struct {
	lines []domain.CartLine
}

func New() *Cart { return &Cart{} }

// Add bumps the product's line by one, creating it on first add.
func (c *Cart) Add(p domain.Product) {
	for i := range c.lines {
		if c.lines[i].ProductID == p.ID {
			c.lines[i].Qty++
			return
		}
	}
	c.lines = append(c.lines, domain.CartLine{
		ProductID: p.ID,
		Name:      p.Name,
		Brand:     p.Brand,
		Price:     p.Price,
		Image:     p.PrimaryImage(),
		Qty:       1,
	})
}

// RemoveAt drops the line at position i. Positions shift after every
// removal, so callers must re-read Lines before removing again.
func (c *Cart) RemoveAt(i int) bool {
	if i < 0 || i >= len(c.lines) {
		return false
	}
	c.lines = slices.Delete(c.lines, i, i+1)
	return true
}

func (c *Cart) Lines() []domain.CartLine { return slices.Clone(c.lines) }

func (c *Cart) Empty() bool { return len(c.lines) == 0 }

func (c *Cart) TotalQuantity() int {
	n := 0
	for _, l := range c.lines {
		n += l.Qty
	}
	return n
}

func (c *Cart) Clear() { c.lines = nil }

// LineSubtotal is price × qty rounded to cents. The line itself keeps the
// unrounded price.
func LineSubtotal(l domain.CartLine) decimal.Decimal {
	return decimal.NewFromFloat(l.Price).Mul(decimal.NewFromInt(int64(l.Qty))).Round(2)
}

func (c *Cart) GrandTotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(LineSubtotal(l))
	}
	return total.Round(2)
}

// FormatPrice renders an amount with two decimals.
func FormatPrice(d decimal.Decimal) string { return d.StringFixed(2) }

// Summary is the plain-text recap shown next to the checkout form.
func (c *Cart) Summary() string {
	if len(c.lines) == 0 {
		return "Sin productos."
	}
	rows := make([]string, 0, len(c.lines))
	for _, l := range c.lines {
		rows = append(rows, fmt.Sprintf("%s (%s) x%d - %s €", l.Name, l.Brand, l.Qty, FormatPrice(LineSubtotal(l))))
	}
	return strings.Join(rows, "\n")
}
