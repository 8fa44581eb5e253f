package services

import (
	"github.com/go-faster/errors"

	"urbankicks/internal/cart"
	"urbankicks/internal/domain"
)

var ErrProductNotFound = errors.New("product not found")

type CartService struct {
	State *State
}

func NewCartService(st *State) *CartService {
	return &CartService{State: st}
}

type CartLineView struct {
	domain.CartLine
	Subtotal string `json:"subtotal"`
}

type CartView struct {
	Lines         []CartLineView `json:"lines"`
	TotalQuantity int            `json:"totalQuantity"`
	Total         string         `json:"total"`
	Summary       string         `json:"summary"`
}

func viewOf(c *cart.Cart) CartView {
	lines := c.Lines()
	cv := CartView{
		Lines:         make([]CartLineView, 0, len(lines)),
		TotalQuantity: c.TotalQuantity(),
		Total:         cart.FormatPrice(c.GrandTotal()),
		Summary:       c.Summary(),
	}
	for _, l := range lines {
		cv.Lines = append(cv.Lines, CartLineView{CartLine: l, Subtotal: cart.FormatPrice(cart.LineSubtotal(l))})
	}
	return cv
}

// Add puts one unit of the product into the session's cart.
func (s *CartService) Add(sessionID string, productID int) (CartView, error) {
	var (
		cv  CartView
		err error
	)
	s.State.do(func() {
		p, ok := s.State.Catalog.Product(productID)
		if !ok {
			err = ErrProductNotFound
			return
		}
		c := s.State.Carts.For(sessionID)
		c.Add(p)
		cv = viewOf(c)
	})
	return cv, err
}

// Remove drops the line at index; removed is false when index was out of
// range or the session has no cart yet.
func (s *CartService) Remove(sessionID string, index int) (cv CartView, removed bool) {
	s.State.do(func() {
		c, ok := s.State.Carts.Peek(sessionID)
		if !ok {
			cv = viewOf(cart.New())
			return
		}
		removed = c.RemoveAt(index)
		cv = viewOf(c)
	})
	return cv, removed
}

func (s *CartService) View(sessionID string) CartView {
	var cv CartView
	s.State.do(func() {
		c, ok := s.State.Carts.Peek(sessionID)
		if !ok {
			c = cart.New()
		}
		cv = viewOf(c)
	})
	return cv
}
