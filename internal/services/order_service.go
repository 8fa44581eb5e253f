package services

import (
	"context"

	"urbankicks/internal/checkout"
	"urbankicks/internal/domain"
	"urbankicks/internal/events"
	applog "urbankicks/internal/log"
)

type OrderService struct {
	State     *State
	Builder   *checkout.Builder
	Publisher events.Publisher
}

func NewOrderService(st *State, b *checkout.Builder, pub events.Publisher) *OrderService {
	if b == nil {
		b = &checkout.Builder{}
	}
	if b.OnSaveError == nil {
		b.OnSaveError = func(err error) {
			applog.Warn(nil, "orders.persist.fail", err, nil)
		}
	}
	if pub == nil {
		pub = events.Nop{}
	}
	return &OrderService{State: st, Builder: b, Publisher: pub}
}

// Place checks out the session's cart. Validation errors come back as
// checkout.ErrEmptyCart or *checkout.MissingFieldError with nothing changed.
func (s *OrderService) Place(ctx context.Context, sessionID string, form checkout.Form) (domain.Order, error) {
	var (
		order domain.Order
		err   error
	)
	s.State.do(func() {
		c, ok := s.State.Carts.Peek(sessionID)
		if !ok {
			err = checkout.ErrEmptyCart
			return
		}
		var saver checkout.Saver
		if s.State.Gateway != nil {
			saver = s.State.Gateway
		}
		order, err = s.Builder.Submit(form, c, s.State.Catalog, saver)
		if err == nil {
			s.State.Carts.Drop(sessionID)
		}
	})
	if err != nil {
		return domain.Order{}, err
	}

	if perr := s.Publisher.PublishOrder(ctx, order); perr != nil {
		applog.Warn(nil, "orders.publish.fail", perr, map[string]any{"order_id": order.ID})
	}
	return order, nil
}

// History returns every recorded order, oldest first.
func (s *OrderService) History() []domain.Order {
	var out []domain.Order
	s.State.do(func() { out = s.State.Catalog.Orders() })
	return out
}
