// Package checkout turns a cart into an order.
package checkout

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-playground/validator/v10"

	"urbankicks/internal/cart"
	"urbankicks/internal/catalog"
	"urbankicks/internal/domain"
)

// ErrEmptyCart is returned when checkout is attempted with nothing in the cart.
var ErrEmptyCart = errors.New("cart is empty")

// MissingFieldError names the first required field that was blank.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing field %q", e.Field)
}

// Form holds the checkout fields. Only presence is checked: no email or
// phone shape rules apply.
type Form struct {
	Name  string `form:"name" json:"name" validate:"required"`
	Email string `form:"email" json:"email" validate:"required"`
	Phone string `form:"phone" json:"phone" validate:"required"`
	City  string `form:"city" json:"city" validate:"required"`
}

// Trimmed returns the form with surrounding whitespace removed.
func (f Form) Trimmed() Form {
	return Form{
		Name:  strings.TrimSpace(f.Name),
		Email: strings.TrimSpace(f.Email),
		Phone: strings.TrimSpace(f.Phone),
		City:  strings.TrimSpace(f.City),
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("form")
	})
	return v
}

// Validate checks the cart before the fields, so an empty cart always wins.
// Fields are checked in declaration order: name, email, phone, city.
func Validate(f Form, c *cart.Cart) error {
	if c == nil || c.Empty() {
		return ErrEmptyCart
	}
	err := validate.Struct(f.Trimmed())
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return &MissingFieldError{Field: verrs[0].Field()}
	}
	return errors.Wrap(err, "validate checkout form")
}

// Saver persists the full order history; failures are logged, never surfaced.
type Saver interface {
	Save(orders []domain.Order) error
}

// Builder creates orders. Clock defaults to time.Now; tests inject their own.
//
// Order ids are "ORD-" plus the clock's Unix milliseconds, so two orders
// submitted within the same millisecond get the same id.
type Builder struct {
	Clock func() time.Time
	// OnSaveError observes persistence failures. Optional.
	OnSaveError func(error)
}

func (b *Builder) now() time.Time {
	if b.Clock != nil {
		return b.Clock()
	}
	return time.Now()
}

// NewOrderID formats an order id from a timestamp.
func NewOrderID(t time.Time) string {
	return "ORD-" + strconv.FormatInt(t.UnixMilli(), 10)
}

// Submit validates, records the order in the store, persists the history and
// empties the cart. A validation failure leaves cart, store and persisted
// history untouched.
func (b *Builder) Submit(f Form, c *cart.Cart, store *catalog.Store, saver Saver) (domain.Order, error) {
	if err := Validate(f, c); err != nil {
		return domain.Order{}, err
	}
	f = f.Trimmed()

	now := b.now()
	lines := c.Lines()
	order := domain.Order{
		ID:        NewOrderID(now),
		CreatedAt: now.UTC(),
		Customer: domain.Customer{
			Name:  f.Name,
			Email: f.Email,
			Phone: f.Phone,
			City:  f.City,
		},
		Lines:  make([]domain.OrderLine, 0, len(lines)),
		Status: domain.StatusPending,
	}
	for _, l := range lines {
		price := l.Price
		if p, ok := store.Product(l.ProductID); ok {
			price = p.Price
		}
		order.Lines = append(order.Lines, domain.OrderLine{
			ProductID: l.ProductID,
			Qty:       l.Qty,
			UnitPrice: price,
		})
	}

	store.AppendOrder(order)
	if saver != nil {
		if err := saver.Save(store.Orders()); err != nil && b.OnSaveError != nil {
			b.OnSaveError(err)
		}
	}
	c.Clear()
	return order, nil
}
