// Package catalog holds the product list and the order history.
package catalog

import (
	"fmt"
	"iter"
	"slices"

	"github.com/go-faster/errors"

	"urbankicks/internal/domain"
	"urbankicks/internal/persist"
)

// LoadError reports a catalog that could not be fetched or did not validate.
// The store keeps its previous contents whenever one is returned.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Source == "" {
		return "catalog load: " + e.Err.Error()
	}
	return fmt.Sprintf("catalog load %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Store is not safe for concurrent use; services.State serializes access.
type Store struct {
	products []domain.Product
	orders   []domain.Order
}

func NewStore() *Store {
	return &Store{}
}

// Load replaces products and orders wholesale. Nothing is applied unless
// every product validates.
func (s *Store) Load(doc domain.Document) error {
	if err := validateProducts(doc.Products); err != nil {
		return &LoadError{Err: err}
	}
	s.products = slices.Clone(doc.Products)
	s.orders = slices.Clone(doc.Orders)
	return nil
}

func validateProducts(products []domain.Product) error {
	seen := make(map[int]struct{}, len(products))
	for i, p := range products {
		switch {
		case p.ID <= 0:
			return errors.Errorf("product #%d: missing id", i)
		case p.Brand == "":
			return errors.Errorf("product %d: missing brand", p.ID)
		case p.Name == "":
			return errors.Errorf("product %d: missing name", p.ID)
		case p.Price < 0:
			return errors.Errorf("product %d: negative price", p.ID)
		case len(p.Images) == 0:
			return errors.Errorf("product %d: no images", p.ID)
		}
		if _, dup := seen[p.ID]; dup {
			return errors.Errorf("product %d: duplicate id", p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	return nil
}

// RestoreOrders adopts the persisted history only when it was loaded cleanly.
// It reports whether the order list was replaced.
func (s *Store) RestoreOrders(r persist.Result) bool {
	if r.Status != persist.Loaded {
		return false
	}
	s.orders = slices.Clone(r.Orders)
	return true
}

func (s *Store) AppendOrder(o domain.Order) {
	s.orders = append(s.orders, o)
}

// ProductsByBrand yields the products of one brand in catalog order. The
// sequence is recomputed from the full list every time it is ranged over.
func (s *Store) ProductsByBrand(brand string) iter.Seq[domain.Product] {
	return func(yield func(domain.Product) bool) {
		for _, p := range s.products {
			if p.Brand != brand {
				continue
			}
			if !yield(p) {
				return
			}
		}
	}
}

// DistinctBrands lists brands in order of first appearance.
func (s *Store) DistinctBrands() []string {
	seen := make(map[string]struct{})
	brands := []string{}
	for _, p := range s.products {
		if _, ok := seen[p.Brand]; ok {
			continue
		}
		seen[p.Brand] = struct{}{}
		brands = append(brands, p.Brand)
	}
	return brands
}

func (s *Store) Product(id int) (domain.Product, bool) {
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

func (s *Store) Products() []domain.Product { return slices.Clone(s.products) }

func (s *Store) Orders() []domain.Order { return slices.Clone(s.orders) }
