package services

import (
	"slices"

	"urbankicks/internal/domain"
)

type CatalogService struct {
	State *State
}

func NewCatalogService(st *State) *CatalogService {
	return &CatalogService{State: st}
}

func (s *CatalogService) Brands() []string {
	var out []string
	s.State.do(func() { out = s.State.Catalog.DistinctBrands() })
	return out
}

func (s *CatalogService) ProductsByBrand(brand string) []domain.Product {
	out := []domain.Product{}
	s.State.do(func() {
		out = slices.AppendSeq(out, s.State.Catalog.ProductsByBrand(brand))
	})
	return out
}

func (s *CatalogService) GetProduct(id int) (domain.Product, bool) {
	var (
		p  domain.Product
		ok bool
	)
	s.State.do(func() { p, ok = s.State.Catalog.Product(id) })
	return p, ok
}
