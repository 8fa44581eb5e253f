package catalog_test

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"urbankicks/internal/catalog"
	"urbankicks/internal/domain"
	"urbankicks/internal/persist"
)

func sampleDoc() domain.Document {
	return domain.Document{
		Products: []domain.Product{
			{ID: 1, Brand: "Acme", Name: "Runner", Price: 59.99, Images: []string{"a.png"}},
			{ID: 2, Brand: "Nova", Name: "Court", Price: 80, Images: []string{"b.png", "b2.png"}},
			{ID: 3, Brand: "Acme", Name: "Trail", Price: 120.5, Images: []string{"c.png"}},
		},
	}
}

func loaded(t *testing.T) *catalog.Store {
	t.Helper()
	s := catalog.NewStore()
	require.NoError(t, s.Load(sampleDoc()))
	return s
}

func TestDistinctBrandsFirstOccurrenceOrder(t *testing.T) {
	s := loaded(t)
	assert.Equal(t, []string{"Acme", "Nova"}, s.DistinctBrands())
}

func TestDistinctBrandsEmptyCatalog(t *testing.T) {
	assert.Empty(t, catalog.NewStore().DistinctBrands())
}

func TestProductsByBrandIsRestartable(t *testing.T) {
	s := loaded(t)
	seq := s.ProductsByBrand("Acme")

	first := slices.Collect(seq)
	second := slices.Collect(seq)
	require.Len(t, first, 2)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, first[0].ID)
	assert.Equal(t, 3, first[1].ID)

	assert.Empty(t, slices.Collect(s.ProductsByBrand("Nobody")))
}

func TestProductsByBrandStopsEarly(t *testing.T) {
	s := loaded(t)
	n := 0
	for range s.ProductsByBrand("Acme") {
		n++
		break
	}
	assert.Equal(t, 1, n)
}

func TestLoadRejectsInvalidProductsWithoutPartialApply(t *testing.T) {
	cases := map[string]domain.Product{
		"missing id":     {Brand: "X", Name: "Y", Price: 1, Images: []string{"i"}},
		"missing brand":  {ID: 9, Name: "Y", Price: 1, Images: []string{"i"}},
		"missing name":   {ID: 9, Brand: "X", Price: 1, Images: []string{"i"}},
		"negative price": {ID: 9, Brand: "X", Name: "Y", Price: -1, Images: []string{"i"}},
		"no images":      {ID: 9, Brand: "X", Name: "Y", Price: 1},
		"duplicate id":   {ID: 1, Brand: "X", Name: "Y", Price: 1, Images: []string{"i"}},
	}
	for name, bad := range cases {
		t.Run(name, func(t *testing.T) {
			s := loaded(t)
			doc := sampleDoc()
			doc.Products = append(doc.Products, bad)

			err := s.Load(doc)
			var le *catalog.LoadError
			require.True(t, errors.As(err, &le), "want *LoadError, got %v", err)
			assert.Len(t, s.Products(), 3)
		})
	}
}

func TestRestoreOrdersOnlyWhenLoaded(t *testing.T) {
	s := loaded(t)
	s.AppendOrder(domain.Order{ID: "ORD-1"})

	assert.False(t, s.RestoreOrders(persist.Result{Status: persist.Absent}))
	assert.False(t, s.RestoreOrders(persist.Result{Status: persist.Corrupt, Err: persist.ErrCorrupt}))
	require.Len(t, s.Orders(), 1)

	assert.True(t, s.RestoreOrders(persist.Result{Status: persist.Loaded, Orders: []domain.Order{{ID: "ORD-7"}, {ID: "ORD-8"}}}))
	orders := s.Orders()
	require.Len(t, orders, 2)
	assert.Equal(t, "ORD-7", orders[0].ID)
}

func TestOrdersReturnsCopy(t *testing.T) {
	s := loaded(t)
	s.AppendOrder(domain.Order{ID: "ORD-1"})
	got := s.Orders()
	got[0].ID = "changed"
	assert.Equal(t, "ORD-1", s.Orders()[0].ID)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.json")
	raw := `{"productos":[{"id":1,"marca":"Acme","nombre":"Runner","precio":59.99,"imagenes":["a.png"]}],"pedidos":[]}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	s := catalog.NewStore()
	require.NoError(t, s.LoadFrom(context.Background(), catalog.SourceFor(path)))
	p, ok := s.Product(1)
	require.True(t, ok)
	assert.Equal(t, "Runner", p.Name)
	assert.Equal(t, "a.png", p.PrimaryImage())
}

func TestLoadFromFailureKeepsPriorState(t *testing.T) {
	dir := t.TempDir()
	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte(`{"productos": [`), 0o644))

	s := loaded(t)
	for _, src := range []catalog.Source{
		catalog.SourceFor(filepath.Join(dir, "missing.json")),
		catalog.SourceFor(broken),
	} {
		err := s.LoadFrom(context.Background(), src)
		var le *catalog.LoadError
		require.True(t, errors.As(err, &le), "want *LoadError, got %v", err)
		assert.Equal(t, src.String(), le.Source)
		assert.Equal(t, []string{"Acme", "Nova"}, s.DistinctBrands())
	}
}

func TestSourceFor(t *testing.T) {
	assert.IsType(t, catalog.HTTPSource{}, catalog.SourceFor("https://cdn.example/data.json"))
	assert.IsType(t, catalog.FileSource{}, catalog.SourceFor("./data.json"))
}
