package persist_test

import (
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"urbankicks/internal/domain"
	"urbankicks/internal/persist"
)

func sampleOrders() []domain.Order {
	return []domain.Order{
		{
			ID:        "ORD-1700000000000",
			CreatedAt: time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC),
			Customer:  domain.Customer{Name: "Jo", Email: "j@x.com", Phone: "555", City: "NYC"},
			Lines:     []domain.OrderLine{{ProductID: 1, Qty: 2, UnitPrice: 59.99}},
			Status:    domain.StatusPending,
		},
		{
			ID:        "ORD-1700000000001",
			CreatedAt: time.Date(2026, 10, 2, 8, 30, 0, 0, time.UTC),
			Customer:  domain.Customer{Name: "Al", Email: "a@y.com", Phone: "1", City: "LA"},
			Lines:     []domain.OrderLine{{ProductID: 3, Qty: 1, UnitPrice: 120.5}, {ProductID: 1, Qty: 1, UnitPrice: 59.99}},
			Status:    domain.StatusPending,
		},
	}
}

func TestSaveRestoreRoundTrip(t *testing.T) {
	for name, orders := range map[string][]domain.Order{
		"empty":     {},
		"nil":       nil,
		"populated": sampleOrders(),
	} {
		t.Run(name, func(t *testing.T) {
			g := persist.NewGateway(persist.NewMemoryKV(), "")
			require.NoError(t, g.Save(orders))

			res := g.Restore()
			require.Equal(t, persist.Loaded, res.Status)
			require.NoError(t, res.Err)
			require.Len(t, res.Orders, len(orders))
			for i := range orders {
				assert.Equal(t, orders[i].ID, res.Orders[i].ID)
				assert.True(t, orders[i].CreatedAt.Equal(res.Orders[i].CreatedAt))
				assert.Equal(t, orders[i].Customer, res.Orders[i].Customer)
				assert.Equal(t, orders[i].Lines, res.Orders[i].Lines)
				assert.Equal(t, orders[i].Status, res.Orders[i].Status)
			}
		})
	}
}

func TestRestoreAbsent(t *testing.T) {
	g := persist.NewGateway(persist.NewMemoryKV(), "")
	res := g.Restore()
	assert.Equal(t, persist.Absent, res.Status)
	assert.NoError(t, res.Err)
}

func TestRestoreCorrupt(t *testing.T) {
	for name, raw := range map[string]string{
		"garbage":   "{{not json",
		"object":    `{"id":"ORD-1"}`,
		"null":      "null",
		"number":    "42",
		"bad array": `[{"id": 5}]`,
		"truncated": `[{"id":"ORD-1"`,
	} {
		t.Run(name, func(t *testing.T) {
			kv := persist.NewMemoryKV()
			require.NoError(t, kv.Set(persist.DefaultKey, raw))

			res := persist.NewGateway(kv, "").Restore()
			assert.Equal(t, persist.Corrupt, res.Status)
			assert.True(t, errors.Is(res.Err, persist.ErrCorrupt))
			assert.Nil(t, res.Orders)
		})
	}
}

func TestSaveFailureIsReported(t *testing.T) {
	kv := persist.NewMemoryKV()
	kv.SetErr = errors.New("quota exceeded")
	g := persist.NewGateway(kv, "custom")

	assert.Error(t, g.Save(sampleOrders()))
	assert.Equal(t, persist.Absent, g.Restore().Status)
}

func TestWireFormat(t *testing.T) {
	kv := persist.NewMemoryKV()
	g := persist.NewGateway(kv, "")
	require.NoError(t, g.Save(sampleOrders()[:1]))

	raw, ok, err := kv.Get(persist.DefaultKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, raw, `"id_producto":1`)
	assert.Contains(t, raw, `"cantidad":2`)
	assert.Contains(t, raw, `"precio_unitario":59.99`)
	assert.Contains(t, raw, `"estado":"pendiente"`)
	assert.Contains(t, raw, `"telefono":"555"`)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "loaded", persist.Loaded.String())
	assert.Equal(t, "absent", persist.Absent.String())
	assert.Equal(t, "corrupt", persist.Corrupt.String())
}
