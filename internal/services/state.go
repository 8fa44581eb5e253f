package services

import (
	"context"
	"sync"

	"urbankicks/internal/cart"
	"urbankicks/internal/catalog"
	applog "urbankicks/internal/log"
	"urbankicks/internal/persist"
)

// State is the application state shared by every service. All reads and
// mutations go through its lock, so user actions are applied one at a time
// in arrival order.
type State struct {
	mu      sync.Mutex
	Catalog *catalog.Store
	Carts   *cart.Sessions
	Gateway *persist.Gateway
}

func NewState(gw *persist.Gateway) *State {
	return &State{
		Catalog: catalog.NewStore(),
		Carts:   cart.NewSessions(),
		Gateway: gw,
	}
}

func (s *State) do(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
}

// Start loads the catalog and then restores persisted orders over it. Both
// steps degrade instead of failing: a bad catalog leaves the store empty and
// bad persisted orders leave the history as the catalog supplied it.
func (s *State) Start(ctx context.Context, src catalog.Source) {
	s.do(func() {
		if err := s.Catalog.LoadFrom(ctx, src); err != nil {
			applog.Error(nil, "catalog.load.fail", err, map[string]any{"source": src.String()})
		} else {
			applog.Info(nil, "catalog.load", map[string]any{
				"source":   src.String(),
				"products": len(s.Catalog.Products()),
				"brands":   len(s.Catalog.DistinctBrands()),
			})
		}

		if s.Gateway == nil {
			return
		}
		res := s.Gateway.Restore()
		switch res.Status {
		case persist.Loaded:
			s.Catalog.RestoreOrders(res)
			applog.Info(nil, "orders.restore", map[string]any{"orders": len(res.Orders)})
		case persist.Corrupt:
			applog.Warn(nil, "orders.restore.corrupt", res.Err, nil)
		default:
			if res.Err != nil {
				applog.Warn(nil, "orders.restore.unavailable", res.Err, nil)
			}
		}
	})
}
