// Package persist echoes the order history into a key-value store.
//
// The store is best-effort: a failed write never rolls back an order that is
// already in memory, and an unreadable value is reported as Corrupt rather
// than raised, so startup can always continue with an empty history.
package persist

import (
	"encoding/json"
	"strings"

	"github.com/go-faster/errors"

	"urbankicks/internal/domain"
)

// DefaultKey is the key the order history lives under.
const DefaultKey = "urbankicks_orders"

// ErrCorrupt marks a persisted value that is not a well-formed order sequence.
var ErrCorrupt = errors.New("persisted orders are corrupt")

// KV is the opaque key-value store the gateway writes through.
type KV interface {
	// Get returns the value under key and whether it was present.
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

type Status int

const (
	Absent Status = iota
	Loaded
	Corrupt
)

func (s Status) String() string {
	switch s {
	case Loaded:
		return "loaded"
	case Corrupt:
		return "corrupt"
	default:
		return "absent"
	}
}

// Result is the outcome of Restore. Orders is only meaningful when Status is
// Loaded; Err carries the cause for Corrupt (and for a failed read).
type Result struct {
	Status Status
	Orders []domain.Order
	Err    error
}

type Gateway struct {
	KV  KV
	Key string
}

func NewGateway(kv KV, key string) *Gateway {
	if key == "" {
		key = DefaultKey
	}
	return &Gateway{KV: kv, Key: key}
}

// Save serializes the full order list under the gateway key.
func (g *Gateway) Save(orders []domain.Order) error {
	if orders == nil {
		orders = []domain.Order{}
	}
	b, err := json.Marshal(orders)
	if err != nil {
		return errors.Wrap(err, "encode orders")
	}
	if err := g.KV.Set(g.Key, string(b)); err != nil {
		return errors.Wrapf(err, "write %q", g.Key)
	}
	return nil
}

// Restore reads the order history back. It never fails: every problem is
// folded into the returned Result.
func (g *Gateway) Restore() Result {
	raw, ok, err := g.KV.Get(g.Key)
	if err != nil {
		return Result{Status: Absent, Err: errors.Wrapf(err, "read %q", g.Key)}
	}
	if !ok || raw == "" {
		return Result{Status: Absent}
	}
	// Only a JSON array counts as a sequence; null and objects do not.
	if !strings.HasPrefix(strings.TrimSpace(raw), "[") {
		return Result{Status: Corrupt, Err: errors.Wrap(ErrCorrupt, "not a sequence")}
	}
	var orders []domain.Order
	if err := json.Unmarshal([]byte(raw), &orders); err != nil {
		return Result{Status: Corrupt, Err: errors.Wrap(ErrCorrupt, err.Error())}
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return Result{Status: Loaded, Orders: orders}
}
