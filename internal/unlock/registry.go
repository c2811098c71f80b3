package unlock

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/tfiz/storefront-go/internal/catalog"
	"github.com/tfiz/storefront-go/internal/kv"
)

// PersistKey is the key the purchase history is stored under: an ordered
// list of item-id strings, replaced as a whole on every append.
const PersistKey = "purchase_history"

// Registry tracks which catalog items have been purchased across sessions.
// The history is append-only and keeps duplicates: buying the same item
// twice records it twice.
type Registry struct {
	mu  sync.Mutex
	ids []string
	kv  kv.Store
}

// NewRegistry loads the persisted history; an absent key means an empty one.
func NewRegistry(ctx context.Context, store kv.Store) (*Registry, error) {
	r := &Registry{kv: store}

	raw, err := store.Get(ctx, PersistKey)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return r, nil
		}
		return nil, fmt.Errorf("load purchase history: %w", err)
	}

	if err := json.Unmarshal(raw, &r.ids); err != nil {
		return nil, fmt.Errorf("decode purchase history: %w", err)
	}
	return r, nil
}

// Append records the given item ids and persists the whole history.
func (r *Registry) Append(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.ids = append(r.ids, ids...)

	raw, err := json.Marshal(r.ids)
	if err != nil {
		return fmt.Errorf("encode purchase history: %w", err)
	}
	if err := r.kv.Put(ctx, PersistKey, raw); err != nil {
		r.ids = r.ids[:len(r.ids)-len(ids)]
		return fmt.Errorf("persist purchase history: %w", err)
	}
	return nil
}

// IDs returns a copy of the recorded purchase ids in order.
func (r *Registry) IDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, len(r.ids))
	copy(out, r.ids)
	return out
}

// HasUnlockable reports whether any purchased id maps to an item carrying an
// unlockable effect.
func (r *Registry) HasUnlockable(items []catalog.Item) bool {
	_, ok := r.FindUnlockable(items)
	return ok
}

// FindUnlockable returns the first purchased item with an effect, in catalog
// iteration order. A miss is an informational state, not an error.
func (r *Registry) FindUnlockable(items []catalog.Item) (catalog.Item, bool) {
	purchased := make(map[string]struct{})
	for _, id := range r.IDs() {
		purchased[id] = struct{}{}
	}

	for _, it := range items {
		if it.Effect == nil {
			continue
		}
		if _, ok := purchased[it.ID]; ok {
			return it, true
		}
	}
	return catalog.Item{}, false
}
