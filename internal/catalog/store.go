package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/tfiz/storefront-go/internal/kv"
)

// PersistKey is the key the whole catalog is stored under. The value is the
// full ordered item list, replaced on every mutation.
const PersistKey = "catalog"

// Store owns the ordered catalog item list. Ordering is most-recent-first:
// Publish prepends.
type Store struct {
	mu    sync.Mutex
	items []Item
	kv    kv.Store
	now   func() time.Time
}

// NewStore loads the persisted catalog, falling back to the built-in seed
// when nothing has been stored yet.
func NewStore(ctx context.Context, store kv.Store) (*Store, error) {
	s := &Store{kv: store, now: time.Now}

	raw, err := store.Get(ctx, PersistKey)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			s.items = seedItems()
			return s, nil
		}
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	if err := json.Unmarshal(raw, &s.items); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return s, nil
}

// List returns a copy of all items in catalog order.
func (s *Store) List() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyItems()
}

// ListByCategory filters by the tagged category variant. The "All" sentinel
// returns everything; an unmatched category yields an empty slice.
func (s *Store) ListByCategory(cat Category) []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Item, 0, len(s.items))
	for _, it := range s.items {
		if it.Category.Matches(cat) {
			out = append(out, it)
		}
	}
	return out
}

// Get returns the item with the given id.
func (s *Store) Get(id string) (Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, it := range s.items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// ToggleAvailability flips the availability flag of the item with that id
// and persists the catalog. An unknown id is a silent no-op, not an error.
func (s *Store) ToggleAvailability(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Availability = !s.items[i].Availability
			return s.persistLocked(ctx)
		}
	}
	return nil
}

// Publish assigns a timestamp-derived id to the draft, prepends it and
// persists the catalog. Name/price validation belongs to the admin boundary;
// the store does not re-validate.
func (s *Store) Publish(ctx context.Context, draft Item) (Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ms := s.now().UnixMilli()
	id := fmt.Sprintf("new-%d", ms)
	for s.existsLocked(id) {
		ms++
		id = fmt.Sprintf("new-%d", ms)
	}
	draft.ID = id

	s.items = append([]Item{draft}, s.items...)
	if err := s.persistLocked(ctx); err != nil {
		s.items = s.items[1:]
		return Item{}, err
	}
	return draft, nil
}

func (s *Store) existsLocked(id string) bool {
	for _, it := range s.items {
		if it.ID == id {
			return true
		}
	}
	return false
}

func (s *Store) copyItems() []Item {
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) persistLocked(ctx context.Context) error {
	raw, err := json.Marshal(s.items)
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	if err := s.kv.Put(ctx, PersistKey, raw); err != nil {
		return fmt.Errorf("persist catalog: %w", err)
	}
	return nil
}
