package session

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tfiz/storefront-go/internal/cart"
	"github.com/tfiz/storefront-go/internal/catalog"
	"github.com/tfiz/storefront-go/internal/checkout"
	"github.com/tfiz/storefront-go/internal/discount"
	"github.com/tfiz/storefront-go/internal/unlock"
)

// Session is the root state object for one visitor: their cart, discount
// standing and checkout flow. The domain model is single-actor, so each
// session serializes its own mutations with one mutex; the HTTP layer locks
// around every access.
type Session struct {
	ID string

	mu     sync.Mutex
	Cart   *cart.Cart
	Roller *discount.Roller
	Flow   *checkout.Flow
}

func (s *Session) Lock()   { s.mu.Lock() }
func (s *Session) Unlock() { s.mu.Unlock() }

// Manager creates and resolves sessions. Discount state is volatile by
// design: it lives and dies with the session, never the store.
type Manager struct {
	catalog   *catalog.Store
	history   *unlock.Registry
	publisher checkout.OrderPublisher
	logger    *zap.Logger
	rolls     discount.Source

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager(cat *catalog.Store, history *unlock.Registry, publisher checkout.OrderPublisher, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		catalog:   cat,
		history:   history,
		publisher: publisher,
		logger:    logger,
		sessions:  make(map[string]*Session),
	}
}

// SetRollSource overrides the die used by new sessions' discount rollers.
func (m *Manager) SetRollSource(src discount.Source) {
	m.rolls = src
}

// GetOrCreate resolves the session for id, lazily creating one. An empty or
// unknown id yields a fresh session with a new id.
func (m *Manager) GetOrCreate(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id != "" {
		if s, ok := m.sessions[id]; ok {
			return s
		}
	}

	s := m.newSessionLocked()
	m.sessions[s.ID] = s
	return s
}

func (m *Manager) newSessionLocked() *Session {
	id := uuid.NewString()
	c := cart.New(m.catalog)
	roller := discount.NewRoller(m.rolls)
	flow := checkout.NewFlow(id, c, m.catalog, roller, m.history, m.publisher, m.logger)

	return &Session{
		ID:     id,
		Cart:   c,
		Roller: roller,
		Flow:   flow,
	}
}
