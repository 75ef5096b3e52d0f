// Package session holds the signed-in identity of a storefront client and
// mirrors it to durable local storage.
//
// Every identity change is written to storage before the call returns. Each
// change also starts one background fetch of the user's document that sets
// the cart count to the length of its cart; a failed fetch is logged and the
// previous count stays.
//
// Nothing coordinates two processes sharing the same storage. The last one
// to write wins.
package session

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/rinsh4dd/e-com/internal/models"
	"github.com/rinsh4dd/e-com/internal/store"
)

// Identity is the persisted part of a user. It never carries the password
// or the embedded collections.
type Identity struct {
	ID      models.ID   `json:"id"`
	Name    string      `json:"name"`
	Email   string      `json:"email"`
	Role    models.Role `json:"role"`
	Blocked bool        `json:"isBlocked"`
}

func IdentityOf(u models.User) Identity {
	return Identity{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		Role:    u.Role,
		Blocked: u.IsBlocked,
	}
}

func (i Identity) IsAdmin() bool { return i.Role.IsAdmin() }

type EventKind int

const (
	EventLogin EventKind = iota + 1
	EventLogout
	EventCartCount
)

func (k EventKind) String() string {
	switch k {
	case EventLogin:
		return "login"
	case EventLogout:
		return "logout"
	case EventCartCount:
		return "cart_count"
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Event is delivered to subscribers after the state it describes is
// committed.
type Event struct {
	Kind      EventKind
	Identity  *Identity
	CartCount int
}

type Store struct {
	storage Storage
	users   store.Users
	logger  *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu        sync.Mutex
	identity  *Identity
	cartCount int
	subs      map[int]func(Event)
	nextSub   int
}

// New restores the stored identity, if any. A missing or unreadable stored
// identity leaves the store anonymous.
func New(storage Storage, users store.Users, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Store{
		storage: storage,
		users:   users,
		logger:  logger,
		ctx:     ctx,
		cancel:  cancel,
		subs:    map[int]func(Event){},
	}

	id, err := storage.Load()
	if err != nil {
		logger.Warn("ignoring stored session", zap.Error(err))
		return s
	}
	if id != nil && id.ID != "" {
		s.identity = id
		s.refreshAsync(*id)
	}
	return s
}

// Login replaces the current identity. The caller has already verified the
// credentials.
func (s *Store) Login(id Identity) error {
	return s.setIdentity(id)
}

// Register signs in a freshly created account.
func (s *Store) Register(id Identity) error {
	return s.setIdentity(id)
}

// setIdentity commits id only once it is stored; a failed save leaves the
// previous identity in place and emits nothing.
func (s *Store) setIdentity(id Identity) error {
	s.mu.Lock()
	if err := s.storage.Save(id); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("persist session: %w", err)
	}
	cp := id
	s.identity = &cp
	s.mu.Unlock()

	s.emit(Event{Kind: EventLogin, Identity: &id})
	s.refreshAsync(id)
	return nil
}

// Logout forgets the identity and its stored copy.
func (s *Store) Logout() error {
	s.mu.Lock()
	s.identity = nil
	s.cartCount = 0
	err := s.storage.Clear()
	s.mu.Unlock()

	s.emit(Event{Kind: EventLogout})
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Identity returns a copy of the current identity, or nil when anonymous.
func (s *Store) Identity() *Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return nil
	}
	cp := *s.identity
	return &cp
}

func (s *Store) CartCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cartCount
}

// SetCartCount is used by views that already hold the new cart.
func (s *Store) SetCartCount(n int) {
	s.mu.Lock()
	s.cartCount = n
	s.mu.Unlock()
	s.emit(Event{Kind: EventCartCount, CartCount: n})
}

// RefreshCartCount fetches the current user's document and sets the cart
// count from it. It is a no-op when anonymous.
func (s *Store) RefreshCartCount(ctx context.Context) error {
	id := s.Identity()
	if id == nil {
		return nil
	}
	return s.refresh(ctx, *id)
}

func (s *Store) refresh(ctx context.Context, id Identity) error {
	u, err := s.users.Get(ctx, id.ID)
	if err != nil {
		return fmt.Errorf("load cart for %s: %w", id.ID, err)
	}

	s.mu.Lock()
	if s.identity == nil || s.identity.ID != id.ID {
		s.mu.Unlock()
		return nil
	}
	s.cartCount = len(u.Cart)
	n := s.cartCount
	s.mu.Unlock()

	s.emit(Event{Kind: EventCartCount, CartCount: n})
	return nil
}

func (s *Store) refreshAsync(id Identity) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.refresh(s.ctx, id); err != nil {
			s.logger.Warn("failed to load cart", zap.String("user_id", id.ID.String()), zap.Error(err))
		}
	}()
}

// Subscribe registers fn for future events and returns a function that
// removes it.
func (s *Store) Subscribe(fn func(Event)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := s.nextSub
	s.nextSub++
	s.subs[key] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, key)
	}
}

func (s *Store) emit(ev Event) {
	s.mu.Lock()
	fns := make([]func(Event), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

// Wait blocks until background cart fetches have finished.
func (s *Store) Wait() {
	s.wg.Wait()
}

// Close cancels background fetches, waits for them and closes the storage.
func (s *Store) Close() error {
	s.cancel()
	s.wg.Wait()
	return s.storage.Close()
}
