// Package memstore is an in-process resource server. It applies patches the
// way the REST resource server does: top-level fields are replaced whole.
package memstore

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"

	"github.com/rinsh4dd/e-com/internal/models"
	"github.com/rinsh4dd/e-com/internal/store"
)

// Fault is consulted before every operation. A non-nil return aborts the
// operation with that error and leaves the data untouched.
type Fault func(op string) error

// Operation names passed to a Fault.
const (
	OpUserList      = "users.list"
	OpUserFind      = "users.find"
	OpUserGet       = "users.get"
	OpUserCreate    = "users.create"
	OpUserPatch     = "users.patch"
	OpUserDelete    = "users.delete"
	OpProductList   = "products.list"
	OpProductGet    = "products.get"
	OpProductCreate = "products.create"
	OpProductPatch  = "products.patch"
	OpProductDelete = "products.delete"
)

type Store struct {
	mu       sync.Mutex
	users    []models.User
	products []models.Product
	nextID   int
	fault    Fault
	patches  []Patch
}

// Patch records one successful partial update.
type Patch struct {
	Collection string
	ID         models.ID
	Fields     []string
}

func New() *Store {
	return &Store{nextID: 1}
}

// SetFault installs f, or removes the current fault when f is nil.
func (s *Store) SetFault(f Fault) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fault = f
}

// FailOn returns a Fault that fails only the named operations.
func FailOn(err error, ops ...string) Fault {
	return func(op string) error {
		for _, o := range ops {
			if o == op {
				return err
			}
		}
		return nil
	}
}

// Patches returns the recorded patches in order.
func (s *Store) Patches() []Patch {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Patch, len(s.patches))
	copy(out, s.patches)
	return out
}

// SeedUsers stores users as given, assigning ids to those without one.
func (s *Store) SeedUsers(users ...models.User) []models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.User, 0, len(users))
	for _, u := range users {
		if u.ID == "" {
			u.ID = s.newID()
		}
		s.users = append(s.users, clone(u))
		out = append(out, u)
	}
	return out
}

func (s *Store) SeedProducts(products ...models.Product) []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if p.ID == "" {
			p.ID = s.newID()
		}
		s.products = append(s.products, clone(p))
		out = append(out, p)
	}
	return out
}

func (s *Store) Users() store.Users       { return users{s} }
func (s *Store) Products() store.Products { return products{s} }
func (s *Store) Close(context.Context) error {
	return nil
}

// newID hands out the next unused numeric id.
func (s *Store) newID() models.ID {
	for {
		id := models.ID(strconv.Itoa(s.nextID))
		s.nextID++
		if !s.inUse(id) {
			return id
		}
	}
}

func (s *Store) inUse(id models.ID) bool {
	for _, u := range s.users {
		if u.ID == id {
			return true
		}
	}
	for _, p := range s.products {
		if p.ID == id {
			return true
		}
	}
	return false
}

func (s *Store) check(ctx context.Context, op string) error {
	if err := ctx.Err(); err != nil {
		return store.ErrUnavailable.Wrap(err)
	}
	if s.fault != nil {
		return s.fault(op)
	}
	return nil
}

// clone deep-copies v through its JSON form, the same form the resource
// server stores.
func clone[T any](v T) T {
	b, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("memstore: marshal %T: %v", v, err))
	}
	var out T
	if err := json.Unmarshal(b, &out); err != nil {
		panic(fmt.Sprintf("memstore: unmarshal %T: %v", v, err))
	}
	return out
}

// apply replaces the named top-level fields of doc.
func apply[T any](doc T, fields store.Fields) (T, error) {
	var zero T
	b, err := json.Marshal(doc)
	if err != nil {
		return zero, err
	}
	m := map[string]json.RawMessage{}
	if err := json.Unmarshal(b, &m); err != nil {
		return zero, err
	}
	for k, v := range fields {
		raw, err := json.Marshal(v)
		if err != nil {
			return zero, fmt.Errorf("field %s: %w", k, err)
		}
		m[k] = raw
	}
	b, err = json.Marshal(m)
	if err != nil {
		return zero, err
	}
	var out T
	if err := json.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

func fieldNames(fields store.Fields) []string {
	names := make([]string, 0, len(fields))
	for k := range fields {
		names = append(names, k)
	}
	return names
}

type users struct{ s *Store }

func (u users) List(ctx context.Context) ([]models.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	if err := u.s.check(ctx, OpUserList); err != nil {
		return nil, err
	}
	return clone(u.s.users), nil
}

func (u users) Find(ctx context.Context, f store.UserFilter) ([]models.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	if err := u.s.check(ctx, OpUserFind); err != nil {
		return nil, err
	}
	out := []models.User{}
	for _, usr := range u.s.users {
		if f.Email != "" && usr.Email != f.Email {
			continue
		}
		if f.Password != "" && usr.Password != f.Password {
			continue
		}
		out = append(out, clone(usr))
	}
	return out, nil
}

func (u users) index(id models.ID) int {
	for i, usr := range u.s.users {
		if usr.ID == id {
			return i
		}
	}
	return -1
}

func (u users) Get(ctx context.Context, id models.ID) (*models.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	if err := u.s.check(ctx, OpUserGet); err != nil {
		return nil, err
	}
	i := u.index(id)
	if i < 0 {
		return nil, store.ErrNotFound
	}
	out := clone(u.s.users[i])
	return &out, nil
}

func (u users) Create(ctx context.Context, usr models.User) (*models.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	if err := u.s.check(ctx, OpUserCreate); err != nil {
		return nil, err
	}
	if usr.ID == "" {
		usr.ID = u.s.newID()
	}
	u.s.users = append(u.s.users, clone(usr))
	out := clone(usr)
	return &out, nil
}

func (u users) Patch(ctx context.Context, id models.ID, fields store.Fields) (*models.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	if err := u.s.check(ctx, OpUserPatch); err != nil {
		return nil, err
	}
	i := u.index(id)
	if i < 0 {
		return nil, store.ErrNotFound
	}
	next, err := apply(u.s.users[i], fields)
	if err != nil {
		return nil, fmt.Errorf("patch user %s: %w", id, err)
	}
	u.s.users[i] = next
	u.s.patches = append(u.s.patches, Patch{Collection: "users", ID: id, Fields: fieldNames(fields)})
	out := clone(next)
	return &out, nil
}

func (u users) Delete(ctx context.Context, id models.ID) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	if err := u.s.check(ctx, OpUserDelete); err != nil {
		return err
	}
	i := u.index(id)
	if i < 0 {
		return store.ErrNotFound
	}
	u.s.users = append(u.s.users[:i], u.s.users[i+1:]...)
	return nil
}

type products struct{ s *Store }

func (p products) index(id models.ID) int {
	for i, prod := range p.s.products {
		if prod.ID == id {
			return i
		}
	}
	return -1
}

func (p products) List(ctx context.Context) ([]models.Product, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	if err := p.s.check(ctx, OpProductList); err != nil {
		return nil, err
	}
	return clone(p.s.products), nil
}

func (p products) Get(ctx context.Context, id models.ID) (*models.Product, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	if err := p.s.check(ctx, OpProductGet); err != nil {
		return nil, err
	}
	i := p.index(id)
	if i < 0 {
		return nil, store.ErrNotFound
	}
	out := clone(p.s.products[i])
	return &out, nil
}

func (p products) Create(ctx context.Context, prod models.Product) (*models.Product, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	if err := p.s.check(ctx, OpProductCreate); err != nil {
		return nil, err
	}
	if prod.ID == "" {
		prod.ID = p.s.newID()
	}
	p.s.products = append(p.s.products, clone(prod))
	out := clone(prod)
	return &out, nil
}

func (p products) Patch(ctx context.Context, id models.ID, fields store.Fields) (*models.Product, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	if err := p.s.check(ctx, OpProductPatch); err != nil {
		return nil, err
	}
	i := p.index(id)
	if i < 0 {
		return nil, store.ErrNotFound
	}
	next, err := apply(p.s.products[i], fields)
	if err != nil {
		return nil, fmt.Errorf("patch product %s: %w", id, err)
	}
	p.s.products[i] = next
	p.s.patches = append(p.s.patches, Patch{Collection: "products", ID: id, Fields: fieldNames(fields)})
	out := clone(next)
	return &out, nil
}

func (p products) Delete(ctx context.Context, id models.ID) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	if err := p.s.check(ctx, OpProductDelete); err != nil {
		return err
	}
	i := p.index(id)
	if i < 0 {
		return store.ErrNotFound
	}
	p.s.products = append(p.s.products[:i], p.s.products[i+1:]...)
	return nil
}
