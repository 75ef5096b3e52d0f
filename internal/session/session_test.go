package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/rinsh4dd/e-com/internal/models"
	"github.com/rinsh4dd/e-com/internal/store/memstore"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func seedUser(t *testing.T, cartLen int) (*memstore.Store, models.User) {
	t.Helper()
	ms := memstore.New()
	cart := make([]models.CartItem, cartLen)
	for i := range cart {
		cart[i] = models.CartItem{ProductID: models.ID(string(rune('a' + i))), Size: "9", Quantity: 1}
	}
	u := ms.SeedUsers(models.User{Name: "Ann", Email: "ann@example.com", Password: "Secret#1", Role: models.RoleUser, Cart: cart})[0]
	return ms, u
}

func TestBootWithoutStoredIdentityIsAnonymous(t *testing.T) {
	ms, _ := seedUser(t, 0)
	s := New(NewFileStorage(filepath.Join(t.TempDir(), "session.json")), ms.Users(), nil)
	defer s.Close()

	assert.Nil(t, s.Identity())
	assert.Equal(t, 0, s.CartCount())
}

func TestLoginPersistsBeforeReturning(t *testing.T) {
	ms, u := seedUser(t, 2)
	path := filepath.Join(t.TempDir(), "session.json")
	s := New(NewFileStorage(path), ms.Users(), nil)
	defer s.Close()

	require.NoError(t, s.Login(IdentityOf(u)))

	stored, err := NewFileStorage(path).Load()
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, u.ID, stored.ID)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "Secret#1")
	assert.NotContains(t, string(raw), "cart")

	s.Wait()
	assert.Equal(t, 2, s.CartCount())
}

type readOnlyStorage struct{ Storage }

var errReadOnly = errors.New("read-only storage")

func (readOnlyStorage) Save(Identity) error { return errReadOnly }

func TestLoginKeepsPreviousIdentityWhenSaveFails(t *testing.T) {
	ms, u := seedUser(t, 2)
	s := New(readOnlyStorage{NewFileStorage(filepath.Join(t.TempDir(), "session.json"))}, ms.Users(), nil)
	defer s.Close()

	var events []EventKind
	unsubscribe := s.Subscribe(func(ev Event) { events = append(events, ev.Kind) })
	defer unsubscribe()

	err := s.Login(IdentityOf(u))
	require.ErrorIs(t, err, errReadOnly)
	s.Wait()
	assert.Nil(t, s.Identity())
	assert.Zero(t, s.CartCount())
	assert.Empty(t, events)
}

func TestBootRestoresIdentityAndRefreshesCount(t *testing.T) {
	ms, u := seedUser(t, 3)
	storage := NewFileStorage(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, storage.Save(IdentityOf(u)))

	s := New(storage, ms.Users(), nil)
	defer s.Close()
	s.Wait()

	require.NotNil(t, s.Identity())
	assert.Equal(t, "Ann", s.Identity().Name)
	assert.Equal(t, 3, s.CartCount())
}

func TestRefreshFailureKeepsStaleCount(t *testing.T) {
	ms, u := seedUser(t, 1)
	s := New(NewFileStorage(filepath.Join(t.TempDir(), "session.json")), ms.Users(), nil)
	defer s.Close()

	require.NoError(t, s.Login(IdentityOf(u)))
	s.Wait()
	require.Equal(t, 1, s.CartCount())

	ms.SetFault(memstore.FailOn(errors.New("offline"), memstore.OpUserGet))
	require.NoError(t, s.Login(IdentityOf(u)))
	s.Wait()

	assert.Equal(t, 1, s.CartCount())
	assert.NotNil(t, s.Identity())
	assert.Error(t, s.RefreshCartCount(context.Background()))
}

func TestCorruptStoredIdentityIsAnonymous(t *testing.T) {
	ms, _ := seedUser(t, 0)
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	s := New(NewFileStorage(path), ms.Users(), nil)
	defer s.Close()

	assert.Nil(t, s.Identity())
	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestLogoutClearsStorageAndNotifies(t *testing.T) {
	ms, u := seedUser(t, 1)
	path := filepath.Join(t.TempDir(), "session.json")
	s := New(NewFileStorage(path), ms.Users(), nil)
	defer s.Close()

	var mu sync.Mutex
	var kinds []EventKind
	unsubscribe := s.Subscribe(func(ev Event) {
		mu.Lock()
		defer mu.Unlock()
		kinds = append(kinds, ev.Kind)
	})
	defer unsubscribe()

	require.NoError(t, s.Login(IdentityOf(u)))
	s.Wait()
	require.NoError(t, s.Logout())

	assert.Nil(t, s.Identity())
	assert.Equal(t, 0, s.CartCount())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []EventKind{EventLogin, EventCartCount, EventLogout}, kinds)
}

func TestSetCartCount(t *testing.T) {
	ms, _ := seedUser(t, 0)
	s := New(NewFileStorage(filepath.Join(t.TempDir(), "session.json")), ms.Users(), nil)
	defer s.Close()

	s.SetCartCount(4)
	assert.Equal(t, 4, s.CartCount())
}

func TestSQLiteStorage(t *testing.T) {
	storage, err := OpenSQLite(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	defer storage.Close()

	got, err := storage.Load()
	require.NoError(t, err)
	assert.Nil(t, got)

	id := Identity{ID: "7", Name: "Ann", Email: "ann@example.com", Role: models.RoleAdmin}
	require.NoError(t, storage.Save(id))
	id.Name = "Annie"
	require.NoError(t, storage.Save(id))

	got, err = storage.Load()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Annie", got.Name)
	assert.True(t, got.IsAdmin())

	require.NoError(t, storage.Clear())
	got, err = storage.Load()
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestEventKindString(t *testing.T) {
	assert.Equal(t, "login", EventLogin.String())
	assert.Equal(t, "EventKind(9)", EventKind(9).String())
}
