package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rinsh4dd/e-com/internal/config"
	"github.com/rinsh4dd/e-com/internal/events"
	"github.com/rinsh4dd/e-com/internal/session"
	"github.com/rinsh4dd/e-com/internal/store"
)

func TestMemoryBackendIsSeeded(t *testing.T) {
	cfg := config.Default()
	cfg.Backend = config.BackendMemory

	b, err := OpenBackend(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer b.Close(context.Background())

	products, err := b.Products().List(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 7)

	admins, err := b.Users().Find(context.Background(), store.UserFilter{Email: "admin@shoecart.dev"})
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.True(t, admins[0].Role.IsAdmin())
}

func TestUnknownBackend(t *testing.T) {
	cfg := config.Default()
	cfg.Backend = "ftp"
	_, err := OpenBackend(context.Background(), cfg, zap.NewNop())
	assert.ErrorContains(t, err, "unknown backend")
}

func TestPublisherWithoutBrokersIsNop(t *testing.T) {
	p, err := OpenPublisher(config.KafkaConfig{Topic: "t"}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, events.Nop{}, p)
}

func TestOpenSessionStorage(t *testing.T) {
	dir := t.TempDir()

	fs, err := OpenSessionStorage(config.SessionConfig{Storage: config.StorageFile, Path: filepath.Join(dir, "s.json")})
	require.NoError(t, err)
	assert.IsType(t, &session.FileStorage{}, fs)

	ss, err := OpenSessionStorage(config.SessionConfig{Storage: config.StorageSQLite, Path: filepath.Join(dir, "s.db")})
	require.NoError(t, err)
	assert.IsType(t, &session.SQLiteStorage{}, ss)
	require.NoError(t, ss.Close())

	_, err = OpenSessionStorage(config.SessionConfig{Storage: "redis"})
	assert.Error(t, err)
}

func TestAppSessionUsesBackend(t *testing.T) {
	cfg := config.Default()
	cfg.Backend = config.BackendMemory
	cfg.Session.Path = filepath.Join(t.TempDir(), "session.json")

	a, err := New(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer a.Close(context.Background())

	u, err := a.Services.Auth.Login(context.Background(), "shopper@shoecart.dev", "Shopper@123")
	require.NoError(t, err)

	sess, err := a.OpenSession()
	require.NoError(t, err)
	require.NoError(t, sess.Login(session.IdentityOf(*u)))
	sess.Wait()
	assert.Equal(t, u.ID, sess.Identity().ID)
	require.NoError(t, sess.Close())
}
