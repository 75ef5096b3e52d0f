// Package app opens the configured infrastructure and builds the services on
// top of it. Both binaries start here.
package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/rinsh4dd/e-com/internal/admin"
	"github.com/rinsh4dd/e-com/internal/auth"
	"github.com/rinsh4dd/e-com/internal/config"
	"github.com/rinsh4dd/e-com/internal/events"
	"github.com/rinsh4dd/e-com/internal/session"
	"github.com/rinsh4dd/e-com/internal/shop"
	"github.com/rinsh4dd/e-com/internal/store"
	"github.com/rinsh4dd/e-com/internal/store/memstore"
	"github.com/rinsh4dd/e-com/internal/store/mongostore"
	"github.com/rinsh4dd/e-com/internal/store/resource"
)

// Services is everything a front end needs.
type Services struct {
	Auth     *auth.Service
	Tokens   *auth.Tokens
	Catalog  *shop.Catalog
	Cart     *shop.CartService
	Wishlist *shop.WishlistService
	Checkout *shop.CheckoutService
	Orders   *shop.OrderService
	Admin    *admin.Service
	Users    store.Users
}

// App owns the opened backend and publisher.
type App struct {
	Config    config.Config
	Logger    *zap.Logger
	Backend   store.Backend
	Publisher events.Publisher
	Services  *Services
}

func New(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, error) {
	backend, err := OpenBackend(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	publisher, err := OpenPublisher(cfg.Kafka, logger)
	if err != nil {
		_ = backend.Close(ctx)
		return nil, err
	}
	return &App{
		Config:    cfg,
		Logger:    logger,
		Backend:   backend,
		Publisher: publisher,
		Services:  NewServices(cfg, backend, publisher, logger),
	}, nil
}

func NewServices(cfg config.Config, backend store.Backend, publisher events.Publisher, logger *zap.Logger) *Services {
	if logger == nil {
		logger = zap.NewNop()
	}
	users, products := backend.Users(), backend.Products()
	return &Services{
		Auth:     auth.NewService(users, cfg.Auth.PasswordMode, logger.Named("auth")),
		Tokens:   auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		Catalog:  shop.NewCatalog(products),
		Cart:     shop.NewCartService(users, products, logger.Named("cart")),
		Wishlist: shop.NewWishlistService(users, products, logger.Named("wishlist")),
		Checkout: shop.NewCheckoutService(users, publisher, logger.Named("checkout")),
		Orders:   shop.NewOrderService(users, publisher, logger.Named("orders")),
		Admin:    admin.NewService(users, products, publisher, logger.Named("admin")),
		Users:    users,
	}
}

// OpenSession opens the configured identity storage and restores the
// session from it.
func (a *App) OpenSession() (*session.Store, error) {
	storage, err := OpenSessionStorage(a.Config.Session)
	if err != nil {
		return nil, err
	}
	return session.New(storage, a.Backend.Users(), a.Logger.Named("session")), nil
}

func (a *App) Close(ctx context.Context) error {
	a.Publisher.Close()
	return a.Backend.Close(ctx)
}

// OpenBackend connects to the configured document store. The memory backend
// starts with the demo catalogue.
func OpenBackend(ctx context.Context, cfg config.Config, logger *zap.Logger) (store.Backend, error) {
	switch cfg.Backend {
	case config.BackendREST:
		c, err := resource.New(cfg.Resource.BaseURL, cfg.Resource.Timeout, logger.Named("resource"))
		if err != nil {
			return nil, fmt.Errorf("resource client: %w", err)
		}
		return c, nil
	case config.BackendMongo:
		s, err := mongostore.Open(ctx, cfg.Mongo.URI, cfg.Mongo.Database, logger.Named("mongo"))
		if err != nil {
			return nil, fmt.Errorf("mongo: %w", err)
		}
		return s, nil
	case config.BackendMemory:
		ms := memstore.New()
		Seed(ms)
		return ms, nil
	}
	return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
}

// OpenPublisher returns a Kafka publisher when brokers are configured and a
// no-op one otherwise.
func OpenPublisher(cfg config.KafkaConfig, logger *zap.Logger) (events.Publisher, error) {
	if len(cfg.Brokers) == 0 {
		return events.Nop{}, nil
	}
	k, err := events.NewKafka(cfg.Brokers, cfg.Topic, logger.Named("kafka"))
	if err != nil {
		return nil, fmt.Errorf("kafka: %w", err)
	}
	return k, nil
}

func OpenSessionStorage(cfg config.SessionConfig) (session.Storage, error) {
	switch cfg.Storage {
	case config.StorageFile, "":
		return session.NewFileStorage(cfg.Path), nil
	case config.StorageSQLite:
		return session.OpenSQLite(cfg.Path)
	}
	return nil, errors.New("unknown session storage " + cfg.Storage)
}
