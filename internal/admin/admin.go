// Package admin is the back office: order status changes, users, products
// and the dashboard figures.
package admin

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/rinsh4dd/e-com/internal/apperror"
	"github.com/rinsh4dd/e-com/internal/events"
	"github.com/rinsh4dd/e-com/internal/store"
)

var (
	ErrInvalidProduct = apperror.New(apperror.CodeInvalidInput, "Please fill all required fields", http.StatusBadRequest)
	ErrInvalidPage    = apperror.New(apperror.CodeInvalidInput, "Page must be 1 or more", http.StatusBadRequest)
)

type Service struct {
	users     store.Users
	products  store.Products
	publisher events.Publisher
	validate  *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

type Option func(*Service)

// WithClock replaces time.Now for the dashboard's day buckets.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(users store.Users, products store.Products, publisher events.Publisher, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if publisher == nil {
		publisher = events.Nop{}
	}
	s := &Service{
		users:     users,
		products:  products,
		publisher: publisher,
		validate:  validator.New(),
		logger:    logger,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
