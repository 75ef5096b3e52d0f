// Package store declares the document operations the storefront needs from
// its backing resource server. Every mutation is a partial-document patch of
// whole fields; there are no per-element operations and no version checks.
package store

import (
	"context"
	"net/http"

	"github.com/rinsh4dd/e-com/internal/apperror"
	"github.com/rinsh4dd/e-com/internal/models"
)

// Fields is a partial document: top-level field name to its full new value.
type Fields map[string]any

const (
	FieldCart            = "cart"
	FieldWishlist        = "wishlist"
	FieldOrders          = "orders"
	FieldShippingAddress = "shippingAddress"
	FieldIsBlocked       = "isBlocked"
	FieldInStock         = "in_stock"
)

var (
	ErrNotFound    = apperror.New(apperror.CodeNotFound, "Resource not found", http.StatusNotFound)
	ErrUnavailable = apperror.ErrUnavailable
)

// UserFilter matches users by exact field equality. Empty fields are ignored.
type UserFilter struct {
	Email    string
	Password string
}

type Users interface {
	List(ctx context.Context) ([]models.User, error)
	Find(ctx context.Context, f UserFilter) ([]models.User, error)
	Get(ctx context.Context, id models.ID) (*models.User, error)
	Create(ctx context.Context, u models.User) (*models.User, error)
	Patch(ctx context.Context, id models.ID, fields Fields) (*models.User, error)
	Delete(ctx context.Context, id models.ID) error
}

type Products interface {
	List(ctx context.Context) ([]models.Product, error)
	Get(ctx context.Context, id models.ID) (*models.Product, error)
	Create(ctx context.Context, p models.Product) (*models.Product, error)
	Patch(ctx context.Context, id models.ID, fields Fields) (*models.Product, error)
	Delete(ctx context.Context, id models.ID) error
}

// Backend bundles both collections behind one connection.
type Backend interface {
	Users() Users
	Products() Products
	Close(ctx context.Context) error
}
