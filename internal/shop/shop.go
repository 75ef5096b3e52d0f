// Package shop implements the storefront operations on a user's document:
// cart, wishlist, checkout and order history.
//
// Every mutation follows the same cycle. The user document is fetched fresh,
// the new array is computed locally, and the whole array is written back in
// a patch that names only that field. Two cycles racing on one document can
// lose an update; the last write wins.
package shop

import (
	"context"
	"errors"
	"fmt"

	"github.com/rinsh4dd/e-com/internal/models"
	"github.com/rinsh4dd/e-com/internal/store"
)

func loadUser(ctx context.Context, users store.Users, id models.ID) (*models.User, error) {
	u, err := users.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrUserNotFound.Wrap(err)
	}
	if err != nil {
		return nil, fmt.Errorf("load user %s: %w", id, err)
	}
	return u, nil
}

func loadProduct(ctx context.Context, products store.Products, id models.ID) (*models.Product, error) {
	p, err := products.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrProductNotFound.Wrap(err)
	}
	if err != nil {
		return nil, fmt.Errorf("load product %s: %w", id, err)
	}
	return p, nil
}

func patchUser(ctx context.Context, users store.Users, id models.ID, fields store.Fields) error {
	_, err := users.Patch(ctx, id, fields)
	if errors.Is(err, store.ErrNotFound) {
		return ErrUserNotFound.Wrap(err)
	}
	if err != nil {
		return fmt.Errorf("patch user %s: %w", id, err)
	}
	return nil
}
