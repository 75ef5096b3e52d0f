package resource

import (
	"context"
	"net/url"

	"github.com/rinsh4dd/e-com/internal/models"
	"github.com/rinsh4dd/e-com/internal/store"
)

const (
	usersCollection    = "users"
	productsCollection = "products"
)

type users struct{ c *Client }

func (u users) List(ctx context.Context) ([]models.User, error) {
	var out []models.User
	if err := u.c.Get(ctx, "/"+usersCollection, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Find filters server-side by exact field equality, which is also how the
// storefront logs users in.
func (u users) Find(ctx context.Context, f store.UserFilter) ([]models.User, error) {
	q := url.Values{}
	if f.Email != "" {
		q.Set("email", f.Email)
	}
	if f.Password != "" {
		q.Set("password", f.Password)
	}
	var out []models.User
	if err := u.c.Get(ctx, "/"+usersCollection, q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (u users) Get(ctx context.Context, id models.ID) (*models.User, error) {
	var out models.User
	if err := u.c.Get(ctx, itemPath(usersCollection, id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (u users) Create(ctx context.Context, user models.User) (*models.User, error) {
	var out models.User
	if err := u.c.Post(ctx, "/"+usersCollection, user, &out); err != nil {
		return nil, err
	}
	if out.ID == "" {
		out = user
	}
	return &out, nil
}

func (u users) Patch(ctx context.Context, id models.ID, fields store.Fields) (*models.User, error) {
	var out models.User
	if err := u.c.Patch(ctx, itemPath(usersCollection, id), fields, &out); err != nil {
		return nil, err
	}
	if out.ID == "" {
		return nil, nil
	}
	return &out, nil
}

func (u users) Delete(ctx context.Context, id models.ID) error {
	return u.c.Delete(ctx, itemPath(usersCollection, id))
}

type products struct{ c *Client }

func (p products) List(ctx context.Context) ([]models.Product, error) {
	var out []models.Product
	if err := p.c.Get(ctx, "/"+productsCollection, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (p products) Get(ctx context.Context, id models.ID) (*models.Product, error) {
	var out models.Product
	if err := p.c.Get(ctx, itemPath(productsCollection, id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (p products) Create(ctx context.Context, product models.Product) (*models.Product, error) {
	var out models.Product
	if err := p.c.Post(ctx, "/"+productsCollection, product, &out); err != nil {
		return nil, err
	}
	if out.ID == "" {
		out = product
	}
	return &out, nil
}

func (p products) Patch(ctx context.Context, id models.ID, fields store.Fields) (*models.Product, error) {
	var out models.Product
	if err := p.c.Patch(ctx, itemPath(productsCollection, id), fields, &out); err != nil {
		return nil, err
	}
	if out.ID == "" {
		return nil, nil
	}
	return &out, nil
}

func (p products) Delete(ctx context.Context, id models.ID) error {
	return p.c.Delete(ctx, itemPath(productsCollection, id))
}
