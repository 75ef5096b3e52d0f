package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/rinsh4dd/e-com/internal/models"
	"github.com/rinsh4dd/e-com/internal/shop"
	"github.com/rinsh4dd/e-com/internal/store"
)

// UserFilter narrows the user table. Role "all" or empty matches any role.
type UserFilter struct {
	Search string `form:"search"`
	Role   string `form:"role"`
}

type UserOrderStats struct {
	Total       int     `json:"total"`
	Delivered   int     `json:"delivered"`
	Pending     int     `json:"pending"`
	TotalAmount float64 `json:"totalAmount"`
}

type UserOrders struct {
	User   models.User    `json:"user"`
	Orders []models.Order `json:"orders"`
	Stats  UserOrderStats `json:"stats"`
}

func (s *Service) ListUsers(ctx context.Context, f UserFilter) ([]models.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := []models.User{}
	for _, u := range users {
		if search != "" &&
			!strings.Contains(strings.ToLower(u.Name), search) &&
			!strings.Contains(strings.ToLower(u.Email), search) {
			continue
		}
		if f.Role != "" && f.Role != "all" && !strings.EqualFold(string(u.Role), f.Role) {
			continue
		}
		out = append(out, u.Public())
	}
	return out, nil
}

// SetBlocked takes effect at the user's next sign-in.
func (s *Service) SetBlocked(ctx context.Context, id models.ID, blocked bool) (*models.User, error) {
	u, err := s.users.Patch(ctx, id, store.Fields{store.FieldIsBlocked: blocked})
	if err != nil {
		return nil, userErr(id, err)
	}
	if u == nil {
		if u, err = s.users.Get(ctx, id); err != nil {
			return nil, userErr(id, err)
		}
	}
	s.logger.Info("user block status changed", zap.String("user_id", id.String()), zap.Bool("blocked", blocked))
	pub := u.Public()
	return &pub, nil
}

// DeleteUser removes the user document. Nothing else is touched.
func (s *Service) DeleteUser(ctx context.Context, id models.ID) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return userErr(id, err)
	}
	s.logger.Info("user deleted", zap.String("user_id", id.String()))
	return nil
}

func (s *Service) UserOrders(ctx context.Context, id models.ID) (*UserOrders, error) {
	u, err := s.users.Get(ctx, id)
	if err != nil {
		return nil, userErr(id, err)
	}
	orders := make([]models.Order, len(u.Orders))
	copy(orders, u.Orders)
	for i := range orders {
		orders[i].OrderStatus = orders[i].OrderStatus.Normalize()
	}
	shop.SortNewestFirst(orders)

	st := ComputeOrderStats(orders)
	return &UserOrders{
		User:   u.Public(),
		Orders: orders,
		Stats: UserOrderStats{
			Total:       st.Total,
			Delivered:   st.Delivered,
			Pending:     st.Pending,
			TotalAmount: st.Revenue,
		},
	}, nil
}

func userErr(id models.ID, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return shop.ErrUserNotFound.Wrap(err)
	}
	return fmt.Errorf("user %s: %w", id, err)
}
