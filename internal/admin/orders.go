package admin

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rinsh4dd/e-com/internal/events"
	"github.com/rinsh4dd/e-com/internal/models"
	"github.com/rinsh4dd/e-com/internal/shop"
	"github.com/rinsh4dd/e-com/internal/store"
)

// OrderRow is an order together with its owner.
type OrderRow struct {
	UserID   models.ID `json:"userId"`
	UserName string    `json:"name"`
	models.Order
}

type OrderStats struct {
	Total     int     `json:"totalOrders"`
	Pending   int     `json:"pending"`
	Shipped   int     `json:"shipped"`
	Delivered int     `json:"delivered"`
	Cancelled int     `json:"cancelled"`
	Revenue   float64 `json:"totalRevenue"`
}

type ProductSales struct {
	ProductID models.ID `json:"id"`
	Name      string    `json:"name"`
	ImageURL  string    `json:"image_url"`
	Units     int       `json:"sales"`
	Revenue   float64   `json:"revenue"`
}

const topProductsLimit = 5

// UpdateOrderStatus moves one order of one user to next. The user's order
// list is fetched fresh and written back whole; only orderStatus changes, so
// paymentStatus stays whatever it was. Delivered and cancelled orders accept
// no further change.
func (s *Service) UpdateOrderStatus(ctx context.Context, userID models.ID, orderID int64, next models.OrderStatus) (*models.Order, error) {
	u, err := s.users.Get(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, shop.ErrUserNotFound.Wrap(err)
	}
	if err != nil {
		return nil, fmt.Errorf("load user %s: %w", userID, err)
	}

	orders, prev, changed, err := shop.ChangeOrderStatus(u.Orders, orderID, next)
	if err != nil {
		return nil, err
	}
	o, _ := shop.FindOrder(orders, orderID)
	if !changed {
		return &o, nil
	}

	if _, err := s.users.Patch(ctx, userID, store.Fields{store.FieldOrders: orders}); err != nil {
		s.logger.Warn("order status update failed",
			zap.String("user_id", userID.String()), zap.Int64("order_id", orderID), zap.Error(err))
		return nil, fmt.Errorf("patch orders of %s: %w", userID, err)
	}
	s.logger.Info("order status changed",
		zap.String("user_id", userID.String()),
		zap.Int64("order_id", orderID),
		zap.String("from", string(prev)),
		zap.String("to", string(o.OrderStatus)))

	ev := events.OrderStatusChanged{UserID: userID, OrderID: orderID, From: prev, To: o.OrderStatus, Actor: "admin"}
	if err := s.publisher.Publish(ctx, ev); err != nil {
		s.logger.Warn("failed to publish event", zap.String("type", ev.Type()), zap.Error(err))
	}
	return &o, nil
}

// ListOrders flattens every user's orders, newest first.
func (s *Service) ListOrders(ctx context.Context) ([]OrderRow, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	rows := FlattenOrders(users)
	slices.SortStableFunc(rows, func(a, b OrderRow) int {
		switch {
		case a.ID > b.ID:
			return -1
		case a.ID < b.ID:
			return 1
		}
		return 0
	})
	return rows, nil
}

func FlattenOrders(users []models.User) []OrderRow {
	rows := []OrderRow{}
	for _, u := range users {
		name := u.Name
		if name == "" {
			name = "Unknown"
		}
		for _, o := range u.Orders {
			o.OrderStatus = o.OrderStatus.Normalize()
			rows = append(rows, OrderRow{UserID: u.ID, UserName: name, Order: o})
		}
	}
	return rows
}

// ComputeOrderStats counts orders per status and sums every order's total.
// Statuses it does not recognise count as pending.
func ComputeOrderStats(orders []models.Order) OrderStats {
	var st OrderStats
	revenue := decimal.Zero
	for _, o := range orders {
		st.Total++
		revenue = revenue.Add(decimal.NewFromFloat(o.TotalAmount))
		switch o.OrderStatus.Normalize() {
		case models.OrderDelivered:
			st.Delivered++
		case models.OrderShipped:
			st.Shipped++
		case models.OrderCancelled:
			st.Cancelled++
		default:
			st.Pending++
		}
	}
	st.Revenue = revenue.InexactFloat64()
	return st
}

func (s *Service) OrderStats(ctx context.Context) (OrderStats, error) {
	rows, err := s.ListOrders(ctx)
	if err != nil {
		return OrderStats{}, err
	}
	return ComputeOrderStats(ordersOf(rows)), nil
}

// TopProducts ranks products by units sold across all orders.
func (s *Service) TopProducts(ctx context.Context) ([]ProductSales, error) {
	rows, err := s.ListOrders(ctx)
	if err != nil {
		return nil, err
	}
	return RankProducts(ordersOf(rows), topProductsLimit), nil
}

// RankProducts returns the n best sellers by units. A line without a
// quantity counts as one unit.
func RankProducts(orders []models.Order, n int) []ProductSales {
	index := map[models.ID]int{}
	sales := []ProductSales{}
	for _, o := range orders {
		for _, it := range o.Items {
			qty := it.Quantity
			if qty == 0 {
				qty = 1
			}
			i, ok := index[it.ProductID]
			if !ok {
				i = len(sales)
				index[it.ProductID] = i
				sales = append(sales, ProductSales{ProductID: it.ProductID, Name: it.Name, ImageURL: it.ImageURL})
			}
			sales[i].Units += qty
			sales[i].Revenue = decimal.NewFromFloat(sales[i].Revenue).
				Add(decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(qty)))).
				InexactFloat64()
		}
	}
	slices.SortStableFunc(sales, func(a, b ProductSales) int { return b.Units - a.Units })
	if len(sales) > n {
		sales = sales[:n]
	}
	return sales
}

func ordersOf(rows []OrderRow) []models.Order {
	out := make([]models.Order, len(rows))
	for i, r := range rows {
		out[i] = r.Order
	}
	return out
}
