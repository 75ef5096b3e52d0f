package shop

import (
	"context"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/rinsh4dd/e-com/internal/events"
	"github.com/rinsh4dd/e-com/internal/models"
	"github.com/rinsh4dd/e-com/internal/store"
)

// ChangeOrderStatus returns a copy of orders with the status of orderID set
// to next, along with the status it had. Asking for the current status
// changes nothing and reports changed == false. Only the status field of the
// matching order differs in the result.
func ChangeOrderStatus(orders []models.Order, orderID int64, next models.OrderStatus) (out []models.Order, prev models.OrderStatus, changed bool, err error) {
	target, ok := models.ParseOrderStatus(string(next))
	if !ok {
		return nil, "", false, ErrUnknownStatus.WithDetails(map[string]string{"status": string(next)})
	}

	i := slices.IndexFunc(orders, func(o models.Order) bool { return o.ID == orderID })
	if i < 0 {
		return nil, "", false, ErrOrderNotFound
	}

	prev = orders[i].OrderStatus.Normalize()
	out = make([]models.Order, len(orders))
	copy(out, orders)
	if prev == target {
		return out, prev, false, nil
	}
	if !prev.CanTransitionTo(target) {
		return nil, prev, false, ErrInvalidTransition.WithDetails(map[string]string{
			"from": string(prev),
			"to":   string(target),
		})
	}
	out[i].OrderStatus = target
	return out, prev, true, nil
}

// FindOrder returns the order with the given id.
func FindOrder(orders []models.Order, orderID int64) (models.Order, bool) {
	i := slices.IndexFunc(orders, func(o models.Order) bool { return o.ID == orderID })
	if i < 0 {
		return models.Order{}, false
	}
	return orders[i], true
}

// SortNewestFirst orders by creation time, newest first. Orders whose
// timestamps cannot be read fall back to their ids, which are creation
// milliseconds.
func SortNewestFirst(orders []models.Order) {
	slices.SortStableFunc(orders, func(a, b models.Order) int {
		ta, errA := time.Parse(time.RFC3339Nano, a.CreatedAt)
		tb, errB := time.Parse(time.RFC3339Nano, b.CreatedAt)
		if errA == nil && errB == nil {
			return tb.Compare(ta)
		}
		switch {
		case a.ID > b.ID:
			return -1
		case a.ID < b.ID:
			return 1
		}
		return 0
	})
}

// OrderService is a customer's view of their own orders.
type OrderService struct {
	users     store.Users
	publisher events.Publisher
	logger    *zap.Logger
}

func NewOrderService(users store.Users, publisher events.Publisher, logger *zap.Logger) *OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &OrderService{users: users, publisher: publisher, logger: logger}
}

func (s *OrderService) List(ctx context.Context, userID models.ID) ([]models.Order, error) {
	u, err := loadUser(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}
	orders := make([]models.Order, len(u.Orders))
	copy(orders, u.Orders)
	for i := range orders {
		orders[i].OrderStatus = orders[i].OrderStatus.Normalize()
	}
	SortNewestFirst(orders)
	return orders, nil
}

func (s *OrderService) Get(ctx context.Context, userID models.ID, orderID int64) (*models.Order, error) {
	u, err := loadUser(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}
	o, ok := FindOrder(u.Orders, orderID)
	if !ok {
		return nil, ErrOrderNotFound
	}
	o.OrderStatus = o.OrderStatus.Normalize()
	return &o, nil
}

// Cancel moves one of the user's orders to cancelled, subject to the same
// transitions the back office follows.
func (s *OrderService) Cancel(ctx context.Context, userID models.ID, orderID int64) (*models.Order, error) {
	u, err := loadUser(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}
	orders, prev, changed, err := ChangeOrderStatus(u.Orders, orderID, models.OrderCancelled)
	if err != nil {
		return nil, err
	}
	if changed {
		if err := patchUser(ctx, s.users, userID, store.Fields{store.FieldOrders: orders}); err != nil {
			s.logger.Warn("order cancel failed", zap.String("user_id", userID.String()), zap.Int64("order_id", orderID), zap.Error(err))
			return nil, err
		}
		ev := events.OrderStatusChanged{UserID: userID, OrderID: orderID, From: prev, To: models.OrderCancelled, Actor: "customer"}
		if err := s.publisher.Publish(ctx, ev); err != nil {
			s.logger.Warn("failed to publish event", zap.String("type", ev.Type()), zap.Error(err))
		}
	}
	o, _ := FindOrder(orders, orderID)
	return &o, nil
}
