package shop

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rinsh4dd/e-com/internal/events"
	"github.com/rinsh4dd/e-com/internal/models"
	"github.com/rinsh4dd/e-com/internal/store"
)

const DefaultCountry = "India"

type CheckoutRequest struct {
	Payment        PaymentDetails `json:"payment"`
	BillingAddress models.Address `json:"billingAddress"`
}

// Prefill is what the payment screen shows before the order is placed.
type Prefill struct {
	Cart            []models.CartItem `json:"cart"`
	Total           decimal.Decimal   `json:"total"`
	ShippingAddress models.Address    `json:"shippingAddress"`
}

type CheckoutService struct {
	users     store.Users
	publisher events.Publisher
	logger    *zap.Logger
	now       func() time.Time
}

type CheckoutOption func(*CheckoutService)

// WithClock replaces time.Now, which also drives order ids.
func WithClock(now func() time.Time) CheckoutOption {
	return func(s *CheckoutService) { s.now = now }
}

func NewCheckoutService(users store.Users, publisher events.Publisher, logger *zap.Logger, opts ...CheckoutOption) *CheckoutService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if publisher == nil {
		publisher = events.Nop{}
	}
	s := &CheckoutService{users: users, publisher: publisher, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *CheckoutService) Prefill(ctx context.Context, userID models.ID) (*Prefill, error) {
	u, err := loadUser(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}
	addr := models.Address{Country: DefaultCountry}
	if u.ShippingAddress != nil {
		addr = *u.ShippingAddress
		if addr.Country == "" {
			addr.Country = DefaultCountry
		}
	}
	cart := nonNilCart(u.Cart)
	return &Prefill{Cart: cart, Total: CartTotal(cart), ShippingAddress: addr}, nil
}

// Checkout turns the user's current cart into an order. The cart is emptied,
// the order appended and the billing address saved in one patch.
//
// Order ids are the clock in milliseconds; two checkouts within the same
// millisecond get the same id.
func (s *CheckoutService) Checkout(ctx context.Context, userID models.ID, req CheckoutRequest) (*models.Order, error) {
	if err := req.Payment.Validate(); err != nil {
		return nil, err
	}
	addr := req.BillingAddress
	if !addr.Complete() {
		return nil, ErrIncompleteAddress
	}
	if strings.TrimSpace(addr.Country) == "" {
		addr.Country = DefaultCountry
	}

	u, err := loadUser(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}
	if len(u.Cart) == 0 {
		return nil, ErrEmptyCart
	}

	now := s.now()
	items := make([]models.CartItem, len(u.Cart))
	copy(items, u.Cart)
	order := models.Order{
		ID:             now.UnixMilli(),
		Items:          items,
		TotalAmount:    CartTotal(items).InexactFloat64(),
		PaymentMethod:  req.Payment.Label(),
		PaymentStatus:  req.Payment.Status(),
		OrderStatus:    models.OrderPending,
		BillingAddress: addr,
		CreatedAt:      now.UTC().Format(time.RFC3339Nano),
	}

	orders := make([]models.Order, 0, len(u.Orders)+1)
	orders = append(orders, u.Orders...)
	orders = append(orders, order)

	err = patchUser(ctx, s.users, userID, store.Fields{
		store.FieldCart:            []models.CartItem{},
		store.FieldOrders:          orders,
		store.FieldShippingAddress: addr,
	})
	if err != nil {
		s.logger.Warn("checkout failed", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, err
	}

	s.logger.Info("order placed",
		zap.String("user_id", userID.String()),
		zap.Int64("order_id", order.ID),
		zap.Float64("total", order.TotalAmount))
	if err := s.publisher.Publish(ctx, events.OrderPlaced{UserID: userID, Order: order}); err != nil {
		s.logger.Warn("failed to publish event", zap.String("type", events.TypeOrderPlaced), zap.Error(err))
	}
	return &order, nil
}
