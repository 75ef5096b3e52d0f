package shop

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rinsh4dd/e-com/internal/models"
	"github.com/rinsh4dd/e-com/internal/store"
)

const (
	MinQuantity = 1
	MaxQuantity = 99
)

// AddCartItem returns a new cart with item merged in. An existing line with
// the same product and size gains item's quantity; otherwise item is
// appended. A line may not end up above MaxQuantity.
func AddCartItem(cart []models.CartItem, item models.CartItem) ([]models.CartItem, error) {
	if item.Quantity < MinQuantity || item.Quantity > MaxQuantity {
		return nil, ErrInvalidQuantity
	}
	out := make([]models.CartItem, 0, len(cart)+1)
	merged := false
	for _, line := range cart {
		if !merged && line.Key() == item.Key() {
			line.Quantity += item.Quantity
			if line.Quantity > MaxQuantity {
				return nil, ErrInvalidQuantity
			}
			merged = true
		}
		out = append(out, line)
	}
	if !merged {
		out = append(out, item)
	}
	return out, nil
}

// RemoveCartItem returns a new cart without the line for key.
func RemoveCartItem(cart []models.CartItem, key models.CartKey) []models.CartItem {
	out := make([]models.CartItem, 0, len(cart))
	for _, line := range cart {
		if line.Key() != key {
			out = append(out, line)
		}
	}
	return out
}

// SetCartQuantity returns a new cart with the line for key set to qty.
func SetCartQuantity(cart []models.CartItem, key models.CartKey, qty int) ([]models.CartItem, error) {
	if qty < MinQuantity || qty > MaxQuantity {
		return nil, ErrInvalidQuantity
	}
	i := indexOf(cart, key)
	if i < 0 {
		return nil, ErrItemNotInCart
	}
	out := make([]models.CartItem, len(cart))
	copy(out, cart)
	out[i].Quantity = qty
	return out, nil
}

func indexOf(cart []models.CartItem, key models.CartKey) int {
	for i, line := range cart {
		if line.Key() == key {
			return i
		}
	}
	return -1
}

// CartTotal is the sum of price times quantity.
func CartTotal(cart []models.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, line := range cart {
		total = total.Add(decimal.NewFromFloat(line.Price).Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}

// CartItemCount is the number of units across all lines.
func CartItemCount(cart []models.CartItem) int {
	n := 0
	for _, line := range cart {
		n += line.Quantity
	}
	return n
}

type CartService struct {
	users    store.Users
	products store.Products
	logger   *zap.Logger
}

func NewCartService(users store.Users, products store.Products, logger *zap.Logger) *CartService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartService{users: users, products: products, logger: logger}
}

func (s *CartService) Get(ctx context.Context, userID models.ID) ([]models.CartItem, error) {
	u, err := loadUser(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}
	return nonNilCart(u.Cart), nil
}

// Add puts qty units of the product in the given size into the cart.
func (s *CartService) Add(ctx context.Context, userID, productID models.ID, size string, qty int) ([]models.CartItem, error) {
	if size == "" {
		return nil, ErrSizeRequired
	}
	if qty < MinQuantity || qty > MaxQuantity {
		return nil, ErrInvalidQuantity
	}

	p, err := loadProduct(ctx, s.products, productID)
	if err != nil {
		return nil, err
	}
	if !p.HasSize(size) {
		return nil, ErrSizeUnavailable
	}
	if !p.InStock {
		return nil, ErrOutOfStock
	}

	u, err := loadUser(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}
	cart, err := AddCartItem(u.Cart, models.CartItemFor(*p, size, qty))
	if err != nil {
		return nil, err
	}
	return s.save(ctx, userID, cart)
}

func (s *CartService) Remove(ctx context.Context, userID models.ID, key models.CartKey) ([]models.CartItem, error) {
	u, err := loadUser(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}
	if indexOf(u.Cart, key) < 0 {
		return nil, ErrItemNotInCart
	}
	return s.save(ctx, userID, RemoveCartItem(u.Cart, key))
}

func (s *CartService) SetQuantity(ctx context.Context, userID models.ID, key models.CartKey, qty int) ([]models.CartItem, error) {
	if qty < MinQuantity || qty > MaxQuantity {
		return nil, ErrInvalidQuantity
	}
	u, err := loadUser(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}
	cart, err := SetCartQuantity(u.Cart, key, qty)
	if err != nil {
		return nil, err
	}
	return s.save(ctx, userID, cart)
}

func (s *CartService) Increase(ctx context.Context, userID models.ID, key models.CartKey) ([]models.CartItem, error) {
	return s.step(ctx, userID, key, 1)
}

// Decrease rejects going below one unit; removing a line is Remove.
func (s *CartService) Decrease(ctx context.Context, userID models.ID, key models.CartKey) ([]models.CartItem, error) {
	return s.step(ctx, userID, key, -1)
}

func (s *CartService) step(ctx context.Context, userID models.ID, key models.CartKey, delta int) ([]models.CartItem, error) {
	u, err := loadUser(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}
	i := indexOf(u.Cart, key)
	if i < 0 {
		return nil, ErrItemNotInCart
	}
	cart, err := SetCartQuantity(u.Cart, key, u.Cart[i].Quantity+delta)
	if err != nil {
		return nil, err
	}
	return s.save(ctx, userID, cart)
}

func (s *CartService) save(ctx context.Context, userID models.ID, cart []models.CartItem) ([]models.CartItem, error) {
	cart = nonNilCart(cart)
	if err := patchUser(ctx, s.users, userID, store.Fields{store.FieldCart: cart}); err != nil {
		s.logger.Warn("cart update failed", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, err
	}
	return cart, nil
}

func nonNilCart(cart []models.CartItem) []models.CartItem {
	if cart == nil {
		return []models.CartItem{}
	}
	return cart
}
