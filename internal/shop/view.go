package shop

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/rinsh4dd/e-com/internal/models"
)

// CartView is the local state of a cart screen. It only changes after the
// server has accepted a write, so a failed mutation leaves it as it was.
type CartView struct {
	svc    *CartService
	userID models.ID

	// OnCommit, if set, is called with every cart the view commits.
	OnCommit func([]models.CartItem)

	mu    sync.Mutex
	items []models.CartItem
}

func NewCartView(svc *CartService, userID models.ID) *CartView {
	return &CartView{svc: svc, userID: userID, items: []models.CartItem{}}
}

func (v *CartView) Load(ctx context.Context) error {
	return v.apply(v.svc.Get(ctx, v.userID))
}

func (v *CartView) Add(ctx context.Context, productID models.ID, size string, qty int) error {
	return v.apply(v.svc.Add(ctx, v.userID, productID, size, qty))
}

func (v *CartView) Remove(ctx context.Context, key models.CartKey) error {
	return v.apply(v.svc.Remove(ctx, v.userID, key))
}

func (v *CartView) SetQuantity(ctx context.Context, key models.CartKey, qty int) error {
	return v.apply(v.svc.SetQuantity(ctx, v.userID, key, qty))
}

func (v *CartView) Increase(ctx context.Context, key models.CartKey) error {
	return v.apply(v.svc.Increase(ctx, v.userID, key))
}

func (v *CartView) Decrease(ctx context.Context, key models.CartKey) error {
	return v.apply(v.svc.Decrease(ctx, v.userID, key))
}

func (v *CartView) apply(cart []models.CartItem, err error) error {
	if err != nil {
		return err
	}
	v.mu.Lock()
	v.items = cart
	v.mu.Unlock()
	if v.OnCommit != nil {
		v.OnCommit(cart)
	}
	return nil
}

func (v *CartView) Items() []models.CartItem {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]models.CartItem, len(v.items))
	copy(out, v.items)
	return out
}

func (v *CartView) Empty() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.items) == 0
}

func (v *CartView) Total() decimal.Decimal {
	return CartTotal(v.Items())
}

func (v *CartView) ItemCount() int {
	return CartItemCount(v.Items())
}

// WishlistView flips its local state before the server answers and puts it
// back when the write fails.
type WishlistView struct {
	svc    *WishlistService
	userID models.ID

	mu    sync.Mutex
	items []models.WishlistItem
}

func NewWishlistView(svc *WishlistService, userID models.ID) *WishlistView {
	return &WishlistView{svc: svc, userID: userID, items: []models.WishlistItem{}}
}

func (v *WishlistView) Load(ctx context.Context) error {
	list, err := v.svc.Get(ctx, v.userID)
	if err != nil {
		return err
	}
	v.set(list)
	return nil
}

// Toggle flips p locally, then asks the server. It reports whether p ended
// up in the wishlist.
func (v *WishlistView) Toggle(ctx context.Context, p models.Product) (bool, error) {
	v.mu.Lock()
	prev := v.items
	v.items, _ = ToggleWishlist(prev, models.WishlistItemFor(p))
	v.mu.Unlock()

	list, added, err := v.svc.Toggle(ctx, v.userID, p.ID)
	if err != nil {
		v.set(prev)
		return InWishlist(prev, p.ID), err
	}
	v.set(list)
	return added, nil
}

// Remove drops productID locally, then asks the server.
func (v *WishlistView) Remove(ctx context.Context, productID models.ID) error {
	v.mu.Lock()
	prev := v.items
	v.items = RemoveWishlistItem(prev, productID)
	v.mu.Unlock()

	list, err := v.svc.Remove(ctx, v.userID, productID)
	if err != nil {
		v.set(prev)
		return err
	}
	v.set(list)
	return nil
}

func (v *WishlistView) Contains(productID models.ID) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return InWishlist(v.items, productID)
}

func (v *WishlistView) Items() []models.WishlistItem {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]models.WishlistItem, len(v.items))
	copy(out, v.items)
	return out
}

func (v *WishlistView) set(list []models.WishlistItem) {
	v.mu.Lock()
	v.items = list
	v.mu.Unlock()
}
