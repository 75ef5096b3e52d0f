package shop

import (
	"context"

	"go.uber.org/zap"

	"github.com/rinsh4dd/e-com/internal/models"
	"github.com/rinsh4dd/e-com/internal/store"
)

func InWishlist(list []models.WishlistItem, productID models.ID) bool {
	for _, it := range list {
		if it.ProductID == productID {
			return true
		}
	}
	return false
}

// AddWishlistItem appends item unless its product is already listed.
func AddWishlistItem(list []models.WishlistItem, item models.WishlistItem) []models.WishlistItem {
	out := make([]models.WishlistItem, len(list), len(list)+1)
	copy(out, list)
	if InWishlist(list, item.ProductID) {
		return out
	}
	return append(out, item)
}

func RemoveWishlistItem(list []models.WishlistItem, productID models.ID) []models.WishlistItem {
	out := make([]models.WishlistItem, 0, len(list))
	for _, it := range list {
		if it.ProductID != productID {
			out = append(out, it)
		}
	}
	return out
}

// ToggleWishlist removes item's product when listed and adds it otherwise.
func ToggleWishlist(list []models.WishlistItem, item models.WishlistItem) ([]models.WishlistItem, bool) {
	if InWishlist(list, item.ProductID) {
		return RemoveWishlistItem(list, item.ProductID), false
	}
	return AddWishlistItem(list, item), true
}

type WishlistService struct {
	users    store.Users
	products store.Products
	logger   *zap.Logger
}

func NewWishlistService(users store.Users, products store.Products, logger *zap.Logger) *WishlistService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WishlistService{users: users, products: products, logger: logger}
}

func (s *WishlistService) Get(ctx context.Context, userID models.ID) ([]models.WishlistItem, error) {
	u, err := loadUser(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}
	return nonNilWishlist(u.Wishlist), nil
}

func (s *WishlistService) Add(ctx context.Context, userID, productID models.ID) ([]models.WishlistItem, error) {
	p, err := loadProduct(ctx, s.products, productID)
	if err != nil {
		return nil, err
	}
	u, err := loadUser(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}
	if InWishlist(u.Wishlist, productID) {
		return nonNilWishlist(u.Wishlist), nil
	}
	return s.save(ctx, userID, AddWishlistItem(u.Wishlist, models.WishlistItemFor(*p)))
}

// Remove is a no-op write when the product is not listed.
func (s *WishlistService) Remove(ctx context.Context, userID, productID models.ID) ([]models.WishlistItem, error) {
	u, err := loadUser(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}
	return s.save(ctx, userID, RemoveWishlistItem(u.Wishlist, productID))
}

// Toggle decides membership from the freshly fetched document. The product
// is only looked up when it has to be added, so a deleted product can still
// be removed.
func (s *WishlistService) Toggle(ctx context.Context, userID, productID models.ID) ([]models.WishlistItem, bool, error) {
	u, err := loadUser(ctx, s.users, userID)
	if err != nil {
		return nil, false, err
	}
	if InWishlist(u.Wishlist, productID) {
		list, err := s.save(ctx, userID, RemoveWishlistItem(u.Wishlist, productID))
		return list, false, err
	}

	p, err := loadProduct(ctx, s.products, productID)
	if err != nil {
		return nil, false, err
	}
	list, err := s.save(ctx, userID, AddWishlistItem(u.Wishlist, models.WishlistItemFor(*p)))
	return list, true, err
}

func (s *WishlistService) save(ctx context.Context, userID models.ID, list []models.WishlistItem) ([]models.WishlistItem, error) {
	list = nonNilWishlist(list)
	if err := patchUser(ctx, s.users, userID, store.Fields{store.FieldWishlist: list}); err != nil {
		s.logger.Warn("wishlist update failed", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, err
	}
	return list, nil
}

func nonNilWishlist(list []models.WishlistItem) []models.WishlistItem {
	if list == nil {
		return []models.WishlistItem{}
	}
	return list
}
