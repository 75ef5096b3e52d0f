package app

import (
	"github.com/rinsh4dd/e-com/internal/models"
	"github.com/rinsh4dd/e-com/internal/store/memstore"
)

// Seed loads the demo accounts and catalogue used by the memory backend.
func Seed(ms *memstore.Store) {
	ms.SeedUsers(
		models.User{
			ID:       "1",
			Name:     "Admin",
			Email:    "admin@shoecart.dev",
			Password: "Admin@123",
			Role:     models.RoleAdmin,
			Cart:     []models.CartItem{},
			Wishlist: []models.WishlistItem{},
			Orders:   []models.Order{},
		},
		models.User{
			ID:       "2",
			Name:     "Demo Shopper",
			Email:    "shopper@shoecart.dev",
			Password: "Shopper@123",
			Role:     models.RoleUser,
			Cart:     []models.CartItem{},
			Wishlist: []models.WishlistItem{},
			Orders:   []models.Order{},
		},
	)
	ms.SeedProducts(
		models.Product{
			ID: "101", Name: "Air Zoom Pegasus", Brand: "Nike", Category: "Running",
			Price: 8995, Discount: 10, InStock: true,
			AvailableSizes: []string{"6", "7", "8", "9", "10"},
			ImageURL:       "https://images.shoecart.dev/pegasus.jpg",
			Description:    "Responsive cushioning for daily miles.",
			Warranty:       "6 months",
		},
		models.Product{
			ID: "102", Name: "Suede Classic", Brand: "Puma", Category: "Casual",
			Price: 4999, InStock: true,
			AvailableSizes: []string{"5", "6", "7", "8", "9"},
			ImageURL:       "https://images.shoecart.dev/suede.jpg",
			Description:    "The street staple since 1968.",
		},
		models.Product{
			ID: "103", Name: "Oxford Derby", Brand: "Clarks", Category: "Formal",
			Price: 6499, InStock: true,
			AvailableSizes: []string{"7", "8", "9", "10"},
			ImageURL:       "https://images.shoecart.dev/derby.jpg",
			SpecialOffer:   "Free polish kit",
		},
		models.Product{
			ID: "104", Name: "Chuck Taylor All Star", Brand: "Converse", Category: "Sneakers",
			Price: 3999, InStock: true,
			AvailableSizes: []string{"4", "5", "6", "7", "8", "9", "10"},
			ImageURL:       "https://images.shoecart.dev/chuck.jpg",
		},
		models.Product{
			ID: "105", Name: "Comfort Slide", Brand: "Crocs", Category: "Slippers",
			Price: 1999, InStock: false,
			AvailableSizes: []string{"6", "7", "8"},
			ImageURL:       "https://images.shoecart.dev/slide.jpg",
		},
		models.Product{
			ID: "106", Name: "Cloud Runner W", Brand: "Asics", Category: "Women",
			Price: 7499, Discount: 15, InStock: true,
			AvailableSizes: []string{"4", "5", "6", "7"},
			ImageURL:       "https://images.shoecart.dev/cloud.jpg",
		},
		models.Product{
			ID: "107", Name: "Leather Loafer", Brand: "Bata", Category: "Men's",
			Price: 2999, InStock: true,
			AvailableSizes: []string{"7", "8", "9", "10"},
			ImageURL:       "https://images.shoecart.dev/loafer.jpg",
		},
	)
}
