// models.go

package models

import (
	"encoding/json"
	"strings"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// IsAdmin matches the role case-insensitively; older documents were written
// with "User" by the registration form.
func (r Role) IsAdmin() bool {
	return strings.EqualFold(string(r), string(RoleAdmin))
}

// ID is a resource identifier. Resource servers hand out either numbers or
// strings, so both decode into the same value.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

type Address struct {
	Street  string `json:"street" bson:"street"`
	City    string `json:"city" bson:"city"`
	State   string `json:"state" bson:"state"`
	Zip     string `json:"zip" bson:"zip"`
	Country string `json:"country" bson:"country"`
}

// Complete reports whether the fields checkout needs are all present.
func (a Address) Complete() bool {
	return strings.TrimSpace(a.Street) != "" &&
		strings.TrimSpace(a.City) != "" &&
		strings.TrimSpace(a.State) != "" &&
		strings.TrimSpace(a.Zip) != ""
}

type User struct {
	ID              ID             `json:"id,omitempty" bson:"id"`
	Name            string         `json:"name" bson:"name"`
	Email           string         `json:"email" bson:"email"`
	Password        string         `json:"password,omitempty" bson:"password,omitempty"`
	Role            Role           `json:"role" bson:"role"`
	IsBlocked       bool           `json:"isBlocked" bson:"isBlocked"`
	CreatedAt       string         `json:"created_at,omitempty" bson:"created_at,omitempty"`
	Cart            []CartItem     `json:"cart" bson:"cart"`
	Wishlist        []WishlistItem `json:"wishlist" bson:"wishlist"`
	Orders          []Order        `json:"orders" bson:"orders"`
	ShippingAddress *Address       `json:"shippingAddress,omitempty" bson:"shippingAddress,omitempty"`
}

// Public returns a copy that is safe to hand to clients.
func (u User) Public() User {
	u.Password = ""
	return u
}

type Product struct {
	ID                ID       `json:"id,omitempty" bson:"id"`
	Name              string   `json:"name" bson:"name" validate:"required"`
	Description       string   `json:"description" bson:"description"`
	Price             float64  `json:"price" bson:"price" validate:"gt=0"`
	Category          string   `json:"category" bson:"category"`
	Brand             string   `json:"brand" bson:"brand" validate:"required"`
	AvailableSizes    []string `json:"available_sizes" bson:"available_sizes" validate:"dive,oneof=4 5 6 7 8 9 10"`
	ImageURL          string   `json:"image_url" bson:"image_url" validate:"required"`
	InStock           bool     `json:"in_stock" bson:"in_stock"`
	Discount          float64  `json:"discount" bson:"discount" validate:"gte=0,lte=100"`
	SpecialOffer      string   `json:"special_offer" bson:"special_offer"`
	Warranty          string   `json:"warranty" bson:"warranty"`
	AdditionalDetails string   `json:"additional_details,omitempty" bson:"additional_details,omitempty"`
}

// HasSize reports whether size is one of the product's sizes. Products
// without a size list accept any size.
func (p Product) HasSize(size string) bool {
	if len(p.AvailableSizes) == 0 {
		return true
	}
	for _, s := range p.AvailableSizes {
		if s == size {
			return true
		}
	}
	return false
}

type CartItem struct {
	ProductID ID      `json:"id" bson:"id"`
	Name      string  `json:"name" bson:"name"`
	Price     float64 `json:"price" bson:"price"`
	Size      string  `json:"size" bson:"size"`
	Quantity  int     `json:"quantity" bson:"quantity"`
	ImageURL  string  `json:"image_url" bson:"image_url"`
}

// CartKey identifies a cart line. The same product in two sizes is two lines.
type CartKey struct {
	ProductID ID
	Size      string
}

func (c CartItem) Key() CartKey {
	return CartKey{ProductID: c.ProductID, Size: c.Size}
}

type WishlistItem struct {
	ProductID ID      `json:"id" bson:"id"`
	Name      string  `json:"name" bson:"name"`
	Price     float64 `json:"price" bson:"price"`
	ImageURL  string  `json:"image_url" bson:"image_url"`
	Brand     string  `json:"brand" bson:"brand"`
}

// CartItemFor builds the cart line for a product in the given size.
func CartItemFor(p Product, size string, quantity int) CartItem {
	return CartItem{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Size:      size,
		Quantity:  quantity,
		ImageURL:  p.ImageURL,
	}
}

// WishlistItemFor builds the wishlist entry for a product.
func WishlistItemFor(p Product) WishlistItem {
	return WishlistItem{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		ImageURL:  p.ImageURL,
		Brand:     p.Brand,
	}
}

type Order struct {
	ID             int64         `json:"id" bson:"id"`
	Items          []CartItem    `json:"items" bson:"items"`
	TotalAmount    float64       `json:"totalAmount" bson:"totalAmount"`
	PaymentMethod  string        `json:"paymentMethod" bson:"paymentMethod"`
	PaymentStatus  PaymentStatus `json:"paymentStatus" bson:"paymentStatus"`
	OrderStatus    OrderStatus   `json:"orderStatus" bson:"orderStatus"`
	BillingAddress Address       `json:"billingAddress" bson:"billingAddress"`
	CreatedAt      string        `json:"createdAt" bson:"createdAt"`
}
