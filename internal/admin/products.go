package admin

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/rinsh4dd/e-com/internal/models"
	"github.com/rinsh4dd/e-com/internal/shop"
	"github.com/rinsh4dd/e-com/internal/store"
)

const ProductsPerPage = 10

var (
	Categories = []string{"Men's", "Women", "Casual", "Running", "Formal", "Sneakers", "Slippers"}
	Sizes      = []string{"4", "5", "6", "7", "8", "9", "10"}
)

type ProductPage struct {
	Products   []models.Product `json:"products"`
	Page       int              `json:"page"`
	TotalPages int              `json:"totalPages"`
	Total      int              `json:"total"`
}

// ProductUpdate names the fields to change; nil fields are left alone.
type ProductUpdate struct {
	Name              *string   `json:"name,omitempty"`
	Description       *string   `json:"description,omitempty"`
	Price             *float64  `json:"price,omitempty"`
	Category          *string   `json:"category,omitempty"`
	Brand             *string   `json:"brand,omitempty"`
	AvailableSizes    *[]string `json:"available_sizes,omitempty"`
	ImageURL          *string   `json:"image_url,omitempty"`
	InStock           *bool     `json:"in_stock,omitempty"`
	Discount          *float64  `json:"discount,omitempty"`
	SpecialOffer      *string   `json:"special_offer,omitempty"`
	Warranty          *string   `json:"warranty,omitempty"`
	AdditionalDetails *string   `json:"additional_details,omitempty"`
}

// apply returns the merged product, the fields to patch and the names of the
// struct fields that changed.
func (u ProductUpdate) apply(p models.Product) (models.Product, store.Fields, []string) {
	fields := store.Fields{}
	var changed []string
	set := func(name, field string, v any) {
		fields[name] = v
		changed = append(changed, field)
	}
	if u.Name != nil {
		p.Name = *u.Name
		set("name", "Name", p.Name)
	}
	if u.Description != nil {
		p.Description = *u.Description
		set("description", "Description", p.Description)
	}
	if u.Price != nil {
		p.Price = *u.Price
		set("price", "Price", p.Price)
	}
	if u.Category != nil {
		p.Category = *u.Category
		set("category", "Category", p.Category)
	}
	if u.Brand != nil {
		p.Brand = *u.Brand
		set("brand", "Brand", p.Brand)
	}
	if u.AvailableSizes != nil {
		p.AvailableSizes = *u.AvailableSizes
		set("available_sizes", "AvailableSizes", p.AvailableSizes)
	}
	if u.ImageURL != nil {
		p.ImageURL = *u.ImageURL
		set("image_url", "ImageURL", p.ImageURL)
	}
	if u.InStock != nil {
		p.InStock = *u.InStock
		set(store.FieldInStock, "InStock", p.InStock)
	}
	if u.Discount != nil {
		p.Discount = *u.Discount
		set("discount", "Discount", p.Discount)
	}
	if u.SpecialOffer != nil {
		p.SpecialOffer = *u.SpecialOffer
		set("special_offer", "SpecialOffer", p.SpecialOffer)
	}
	if u.Warranty != nil {
		p.Warranty = *u.Warranty
		set("warranty", "Warranty", p.Warranty)
	}
	if u.AdditionalDetails != nil {
		p.AdditionalDetails = *u.AdditionalDetails
		set("additional_details", "AdditionalDetails", p.AdditionalDetails)
	}
	return p, fields, changed
}

// ListProducts searches name, brand and category and returns one page.
func (s *Service) ListProducts(ctx context.Context, search string, page int) (*ProductPage, error) {
	if page < 1 {
		return nil, ErrInvalidPage
	}
	all, err := s.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	q := strings.ToLower(strings.TrimSpace(search))
	matched := []models.Product{}
	for _, p := range all {
		if q == "" ||
			strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Brand), q) ||
			strings.Contains(strings.ToLower(p.Category), q) {
			matched = append(matched, p)
		}
	}

	total := len(matched)
	start := min((page-1)*ProductsPerPage, total)
	end := min(start+ProductsPerPage, total)
	return &ProductPage{
		Products:   matched[start:end],
		Page:       page,
		TotalPages: (total + ProductsPerPage - 1) / ProductsPerPage,
		Total:      total,
	}, nil
}

func (s *Service) validateProduct(p models.Product) error {
	if err := s.validate.Struct(p); err != nil {
		return productValidationError(err)
	}
	if p.Category != "" && !slices.Contains(Categories, p.Category) {
		return ErrInvalidProduct.WithDetails(map[string]string{"category": "Unknown category"})
	}
	return nil
}

// validateChanged checks only the given struct fields, so stored values that
// predate the form rules do not block an unrelated edit.
func (s *Service) validateChanged(p models.Product, changed []string) error {
	if err := s.validate.StructPartial(p, changed...); err != nil {
		return productValidationError(err)
	}
	if slices.Contains(changed, "Category") && p.Category != "" && !slices.Contains(Categories, p.Category) {
		return ErrInvalidProduct.WithDetails(map[string]string{"category": "Unknown category"})
	}
	return nil
}

func productValidationError(err error) error {
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return ErrInvalidProduct.Wrap(err)
	}
	details := map[string]string{}
	for _, fe := range vErrs {
		details[fe.Field()] = fe.Tag()
	}
	return ErrInvalidProduct.WithDetails(details)
}

func (s *Service) CreateProduct(ctx context.Context, p models.Product) (*models.Product, error) {
	p.ID = ""
	p.Name = strings.TrimSpace(p.Name)
	if p.AvailableSizes == nil {
		p.AvailableSizes = []string{}
	}
	if err := s.validateProduct(p); err != nil {
		return nil, err
	}
	created, err := s.products.Create(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	s.logger.Info("product created", zap.String("product_id", created.ID.String()))
	return created, nil
}

func (s *Service) UpdateProduct(ctx context.Context, id models.ID, upd ProductUpdate) (*models.Product, error) {
	cur, err := s.products.Get(ctx, id)
	if err != nil {
		return nil, productErr(id, err)
	}
	next, fields, changed := upd.apply(*cur)
	if len(fields) == 0 {
		return cur, nil
	}
	if err := s.validateChanged(next, changed); err != nil {
		return nil, err
	}
	return s.patchProduct(ctx, id, next, fields)
}

func (s *Service) ToggleStock(ctx context.Context, id models.ID) (*models.Product, error) {
	cur, err := s.products.Get(ctx, id)
	if err != nil {
		return nil, productErr(id, err)
	}
	next := *cur
	next.InStock = !cur.InStock
	p, err := s.patchProduct(ctx, id, next, store.Fields{store.FieldInStock: next.InStock})
	if err != nil {
		return nil, err
	}
	s.logger.Info("product stock toggled", zap.String("product_id", id.String()), zap.Bool("in_stock", p.InStock))
	return p, nil
}

func (s *Service) DeleteProduct(ctx context.Context, id models.ID) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return productErr(id, err)
	}
	s.logger.Info("product deleted", zap.String("product_id", id.String()))
	return nil
}

// patchProduct falls back to the locally computed product when the server
// answers without a body.
func (s *Service) patchProduct(ctx context.Context, id models.ID, next models.Product, fields store.Fields) (*models.Product, error) {
	got, err := s.products.Patch(ctx, id, fields)
	if err != nil {
		return nil, productErr(id, err)
	}
	if got == nil {
		return &next, nil
	}
	return got, nil
}

func productErr(id models.ID, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return shop.ErrProductNotFound.Wrap(err)
	}
	return fmt.Errorf("product %s: %w", id, err)
}
