package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/rinsh4dd/e-com/internal/models"
	"github.com/rinsh4dd/e-com/internal/shop"
)

type CartResponse struct {
	Items []models.CartItem `json:"items"`
	Total decimal.Decimal   `json:"total"`
	Count int               `json:"count"`
}

func cartResponse(items []models.CartItem) CartResponse {
	return CartResponse{Items: items, Total: shop.CartTotal(items), Count: shop.CartItemCount(items)}
}

type AddToCartRequest struct {
	ProductID models.ID `json:"productId" binding:"required"`
	Size      string    `json:"size"`
	Quantity  int       `json:"quantity"`
}

type QuantityRequest struct {
	Quantity int `json:"quantity"`
}

type WishlistRequest struct {
	ProductID models.ID `json:"productId" binding:"required"`
}

type ToggleResponse struct {
	Items []models.WishlistItem `json:"items"`
	Added bool                  `json:"added"`
}

// ----- Products -----

func (h *Handler) ListProducts(c *gin.Context) {
	var f shop.ProductFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		h.badRequest(c, err)
		return
	}
	products, err := h.svc.Catalog.List(c.Request.Context(), f)
	if err != nil {
		h.fail(c, err)
		return
	}
	success(c, http.StatusOK, "", products)
}

func (h *Handler) GetProduct(c *gin.Context) {
	p, err := h.svc.Catalog.Get(c.Request.Context(), models.ID(c.Param("productId")))
	if err != nil {
		h.fail(c, err)
		return
	}
	success(c, http.StatusOK, "", p)
}

func (h *Handler) Categories(c *gin.Context) {
	cats, err := h.svc.Catalog.Categories(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	success(c, http.StatusOK, "", append([]string{shop.AllCategories}, cats...))
}

// ----- Cart -----

func cartKey(c *gin.Context) models.CartKey {
	return models.CartKey{ProductID: models.ID(c.Param("productId")), Size: c.Query("size")}
}

func (h *Handler) GetCart(c *gin.Context) {
	items, err := h.svc.Cart.Get(c.Request.Context(), identityOf(c).ID)
	h.cartResult(c, "", items, err)
}

func (h *Handler) AddToCart(c *gin.Context) {
	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	items, err := h.svc.Cart.Add(c.Request.Context(), identityOf(c).ID, req.ProductID, req.Size, req.Quantity)
	h.cartResult(c, "Added to cart", items, err)
}

func (h *Handler) SetCartQuantity(c *gin.Context) {
	var req QuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	items, err := h.svc.Cart.SetQuantity(c.Request.Context(), identityOf(c).ID, cartKey(c), req.Quantity)
	h.cartResult(c, "Cart updated", items, err)
}

func (h *Handler) RemoveCartItem(c *gin.Context) {
	items, err := h.svc.Cart.Remove(c.Request.Context(), identityOf(c).ID, cartKey(c))
	h.cartResult(c, "Item removed from cart", items, err)
}

func (h *Handler) IncreaseCartItem(c *gin.Context) {
	items, err := h.svc.Cart.Increase(c.Request.Context(), identityOf(c).ID, cartKey(c))
	h.cartResult(c, "Cart updated", items, err)
}

func (h *Handler) DecreaseCartItem(c *gin.Context) {
	items, err := h.svc.Cart.Decrease(c.Request.Context(), identityOf(c).ID, cartKey(c))
	h.cartResult(c, "Cart updated", items, err)
}

func (h *Handler) cartResult(c *gin.Context, message string, items []models.CartItem, err error) {
	if err != nil {
		h.fail(c, err)
		return
	}
	success(c, http.StatusOK, message, cartResponse(items))
}

// ----- Wishlist -----

func (h *Handler) GetWishlist(c *gin.Context) {
	items, err := h.svc.Wishlist.Get(c.Request.Context(), identityOf(c).ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	success(c, http.StatusOK, "", items)
}

func (h *Handler) AddToWishlist(c *gin.Context) {
	var req WishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	items, err := h.svc.Wishlist.Add(c.Request.Context(), identityOf(c).ID, req.ProductID)
	if err != nil {
		h.fail(c, err)
		return
	}
	success(c, http.StatusOK, "Added to wishlist", items)
}

func (h *Handler) ToggleWishlist(c *gin.Context) {
	var req WishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	items, added, err := h.svc.Wishlist.Toggle(c.Request.Context(), identityOf(c).ID, req.ProductID)
	if err != nil {
		h.fail(c, err)
		return
	}
	msg := "Removed from wishlist"
	if added {
		msg = "Added to wishlist"
	}
	success(c, http.StatusOK, msg, ToggleResponse{Items: items, Added: added})
}

func (h *Handler) RemoveFromWishlist(c *gin.Context) {
	items, err := h.svc.Wishlist.Remove(c.Request.Context(), identityOf(c).ID, models.ID(c.Param("productId")))
	if err != nil {
		h.fail(c, err)
		return
	}
	success(c, http.StatusOK, "Removed from wishlist", items)
}

// ----- Checkout and orders -----

func (h *Handler) CheckoutPrefill(c *gin.Context) {
	p, err := h.svc.Checkout.Prefill(c.Request.Context(), identityOf(c).ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	success(c, http.StatusOK, "", p)
}

func (h *Handler) PlaceOrder(c *gin.Context) {
	var req shop.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	o, err := h.svc.Checkout.Checkout(c.Request.Context(), identityOf(c).ID, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	success(c, http.StatusCreated, "Order placed successfully", o)
}

func (h *Handler) ListOrders(c *gin.Context) {
	orders, err := h.svc.Orders.List(c.Request.Context(), identityOf(c).ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	success(c, http.StatusOK, "", orders)
}

func (h *Handler) GetOrder(c *gin.Context) {
	orderID, ok := h.orderID(c)
	if !ok {
		return
	}
	o, err := h.svc.Orders.Get(c.Request.Context(), identityOf(c).ID, orderID)
	if err != nil {
		h.fail(c, err)
		return
	}
	success(c, http.StatusOK, "", o)
}

func (h *Handler) CancelOrder(c *gin.Context) {
	orderID, ok := h.orderID(c)
	if !ok {
		return
	}
	o, err := h.svc.Orders.Cancel(c.Request.Context(), identityOf(c).ID, orderID)
	if err != nil {
		h.fail(c, err)
		return
	}
	success(c, http.StatusOK, "Order cancelled", o)
}

func (h *Handler) orderID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("orderId"), 10, 64)
	if err != nil {
		h.badRequest(c, err)
		return 0, false
	}
	return id, true
}
