// Package api serves the storefront over HTTP. Handlers are thin: they bind
// the request, call one service operation and wrap the result in the common
// response envelope.
package api

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rinsh4dd/e-com/internal/app"
	"github.com/rinsh4dd/e-com/internal/config"
)

type Handler struct {
	svc    *app.Services
	logger *zap.Logger
}

func NewHandler(svc *app.Services, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: svc, logger: logger}
}

func NewRouter(svc *app.Services, cfg config.ServerConfig, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := NewHandler(svc, logger)

	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), RequestLogger(logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", requestIDKey},
		ExposeHeaders:    []string{requestIDKey},
		AllowCredentials: true,
	}))
	r.NoRoute(func(c *gin.Context) {
		writeError(c, ErrRouteNotFound)
	})

	api := r.Group("/api")

	// Auth
	anon := api.Group("", AnonymousOnly(svc.Tokens))
	{
		anon.POST("/register", h.Register)
		anon.POST("/login", h.Login)
		anon.POST("/admin/login", h.AdminLogin)
	}

	// Products
	api.GET("/products", h.ListProducts)
	api.GET("/products/:productId", h.GetProduct)
	api.GET("/categories", h.Categories)

	user := api.Group("", Authenticate(svc.Tokens))
	{
		user.GET("/me", h.Me)

		// Cart
		user.GET("/cart", h.GetCart)
		user.POST("/cart", h.AddToCart)
		user.PATCH("/cart/:productId", h.SetCartQuantity)
		user.DELETE("/cart/:productId", h.RemoveCartItem)
		user.POST("/cart/:productId/increase", h.IncreaseCartItem)
		user.POST("/cart/:productId/decrease", h.DecreaseCartItem)

		// Wishlist
		user.GET("/wishlist", h.GetWishlist)
		user.POST("/wishlist", h.AddToWishlist)
		user.POST("/wishlist/toggle", h.ToggleWishlist)
		user.DELETE("/wishlist/:productId", h.RemoveFromWishlist)

		// Checkout and orders
		user.GET("/checkout", h.CheckoutPrefill)
		user.POST("/checkout", h.PlaceOrder)
		user.GET("/orders", h.ListOrders)
		user.GET("/orders/:orderId", h.GetOrder)
		user.POST("/orders/:orderId/cancel", h.CancelOrder)
	}

	adm := api.Group("/admin", Authenticate(svc.Tokens), AdminOnly())
	{
		adm.GET("/dashboard", h.Dashboard)

		adm.GET("/users", h.AdminListUsers)
		adm.PATCH("/users/:userId/block", h.AdminSetBlocked)
		adm.DELETE("/users/:userId", h.AdminDeleteUser)
		adm.GET("/users/:userId/orders", h.AdminUserOrders)

		adm.GET("/orders", h.AdminListOrders)
		adm.GET("/orders/stats", h.AdminOrderStats)
		adm.GET("/orders/top-products", h.AdminTopProducts)
		adm.PATCH("/orders/:userId/:orderId", h.AdminUpdateOrderStatus)

		adm.GET("/products", h.AdminListProducts)
		adm.POST("/products", h.AdminCreateProduct)
		adm.PATCH("/products/:productId", h.AdminUpdateProduct)
		adm.POST("/products/:productId/toggle-stock", h.AdminToggleStock)
		adm.DELETE("/products/:productId", h.AdminDeleteProduct)
	}

	r.GET("/healthz", func(c *gin.Context) {
		success(c, http.StatusOK, "ok", nil)
	})
	return r
}
