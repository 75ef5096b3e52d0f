package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rinsh4dd/e-com/internal/admin"
	"github.com/rinsh4dd/e-com/internal/models"
)

type BlockRequest struct {
	Blocked *bool `json:"blocked" binding:"required"`
}

type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *Handler) Dashboard(c *gin.Context) {
	d, err := h.svc.Admin.Dashboard(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	success(c, http.StatusOK, "", d)
}

// ----- Users -----

func (h *Handler) AdminListUsers(c *gin.Context) {
	var f admin.UserFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		h.badRequest(c, err)
		return
	}
	users, err := h.svc.Admin.ListUsers(c.Request.Context(), f)
	if err != nil {
		h.fail(c, err)
		return
	}
	success(c, http.StatusOK, "", users)
}

func (h *Handler) AdminSetBlocked(c *gin.Context) {
	var req BlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	u, err := h.svc.Admin.SetBlocked(c.Request.Context(), models.ID(c.Param("userId")), *req.Blocked)
	if err != nil {
		h.fail(c, err)
		return
	}
	msg := "User unblocked"
	if u.IsBlocked {
		msg = "User blocked"
	}
	success(c, http.StatusOK, msg, u)
}

func (h *Handler) AdminDeleteUser(c *gin.Context) {
	if err := h.svc.Admin.DeleteUser(c.Request.Context(), models.ID(c.Param("userId"))); err != nil {
		h.fail(c, err)
		return
	}
	success(c, http.StatusOK, "User deleted", nil)
}

func (h *Handler) AdminUserOrders(c *gin.Context) {
	uo, err := h.svc.Admin.UserOrders(c.Request.Context(), models.ID(c.Param("userId")))
	if err != nil {
		h.fail(c, err)
		return
	}
	success(c, http.StatusOK, "", uo)
}

// ----- Orders -----

func (h *Handler) AdminListOrders(c *gin.Context) {
	rows, err := h.svc.Admin.ListOrders(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	success(c, http.StatusOK, "", rows)
}

func (h *Handler) AdminOrderStats(c *gin.Context) {
	st, err := h.svc.Admin.OrderStats(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	success(c, http.StatusOK, "", st)
}

func (h *Handler) AdminTopProducts(c *gin.Context) {
	top, err := h.svc.Admin.TopProducts(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	success(c, http.StatusOK, "", top)
}

func (h *Handler) AdminUpdateOrderStatus(c *gin.Context) {
	orderID, ok := h.orderID(c)
	if !ok {
		return
	}
	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	o, err := h.svc.Admin.UpdateOrderStatus(c.Request.Context(), models.ID(c.Param("userId")), orderID, models.OrderStatus(req.Status))
	if err != nil {
		h.fail(c, err)
		return
	}
	success(c, http.StatusOK, "Order status updated", o)
}

// ----- Products -----

func (h *Handler) AdminListProducts(c *gin.Context) {
	page := 1
	if v := c.Query("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			h.badRequest(c, err)
			return
		}
		page = n
	}
	p, err := h.svc.Admin.ListProducts(c.Request.Context(), c.Query("search"), page)
	if err != nil {
		h.fail(c, err)
		return
	}
	success(c, http.StatusOK, "", p)
}

func (h *Handler) AdminCreateProduct(c *gin.Context) {
	var req models.Product
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	p, err := h.svc.Admin.CreateProduct(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	success(c, http.StatusCreated, "Product added", p)
}

func (h *Handler) AdminUpdateProduct(c *gin.Context) {
	var req admin.ProductUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	p, err := h.svc.Admin.UpdateProduct(c.Request.Context(), models.ID(c.Param("productId")), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	success(c, http.StatusOK, "Product updated", p)
}

func (h *Handler) AdminToggleStock(c *gin.Context) {
	p, err := h.svc.Admin.ToggleStock(c.Request.Context(), models.ID(c.Param("productId")))
	if err != nil {
		h.fail(c, err)
		return
	}
	success(c, http.StatusOK, "Stock updated", p)
}

func (h *Handler) AdminDeleteProduct(c *gin.Context) {
	if err := h.svc.Admin.DeleteProduct(c.Request.Context(), models.ID(c.Param("productId"))); err != nil {
		h.fail(c, err)
		return
	}
	success(c, http.StatusOK, "Product deleted", nil)
}
