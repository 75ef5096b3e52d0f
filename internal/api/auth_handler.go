package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rinsh4dd/e-com/internal/apperror"
	"github.com/rinsh4dd/e-com/internal/auth"
	"github.com/rinsh4dd/e-com/internal/models"
	"github.com/rinsh4dd/e-com/internal/session"
)

var ErrRouteNotFound = apperror.New(apperror.CodeNotFound, "not found", http.StatusNotFound)

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

type MeResponse struct {
	User      models.User `json:"user"`
	CartCount int         `json:"cartCount"`
}

func (h *Handler) Register(c *gin.Context) {
	var req auth.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	u, err := h.svc.Auth.Register(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.signIn(c, http.StatusCreated, "Registration successful", u)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	u, err := h.svc.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.signIn(c, http.StatusOK, "Login successful", u)
}

func (h *Handler) AdminLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	u, err := h.svc.Auth.AdminLogin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.signIn(c, http.StatusOK, "Admin login successful", u)
}

func (h *Handler) signIn(c *gin.Context, status int, message string, u *models.User) {
	token, err := h.svc.Tokens.Issue(session.IdentityOf(*u))
	if err != nil {
		h.fail(c, err)
		return
	}
	success(c, status, message, LoginResponse{Token: token, User: u.Public()})
}

func (h *Handler) Me(c *gin.Context) {
	id := identityOf(c)
	u, err := h.svc.Users.Get(c.Request.Context(), id.ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	success(c, http.StatusOK, "", MeResponse{User: u.Public(), CartCount: len(u.Cart)})
}
