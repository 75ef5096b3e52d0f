package auth

import (
	"net/http"

	"github.com/rinsh4dd/e-com/internal/apperror"
)

var (
	ErrInvalidCredentials      = apperror.New(apperror.CodeUnauthorized, "Invalid email or password", http.StatusUnauthorized)
	ErrInvalidAdminCredentials = apperror.New(apperror.CodeUnauthorized, "Invalid admin credentials", http.StatusUnauthorized)
	ErrAccountBlocked          = apperror.New(apperror.CodeForbidden, "Your account is blocked. Contact admin.", http.StatusForbidden)
	ErrEmailTaken              = apperror.New(apperror.CodeConflict, "This email is already registered", http.StatusConflict)
	ErrInvalidRegistration     = apperror.New(apperror.CodeInvalidInput, "Please fix the highlighted fields", http.StatusBadRequest)

	ErrLoginRequired   = apperror.New(apperror.CodeUnauthorized, "Please log in to continue", http.StatusUnauthorized)
	ErrAdminRequired   = apperror.New(apperror.CodeForbidden, "Admin access required", http.StatusForbidden)
	ErrAlreadySignedIn = apperror.New(apperror.CodeConflict, "You are already signed in", http.StatusConflict)

	ErrInvalidToken = apperror.New(apperror.CodeUnauthorized, "invalid token", http.StatusUnauthorized)
	ErrMissingToken = apperror.New(apperror.CodeUnauthorized, "missing token", http.StatusUnauthorized)
)
