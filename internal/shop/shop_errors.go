package shop

import (
	"net/http"

	"github.com/rinsh4dd/e-com/internal/apperror"
)

var (
	ErrInvalidQuantity = apperror.New(apperror.CodeInvalidInput, "Quantity must be between 1 and 99", http.StatusBadRequest)
	ErrSizeRequired    = apperror.New(apperror.CodeInvalidInput, "Please select a size", http.StatusBadRequest)
	ErrSizeUnavailable = apperror.New(apperror.CodeInvalidInput, "Size is not available for this product", http.StatusBadRequest)
	ErrOutOfStock      = apperror.New(apperror.CodeConflict, "Product is out of stock", http.StatusConflict)
	ErrItemNotInCart   = apperror.New(apperror.CodeNotFound, "Item is not in your cart", http.StatusNotFound)
	ErrEmptyCart       = apperror.New(apperror.CodeInvalidInput, "Your cart is empty", http.StatusBadRequest)

	ErrIncompleteAddress = apperror.New(apperror.CodeInvalidInput, "Please complete your billing address", http.StatusBadRequest)
	ErrInvalidPayment    = apperror.New(apperror.CodeInvalidInput, "Invalid payment details", http.StatusBadRequest)

	ErrUserNotFound    = apperror.New(apperror.CodeNotFound, "User not found", http.StatusNotFound)
	ErrProductNotFound = apperror.New(apperror.CodeNotFound, "Product not found", http.StatusNotFound)
	ErrOrderNotFound   = apperror.New(apperror.CodeNotFound, "No such order", http.StatusNotFound)

	ErrUnknownStatus     = apperror.New(apperror.CodeInvalidInput, "Unknown order status", http.StatusBadRequest)
	ErrInvalidTransition = apperror.New(apperror.CodeConflict, "Order status cannot change", http.StatusConflict)
)
