package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rinsh4dd/e-com/internal/apperror"
)

const requestIDKey = "X-Request-ID"

type Envelope struct {
	Success   bool         `json:"success"`
	Data      any          `json:"data"`
	Error     *ErrorDetail `json:"error"`
	Message   string       `json:"message"`
	RequestID string       `json:"requestId"`
	Timestamp string       `json:"timestamp"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details"`
}

var ErrBadRequest = apperror.New(apperror.CodeInvalidInput, "invalid input", http.StatusBadRequest)

func success(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Envelope{
		Success:   true,
		Data:      data,
		Message:   message,
		RequestID: c.GetString(requestIDKey),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func writeError(c *gin.Context, err error) {
	he := apperror.ToHTTP(err)
	c.AbortWithStatusJSON(he.Status, Envelope{
		Success: false,
		Error: &ErrorDetail{
			Code:    he.Code,
			Message: he.Message,
			Details: he.Details,
		},
		Message:   he.Message,
		RequestID: c.GetString(requestIDKey),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// fail writes err as an error envelope. Errors without an application code
// are logged, since the client only sees a generic message.
func (h *Handler) fail(c *gin.Context, err error) {
	_ = c.Error(err)
	if apperror.CodeOf(err) == apperror.CodeInternalError {
		h.logger.Error("request failed",
			zap.String("route", c.FullPath()),
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.Error(err))
	}
	writeError(c, err)
}

func (h *Handler) badRequest(c *gin.Context, err error) {
	h.fail(c, ErrBadRequest.WithDetails(err.Error()))
}
