package api

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rinsh4dd/e-com/internal/auth"
	"github.com/rinsh4dd/e-com/internal/session"
)

const identityKey = "identity"

// RequestID keeps the caller's X-Request-ID or assigns a new one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDKey)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDKey, id)
		c.Next()
	}
}

func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("route", c.FullPath()),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", c.GetString(requestIDKey)),
		}
		if id := identityOf(c); id != nil {
			fields = append(fields, zap.String("user_id", id.ID.String()))
		}
		switch {
		case status >= 500:
			logger.Error("request", fields...)
		case status >= 400:
			logger.Warn("request", fields...)
		default:
			logger.Info("request", fields...)
		}
	}
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	token, ok := strings.CutPrefix(h, "Bearer ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}

// Authenticate requires a valid bearer token and stores its identity on the
// context.
func Authenticate(tokens *auth.Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := bearerToken(c)
		if tokenStr == "" {
			writeError(c, auth.ErrMissingToken)
			return
		}
		id, err := tokens.Parse(tokenStr)
		if err != nil {
			writeError(c, err)
			return
		}
		if err := auth.RequireIdentity(id); err != nil {
			writeError(c, err)
			return
		}
		c.Set(identityKey, id)
		c.Next()
	}
}

// AdminOnly must run after Authenticate.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := auth.RequireAdmin(identityOf(c)); err != nil {
			writeError(c, err)
			return
		}
		c.Next()
	}
}

// AnonymousOnly turns away callers presenting a valid token.
func AnonymousOnly(tokens *auth.Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		var id *session.Identity
		if tokenStr := bearerToken(c); tokenStr != "" {
			id, _ = tokens.Parse(tokenStr)
		}
		if err := auth.RequireAnonymous(id); err != nil {
			writeError(c, err)
			return
		}
		c.Next()
	}
}

func identityOf(c *gin.Context) *session.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	id, _ := v.(*session.Identity)
	return id
}
