package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Kilat-Pet-Delivery/petfriends/internal/response"
)

const (
	// AuthKeyHeader carries the API key on every pet call.
	AuthKeyHeader = "auth_key"
	// RequestIDHeader is echoed back on every response.
	RequestIDHeader = "X-Request-ID"

	accountIDKey = "account_id"
	requestIDKey = "request_id"
)

// KeyAuthenticator resolves an API key to an account id.
type KeyAuthenticator interface {
	Authenticate(ctx context.Context, key string) (uuid.UUID, error)
}

// AuthMiddleware rejects requests without a valid auth_key header with 403.
func AuthMiddleware(auth KeyAuthenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		accountID, err := auth.Authenticate(c.Request.Context(), c.GetHeader(AuthKeyHeader))
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		c.Set(accountIDKey, accountID)
		c.Next()
	}
}

// GetAccountID returns the account resolved by AuthMiddleware.
func GetAccountID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(accountIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// RequestIDMiddleware assigns a request id unless the caller sent one.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// LoggerMiddleware logs one line per request.
func LoggerMiddleware(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.String("traceparent", c.GetHeader("Traceparent")),
		)
	}
}

// RecoveryMiddleware turns panics into 500 pages.
func RecoveryMiddleware(log *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error("panic recovered",
			zap.Any("panic", recovered),
			zap.String("path", c.Request.URL.Path),
		)
		response.Page(c, http.StatusInternalServerError, "The server encountered an internal error.")
		c.Abort()
	})
}

// NoRoute answers unknown paths with the 404 page.
func NoRoute() gin.HandlerFunc {
	return func(c *gin.Context) {
		response.Page(c, http.StatusNotFound, "The requested URL was not found on the server.")
	}
}
