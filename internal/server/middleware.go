package server

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"network/internal/session"
)

// SessionMiddleware resolves the session cookie into a request identity.
// It never aborts: most pages are public, and each handler decides what an
// anonymous viewer may do. On success it sets "user_id" (uuid.UUID) and
// "username" in the gin context.
func SessionMiddleware(sessionMgr session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie("session_id")
		if err != nil {
			c.Next()
			return
		}

		sess, err := sessionMgr.Get(c.Request.Context(), sessionID)
		if err != nil {
			slog.Debug("Invalid session",
				"error", err.Error(),
				"request_id", c.GetString("request_id"),
			)
			c.Next()
			return
		}

		if time.Now().After(sess.ExpiresAt) {
			c.Next()
			return
		}

		userID, err := uuid.Parse(sess.UserID)
		if err != nil {
			slog.Warn("Session with malformed user ID",
				"session_id", sess.ID,
				"request_id", c.GetString("request_id"),
			)
			c.Next()
			return
		}

		c.Set("user_id", userID)
		c.Set("username", sess.Username)
		c.Next()
	}
}

// RequestIDMiddleware tags every request with a unique ID for log correlation
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.New().String()

		c.Set("request_id", requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)

		c.Next()
	}
}

// LoggingMiddleware logs every request with structured attributes
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		rw := newResponseWriter(c.Writer)
		c.Writer = rw

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		attrs := []any{
			"request_id", c.GetString("request_id"),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency_ms", float64(latency.Milliseconds()),
			"client_ip", c.ClientIP(),
			"response_size", rw.Size(),
		}

		if query := c.Request.URL.RawQuery; query != "" {
			attrs = append(attrs, "query", query)
		}
		if userID, exists := c.Get("user_id"); exists {
			attrs = append(attrs, "user_id", userID)
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, "error", c.Errors.String())
		}

		switch {
		case status >= 500:
			slog.Error("Request failed - server error", attrs...)
		case status >= 400:
			slog.Warn("Request failed - client error", attrs...)
		default:
			slog.Info("Request completed", attrs...)
		}
	}
}
