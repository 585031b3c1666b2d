package httpx

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ctxRequestID    = "rid"
	headerRequestID = "X-Request-ID"
	maxRequestIDLen = 64
)

// RequestID tags the request with the caller's X-Request-ID, or a new UUID
// when the header is missing or not a plain token.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(headerRequestID)
		if !validRequestID(rid) {
			rid = uuid.NewString()
		}
		c.Set(ctxRequestID, rid)
		c.Writer.Header().Set(headerRequestID, rid)
		c.Next()
	}
}

// the id ends up in log lines, so only [A-Za-z0-9._-] is accepted
func validRequestID(s string) bool {
	if s == "" || len(s) > maxRequestIDLen {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
		default:
			return false
		}
	}
	return true
}

// Logger writes one access line per request, plus one line per error kept on
// the context. Requests to quiet paths are only logged when they fail.
func Logger(quiet ...string) gin.HandlerFunc {
	skip := make(map[string]bool, len(quiet))
	for _, p := range quiet {
		skip[p] = true
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		status := c.Writer.Status()
		if skip[c.Request.URL.Path] && status < http.StatusBadRequest {
			return
		}
		rid := c.GetString(ctxRequestID)
		log.Printf("[http] rid=%s %s %s status=%d bytes=%d ip=%s dur=%s",
			rid, c.Request.Method, c.Request.URL.Path, status, c.Writer.Size(), c.ClientIP(), time.Since(start))
		for _, e := range c.Errors {
			log.Printf("[http] rid=%s error: %v", rid, e.Err)
		}
	}
}

// CORS allows the storefront and the admin panel to call the API from the
// browser.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID")
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
