package web

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// setupMiddleware wires panic recovery, per-request IDs and optional
// Sentry error reporting into the engine.
func setupMiddleware(engine *gin.Engine, sentryEnabled bool) {
	engine.Use(gin.Recovery())
	engine.Use(requestID())

	if sentryEnabled {
		engine.Use(sentrygin.New(sentrygin.Options{
			Repanic:         true,
			WaitForDelivery: false,
			Timeout:         5 * time.Second,
		}))
		log.Info("sentry error monitoring enabled")
	}
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.NewString()
		c.Set("request_id", id)
		c.Header("X-Request-Id", id)
		c.Next()
	}
}

// bearerAuth gates sweep triggers behind a single static shared
// secret. No rate limiting, replay protection or nonce: one secret
// per deployment is a deliberate, documented simplification.
func bearerAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !bearerTokenMatches(c.GetHeader("Authorization"), secret) {
			log.WithField("request_id", c.GetString("request_id")).
				Warn("unauthorized sweep trigger")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Next()
	}
}

// bearerTokenMatches accepts only "Bearer <secret>": a case-insensitive
// Bearer scheme followed by the exact configured token. Any other shape
// is rejected.
func bearerTokenMatches(header, secret string) bool {
	if header == "" || secret == "" {
		return false
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(secret)) == 1
}
