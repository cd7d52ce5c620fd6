package middleware

import (
	"net/http"
	"time"

	"github.com/brightpath/site-backend/internal/session"
	"github.com/brightpath/site-backend/internal/tokens"
	"github.com/brightpath/site-backend/pkg/logger"
	"github.com/gin-gonic/gin"
)

// Context keys set by VisitorSession.
const (
	VisitorKey = "visitor"
	GateKey    = "gate"
)

// CookieOptions controls the visitor cookie.
type CookieOptions struct {
	Name   string
	Secret []byte
	TTL    time.Duration
	Secure bool
}

// VisitorSession identifies the caller by a signed visitor cookie, issuing a
// new one when it is missing or invalid, and attaches an initialized gate.
func VisitorSession(gates *session.Gates, opts CookieOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		var visitor string
		if raw, err := c.Cookie(opts.Name); err == nil && raw != "" {
			if v, err := tokens.ParseVisitorToken(opts.Secret, raw); err == nil {
				visitor = v
			} else {
				logger.Debugf("visitor cookie rejected: %v", err)
			}
		}
		if visitor == "" {
			visitor = tokens.NewVisitorID()
			tok, err := tokens.GenerateVisitorToken(opts.Secret, visitor, opts.TTL)
			if err != nil {
				logger.Errorf("issuing visitor token: %v", err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to start session"})
				return
			}
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(opts.Name, tok, int(opts.TTL.Seconds()), "/", "", opts.Secure, true)
		}

		gate := gates.For(visitor)
		gate.Initialize(c.Request.Context())

		c.Set(VisitorKey, visitor)
		c.Set(GateKey, gate)
		c.Next()
	}
}

// GateFrom returns the gate attached by VisitorSession, or nil.
func GateFrom(c *gin.Context) *session.Gate {
	if v, ok := c.Get(GateKey); ok {
		if g, ok := v.(*session.Gate); ok {
			return g
		}
	}
	return nil
}

// RequireAdmin rejects callers whose gate is not logged in. A rejected GET
// is remembered so login can send the admin back to it; other methods are
// never replayed as a redirect.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		gate := GateFrom(c)
		if gate == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "login required", "redirect": session.LoginPath})
			return
		}
		path := c.Request.URL.Path
		var d session.Decision
		if c.Request.Method == http.MethodGet {
			d = gate.Guard(c.Request.Context(), path, true)
		} else {
			d = session.Decision{Action: session.Decide(gate.State(), path, true), Location: session.LoginPath}
		}
		switch d.Action {
		case session.Allow:
			c.Next()
		case session.Wait:
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "session is loading"})
		default:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "login required", "redirect": d.Location})
		}
	}
}
