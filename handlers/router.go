package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/brightpath/site-backend/internal/content"
	"github.com/brightpath/site-backend/internal/media"
	"github.com/brightpath/site-backend/internal/notify"
	"github.com/brightpath/site-backend/internal/pages"
	"github.com/brightpath/site-backend/internal/session"
	"github.com/brightpath/site-backend/pkg/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var startTime = time.Now()

// Deps are the collaborators the HTTP surface is built from.
type Deps struct {
	Catalog  *content.Catalog
	Gates    *session.Gates
	Cookie   middleware.CookieOptions
	Notifier notify.Notifier
	Media    media.Store
	// Limit guards the public forms and LoginLimit the admin login. They must
	// be separate instances; nil disables limiting.
	Limit      gin.HandlerFunc
	LoginLimit gin.HandlerFunc
	// Checks are extra readiness probes keyed by dependency name.
	Checks map[string]func(context.Context) error
}

// NewRouter builds the engine with every route registered.
func NewRouter(d Deps, mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(mw...)

	limit := orPassThrough(d.Limit)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})
	r.GET("/ready", readiness(d))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	RegisterSwagger(r)

	public := NewPublicHandler(pages.NewLoader(d.Catalog), d.Catalog, d.Notifier)
	api := r.Group("/api")
	public.RegisterPages(api)
	public.RegisterForms(api, limit)

	admin := r.Group("/admin", middleware.VisitorSession(d.Gates, d.Cookie))
	NewAdminHandler(d.Catalog).Register(admin, orPassThrough(d.LoginLimit))

	protected := admin.Group("/api", middleware.RequireAdmin())
	NewContentHandler(d.Catalog).Register(protected)
	NewMediaHandler(d.Media).Register(protected)

	return r
}

func orPassThrough(h gin.HandlerFunc) gin.HandlerFunc {
	if h == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return h
}

// readiness reports 200 only when storage and every extra check answer.
func readiness(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		ready := true
		deps := map[string]bool{}
		deps["storage"] = d.Catalog.Ping(ctx) == nil
		ready = ready && deps["storage"]
		for name, check := range d.Checks {
			deps[name] = check(ctx) == nil
			ready = ready && deps[name]
		}

		uptime := time.Since(startTime).String()
		if !ready {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "deps": deps, "uptime": uptime})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "deps": deps, "uptime": uptime})
	}
}
