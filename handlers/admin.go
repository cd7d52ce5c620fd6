package handlers

import (
	"net/http"

	"github.com/brightpath/site-backend/internal/content"
	"github.com/brightpath/site-backend/internal/session"
	"github.com/brightpath/site-backend/pkg/metrics"
	"github.com/brightpath/site-backend/pkg/middleware"
	"github.com/gin-gonic/gin"
)

// LoginRequest is the admin login body.
type LoginRequest struct {
	Password string `json:"password"`
}

// AdminHandler serves the admin session endpoints and the landing page.
// Every route expects middleware.VisitorSession to have run.
type AdminHandler struct {
	catalog *content.Catalog
}

func NewAdminHandler(catalog *content.Catalog) *AdminHandler {
	return &AdminHandler{catalog: catalog}
}

// Register routes under /admin. limit guards the login attempt.
func (h *AdminHandler) Register(rg *gin.RouterGroup, limit gin.HandlerFunc) {
	rg.GET("/login", h.LoginPage)
	rg.GET("/signup", h.LoginPage)
	rg.POST("/login", limit, h.Login)
	rg.POST("/logout", h.Logout)
	rg.GET("/session", h.Session)
	rg.GET("", middleware.RequireAdmin(), h.Landing)
}

func gate(c *gin.Context) (*session.Gate, bool) {
	g := middleware.GateFrom(c)
	if g == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session unavailable"})
		return nil, false
	}
	return g, true
}

// LoginPage sends a logged-in admin on to the remembered page.
func (h *AdminHandler) LoginPage(c *gin.Context) {
	g, ok := gate(c)
	if !ok {
		return
	}
	d := g.Guard(c.Request.Context(), c.Request.URL.Path, false)
	if d.Action == session.ToRemembered {
		c.Redirect(http.StatusFound, d.Location)
		return
	}
	c.JSON(http.StatusOK, g.State())
}

func (h *AdminHandler) Login(c *gin.Context) {
	g, ok := gate(c)
	if !ok {
		return
	}
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}
	ctx := c.Request.Context()
	if !g.Login(ctx, req.Password) {
		metrics.AdminLogins.WithLabelValues("denied").Inc()
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid password"})
		return
	}
	metrics.AdminLogins.WithLabelValues("ok").Inc()
	c.JSON(http.StatusOK, gin.H{"ok": true, "redirect": g.TakeRedirect(ctx)})
}

func (h *AdminHandler) Logout(c *gin.Context) {
	g, ok := gate(c)
	if !ok {
		return
	}
	g.Logout(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *AdminHandler) Session(c *gin.Context) {
	g, ok := gate(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, g.State())
}

// Landing lists what the admin can edit.
func (h *AdminHandler) Landing(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"content": h.catalog.CollectionTypes(),
		"config":  h.catalog.SingletonTypes(),
	})
}
