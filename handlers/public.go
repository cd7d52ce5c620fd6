package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/brightpath/site-backend/internal/content"
	"github.com/brightpath/site-backend/internal/notify"
	"github.com/brightpath/site-backend/internal/pages"
	"github.com/brightpath/site-backend/pkg/logger"
	"github.com/gin-gonic/gin"
)

// notifyTimeout bounds a notification after a submission was stored.
const notifyTimeout = 10 * time.Second

// Fields a visitor may set through the public forms.
var (
	contactFields  = []string{"name", "email", "subject", "message"}
	inquiryFields  = []string{"name", "email", "phone", "company", "serviceId", "message"}
	feedbackFields = []string{"name", "email", "rating", "message", "company", "position"}
)

// PublicHandler serves the site pages and the public forms.
type PublicHandler struct {
	loader   *pages.Loader
	catalog  *content.Catalog
	notifier notify.Notifier
}

func NewPublicHandler(loader *pages.Loader, catalog *content.Catalog, notifier notify.Notifier) *PublicHandler {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &PublicHandler{loader: loader, catalog: catalog, notifier: notifier}
}

// RegisterPages registers the read-only page endpoints.
func (h *PublicHandler) RegisterPages(rg *gin.RouterGroup) {
	rg.GET("/pages/home", func(c *gin.Context) { c.JSON(http.StatusOK, h.loader.Home(c.Request.Context())) })
	rg.GET("/pages/services", func(c *gin.Context) { c.JSON(http.StatusOK, h.loader.Services(c.Request.Context())) })
	rg.GET("/pages/projects", func(c *gin.Context) { c.JSON(http.StatusOK, h.loader.Projects(c.Request.Context())) })
	rg.GET("/pages/team", func(c *gin.Context) { c.JSON(http.StatusOK, h.loader.Team(c.Request.Context())) })
	rg.GET("/pages/faq", func(c *gin.Context) { c.JSON(http.StatusOK, h.loader.FAQ(c.Request.Context())) })
	rg.GET("/pages/terms", func(c *gin.Context) { c.JSON(http.StatusOK, h.loader.Terms(c.Request.Context())) })
	rg.GET("/settings", func(c *gin.Context) { c.JSON(http.StatusOK, h.loader.Settings(c.Request.Context())) })
}

// RegisterForms registers the submission endpoints; limit guards each of them.
func (h *PublicHandler) RegisterForms(rg *gin.RouterGroup, limit gin.HandlerFunc) {
	rg.POST("/contact", limit, h.Contact)
	rg.POST("/inquiries", limit, h.Inquiry)
	rg.POST("/feedback", limit, h.Feedback)
}

func (h *PublicHandler) Contact(c *gin.Context) {
	rec, ok := h.submit(c, content.Messages, contactFields, nil)
	if ok {
		h.notify(c.Request.Context(), notify.ForMessage(rec))
	}
}

func (h *PublicHandler) Inquiry(c *gin.Context) {
	rec, ok := h.submit(c, content.Inquiries, inquiryFields, h.fillServiceName)
	if ok {
		h.notify(c.Request.Context(), notify.ForInquiry(rec))
	}
}

func (h *PublicHandler) Feedback(c *gin.Context) {
	h.submit(c, content.Feedback, feedbackFields, nil)
}

// submit stores the allowed subset of the posted form and answers 201.
func (h *PublicHandler) submit(c *gin.Context, typ string, fields []string, enrich func(context.Context, content.Record)) (content.Record, bool) {
	body, ok := bindRecord(c)
	if !ok {
		return nil, false
	}
	data := content.Record{}
	for _, f := range fields {
		if v, ok := body[f]; ok {
			data[f] = v
		}
	}
	if enrich != nil {
		enrich(c.Request.Context(), data)
	}
	rec, err := h.catalog.MustCollection(typ).Add(c.Request.Context(), data)
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "id": rec.ID()})
	return rec, true
}

// fillServiceName copies the service title next to serviceId.
func (h *PublicHandler) fillServiceName(ctx context.Context, data content.Record) {
	id, _ := data["serviceId"].(string)
	if id == "" {
		return
	}
	svc, err := h.catalog.MustCollection(content.Services).GetByID(ctx, id)
	if err != nil || svc == nil {
		// leave serviceId for Add to validate
		return
	}
	if title, _ := svc["title"].(string); title != "" {
		data["serviceName"] = title
	}
}

func (h *PublicHandler) notify(ctx context.Context, n notify.Notification) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()
	if err := h.notifier.Notify(ctx, n); err != nil {
		logger.Warnf("notification %q failed: %v", n.Subject, err)
	}
}
