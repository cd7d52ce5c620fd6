package handlers

import (
	"net/http"

	"github.com/brightpath/site-backend/internal/media"
	"github.com/brightpath/site-backend/pkg/logger"
	"github.com/gin-gonic/gin"
)

// MediaHandler accepts admin image uploads.
type MediaHandler struct {
	store media.Store
}

// NewMediaHandler accepts a nil store; uploads then answer 503.
func NewMediaHandler(store media.Store) *MediaHandler {
	return &MediaHandler{store: store}
}

func (h *MediaHandler) Register(rg *gin.RouterGroup) {
	rg.POST("/media", h.Upload)
}

// Upload stores the multipart "file" field and returns its key and URL.
func (h *MediaHandler) Upload(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": media.ErrNotConfigured.Error()})
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, media.MaxUploadSize+1<<20)
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if fh.Size > media.MaxUploadSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}
	contentType := fh.Header.Get("Content-Type")
	key, err := media.ObjectKey(c.PostForm("folder"), contentType)
	if err != nil {
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": err.Error()})
		return
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable file"})
		return
	}
	defer f.Close()

	ctx := c.Request.Context()
	if err := h.store.Upload(ctx, key, f, fh.Size, contentType); err != nil {
		logger.Errorf("media upload %s: %v", key, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "upload failed"})
		return
	}
	url, err := h.store.PresignedURL(ctx, key, media.URLExpiry)
	if err != nil {
		logger.Warnf("media presign %s: %v", key, err)
	}
	c.JSON(http.StatusCreated, gin.H{"key": key, "url": url})
}
