package handlers

import (
	"net/http"

	"github.com/brightpath/site-backend/internal/content"
	"github.com/gin-gonic/gin"
)

// ContentHandler serves admin CRUD over every content type.
type ContentHandler struct {
	catalog *content.Catalog
}

func NewContentHandler(catalog *content.Catalog) *ContentHandler {
	return &ContentHandler{catalog: catalog}
}

// Register routes under the (already guarded) admin API group.
func (h *ContentHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/content/:type", h.List)
	rg.POST("/content/:type", h.Create)
	rg.GET("/content/:type/:id", h.Get)
	rg.PATCH("/content/:type/:id", h.Update)
	rg.DELETE("/content/:type/:id", h.Delete)

	rg.GET("/config/:type", h.GetConfig)
	rg.PUT("/config/:type", h.UpdateConfig)
}

func (h *ContentHandler) collection(c *gin.Context) (*content.Collection, bool) {
	col, ok := h.catalog.Collection(c.Param("type"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown content type"})
	}
	return col, ok
}

func (h *ContentHandler) singleton(c *gin.Context) (*content.Singleton, bool) {
	s, ok := h.catalog.Singleton(c.Param("type"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown config type"})
	}
	return s, ok
}

func (h *ContentHandler) List(c *gin.Context) {
	col, ok := h.collection(c)
	if !ok {
		return
	}
	recs, err := col.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, recs)
}

func (h *ContentHandler) Create(c *gin.Context) {
	col, ok := h.collection(c)
	if !ok {
		return
	}
	data, ok := bindRecord(c)
	if !ok {
		return
	}
	rec, err := col.Add(c.Request.Context(), data)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

func (h *ContentHandler) Get(c *gin.Context) {
	col, ok := h.collection(c)
	if !ok {
		return
	}
	rec, err := col.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if rec == nil {
		notFound(c)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *ContentHandler) Update(c *gin.Context) {
	col, ok := h.collection(c)
	if !ok {
		return
	}
	partial, ok := bindRecord(c)
	if !ok {
		return
	}
	rec, err := col.Update(c.Request.Context(), c.Param("id"), partial)
	if err != nil {
		writeError(c, err)
		return
	}
	if rec == nil {
		notFound(c)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *ContentHandler) Delete(c *gin.Context) {
	col, ok := h.collection(c)
	if !ok {
		return
	}
	removed, err := col.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if !removed {
		notFound(c)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ContentHandler) GetConfig(c *gin.Context) {
	s, ok := h.singleton(c)
	if !ok {
		return
	}
	rec, err := s.Get(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *ContentHandler) UpdateConfig(c *gin.Context) {
	s, ok := h.singleton(c)
	if !ok {
		return
	}
	partial, ok := bindRecord(c)
	if !ok {
		return
	}
	rec, err := s.Update(c.Request.Context(), partial)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}
