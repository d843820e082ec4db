package handler

import (
	"github.com/gin-gonic/gin"
	inventoryapp "github.com/warehouse/backend/internal/application/inventory"
)

// CountHandler handles inventory count HTTP requests
type CountHandler struct {
	BaseHandler
	service *inventoryapp.CountService
}

// NewCountHandler creates a new CountHandler
func NewCountHandler(service *inventoryapp.CountService) *CountHandler {
	return &CountHandler{service: service}
}

// RegisterRoutes registers inventory count routes
func (h *CountHandler) RegisterRoutes(r *gin.RouterGroup) {
	counts := r.Group("/counts")
	{
		counts.POST("", h.Create)
		counts.GET("", h.List)
		counts.GET("/:id", h.Get)
		counts.PATCH("/:id", h.Update)
		counts.DELETE("/:id", h.Delete)
	}
}

// Create handles POST /counts. The session snapshots every active
// product's current ledger quantity.
func (h *CountHandler) Create(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	session, err := h.service.Create(c.Request.Context(), actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, session)
}

// List handles GET /counts
func (h *CountHandler) List(c *gin.Context) {
	sessions, err := h.service.List(c.Request.Context(), h.parseFilter(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sessions)
}

// Get handles GET /counts/:id
func (h *CountHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	session, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, session)
}

// Update handles PATCH /counts/:id
func (h *CountHandler) Update(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req inventoryapp.UpdateCountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	session, err := h.service.Update(c.Request.Context(), id, req, actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, session)
}

// Delete handles DELETE /counts/:id
func (h *CountHandler) Delete(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.service.Remove(c.Request.Context(), id, actor); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
