package handler

import (
	"github.com/gin-gonic/gin"
	auditapp "github.com/warehouse/backend/internal/application/audit"
)

// AuditHandler handles change history and push subscription HTTP requests
type AuditHandler struct {
	BaseHandler
	service *auditapp.Service
}

// NewAuditHandler creates a new AuditHandler
func NewAuditHandler(service *auditapp.Service) *AuditHandler {
	return &AuditHandler{service: service}
}

// RegisterRoutes registers audit routes
func (h *AuditHandler) RegisterRoutes(r *gin.RouterGroup) {
	changes := r.Group("/changes")
	{
		changes.GET("", h.History)
		changes.GET("/:id", h.Entry)
		changes.POST("/subscribe", h.Subscribe)
	}
}

// History handles GET /changes
func (h *AuditHandler) History(c *gin.Context) {
	entries, err := h.service.History(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entries)
}

// Entry handles GET /changes/:id
func (h *AuditHandler) Entry(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	entry, err := h.service.Entry(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entry)
}

// Subscribe handles POST /changes/subscribe
func (h *AuditHandler) Subscribe(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var req auditapp.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.service.Subscribe(c.Request.Context(), actor, req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, gin.H{"subscribed": true})
}
