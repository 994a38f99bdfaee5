package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	appcatalog "github.com/dreamshub/backend/internal/application/catalog"
)

// WarehouseHandler serves stock location endpoints
type WarehouseHandler struct {
	BaseHandler
	warehouses *appcatalog.WarehouseService
}

// NewWarehouseHandler creates a warehouse handler
func NewWarehouseHandler(warehouses *appcatalog.WarehouseService, logger *zap.Logger) *WarehouseHandler {
	return &WarehouseHandler{
		BaseHandler: NewBaseHandler(logger),
		warehouses:  warehouses,
	}
}

// RegisterRoutes registers warehouse routes
func (h *WarehouseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	warehouses := rg.Group("/warehouses")
	{
		warehouses.GET("", h.List)
		warehouses.POST("", h.Create)
		warehouses.PUT("/:id", h.Update)
		warehouses.DELETE("/:id", h.Delete)
	}
}

// List returns all stock locations
func (h *WarehouseHandler) List(c *gin.Context) {
	responses, err := h.warehouses.ListWarehouses(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, responses)
}

// Create adds a stock location
func (h *WarehouseHandler) Create(c *gin.Context) {
	session, ok := h.requireSession(c)
	if !ok {
		return
	}

	var req appcatalog.CreateWarehouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "invalid warehouse payload: "+err.Error())
		return
	}

	response, err := h.warehouses.CreateWarehouse(c.Request.Context(), session, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, response)
}

// Update edits a stock location
func (h *WarehouseHandler) Update(c *gin.Context) {
	session, ok := h.requireSession(c)
	if !ok {
		return
	}

	id, ok := h.bindUUID(c)
	if !ok {
		return
	}

	var req appcatalog.UpdateWarehouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "invalid warehouse payload: "+err.Error())
		return
	}

	response, err := h.warehouses.UpdateWarehouse(c.Request.Context(), session, uuid.MustParse(id), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, response)
}

// Delete removes a stock location
func (h *WarehouseHandler) Delete(c *gin.Context) {
	session, ok := h.requireSession(c)
	if !ok {
		return
	}

	id, ok := h.bindUUID(c)
	if !ok {
		return
	}

	if err := h.warehouses.DeleteWarehouse(c.Request.Context(), session, uuid.MustParse(id)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
