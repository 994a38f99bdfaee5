package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	appledger "github.com/dreamshub/backend/internal/application/ledger"
	"github.com/dreamshub/backend/internal/domain/ledger"
)

// MovementQuery narrows the movement history endpoint
type MovementQuery struct {
	ProductID  string `form:"product_id" binding:"omitempty,uuid"`
	LocationID string `form:"location_id" binding:"omitempty,uuid"`
	Type       string `form:"type" binding:"omitempty,movementtype"`
	Since      string `form:"since"`
}

// InventoryHandler serves the read side of the ledger: derived stock
// and movement history
type InventoryHandler struct {
	BaseHandler
	inventory *appledger.InventoryService
}

// NewInventoryHandler creates an inventory handler
func NewInventoryHandler(inventory *appledger.InventoryService, logger *zap.Logger) *InventoryHandler {
	return &InventoryHandler{
		BaseHandler: NewBaseHandler(logger),
		inventory:   inventory,
	}
}

// RegisterRoutes registers inventory routes
func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	inventory := rg.Group("/inventory")
	{
		inventory.GET("/snapshot", h.Snapshot)
		inventory.GET("/stock-levels", h.StockLevels)
		inventory.GET("/movements", h.Movements)
	}
}

// Snapshot returns the full dashboard state in one payload
func (h *InventoryHandler) Snapshot(c *gin.Context) {
	snapshot, err := h.inventory.Snapshot(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, snapshot)
}

// StockLevels returns the derived per-product stock positions
func (h *InventoryHandler) StockLevels(c *gin.Context) {
	levels, err := h.inventory.StockLevels(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, levels)
}

// Movements returns ledger rows newest first, optionally narrowed by
// product, location, or a lower time bound
func (h *InventoryHandler) Movements(c *gin.Context) {
	var query MovementQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, "invalid movement query: "+err.Error())
		return
	}

	filter, err := query.toFilter()
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	movements, err := h.inventory.Movements(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, movements)
}

func (q MovementQuery) toFilter() (ledger.MovementFilter, error) {
	var filter ledger.MovementFilter
	if q.ProductID != "" {
		filter.ProductID = uuid.MustParse(q.ProductID)
	}
	if q.LocationID != "" {
		filter.LocationID = uuid.MustParse(q.LocationID)
	}
	if q.Type != "" {
		filter.Type = ledger.MovementType(q.Type)
	}
	if q.Since != "" {
		since, err := time.Parse(time.RFC3339, q.Since)
		if err != nil {
			return ledger.MovementFilter{}, errors.New("since must be an RFC 3339 timestamp")
		}
		filter.Since = since
	}
	return filter, nil
}
