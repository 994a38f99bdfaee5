package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	appledger "github.com/dreamshub/backend/internal/application/ledger"
)

// InitialStockRequest loads a product's starting stock into a location
type InitialStockRequest struct {
	ProductID  uuid.UUID  `json:"product_id" binding:"required"`
	LocationID *uuid.UUID `json:"location_id"`
	Quantity   int64      `json:"quantity" binding:"gte=0"`
	Note       string     `json:"note"`
}

// LedgerHandler serves the write side of the movement ledger. Sales are
// open to every authenticated role; the remaining operations sit behind
// the stock-manager gate wired in the router.
type LedgerHandler struct {
	BaseHandler
	writer *appledger.MovementWriter
}

// NewLedgerHandler creates a ledger handler
func NewLedgerHandler(writer *appledger.MovementWriter, logger *zap.Logger) *LedgerHandler {
	return &LedgerHandler{
		BaseHandler: NewBaseHandler(logger),
		writer:      writer,
	}
}

// RegisterRoutes registers the sale route, open to all roles
func (h *LedgerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	stock := rg.Group("/stock")
	{
		stock.POST("/sales", h.RecordSale)
	}
}

// RegisterManagerRoutes registers the routes requiring stock management
// permission
func (h *LedgerHandler) RegisterManagerRoutes(rg *gin.RouterGroup) {
	stock := rg.Group("/stock")
	{
		stock.POST("/initial", h.RecordInitialStock)
		stock.POST("/transfers", h.RecordTransfer)
		stock.POST("/returns", h.RecordReturn)
		stock.POST("/adjustments", h.RecordAdjustment)
	}
}

// RecordSale commits a checkout as one atomic batch of OUT movements
func (h *LedgerHandler) RecordSale(c *gin.Context) {
	session, ok := h.requireSession(c)
	if !ok {
		return
	}

	var req appledger.RecordSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "invalid sale payload: "+err.Error())
		return
	}

	result, err := h.writer.RecordSale(c.Request.Context(), session, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// RecordInitialStock appends the IN movement loading starting stock
func (h *LedgerHandler) RecordInitialStock(c *gin.Context) {
	session, ok := h.requireSession(c)
	if !ok {
		return
	}

	var req InitialStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "invalid initial stock payload: "+err.Error())
		return
	}

	response, err := h.writer.RecordInitialStock(c.Request.Context(), session, req.ProductID, req.LocationID, req.Quantity, req.Note)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, response)
}

// RecordTransfer moves stock between two locations as a paired OUT and
// IN leg under one operation
func (h *LedgerHandler) RecordTransfer(c *gin.Context) {
	session, ok := h.requireSession(c)
	if !ok {
		return
	}

	var req appledger.RecordTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "invalid transfer payload: "+err.Error())
		return
	}

	responses, err := h.writer.RecordTransfer(c.Request.Context(), session, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, responses)
}

// RecordReturn puts returned stock back into a location
func (h *LedgerHandler) RecordReturn(c *gin.Context) {
	session, ok := h.requireSession(c)
	if !ok {
		return
	}

	var req appledger.RecordReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "invalid return payload: "+err.Error())
		return
	}

	response, err := h.writer.RecordReturn(c.Request.Context(), session, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, response)
}

// RecordAdjustment applies a signed manual correction
func (h *LedgerHandler) RecordAdjustment(c *gin.Context) {
	session, ok := h.requireSession(c)
	if !ok {
		return
	}

	var req appledger.RecordAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "invalid adjustment payload: "+err.Error())
		return
	}

	response, err := h.writer.RecordAdjustment(c.Request.Context(), session, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, response)
}
