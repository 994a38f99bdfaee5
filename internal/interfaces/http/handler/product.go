package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	appcatalog "github.com/dreamshub/backend/internal/application/catalog"
)

// ProductHandler serves product catalog endpoints
type ProductHandler struct {
	BaseHandler
	products *appcatalog.ProductService
}

// NewProductHandler creates a product handler
func NewProductHandler(products *appcatalog.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		BaseHandler: NewBaseHandler(logger),
		products:    products,
	}
}

// RegisterRoutes registers product routes
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	{
		products.GET("", h.List)
		products.GET("/:id", h.Get)
		products.POST("", h.Create)
		products.PUT("/:id", h.Update)
		products.DELETE("/:id", h.Delete)
	}
}

// List returns the full product catalog
func (h *ProductHandler) List(c *gin.Context) {
	responses, err := h.products.ListProducts(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, responses)
}

// Get returns a single product
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := h.bindUUID(c)
	if !ok {
		return
	}

	response, err := h.products.GetProduct(c.Request.Context(), uuid.MustParse(id))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, response)
}

// Create adds a product, its initial stock movement, and any batch or
// serial records the payload carries
func (h *ProductHandler) Create(c *gin.Context) {
	session, ok := h.requireSession(c)
	if !ok {
		return
	}

	var req appcatalog.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "invalid product payload: "+err.Error())
		return
	}

	response, err := h.products.CreateProduct(c.Request.Context(), session, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, response)
}

// Update edits catalog fields; stock is never touched here
func (h *ProductHandler) Update(c *gin.Context) {
	session, ok := h.requireSession(c)
	if !ok {
		return
	}

	id, ok := h.bindUUID(c)
	if !ok {
		return
	}

	var req appcatalog.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "invalid product payload: "+err.Error())
		return
	}

	response, err := h.products.UpdateProduct(c.Request.Context(), session, uuid.MustParse(id), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, response)
}

// Delete removes a product along with its movements, batches and serials
func (h *ProductHandler) Delete(c *gin.Context) {
	session, ok := h.requireSession(c)
	if !ok {
		return
	}

	id, ok := h.bindUUID(c)
	if !ok {
		return
	}

	if err := h.products.DeleteProduct(c.Request.Context(), session, uuid.MustParse(id)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
