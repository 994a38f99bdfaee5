package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	appcatalog "github.com/dreamshub/backend/internal/application/catalog"
)

// RenameCategoryRequest carries the new category name
type RenameCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// CategoryHandler serves category endpoints
type CategoryHandler struct {
	BaseHandler
	categories *appcatalog.CategoryService
}

// NewCategoryHandler creates a category handler
func NewCategoryHandler(categories *appcatalog.CategoryService, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{
		BaseHandler: NewBaseHandler(logger),
		categories:  categories,
	}
}

// RegisterRoutes registers category routes
func (h *CategoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	categories := rg.Group("/categories")
	{
		categories.GET("", h.List)
		categories.POST("", h.Create)
		categories.PUT("/:id", h.Rename)
		categories.DELETE("/:id", h.Delete)
	}
}

// List returns all categories
func (h *CategoryHandler) List(c *gin.Context) {
	responses, err := h.categories.ListCategories(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, responses)
}

// Create adds a category
func (h *CategoryHandler) Create(c *gin.Context) {
	session, ok := h.requireSession(c)
	if !ok {
		return
	}

	var req appcatalog.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "invalid category payload: "+err.Error())
		return
	}

	response, err := h.categories.CreateCategory(c.Request.Context(), session, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, response)
}

// Rename changes a category's name
func (h *CategoryHandler) Rename(c *gin.Context) {
	session, ok := h.requireSession(c)
	if !ok {
		return
	}

	id, ok := h.bindUUID(c)
	if !ok {
		return
	}

	var req RenameCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "name is required")
		return
	}

	response, err := h.categories.RenameCategory(c.Request.Context(), session, uuid.MustParse(id), req.Name)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, response)
}

// Delete removes a category. Products keep their category_id; readers
// treat a dangling reference as uncategorized.
func (h *CategoryHandler) Delete(c *gin.Context) {
	session, ok := h.requireSession(c)
	if !ok {
		return
	}

	id, ok := h.bindUUID(c)
	if !ok {
		return
	}

	if err := h.categories.DeleteCategory(c.Request.Context(), session, uuid.MustParse(id)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
