package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appauth "github.com/dreamshub/backend/internal/application/auth"
	"github.com/dreamshub/backend/internal/domain/shared"
	"github.com/dreamshub/backend/internal/interfaces/http/dto"
	"github.com/dreamshub/backend/internal/interfaces/http/middleware"
)

// BaseHandler provides shared response helpers for all HTTP handlers
type BaseHandler struct {
	logger *zap.Logger
}

// NewBaseHandler creates a base handler
func NewBaseHandler(logger *zap.Logger) BaseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return BaseHandler{logger: logger}
}

// Success sends a 200 response with the standard envelope
func (h *BaseHandler) Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Created sends a 201 response with the standard envelope
func (h *BaseHandler) Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest sends a 400 response for malformed input
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.respondError(c, dto.ErrCodeBadRequest, message)
}

// HandleError maps any error to the standard envelope. Domain errors
// carry their own code and message; everything else becomes a 500
// without leaking internals.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		h.respondError(c, domainErr.Code, domainErr.Message)
		return
	}

	h.logger.Error("unhandled error",
		zap.String("path", c.Request.URL.Path),
		zap.String("request_id", middleware.GetRequestID(c)),
		zap.Error(err),
	)
	h.respondError(c, dto.ErrCodeInternal, "An unexpected error occurred")
}

func (h *BaseHandler) respondError(c *gin.Context, code, message string) {
	status := dto.GetHTTPStatus(code)
	requestID := middleware.GetRequestID(c)
	c.JSON(status, dto.NewErrorResponseWithRequestID(code, message, requestID))
}

// bindUUID parses the :id path parameter
func (h *BaseHandler) bindUUID(c *gin.Context) (string, bool) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "invalid id parameter")
		return "", false
	}
	return req.ID, true
}

// requireSession fetches the session placed by the auth middleware.
// A missing session means the route was registered outside the
// authenticated group, so this responds 401 rather than panicking.
func (h *BaseHandler) requireSession(c *gin.Context) (appauth.Session, bool) {
	session, ok := middleware.CurrentSession(c)
	if !ok {
		h.respondError(c, shared.CodeUnauthorized, "authentication required")
		return appauth.Session{}, false
	}
	return session, true
}
