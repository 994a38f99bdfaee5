package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appauth "github.com/dreamshub/backend/internal/application/auth"
	"github.com/dreamshub/backend/internal/domain/audit"
	infraauth "github.com/dreamshub/backend/internal/infrastructure/auth"
)

// LoginRequest carries the login form fields
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued token and the user it identifies
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
}

// AuthHandler serves login and session introspection
type AuthHandler struct {
	BaseHandler
	users      *infraauth.StaticUserStore
	jwtService *infraauth.JWTService
	logRepo    audit.LogRepository
}

// NewAuthHandler creates an auth handler
func NewAuthHandler(users *infraauth.StaticUserStore, jwtService *infraauth.JWTService, logRepo audit.LogRepository, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		users:       users,
		jwtService:  jwtService,
		logRepo:     logRepo,
	}
}

// RegisterRoutes registers auth routes on the public group
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/login", h.Login)
	}
}

// RegisterProtectedRoutes registers auth routes requiring a session
func (h *AuthHandler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.GET("/me", h.Me)
	}
}

// Login authenticates a user and issues a token
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "email and password are required")
		return
	}

	session, err := h.users.Authenticate(req.Email, req.Password)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	token, expiresAt, err := h.jwtService.GenerateToken(session)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.recordLogin(c, session)

	h.Success(c, LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		UserID:    session.UserID.String(),
		Name:      session.Name,
		Role:      string(session.Role),
	})
}

// Me returns the user behind the current token
func (h *AuthHandler) Me(c *gin.Context) {
	session, ok := h.requireSession(c)
	if !ok {
		return
	}
	h.Success(c, gin.H{
		"user_id": session.UserID.String(),
		"name":    session.Name,
		"role":    string(session.Role),
	})
}

// recordLogin appends the login entry to the activity trail. Failures
// are logged and swallowed: a full audit store must not block sign-in.
func (h *AuthHandler) recordLogin(c *gin.Context, session appauth.Session) {
	entry, err := audit.NewLogEntry(audit.TypeAuth, "System Login", "", session.Name, string(session.Role), audit.LevelInfo)
	if err == nil {
		err = h.logRepo.Append(c.Request.Context(), entry.WithPath(c.Request.URL.Path))
	}
	if err != nil {
		h.logger.Warn("failed to record login audit entry",
			zap.String("user", session.Name),
			zap.Error(err),
		)
	}
}
