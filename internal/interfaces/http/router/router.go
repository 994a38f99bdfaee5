package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dreamshub/backend/internal/infrastructure/auth"
	"github.com/dreamshub/backend/internal/infrastructure/logger"
	"github.com/dreamshub/backend/internal/interfaces/http/middleware"
)

// RouteRegistrar is implemented by handlers that register their own
// routes on a group
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// RegistrarFunc adapts a plain function to RouteRegistrar, for handlers
// that split their routes across permission tiers
type RegistrarFunc func(rg *gin.RouterGroup)

// RegisterRoutes implements RouteRegistrar
func (f RegistrarFunc) RegisterRoutes(rg *gin.RouterGroup) {
	f(rg)
}

// Router assembles the gin engine and the /api/v1 route groups. Routes
// come in three tiers: public, authenticated, and stock-manager only.
type Router struct {
	engine     *gin.Engine
	jwtService *auth.JWTService
	logger     *zap.Logger
	cors       middleware.CORSConfig

	public    []RouteRegistrar
	protected []RouteRegistrar
	manager   []RouteRegistrar
}

// New creates a router
func New(jwtService *auth.JWTService, cors middleware.CORSConfig, log *zap.Logger) *Router {
	if log == nil {
		log = zap.NewNop()
	}
	return &Router{
		jwtService: jwtService,
		logger:     log,
		cors:       cors,
	}
}

// Public adds registrars whose routes need no session
func (r *Router) Public(registrars ...RouteRegistrar) *Router {
	r.public = append(r.public, registrars...)
	return r
}

// Protected adds registrars whose routes need a valid session
func (r *Router) Protected(registrars ...RouteRegistrar) *Router {
	r.protected = append(r.protected, registrars...)
	return r
}

// Manager adds registrars whose routes need stock management permission
func (r *Router) Manager(registrars ...RouteRegistrar) *Router {
	r.manager = append(r.manager, registrars...)
	return r
}

// Build assembles the engine with middleware and all registered routes
func (r *Router) Build() *gin.Engine {
	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(r.logger),
		logger.Recovery(r.logger),
		middleware.CORSWithConfig(r.cors),
		middleware.Secure(),
	)

	api := engine.Group("/api/v1")

	for _, registrar := range r.public {
		registrar.RegisterRoutes(api)
	}

	authed := api.Group("", middleware.RequireSession(r.jwtService))
	for _, registrar := range r.protected {
		registrar.RegisterRoutes(authed)
	}

	managed := authed.Group("", middleware.RequireStockManager())
	for _, registrar := range r.manager {
		registrar.RegisterRoutes(managed)
	}

	r.engine = engine
	return engine
}

// Engine returns the built engine, or nil before Build
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
