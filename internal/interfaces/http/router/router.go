package router

import (
	"github.com/gin-gonic/gin"
	"github.com/warehouse/backend/internal/domain/identity"
	"github.com/warehouse/backend/internal/infrastructure/auth"
	"github.com/warehouse/backend/internal/infrastructure/config"
	"github.com/warehouse/backend/internal/infrastructure/logger"
	"github.com/warehouse/backend/internal/interfaces/http/handler"
	"github.com/warehouse/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Handlers bundles the handlers mounted by the router
type Handlers struct {
	System   *handler.SystemHandler
	Product  *handler.ProductHandler
	Order    *handler.OrderHandler
	Purchase *handler.PurchaseHandler
	Count    *handler.CountHandler
	Audit    *handler.AuditHandler
}

// New builds the gin engine with all routes and middleware mounted.
// Everything under /api/v1 requires a valid bearer token. Catalog
// mutations additionally require the manage-catalog permission; the
// payment approval permission is enforced inside the order workflow.
func New(cfg *config.Config, log *zap.Logger, jwtService *auth.JWTService, perms identity.PermissionLookup, handlers Handlers) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	if len(cfg.HTTP.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(cfg.HTTP.TrustedProxies)
	}

	handlers.System.RegisterRoutes(engine)

	api := engine.Group("/api/v1")
	api.Use(middleware.RequireAuth(jwtService))
	{
		manageCatalog := middleware.RequirePermission(perms, identity.PermManageCatalog)
		handlers.Product.RegisterRoutes(api, manageCatalog)
		handlers.Order.RegisterRoutes(api)
		handlers.Purchase.RegisterRoutes(api)
		handlers.Count.RegisterRoutes(api)
		handlers.Audit.RegisterRoutes(api)
	}

	return engine
}
