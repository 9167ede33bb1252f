package handlers

import (
	"github.com/SscSPs/compta_core/cmd/docs"
	portssvc "github.com/SscSPs/compta_core/internal/core/ports/services"
	"github.com/SscSPs/compta_core/internal/middleware"
	"github.com/SscSPs/compta_core/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	r.GET("/", getHome)
	r.GET("/health", getHealth)

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg.JWTSecret, services)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	jwtSecret string,
	services *portssvc.ServiceContainer,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(jwtSecret))
	scoped := v1.Group("/companies/:companyID/fiscal-years/:fiscalYearID")

	registerCompanyRoutes(v1, services.Company)
	registerChartRoutes(v1, services.Chart)
	registerThirdPartyRoutes(v1, services.ThirdParty)
	registerEntryRoutes(v1, scoped, services.Entry)
	registerReconciliationRoutes(v1, scoped, services.Reconciliation)
	registerReportingRoutes(scoped, services.Reporting)
	registerClosingRoutes(scoped, services.Closing)
}

// RegisterAPIRoutes mounts only the authenticated API, e.g. for handler tests.
func RegisterAPIRoutes(r *gin.Engine, jwtSecret string, services *portssvc.ServiceContainer) {
	setupAPIV1Routes(r, jwtSecret, services)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
