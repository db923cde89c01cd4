package handlers

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/teaminfinity/expense_management/cmd/docs"
	portssvc "github.com/teaminfinity/expense_management/internal/core/ports/services"
	"github.com/teaminfinity/expense_management/internal/middleware"
	"github.com/teaminfinity/expense_management/internal/platform/config"
	"github.com/teaminfinity/expense_management/internal/utils"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	posthogClient *utils.PosthogClientWrapper,
) {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.FrontendBaseURL}
	corsConfig.AllowCredentials = true
	corsConfig.AddAllowHeaders("Authorization")
	r.Use(cors.New(corsConfig))

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/", getHome)

	// Register public authentication routes
	registerAuthRoutes(r, cfg, services.Auth)

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services, posthogClient)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	posthogClient *utils.PosthogClientWrapper,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1",
		middleware.AuthMiddleware(cfg.JWTSecret),
		middleware.PosthogMiddleware(posthogClient),
	)

	// Delegate route registration to specific handlers, passing required services
	registerUserRoutes(v1, services.User)
	registerCompanyRoutes(v1, services.Company)
	registerRuleRoutes(v1, services.Rule)
	registerExpenseRoutes(v1, services.Expense, services.Approval)
	registerApprovalRoutes(v1, services.Approval)
	registerIntegrationRoutes(v1, services.Integration, services.Ocr)
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
