package app

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"
	"go.uber.org/zap"

	"github.com/jennyfitzgerald-jpg/onboarding-framework/internal/cache"
	"github.com/jennyfitzgerald-jpg/onboarding-framework/internal/config"
	"github.com/jennyfitzgerald-jpg/onboarding-framework/internal/handlers"
	"github.com/jennyfitzgerald-jpg/onboarding-framework/internal/repo"
	"github.com/jennyfitzgerald-jpg/onboarding-framework/internal/seed"
	"github.com/jennyfitzgerald-jpg/onboarding-framework/internal/service"
)

// Setup registers all routes on the given engine.
func Setup(r *gin.Engine, cfg config.Config, logger *zap.Logger, db *pgxpool.Pool, rdb *redis.Client) {
	r.GET("/", rootHandler(cfg))
	r.GET("/health", healthHandler(cfg))
	r.GET("/version", versionHandler(cfg))
	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(302, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))

	api := r.Group("/api")

	clientRepo := repo.NewPGClientRepo(db, logger)
	stepRepo := repo.NewPGStepRepo(db, logger)
	taskRepo := repo.NewPGTaskRepo(db, logger)
	historyRepo := repo.NewPGHistoryRepo(db, logger)
	reqsRepo := repo.NewPGRequirementsRepo(db, logger)
	activityRepo := repo.NewPGActivityRepo(db, logger)

	summaryCache := cache.NewSummaryCache(rdb, cfg.Redis.DefaultTTL.Duration())

	clientSvc := service.NewClientService(clientRepo, stepRepo, taskRepo, historyRepo,
		reqsRepo, activityRepo, summaryCache, seed.Template(), logger)
	stepSvc := service.NewStepService(clientRepo, stepRepo, summaryCache, logger)
	taskSvc := service.NewTaskService(clientRepo, taskRepo, summaryCache, logger)
	portfolioSvc := service.NewPortfolioService(clientRepo, stepRepo, taskRepo, summaryCache, logger)

	registerClientRoutes(api, handlers.NewClientHandler(clientSvc))
	registerStepRoutes(api, handlers.NewStepHandler(stepSvc))
	registerTaskRoutes(api, handlers.NewTaskHandler(taskSvc))
	registerPortfolioRoutes(api, handlers.NewPortfolioHandler(portfolioSvc))
}

func rootHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service": "Onboarding Tracker API",
			"version": cfg.App.Version,
			"env":     cfg.App.Env,
			"docs":    "/swagger/index.html",
			"spec":    "/swagger-doc.json",
			"health":  "/health",
			"api":     "/api",
		})
	}
}

func healthHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true, "env": cfg.App.Env})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"version": cfg.App.Version})
	}
}

func swaggerDocHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc("swagger")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Data(200, "application/json; charset=utf-8", []byte(doc))
	}
}

func registerClientRoutes(api *gin.RouterGroup, h *handlers.ClientHandler) {
	api.GET("/clients", h.List)
	api.POST("/clients", h.Create)
	api.GET("/clients/:id", h.Get)
	api.PUT("/clients/:id", h.Update)
	api.DELETE("/clients/:id", h.Delete)
	api.GET("/clients/:id/alerts", h.Alerts)
	api.GET("/clients/:id/requirements", h.GetRequirements)
	api.PUT("/clients/:id/requirements", h.PutRequirements)
	api.GET("/clients/:id/go-live-history", h.GoLiveHistory)
	api.POST("/clients/:id/go-live-date", h.RecordGoLiveDate)
	api.POST("/clients/:id/go-live-readiness", h.RecordReadiness)
	api.PUT("/clients/:id/escalation", h.SetEscalation)
	api.GET("/clients/:id/activity", h.Activity)
}

func registerStepRoutes(api *gin.RouterGroup, h *handlers.StepHandler) {
	api.PUT("/clients/:id/steps/:order", h.Update)
	api.PATCH("/clients/:id/steps/:order/toggle", h.Toggle)
}

func registerTaskRoutes(api *gin.RouterGroup, h *handlers.TaskHandler) {
	api.GET("/clients/:id/tasks", h.List)
	api.POST("/clients/:id/tasks", h.Create)
	api.PUT("/clients/:id/tasks/:taskId", h.Update)
	api.DELETE("/clients/:id/tasks/:taskId", h.Delete)
}

func registerPortfolioRoutes(api *gin.RouterGroup, h *handlers.PortfolioHandler) {
	api.GET("/portfolio", h.Portfolio)
	api.GET("/stats", h.Stats)
}
