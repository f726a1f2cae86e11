package router

import (
	"time"

	"github.com/mnk3936/Highway-metals/internal/config"
	"github.com/mnk3936/Highway-metals/internal/handler"
	"github.com/mnk3936/Highway-metals/internal/infra"
	"github.com/mnk3936/Highway-metals/internal/middleware"
	"github.com/mnk3936/Highway-metals/internal/pricing"
	"github.com/mnk3936/Highway-metals/internal/repository"
	"github.com/mnk3936/Highway-metals/internal/service"
	"github.com/mnk3936/Highway-metals/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// New wires repositories, services, and handlers into a gin engine.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.CORS(),
		middleware.ErrorHandler(),
		middleware.RateLimiter(1000, time.Minute),
	)

	// Repositories
	materialRepo := repository.NewMaterialRepository(db)
	productRepo := repository.NewProductRepository(db)
	historyRepo := repository.NewHistoryRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Infrastructure
	sessions := infra.NewSessionStore(rdb)
	propagator := pricing.NewPropagator(productRepo, historyRepo)
	dispatcher := worker.NewDispatcher(rdb)

	// Services
	authSvc := service.NewAuthService(userRepo, sessions, cfg)
	materialSvc := service.NewMaterialService(materialRepo, productRepo, propagator, dispatcher)
	productSvc := service.NewProductService(productRepo, materialRepo)
	historySvc := service.NewHistoryService(historyRepo)

	// Handlers
	authH := handler.NewAuthHandler(authSvc)
	materialH := handler.NewMaterialHandler(materialSvc)
	productH := handler.NewProductHandler(productSvc)
	historyH := handler.NewHistoryHandler(historySvc)
	reportH := handler.NewReportHandler(productRepo, cfg.PDFStoragePath)

	sessionAuth := middleware.SessionAuth(cfg.SessionSecret, sessions)

	r.GET("/health", handler.Health(db, rdb))

	api := r.Group("/api")
	{
		api.POST("/register", authH.Register)
		api.POST("/login", middleware.LoginRateLimiter(), authH.Login)

		authed := api.Group("", sessionAuth)
		{
			authed.POST("/logout", authH.Logout)
			authed.GET("/check-session", authH.CheckSession)
		}

		// Public catalog reads
		api.GET("/raw-materials", materialH.List)
		api.GET("/raw-materials/:id", materialH.Get)
		api.GET("/products", productH.List)
		api.GET("/products/:id", productH.Get)

		// Admin-only writes and reports
		admin := api.Group("", sessionAuth, middleware.RequireAdmin())
		{
			admin.POST("/raw-materials", materialH.Create)
			admin.PUT("/raw-materials/:id", materialH.Update)
			admin.DELETE("/raw-materials/:id", materialH.Delete)

			admin.POST("/products", productH.Create)
			admin.PUT("/products/:id", productH.Update)
			admin.DELETE("/products/:id", productH.Delete)

			admin.GET("/price-history", historyH.List)
			admin.GET("/reports/price-list", reportH.PriceList)
		}
	}

	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
