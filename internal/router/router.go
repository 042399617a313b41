package router

import (
	"time"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Nahuel-199/eze-maxikiosco-sub000/internal/config"
	"github.com/Nahuel-199/eze-maxikiosco-sub000/internal/handler"
	"github.com/Nahuel-199/eze-maxikiosco-sub000/internal/middleware"
	"github.com/Nahuel-199/eze-maxikiosco-sub000/internal/repository"
	"github.com/Nahuel-199/eze-maxikiosco-sub000/internal/service"
	"github.com/Nahuel-199/eze-maxikiosco-sub000/internal/worker"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	cacheTTL := time.Duration(cfg.SummaryCacheTTLSeconds) * time.Second

	// ── Repositories ─────────────────────────────────────────────────────────
	drawerRepo := repository.NewDrawerRepository(db)
	movementRepo := repository.NewMovementRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	productRepo := repository.NewProductRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	// Worker dispatcher — injected into DrawerService so Close can enqueue
	// the report job without blocking on PDF generation or SMTP.
	dispatcher := worker.NewDispatcher(rdb)

	drawerSvc := service.NewDrawerService(drawerRepo, saleRepo, movementRepo, rdb, cacheTTL, dispatcher)
	movementSvc := service.NewMovementService(movementRepo, drawerRepo, rdb, cacheTTL)
	saleSvc := service.NewSaleService(saleRepo, drawerRepo, productRepo, rdb, cacheTTL)

	// ── Handlers ─────────────────────────────────────────────────────────────
	drawersH := handler.NewDrawerHandler(drawerSvc)
	movementsH := handler.NewMovementHandler(movementSvc)
	salesH := handler.NewSaleHandler(saleSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: cashier, supervisor, admin — declared per-endpoint
		drawers := v1.Group("/drawers")
		{
			drawers.POST("/open", middleware.RequireRole("cashier", "supervisor", "admin"), drawersH.Open)
			drawers.POST("/:id/close", middleware.RequireRole("cashier", "supervisor", "admin"), drawersH.Close)
			drawers.GET("/active", middleware.RequireRole("cashier", "supervisor", "admin"), drawersH.GetActive)
			drawers.GET("/:id/summary", middleware.RequireRole("cashier", "supervisor", "admin"), drawersH.Summary)
			drawers.GET("/:id/movements", middleware.RequireRole("cashier", "supervisor", "admin"), movementsH.ListByDrawer)
			drawers.GET("", middleware.RequireRole("supervisor", "admin"), drawersH.History)
		}

		v1.POST("/sales", middleware.RequireRole("cashier", "supervisor", "admin"), salesH.Process)
		v1.GET("/sales", middleware.RequireRole("cashier", "supervisor", "admin"), salesH.List)

		v1.POST("/movements", middleware.RequireRole("cashier", "supervisor", "admin"), movementsH.Add)
		v1.DELETE("/movements/:id", middleware.RequireRole("supervisor", "admin"), movementsH.Delete)
	}

	// Swagger UI — dev only
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
