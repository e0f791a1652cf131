package router

import (
	"time"

	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/audit"
	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/config"
	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/handler"
	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/middleware"
	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/repository"
	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/service"
	"github.com/JotaBarbosaDev/mouros-moto-hub-sub000/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	recorder := audit.NewRecorder(dispatcher)

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	memberRepo := repository.NewMemberRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)
	eventRepo := repository.NewEventRepository(db)
	productRepo := repository.NewBarProductRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	activityRepo := repository.NewActivityLogRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg, recorder)
	memberSvc := service.NewMemberService(memberRepo, dispatcher)
	vehicleSvc := service.NewVehicleService(vehicleRepo, memberRepo)
	eventSvc := service.NewEventService(eventRepo, memberRepo)
	productSvc := service.NewBarProductService(productRepo)
	saleSvc := service.NewSaleService(saleRepo, productRepo)
	inventorySvc := service.NewInventoryService(inventoryRepo)
	activitySvc := service.NewActivityService(activityRepo)
	dashboardSvc := service.NewDashboardService(memberRepo, eventRepo, saleRepo, productRepo, inventoryRepo, dispatcher, cfg)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	membersH := handler.NewMembersHandler(memberSvc)
	vehiclesH := handler.NewVehiclesHandler(vehicleSvc)
	eventsH := handler.NewEventsHandler(eventSvc)
	productsH := handler.NewBarProductsHandler(productSvc)
	salesH := handler.NewSalesHandler(saleSvc)
	inventoryH := handler.NewInventoryHandler(inventorySvc)
	activityH := handler.NewActivityLogsHandler(activitySvc)
	dashboardH := handler.NewDashboardHandler(dashboardSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/api/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes. The activity hook runs after every handler and
	// records successful mutations.
	jwtMW := middleware.JWTAuth(cfg.JWTSecret, cfg.DevAdminBypass)
	api := r.Group("/api", jwtMW, middleware.ActivityAudit(recorder))
	{
		anyRole := middleware.RequireRole("diretor", "tesoureiro", "operador")
		boardOnly := middleware.RequireRole("diretor", "tesoureiro")
		directorOnly := middleware.RequireRole("diretor")

		// Current session
		api.GET("/auth/me", anyRole, authH.Me)

		// Members
		api.GET("/members", anyRole, membersH.List)
		api.GET("/members/:id", anyRole, membersH.Get)
		members := api.Group("/members", directorOnly)
		{
			members.POST("", membersH.Create)
			members.PUT("/:id", membersH.Update)
			members.DELETE("/:id", membersH.Delete)
		}

		// Vehicles
		api.GET("/vehicles", anyRole, vehiclesH.List)
		api.GET("/vehicles/:id", anyRole, vehiclesH.Get)
		vehicles := api.Group("/vehicles", directorOnly)
		{
			vehicles.POST("", vehiclesH.Create)
			vehicles.PUT("/:id", vehiclesH.Update)
			vehicles.DELETE("/:id", vehiclesH.Delete)
		}

		// Events and participants
		api.GET("/events", anyRole, eventsH.List)
		api.GET("/events/:id", anyRole, eventsH.Get)
		api.GET("/events/:id/participants", anyRole, eventsH.ListParticipants)
		api.POST("/events/:id/participants", anyRole, eventsH.RegisterParticipant)
		api.DELETE("/events/:id/participants/:memberId", anyRole, eventsH.RemoveParticipant)
		events := api.Group("/events", directorOnly)
		{
			events.POST("", eventsH.Create)
			events.PUT("/:id", eventsH.Update)
			events.DELETE("/:id", eventsH.Delete)
		}

		// Bar: products and sales
		api.GET("/bar/products", anyRole, productsH.List)
		api.GET("/bar/products/:id", anyRole, productsH.Get)
		products := api.Group("/bar/products", boardOnly)
		{
			products.POST("", productsH.Create)
			products.PUT("/:id", productsH.Update)
			products.DELETE("/:id", productsH.Delete)
		}

		api.POST("/bar/sales", anyRole, salesH.Create)
		api.GET("/bar/sales", anyRole, salesH.List)
		api.GET("/bar/sales/:id", anyRole, salesH.Get)
		api.PUT("/bar/sales/:id", boardOnly, salesH.Update)
		api.DELETE("/bar/sales/:id", boardOnly, salesH.Delete)

		// Inventory
		api.GET("/inventory", anyRole, inventoryH.List)
		api.GET("/inventory/:id", anyRole, inventoryH.Get)
		api.GET("/inventory/:id/history", anyRole, inventoryH.History)
		inventory := api.Group("/inventory", boardOnly)
		{
			inventory.POST("", inventoryH.Create)
			inventory.PUT("/:id", inventoryH.Update)
			inventory.DELETE("/:id", inventoryH.Delete)
			inventory.POST("/:id/add", inventoryH.Add)
			inventory.POST("/:id/remove", inventoryH.Remove)
		}

		// Audit trail — board only
		api.GET("/activity-logs", boardOnly, activityH.List)
		api.GET("/activity-logs/recent", boardOnly, activityH.Recent)
		api.GET("/activity-logs/entity/:type/:id", boardOnly, activityH.ForEntity)

		// Dashboard and treasury
		api.GET("/dashboard", anyRole, dashboardH.Dashboard)
		api.GET("/treasury/summary", boardOnly, dashboardH.TreasurySummary)
		api.GET("/treasury/report/monthly", boardOnly, dashboardH.TreasuryReport)

		// User management — diretor only
		users := api.Group("/users", directorOnly)
		{
			users.POST("", authH.CreateUser)
			users.GET("", authH.ListUsers)
			users.PUT("/:id", authH.UpdateUser)
			users.DELETE("/:id", authH.DeactivateUser)
		}
	}

	return r
}
