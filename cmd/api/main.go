package main

import (
	"context"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "lawdesk/api/swagger" // swagger docs
	"lawdesk/internal/auth"
	"lawdesk/internal/config"
	"lawdesk/internal/database"
	"lawdesk/internal/handler"
	"lawdesk/internal/metrics"
	"lawdesk/internal/middleware"
	"lawdesk/internal/repository"
	"lawdesk/internal/service"
	"lawdesk/internal/validation"
	"lawdesk/internal/websocket"
	"lawdesk/pkg/logger"
)

// @title           LawDesk API
// @version         1.0
// @description     Case management backend for a legal practice.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	ctx := context.Background()
	log := logger.Get()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	db, err := database.NewConnection(cfg.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	log.Info().Msg("connected to postgres")

	if err := database.SeedAdmin(ctx, db, cfg.AdminUsername, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatal().Err(err).Msg("admin seed failed")
	}

	validation.Register()

	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Repository -> Service -> Handler
	txManager := repository.NewTransactionManager(db)
	userRepo := repository.NewUserRepository(db)
	clientRepo := repository.NewClientRepository(db)
	caseRepo := repository.NewCaseRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	documentRepo := repository.NewDocumentRepository(db)

	tokenService := auth.NewTokenService(userRepo, []byte(cfg.JWTSecret), cfg.AccessTokenTTL)

	authService := service.NewAuthService(userRepo, tokenService)
	staffService := service.NewStaffService(userRepo, txManager)
	lawyerService := service.NewLawyerService(userRepo, txManager)
	clientService := service.NewClientService(clientRepo, txManager)
	caseService := service.NewCaseService(caseRepo, clientRepo, userRepo, txManager, wsHub)
	taskService := service.NewTaskService(taskRepo, caseRepo, userRepo, txManager, wsHub)
	invoiceService := service.NewInvoiceService(invoiceRepo, clientRepo, txManager)
	sessionService := service.NewSessionService(sessionRepo, caseRepo, txManager)
	documentService := service.NewDocumentService(documentRepo, caseRepo, txManager)
	dashboardService := service.NewDashboardService(db)

	authHandler := handler.NewAuthHandler(authService)
	staffHandler := handler.NewStaffHandler(staffService)
	lawyerHandler := handler.NewLawyerHandler(lawyerService)
	clientHandler := handler.NewClientHandler(clientService)
	caseHandler := handler.NewCaseHandler(caseService)
	taskHandler := handler.NewTaskHandler(taskService)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService)
	sessionHandler := handler.NewSessionHandler(sessionService)
	documentHandler := handler.NewDocumentHandler(documentService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(log))
	router.Use(metrics.Middleware())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173"}
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", metrics.Handler())
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, tokenService)
	})

	// Login is the only unauthenticated API route.
	authHandler.RegisterRoutes(router.Group(""))

	api := router.Group("", middleware.Authenticate(tokenService))
	staffHandler.RegisterRoutes(api)
	lawyerHandler.RegisterRoutes(api)
	clientHandler.RegisterRoutes(api)
	caseHandler.RegisterRoutes(api)
	taskHandler.RegisterRoutes(api)
	invoiceHandler.RegisterRoutes(api)
	sessionHandler.RegisterRoutes(api)
	documentHandler.RegisterRoutes(api)
	dashboardHandler.RegisterRoutes(api)

	log.Info().Str("port", cfg.Port).Msg("server listening")
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}
