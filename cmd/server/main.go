package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"mapposter-backend/internal/config"
	"mapposter-backend/internal/database"
	"mapposter-backend/internal/handlers"
	"mapposter-backend/internal/middleware"
	"mapposter-backend/internal/sheets"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.NewMigrator(db).Run(); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Migrations completed successfully")

	catalogStore := database.NewCatalogStore(db)
	orderStore := database.NewOrderStore(db)

	var sheetsClient *sheets.Client
	if cfg.SheetsWebhookURL != "" {
		sheetsClient = sheets.NewClient(cfg.SheetsWebhookURL, cfg.SheetsAPIKey)
		log.Println("Order mirror enabled")
	}

	catalogHandler := handlers.NewCatalogHandler(catalogStore)
	ordersHandler := handlers.NewOrdersHandler(orderStore, sheetsClient, cfg.BaseURL)
	previewHandler := handlers.NewPreviewHandler(orderStore)
	adminHandler := handlers.NewAdminHandler(cfg)

	loginLimiter := middleware.NewRateLimiter(5, time.Minute)
	adminLimiter := middleware.NewRateLimiter(60, time.Minute)
	adminAuth := middleware.AdminAuth(cfg)
	adminGuard := adminLimiter.Middleware("Too many admin requests. Try again later.")

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), middleware.RequestID())
	handlers.RegisterTemplates(router)

	router.GET("/", handlers.HealthHandler)
	router.GET("/health", handlers.HealthHandler)
	router.GET("/preview/:token", previewHandler.Show)

	api := router.Group("/api")

	api.POST("/admin/check",
		loginLimiter.Middleware("Too many login attempts. Try again later."),
		adminHandler.Check)

	catalogHandler.Register(api, adminGuard, adminAuth)

	api.POST("/order", ordersHandler.SubmitOrder)
	api.GET("/order/:token", ordersHandler.GetOrderByToken)
	api.GET("/orders", adminGuard, adminAuth, ordersHandler.ListOrders)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-shutdown
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	log.Printf("Server starting on port %s", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
