// @title Cartopia Backend API
// @version 1.0
// @description REST backend for the Cartopia storefront and admin console

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:5000
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"

	"github.com/rs/cors"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	_ "CARTOPIA_BACK-END/docs" // This is required for swagger
	"CARTOPIA_BACK-END/internal/config"
	"CARTOPIA_BACK-END/internal/handlers"
	"CARTOPIA_BACK-END/internal/logger"
	"CARTOPIA_BACK-END/internal/metrics"
	"CARTOPIA_BACK-END/internal/middleware"
	"CARTOPIA_BACK-END/internal/repository"
	"CARTOPIA_BACK-END/internal/routes"
	"CARTOPIA_BACK-END/internal/utils"
)

func main() {
	logger.SetupDefault(os.Stdout)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// --- Document store ---

	client, err := mongo.Connect(options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		log.Fatalf("mongo connect: %v", err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			slog.Error("mongo disconnect", slog.String("error", err.Error()))
		}
	}()

	// Ping on boot
	{
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Mongo.ConnTimeout)
		defer cancel()
		if err := client.Ping(ctx, readpref.Primary()); err != nil {
			log.Fatalf("mongo ping: %v", err)
		}
	}

	db := client.Database(cfg.Mongo.Database)

	var userRepo *repository.MongoUserRepository
	{
		// Index creation on boot
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Mongo.ConnTimeout)
		defer cancel()
		userRepo, err = repository.NewMongoUserRepository(ctx, db)
		if err != nil {
			log.Fatalf("user repository: %v", err)
		}
	}
	productRepo := repository.NewMongoProductRepository(db)
	orderRepo := repository.NewMongoOrderRepository(db)

	// --- HTTP Handlers ---

	collector := metrics.NewCollector()
	emailService := utils.NewEmailService(&cfg.Email)
	resetLimiter := middleware.NewResetRateLimiter(cfg.RateLimit)
	defer resetLimiter.Stop()

	authHandler := handlers.NewAuthHandler(userRepo, &cfg.JWT, cfg.Admin, collector)
	forgotPasswordHandler := handlers.NewForgotPasswordHandler(userRepo, emailService, &cfg.Reset, resetLimiter, collector)
	profileHandler := handlers.NewProfileHandler(userRepo)
	productHandler := handlers.NewProductHandler(productRepo)
	cartHandler := handlers.NewCartHandler(userRepo)
	orderHandler := handlers.NewOrderHandler(orderRepo, userRepo)
	healthHandler := handlers.NewHealthHandler(client)

	// Setup all routes
	routes.SetupRoutes(
		authHandler,
		forgotPasswordHandler,
		profileHandler,
		productHandler,
		cartHandler,
		orderHandler,
		healthHandler,
		collector,
		&cfg.JWT,
	)

	// --- HTTP Server + Graceful Shutdown ---

	// Setup CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
	})

	// Wrap the default mux with CORS, metrics and request logging
	handler := c.Handler(collector.Instrument(middleware.RequestLogging(http.DefaultServeMux)))

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	go func() {
		slog.Info("HTTP server listening", slog.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe: %v", err)
		}
	}()

	// Wait for SIGINT for a graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", slog.String("error", err.Error()))
	}
	slog.Info("Server stopped.")
}
