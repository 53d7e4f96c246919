package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "lifestream/docs" // swagger docs

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"lifestream/internal/auth"
	"lifestream/internal/cache"
	"lifestream/internal/config"
	"lifestream/internal/db"
	"lifestream/internal/handler"
	"lifestream/internal/model"
	"lifestream/internal/payment"
	"lifestream/internal/repository"
	"lifestream/internal/router"
	"lifestream/internal/service"
)

const shutdownTimeout = 10 * time.Second

// @title Lifestream API
// @version 1.0
// @description Blood-donation coordination backend: donation requests, donor search, fundings and content management.
// @host localhost:5000
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(echomw.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.DonationRequest{},
		&model.Funding{},
		&model.Blog{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	donationRepo := repository.NewDonationRequestRepository(gormDB)
	fundingRepo := repository.NewFundingRepository(gormDB)
	blogRepo := repository.NewBlogRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	userService := service.NewUserService(userRepo)
	donationService := service.NewDonationService(donationRepo)
	fundingService := service.NewFundingService(fundingRepo)
	blogService := service.NewBlogService(blogRepo)
	paymentService := service.NewPaymentService(payment.NewStripeBridge(cfg.StripeSecret))

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	donationHandler := handler.NewDonationHandler(donationService)
	fundingHandler := handler.NewFundingHandler(fundingService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	blogHandler := handler.NewBlogHandler(blogService)

	// Register routes
	router.Register(
		e,
		cfg,
		userRepo,
		authHandler,
		userHandler,
		donationHandler,
		fundingHandler,
		paymentHandler,
		blogHandler,
	)

	go func() {
		addr := ":" + cfg.ServerPort
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
	if err := db.Close(gormDB); err != nil {
		log.Printf("database close: %v", err)
	}
	if err := cacheClient.Close(); err != nil {
		log.Printf("cache close: %v", err)
	}
}
