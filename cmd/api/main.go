package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/singhBond/biryani-cat/internal/auth"
	"github.com/singhBond/biryani-cat/internal/categories"
	"github.com/singhBond/biryani-cat/internal/config"
	"github.com/singhBond/biryani-cat/internal/db"
	"github.com/singhBond/biryani-cat/internal/events"
	"github.com/singhBond/biryani-cat/internal/images"
	"github.com/singhBond/biryani-cat/internal/middleware"
	"github.com/singhBond/biryani-cat/internal/products"
	"github.com/singhBond/biryani-cat/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New(cfg.LogLevel)

	pool, err := db.NewPostgres(context.Background(), cfg)
	if err != nil {
		log.Error("connect postgres", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := db.EnsureSchema(context.Background(), pool); err != nil {
		log.Error("ensure schema", "error", err)
		os.Exit(1)
	}

	jwtMgr := auth.NewJWTManager(auth.JWTConfig{
		Issuer:         cfg.JWTIssuer,
		AccessSecret:   cfg.JWTAccessSecret,
		RefreshSecret:  cfg.JWTRefreshSecret,
		AccessTTLMin:   cfg.AccessTokenTTLMin,
		RefreshTTLDays: cfg.RefreshTokenTTLDays,
	})

	userRepo := auth.NewUserRepo(pool)
	refreshRepo := auth.NewRefreshRepo(pool)

	if n, err := refreshRepo.DeleteExpired(context.Background()); err != nil {
		log.Warn("prune refresh sessions", "error", err)
	} else if n > 0 {
		log.Info("pruned expired refresh sessions", "count", n)
	}

	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		hash, err := auth.HashPassword(cfg.AdminPassword)
		if err != nil {
			log.Error("hash admin password", "error", err)
			os.Exit(1)
		}
		if _, err := userRepo.EnsureAdmin(context.Background(), cfg.AdminEmail, hash); err != nil {
			log.Error("seed admin user", "error", err)
			os.Exit(1)
		}
	}

	authHandler := auth.NewHandler(auth.Dependencies{
		JWT:     jwtMgr,
		Users:   userRepo,
		Refresh: refreshRepo,
	})

	bus := events.NewBus()

	catRepo := categories.NewRepo(pool)
	catHandler := categories.NewHandler(catRepo, bus, log)

	prodRepo := products.NewRepo(pool)
	prodHandler := products.NewHandler(prodRepo, bus, log)

	imgHandler := images.NewHandler(log)

	if cfg.AppEnv != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.RequestLogger(log))
	r.Use(gin.Recovery())

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
		authGroup.POST("/logout", authHandler.Logout)
	}

	// Public menu reads (no login required)
	api.GET("/categories", catHandler.List)
	api.GET("/categories/:id/products", prodHandler.List)

	protected := api.Group("/")
	protected.Use(auth.AuthMiddleware(jwtMgr))
	{
		protected.GET("/me", authHandler.Me)
		protected.POST("/auth/logout-all", authHandler.LogoutAll)

		adminOnly := protected.Group("/admin")
		adminOnly.Use(auth.RequireRole("admin"))

		adminOnly.GET("/categories", catHandler.List)
		adminOnly.POST("/categories", catHandler.Create)
		adminOnly.PATCH("/categories/:id", catHandler.Update)
		adminOnly.DELETE("/categories/:id", catHandler.Delete)
		// separate path: gin cannot mix static and :id segments
		adminOnly.POST("/categories-reorder", catHandler.Reorder)

		adminOnly.GET("/categories/:id/products", prodHandler.List)
		adminOnly.POST("/categories/:id/products", prodHandler.Create)
		adminOnly.PATCH("/categories/:id/products/:productId", prodHandler.Update)
		adminOnly.DELETE("/categories/:id/products/:productId", prodHandler.Delete)

		// live update streams (SSE)
		adminOnly.GET("/events/categories", catHandler.Stream)
		adminOnly.GET("/events/categories/:id/products", prodHandler.Stream)

		adminOnly.POST("/images", imgHandler.Upload)
	}

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	go func() {
		log.Info("listening", "addr", cfg.HTTPAddr, "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeoutSec)*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", "error", err)
		os.Exit(1)
	}
	log.Info("stopped")
}
