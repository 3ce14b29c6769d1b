package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"storecatalog/docs" // swagger docs
	"storecatalog/internal/auth"
	"storecatalog/internal/config"
	"storecatalog/internal/db"
	"storecatalog/internal/handler"
	"storecatalog/internal/logger"
	"storecatalog/internal/redisstore"
	"storecatalog/internal/repository"
	"storecatalog/internal/router"
	"storecatalog/internal/service"
)

const shutdownTimeout = 10 * time.Second

// @title Store Catalog API
// @version 1.0
// @description Catalog API for products, categories and product images with role-gated writes.
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fallback := zerolog.New(os.Stderr).With().Timestamp().Logger()
		fallback.Fatal().Err(err).Msg("load config")
	}
	log := logger.New(cfg.AppEnv, cfg.LogLevel)

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	gormDB, err := db.NewMySQL(cfg.MySQLDSN, logger.Named(log, "gorm"))
	if err != nil {
		log.Fatal().Err(err).Msg("database init")
	}
	if cfg.ResetDB {
		log.Warn().Msg("RESET_DB=true, dropping all tables")
		db.Reset(gormDB, log)
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}

	redisClient := redisstore.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer redisClient.Close()

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)
	credentialRepo := repository.NewCredentialRepository(gormDB)
	categoryRepo := repository.NewCategoryRepository(gormDB)
	productRepo := repository.NewProductRepository(gormDB)
	imageRepo := repository.NewProductImageRepository(gormDB)

	// Auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	tokenStore := auth.NewTokenStore(redisClient)
	provider := auth.NewProvider(jwtService, tokenStore)
	resolver := auth.NewResolver(provider, userRepo, logger.Named(log, "auth"))

	// Services
	authService := service.NewAuthService(userRepo, credentialRepo, jwtService, tokenStore, cfg.AllowAdminSignup, logger.Named(log, "auth"))
	categoryService := service.NewCategoryService(categoryRepo, productRepo)
	catalogService := service.NewCatalogService(categoryRepo, productRepo, imageRepo, logger.Named(log, "catalog"))

	e := echo.New()
	router.Register(e, cfg, log, resolver, router.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Category: handler.NewCategoryHandler(categoryService),
		Product:  handler.NewProductHandler(catalogService),
		Health:   handler.NewHealthHandler(logger.Named(log, "health"), db.NewPinger(gormDB), redisClient),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		addr := ":" + cfg.ServerPort
		log.Info().Str("addr", addr).Str("swagger", swaggerURL(docs.SwaggerInfo.Host)).Msg("server starting")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	log.Info().Msg("server stopped")
}

// swaggerURL builds the docs address. host may already carry a scheme.
func swaggerURL(host string) string {
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "http://" + host
	}
	return strings.TrimSuffix(host, "/") + "/swagger/index.html"
}
