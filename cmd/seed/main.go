package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"storecatalog/internal/auth"
	"storecatalog/internal/config"
	"storecatalog/internal/db"
	apperrors "storecatalog/internal/errors"
	"storecatalog/internal/logger"
	"storecatalog/internal/model"
	"storecatalog/internal/redisstore"
	"storecatalog/internal/repository"
	"storecatalog/internal/service"
)

// defaultCategories is the starter taxonomy.
var defaultCategories = []struct {
	Name string
	Slug string
}{
	{"Electronics", "electronics"},
	{"Clothing", "clothing"},
	{"Home & Kitchen", "home-kitchen"},
	{"Books", "books"},
	{"Sports", "sports"},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallback := zerolog.New(os.Stderr).With().Timestamp().Logger()
		fallback.Fatal().Err(err).Msg("load config")
	}
	log := logger.New(cfg.AppEnv, cfg.LogLevel)
	log.Info().Msg("starting seed")

	gormDB, err := db.NewMySQL(cfg.MySQLDSN, logger.Named(log, "gorm"))
	if err != nil {
		log.Fatal().Err(err).Msg("connect to database")
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}
	log.Info().Msg("database migrations completed")

	redisClient := redisstore.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer redisClient.Close()

	categoryRepo := repository.NewCategoryRepository(gormDB)
	productRepo := repository.NewProductRepository(gormDB)

	// Admin signup is always allowed here; the seed runs with operator rights.
	authService := service.NewAuthService(
		repository.NewUserRepository(gormDB),
		repository.NewCredentialRepository(gormDB),
		auth.NewJWTService(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL),
		auth.NewTokenStore(redisClient),
		true,
		logger.Named(log, "auth"),
	)
	categoryService := service.NewCategoryService(categoryRepo, productRepo)

	ctx := context.Background()
	seedAdmin(ctx, log, cfg, authService)
	created, skipped, err := seedCategories(ctx, categoryService)
	if err != nil {
		log.Fatal().Err(err).Msg("seed categories")
	}
	log.Info().Int("created", created).Int("skipped", skipped).Msg("categories seeded")
	log.Info().Msg("seed completed")
}

func seedAdmin(ctx context.Context, log zerolog.Logger, cfg *config.Config, authService service.AuthService) {
	if cfg.SeedAdminPassword == "" {
		log.Warn().Msg("SEED_ADMIN_PASSWORD not set, skipping admin account")
		return
	}
	user, err := authService.Register(ctx, cfg.SeedAdminEmail, cfg.SeedAdminPassword, model.RoleAdmin)
	switch {
	case errors.Is(err, service.ErrUserAlreadyExists):
		log.Info().Str("email", cfg.SeedAdminEmail).Msg("admin already exists")
	case err != nil:
		log.Fatal().Err(err).Msg("create admin")
	default:
		log.Info().Str("email", user.Email).Str("user_id", user.ID.String()).Msg("admin created")
	}
}

// seedCategories creates the default categories, skipping slugs that already exist.
func seedCategories(ctx context.Context, categoryService service.CategoryService) (created, skipped int, err error) {
	for _, c := range defaultCategories {
		_, err := categoryService.Create(ctx, c.Name, c.Slug)
		if err != nil && apperrors.KindOf(err) == apperrors.KindConflict {
			skipped++
			continue
		}
		if err != nil {
			return created, skipped, fmt.Errorf("create category %q: %w", c.Slug, err)
		}
		created++
	}
	return created, skipped, nil
}
