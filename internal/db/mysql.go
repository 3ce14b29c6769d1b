package db

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"storecatalog/internal/logger"
	"storecatalog/internal/model"
)

// NewMySQL returns a connected GORM DB instance. Driver errors for duplicate keys and
// foreign keys are translated to gorm.ErrDuplicatedKey and gorm.ErrForeignKeyViolated.
func NewMySQL(dsn string, log zerolog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         logger.GORM(log),
		TranslateError: true,
		NowFunc:        now,
	})
	if err != nil {
		return nil, fmt.Errorf("connect mysql: %w", err)
	}
	return db, nil
}

// now matches the datetime(3) columns, so a row returned from Create carries the
// same timestamps a later read does.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// tables lists every model in dependency order (parents first).
func tables() []interface{} {
	return []interface{}{
		&model.Credential{},
		&model.User{},
		&model.Category{},
		&model.Product{},
		&model.ProductImage{},
	}
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(tables()...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

// Reset drops every table, children first.
func Reset(db *gorm.DB, log zerolog.Logger) {
	all := tables()
	for i := len(all) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(all[i]); err != nil {
			log.Warn().Err(err).Msg("drop table (may not exist)")
		}
	}
}

// Pinger reports database reachability for health checks.
type Pinger struct {
	db *gorm.DB
}

// NewPinger wraps db for health checks.
func NewPinger(db *gorm.DB) *Pinger {
	return &Pinger{db: db}
}

// Name identifies the dependency in health output.
func (p *Pinger) Name() string { return "mysql" }

// Ping checks the underlying connection pool.
func (p *Pinger) Ping(ctx context.Context) error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
