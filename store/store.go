// store/store.go
package store

import (
	"context"
	"database/sql"
	"time"

	"runonstreet-backend/models"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	// ErrNotFound means no row matched the lookup or conditional update.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateCode means a redemption code is already attached to a run.
	ErrDuplicateCode = errors.New("redemption code already in use")
)

// PoolConfig sizes the connection pool behind the store.
type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Store is the storage handle injected into every service. It is the only
// thing in the process that talks to the database.
type Store struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{DB: db}
}

// GormConfig is shared by the postgres connection and the test databases so
// both translate driver errors (unique violations) the same way.
func GormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger: logger.New(gormLogWriter{}, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	}
}

// OpenPostgres connects to postgres and sizes the pool.
func OpenPostgres(dsn string, pool PoolConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), GormConfig())
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get sql.DB")
	}
	if pool.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	}
	if pool.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(pool.ConnMaxLifetime)
	}
	return db, nil
}

// Migrate creates or updates the tables the service owns.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.DB.WithContext(ctx).AutoMigrate(models.AllModels()...); err != nil {
		return errors.Wrap(err, "failed to migrate database")
	}
	return nil
}

// Ping checks store connectivity.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get sql.DB")
	}
	return errors.Wrap(sqlDB.PingContext(ctx), "database ping failed")
}

// PoolStats exposes the underlying connection pool counters.
func (s *Store) PoolStats() (sql.DBStats, error) {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return sql.DBStats{}, errors.Wrap(err, "failed to get sql.DB")
	}
	return sqlDB.Stats(), nil
}

// Close releases the pool. Called once at process exit.
func (s *Store) Close() error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// gormLogWriter routes GORM's logger through zerolog.
type gormLogWriter struct{}

func (gormLogWriter) Printf(format string, args ...interface{}) {
	log.Warn().Str("component", "gorm").Msgf(format, args...)
}
