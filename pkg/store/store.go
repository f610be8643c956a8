package store

import (
	"context"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

type txContextKey string

const txKey txContextKey = "trx"

type Config struct {
	Path string `env:"PATH"` // database file, ":memory:" for tests
}

// Store is the process-scoped handle to the embedded database.
// Open it once at startup and Close it at shutdown; every repository
// shares the same handle.
type Store struct {
	db *gorm.DB
}

func Open(cfg Config, withDebug bool) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			SingularTable: true,
		},
	})
	if err != nil {
		return nil, err
	}

	// WAL keeps readers unblocked while a write is in flight.
	if err := db.Exec("PRAGMA journal_mode = WAL;").Error; err != nil {
		return nil, err
	}

	if withDebug {
		db = db.Debug()
	}
	return &Store{db: db}, nil
}

// Migrate ensures the given tables exist. Create-if-absent semantics,
// safe to call on every start. There is no migration framework: schema
// changes beyond additive ones need manual intervention.
func (s *Store) Migrate(models ...any) error {
	return s.db.AutoMigrate(models...)
}

// WithinTransaction runs fn inside a single transaction. The transaction
// handle rides the context, so every repository call made through DB(ctx)
// inside fn joins the same transaction and rolls back together.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ctx = context.WithValue(ctx, txKey, tx)
		return fn(ctx)
	})
}

// DB returns the transaction bound to ctx if there is one, otherwise the
// shared handle.
func (s *Store) DB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return tx
	}
	return s.db.WithContext(ctx)
}

// Ping verifies the underlying connection is still usable.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
