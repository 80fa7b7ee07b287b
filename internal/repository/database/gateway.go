package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/lkzdsb-lab/postsvc/internal/model"
)

var (
	ErrNotConnected     = errors.New("database not connected")
	ErrAlreadyConnected = errors.New("database already connected")
	ErrUnsupportedURL   = errors.New("unsupported database url")
)

type Config struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
}

// Query is a parameterized query object. For FetchOne/FetchAll it only scopes the
// statement (table, filters, paging); for Execute it must run the statement.
type Query func(tx *gorm.DB) *gorm.DB

// Gateway owns the process-wide connection pool between Connect and Disconnect.
type Gateway struct {
	cfg     Config
	dialect Dialect
	logger  zerolog.Logger
	db      *gorm.DB
}

func NewGateway(cfg Config, logger zerolog.Logger) (*Gateway, error) {
	dialect, err := ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}
	return &Gateway{
		cfg:     cfg,
		dialect: dialect,
		logger:  logger.With().Str("component", "database").Str("driver", dialect.Driver).Logger(),
	}, nil
}

// Connect opens the pool, checks the server is reachable and creates the posts
// table if it does not exist yet.
func (g *Gateway) Connect(ctx context.Context) error {
	if g.db != nil {
		return ErrAlreadyConnected
	}

	db, err := gorm.Open(g.dialect.Dialector(), &gorm.Config{
		Logger:  newGormLogger(g.logger),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get sql.DB: %w", err)
	}
	if g.dialect.InMemory() {
		sqlDB.SetMaxOpenConns(1)
	} else if g.cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(g.cfg.MaxOpenConns)
	}
	if g.cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(g.cfg.MaxIdleConns)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return fmt.Errorf("ping database: %w", err)
	}

	if err := db.WithContext(ctx).AutoMigrate(&model.Post{}); err != nil {
		_ = sqlDB.Close()
		return fmt.Errorf("create schema: %w", err)
	}

	g.db = db
	g.logger.Info().Msg("database connected")
	return nil
}

// Disconnect releases the pool. Safe to call when not connected.
func (g *Gateway) Disconnect() error {
	if g.db == nil {
		return nil
	}
	sqlDB, err := g.db.DB()
	g.db = nil
	if err != nil {
		return err
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	g.logger.Info().Msg("database disconnected")
	return nil
}

func (g *Gateway) Ping(ctx context.Context) error {
	if g.db == nil {
		return ErrNotConnected
	}
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (g *Gateway) Driver() string {
	return g.dialect.Driver
}

func (g *Gateway) session(ctx context.Context) (*gorm.DB, error) {
	if g.db == nil {
		return nil, ErrNotConnected
	}
	return g.db.WithContext(ctx), nil
}

// FetchOne scans at most one row into dest and reports whether a row was found.
func (g *Gateway) FetchOne(ctx context.Context, q Query, dest any) (bool, error) {
	tx, err := g.session(ctx)
	if err != nil {
		return false, err
	}
	res := q(tx).Limit(1).Find(dest)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// FetchAll scans every matching row into dest, which must point to a slice.
func (g *Gateway) FetchAll(ctx context.Context, q Query, dest any) error {
	tx, err := g.session(ctx)
	if err != nil {
		return err
	}
	return q(tx).Find(dest).Error
}

// Execute runs an insert, update or delete and returns the number of affected rows.
func (g *Gateway) Execute(ctx context.Context, q Query) (int64, error) {
	tx, err := g.session(ctx)
	if err != nil {
		return 0, err
	}
	res := q(tx)
	return res.RowsAffected, res.Error
}
