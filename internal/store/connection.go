package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// ConnectionConfig configures a pooled Postgres connection.
type ConnectionConfig struct {
	Name        string `env:"APP_NAME,default=taskplatform-db"`
	Environment string `env:"APP_ENV,default=development"`
	Database    string `env:"DB_NAME,required"`
	Host        string `env:"DB_HOST,required"`
	Port        string `env:"DB_PORT,required"`
	User        string `env:"DB_USER,required"`
	Secret      string `env:"DB_PASS,required"`
	SSLMode     string `env:"DB_SSL_MODE,default=disable"`
}

func (cfg ConnectionConfig) validate() error {
	var missing []string
	if cfg.Database == "" {
		missing = append(missing, "Database")
	}
	if cfg.Host == "" {
		missing = append(missing, "Host")
	}
	if cfg.Port == "" {
		missing = append(missing, "Port")
	}
	if cfg.User == "" {
		missing = append(missing, "User")
	}
	if cfg.Secret == "" {
		missing = append(missing, "Secret")
	}
	if len(missing) > 0 {
		return fmt.Errorf("store: missing required config fields: %v", missing)
	}
	return nil
}

// Connection is a pgxpool-backed conn, satisfying the Store's narrow
// interface the same way internal/db.Connection satisfied db.
type Connection struct {
	name        string
	environment string
	pool        *pgxpool.Pool
}

// NewConnection opens a connection pool, following the teacher's
// Config-validate-then-dial shape.
func NewConnection(cfg ConnectionConfig) (*Connection, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	connString := fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.User, cfg.Secret, cfg.Host, cfg.Port, cfg.Database, cfg.SSLMode)

	pool, err := pgxpool.New(context.Background(), connString)
	if err != nil {
		return nil, fmt.Errorf("store: creating connection pool: %w", err)
	}

	return &Connection{name: cfg.Name, environment: cfg.Environment, pool: pool}, nil
}

// Start pings the pool, skipping the check in the test environment the
// same way the teacher's Connection.Start does.
func (c *Connection) Start() error {
	if c.environment != "test" {
		if err := c.pool.Ping(context.Background()); err != nil {
			zap.L().Error("database connection failed",
				zap.String("name", c.name), zap.String("environment", c.environment), zap.Error(err))
			return err
		}
		zap.L().Info("database connection established",
			zap.String("name", c.name), zap.String("environment", c.environment))
	}
	return nil
}

// Stop closes the pool.
func (c *Connection) Stop() error {
	if c.pool != nil {
		c.pool.Close()
	}
	return nil
}

// Query implements conn.
func (c *Connection) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return c.pool.Query(ctx, sql, args...)
}

// QueryRow implements conn.
func (c *Connection) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return c.pool.QueryRow(ctx, sql, args...)
}

// Exec implements conn.
func (c *Connection) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return c.pool.Exec(ctx, sql, args...)
}
