package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/casaluna/casaluna/config"
	"github.com/casaluna/casaluna/internal/data"
	"github.com/casaluna/casaluna/internal/migrate"
)

// PostgresDSN builds a connection string from the database configuration.
// Credentials go through url.UserPassword so special characters survive.
func PostgresDSN(cfg config.DBConfig) string {
	u := &url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.User, cfg.Password),
		Host:   net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Path:   "/" + cfg.Name,
	}
	q := u.Query()
	q.Set("sslmode", cfg.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// ConnectDB establishes a pgx connection pool to PostgreSQL.
func ConnectDB(ctx context.Context, cfg config.DBConfig, logger *slog.Logger) (*data.DB, error) {
	db, err := data.New(ctx, PostgresDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if logger != nil {
		logger.InfoContext(ctx, "database connected",
			"host", cfg.Host,
			"port", cfg.Port,
			"database", cfg.Name,
		)
	}

	return db, nil
}

// RunMigrations applies pending database migrations.
func RunMigrations(ctx context.Context, cfg config.DBConfig, logger *slog.Logger) error {
	if err := migrate.Up(ctx, PostgresDSN(cfg)); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	if logger != nil {
		logger.InfoContext(ctx, "database migrations completed")
	}

	return nil
}

// RedisTarget identifies a Redis instance to connect to.
type RedisTarget struct {
	Addr     string
	Password string
	DB       int
}

// ConnectRedis establishes a connection to Redis and verifies it with a ping.
//
//nolint:ireturn // returning redis.UniversalClient keeps the client type flexible for callers.
func ConnectRedis(target RedisTarget, logger *slog.Logger) (redis.UniversalClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     target.Addr,
		Password: target.Password,
		DB:       target.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if pingErr := client.Ping(ctx).Err(); pingErr != nil {
		if closeErr := client.Close(); closeErr != nil {
			pingErr = errors.Join(pingErr, fmt.Errorf("close redis client: %w", closeErr))
		}
		return nil, fmt.Errorf("ping redis: %w", pingErr)
	}

	if logger != nil {
		logger.Info("redis connected", "addr", target.Addr, "db", target.DB)
	}

	return client, nil
}
