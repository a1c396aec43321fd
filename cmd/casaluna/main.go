package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/casaluna/casaluna/config"
	"github.com/casaluna/casaluna/internal/bootstrap"
)

func main() {
	ctx := context.Background()
	logger := bootstrap.InitLogger()
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "starting casaluna service",
		"db_host", cfg.Postgres.Host,
		"db_port", cfg.Postgres.Port,
		"db_name", cfg.Postgres.Name,
		"auth_mode", cfg.Auth.Mode,
		"dev", cfg.IsDev,
	)

	db, err := bootstrap.ConnectDB(ctx, cfg.Postgres, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	if cfg.Postgres.RunMigrationsOnStart {
		if err = bootstrap.RunMigrations(ctx, cfg.Postgres, logger); err != nil {
			return err
		}
	} else {
		logger.InfoContext(ctx, "skipping database migrations on startup", "reason", "disabled via config")
	}

	sessionRedis, cacheRedis, err := connectRedisClients(&cfg, logger)
	if err != nil {
		return err
	}
	for _, client := range []redis.UniversalClient{sessionRedis, cacheRedis} {
		if client == nil {
			continue
		}
		defer func(c redis.UniversalClient) {
			if cerr := c.Close(); cerr != nil {
				logger.ErrorContext(ctx, "close redis failed", "error", cerr)
			}
		}(client)
	}

	services := bootstrap.NewServices(&bootstrap.ServiceDeps{
		Config:       &cfg,
		DB:           db,
		SessionRedis: sessionRedis,
		CacheRedis:   cacheRedis,
		Logger:       logger,
	})

	runCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return bootstrap.RunHTTPServer(runCtx, &bootstrap.HTTPServerConfig{
		Config:   &cfg,
		Services: services,
		Logger:   logger,
	})
}

// connectRedisClients connects the Redis instances the configuration calls
// for. The session store is mandatory in oidc mode; the payload cache is
// best effort since the payload is always reproducible from the database.
func connectRedisClients(
	cfg *config.AppConfig,
	logger *slog.Logger,
) (sessionRedis, cacheRedis redis.UniversalClient, err error) {
	if cfg.Auth.Mode == config.AuthModeOIDC {
		sessionRedis, err = bootstrap.ConnectRedis(bootstrap.RedisTarget{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("connect session redis: %w", err)
		}
	}

	cacheRedis, cacheErr := bootstrap.ConnectRedis(bootstrap.RedisTarget{
		Addr:     cfg.Cache.RedisAddr,
		Password: cfg.Cache.RedisPassword,
		DB:       cfg.Cache.RedisDB,
	}, logger)
	if cacheErr != nil {
		logger.Warn("payload cache redis unavailable, serving uncached", "error", cacheErr)
		cacheRedis = nil
	}

	return sessionRedis, cacheRedis, nil
}
