package app

import (
	"context"
	"fmt"

	"github.com/MauroGomes09/Unireserva/internal/config"
	"github.com/MauroGomes09/Unireserva/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// OpenSnapshotter selects the Persistence Sync driver named by cfg.SnapshotDriver.
// For postgres it also opens the pool and applies migrations; the returned
// closer releases whatever was opened.
func OpenSnapshotter(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.Snapshotter, func(), error) {
	logger = logger.With(zap.String("snapshot_driver", cfg.SnapshotDriver))

	switch cfg.SnapshotDriver {
	case config.DriverFile:
		s, err := repository.NewFileSnapshot(cfg.SnapshotPath)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Using file snapshot", zap.String("path", s.Path()))
		return s, func() {}, nil

	case config.DriverSQLite:
		s, err := repository.NewSQLiteSnapshot(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Using sqlite snapshot", zap.String("path", cfg.SQLitePath))
		return s, func() { _ = s.Close() }, nil

	case config.DriverPostgres:
		pool, err := pgxpool.New(ctx, cfg.DBDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("ping postgres: %w", err)
		}
		migrator, err := NewMigrator(pool, logger)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		defer func() { _ = migrator.Close() }()
		if err := migrator.Run(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		logger.Info("Using postgres snapshot")
		return repository.NewPostgresSnapshot(pool), pool.Close, nil

	case config.DriverS3:
		s, err := repository.NewS3Snapshot(ctx, repository.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			Prefix:    cfg.S3Prefix,
			PathStyle: cfg.S3PathStyle,
		})
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Using s3 snapshot", zap.String("bucket", cfg.S3Bucket), zap.String("key", s.Key()))
		return s, func() {}, nil

	case config.DriverRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("ping redis: %w", err)
		}
		s := repository.NewRedisSnapshot(client, cfg.RedisKey)
		logger.Info("Using redis snapshot", zap.String("addr", cfg.RedisAddr))
		return s, func() { _ = s.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown snapshot driver %q", cfg.SnapshotDriver)
	}
}
