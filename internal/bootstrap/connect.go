package bootstrap

import (
	"context"
	"time"

	"schemesathi/internal/common/config"
	"schemesathi/internal/common/database"
	"schemesathi/internal/common/logger"
	"schemesathi/internal/store/application"
	"schemesathi/internal/store/profile"
)

// Backends holds the connected storage clients.
type Backends struct {
	Postgres      *database.PostgresClient
	Redis         *database.RedisClient
	Elasticsearch *database.ElasticsearchClient
}

// Connect opens Postgres, Redis and Elasticsearch with retries and applies the table schema.
func Connect(ctx context.Context, cfg *config.Config, log logger.Logger) (*Backends, error) {
	b := &Backends{}

	err := RetryWithBackoff(func() error {
		var err error
		b.Postgres, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return b.Postgres.Ping(ctx)
	}, 15, 2*time.Second, log, "PostgreSQL connection")
	if err != nil {
		return nil, err
	}
	log.Info("PostgreSQL connected", nil)

	schema := append(append([]string{}, profile.Schema...), application.Schema...)
	if err := b.Postgres.ApplySchema(ctx, schema...); err != nil {
		b.Close()
		return nil, err
	}

	err = RetryWithBackoff(func() error {
		var err error
		b.Redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return b.Redis.Ping(ctx)
	}, 10, 2*time.Second, log, "Redis connection")
	if err != nil {
		b.Close()
		return nil, err
	}
	log.Info("Redis connected", nil)

	err = RetryWithBackoff(func() error {
		var err error
		b.Elasticsearch, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		return b.Elasticsearch.Ping()
	}, 10, 3*time.Second, log, "Elasticsearch connection")
	if err != nil {
		b.Close()
		return nil, err
	}
	log.Info("Elasticsearch connected", nil)

	return b, nil
}

func (b *Backends) Close() {
	if b.Redis != nil {
		_ = b.Redis.Close()
	}
	if b.Postgres != nil {
		_ = b.Postgres.Close()
	}
}
