package storage

import (
	"context"
	"fmt"
	"path/filepath"

	"rbconsole/internal/platform/config"
	"rbconsole/internal/platform/postgres"
	"rbconsole/internal/platform/redis"
)

// Open builds the backend the profile selects and wraps it in a Store.
func Open(ctx context.Context, p *config.Profile, opts ...Option) (*Store, error) {
	backend, err := openBackend(ctx, p)
	if err != nil {
		return nil, err
	}
	return New(backend, opts...), nil
}

func openBackend(ctx context.Context, p *config.Profile) (Backend, error) {
	switch p.Storage {
	case config.StorageMemory:
		return NewMemoryBackend(), nil

	case config.StorageFile, "":
		path := p.StorageDSN
		if path == "" {
			dir, err := config.Dir()
			if err != nil {
				return nil, fmt.Errorf("resolve state dir: %w", err)
			}
			name := "state.json"
			if p.Namespace != "" && p.Namespace != "default" {
				name = "state-" + p.Namespace + ".json"
			}
			path = filepath.Join(dir, name)
		}
		return NewFileBackend(path), nil

	case config.StorageRedis:
		client, err := redis.New(ctx, config.DefaultRedisConfig(p.StorageDSN))
		if err != nil {
			return nil, err
		}
		if client == nil {
			return nil, fmt.Errorf("storage redis requires storage_dsn")
		}
		return NewRedisBackend(client.Client, p.Namespace, WithOwnedClient()), nil

	case config.StoragePostgres:
		db, err := postgres.Open(ctx, config.DefaultPostgresConfig(p.StorageDSN))
		if err != nil {
			return nil, err
		}
		if db == nil {
			return nil, fmt.Errorf("storage postgres requires storage_dsn")
		}
		b := NewPostgresBackend(db, p.Namespace, WithOwnedDB())
		if err := b.EnsureSchema(ctx); err != nil {
			_ = b.Close()
			return nil, err
		}
		return b, nil
	}
	return nil, fmt.Errorf("unknown storage %q", p.Storage)
}
