package main

import (
	"log/slog"

	"github.com/aretw0/picbot/internal/adapters/file"
	"github.com/aretw0/picbot/internal/adapters/memory"
	"github.com/aretw0/picbot/internal/adapters/nlu"
	redisadapter "github.com/aretw0/picbot/internal/adapters/redis"
	"github.com/aretw0/picbot/internal/adapters/search"
	"github.com/aretw0/picbot/internal/config"
	"github.com/aretw0/picbot/internal/logging"
	"github.com/aretw0/picbot/pkg/persistence/middleware"
	"github.com/aretw0/picbot/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path)
}

func newLogger(cfg *config.Config) *slog.Logger {
	return logging.New(logging.ParseLevel(cfg.Log.Level))
}

// buildStore wires the configured store backend, wrapped in the configured
// persistence middleware. The returned cleanup is safe to call
// unconditionally.
func buildStore(cfg *config.Config) (ports.StateStore, ports.DistributedLocker, func(), error) {
	var (
		store   ports.StateStore
		locker  ports.DistributedLocker
		cleanup = func() {}
	)

	switch cfg.Store.Backend {
	case config.StoreFile:
		store = file.New(cfg.Store.Path)

	case config.StoreRedis:
		client := backend.NewClient(&backend.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		redisStore := redisadapter.NewFromClient(client)
		if cfg.Redis.Lock {
			locker = redisadapter.NewLocker(client, "picbot:")
		}
		store = redisStore
		cleanup = func() { _ = redisStore.Close() }

	default:
		store = memory.NewStore()
	}

	mws, err := buildStoreMiddleware(cfg)
	if err != nil {
		cleanup()
		return nil, nil, func() {}, err
	}
	return middleware.Wrap(store, mws...), locker, cleanup, nil
}

// buildStoreMiddleware assembles the persistence middleware chain: PII
// masking first, so the masked text is what gets encrypted.
func buildStoreMiddleware(cfg *config.Config) ([]middleware.Middleware, error) {
	var mws []middleware.Middleware

	if len(cfg.Store.PIIPatterns) > 0 {
		mws = append(mws, middleware.NewPIIMiddleware(cfg.Store.PIIPatterns))
	}

	if cfg.Store.EncryptionKey != "" {
		active, err := cfg.Store.ActiveEncryptionKey()
		if err != nil {
			return nil, err
		}
		fallbacks, err := cfg.Store.FallbackEncryptionKeys()
		if err != nil {
			return nil, err
		}
		mws = append(mws, middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
			ActiveKey:    active,
			FallbackKeys: fallbacks,
		}))
	}

	return mws, nil
}

// buildClassifier returns nil when no endpoint is configured; the bot then
// degrades classification to the confused-response path.
func buildClassifier(cfg *config.Config) ports.Classifier {
	if cfg.NLU.Endpoint == "" {
		return nil
	}
	return nlu.New(cfg.NLU.Endpoint, cfg.NLU.Key)
}

// buildSearcher returns nil when no endpoint is configured.
func buildSearcher(cfg *config.Config) ports.Searcher {
	if cfg.Search.Endpoint == "" {
		return nil
	}
	return search.New(cfg.Search.Endpoint, cfg.Search.Key)
}
