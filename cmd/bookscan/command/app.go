package command

import (
	"log/slog"
	"os"

	"bookscan/cmd/bookscan/credentials"
	"bookscan/internal/catalog"
	"bookscan/internal/config"
	"bookscan/internal/entry"
	"bookscan/internal/logging"
	"bookscan/internal/records"
	"bookscan/internal/resolver"

	"github.com/redis/go-redis/v9"
)

// loadConfig reads the environment and applies flag overrides.
func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadConfig(envFile)
	if err != nil {
		return nil, nil, err
	}
	if storePath != "" {
		cfg.BooksCSV = storePath
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if decoderName != "" {
		cfg.Decoder = decoderName
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	return cfg, logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat), nil
}

// services holds everything that talks to the catalog or the store.
type services struct {
	cfg      *config.Config
	logger   *slog.Logger
	store    *records.Store
	catalog  catalog.Lookuper
	resolver *resolver.Resolver
	entries  *entry.Service
	redis    *redis.Client
}

func newServices(cfg *config.Config, logger *slog.Logger) *services {
	apiKey := cfg.CatalogAPIKey
	if apiKey == "" {
		if key, err := credentials.GetAPIKey(); err == nil {
			apiKey = key
		}
	}

	client := catalog.NewClient(catalog.Options{
		ISBNURL:     cfg.CatalogISBNURL,
		CategoryURL: cfg.CatalogCategoryURL,
		APIKey:      apiKey,
		Timeout:     cfg.CatalogTimeout,
		RateLimit:   cfg.CatalogRateLimit,
		MaxRetries:  cfg.CatalogMaxRetries,
	}, logger)

	var rdb *redis.Client
	if cfg.CacheEnabled() {
		c, err := catalog.NewRedisClient(cfg.RedisURL, cfg.RedisPassword)
		if err != nil {
			logger.Warn("redis unavailable, catalog lookups will not be cached", "error", err)
		} else {
			rdb = c
		}
	}

	lookup := catalog.NewCachedLookuper(client, rdb, cfg.CacheTTL, logger)
	store := records.NewStore(cfg.BooksCSV)

	return &services{
		cfg:      cfg,
		logger:   logger,
		store:    store,
		catalog:  lookup,
		resolver: resolver.New(lookup, store, cfg.RecommendationLimit, logger),
		entries:  entry.NewService(lookup, store, logger),
		redis:    rdb,
	}
}

func (s *services) Close() {
	if s.redis != nil {
		s.redis.Close()
	}
}
