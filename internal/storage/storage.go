package storage

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/iamb0ttle/Trend-Korea-2026N/internal/config"
	"github.com/iamb0ttle/Trend-Korea-2026N/internal/types"
)

// NewsStore persists raw crawled news rows.
type NewsStore interface {
	// Store persists a batch of items.
	Store(items []types.NewsItem) error

	// Close flushes pending writes and releases resources.
	Close() error

	// Name returns the storage backend identifier.
	Name() string
}

// NewNewsStore creates the configured backend for one category's rows.
func NewNewsStore(cfg config.StorageConfig, category types.Category, logger *slog.Logger) (NewsStore, error) {
	switch cfg.Type {
	case "csv":
		path := filepath.Join(cfg.DataDir, fmt.Sprintf("%s_news.csv", category))
		return NewCSVNewsStore(path, logger)
	case "mongodb":
		return NewMongoNewsStore(cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection, logger)
	default:
		return nil, fmt.Errorf("unknown storage type: %q", cfg.Type)
	}
}
