package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/iamb0ttle/Trend-Korea-2026N/internal/types"
)

// MongoNewsStore writes raw news rows to a MongoDB collection.
type MongoNewsStore struct {
	client     *mongo.Client
	collection *mongo.Collection
	count      int
	logger     *slog.Logger
}

// NewMongoNewsStore connects to MongoDB and pings it before returning.
func NewMongoNewsStore(uri, database, collection string, logger *slog.Logger) (*MongoNewsStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongodb connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongodb ping: %w", err)
	}

	return &MongoNewsStore{
		client:     client,
		collection: client.Database(database).Collection(collection),
		logger:     logger.With("component", "mongo_store"),
	}, nil
}

func (s *MongoNewsStore) Name() string { return "mongodb" }

func (s *MongoNewsStore) Store(items []types.NewsItem) error {
	if len(items) == 0 {
		return nil
	}

	docs := make([]any, len(items))
	for i, item := range items {
		doc := bson.M{
			"date":     item.Date.Format(csvDateLayout),
			"category": string(item.Category),
			"title":    item.Title,
		}
		if item.ArticleCount != nil {
			doc["article_count"] = *item.ArticleCount
		}
		docs[i] = doc
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := s.collection.InsertMany(ctx, docs); err != nil {
		return &types.StorageError{Backend: "mongodb", Err: err}
	}

	s.count += len(items)
	s.logger.Debug("rows stored in mongodb", "count", len(items), "total", s.count)
	return nil
}

func (s *MongoNewsStore) Close() error {
	s.logger.Info("mongodb store closing", "total_rows", s.count)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}
