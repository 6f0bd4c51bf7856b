// Package database handles MongoDB connection management and index
// bootstrapping. It provides a Connect function that returns a ready-to-use
// database handle and an EnsureIndexes function run at startup.
package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names used across the store layer.
const (
	ColSiteConfig = "siteconfigs"
	ColProjects   = "projects"
	ColMessages   = "messages"
	ColAnalytics  = "analytics"
)

// Connect opens a MongoDB client using the provided URI and verifies the
// connection with a ping before returning.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	slog.Info("mongodb connected")
	return client, nil
}

// EnsureIndexes creates the indexes the application relies on. The unique
// index on the analytics date is load-bearing: it guarantees one document
// per calendar day even under concurrent beacon upserts. Creating an index
// that already exists is a no-op, so this is safe to run on every start.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := db.Collection(ColAnalytics).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "date", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("analytics date index: %w", err)
	}

	// Listing is newest-first; the rate limiter looks up recent messages
	// by tag inside a time window.
	_, err = db.Collection(ColMessages).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "ip", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "visitorId", Value: 1}, {Key: "createdAt", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("message indexes: %w", err)
	}

	_, err = db.Collection(ColProjects).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("project index: %w", err)
	}

	slog.Info("database indexes ensured")
	return nil
}
