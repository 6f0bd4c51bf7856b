// Package store implements the MongoDB persistence layer. Each store wraps
// one collection; correctness under concurrent writers rests on single
// atomic document operations, never read-then-write sequences.
package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"musubi/internal/database"
	"musubi/internal/models"
)

// ErrNotFound is returned when an operation targets a document that does
// not exist.
var ErrNotFound = errors.New("not found")

// SiteConfigStore manages the singleton site configuration document.
type SiteConfigStore struct {
	col *mongo.Collection
}

// NewSiteConfigStore returns a SiteConfigStore backed by the given database.
func NewSiteConfigStore(db *mongo.Database) *SiteConfigStore {
	return &SiteConfigStore{col: db.Collection(database.ColSiteConfig)}
}

// Get returns the site configuration, creating it with defaults on first
// read. At most one document ever exists.
func (s *SiteConfigStore) Get(ctx context.Context) (*models.SiteConfig, error) {
	var cfg models.SiteConfig
	err := s.col.FindOne(ctx, bson.M{}).Decode(&cfg)
	if err == nil {
		return &cfg, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("site config get: %w", err)
	}

	// Lazy creation: upsert-replace on the empty filter, so two concurrent
	// first reads still end up with a single document.
	def := models.DefaultSiteConfig()
	if err := s.Replace(ctx, def); err != nil {
		return nil, err
	}
	return def, nil
}

// Replace swaps the entire configuration document for the given one,
// creating it if absent. Writes are wholesale, there is no partial update.
func (s *SiteConfigStore) Replace(ctx context.Context, cfg *models.SiteConfig) error {
	// Never carry a stale _id into the replacement body.
	cfg.ID = primitive.NilObjectID

	opts := options.FindOneAndReplace().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var stored models.SiteConfig
	err := s.col.FindOneAndReplace(ctx, bson.M{}, cfg, opts).Decode(&stored)
	if err != nil {
		return fmt.Errorf("site config replace: %w", err)
	}

	*cfg = stored
	return nil
}
