package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"musubi/internal/database"
	"musubi/internal/models"
)

// AnalyticsStore manages the per-day visit counter documents.
type AnalyticsStore struct {
	col *mongo.Collection
}

// NewAnalyticsStore returns an AnalyticsStore backed by the given database.
func NewAnalyticsStore(db *mongo.Database) *AnalyticsStore {
	return &AnalyticsStore{col: db.Collection(database.ColAnalytics)}
}

// IncrementPageViews bumps the page-view counter on the given day's document.
func (s *AnalyticsStore) IncrementPageViews(ctx context.Context, day time.Time) error {
	return s.increment(ctx, day, "pageViews")
}

// IncrementProjectClicks bumps the project-click counter on the given day's
// document.
func (s *AnalyticsStore) IncrementProjectClicks(ctx context.Context, day time.Time) error {
	return s.increment(ctx, day, "projectClicks")
}

// increment is an atomic upsert-increment: find-or-create the day document
// and bump one counter in a single operation, so concurrent beacons never
// lose updates. The unique index on date keeps the day key one-per-day.
func (s *AnalyticsStore) increment(ctx context.Context, day time.Time, field string) error {
	filter := bson.M{"date": models.DayOf(day)}
	update := bson.M{"$inc": bson.M{field: 1}}

	_, err := s.col.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("analytics increment %s: %w", field, err)
	}
	return nil
}

// Range returns the daily documents with a date at or after from, oldest
// first. Days with no recorded beacons have no document.
func (s *AnalyticsStore) Range(ctx context.Context, from time.Time) ([]models.DailyAnalytics, error) {
	filter := bson.M{"date": bson.M{"$gte": models.DayOf(from)}}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})

	cur, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("analytics range: %w", err)
	}
	defer cur.Close(ctx)

	days := []models.DailyAnalytics{}
	if err := cur.All(ctx, &days); err != nil {
		return nil, fmt.Errorf("analytics range decode: %w", err)
	}
	return days, nil
}
