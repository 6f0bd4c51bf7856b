package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"musubi/internal/models"
)

// Seed inserts development sample data. It is a no-op for any collection
// that already has documents, so it is safe to run on every dev start.
func Seed(ctx context.Context, db *mongo.Database) error {
	if err := seedSiteConfig(ctx, db); err != nil {
		return err
	}
	if err := seedProjects(ctx, db); err != nil {
		return err
	}
	if err := seedMessages(ctx, db); err != nil {
		return err
	}
	return nil
}

func seedSiteConfig(ctx context.Context, db *mongo.Database) error {
	col := db.Collection(ColSiteConfig)
	n, err := col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("seed site config count: %w", err)
	}
	if n > 0 {
		return nil
	}

	if _, err := col.InsertOne(ctx, models.DefaultSiteConfig()); err != nil {
		return fmt.Errorf("seed site config: %w", err)
	}
	slog.Info("seeded site config")
	return nil
}

func seedProjects(ctx context.Context, db *mongo.Database) error {
	col := db.Collection(ColProjects)
	n, err := col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("seed projects count: %w", err)
	}
	if n > 0 {
		return nil
	}

	now := time.Now()
	projects := []any{
		models.Project{
			Title:       "Twilight Weather",
			Description: "An atmospheric weather app whose interface shifts with the hour, switching to a dedicated palette at dusk.",
			Tags:        []string{"React", "OpenWeather", "Tailwind"},
			Link:        "#",
			Image:       "https://images.unsplash.com/photo-1534088568595-a066f410bcda?q=80&w=1000&auto=format&fit=crop",
			CreatedAt:   now,
		},
		models.Project{
			Title:       "Itomori Archive",
			Description: "A decentralized, encrypted journal for memories that would otherwise be lost, built on IPFS.",
			Tags:        []string{"Next.js", "Solidity", "IPFS"},
			Link:        "#",
			Image:       "https://images.unsplash.com/photo-1550751827-4bd374c3f58b?q=80&w=1000&auto=format&fit=crop",
			CreatedAt:   now.Add(-time.Hour),
		},
		models.Project{
			Title:       "Orbit Tracker",
			Description: "Real-time 3D visualization of celestial bodies and their orbits, rendered with Three.js.",
			Tags:        []string{"Three.js", "WebGL", "Fiber"},
			Link:        "#",
			Image:       "https://images.unsplash.com/photo-1451187580459-43490279c0fa?q=80&w=1000&auto=format&fit=crop",
			CreatedAt:   now.Add(-2 * time.Hour),
		},
	}

	if _, err := col.InsertMany(ctx, projects); err != nil {
		return fmt.Errorf("seed projects: %w", err)
	}
	slog.Info("seeded projects", "count", len(projects))
	return nil
}

func seedMessages(ctx context.Context, db *mongo.Database) error {
	col := db.Collection(ColMessages)
	n, err := col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("seed messages count: %w", err)
	}
	if n > 0 {
		return nil
	}

	// Old timestamps so seeded rows never trip the rate limiter in dev.
	messages := []any{
		models.ContactMessage{
			Name:      "Alex Chen",
			Email:     "alex@example.com",
			Message:   "Hi, I would love to talk about your projects.",
			IsRead:    false,
			CreatedAt: time.Now().Add(-48 * time.Hour),
		},
		models.ContactMessage{
			Name:      "Dana Kaya",
			Email:     "dana@company.com",
			Message:   "Are you taking freelance work at the moment?",
			IsRead:    true,
			CreatedAt: time.Now().Add(-72 * time.Hour),
		},
	}

	if _, err := col.InsertMany(ctx, messages); err != nil {
		return fmt.Errorf("seed messages: %w", err)
	}
	slog.Info("seeded messages", "count", len(messages))
	return nil
}
