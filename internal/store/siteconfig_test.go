package store

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestSiteConfigLazyDefault(t *testing.T) {
	db := testDB(t)
	s := NewSiteConfigStore(db)
	ctx := context.Background()

	cfg, err := s.Get(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if cfg.Hero.Title == "" {
		t.Error("first read should return defaults, got empty hero title")
	}

	// Exactly one document after the lazy create.
	n, err := db.Collection("siteconfigs").CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Errorf("got %d config documents, want 1", n)
	}
}

func TestSiteConfigReplaceIsWholesale(t *testing.T) {
	db := testDB(t)
	s := NewSiteConfigStore(db)
	ctx := context.Background()

	first, err := s.Get(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	replacement := *first
	replacement.Hero.Title = "New Title"
	replacement.Contact.InfoEmail = "new@example.com"
	replacement.SEO.Keywords = "" // wholesale replace clears omitted copy

	if err := s.Replace(ctx, &replacement); err != nil {
		t.Fatalf("replace: %v", err)
	}

	got, err := s.Get(ctx)
	if err != nil {
		t.Fatalf("get after replace: %v", err)
	}
	if got.Hero.Title != "New Title" {
		t.Errorf("hero title = %q, want %q", got.Hero.Title, "New Title")
	}
	if got.Contact.InfoEmail != "new@example.com" {
		t.Errorf("info email = %q, want %q", got.Contact.InfoEmail, "new@example.com")
	}
	if got.SEO.Keywords != "" {
		t.Errorf("keywords = %q, want empty after wholesale replace", got.SEO.Keywords)
	}

	// Still a singleton.
	n, err := db.Collection("siteconfigs").CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Errorf("got %d config documents, want 1", n)
	}
}
