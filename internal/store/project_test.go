package store

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"musubi/internal/models"
)

func TestProjectCRUD(t *testing.T) {
	db := testDB(t)
	s := NewProjectStore(db)
	ctx := context.Background()

	first := &models.Project{Title: "First", Description: "d1", Link: "#"}
	second := &models.Project{Title: "Second", Description: "d2", Link: "#"}
	if err := s.Create(ctx, first); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.Create(ctx, second); err != nil {
		t.Fatalf("create: %v", err)
	}

	list, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("got %d projects, want 2", len(list))
	}
	// Newest first.
	if list[0].Title != "Second" {
		t.Errorf("list[0] = %q, want %q", list[0].Title, "Second")
	}

	updated, err := s.Update(ctx, first.ID, &models.Project{
		Title: "First v2", Description: "d1", Tags: []string{"go"}, Link: "https://example.com", Image: "img",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "First v2" || len(updated.Tags) != 1 {
		t.Errorf("updated = %+v, want new fields applied", updated)
	}
	if updated.CreatedAt.IsZero() {
		t.Error("update must preserve the creation timestamp")
	}

	if err := s.Delete(ctx, second.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	n, err := s.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Errorf("count = %d, want 1", n)
	}
}

func TestProjectUnknownID(t *testing.T) {
	db := testDB(t)
	s := NewProjectStore(db)
	ctx := context.Background()

	if _, err := s.Update(ctx, primitive.NewObjectID(), &models.Project{Title: "x"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("update: got %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, primitive.NewObjectID()); !errors.Is(err, ErrNotFound) {
		t.Errorf("delete: got %v, want ErrNotFound", err)
	}
}
