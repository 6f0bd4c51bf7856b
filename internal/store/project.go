package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"musubi/internal/database"
	"musubi/internal/models"
)

// ProjectStore manages portfolio project documents.
type ProjectStore struct {
	col *mongo.Collection
}

// NewProjectStore returns a ProjectStore backed by the given database.
func NewProjectStore(db *mongo.Database) *ProjectStore {
	return &ProjectStore{col: db.Collection(database.ColProjects)}
}

// List returns all projects, newest first.
func (s *ProjectStore) List(ctx context.Context) ([]models.Project, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("project list: %w", err)
	}
	defer cur.Close(ctx)

	projects := []models.Project{}
	if err := cur.All(ctx, &projects); err != nil {
		return nil, fmt.Errorf("project list decode: %w", err)
	}
	return projects, nil
}

// Create inserts a new project, stamping the creation time.
func (s *ProjectStore) Create(ctx context.Context, p *models.Project) error {
	p.ID = primitive.NewObjectID()
	p.CreatedAt = time.Now()
	if p.Tags == nil {
		p.Tags = []string{}
	}

	if _, err := s.col.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("project create: %w", err)
	}
	return nil
}

// Update replaces a project's editable fields and returns the updated
// document. The creation timestamp is preserved. Returns ErrNotFound if no
// project has the given id.
func (s *ProjectStore) Update(ctx context.Context, id primitive.ObjectID, p *models.Project) (*models.Project, error) {
	update := bson.M{"$set": bson.M{
		"title":       p.Title,
		"description": p.Description,
		"tags":        p.Tags,
		"link":        p.Link,
		"image":       p.Image,
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Project
	err := s.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("project update: %w", err)
	}
	return &updated, nil
}

// Delete removes a project. Returns ErrNotFound if no project has the
// given id.
func (s *ProjectStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("project delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the total number of projects.
func (s *ProjectStore) Count(ctx context.Context) (int64, error) {
	n, err := s.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("project count: %w", err)
	}
	return n, nil
}
