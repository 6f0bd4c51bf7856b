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

// MessageStore manages contact-form submissions. It also answers the rate
// limiter's recent-submission lookups, since the inbox itself is the rate
// limiting state.
type MessageStore struct {
	col *mongo.Collection
}

// NewMessageStore returns a MessageStore backed by the given database.
func NewMessageStore(db *mongo.Database) *MessageStore {
	return &MessageStore{col: db.Collection(database.ColMessages)}
}

// List returns all messages, newest first.
func (s *MessageStore) List(ctx context.Context) ([]models.ContactMessage, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("message list: %w", err)
	}
	defer cur.Close(ctx)

	messages := []models.ContactMessage{}
	if err := cur.All(ctx, &messages); err != nil {
		return nil, fmt.Errorf("message list decode: %w", err)
	}
	return messages, nil
}

// Create inserts a new submission. IsRead always starts false; only an
// authenticated caller ever flips it.
func (s *MessageStore) Create(ctx context.Context, m *models.ContactMessage) error {
	m.ID = primitive.NewObjectID()
	m.IsRead = false
	m.CreatedAt = time.Now()

	if _, err := s.col.InsertOne(ctx, m); err != nil {
		return fmt.Errorf("message create: %w", err)
	}
	return nil
}

// SetRead atomically updates the read flag and returns the updated message.
// Returns ErrNotFound if no message has the given id.
func (s *MessageStore) SetRead(ctx context.Context, id primitive.ObjectID, read bool) (*models.ContactMessage, error) {
	update := bson.M{"$set": bson.M{"isRead": read}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.ContactMessage
	err := s.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("message set read: %w", err)
	}
	return &updated, nil
}

// Delete removes a message. Returns ErrNotFound if no message has the
// given id.
func (s *MessageStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("message delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// CountUnread returns the number of unread messages.
func (s *MessageStore) CountUnread(ctx context.Context) (int64, error) {
	n, err := s.col.CountDocuments(ctx, bson.M{"isRead": false})
	if err != nil {
		return 0, fmt.Errorf("message count unread: %w", err)
	}
	return n, nil
}

// Count returns the total number of messages.
func (s *MessageStore) Count(ctx context.Context) (int64, error) {
	n, err := s.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("message count: %w", err)
	}
	return n, nil
}

// HasRecentSubmission reports whether any message created at or after the
// given instant matches the IP or the visitor ID. An empty visitor ID is
// never matched; many clients simply do not send one.
func (s *MessageStore) HasRecentSubmission(ctx context.Context, ip, visitorID string, since time.Time) (bool, error) {
	tags := []bson.M{{"ip": ip}}
	if visitorID != "" {
		tags = append(tags, bson.M{"visitorId": visitorID})
	}

	filter := bson.M{
		"createdAt": bson.M{"$gte": since},
		"$or":       tags,
	}

	err := s.col.FindOne(ctx, filter).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("message recent lookup: %w", err)
	}
	return true, nil
}
