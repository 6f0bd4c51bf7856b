package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DailyAnalytics holds the visit counters for one calendar day. The Date
// field is truncated to UTC midnight and carries a unique index, so
// concurrent beacon upserts always land on the same document.
type DailyAnalytics struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Date           time.Time          `bson:"date" json:"date"`
	PageViews      int                `bson:"pageViews" json:"pageViews"`
	ProjectClicks  int                `bson:"projectClicks" json:"projectClicks"`
	UniqueVisitors int                `bson:"uniqueVisitors" json:"uniqueVisitors"`
}

// DayOf truncates a time to its UTC calendar day, the key used for
// DailyAnalytics documents.
func DayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
