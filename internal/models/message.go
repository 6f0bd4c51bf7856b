package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContactMessage is a contact-form submission. Written publicly (subject to
// rate limiting); read, toggled, and deleted only by the authenticated owner.
// IP and VisitorID are best-effort tags recorded for the rate limiter.
type ContactMessage struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Message   string             `bson:"message" json:"message"`
	IsRead    bool               `bson:"isRead" json:"isRead"`
	IP        string             `bson:"ip,omitempty" json:"ip,omitempty"`
	VisitorID string             `bson:"visitorId,omitempty" json:"visitorId,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
