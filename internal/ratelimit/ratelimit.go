// Package ratelimit throttles public contact-form submissions. A submission
// is tagged with the client's network address and a client-generated visitor
// ID; a new submission is rejected when one was accepted under *either* tag
// inside the trailing window. Matching on either tag closes both the
// "same IP, spoofed visitor ID" and the "same visitor behind rotating IPs"
// evasion paths, at the cost of occasional false positives behind shared
// NATs.
package ratelimit

import (
	"context"
	"time"
)

// DefaultWindow is how long a client must wait between accepted submissions.
const DefaultWindow = time.Hour

// Limiter decides whether a submission tagged with an IP and a visitor ID
// may proceed. Implementations may or may not record the attempt themselves;
// the inbox-backed limiter relies on the subsequently stored message as its
// record, while the Redis-backed one records on the spot.
type Limiter interface {
	Allow(ctx context.Context, ip, visitorID string) (bool, error)
}

// RecentLookup is the slice of the message inbox the inbox-backed limiter
// needs: whether any accepted submission matching either tag exists since
// the given instant.
type RecentLookup interface {
	HasRecentSubmission(ctx context.Context, ip, visitorID string, since time.Time) (bool, error)
}

// InboxLimiter derives its state from the message inbox itself: the most
// recent accepted message matching either tag is the throttle record, so no
// separate counter store is needed. The check and the later insert are not
// atomic: two submissions landing in the same instant can both pass, which
// is an accepted race at this volume.
type InboxLimiter struct {
	inbox  RecentLookup
	window time.Duration
}

// NewInboxLimiter returns a limiter backed by the given inbox lookup.
func NewInboxLimiter(inbox RecentLookup, window time.Duration) *InboxLimiter {
	return &InboxLimiter{inbox: inbox, window: window}
}

// Allow reports whether no matching submission was accepted inside the window.
func (l *InboxLimiter) Allow(ctx context.Context, ip, visitorID string) (bool, error) {
	found, err := l.inbox.HasRecentSubmission(ctx, ip, visitorID, time.Now().Add(-l.window))
	if err != nil {
		return false, err
	}
	return !found, nil
}
