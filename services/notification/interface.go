package notification

import "time"

// ReviewNotification is the payload mailed to the site admin when a
// review comes in.
type ReviewNotification struct {
	Title      string
	Rating     int
	Comment    string
	Reviewer   string
	Email      string
	TargetKind string // "place", "festival", or "" for unbound public reviews
	TargetName string
	IsPublic   bool
	CreatedAt  time.Time
}

// Mailer delivers admin notifications. Callers fire it and forget it;
// delivery failures are logged, never propagated into the request that
// triggered them.
type Mailer interface {
	SendReviewNotification(n ReviewNotification) error
}
