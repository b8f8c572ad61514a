package domain

import "time"

// Favorite is a user's bookmark of a venue. At most one row exists per
// (user, venue) pair; duplicate adds are a no-op.
type Favorite struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	VenueID   string    `json:"venue_id"`
	CreatedAt time.Time `json:"created_at"`
}
