package domain

import "time"

// Photo links an uploaded blob to exactly one venue or one review.
// The schema keeps both ids nullable; the photo service enforces the
// exactly-one-of rule at attach time.
type Photo struct {
	ID         string    `json:"id"`
	VenueID    *string   `json:"venue_id,omitempty"`
	ReviewID   *string   `json:"review_id,omitempty"`
	UploaderID string    `json:"uploader_id"`
	ObjectKey  string    `json:"-"`
	URL        string    `json:"url"`
	CreatedAt  time.Time `json:"created_at"`
}
