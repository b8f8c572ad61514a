package domain

import "time"

type Review struct {
	ID        string          `json:"id"`
	VenueID   string          `json:"venue_id"`
	AuthorID  string          `json:"author_id"`
	Rating    int             `json:"rating"`
	Message   string          `json:"message"`
	Dishes    []Dish          `json:"dishes,omitempty"`
	Photos    []string        `json:"photos,omitempty"`
	Author    *ProfileSummary `json:"author,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Dish is an itemized dish attached to a review. Price is optional.
type Dish struct {
	ID       string   `json:"id"`
	ReviewID string   `json:"review_id"`
	Name     string   `json:"name"`
	Price    *float64 `json:"price,omitempty"`
}

const (
	MinRating = 1
	MaxRating = 5
)
