package domain

import "time"

// Venue is a dining establishment catalogued by users.
// AverageRating is derived from reviews and is never written directly
// by callers; nil means the venue has no reviews yet.
type Venue struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Address       string    `json:"address"`
	PriceTier     int       `json:"price_tier"`
	AverageRating *float64  `json:"average_rating"`
	OwnerID       string    `json:"owner_id"`
	Photos        []string  `json:"photos"`
	Reviews       []Review  `json:"reviews,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

const (
	MinPriceTier = 1
	MaxPriceTier = 3
)
