package review

type DishInput struct {
	ID    string   `json:"id,omitempty"`
	Name  string   `json:"name" validate:"required"`
	Price *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
}

type CreateReviewRequest struct {
	VenueID string      `json:"venue_id" validate:"required"`
	Rating  int         `json:"rating" validate:"required,gte=1,lte=5"`
	Message string      `json:"message" validate:"required"`
	Dishes  []DishInput `json:"dishes,omitempty"`
}

type UpdateReviewRequest struct {
	Rating  *int        `json:"rating,omitempty"`
	Message *string     `json:"message,omitempty"`
	Dishes  []DishInput `json:"dishes,omitempty"`
}
