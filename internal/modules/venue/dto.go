package venue

type CreateVenueRequest struct {
	Name      string `json:"name" validate:"required"`
	Address   string `json:"address" validate:"required"`
	PriceTier int    `json:"price_tier" validate:"required,gte=1,lte=3"`
}

// UpdateVenueRequest carries the partial fields an owner may change.
// Average rating is derived and never accepted here.
type UpdateVenueRequest struct {
	Name      *string `json:"name,omitempty"`
	Address   *string `json:"address,omitempty"`
	PriceTier *int    `json:"price_tier,omitempty"`
}
