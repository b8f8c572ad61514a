package review

import (
	"context"
	"log"
	"strings"

	"tastebook/internal/domain"
	"tastebook/internal/pkg/apperr"
	"tastebook/internal/repository"
	"tastebook/internal/viewcache"
)

// RatingStore is the venue slice the review module needs: persisting
// the recomputed average.
type RatingStore interface {
	SetAverageRating(ctx context.Context, venueID string, avg *float64) error
}

type Service struct {
	reviews repository.ReviewRepository
	venues  RatingStore
	views   *viewcache.Registry
}

func NewService(reviews repository.ReviewRepository, venues RatingStore, views *viewcache.Registry) *Service {
	return &Service{reviews: reviews, venues: venues, views: views}
}

// Create validates first so nothing reaches the store on bad input,
// inserts the review, attaches dishes best-effort, then recomputes the
// venue's average rating.
func (s *Service) Create(ctx context.Context, authorID string, req CreateReviewRequest) (*domain.Review, error) {
	message := strings.TrimSpace(req.Message)
	if req.VenueID == "" {
		return nil, apperr.New(apperr.Validation, "review.create", "venue is required")
	}
	if authorID == "" {
		return nil, apperr.New(apperr.Validation, "review.create", "author is required")
	}
	if req.Rating < domain.MinRating || req.Rating > domain.MaxRating {
		return nil, apperr.Newf(apperr.Validation, "review.create", "rating must be between %d and %d", domain.MinRating, domain.MaxRating)
	}
	if message == "" {
		return nil, apperr.New(apperr.Validation, "review.create", "message is required")
	}
	dishes, err := dishesFromInput(req.Dishes)
	if err != nil {
		return nil, err
	}

	rv := &domain.Review{
		VenueID:  req.VenueID,
		AuthorID: authorID,
		Rating:   req.Rating,
		Message:  message,
	}
	if err := s.reviews.Create(ctx, rv); err != nil {
		return nil, apperr.FromDB("review.create", err)
	}

	// The review itself is durable at this point. Losing it over dish
	// metadata would be worse than an incomplete dish list, so dish
	// inserts don't roll it back.
	if err := s.reviews.InsertDishes(ctx, rv.ID, dishes); err != nil {
		log.Printf("review.create: dish insert for review %s failed: %v", rv.ID, err)
	} else {
		rv.Dishes = dishes
	}

	if err := s.recomputeAverage(ctx, rv.VenueID); err != nil {
		return nil, err
	}

	s.views.Invalidate(viewcache.ViewVenueDetail(rv.VenueID))
	return rv, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdateReviewRequest) (*domain.Review, error) {
	fields := map[string]any{}
	if req.Rating != nil {
		if *req.Rating < domain.MinRating || *req.Rating > domain.MaxRating {
			return nil, apperr.Newf(apperr.Validation, "review.update", "rating must be between %d and %d", domain.MinRating, domain.MaxRating)
		}
		fields["rating"] = *req.Rating
	}
	if req.Message != nil {
		message := strings.TrimSpace(*req.Message)
		if message == "" {
			return nil, apperr.New(apperr.Validation, "review.update", "message cannot be empty")
		}
		fields["message"] = message
	}
	dishes, err := dishesFromInput(req.Dishes)
	if err != nil {
		return nil, err
	}

	if len(fields) > 0 {
		if err := s.reviews.Update(ctx, id, fields); err != nil {
			return nil, apperr.FromDB("review.update", err)
		}
	}
	if err := s.reviews.UpsertDishes(ctx, id, dishes); err != nil {
		log.Printf("review.update: dish upsert for review %s failed: %v", id, err)
	}

	rv, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.FromDB("review.update", err)
	}

	// The venue may be unchanged but the rating can have moved.
	if err := s.recomputeAverage(ctx, rv.VenueID); err != nil {
		return nil, err
	}

	s.views.Invalidate(viewcache.ViewVenueDetail(rv.VenueID))
	return rv, nil
}

// Delete looks up the parent venue before removing the row; the id is
// needed for the recompute afterwards.
func (s *Service) Delete(ctx context.Context, id string) error {
	venueID, err := s.reviews.VenueIDOf(ctx, id)
	if err != nil {
		return apperr.FromDB("review.delete", err)
	}

	if err := s.reviews.Delete(ctx, id); err != nil {
		return apperr.FromDB("review.delete", err)
	}

	if err := s.recomputeAverage(ctx, venueID); err != nil {
		return err
	}

	s.views.Invalidate(viewcache.ViewVenueDetail(venueID))
	return nil
}

func (s *Service) ListByVenue(ctx context.Context, venueID string) ([]domain.Review, error) {
	if venueID == "" {
		return nil, apperr.New(apperr.Validation, "review.list", "venue is required")
	}
	reviews, err := s.reviews.ListByVenue(ctx, venueID)
	if err != nil {
		return nil, apperr.FromDB("review.list", err)
	}
	return reviews, nil
}

// recomputeAverage re-reads every current rating and writes the mean
// back, never patching incrementally. Re-running it is always safe and
// converges under concurrent review mutations. An empty set yields
// NULL: a venue with no reviews is unrated, not rated zero.
func (s *Service) recomputeAverage(ctx context.Context, venueID string) error {
	ratings, err := s.reviews.ListRatings(ctx, venueID)
	if err != nil {
		return apperr.FromDB("review.recompute_average", err)
	}

	var avg *float64
	if len(ratings) > 0 {
		sum := 0
		for _, r := range ratings {
			sum += r
		}
		mean := float64(sum) / float64(len(ratings))
		avg = &mean
	}

	if err := s.venues.SetAverageRating(ctx, venueID, avg); err != nil {
		return apperr.FromDB("review.recompute_average", err)
	}
	return nil
}

func dishesFromInput(inputs []DishInput) ([]domain.Dish, error) {
	dishes := make([]domain.Dish, 0, len(inputs))
	for _, in := range inputs {
		name := strings.TrimSpace(in.Name)
		if name == "" {
			return nil, apperr.New(apperr.Validation, "review.dishes", "dish name is required")
		}
		if in.Price != nil && *in.Price < 0 {
			return nil, apperr.New(apperr.Validation, "review.dishes", "dish price cannot be negative")
		}
		dishes = append(dishes, domain.Dish{ID: in.ID, Name: name, Price: in.Price})
	}
	return dishes, nil
}
