package favorite

import (
	"context"
	"log"

	"tastebook/internal/domain"
	"tastebook/internal/pkg/apperr"
	"tastebook/internal/repository"
	"tastebook/internal/viewcache"
)

type Service struct {
	favorites repository.FavoriteRepository
	views     *viewcache.Registry
}

func NewService(favorites repository.FavoriteRepository, views *viewcache.Registry) *Service {
	return &Service{favorites: favorites, views: views}
}

// Add is "insert or confirm exists": a pairing that is already present
// reports success without a duplicate row. The existence check handles
// the common case; a concurrent insert racing past it surfaces as a
// uniqueness conflict, which is absorbed the same way.
func (s *Service) Add(ctx context.Context, userID, venueID string) error {
	if userID == "" || venueID == "" {
		return apperr.New(apperr.Validation, "favorite.add", "user and venue are required")
	}

	exists, err := s.favorites.Exists(ctx, userID, venueID)
	if err != nil {
		return apperr.FromDB("favorite.add", err)
	}
	if !exists {
		f := &domain.Favorite{UserID: userID, VenueID: venueID}
		if err := s.favorites.Add(ctx, f); err != nil {
			mapped := apperr.FromDB("favorite.add", err)
			if mapped.Kind != apperr.Conflict {
				return mapped
			}
			log.Printf("favorite.add: duplicate pairing (%s, %s), treating as success", userID, venueID)
		}
	}

	s.views.Invalidate(viewcache.ViewFavorites(userID), viewcache.ViewVenueDetail(venueID))
	return nil
}

// Remove is idempotent; removing an absent pairing succeeds.
func (s *Service) Remove(ctx context.Context, userID, venueID string) error {
	if userID == "" || venueID == "" {
		return apperr.New(apperr.Validation, "favorite.remove", "user and venue are required")
	}

	if err := s.favorites.Remove(ctx, userID, venueID); err != nil {
		return apperr.FromDB("favorite.remove", err)
	}

	s.views.Invalidate(viewcache.ViewFavorites(userID), viewcache.ViewVenueDetail(venueID))
	return nil
}

// IsFavorite only drives a toggle affordance, so it fails open: a
// store error reads as "not favorited" rather than an error page.
func (s *Service) IsFavorite(ctx context.Context, userID, venueID string) bool {
	exists, err := s.favorites.Exists(ctx, userID, venueID)
	if err != nil {
		log.Printf("favorite.check: store error for (%s, %s), defaulting to false: %v", userID, venueID, err)
		return false
	}
	return exists
}

func (s *Service) List(ctx context.Context, userID string) ([]domain.Venue, error) {
	if userID == "" {
		return nil, apperr.New(apperr.Validation, "favorite.list", "user is required")
	}
	venues, err := s.favorites.ListVenuesByUser(ctx, userID)
	if err != nil {
		return nil, apperr.FromDB("favorite.list", err)
	}
	return venues, nil
}
