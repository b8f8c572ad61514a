package venue

import (
	"context"
	"log"
	"strings"

	"tastebook/internal/blobstore"
	"tastebook/internal/domain"
	"tastebook/internal/pkg/apperr"
	"tastebook/internal/repository"
	"tastebook/internal/viewcache"
)

type Service struct {
	venues repository.VenueRepository
	photos repository.PhotoRepository
	blobs  blobstore.Store
	views  *viewcache.Registry
}

func NewService(
	venues repository.VenueRepository,
	photos repository.PhotoRepository,
	blobs blobstore.Store,
	views *viewcache.Registry,
) *Service {
	return &Service{venues: venues, photos: photos, blobs: blobs, views: views}
}

// List returns every venue, newest first. The venue list is the app's
// landing view, so it fails open: on a store error it returns an empty
// list and logs instead of surfacing the failure.
func (s *Service) List(ctx context.Context) []domain.Venue {
	venues, err := s.venues.List(ctx)
	if err != nil {
		log.Printf("venue.list: store error, serving empty list: %v", err)
		return []domain.Venue{}
	}
	return venues
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Venue, error) {
	v, err := s.venues.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.FromDB("venue.get", err)
	}
	return v, nil
}

func (s *Service) Create(ctx context.Context, ownerID string, req CreateVenueRequest) (*domain.Venue, error) {
	name := strings.TrimSpace(req.Name)
	address := strings.TrimSpace(req.Address)
	if name == "" {
		return nil, apperr.New(apperr.Validation, "venue.create", "name is required")
	}
	if address == "" {
		return nil, apperr.New(apperr.Validation, "venue.create", "address is required")
	}
	if req.PriceTier < domain.MinPriceTier || req.PriceTier > domain.MaxPriceTier {
		return nil, apperr.Newf(apperr.Validation, "venue.create", "price tier must be between %d and %d", domain.MinPriceTier, domain.MaxPriceTier)
	}
	if ownerID == "" {
		return nil, apperr.New(apperr.Validation, "venue.create", "owner is required")
	}

	v := &domain.Venue{
		Name:      name,
		Address:   address,
		PriceTier: req.PriceTier,
		OwnerID:   ownerID,
	}
	if err := s.venues.Create(ctx, v); err != nil {
		return nil, apperr.FromDB("venue.create", err)
	}

	s.views.Invalidate(viewcache.ViewVenueList)
	return v, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdateVenueRequest) error {
	fields := map[string]any{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return apperr.New(apperr.Validation, "venue.update", "name cannot be empty")
		}
		fields["name"] = name
	}
	if req.Address != nil {
		address := strings.TrimSpace(*req.Address)
		if address == "" {
			return apperr.New(apperr.Validation, "venue.update", "address cannot be empty")
		}
		fields["address"] = address
	}
	if req.PriceTier != nil {
		if *req.PriceTier < domain.MinPriceTier || *req.PriceTier > domain.MaxPriceTier {
			return apperr.Newf(apperr.Validation, "venue.update", "price tier must be between %d and %d", domain.MinPriceTier, domain.MaxPriceTier)
		}
		fields["price_tier"] = *req.PriceTier
	}
	if len(fields) == 0 {
		return apperr.New(apperr.Validation, "venue.update", "no fields to update")
	}

	if err := s.venues.Update(ctx, id, fields); err != nil {
		return apperr.FromDB("venue.update", err)
	}

	s.views.Invalidate(viewcache.ViewVenueList, viewcache.ViewVenueDetail(id))
	return nil
}

// Delete removes the venue and everything attached to it. It is
// idempotent: deleting an id that no longer exists already matches the
// intended end state and succeeds.
func (s *Service) Delete(ctx context.Context, id string) error {
	keys, err := s.photos.ListKeysForVenue(ctx, id)
	if err != nil {
		log.Printf("venue.delete: listing photo keys for %s failed, blobs may be orphaned: %v", id, err)
		keys = nil
	}

	if err := s.venues.Delete(ctx, id); err != nil {
		return apperr.FromDB("venue.delete", err)
	}

	// Metadata rows are gone; blob removal is best-effort cleanup.
	for _, key := range keys {
		if err := s.blobs.Remove(key); err != nil {
			log.Printf("venue.delete: removing blob %s failed: %v", key, err)
		}
	}

	s.views.Invalidate(viewcache.ViewVenueList, viewcache.ViewVenueDetail(id))
	return nil
}
