package photo

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"tastebook/internal/blobstore"
	"tastebook/internal/domain"
	"tastebook/internal/pkg/apperr"
	"tastebook/internal/repository"
	"tastebook/internal/viewcache"
)

// AttachInput is one binary upload plus its owning entity. Exactly one
// of VenueID/ReviewID must be set; the schema tolerates both columns
// being nullable, so the rule is enforced here.
type AttachInput struct {
	Content  []byte
	Filename string
	VenueID  *string
	ReviewID *string
}

type Service struct {
	photos repository.PhotoRepository
	blobs  blobstore.Store
	views  *viewcache.Registry
}

func NewService(photos repository.PhotoRepository, blobs blobstore.Store, views *viewcache.Registry) *Service {
	return &Service{photos: photos, blobs: blobs, views: views}
}

// Attach uploads the blob first and inserts the metadata row after. A
// failed upload leaves no row; a failed insert after a successful
// upload leaves an orphaned blob, which is accepted and logged rather
// than compensated.
func (s *Service) Attach(ctx context.Context, uploaderID string, in AttachInput) (*domain.Photo, error) {
	if uploaderID == "" {
		return nil, apperr.New(apperr.Validation, "photo.attach", "uploader is required")
	}
	if err := validateOwner(in.VenueID, in.ReviewID); err != nil {
		return nil, err
	}

	key, err := blobstore.NewKey(uploaderID, in.Filename, in.Content)
	if err != nil {
		return nil, apperr.Wrap(apperr.Validation, "photo.attach", err)
	}

	url, err := s.blobs.Upload(key, in.Content)
	if err != nil {
		return nil, apperr.Wrap(apperr.Upload, "photo.attach", err)
	}

	p := &domain.Photo{
		VenueID:    in.VenueID,
		ReviewID:   in.ReviewID,
		UploaderID: uploaderID,
		ObjectKey:  key,
		URL:        url,
	}
	if err := s.photos.Create(ctx, p); err != nil {
		log.Printf("photo.attach: metadata insert after upload failed, blob %s orphaned: %v", key, err)
		return nil, apperr.FromDB("photo.attach", err)
	}

	s.invalidateOwner(in.VenueID, in.ReviewID)
	return p, nil
}

// AttachBatch runs the uploads of one form submission independently
// and joins the results. Partial failure surfaces as a single
// aggregate error; blobs and rows already written stay in place and
// are not retried or rolled back.
func (s *Service) AttachBatch(ctx context.Context, uploaderID string, inputs []AttachInput) ([]domain.Photo, error) {
	photos := make([]*domain.Photo, len(inputs))
	errs := make([]error, len(inputs))

	var wg sync.WaitGroup
	for i, in := range inputs {
		wg.Add(1)
		go func(i int, in AttachInput) {
			defer wg.Done()
			p, err := s.Attach(ctx, uploaderID, in)
			if err != nil {
				errs[i] = fmt.Errorf("upload %d (%s): %w", i+1, in.Filename, err)
				return
			}
			photos[i] = p
		}(i, in)
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, apperr.Wrap(apperr.Upload, "photo.attach_batch", err)
	}

	out := make([]domain.Photo, 0, len(photos))
	for _, p := range photos {
		out = append(out, *p)
	}
	return out, nil
}

// Detach deletes the blob best-effort and always removes the metadata
// row: a dangling photo reference in the UI is worse than a leaked
// blob.
func (s *Service) Detach(ctx context.Context, id string) (*domain.Photo, error) {
	p, err := s.photos.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.FromDB("photo.detach", err)
	}

	if p.ObjectKey != "" {
		if err := s.blobs.Remove(p.ObjectKey); err != nil {
			log.Printf("photo.detach: removing blob %s failed, metadata row deleted anyway: %v", p.ObjectKey, err)
		}
	}

	if err := s.photos.Delete(ctx, id); err != nil {
		return nil, apperr.FromDB("photo.detach", err)
	}

	s.invalidateOwner(p.VenueID, p.ReviewID)
	return p, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Photo, error) {
	p, err := s.photos.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.FromDB("photo.get", err)
	}
	return p, nil
}

func validateOwner(venueID, reviewID *string) error {
	hasVenue := venueID != nil && *venueID != ""
	hasReview := reviewID != nil && *reviewID != ""
	if hasVenue == hasReview {
		return apperr.New(apperr.Validation, "photo.attach", "exactly one of venue or review must be set")
	}
	return nil
}

func (s *Service) invalidateOwner(venueID, reviewID *string) {
	if venueID != nil && *venueID != "" {
		s.views.Invalidate(viewcache.ViewVenueDetail(*venueID))
	}
	if reviewID != nil && *reviewID != "" {
		s.views.Invalidate(viewcache.ViewReviewDetail(*reviewID))
	}
}
