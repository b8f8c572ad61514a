package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tastebook/internal/domain"
)

type PhotoRepository interface {
	Create(ctx context.Context, p *domain.Photo) error
	GetByID(ctx context.Context, id string) (*domain.Photo, error)
	Delete(ctx context.Context, id string) error
	// ListKeysForVenue returns the object keys of every photo attached
	// to the venue or to one of its reviews, for blob cleanup before a
	// venue delete.
	ListKeysForVenue(ctx context.Context, venueID string) ([]string, error)
}

type photoRepository struct {
	db *gorm.DB
}

func NewPhotoRepository(db *gorm.DB) PhotoRepository {
	return &photoRepository{db: db}
}

func (r *photoRepository) Create(ctx context.Context, p *domain.Photo) error {
	m := photoRow{
		ID:         p.ID,
		VenueID:    p.VenueID,
		ReviewID:   p.ReviewID,
		UploaderID: p.UploaderID,
		ObjectKey:  p.ObjectKey,
		URL:        p.URL,
	}
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*p = toDomainPhoto(m)
	return nil
}

func (r *photoRepository) GetByID(ctx context.Context, id string) (*domain.Photo, error) {
	var m photoRow
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	p := toDomainPhoto(m)
	return &p, nil
}

func (r *photoRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&photoRow{}).Error
}

func (r *photoRepository) ListKeysForVenue(ctx context.Context, venueID string) ([]string, error) {
	reviewIDs := r.db.WithContext(ctx).Model(&reviewRow{}).Select("id").Where("venue_id = ?", venueID)

	var keys []string
	err := r.db.WithContext(ctx).
		Model(&photoRow{}).
		Where("venue_id = ? OR review_id IN (?)", venueID, reviewIDs).
		Where("object_key <> ''").
		Pluck("object_key", &keys).Error
	return keys, err
}
