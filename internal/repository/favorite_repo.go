package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tastebook/internal/domain"
)

type FavoriteRepository interface {
	Add(ctx context.Context, f *domain.Favorite) error
	// Remove deletes the pairing if present; a missing pairing is not
	// an error.
	Remove(ctx context.Context, userID, venueID string) error
	Exists(ctx context.Context, userID, venueID string) (bool, error)
	// ListVenuesByUser returns the favorited venues, most recently
	// favorited first, in the list-view shape.
	ListVenuesByUser(ctx context.Context, userID string) ([]domain.Venue, error)
}

type favoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) Add(ctx context.Context, f *domain.Favorite) error {
	m := favoriteRow{ID: f.ID, UserID: f.UserID, VenueID: f.VenueID}
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*f = toDomainFavorite(m)
	return nil
}

func (r *favoriteRepository) Remove(ctx context.Context, userID, venueID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND venue_id = ?", userID, venueID).
		Delete(&favoriteRow{}).Error
}

func (r *favoriteRepository) Exists(ctx context.Context, userID, venueID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&favoriteRow{}).
		Where("user_id = ? AND venue_id = ?", userID, venueID).
		Count(&count).Error
	return count > 0, err
}

func (r *favoriteRepository) ListVenuesByUser(ctx context.Context, userID string) ([]domain.Venue, error) {
	var favs []favoriteRow
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favs).Error
	if err != nil {
		return nil, err
	}
	if len(favs) == 0 {
		return []domain.Venue{}, nil
	}

	ids := make([]string, 0, len(favs))
	for _, f := range favs {
		ids = append(ids, f.VenueID)
	}

	var rows []venueRow
	err = r.db.WithContext(ctx).
		Preload("Photos").
		Where("id IN ?", ids).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	byID := make(map[string]venueRow, len(rows))
	for _, m := range rows {
		byID[m.ID] = m
	}

	// Preserve favorited order; skip venues deleted since.
	out := make([]domain.Venue, 0, len(favs))
	for _, f := range favs {
		if m, ok := byID[f.VenueID]; ok {
			out = append(out, toDomainVenue(m))
		}
	}
	return out, nil
}
