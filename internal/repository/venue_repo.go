package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tastebook/internal/domain"
)

// VenueRepository is the venue slice of the relational store.
type VenueRepository interface {
	Create(ctx context.Context, v *domain.Venue) error
	GetByID(ctx context.Context, id string) (*domain.Venue, error)
	List(ctx context.Context) ([]domain.Venue, error)
	Update(ctx context.Context, id string, fields map[string]any) error
	// Delete removes the venue and everything hanging off it in one
	// transaction: dishes, photos, favorites, reviews, then the venue
	// row itself. Deleting a missing id is a no-op.
	Delete(ctx context.Context, id string) error
	SetAverageRating(ctx context.Context, id string, avg *float64) error
}

type venueRepository struct {
	db *gorm.DB
}

func NewVenueRepository(db *gorm.DB) VenueRepository {
	return &venueRepository{db: db}
}

func (r *venueRepository) Create(ctx context.Context, v *domain.Venue) error {
	m := toVenueRow(v)
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*v = toDomainVenue(m)
	return nil
}

func (r *venueRepository) GetByID(ctx context.Context, id string) (*domain.Venue, error) {
	var m venueRow
	err := r.db.WithContext(ctx).
		Preload("Photos").
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Order("reviews.created_at DESC")
		}).
		Preload("Reviews.Dishes").
		Preload("Reviews.Photos").
		Preload("Reviews.Author").
		First(&m, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	v := toDomainVenue(m)
	return &v, nil
}

func (r *venueRepository) List(ctx context.Context) ([]domain.Venue, error) {
	var rows []venueRow
	err := r.db.WithContext(ctx).
		Preload("Photos").
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.Venue, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainVenue(m))
	}
	return out, nil
}

func (r *venueRepository) Update(ctx context.Context, id string, fields map[string]any) error {
	tx := r.db.WithContext(ctx).
		Model(&venueRow{}).
		Where("id = ?", id).
		Updates(fields)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *venueRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Fresh subquery per statement; gorm builders accumulate state.
		reviewIDs := func() *gorm.DB {
			return tx.Session(&gorm.Session{NewDB: true}).Model(&reviewRow{}).Select("id").Where("venue_id = ?", id)
		}

		if err := tx.Where("review_id IN (?)", reviewIDs()).Delete(&dishRow{}).Error; err != nil {
			return err
		}
		if err := tx.Where("venue_id = ? OR review_id IN (?)", id, reviewIDs()).Delete(&photoRow{}).Error; err != nil {
			return err
		}
		if err := tx.Where("venue_id = ?", id).Delete(&favoriteRow{}).Error; err != nil {
			return err
		}
		if err := tx.Where("venue_id = ?", id).Delete(&reviewRow{}).Error; err != nil {
			return err
		}
		// No RowsAffected check: deleting an already-gone venue ends
		// in the intended state.
		return tx.Where("id = ?", id).Delete(&venueRow{}).Error
	})
}

func (r *venueRepository) SetAverageRating(ctx context.Context, id string, avg *float64) error {
	return r.db.WithContext(ctx).
		Model(&venueRow{}).
		Where("id = ?", id).
		Update("average_rating", avg).Error
}
