package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tastebook/internal/domain"
)

type ReviewRepository interface {
	Create(ctx context.Context, rv *domain.Review) error
	GetByID(ctx context.Context, id string) (*domain.Review, error)
	ListByVenue(ctx context.Context, venueID string) ([]domain.Review, error)
	Update(ctx context.Context, id string, fields map[string]any) error
	// Delete removes the review with its dishes and photo rows in one
	// transaction.
	Delete(ctx context.Context, id string) error
	// ListRatings returns every current rating for the venue; the
	// average is always recomputed from this full set.
	ListRatings(ctx context.Context, venueID string) ([]int, error)
	VenueIDOf(ctx context.Context, reviewID string) (string, error)
	InsertDishes(ctx context.Context, reviewID string, dishes []domain.Dish) error
	UpsertDishes(ctx context.Context, reviewID string, dishes []domain.Dish) error
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	m := reviewRow{
		ID:       rv.ID,
		VenueID:  rv.VenueID,
		AuthorID: rv.AuthorID,
		Rating:   rv.Rating,
		Message:  rv.Message,
	}
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	dishes := rv.Dishes
	*rv = toDomainReview(m)
	rv.Dishes = dishes
	return nil
}

func (r *reviewRepository) GetByID(ctx context.Context, id string) (*domain.Review, error) {
	var m reviewRow
	err := r.db.WithContext(ctx).
		Preload("Dishes").
		Preload("Photos").
		Preload("Author").
		First(&m, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	d := toDomainReview(m)
	return &d, nil
}

func (r *reviewRepository) ListByVenue(ctx context.Context, venueID string) ([]domain.Review, error) {
	var rows []reviewRow
	err := r.db.WithContext(ctx).
		Where("venue_id = ?", venueID).
		Preload("Dishes").
		Preload("Photos").
		Preload("Author").
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.Review, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainReview(m))
	}
	return out, nil
}

func (r *reviewRepository) Update(ctx context.Context, id string, fields map[string]any) error {
	tx := r.db.WithContext(ctx).
		Model(&reviewRow{}).
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

func (r *reviewRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("review_id = ?", id).Delete(&dishRow{}).Error; err != nil {
			return err
		}
		if err := tx.Where("review_id = ?", id).Delete(&photoRow{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&reviewRow{}).Error
	})
}

func (r *reviewRepository) ListRatings(ctx context.Context, venueID string) ([]int, error) {
	var ratings []int
	err := r.db.WithContext(ctx).
		Model(&reviewRow{}).
		Where("venue_id = ?", venueID).
		Pluck("rating", &ratings).Error
	return ratings, err
}

func (r *reviewRepository) VenueIDOf(ctx context.Context, reviewID string) (string, error) {
	var m reviewRow
	err := r.db.WithContext(ctx).
		Select("id", "venue_id").
		First(&m, "id = ?", reviewID).Error
	if err != nil {
		return "", err
	}
	return m.VenueID, nil
}

func (r *reviewRepository) InsertDishes(ctx context.Context, reviewID string, dishes []domain.Dish) error {
	if len(dishes) == 0 {
		return nil
	}
	rows := make([]dishRow, 0, len(dishes))
	for _, d := range dishes {
		id := d.ID
		if id == "" {
			id = uuid.New().String()
		}
		rows = append(rows, dishRow{ID: id, ReviewID: reviewID, Name: d.Name, Price: d.Price})
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

// UpsertDishes updates dishes by id and inserts the ones without one.
func (r *reviewRepository) UpsertDishes(ctx context.Context, reviewID string, dishes []domain.Dish) error {
	if len(dishes) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, d := range dishes {
			if d.ID == "" {
				row := dishRow{ID: uuid.New().String(), ReviewID: reviewID, Name: d.Name, Price: d.Price}
				if err := tx.Create(&row).Error; err != nil {
					return err
				}
				continue
			}
			err := tx.Model(&dishRow{}).
				Where("id = ? AND review_id = ?", d.ID, reviewID).
				Updates(map[string]any{"name": d.Name, "price": d.Price}).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}
