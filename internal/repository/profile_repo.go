package repository

import (
	"context"

	"gorm.io/gorm"

	"tastebook/internal/domain"
)

type ProfileRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Profile, error)
	List(ctx context.Context) ([]domain.Profile, error)
	Update(ctx context.Context, id string, fields map[string]any) error
	SetAdmin(ctx context.Context, id string, isAdmin bool) error
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	var m profileRow
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	p := toDomainProfile(m)
	return &p, nil
}

func (r *profileRepository) List(ctx context.Context) ([]domain.Profile, error) {
	var rows []profileRow
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.Profile, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainProfile(m))
	}
	return out, nil
}

func (r *profileRepository) Update(ctx context.Context, id string, fields map[string]any) error {
	tx := r.db.WithContext(ctx).
		Model(&profileRow{}).
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

func (r *profileRepository) SetAdmin(ctx context.Context, id string, isAdmin bool) error {
	return r.Update(ctx, id, map[string]any{"is_admin": isAdmin})
}
