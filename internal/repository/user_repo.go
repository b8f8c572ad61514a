package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tastebook/internal/domain"
)

type UserRepository interface {
	// CreateWithProfile inserts the identity record and its profile in
	// one transaction so the pair can never half-exist.
	CreateWithProfile(ctx context.Context, u *domain.User, p *domain.Profile) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateWithProfile(ctx context.Context, u *domain.User, p *domain.Profile) error {
	um := userRow{ID: u.ID, Email: u.Email, PasswordHash: u.PasswordHash}
	if um.ID == "" {
		um.ID = uuid.New().String()
	}
	pm := profileRow{
		ID:        um.ID,
		Name:      p.Name,
		Email:     um.Email,
		AvatarURL: p.AvatarURL,
		IsAdmin:   p.IsAdmin,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&um).Error; err != nil {
			return err
		}
		return tx.Create(&pm).Error
	})
	if err != nil {
		return err
	}

	*u = toDomainUser(um)
	*p = toDomainProfile(pm)
	return nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var m userRow
	err := r.db.WithContext(ctx).First(&m, "email = ?", email).Error
	if err != nil {
		return nil, err
	}
	u := toDomainUser(m)
	return &u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var m userRow
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	u := toDomainUser(m)
	return &u, nil
}
