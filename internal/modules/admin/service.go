package admin

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"tastebook/internal/domain"
	"tastebook/internal/pkg/apperr"
	"tastebook/internal/repository"
)

// VenueRemover is the venue-module slice the admin panel needs; it
// goes through the service so blob cleanup and invalidation still run.
type VenueRemover interface {
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) []domain.Venue
}

type Service struct {
	users    repository.UserRepository
	profiles repository.ProfileRepository
	venues   VenueRemover
}

func NewService(users repository.UserRepository, profiles repository.ProfileRepository, venues VenueRemover) *Service {
	return &Service{users: users, profiles: profiles, venues: venues}
}

func (s *Service) ListUsers(ctx context.Context) ([]domain.Profile, error) {
	profiles, err := s.profiles.List(ctx)
	if err != nil {
		return nil, apperr.FromDB("admin.list_users", err)
	}
	return profiles, nil
}

func (s *Service) SetAdmin(ctx context.Context, userID string, isAdmin bool) error {
	if err := s.profiles.SetAdmin(ctx, userID, isAdmin); err != nil {
		return apperr.FromDB("admin.set_admin", err)
	}
	return nil
}

// CreateUser provisions an account from the admin panel, optionally
// with the admin flag already set.
func (s *Service) CreateUser(ctx context.Context, req CreateUserRequest) (*domain.Profile, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	name := strings.TrimSpace(req.Name)
	if email == "" || name == "" {
		return nil, apperr.New(apperr.Validation, "admin.create_user", "email and name are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{Email: email, PasswordHash: string(hash)}
	profile := &domain.Profile{Name: name, Email: email, IsAdmin: req.IsAdmin}

	if err := s.users.CreateWithProfile(ctx, user, profile); err != nil {
		return nil, apperr.FromDB("admin.create_user", err)
	}
	return profile, nil
}

func (s *Service) ListVenues(ctx context.Context) []domain.Venue {
	return s.venues.List(ctx)
}

func (s *Service) DeleteVenue(ctx context.Context, id string) error {
	return s.venues.Delete(ctx, id)
}
