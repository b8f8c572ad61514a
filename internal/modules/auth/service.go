package auth

import (
	"context"
	"errors"
	"log"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"tastebook/internal/domain"
	"tastebook/internal/pkg/apperr"
	"tastebook/internal/repository"
)

type tokenIssuer interface {
	GenerateToken(userID, email string, isAdmin bool) (string, error)
}

// SessionNotifier receives session lifecycle events for the event
// stream the presentation layer subscribes to.
type SessionNotifier interface {
	SessionChanged(eventType, userID string)
}

type Service struct {
	users    repository.UserRepository
	profiles repository.ProfileRepository
	jwt      tokenIssuer
	notifier SessionNotifier
}

type LoginResult struct {
	Profile *domain.Profile
	Token   string
}

func NewService(
	users repository.UserRepository,
	profiles repository.ProfileRepository,
	jwt tokenIssuer,
	notifier SessionNotifier,
) *Service {
	return &Service{users: users, profiles: profiles, jwt: jwt, notifier: notifier}
}

// Register creates the identity record and its profile together, then
// opens a session.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	name := strings.TrimSpace(req.Name)

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{Email: email, PasswordHash: string(hash)}
	profile := &domain.Profile{Name: name, Email: email}

	if err := s.users.CreateWithProfile(ctx, user, profile); err != nil {
		if apperr.FromDB("auth.register", err).Kind == apperr.Conflict {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Email, profile.IsAdmin)
	if err != nil {
		return nil, err
	}

	s.notifier.SessionChanged("signed_in", user.ID)
	return &LoginResult{Profile: profile, Token: token}, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	profile := s.profileOrDegraded(ctx, user)

	token, err := s.jwt.GenerateToken(user.ID, user.Email, profile.IsAdmin)
	if err != nil {
		return nil, err
	}

	s.notifier.SessionChanged("signed_in", user.ID)
	return &LoginResult{Profile: profile, Token: token}, nil
}

// Logout only publishes the session change; tokens are stateless and
// expire on their own.
func (s *Service) Logout(userID string) {
	s.notifier.SessionChanged("signed_out", userID)
}

// Me returns the current session's profile.
func (s *Service) Me(ctx context.Context, userID string) (*domain.Profile, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, apperr.FromDB("auth.me", err)
	}
	return s.profileOrDegraded(ctx, user), nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (*domain.Profile, error) {
	fields := map[string]any{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperr.New(apperr.Validation, "auth.update_profile", "name cannot be empty")
		}
		fields["name"] = name
	}
	if req.AvatarURL != nil {
		fields["avatar_url"] = *req.AvatarURL
	}
	if len(fields) == 0 {
		return nil, apperr.New(apperr.Validation, "auth.update_profile", "no fields to update")
	}

	if err := s.profiles.Update(ctx, userID, fields); err != nil {
		return nil, apperr.FromDB("auth.update_profile", err)
	}

	p, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		return nil, apperr.FromDB("auth.update_profile", err)
	}
	return p, nil
}

// profileOrDegraded tolerates an identity record without a profile:
// login still works with a minimal profile built from the credential
// row.
func (s *Service) profileOrDegraded(ctx context.Context, user *domain.User) *domain.Profile {
	profile, err := s.profiles.GetByID(ctx, user.ID)
	if err == nil {
		return profile
	}
	log.Printf("auth: no profile for user %s, serving degraded profile: %v", user.ID, err)
	return &domain.Profile{ID: user.ID, Email: user.Email, CreatedAt: user.CreatedAt}
}
