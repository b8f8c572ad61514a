package favorite

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"tastebook/internal/domain"
	"tastebook/internal/viewcache"
)

type MockFavoriteRepository struct {
	mock.Mock
}

func (m *MockFavoriteRepository) Add(ctx context.Context, f *domain.Favorite) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *MockFavoriteRepository) Remove(ctx context.Context, userID, venueID string) error {
	args := m.Called(ctx, userID, venueID)
	return args.Error(0)
}

func (m *MockFavoriteRepository) Exists(ctx context.Context, userID, venueID string) (bool, error) {
	args := m.Called(ctx, userID, venueID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFavoriteRepository) ListVenuesByUser(ctx context.Context, userID string) ([]domain.Venue, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Venue), args.Error(1)
}

func TestAdd_NewPairing_Inserts(t *testing.T) {
	repo := new(MockFavoriteRepository)
	views := viewcache.NewRegistry()
	svc := NewService(repo, views)

	repo.On("Exists", mock.Anything, "u1", "v1").Return(false, nil)
	repo.On("Add", mock.Anything, mock.Anything).Return(nil)

	assert.NoError(t, svc.Add(context.Background(), "u1", "v1"))
	assert.True(t, views.IsStale(viewcache.ViewFavorites("u1")))
	assert.True(t, views.IsStale(viewcache.ViewVenueDetail("v1")))
}

func TestAdd_ExistingPairing_SucceedsWithoutInsert(t *testing.T) {
	repo := new(MockFavoriteRepository)
	svc := NewService(repo, viewcache.NewRegistry())

	repo.On("Exists", mock.Anything, "u1", "v1").Return(true, nil)

	assert.NoError(t, svc.Add(context.Background(), "u1", "v1"))
	repo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestAdd_RacedUniqueViolation_SwallowedAsSuccess(t *testing.T) {
	repo := new(MockFavoriteRepository)
	svc := NewService(repo, viewcache.NewRegistry())

	// Concurrent insert won between the existence check and ours.
	repo.On("Exists", mock.Anything, "u1", "v1").Return(false, nil)
	repo.On("Add", mock.Anything, mock.Anything).Return(&pgconn.PgError{Code: "23505"})

	assert.NoError(t, svc.Add(context.Background(), "u1", "v1"))
}

func TestAdd_OtherStoreError_Propagates(t *testing.T) {
	repo := new(MockFavoriteRepository)
	svc := NewService(repo, viewcache.NewRegistry())

	repo.On("Exists", mock.Anything, "u1", "v1").Return(false, nil)
	repo.On("Add", mock.Anything, mock.Anything).Return(errors.New("connection refused"))

	assert.Error(t, svc.Add(context.Background(), "u1", "v1"))
}

func TestRemove_AbsentPairing_Succeeds(t *testing.T) {
	repo := new(MockFavoriteRepository)
	svc := NewService(repo, viewcache.NewRegistry())

	// Delete with no matching rows is not an error at the repo level.
	repo.On("Remove", mock.Anything, "u1", "v1").Return(nil)

	assert.NoError(t, svc.Remove(context.Background(), "u1", "v1"))
}

func TestIsFavorite_FailsOpenToFalse(t *testing.T) {
	repo := new(MockFavoriteRepository)
	svc := NewService(repo, viewcache.NewRegistry())

	repo.On("Exists", mock.Anything, "u1", "v1").Return(false, errors.New("timeout"))

	assert.False(t, svc.IsFavorite(context.Background(), "u1", "v1"))
}

func TestIsFavorite_ReportsMembership(t *testing.T) {
	repo := new(MockFavoriteRepository)
	svc := NewService(repo, viewcache.NewRegistry())

	repo.On("Exists", mock.Anything, "u1", "v1").Return(true, nil)

	assert.True(t, svc.IsFavorite(context.Background(), "u1", "v1"))
}

func TestList_ReturnsVenueSummaries(t *testing.T) {
	repo := new(MockFavoriteRepository)
	svc := NewService(repo, viewcache.NewRegistry())

	avg := 4.5
	repo.On("ListVenuesByUser", mock.Anything, "u1").Return([]domain.Venue{
		{ID: "v1", Name: "Café X", AverageRating: &avg, Photos: []string{"/static/uploads/u1/a.png"}},
	}, nil)

	venues, err := svc.List(context.Background(), "u1")
	assert.NoError(t, err)
	assert.Len(t, venues, 1)
	assert.Equal(t, "Café X", venues[0].Name)
}
