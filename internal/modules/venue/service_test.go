package venue

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"tastebook/internal/domain"
	"tastebook/internal/pkg/apperr"
	"tastebook/internal/viewcache"
)

type MockVenueRepository struct {
	mock.Mock
}

func (m *MockVenueRepository) Create(ctx context.Context, v *domain.Venue) error {
	args := m.Called(ctx, v)
	if v != nil && v.ID == "" {
		v.ID = "venue-1" // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockVenueRepository) GetByID(ctx context.Context, id string) (*domain.Venue, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Venue), args.Error(1)
}

func (m *MockVenueRepository) List(ctx context.Context) ([]domain.Venue, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Venue), args.Error(1)
}

func (m *MockVenueRepository) Update(ctx context.Context, id string, fields map[string]any) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *MockVenueRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockVenueRepository) SetAverageRating(ctx context.Context, id string, avg *float64) error {
	args := m.Called(ctx, id, avg)
	return args.Error(0)
}

type MockPhotoRepository struct {
	mock.Mock
}

func (m *MockPhotoRepository) Create(ctx context.Context, p *domain.Photo) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPhotoRepository) GetByID(ctx context.Context, id string) (*domain.Photo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Photo), args.Error(1)
}

func (m *MockPhotoRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPhotoRepository) ListKeysForVenue(ctx context.Context, venueID string) ([]string, error) {
	args := m.Called(ctx, venueID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockBlobStore struct {
	mock.Mock
}

func (m *MockBlobStore) Upload(key string, content []byte) (string, error) {
	args := m.Called(key, content)
	return args.String(0), args.Error(1)
}

func (m *MockBlobStore) Remove(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func (m *MockBlobStore) PublicURL(key string) string {
	args := m.Called(key)
	return args.String(0)
}

func newTestService() (*Service, *MockVenueRepository, *MockPhotoRepository, *MockBlobStore, *viewcache.Registry) {
	venues := new(MockVenueRepository)
	photos := new(MockPhotoRepository)
	blobs := new(MockBlobStore)
	views := viewcache.NewRegistry()
	return NewService(venues, photos, blobs, views), venues, photos, blobs, views
}

func TestCreate_EmptyNameAfterTrim_Fails(t *testing.T) {
	svc, venues, _, _, _ := newTestService()

	_, err := svc.Create(context.Background(), "user-x", CreateVenueRequest{
		Name:      "   ",
		Address:   "Main St 1",
		PriceTier: 2,
	})

	assert.True(t, apperr.IsKind(err, apperr.Validation))
	venues.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreate_Success_InvalidatesListView(t *testing.T) {
	svc, venues, _, _, views := newTestService()

	venues.On("Create", mock.Anything, mock.MatchedBy(func(v *domain.Venue) bool {
		return v.Name == "Café X" && v.Address == "Main St 1" && v.PriceTier == 2 && v.OwnerID == "user-x"
	})).Return(nil)

	v, err := svc.Create(context.Background(), "user-x", CreateVenueRequest{
		Name:      "  Café X  ",
		Address:   "Main St 1",
		PriceTier: 2,
	})

	assert.NoError(t, err)
	assert.Equal(t, "venue-1", v.ID)
	assert.True(t, views.IsStale(viewcache.ViewVenueList))
}

func TestCreate_PriceTierOutOfRange_Fails(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	for _, tier := range []int{0, 4} {
		_, err := svc.Create(context.Background(), "user-x", CreateVenueRequest{
			Name:      "Café X",
			Address:   "Main St 1",
			PriceTier: tier,
		})
		assert.True(t, apperr.IsKind(err, apperr.Validation), "tier %d", tier)
	}
}

func TestList_FailsOpenOnStoreError(t *testing.T) {
	svc, venues, _, _, _ := newTestService()

	venues.On("List", mock.Anything).Return(nil, errors.New("connection refused"))

	got := svc.List(context.Background())
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGet_MissingVenue_ReturnsNotFound(t *testing.T) {
	svc, venues, _, _, _ := newTestService()

	venues.On("GetByID", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Get(context.Background(), "ghost")
	assert.True(t, apperr.IsKind(err, apperr.NotFound))
}

func TestGet_BackendUnavailable_IsNotNotFound(t *testing.T) {
	svc, venues, _, _, _ := newTestService()

	venues.On("GetByID", mock.Anything, "venue-1").Return(nil, errors.New("timeout"))

	_, err := svc.Get(context.Background(), "venue-1")
	assert.True(t, apperr.IsKind(err, apperr.Persistence))
	assert.False(t, apperr.IsKind(err, apperr.NotFound))
}

func TestUpdate_RejectsAverageRatingViaPartialFields(t *testing.T) {
	// UpdateVenueRequest has no average-rating field at all; this
	// pins down that only the allowed columns reach the repo.
	svc, venues, _, _, _ := newTestService()

	name := "New Name"
	venues.On("Update", mock.Anything, "venue-1", map[string]any{"name": "New Name"}).Return(nil)

	err := svc.Update(context.Background(), "venue-1", UpdateVenueRequest{Name: &name})
	assert.NoError(t, err)
	venues.AssertExpectations(t)
}

func TestUpdate_MissingVenue_ReturnsNotFound(t *testing.T) {
	svc, venues, _, _, _ := newTestService()

	name := "New Name"
	venues.On("Update", mock.Anything, "ghost", mock.Anything).Return(gorm.ErrRecordNotFound)

	err := svc.Update(context.Background(), "ghost", UpdateVenueRequest{Name: &name})
	assert.True(t, apperr.IsKind(err, apperr.NotFound))
}

func TestDelete_IsIdempotent(t *testing.T) {
	svc, venues, photos, _, _ := newTestService()

	photos.On("ListKeysForVenue", mock.Anything, "ghost").Return([]string{}, nil)
	// Cascade delete of a missing venue affects zero rows and is fine.
	venues.On("Delete", mock.Anything, "ghost").Return(nil)

	assert.NoError(t, svc.Delete(context.Background(), "ghost"))
}

func TestDelete_CleansUpBlobsBestEffort(t *testing.T) {
	svc, venues, photos, blobs, views := newTestService()

	photos.On("ListKeysForVenue", mock.Anything, "venue-1").Return([]string{"u1/a.png", "u1/b.png"}, nil)
	venues.On("Delete", mock.Anything, "venue-1").Return(nil)
	blobs.On("Remove", "u1/a.png").Return(nil)
	blobs.On("Remove", "u1/b.png").Return(errors.New("blob store down"))

	assert.NoError(t, svc.Delete(context.Background(), "venue-1"))
	blobs.AssertExpectations(t)
	assert.True(t, views.IsStale(viewcache.ViewVenueList))
	assert.True(t, views.IsStale(viewcache.ViewVenueDetail("venue-1")))
}
