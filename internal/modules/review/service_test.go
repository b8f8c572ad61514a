package review

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

type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	args := m.Called(ctx, rv)
	if rv != nil && rv.ID == "" {
		rv.ID = "review-1" // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockReviewRepository) GetByID(ctx context.Context, id string) (*domain.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *MockReviewRepository) ListByVenue(ctx context.Context, venueID string) ([]domain.Review, error) {
	args := m.Called(ctx, venueID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *MockReviewRepository) Update(ctx context.Context, id string, fields map[string]any) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *MockReviewRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReviewRepository) ListRatings(ctx context.Context, venueID string) ([]int, error) {
	args := m.Called(ctx, venueID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

func (m *MockReviewRepository) VenueIDOf(ctx context.Context, reviewID string) (string, error) {
	args := m.Called(ctx, reviewID)
	return args.String(0), args.Error(1)
}

func (m *MockReviewRepository) InsertDishes(ctx context.Context, reviewID string, dishes []domain.Dish) error {
	args := m.Called(ctx, reviewID, dishes)
	return args.Error(0)
}

func (m *MockReviewRepository) UpsertDishes(ctx context.Context, reviewID string, dishes []domain.Dish) error {
	args := m.Called(ctx, reviewID, dishes)
	return args.Error(0)
}

type MockRatingStore struct {
	mock.Mock
}

func (m *MockRatingStore) SetAverageRating(ctx context.Context, venueID string, avg *float64) error {
	args := m.Called(ctx, venueID, avg)
	return args.Error(0)
}

func newTestService() (*Service, *MockReviewRepository, *MockRatingStore) {
	reviews := new(MockReviewRepository)
	venues := new(MockRatingStore)
	return NewService(reviews, venues, viewcache.NewRegistry()), reviews, venues
}

func TestCreate_Success_RecomputesAverage(t *testing.T) {
	svc, reviews, venues := newTestService()

	reviews.On("Create", mock.Anything, mock.Anything).Return(nil)
	reviews.On("InsertDishes", mock.Anything, "review-1", mock.Anything).Return(nil)
	reviews.On("ListRatings", mock.Anything, "venue-1").Return([]int{5, 4}, nil)
	venues.On("SetAverageRating", mock.Anything, "venue-1", mock.MatchedBy(func(avg *float64) bool {
		return avg != nil && *avg == 4.5
	})).Return(nil)

	price := 2400.0
	rv, err := svc.Create(context.Background(), "user-1", CreateReviewRequest{
		VenueID: "venue-1",
		Rating:  5,
		Message: "Excellent duck breast.",
		Dishes:  []DishInput{{Name: "Duck breast", Price: &price}},
	})

	assert.NoError(t, err)
	assert.Equal(t, "review-1", rv.ID)
	assert.Len(t, rv.Dishes, 1)
	venues.AssertExpectations(t)
}

func TestCreate_RatingOutOfRange_NoStoreWrites(t *testing.T) {
	svc, reviews, venues := newTestService()

	for _, rating := range []int{0, 6, -1} {
		_, err := svc.Create(context.Background(), "user-1", CreateReviewRequest{
			VenueID: "venue-1",
			Rating:  rating,
			Message: "anything",
		})
		assert.True(t, apperr.IsKind(err, apperr.Validation), "rating %d", rating)
	}

	reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	venues.AssertNotCalled(t, "SetAverageRating", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreate_BlankMessage_Fails(t *testing.T) {
	svc, reviews, _ := newTestService()

	_, err := svc.Create(context.Background(), "user-1", CreateReviewRequest{
		VenueID: "venue-1",
		Rating:  3,
		Message: "   ",
	})

	assert.True(t, apperr.IsKind(err, apperr.Validation))
	reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreate_DishInsertFailure_DoesNotRollBackReview(t *testing.T) {
	svc, reviews, venues := newTestService()

	reviews.On("Create", mock.Anything, mock.Anything).Return(nil)
	reviews.On("InsertDishes", mock.Anything, "review-1", mock.Anything).Return(errors.New("disk full"))
	reviews.On("ListRatings", mock.Anything, "venue-1").Return([]int{4}, nil)
	venues.On("SetAverageRating", mock.Anything, "venue-1", mock.Anything).Return(nil)

	rv, err := svc.Create(context.Background(), "user-1", CreateReviewRequest{
		VenueID: "venue-1",
		Rating:  4,
		Message: "Great",
		Dishes:  []DishInput{{Name: "Soup"}},
	})

	assert.NoError(t, err)
	assert.Empty(t, rv.Dishes)
}

func TestDelete_LooksUpVenueFirstAndRecomputes(t *testing.T) {
	svc, reviews, venues := newTestService()

	reviews.On("VenueIDOf", mock.Anything, "review-9").Return("venue-1", nil)
	reviews.On("Delete", mock.Anything, "review-9").Return(nil)
	reviews.On("ListRatings", mock.Anything, "venue-1").Return([]int{5}, nil)
	venues.On("SetAverageRating", mock.Anything, "venue-1", mock.MatchedBy(func(avg *float64) bool {
		return avg != nil && *avg == 5.0
	})).Return(nil)

	assert.NoError(t, svc.Delete(context.Background(), "review-9"))
	venues.AssertExpectations(t)
}

func TestDelete_LastReview_SetsAverageToNull(t *testing.T) {
	svc, reviews, venues := newTestService()

	reviews.On("VenueIDOf", mock.Anything, "review-9").Return("venue-1", nil)
	reviews.On("Delete", mock.Anything, "review-9").Return(nil)
	reviews.On("ListRatings", mock.Anything, "venue-1").Return([]int{}, nil)
	venues.On("SetAverageRating", mock.Anything, "venue-1", (*float64)(nil)).Return(nil)

	assert.NoError(t, svc.Delete(context.Background(), "review-9"))
	venues.AssertExpectations(t)
}

func TestDelete_MissingReview_ReturnsNotFound(t *testing.T) {
	svc, reviews, _ := newTestService()

	reviews.On("VenueIDOf", mock.Anything, "ghost").Return("", gorm.ErrRecordNotFound)

	err := svc.Delete(context.Background(), "ghost")
	assert.True(t, apperr.IsKind(err, apperr.NotFound))
}

func TestUpdate_RecomputesEvenWhenOnlyDishesChange(t *testing.T) {
	svc, reviews, venues := newTestService()

	updated := &domain.Review{ID: "review-1", VenueID: "venue-1", Rating: 4, Message: "ok"}
	reviews.On("UpsertDishes", mock.Anything, "review-1", mock.Anything).Return(nil)
	reviews.On("GetByID", mock.Anything, "review-1").Return(updated, nil)
	reviews.On("ListRatings", mock.Anything, "venue-1").Return([]int{4, 2}, nil)
	venues.On("SetAverageRating", mock.Anything, "venue-1", mock.MatchedBy(func(avg *float64) bool {
		return avg != nil && *avg == 3.0
	})).Return(nil)

	_, err := svc.Update(context.Background(), "review-1", UpdateReviewRequest{
		Dishes: []DishInput{{ID: "dish-1", Name: "Updated name"}},
	})

	assert.NoError(t, err)
	reviews.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	venues.AssertExpectations(t)
}

func TestAverage_FullPrecision(t *testing.T) {
	svc, reviews, venues := newTestService()

	reviews.On("VenueIDOf", mock.Anything, "review-1").Return("venue-1", nil)
	reviews.On("Delete", mock.Anything, "review-1").Return(nil)
	// [5,4,4] -> 13/3, retained at full float precision
	reviews.On("ListRatings", mock.Anything, "venue-1").Return([]int{5, 4, 4}, nil)
	venues.On("SetAverageRating", mock.Anything, "venue-1", mock.MatchedBy(func(avg *float64) bool {
		return avg != nil && *avg == 13.0/3.0
	})).Return(nil)

	assert.NoError(t, svc.Delete(context.Background(), "review-1"))
	venues.AssertExpectations(t)
}

func TestCreate_InvalidatesVenueDetailView(t *testing.T) {
	reviews := new(MockReviewRepository)
	venues := new(MockRatingStore)
	views := viewcache.NewRegistry()
	svc := NewService(reviews, venues, views)

	reviews.On("Create", mock.Anything, mock.Anything).Return(nil)
	reviews.On("InsertDishes", mock.Anything, "review-1", mock.Anything).Return(nil)
	reviews.On("ListRatings", mock.Anything, "venue-1").Return([]int{3}, nil)
	venues.On("SetAverageRating", mock.Anything, "venue-1", mock.Anything).Return(nil)

	_, err := svc.Create(context.Background(), "user-1", CreateReviewRequest{
		VenueID: "venue-1",
		Rating:  3,
		Message: "Decent",
	})

	assert.NoError(t, err)
	assert.True(t, views.IsStale(viewcache.ViewVenueDetail("venue-1")))
	assert.False(t, views.IsStale(viewcache.ViewVenueDetail("venue-2")))
}
