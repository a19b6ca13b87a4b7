package review

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/jwalitptl/marketplace-api/pkg/errors"

	"github.com/jwalitptl/marketplace-api/internal/model"
)

type memReviewRepo struct {
	reviews map[uuid.UUID]*model.Review
}

func (m *memReviewRepo) Create(_ context.Context, r *model.Review) error {
	r.ID = uuid.New()
	m.reviews[r.ID] = r
	return nil
}

func (m *memReviewRepo) Get(_ context.Context, id uuid.UUID) (*model.Review, error) {
	r, ok := m.reviews[id]
	if !ok {
		return nil, apperrors.NotFound("review", nil)
	}
	return r, nil
}

func (m *memReviewRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.reviews, id)
	return nil
}

func (m *memReviewRepo) ListByProvider(_ context.Context, providerID uuid.UUID) ([]*model.Review, error) {
	var out []*model.Review
	for _, r := range m.reviews {
		if r.ProviderID == providerID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memReviewRepo) GetByBooking(_ context.Context, bookingID uuid.UUID) (*model.Review, error) {
	for _, r := range m.reviews {
		if r.BookingID == bookingID {
			return r, nil
		}
	}
	return nil, apperrors.NotFound("review", nil)
}

type memBookingRepo struct {
	bookings map[uuid.UUID]*model.Booking
}

func (m *memBookingRepo) Create(_ context.Context, b *model.Booking, verify func(ctx context.Context) error) error {
	b.ID = uuid.New()
	m.bookings[b.ID] = b
	return nil
}

func (m *memBookingRepo) Get(_ context.Context, id uuid.UUID) (*model.Booking, error) {
	b, ok := m.bookings[id]
	if !ok {
		return nil, apperrors.NotFound("booking", nil)
	}
	return b, nil
}

func (m *memBookingRepo) UpdateStatus(_ context.Context, id uuid.UUID, status model.BookingStatus) error {
	if b, ok := m.bookings[id]; ok {
		b.Status = status
	}
	return nil
}

func (m *memBookingRepo) List(_ context.Context, _ *model.BookingFilters) ([]*model.Booking, error) {
	return nil, nil
}

func (m *memBookingRepo) ListByProviderAndDate(_ context.Context, _ uuid.UUID, _ time.Time) ([]*model.Booking, error) {
	return nil, nil
}

type ratingRecorder struct {
	providerID   uuid.UUID
	avgRating    float64
	totalReviews int
	calls        int
}

func (r *ratingRecorder) Create(_ context.Context, _ *model.User) error { return nil }
func (r *ratingRecorder) Get(_ context.Context, _ uuid.UUID) (*model.User, error) {
	return nil, apperrors.NotFound("user", nil)
}
func (r *ratingRecorder) GetByEmail(_ context.Context, _ string) (*model.User, error) {
	return nil, apperrors.NotFound("user", nil)
}
func (r *ratingRecorder) Update(_ context.Context, _ *model.User) error { return nil }

func (r *ratingRecorder) UpdateRating(_ context.Context, providerID uuid.UUID, avg float64, total int) error {
	r.providerID = providerID
	r.avgRating = avg
	r.totalReviews = total
	r.calls++
	return nil
}

func (r *ratingRecorder) List(_ context.Context, _ *model.UserFilters) ([]*model.User, error) {
	return nil, nil
}

type fixture struct {
	svc         *Service
	reviewRepo  *memReviewRepo
	bookingRepo *memBookingRepo
	ratings     *ratingRecorder
	customerID  uuid.UUID
	providerID  uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	reviewRepo := &memReviewRepo{reviews: make(map[uuid.UUID]*model.Review)}
	bookingRepo := &memBookingRepo{bookings: make(map[uuid.UUID]*model.Booking)}
	ratings := &ratingRecorder{}
	return &fixture{
		svc:         NewService(reviewRepo, bookingRepo, ratings),
		reviewRepo:  reviewRepo,
		bookingRepo: bookingRepo,
		ratings:     ratings,
		customerID:  uuid.New(),
		providerID:  uuid.New(),
	}
}

func (fx *fixture) addBooking(t *testing.T, status model.BookingStatus) uuid.UUID {
	t.Helper()
	b := &model.Booking{
		CustomerID: fx.customerID,
		ProviderID: fx.providerID,
		Status:     status,
	}
	require.NoError(t, fx.bookingRepo.Create(context.Background(), b, nil))
	return b.ID
}

func TestCreateReview(t *testing.T) {
	fx := newFixture(t)
	bookingID := fx.addBooking(t, model.BookingStatusCompleted)

	r, err := fx.svc.CreateReview(context.Background(), fx.customerID, &model.CreateReviewRequest{
		BookingID: bookingID,
		Rating:    4,
		Comment:   "great work",
	})
	require.NoError(t, err)
	assert.Equal(t, fx.providerID, r.ProviderID)
	assert.Equal(t, 4, r.Rating)

	assert.Equal(t, 1, fx.ratings.calls)
	assert.Equal(t, 4.0, fx.ratings.avgRating)
	assert.Equal(t, 1, fx.ratings.totalReviews)
}

func TestCreateReviewAveragesAcrossBookings(t *testing.T) {
	fx := newFixture(t)

	for _, rating := range []int{5, 4, 3} {
		bookingID := fx.addBooking(t, model.BookingStatusCompleted)
		_, err := fx.svc.CreateReview(context.Background(), fx.customerID, &model.CreateReviewRequest{
			BookingID: bookingID,
			Rating:    rating,
		})
		require.NoError(t, err)
	}

	assert.Equal(t, 3, fx.ratings.totalReviews)
	assert.InDelta(t, 4.0, fx.ratings.avgRating, 1e-9)
}

func TestCreateReviewRequiresCompletedBooking(t *testing.T) {
	fx := newFixture(t)
	bookingID := fx.addBooking(t, model.BookingStatusAccepted)

	_, err := fx.svc.CreateReview(context.Background(), fx.customerID, &model.CreateReviewRequest{
		BookingID: bookingID,
		Rating:    5,
	})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrBadRequest, appErr.Code)
}

func TestCreateReviewOwnershipEnforced(t *testing.T) {
	fx := newFixture(t)
	bookingID := fx.addBooking(t, model.BookingStatusCompleted)

	_, err := fx.svc.CreateReview(context.Background(), uuid.New(), &model.CreateReviewRequest{
		BookingID: bookingID,
		Rating:    5,
	})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrForbidden, appErr.Code)
}

func TestCreateReviewRejectsDuplicate(t *testing.T) {
	fx := newFixture(t)
	bookingID := fx.addBooking(t, model.BookingStatusCompleted)

	_, err := fx.svc.CreateReview(context.Background(), fx.customerID, &model.CreateReviewRequest{
		BookingID: bookingID,
		Rating:    5,
	})
	require.NoError(t, err)

	_, err = fx.svc.CreateReview(context.Background(), fx.customerID, &model.CreateReviewRequest{
		BookingID: bookingID,
		Rating:    1,
	})
	require.Error(t, err)
}

func TestDeleteReviewRefreshesAggregate(t *testing.T) {
	fx := newFixture(t)
	bookingID := fx.addBooking(t, model.BookingStatusCompleted)

	r, err := fx.svc.CreateReview(context.Background(), fx.customerID, &model.CreateReviewRequest{
		BookingID: bookingID,
		Rating:    5,
	})
	require.NoError(t, err)

	require.NoError(t, fx.svc.DeleteReview(context.Background(), r.ID))
	assert.Equal(t, 0, fx.ratings.totalReviews)
	assert.Equal(t, 0.0, fx.ratings.avgRating)
}
