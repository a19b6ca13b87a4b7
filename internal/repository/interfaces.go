package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/marketplace-api/internal/model"
)

// All repository interfaces in one file
type (
	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		Get(ctx context.Context, id uuid.UUID) (*model.User, error)
		GetByEmail(ctx context.Context, email string) (*model.User, error)
		Update(ctx context.Context, user *model.User) error
		UpdateRating(ctx context.Context, providerID uuid.UUID, avgRating float64, totalReviews int) error
		List(ctx context.Context, filters *model.UserFilters) ([]*model.User, error)
	}

	ServiceRepository interface {
		Create(ctx context.Context, service *model.Service) error
		Get(ctx context.Context, id uuid.UUID) (*model.Service, error)
		Update(ctx context.Context, service *model.Service) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, filters *model.ServiceFilters) ([]*model.Service, error)
		CreateCategory(ctx context.Context, category *model.Category) error
		ListCategories(ctx context.Context) ([]*model.Category, error)
	}

	AvailabilityRepository interface {
		CreateWeekly(ctx context.Context, rule *model.WeeklyAvailability) error
		DeleteWeekly(ctx context.Context, providerID, id uuid.UUID) error
		ListWeekly(ctx context.Context, providerID uuid.UUID) ([]*model.WeeklyAvailability, error)
		ListActiveByWeekday(ctx context.Context, providerID uuid.UUID, weekday int) ([]*model.WeeklyAvailability, error)
		CreateTimeOff(ctx context.Context, rule *model.TimeOff) error
		DeleteTimeOff(ctx context.Context, providerID, id uuid.UUID) error
		ListTimeOff(ctx context.Context, providerID uuid.UUID) ([]*model.TimeOff, error)
	}

	BookingRepository interface {
		// Create inserts the booking inside a transaction that holds a
		// per-provider, per-day lock; verify runs once the lock is held so a
		// conflict check and the insert behave as one atomic step.
		Create(ctx context.Context, booking *model.Booking, verify func(ctx context.Context) error) error
		Get(ctx context.Context, id uuid.UUID) (*model.Booking, error)
		UpdateStatus(ctx context.Context, id uuid.UUID, status model.BookingStatus) error
		List(ctx context.Context, filters *model.BookingFilters) ([]*model.Booking, error)
		ListByProviderAndDate(ctx context.Context, providerID uuid.UUID, date time.Time) ([]*model.Booking, error)
	}

	ReviewRepository interface {
		Create(ctx context.Context, review *model.Review) error
		Get(ctx context.Context, id uuid.UUID) (*model.Review, error)
		Delete(ctx context.Context, id uuid.UUID) error
		ListByProvider(ctx context.Context, providerID uuid.UUID) ([]*model.Review, error)
		GetByBooking(ctx context.Context, bookingID uuid.UUID) (*model.Review, error)
	}
)
