package review

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	apperrors "github.com/jwalitptl/marketplace-api/pkg/errors"

	"github.com/jwalitptl/marketplace-api/internal/model"
	"github.com/jwalitptl/marketplace-api/internal/repository"
)

type Service struct {
	repo        repository.ReviewRepository
	bookingRepo repository.BookingRepository
	userRepo    repository.UserRepository
}

func NewService(repo repository.ReviewRepository, bookingRepo repository.BookingRepository, userRepo repository.UserRepository) *Service {
	return &Service{
		repo:        repo,
		bookingRepo: bookingRepo,
		userRepo:    userRepo,
	}
}

// CreateReview stores a review for a completed booking and refreshes the
// provider's rating aggregate.
func (s *Service) CreateReview(ctx context.Context, customerID uuid.UUID, req *model.CreateReviewRequest) (*model.Review, error) {
	booking, err := s.bookingRepo.Get(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}
	if booking.CustomerID != customerID {
		return nil, apperrors.Forbidden("not your booking")
	}
	if booking.Status != model.BookingStatusCompleted {
		return nil, apperrors.BadRequest("only completed bookings can be reviewed", nil)
	}

	if existing, err := s.repo.GetByBooking(ctx, req.BookingID); err == nil && existing != nil {
		return nil, apperrors.BadRequest("booking already reviewed", nil)
	} else if err != nil && !apperrors.IsNotFound(err) {
		return nil, err
	}

	review := &model.Review{
		BookingID:  req.BookingID,
		CustomerID: customerID,
		ProviderID: booking.ProviderID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}
	if err := s.repo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	if err := s.recalculateProviderRating(ctx, booking.ProviderID); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *Service) ListProviderReviews(ctx context.Context, providerID uuid.UUID) ([]*model.Review, error) {
	return s.repo.ListByProvider(ctx, providerID)
}

// DeleteReview removes a review (admin moderation) and refreshes the
// provider aggregate.
func (s *Service) DeleteReview(ctx context.Context, id uuid.UUID) error {
	review, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	return s.recalculateProviderRating(ctx, review.ProviderID)
}

// recalculateProviderRating recomputes the aggregate from a full scan of the
// provider's reviews on every write. Simple and drift-free at this scale; an
// incremental counter only becomes worth it when review volume grows.
func (s *Service) recalculateProviderRating(ctx context.Context, providerID uuid.UUID) error {
	reviews, err := s.repo.ListByProvider(ctx, providerID)
	if err != nil {
		return fmt.Errorf("failed to list reviews for rating: %w", err)
	}

	var avg float64
	if len(reviews) > 0 {
		sum := 0
		for _, r := range reviews {
			sum += r.Rating
		}
		avg = float64(sum) / float64(len(reviews))
	}

	if err := s.userRepo.UpdateRating(ctx, providerID, avg, len(reviews)); err != nil {
		return fmt.Errorf("failed to update provider rating: %w", err)
	}
	return nil
}
