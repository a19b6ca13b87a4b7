package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	apperrors "github.com/jwalitptl/marketplace-api/pkg/errors"
	"github.com/jwalitptl/marketplace-api/pkg/messaging"

	"github.com/jwalitptl/marketplace-api/internal/email"
	"github.com/jwalitptl/marketplace-api/internal/model"
	"github.com/jwalitptl/marketplace-api/internal/repository"
	"github.com/jwalitptl/marketplace-api/internal/service/availability"
)

type Service struct {
	repo        repository.BookingRepository
	serviceRepo repository.ServiceRepository
	userRepo    repository.UserRepository
	availSvc    *availability.Service
	broker      messaging.Broker
	emailSvc    email.Service
}

func NewService(repo repository.BookingRepository, serviceRepo repository.ServiceRepository,
	userRepo repository.UserRepository, availSvc *availability.Service,
	broker messaging.Broker, emailSvc email.Service) *Service {
	return &Service{
		repo:        repo,
		serviceRepo: serviceRepo,
		userRepo:    userRepo,
		availSvc:    availSvc,
		broker:      broker,
		emailSvc:    emailSvc,
	}
}

// CreateBooking runs the authoritative three-way check for a requested slot:
// containment in a weekly window, no overlap with existing occupancy, no
// time-off block. The occupancy check is repeated inside the store's
// per-provider/day lock so two concurrent requests for overlapping slots
// cannot both commit; the loser sees the winner's row and is rejected.
func (s *Service) CreateBooking(ctx context.Context, customerID uuid.UUID, req *model.CreateBookingRequest) (*model.Booking, error) {
	svc, err := s.serviceRepo.Get(ctx, req.ServiceID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NotFound("service", err)
		}
		return nil, fmt.Errorf("failed to fetch service: %w", err)
	}

	provider, err := s.userRepo.Get(ctx, req.ProviderID)
	if err != nil || !provider.IsProvider() {
		return nil, apperrors.NotFound("provider", err)
	}

	bookingDate, err := time.Parse(model.DateOnly, req.BookingDate)
	if err != nil {
		return nil, apperrors.BadRequest("invalid booking_date, use YYYY-MM-DD", err)
	}
	if !req.BookingTime.Valid() {
		return nil, apperrors.BadRequest("invalid booking_time", nil)
	}

	requestedStart := req.BookingTime.On(bookingDate)
	requested := availability.Interval{
		Start: requestedStart,
		End:   requestedStart.Add(time.Duration(svc.EffectiveDuration()) * time.Minute),
	}

	windows, err := s.availSvc.WindowsForDate(ctx, req.ProviderID, bookingDate)
	if err != nil {
		return nil, err
	}
	if len(windows) == 0 {
		return nil, apperrors.Rejected(apperrors.ReasonNoAvailability, "provider has no availability on this day")
	}

	contained := false
	for _, w := range windows {
		if w.Contains(requested) {
			contained = true
			break
		}
	}
	if !contained {
		return nil, apperrors.Rejected(apperrors.ReasonOutsideWindow, "requested time is outside provider availability")
	}

	booking := &model.Booking{
		CustomerID:  customerID,
		ProviderID:  req.ProviderID,
		ServiceID:   req.ServiceID,
		BookingDate: bookingDate,
		BookingTime: req.BookingTime,
		Address:     req.Address,
		Amount:      req.Amount,
		Status:      model.BookingStatusPending,
	}

	err = s.repo.Create(ctx, booking, func(ctx context.Context) error {
		occupied, err := s.availSvc.OccupiedIntervals(ctx, req.ProviderID, bookingDate)
		if err != nil {
			return err
		}
		for _, o := range occupied {
			if requested.Overlaps(o) {
				return apperrors.Rejected(apperrors.ReasonOverlap, "requested time overlaps an existing booking")
			}
		}

		blocked, err := s.availSvc.IsBlockedByTimeOff(ctx, req.ProviderID, requested)
		if err != nil {
			return err
		}
		if blocked {
			return apperrors.Rejected(apperrors.ReasonTimeOff, "requested time falls during provider time off")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, messaging.ChannelBookingCreated, booking)
	s.notifyCustomer(ctx, customerID, booking, true)

	return booking, nil
}

// Accept moves a pending booking to accepted. Provider action.
func (s *Service) Accept(ctx context.Context, providerID, bookingID uuid.UUID) (*model.Booking, error) {
	return s.transition(ctx, bookingID, model.BookingStatusAccepted, providerID, uuid.Nil)
}

// Reject moves a pending booking to rejected. Provider action.
func (s *Service) Reject(ctx context.Context, providerID, bookingID uuid.UUID) (*model.Booking, error) {
	return s.transition(ctx, bookingID, model.BookingStatusRejected, providerID, uuid.Nil)
}

// Complete moves an accepted booking to completed. Provider action.
func (s *Service) Complete(ctx context.Context, providerID, bookingID uuid.UUID) (*model.Booking, error) {
	return s.transition(ctx, bookingID, model.BookingStatusCompleted, providerID, uuid.Nil)
}

// Cancel moves a pending booking to canceled. Customer action.
func (s *Service) Cancel(ctx context.Context, customerID, bookingID uuid.UUID) (*model.Booking, error) {
	return s.transition(ctx, bookingID, model.BookingStatusCanceled, uuid.Nil, customerID)
}

func (s *Service) transition(ctx context.Context, bookingID uuid.UUID, next model.BookingStatus, providerID, customerID uuid.UUID) (*model.Booking, error) {
	booking, err := s.repo.Get(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if providerID != uuid.Nil && booking.ProviderID != providerID {
		return nil, apperrors.Forbidden("not your booking")
	}
	if customerID != uuid.Nil && booking.CustomerID != customerID {
		return nil, apperrors.Forbidden("not your booking")
	}

	if !booking.Status.CanTransitionTo(next) {
		return nil, apperrors.BadRequest(
			fmt.Sprintf("invalid state transition: %s -> %s", booking.Status, next), nil)
	}

	if err := s.repo.UpdateStatus(ctx, bookingID, next); err != nil {
		return nil, err
	}
	booking.Status = next

	s.publishEvent(ctx, messaging.ChannelBookingTransition, booking)
	s.notifyCustomer(ctx, booking.CustomerID, booking, false)

	return booking, nil
}

func (s *Service) ListForCustomer(ctx context.Context, customerID uuid.UUID) ([]*model.Booking, error) {
	return s.repo.List(ctx, &model.BookingFilters{CustomerID: customerID})
}

func (s *Service) ListForProvider(ctx context.Context, providerID uuid.UUID) ([]*model.Booking, error) {
	return s.repo.List(ctx, &model.BookingFilters{ProviderID: providerID})
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	return s.repo.Get(ctx, id)
}

// publishEvent is best effort; a broker outage must not fail the booking.
func (s *Service) publishEvent(ctx context.Context, channel string, booking *model.Booking) {
	if s.broker == nil {
		return
	}
	msg := messaging.Message{Type: channel, Payload: booking}
	if err := s.broker.Publish(ctx, channel, msg); err != nil {
		log.Warn().Err(err).Str("channel", channel).Str("booking_id", booking.ID.String()).
			Msg("failed to publish booking event")
	}
}

func (s *Service) notifyCustomer(ctx context.Context, customerID uuid.UUID, booking *model.Booking, created bool) {
	if s.emailSvc == nil {
		return
	}
	customer, err := s.userRepo.Get(ctx, customerID)
	if err != nil {
		log.Warn().Err(err).Str("customer_id", customerID.String()).Msg("failed to resolve customer for notification")
		return
	}

	if created {
		err = s.emailSvc.SendBookingCreated(ctx, customer.Email, booking)
	} else {
		err = s.emailSvc.SendBookingStatusChanged(ctx, customer.Email, booking)
	}
	if err != nil {
		log.Warn().Err(err).Str("booking_id", booking.ID.String()).Msg("failed to send booking notification")
	}
}
