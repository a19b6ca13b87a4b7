package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/jwalitptl/marketplace-api/pkg/errors"

	"github.com/jwalitptl/marketplace-api/internal/model"
	"github.com/jwalitptl/marketplace-api/internal/repository"
)

// DefaultSlotInterval is the step between candidate slot starts when the
// caller does not pick one.
const DefaultSlotInterval = 30 // minutes

type Service struct {
	availRepo   repository.AvailabilityRepository
	bookingRepo repository.BookingRepository
	serviceRepo repository.ServiceRepository
}

func NewService(availRepo repository.AvailabilityRepository, bookingRepo repository.BookingRepository, serviceRepo repository.ServiceRepository) *Service {
	return &Service{
		availRepo:   availRepo,
		bookingRepo: bookingRepo,
		serviceRepo: serviceRepo,
	}
}

// AddWeeklyRule validates and stores a recurring weekly window.
func (s *Service) AddWeeklyRule(ctx context.Context, providerID uuid.UUID, req *model.CreateWeeklyAvailabilityRequest) (*model.WeeklyAvailability, error) {
	if !req.StartTime.Valid() || !req.EndTime.Valid() {
		return nil, apperrors.BadRequest("invalid time of day", nil)
	}
	if req.StartTime >= req.EndTime {
		return nil, apperrors.BadRequest("start_time must be before end_time", nil)
	}

	rule := &model.WeeklyAvailability{
		ProviderID: providerID,
		Weekday:    req.Weekday,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		IsActive:   true,
	}
	if req.IsActive != nil {
		rule.IsActive = *req.IsActive
	}

	if err := s.availRepo.CreateWeekly(ctx, rule); err != nil {
		return nil, fmt.Errorf("failed to create weekly rule: %w", err)
	}
	return rule, nil
}

func (s *Service) ListWeeklyRules(ctx context.Context, providerID uuid.UUID) ([]*model.WeeklyAvailability, error) {
	rules, err := s.availRepo.ListWeekly(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list weekly rules: %w", err)
	}
	return rules, nil
}

func (s *Service) RemoveWeeklyRule(ctx context.Context, providerID, id uuid.UUID) error {
	return s.availRepo.DeleteWeekly(ctx, providerID, id)
}

// AddTimeOff validates and stores a date-ranged block.
func (s *Service) AddTimeOff(ctx context.Context, providerID uuid.UUID, req *model.CreateTimeOffRequest) (*model.TimeOff, error) {
	startDate, err := time.Parse(model.DateOnly, req.StartDate)
	if err != nil {
		return nil, apperrors.BadRequest("invalid start_date, use YYYY-MM-DD", err)
	}
	endDate, err := time.Parse(model.DateOnly, req.EndDate)
	if err != nil {
		return nil, apperrors.BadRequest("invalid end_date, use YYYY-MM-DD", err)
	}
	if startDate.After(endDate) {
		return nil, apperrors.BadRequest("start_date must be on or before end_date", nil)
	}
	if req.StartTime != nil && req.EndTime != nil && *req.StartTime >= *req.EndTime {
		return nil, apperrors.BadRequest("start_time must be before end_time", nil)
	}

	rule := &model.TimeOff{
		ProviderID: providerID,
		StartDate:  startDate,
		EndDate:    endDate,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Reason:     req.Reason,
	}
	if err := s.availRepo.CreateTimeOff(ctx, rule); err != nil {
		return nil, fmt.Errorf("failed to create time off: %w", err)
	}
	return rule, nil
}

func (s *Service) ListTimeOff(ctx context.Context, providerID uuid.UUID) ([]*model.TimeOff, error) {
	rules, err := s.availRepo.ListTimeOff(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list time offs: %w", err)
	}
	return rules, nil
}

func (s *Service) RemoveTimeOff(ctx context.Context, providerID, id uuid.UUID) error {
	return s.availRepo.DeleteTimeOff(ctx, providerID, id)
}

// WindowsForDate materializes the provider's active weekly rules for the
// date's ISO weekday into concrete intervals. Overlapping windows are kept
// as independent entries.
func (s *Service) WindowsForDate(ctx context.Context, providerID uuid.UUID, date time.Time) ([]Interval, error) {
	rules, err := s.availRepo.ListActiveByWeekday(ctx, providerID, model.ISOWeekday(date))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch weekly rules: %w", err)
	}

	windows := make([]Interval, 0, len(rules))
	for _, r := range rules {
		windows = append(windows, Interval{
			Start: r.StartTime.On(date),
			End:   r.EndTime.On(date),
		})
	}
	return windows, nil
}

// OccupiedIntervals materializes the provider's booked intervals on a date.
// Duration comes from a live lookup of each booking's service; a missing or
// unset duration falls back to the default. Bookings whose status no longer
// occupies a slot (canceled, rejected) are skipped.
func (s *Service) OccupiedIntervals(ctx context.Context, providerID uuid.UUID, date time.Time) ([]Interval, error) {
	bookings, err := s.bookingRepo.ListByProviderAndDate(ctx, providerID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}

	var occupied []Interval
	for _, b := range bookings {
		if !b.Status.Occupies() {
			continue
		}
		duration := model.DefaultServiceDuration
		if svc, err := s.serviceRepo.Get(ctx, b.ServiceID); err == nil {
			duration = svc.EffectiveDuration()
		} else if !apperrors.IsNotFound(err) {
			return nil, fmt.Errorf("failed to resolve service duration: %w", err)
		}

		start := b.BookingTime.On(date)
		occupied = append(occupied, Interval{
			Start: start,
			End:   start.Add(time.Duration(duration) * time.Minute),
		})
	}
	return occupied, nil
}

// IsBlockedByTimeOff reports whether any of the provider's time-off rules
// blocks the slot.
func (s *Service) IsBlockedByTimeOff(ctx context.Context, providerID uuid.UUID, slot Interval) (bool, error) {
	rules, err := s.availRepo.ListTimeOff(ctx, providerID)
	if err != nil {
		return false, fmt.Errorf("failed to fetch time offs: %w", err)
	}
	return blockedByAny(rules, slot), nil
}

// blockedByAny walks every date in each rule's range and tests the anchored
// block against the slot. O(days-in-rule) per rule; fine for the short
// vacation-sized ranges providers actually create, a pre-expanded index
// would be needed for multi-year blocks.
func blockedByAny(rules []*model.TimeOff, slot Interval) bool {
	for _, r := range rules {
		for d := r.StartDate; !d.After(r.EndDate); d = d.AddDate(0, 0, 1) {
			start, end := r.BlockOn(d)
			if slot.Overlaps(Interval{Start: start, End: end}) {
				return true
			}
		}
	}
	return false
}

// GenerateSlots enumerates available booking start times for a provider,
// service and date, stepping by intervalMinutes. Returned values are RFC3339
// strings in ascending order per window; windows are processed independently
// and are not merged, so overlapping windows may repeat a start time.
//
// An unknown service is an error; an unknown provider simply has no windows
// and yields an empty list.
func (s *Service) GenerateSlots(ctx context.Context, providerID, serviceID uuid.UUID, date time.Time, intervalMinutes int) ([]string, error) {
	if intervalMinutes <= 0 {
		intervalMinutes = DefaultSlotInterval
	}

	svc, err := s.serviceRepo.Get(ctx, serviceID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to fetch service: %w", err)
	}
	duration := time.Duration(svc.EffectiveDuration()) * time.Minute
	step := time.Duration(intervalMinutes) * time.Minute

	windows, err := s.WindowsForDate(ctx, providerID, date)
	if err != nil {
		return nil, err
	}

	// Fetched once for the whole date, not per candidate.
	occupied, err := s.OccupiedIntervals(ctx, providerID, date)
	if err != nil {
		return nil, err
	}
	timeOffs, err := s.availRepo.ListTimeOff(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch time offs: %w", err)
	}

	slots := []string{}
	for _, w := range windows {
		// The slot must fit entirely inside the window. A conflicting
		// candidate is dropped, the cursor still advances by one step.
		for cursor := w.Start; !cursor.Add(duration).After(w.End); cursor = cursor.Add(step) {
			slot := Interval{Start: cursor, End: cursor.Add(duration)}
			if overlapsAny(slot, occupied) {
				continue
			}
			if blockedByAny(timeOffs, slot) {
				continue
			}
			slots = append(slots, cursor.Format(time.RFC3339))
		}
	}
	return slots, nil
}
