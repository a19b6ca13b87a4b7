package availability

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/jwalitptl/marketplace-api/pkg/errors"

	"github.com/jwalitptl/marketplace-api/internal/model"
	"github.com/jwalitptl/marketplace-api/internal/service/availability"
)

type stubAvailRepo struct {
	weekly []*model.WeeklyAvailability
}

func (s *stubAvailRepo) CreateWeekly(_ context.Context, r *model.WeeklyAvailability) error {
	s.weekly = append(s.weekly, r)
	return nil
}
func (s *stubAvailRepo) DeleteWeekly(_ context.Context, _, _ uuid.UUID) error { return nil }
func (s *stubAvailRepo) ListWeekly(_ context.Context, _ uuid.UUID) ([]*model.WeeklyAvailability, error) {
	return s.weekly, nil
}

func (s *stubAvailRepo) ListActiveByWeekday(_ context.Context, providerID uuid.UUID, weekday int) ([]*model.WeeklyAvailability, error) {
	var out []*model.WeeklyAvailability
	for _, r := range s.weekly {
		if r.ProviderID == providerID && r.Weekday == weekday {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *stubAvailRepo) CreateTimeOff(_ context.Context, _ *model.TimeOff) error  { return nil }
func (s *stubAvailRepo) DeleteTimeOff(_ context.Context, _, _ uuid.UUID) error    { return nil }
func (s *stubAvailRepo) ListTimeOff(_ context.Context, _ uuid.UUID) ([]*model.TimeOff, error) {
	return nil, nil
}

type stubBookingRepo struct{}

func (stubBookingRepo) Create(_ context.Context, _ *model.Booking, _ func(ctx context.Context) error) error {
	return nil
}
func (stubBookingRepo) Get(_ context.Context, _ uuid.UUID) (*model.Booking, error) {
	return nil, apperrors.NotFound("booking", nil)
}
func (stubBookingRepo) UpdateStatus(_ context.Context, _ uuid.UUID, _ model.BookingStatus) error {
	return nil
}
func (stubBookingRepo) List(_ context.Context, _ *model.BookingFilters) ([]*model.Booking, error) {
	return nil, nil
}
func (stubBookingRepo) ListByProviderAndDate(_ context.Context, _ uuid.UUID, _ time.Time) ([]*model.Booking, error) {
	return nil, nil
}

type stubServiceRepo struct {
	services map[uuid.UUID]*model.Service
}

func (s *stubServiceRepo) Create(_ context.Context, _ *model.Service) error { return nil }
func (s *stubServiceRepo) Get(_ context.Context, id uuid.UUID) (*model.Service, error) {
	svc, ok := s.services[id]
	if !ok {
		return nil, apperrors.NotFound("service", nil)
	}
	return svc, nil
}
func (s *stubServiceRepo) Update(_ context.Context, _ *model.Service) error { return nil }
func (s *stubServiceRepo) Delete(_ context.Context, _ uuid.UUID) error      { return nil }
func (s *stubServiceRepo) List(_ context.Context, _ *model.ServiceFilters) ([]*model.Service, error) {
	return nil, nil
}
func (s *stubServiceRepo) CreateCategory(_ context.Context, _ *model.Category) error { return nil }
func (s *stubServiceRepo) ListCategories(_ context.Context) ([]*model.Category, error) {
	return nil, nil
}

func setupSlotsRouter(t *testing.T) (*gin.Engine, uuid.UUID, uuid.UUID) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	providerID := uuid.New()
	serviceID := uuid.New()

	availRepo := &stubAvailRepo{}
	start, _ := model.ParseTimeOfDay("09:00")
	end, _ := model.ParseTimeOfDay("12:00")
	availRepo.weekly = append(availRepo.weekly, &model.WeeklyAvailability{
		Base:       model.Base{ID: uuid.New()},
		ProviderID: providerID,
		Weekday:    model.WeekdayMonday,
		StartTime:  start,
		EndTime:    end,
		IsActive:   true,
	})

	serviceRepo := &stubServiceRepo{services: map[uuid.UUID]*model.Service{
		serviceID: {Base: model.Base{ID: serviceID}, ProviderID: providerID, DurationMinutes: 60},
	}}

	svc := availability.NewService(availRepo, stubBookingRepo{}, serviceRepo)
	h := NewHandler(svc)

	engine := gin.New()
	h.RegisterPublicRoutes(engine.Group(""), nil)
	return engine, providerID, serviceID
}

func TestGetSlots(t *testing.T) {
	engine, providerID, serviceID := setupSlotsRouter(t)

	url := fmt.Sprintf("/providers/%s/slots?service_id=%s&date=2025-03-10", providerID, serviceID)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Status string   `json:"status"`
		Data   []string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Len(t, resp.Data, 5) // 09:00 .. 11:00 at 30 minute steps
}

func TestGetSlotsInvalidDate(t *testing.T) {
	engine, providerID, serviceID := setupSlotsRouter(t)

	url := fmt.Sprintf("/providers/%s/slots?service_id=%s&date=10-03-2025", providerID, serviceID)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetSlotsUnknownService(t *testing.T) {
	engine, providerID, _ := setupSlotsRouter(t)

	url := fmt.Sprintf("/providers/%s/slots?service_id=%s&date=2025-03-10", providerID, uuid.New())
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetSlotsUnknownProviderEmptyList(t *testing.T) {
	engine, _, serviceID := setupSlotsRouter(t)

	url := fmt.Sprintf("/providers/%s/slots?service_id=%s&date=2025-03-10", uuid.New(), serviceID)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Data)
}

func TestGetSlotsInvalidInterval(t *testing.T) {
	engine, providerID, serviceID := setupSlotsRouter(t)

	url := fmt.Sprintf("/providers/%s/slots?service_id=%s&date=2025-03-10&interval_minutes=zero", providerID, serviceID)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
