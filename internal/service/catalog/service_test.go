package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/jwalitptl/marketplace-api/pkg/errors"

	"github.com/jwalitptl/marketplace-api/internal/model"
)

type memServiceRepo struct {
	services   map[uuid.UUID]*model.Service
	categories []*model.Category
}

func newMemServiceRepo() *memServiceRepo {
	return &memServiceRepo{services: make(map[uuid.UUID]*model.Service)}
}

func (m *memServiceRepo) Create(_ context.Context, svc *model.Service) error {
	svc.ID = uuid.New()
	m.services[svc.ID] = svc
	return nil
}

func (m *memServiceRepo) Get(_ context.Context, id uuid.UUID) (*model.Service, error) {
	svc, ok := m.services[id]
	if !ok {
		return nil, apperrors.NotFound("service", nil)
	}
	return svc, nil
}

func (m *memServiceRepo) Update(_ context.Context, svc *model.Service) error {
	m.services[svc.ID] = svc
	return nil
}

func (m *memServiceRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.services, id)
	return nil
}

func (m *memServiceRepo) List(_ context.Context, filters *model.ServiceFilters) ([]*model.Service, error) {
	var out []*model.Service
	for _, s := range m.services {
		if filters.ActiveOnly && !s.IsActive {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (m *memServiceRepo) CreateCategory(_ context.Context, c *model.Category) error {
	c.ID = uuid.New()
	m.categories = append(m.categories, c)
	return nil
}

func (m *memServiceRepo) ListCategories(_ context.Context) ([]*model.Category, error) {
	return m.categories, nil
}

type memUserRepo struct {
	users map[uuid.UUID]*model.User
}

func (m *memUserRepo) Create(_ context.Context, user *model.User) error {
	user.ID = uuid.New()
	m.users[user.ID] = user
	return nil
}

func (m *memUserRepo) Get(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, apperrors.NotFound("user", nil)
	}
	return u, nil
}

func (m *memUserRepo) GetByEmail(_ context.Context, _ string) (*model.User, error) {
	return nil, apperrors.NotFound("user", nil)
}

func (m *memUserRepo) Update(_ context.Context, _ *model.User) error { return nil }

func (m *memUserRepo) UpdateRating(_ context.Context, _ uuid.UUID, _ float64, _ int) error {
	return nil
}

func (m *memUserRepo) List(_ context.Context, _ *model.UserFilters) ([]*model.User, error) {
	return nil, nil
}

func newFixture(t *testing.T) (*Service, uuid.UUID) {
	t.Helper()
	userRepo := &memUserRepo{users: make(map[uuid.UUID]*model.User)}
	provider := &model.User{Email: "p@example.com", Role: model.RoleProvider}
	require.NoError(t, userRepo.Create(context.Background(), provider))
	return NewService(newMemServiceRepo(), userRepo), provider.ID
}

func TestCreateServiceDefaultsDuration(t *testing.T) {
	svc, providerID := newFixture(t)

	created, err := svc.CreateService(context.Background(), providerID, &model.CreateServiceRequest{
		Name:  "Plumbing",
		Price: 120,
	})
	require.NoError(t, err)
	assert.Equal(t, model.DefaultServiceDuration, created.DurationMinutes)
	assert.True(t, created.IsActive)
}

func TestCreateServiceRequiresProvider(t *testing.T) {
	svc, _ := newFixture(t)

	_, err := svc.CreateService(context.Background(), uuid.New(), &model.CreateServiceRequest{
		Name:  "Plumbing",
		Price: 120,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestUpdateServiceOwnership(t *testing.T) {
	svc, providerID := newFixture(t)

	created, err := svc.CreateService(context.Background(), providerID, &model.CreateServiceRequest{
		Name:  "Plumbing",
		Price: 120,
	})
	require.NoError(t, err)

	newName := "Emergency Plumbing"
	_, err = svc.UpdateService(context.Background(), uuid.New(), created.ID, &model.UpdateServiceRequest{Name: &newName})
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrForbidden, appErr.Code)

	updated, err := svc.UpdateService(context.Background(), providerID, created.ID, &model.UpdateServiceRequest{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, newName, updated.Name)
}

func TestDeleteServiceOwnership(t *testing.T) {
	svc, providerID := newFixture(t)

	created, err := svc.CreateService(context.Background(), providerID, &model.CreateServiceRequest{
		Name:  "Plumbing",
		Price: 120,
	})
	require.NoError(t, err)

	require.Error(t, svc.DeleteService(context.Background(), uuid.New(), created.ID))
	require.NoError(t, svc.DeleteService(context.Background(), providerID, created.ID))

	_, err = svc.GetService(context.Background(), created.ID)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestCreateCategoryValidation(t *testing.T) {
	svc, _ := newFixture(t)

	err := svc.CreateCategory(context.Background(), &model.Category{})
	require.Error(t, err)

	require.NoError(t, svc.CreateCategory(context.Background(), &model.Category{Name: "Cleaning"}))
	cats, err := svc.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Len(t, cats, 1)
}
