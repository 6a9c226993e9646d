package contacts

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, contact *EmergencyContact) error {
	args := m.Called(ctx, contact)
	return args.Error(0)
}

func (m *MockRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]EmergencyContact, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]EmergencyContact), args.Error(1)
}

func (m *MockRepository) Get(ctx context.Context, userID, id uuid.UUID) (*EmergencyContact, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*EmergencyContact), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, contact *EmergencyContact) error {
	args := m.Called(ctx, contact)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockRepository) ClearPrimary(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func TestCreatePrimaryDemotesExisting(t *testing.T) {
	userID := uuid.New()
	repo := new(MockRepository)
	service := NewService(repo)

	repo.On("ClearPrimary", mock.Anything, userID).Return(nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	contact, err := service.Create(context.Background(), userID, ContactRequest{
		Name:      "Mum",
		Phone:     "+447700900001",
		IsPrimary: true,
	})
	require.NoError(t, err)

	assert.True(t, contact.IsPrimary)
	assert.Equal(t, userID, contact.UserID)
	repo.AssertCalled(t, "ClearPrimary", mock.Anything, userID)
}

func TestCreateNonPrimarySkipsDemotion(t *testing.T) {
	repo := new(MockRepository)
	service := NewService(repo)

	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	_, err := service.Create(context.Background(), uuid.New(), ContactRequest{
		Name:  "Flatmate",
		Phone: "+447700900002",
	})
	require.NoError(t, err)

	repo.AssertNotCalled(t, "ClearPrimary", mock.Anything, mock.Anything)
}

func TestUpdatePromotionDemotesExisting(t *testing.T) {
	userID := uuid.New()
	existing := &EmergencyContact{ID: uuid.New(), UserID: userID, Name: "Mum", IsPrimary: false}
	repo := new(MockRepository)
	service := NewService(repo)

	repo.On("Get", mock.Anything, userID, existing.ID).Return(existing, nil)
	repo.On("ClearPrimary", mock.Anything, userID).Return(nil)
	repo.On("Update", mock.Anything, existing).Return(nil)

	updated, err := service.Update(context.Background(), userID, existing.ID, ContactRequest{
		Name:      "Mum",
		Phone:     "+447700900001",
		IsPrimary: true,
	})
	require.NoError(t, err)

	assert.True(t, updated.IsPrimary)
	repo.AssertCalled(t, "ClearPrimary", mock.Anything, userID)
}

func TestUpdateAlreadyPrimarySkipsDemotion(t *testing.T) {
	userID := uuid.New()
	existing := &EmergencyContact{ID: uuid.New(), UserID: userID, Name: "Mum", IsPrimary: true}
	repo := new(MockRepository)
	service := NewService(repo)

	repo.On("Get", mock.Anything, userID, existing.ID).Return(existing, nil)
	repo.On("Update", mock.Anything, existing).Return(nil)

	_, err := service.Update(context.Background(), userID, existing.ID, ContactRequest{
		Name:      "Mum",
		IsPrimary: true,
	})
	require.NoError(t, err)

	repo.AssertNotCalled(t, "ClearPrimary", mock.Anything, mock.Anything)
}

func TestUpdateUnknownContact(t *testing.T) {
	userID := uuid.New()
	repo := new(MockRepository)
	service := NewService(repo)

	repo.On("Get", mock.Anything, userID, mock.Anything).Return(nil, ErrContactNotFound)

	_, err := service.Update(context.Background(), userID, uuid.New(), ContactRequest{Name: "X"})

	assert.ErrorIs(t, err, ErrContactNotFound)
}
