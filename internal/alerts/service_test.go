package alerts

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"homesafe/safety-portal-backend/internal/auth"
	"homesafe/safety-portal-backend/internal/config"
	"homesafe/safety-portal-backend/internal/contacts"
)

type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) Create(ctx context.Context, contact *contacts.EmergencyContact) error {
	args := m.Called(ctx, contact)
	return args.Error(0)
}

func (m *MockContactRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]contacts.EmergencyContact, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]contacts.EmergencyContact), args.Error(1)
}

func (m *MockContactRepository) Get(ctx context.Context, userID, id uuid.UUID) (*contacts.EmergencyContact, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contacts.EmergencyContact), args.Error(1)
}

func (m *MockContactRepository) Update(ctx context.Context, contact *contacts.EmergencyContact) error {
	args := m.Called(ctx, contact)
	return args.Error(0)
}

func (m *MockContactRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockContactRepository) ClearPrimary(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// stubUserRepository serves a single fixed user to the auth service
type stubUserRepository struct {
	user *auth.User
}

func (s *stubUserRepository) CreateUser(ctx context.Context, user *auth.User) error { return nil }
func (s *stubUserRepository) GetUserByEmail(ctx context.Context, email string) (*auth.User, error) {
	return nil, auth.ErrUserNotFound
}
func (s *stubUserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	if s.user != nil && s.user.ID == id {
		return s.user, nil
	}
	return nil, auth.ErrUserNotFound
}
func (s *stubUserRepository) UpdateUser(ctx context.Context, user *auth.User) error { return nil }

// fakeSMS records sends and fails for phone numbers listed in failFor
type fakeSMS struct {
	mu      sync.Mutex
	sent    []string
	failFor map[string]bool
}

func (f *fakeSMS) SendSMS(ctx context.Context, to, body string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFor[to] {
		return "", errors.New("undeliverable")
	}
	f.sent = append(f.sent, to)
	return "sms-" + to, nil
}

type fakeCaller struct {
	called []string
}

func (f *fakeCaller) Call(ctx context.Context, to, message string) (string, error) {
	f.called = append(f.called, to)
	return "call-" + to, nil
}

type fakeEmail struct {
	sent []string
}

func (f *fakeEmail) SendEmail(ctx context.Context, to, subject, body string) (string, error) {
	f.sent = append(f.sent, to)
	return "email-" + to, nil
}

func testUserService(user *auth.User) *auth.Service {
	return auth.NewService(&stubUserRepository{user: user}, config.SecurityConfig{JWTSecret: "test"})
}

func testContacts(userID uuid.UUID) []contacts.EmergencyContact {
	return []contacts.EmergencyContact{
		{ID: uuid.New(), UserID: userID, Name: "Mum", Phone: "+447700900001", Email: "mum@example.com", IsPrimary: true},
		{ID: uuid.New(), UserID: userID, Name: "Flatmate", Phone: "+447700900002"},
	}
}

func TestDispatchAlertsEveryChannel(t *testing.T) {
	user := &auth.User{ID: uuid.New(), FullName: "Jane Doe", Phone: "+447700900123"}
	contactRepo := new(MockContactRepository)
	contactRepo.On("ListByUser", mock.Anything, user.ID).Return(testContacts(user.ID), nil)

	sms := &fakeSMS{}
	caller := &fakeCaller{}
	email := &fakeEmail{}
	service := NewService(contactRepo, testUserService(user), sms, caller, email, nil, zap.NewNop())

	lat, lng := 51.5074, -0.1278
	result, err := service.Dispatch(context.Background(), user.ID, DispatchRequest{
		Latitude:  &lat,
		Longitude: &lng,
		Note:      "last seen at the cinema",
	})
	require.NoError(t, err)

	assert.True(t, result.Success)
	require.Len(t, result.SMSResults, 2)
	assert.True(t, result.SMSResults[0].Success)
	assert.True(t, result.SMSResults[1].Success)
	assert.ElementsMatch(t, []string{"+447700900001", "+447700900002"}, sms.sent)

	// voice call goes to the primary contact only
	require.NotNil(t, result.CallResult)
	assert.Equal(t, "Mum", result.CallResult.Contact)
	assert.Equal(t, []string{"+447700900001"}, caller.called)

	// email only where an address is on file
	require.Len(t, result.Emails, 1)
	assert.Equal(t, []string{"mum@example.com"}, email.sent)
}

func TestDispatchNoContacts(t *testing.T) {
	user := &auth.User{ID: uuid.New(), FullName: "Jane Doe"}
	contactRepo := new(MockContactRepository)
	contactRepo.On("ListByUser", mock.Anything, user.ID).Return([]contacts.EmergencyContact{}, nil)

	service := NewService(contactRepo, testUserService(user), &fakeSMS{}, nil, nil, nil, zap.NewNop())

	_, err := service.Dispatch(context.Background(), user.ID, DispatchRequest{})

	assert.ErrorIs(t, err, ErrNoContacts)
}

func TestDispatchPartialSMSFailure(t *testing.T) {
	user := &auth.User{ID: uuid.New(), FullName: "Jane Doe"}
	contactRepo := new(MockContactRepository)
	contactRepo.On("ListByUser", mock.Anything, user.ID).Return(testContacts(user.ID), nil)

	sms := &fakeSMS{failFor: map[string]bool{"+447700900002": true}}
	service := NewService(contactRepo, testUserService(user), sms, nil, nil, nil, zap.NewNop())

	result, err := service.Dispatch(context.Background(), user.ID, DispatchRequest{})
	require.NoError(t, err)

	// one unreachable contact never stops the rest
	require.Len(t, result.SMSResults, 2)
	assert.True(t, result.SMSResults[0].Success)
	assert.False(t, result.SMSResults[1].Success)
	assert.Equal(t, "undeliverable", result.SMSResults[1].Error)
}

func TestDispatchWithoutOptionalChannels(t *testing.T) {
	user := &auth.User{ID: uuid.New(), FullName: "Jane Doe"}
	contactRepo := new(MockContactRepository)
	contactRepo.On("ListByUser", mock.Anything, user.ID).Return(testContacts(user.ID), nil)

	service := NewService(contactRepo, testUserService(user), &fakeSMS{}, nil, nil, nil, zap.NewNop())

	result, err := service.Dispatch(context.Background(), user.ID, DispatchRequest{})
	require.NoError(t, err)

	assert.Nil(t, result.CallResult)
	assert.Empty(t, result.Emails)
}

func TestSMSBody(t *testing.T) {
	lat, lng := 51.5, -0.12
	body := smsBody("Jane Doe", "+447700900123", DispatchRequest{
		Latitude:  &lat,
		Longitude: &lng,
		Note:      "meet at the station",
	})

	assert.Contains(t, body, "EMERGENCY ALERT from Jane Doe!")
	assert.Contains(t, body, "https://www.google.com/maps?q=")
	assert.Contains(t, body, "+447700900123")
	assert.Contains(t, body, "Note: meet at the station")

	body = smsBody("Jane Doe", "", DispatchRequest{})
	assert.Contains(t, body, "Location unavailable")
	assert.Contains(t, body, "No phone provided")
	assert.NotContains(t, body, "Note:")
}
