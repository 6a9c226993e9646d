package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"homesafe/safety-portal-backend/internal/config"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateUser(ctx context.Context, user *User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockRepository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) UpdateUser(ctx context.Context, user *User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func newTestService(repo *MockRepository) *Service {
	return NewService(repo, config.SecurityConfig{
		JWTSecret: "test-secret",
		TokenTTL:  time.Hour,
	})
}

func TestRegister(t *testing.T) {
	repo := new(MockRepository)
	service := newTestService(repo)

	repo.On("GetUserByEmail", mock.Anything, "jane@example.com").Return(nil, ErrUserNotFound)
	repo.On("CreateUser", mock.Anything, mock.Anything).Return(nil)

	resp, err := service.Register(context.Background(), RegisterRequest{
		Email:    "  Jane@Example.com ",
		Password: "super-secret",
		FullName: "Jane Doe",
		Phone:    "+447700900123",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "jane@example.com", resp.User.Email)
	assert.Equal(t, "Jane Doe", resp.User.FullName)
	// stored hash verifies against the original password
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(resp.User.PasswordHash), []byte("super-secret")))

	// the issued token round-trips back to the new user's ID
	userID, err := service.ParseToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, userID)
}

func TestRegisterEmailTaken(t *testing.T) {
	repo := new(MockRepository)
	service := newTestService(repo)

	repo.On("GetUserByEmail", mock.Anything, "jane@example.com").Return(&User{ID: uuid.New()}, nil)

	_, err := service.Register(context.Background(), RegisterRequest{
		Email:    "jane@example.com",
		Password: "super-secret",
	})

	assert.ErrorIs(t, err, ErrEmailTaken)
	repo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("super-secret"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &User{ID: uuid.New(), Email: "jane@example.com", PasswordHash: string(hash)}
	repo := new(MockRepository)
	service := newTestService(repo)
	repo.On("GetUserByEmail", mock.Anything, "jane@example.com").Return(user, nil)

	resp, err := service.Login(context.Background(), LoginRequest{
		Email:    "Jane@example.com",
		Password: "super-secret",
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID, resp.User.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), resp.ExpiresAt, 5*time.Second)
}

func TestLoginWrongPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("super-secret"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := new(MockRepository)
	service := newTestService(repo)
	repo.On("GetUserByEmail", mock.Anything, "jane@example.com").
		Return(&User{ID: uuid.New(), PasswordHash: string(hash)}, nil)

	_, err = service.Login(context.Background(), LoginRequest{
		Email:    "jane@example.com",
		Password: "wrong",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	repo := new(MockRepository)
	service := newTestService(repo)
	repo.On("GetUserByEmail", mock.Anything, "nobody@example.com").Return(nil, ErrUserNotFound)

	_, err := service.Login(context.Background(), LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})

	// same error as a wrong password, so responses don't reveal which
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	service := newTestService(new(MockRepository))

	_, err := service.ParseToken("not-a-token")
	assert.Error(t, err)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetUserByEmail", mock.Anything, mock.Anything).Return(nil, ErrUserNotFound)
	repo.On("CreateUser", mock.Anything, mock.Anything).Return(nil)

	issuer := newTestService(repo)
	resp, err := issuer.Register(context.Background(), RegisterRequest{
		Email:    "jane@example.com",
		Password: "super-secret",
	})
	require.NoError(t, err)

	verifier := NewService(new(MockRepository), config.SecurityConfig{JWTSecret: "different-secret"})
	_, err = verifier.ParseToken(resp.Token)
	assert.Error(t, err)
}

func TestUpdateProfile(t *testing.T) {
	user := &User{ID: uuid.New(), FullName: "Jane Doe", Phone: "+440000000000"}
	repo := new(MockRepository)
	service := newTestService(repo)

	repo.On("GetUserByID", mock.Anything, user.ID).Return(user, nil)
	repo.On("UpdateUser", mock.Anything, user).Return(nil)

	updated, err := service.UpdateProfile(context.Background(), user.ID, ProfileUpdateRequest{
		FullName: "  Jane Smith ",
	})
	require.NoError(t, err)

	assert.Equal(t, "Jane Smith", updated.FullName)
	// empty fields leave the stored value alone
	assert.Equal(t, "+440000000000", updated.Phone)
}
