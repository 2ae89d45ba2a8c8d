package auth

import (
	"context"
	"testing"
	"time"

	"rentorio-service/internal/domain/user"
	xerrors "rentorio-service/internal/pkg/errors"
	"rentorio-service/internal/pkg/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id int64) (*user.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*user.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*user.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) List(ctx context.Context) ([]user.User, error) {
	args := m.Called(ctx)
	if u := args.Get(0); u != nil {
		return u.([]user.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, id int64, req *user.UpdateUserRequest) (*user.User, error) {
	args := m.Called(ctx, id, req)
	if u := args.Get(0); u != nil {
		return u.(*user.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// stubLimiter counts calls without touching Redis.
type stubLimiter struct {
	allowed bool
	resets  int
}

func (l *stubLimiter) Allow(ctx context.Context, ip, email string) (bool, int64, error) {
	return l.allowed, 0, nil
}

func (l *stubLimiter) Reset(ctx context.Context, ip, email string) error {
	l.resets++
	return nil
}

func newTestAuthService(t *testing.T, repo user.Repository, lim Limiter) *AuthService {
	t.Helper()
	mgr, err := token.NewManager(token.Config{
		Secret: "test-secret", Issuer: "rentorio", Audience: "rentorio-api", TTL: time.Hour,
	})
	require.NoError(t, err)
	return NewAuthService(repo, mgr, lim, zap.NewNop())
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestRegisterDefaultsToCustomerRole(t *testing.T) {
	repo := new(mockUserRepo)
	svc := newTestAuthService(t, repo, nil)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *user.User) bool {
		return u.Role == user.RoleCustomer && u.PasswordHash != "" && u.PasswordHash != "secret-pass"
	})).Return(nil)

	u, err := svc.Register(context.Background(), &user.RegisterRequest{
		Name: "Amina", Email: "amina@example.com", Password: "secret-pass", Phone: "01712345678",
	})
	require.NoError(t, err)
	assert.Equal(t, user.RoleCustomer, u.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret-pass")))
	repo.AssertExpectations(t)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := new(mockUserRepo)
	svc := newTestAuthService(t, repo, nil)

	repo.On("Create", mock.Anything, mock.Anything).
		Return(xerrors.Wrap(xerrors.ErrConflict, "email already registered"))

	_, err := svc.Register(context.Background(), &user.RegisterRequest{
		Name: "Amina", Email: "amina@example.com", Password: "secret-pass", Phone: "01712345678",
	})
	assert.ErrorIs(t, err, xerrors.ErrConflict)
}

func TestLogin(t *testing.T) {
	repo := new(mockUserRepo)
	lim := &stubLimiter{allowed: true}
	svc := newTestAuthService(t, repo, lim)

	stored := &user.User{
		ID: 3, Email: "amina@example.com", Role: user.RoleCustomer,
		PasswordHash: hashOf(t, "secret-pass"), IsActive: true,
	}
	repo.On("FindByEmail", mock.Anything, "amina@example.com").Return(stored, nil)

	resp, err := svc.Login(context.Background(), "10.0.0.1", &user.LoginRequest{
		Email: "amina@example.com", Password: "secret-pass",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, int64(3), resp.User.ID)
	assert.Equal(t, 1, lim.resets)

	claims, err := svc.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(3), claims.UserID)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := new(mockUserRepo)
	svc := newTestAuthService(t, repo, &stubLimiter{allowed: true})

	stored := &user.User{
		ID: 3, Email: "amina@example.com",
		PasswordHash: hashOf(t, "secret-pass"), IsActive: true,
	}
	repo.On("FindByEmail", mock.Anything, "amina@example.com").Return(stored, nil)

	_, err := svc.Login(context.Background(), "10.0.0.1", &user.LoginRequest{
		Email: "amina@example.com", Password: "wrong",
	})
	assert.ErrorIs(t, err, xerrors.ErrUnauthorized)
}

// Unknown email maps to the same error as a wrong password.
func TestLoginUnknownEmail(t *testing.T) {
	repo := new(mockUserRepo)
	svc := newTestAuthService(t, repo, &stubLimiter{allowed: true})

	repo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, xerrors.ErrNotFound)

	_, err := svc.Login(context.Background(), "10.0.0.1", &user.LoginRequest{
		Email: "ghost@example.com", Password: "whatever",
	})
	assert.ErrorIs(t, err, xerrors.ErrUnauthorized)
	assert.NotErrorIs(t, err, xerrors.ErrNotFound)
}

func TestLoginDeactivatedAccount(t *testing.T) {
	repo := new(mockUserRepo)
	svc := newTestAuthService(t, repo, &stubLimiter{allowed: true})

	stored := &user.User{
		ID: 3, Email: "amina@example.com",
		PasswordHash: hashOf(t, "secret-pass"), IsActive: false,
	}
	repo.On("FindByEmail", mock.Anything, "amina@example.com").Return(stored, nil)

	_, err := svc.Login(context.Background(), "10.0.0.1", &user.LoginRequest{
		Email: "amina@example.com", Password: "secret-pass",
	})
	assert.ErrorIs(t, err, xerrors.ErrUnauthorized)
}

func TestLoginRateLimited(t *testing.T) {
	repo := new(mockUserRepo)
	svc := newTestAuthService(t, repo, &stubLimiter{allowed: false})

	_, err := svc.Login(context.Background(), "10.0.0.1", &user.LoginRequest{
		Email: "amina@example.com", Password: "secret-pass",
	})
	assert.ErrorIs(t, err, xerrors.ErrRateLimited)
	repo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
}
