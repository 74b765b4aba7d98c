package auth

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeUserRepository keeps accounts in a map keyed by email.
type fakeUserRepository struct {
	users map[string]*User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: map[string]*User{}}
}

func (f *fakeUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, fmt.Errorf("user %q: %w", email, ErrUserNotFound)
	}
	return u, nil
}

func (f *fakeUserRepository) Create(ctx context.Context, user *User) error {
	user.ID = uint(len(f.users) + 1)
	f.users[user.Email] = user
	return nil
}

func (f *fakeUserRepository) Count(ctx context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

func newTestAuthService(repo UserRepository) *AuthService {
	return NewAuthService(repo, NewTokenIssuer("test-secret", time.Hour))
}

func TestEnsureAdminCreatesFirstAccount(t *testing.T) {
	repo := newFakeUserRepository()
	service := newTestAuthService(repo)

	err := service.EnsureAdmin(context.Background(), "admin@relief.local", "s3cret")
	assert.NoError(t, err)

	admin, ok := repo.users["admin@relief.local"]
	assert.True(t, ok)
	assert.Equal(t, RoleAdmin, admin.Role)
	assert.NotEqual(t, "s3cret", admin.PasswordHash)
}

func TestEnsureAdminSkipsWhenUsersExist(t *testing.T) {
	repo := newFakeUserRepository()
	service := newTestAuthService(repo)

	_, err := service.CreateUser(context.Background(), "ops@relief.local", "pw", RoleCoordinator)
	assert.NoError(t, err)

	err = service.EnsureAdmin(context.Background(), "admin@relief.local", "s3cret")
	assert.NoError(t, err)

	// The existing account is untouched and no admin was added.
	assert.Len(t, repo.users, 1)
	_, ok := repo.users["admin@relief.local"]
	assert.False(t, ok)
}

func TestEnsureAdminSkipsWithoutCredentials(t *testing.T) {
	repo := newFakeUserRepository()
	service := newTestAuthService(repo)

	assert.NoError(t, service.EnsureAdmin(context.Background(), "", ""))
	assert.Empty(t, repo.users)
}

func TestLoginWithBootstrappedAdmin(t *testing.T) {
	repo := newFakeUserRepository()
	service := newTestAuthService(repo)

	err := service.EnsureAdmin(context.Background(), "admin@relief.local", "s3cret")
	assert.NoError(t, err)

	// A fresh deployment can log in with the bootstrap credentials and
	// receives a token carrying the admin role.
	resp, err := service.Login(context.Background(), &LoginRequest{
		Email:    "admin@relief.local",
		Password: "s3cret",
	})
	assert.NoError(t, err)
	assert.Equal(t, RoleAdmin, resp.Role)

	claims, err := NewTokenIssuer("test-secret", time.Hour).Verify(resp.Token)
	assert.NoError(t, err)
	assert.Equal(t, RoleAdmin, claims.Role)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	repo := newFakeUserRepository()
	service := newTestAuthService(repo)

	_, err := service.CreateUser(context.Background(), "ops@relief.local", "right-pw", RoleCoordinator)
	assert.NoError(t, err)

	_, err = service.Login(context.Background(), &LoginRequest{Email: "nobody@relief.local", Password: "x"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = service.Login(context.Background(), &LoginRequest{Email: "ops@relief.local", Password: "wrong-pw"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
