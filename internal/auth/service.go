package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for unknown accounts and wrong
// passwords alike, so responses do not reveal which one failed.
var ErrInvalidCredentials = errors.New("invalid email or password")

// AuthService provides business logic for authentication.
type AuthService struct {
	repo   UserRepository
	issuer *TokenIssuer
}

// NewAuthService creates a new AuthService instance
func NewAuthService(repo UserRepository, issuer *TokenIssuer) *AuthService {
	return &AuthService{
		repo:   repo,
		issuer: issuer,
	}
}

// Login verifies credentials and issues a bearer token carrying the
// user's role claim.
func (as *AuthService) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	if req == nil || req.Email == "" || req.Password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := as.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			slog.Debug("login attempt for unknown account", "email", req.Email)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		slog.Debug("login attempt with wrong password", "email", req.Email)
		return nil, ErrInvalidCredentials
	}

	token, err := as.issuer.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &LoginResponse{Token: token, Role: user.Role}, nil
}

// CreateUser registers a new account with a bcrypt-hashed password.
func (as *AuthService) CreateUser(ctx context.Context, email, password, role string) (*User, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("email and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := as.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// EnsureAdmin creates the initial admin account on a fresh deployment.
// It is a no-op when any user already exists or when no bootstrap
// credentials are configured, so restarts never duplicate or overwrite
// accounts.
func (as *AuthService) EnsureAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		slog.Info("no bootstrap admin configured, skipping")
		return nil
	}

	count, err := as.repo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		slog.Info("users already exist, skipping admin bootstrap", "count", count)
		return nil
	}

	if _, err := as.CreateUser(ctx, email, password, RoleAdmin); err != nil {
		return fmt.Errorf("failed to bootstrap admin: %w", err)
	}
	slog.Info("bootstrap admin created", "email", email)
	return nil
}
