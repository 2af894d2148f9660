// Package service holds the application services: credential handling and
// exercise assignment.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"physio-service/internal/model"
	"physio-service/internal/repository"
	"physio-service/pkg/jwtutil"
	"physio-service/prometheus"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned for an unknown email and for a wrong
	// password alike.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidInput is returned when required fields are missing.
	ErrInvalidInput = errors.New("invalid input")
)

// UserStore is the persistence the auth service needs.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id uint) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

// TokenIssuer signs access tokens.
type TokenIssuer interface {
	GenerateToken(email string, userID uint, role string) (*jwtutil.Token, error)
}

// RegisterInput carries the fields of a new user.
type RegisterInput struct {
	LastName          string
	FirstName         string
	Email             string
	Password          string
	Role              string
	HealthConditionID *uint
	KineID            *uint
}

// LoginResult is the outcome of a successful login.
type LoginResult struct {
	User  *model.User
	Token *jwtutil.Token
}

// AuthService registers users, verifies credentials and issues tokens.
type AuthService struct {
	users  UserStore
	tokens TokenIssuer
	cost   int

	// dummyHash is compared against when the email is unknown, so that a
	// login attempt costs one bcrypt comparison at s.cost either way.
	dummyOnce sync.Once
	dummyHash []byte
}

// NewAuthService creates a new authentication service.
func NewAuthService(users UserStore, tokens TokenIssuer) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		cost:   bcrypt.DefaultCost,
	}
}

// WithHashCost overrides the bcrypt cost, mostly to keep tests fast. Call it
// before the service handles requests.
func (s *AuthService) WithHashCost(cost int) *AuthService {
	s.cost = cost
	return s
}

// Register creates a user with a bcrypt hashed password. An email already in
// use yields repository.ErrConflict.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	_, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, fmt.Errorf("register %s: %w", email, repository.ErrConflict)
	case !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		LastName:          in.LastName,
		FirstName:         in.FirstName,
		Email:             email,
		Password:          string(hash),
		Role:              in.Role,
		HealthConditionID: in.HealthConditionID,
		KineID:            in.KineID,
	}
	// A concurrent registration of the same email is caught by the unique
	// index and comes back as repository.ErrConflict.
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	prometheus.RegisterCounter.Inc()
	return user, nil
}

// Authenticate returns the user when the password matches its stored hash and
// ErrInvalidCredentials otherwise. It never writes.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		_ = bcrypt.CompareHashAndPassword(s.unknownUserHash(), []byte(password))
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Login authenticates and issues an access token for the user.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	prometheus.LoginCounter.Inc()

	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			prometheus.RecordAuthError("invalid_credentials")
		}
		return nil, err
	}

	token, err := s.tokens.GenerateToken(user.Email, user.ID, user.Role)
	if err != nil {
		prometheus.RecordAuthError("token_generation_failed")
		return nil, err
	}

	prometheus.TokensIssuedCounter.Inc()
	return &LoginResult{User: user, Token: token}, nil
}

// CurrentUser resolves the user a token was issued to.
func (s *AuthService) CurrentUser(ctx context.Context, userID uint) (*model.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *AuthService) unknownUserHash() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("physio-dummy-password"), s.cost)
	})
	return s.dummyHash
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
