package jwtutil

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// DisabledToken is handed out instead of a signed token when auth is disabled.
const DisabledToken = "auth-disabled"

var (
	// ErrInvalidToken covers malformed tokens, bad signatures and unexpected algorithms.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken is returned once the token's expiry has passed.
	ErrExpiredToken = errors.New("token expired")
	// ErrAuthDisabled is returned by ValidateToken when the issuer runs without verification.
	ErrAuthDisabled = errors.New("authentication disabled")
)

// JWTConfig holds JWT configuration
type JWTConfig struct {
	SigningKey string
	TTL        time.Duration
	Disabled   bool
}

// UserClaims represents the JWT claims for user authentication
type UserClaims struct {
	Email  string `json:"email"`
	UserID uint   `json:"user_id"`
	Role   string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Token is an issued bearer token.
type Token struct {
	AccessToken string
	TokenType   string
	ExpiresAt   time.Time
}

// Option customizes a JWTUtil.
type Option func(*JWTUtil)

// WithClock replaces time.Now, used for issuing and for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(j *JWTUtil) {
		j.now = now
	}
}

// JWTUtil is a utility for JWT token operations
type JWTUtil struct {
	config *JWTConfig
	now    func() time.Time
}

// NewJWTUtil creates a new JWT utility with the given configuration
func NewJWTUtil(config *JWTConfig, opts ...Option) *JWTUtil {
	j := &JWTUtil{
		config: config,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Disabled reports whether tokens are neither signed nor verified.
func (j *JWTUtil) Disabled() bool {
	return j.config != nil && j.config.Disabled
}

// GenerateToken issues a signed token for the user, expiring after the configured TTL.
func (j *JWTUtil) GenerateToken(email string, userID uint, role string) (*Token, error) {
	if j.config == nil {
		return nil, errors.New("JWT configuration not provided")
	}

	now := j.now()
	expiresAt := now.Add(j.config.TTL)

	if j.config.Disabled {
		return &Token{AccessToken: DisabledToken, TokenType: "none", ExpiresAt: expiresAt}, nil
	}

	claims := UserClaims{
		Email:  email,
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(j.config.SigningKey))
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &Token{AccessToken: signed, TokenType: "bearer", ExpiresAt: expiresAt}, nil
}

// ValidateToken validates and parses the JWT token
func (j *JWTUtil) ValidateToken(tokenString string) (*UserClaims, error) {
	if j.config == nil {
		return nil, errors.New("JWT configuration not provided")
	}
	if j.config.Disabled {
		return nil, ErrAuthDisabled
	}

	// Time based claims are checked below against the injected clock.
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	claims := &UserClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(j.config.SigningKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.ExpiresAt == nil || !claims.VerifyExpiresAt(j.now(), true) {
		return nil, ErrExpiredToken
	}
	if claims.Subject != strconv.FormatUint(uint64(claims.UserID), 10) {
		return nil, fmt.Errorf("%w: subject does not match user id", ErrInvalidToken)
	}

	return claims, nil
}
