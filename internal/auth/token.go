package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hongminglow/task-tracker/internal/models"
)

// TokenTTL is the fixed lifetime of every issued token.
const TokenTTL = 24 * time.Hour

var (
	// ErrNoToken is returned when the Authorization header is absent or not a Bearer credential.
	ErrNoToken = errors.New("no token provided")
	// ErrInvalidToken covers malformed tokens, bad signatures and foreign issuers.
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenExpired is returned for well-formed tokens past their expiry.
	ErrTokenExpired = errors.New("token expired")
)

// Claims is the decoded token payload. Role is a snapshot taken at issuance
// and may lag behind the stored user record.
type Claims struct {
	UserID string `json:"id"`
	Role   string `json:"role"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies signed JWTs for authenticated users.
type TokenManager struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// Option customises a TokenManager.
type Option func(*TokenManager)

// WithClock overrides the time source used for issuance and expiry checks.
func WithClock(now func() time.Time) Option {
	return func(t *TokenManager) {
		t.now = now
	}
}

// NewTokenManager creates a manager with the provided secret and issuer.
func NewTokenManager(secret, issuer string, opts ...Option) *TokenManager {
	t := &TokenManager{
		secret: []byte(secret),
		issuer: issuer,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Issue signs a token for the user that expires TokenTTL from now.
func (t *TokenManager) Issue(user models.User) (string, error) {
	now := t.now()
	claims := Claims{
		UserID: user.ID,
		Role:   user.Role,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.issuer,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature, issuer and expiry of raw and returns its claims.
func (t *TokenManager) Verify(raw string) (Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(t.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenExpired):
		return Claims{}, ErrTokenExpired
	default:
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.UserID == "" {
		return Claims{}, fmt.Errorf("%w: missing user id", ErrInvalidToken)
	}
	return claims, nil
}

// BearerToken extracts the credential from an Authorization header value.
func BearerToken(header string) (string, error) {
	const scheme = "Bearer "
	if !strings.HasPrefix(header, scheme) {
		return "", ErrNoToken
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, scheme))
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}
