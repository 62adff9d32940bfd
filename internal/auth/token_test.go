package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/task-tracker/internal/models"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func testUser() models.User {
	return models.User{ID: "u-1", Email: "a@x.com", Role: models.RoleUser}
}

func TestIssueAndVerify(t *testing.T) {
	tm := NewTokenManager("secret", "tests")

	token, err := tm.Issue(testUser())
	require.NoError(t, err)

	claims, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "u-1", claims.Subject)
	assert.Equal(t, models.RoleUser, claims.Role)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, "tests", claims.Issuer)
	assert.Equal(t, TokenTTL, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func TestVerifyExpiry(t *testing.T) {
	clock := &fakeClock{t: time.Now().Truncate(time.Second)}
	tm := NewTokenManager("secret", "tests", WithClock(clock.now))

	token, err := tm.Issue(testUser())
	require.NoError(t, err)

	clock.t = clock.t.Add(TokenTTL - time.Second)
	_, err = tm.Verify(token)
	require.NoError(t, err)

	clock.t = clock.t.Add(2 * time.Second)
	_, err = tm.Verify(token)
	require.ErrorIs(t, err, ErrTokenExpired)
	assert.NotErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsInvalidTokens(t *testing.T) {
	tm := NewTokenManager("secret", "tests")
	good, err := tm.Issue(testUser())
	require.NoError(t, err)

	otherSecret, err := NewTokenManager("other", "tests").Issue(testUser())
	require.NoError(t, err)
	otherIssuer, err := NewTokenManager("secret", "elsewhere").Issue(testUser())
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"id":  "u-1",
		"iss": "tests",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noID, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iss": "tests",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	cases := map[string]string{
		"garbage":      "not-a-token",
		"tampered":     good + "x",
		"wrong secret": otherSecret,
		"wrong issuer": otherIssuer,
		"alg none":     unsigned,
		"missing id":   noID,
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := tm.Verify(token)
			require.ErrorIs(t, err, ErrInvalidToken)
			assert.NotErrorIs(t, err, ErrTokenExpired)
		})
	}
}

func TestExpiredTokenWithBadSignatureIsInvalid(t *testing.T) {
	past := &fakeClock{t: time.Now().Add(-48 * time.Hour)}
	token, err := NewTokenManager("other", "tests", WithClock(past.now)).Issue(testUser())
	require.NoError(t, err)

	_, err = NewTokenManager("secret", "tests").Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestBearerToken(t *testing.T) {
	token, err := BearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	for _, header := range []string{"", "abc.def.ghi", "Basic dXNlcjpwYXNz", "bearer abc", "Bearer ", "Bearer    "} {
		_, err := BearerToken(header)
		assert.ErrorIs(t, err, ErrNoToken, "header %q", header)
	}
}

func TestIdentityUsesLiveRole(t *testing.T) {
	claims := Claims{UserID: "u-1", Role: models.RoleUser}
	promoted := models.User{ID: "u-1", Role: models.RoleAdmin}

	id := NewIdentity(promoted, claims)
	assert.True(t, id.IsAdmin)
	assert.Equal(t, models.RoleUser, id.Claims.Role)

	ctx := WithIdentity(context.Background(), id)
	got, ok := IdentityFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, id, got)

	_, ok = IdentityFromContext(context.Background())
	assert.False(t, ok)
}
