package helpers

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClaims() Claims {
	return Claims{UserID: "0192a1b2-user", Username: "alice", Email: "alice@x.com", Role: "user"}
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestGeneratePair_RoundTrip(t *testing.T) {
	m := NewJWTManager("access-secret", "refresh-secret")

	pair, err := m.GeneratePair(testClaims())
	require.NoError(t, err)

	access, err := m.ParseAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "0192a1b2-user", access.UserID)
	assert.Equal(t, "alice", access.Username)
	assert.Equal(t, "alice@x.com", access.Email)
	assert.Equal(t, "user", access.Role)

	refresh, err := m.ParseRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, access.UserID, refresh.UserID)
}

func TestGeneratePair_Expiries(t *testing.T) {
	now := time.Date(2026, 10, 17, 10, 0, 0, 0, time.UTC)
	m := NewJWTManager("a", "r")
	m.Now = fixedClock(now)

	pair, err := m.GeneratePair(testClaims())
	require.NoError(t, err)
	assert.Equal(t, now.Add(15*time.Minute), pair.AccessTokenExpiry)
	assert.Equal(t, now.Add(7*24*time.Hour), pair.RefreshTokenExpiry)

	c, err := m.ParseAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, now.Unix(), c.IssuedAt.Unix())
	assert.Equal(t, now.Add(15*time.Minute).Unix(), c.ExpiresAt.Unix())
}

func TestParse_SecretsAreNotInterchangeable(t *testing.T) {
	m := NewJWTManager("access-secret", "refresh-secret")
	pair, err := m.GeneratePair(testClaims())
	require.NoError(t, err)

	_, err = m.ParseAccessToken(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = m.ParseRefreshToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParse_KindsStayApartWithEqualSecrets(t *testing.T) {
	m := NewJWTManager("same", "same")
	require.ErrorIs(t, m.CheckSecrets(), ErrSharedSecrets)

	pair, err := m.GeneratePair(testClaims())
	require.NoError(t, err)

	_, err = m.ParseAccessToken(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenInvalid)
	_, err = m.ParseRefreshToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	access, err := m.ParseAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeAccess, access.Type)
	refresh, err := m.ParseRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, refresh.Type)
}

func TestParse_RejectsMissingType(t *testing.T) {
	m := NewJWTManager("a", "r")
	c := testClaims()
	c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(time.Hour))
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(m.AccessSecret)
	require.NoError(t, err)

	_, err = m.ParseAccessToken(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestCheckSecrets(t *testing.T) {
	assert.NoError(t, NewJWTManager("a", "r").CheckSecrets())
	assert.ErrorIs(t, NewJWTManager("x", "x").CheckSecrets(), ErrSharedSecrets)
	assert.Error(t, NewJWTManager("", "r").CheckSecrets())
}

func TestParse_ExpiredAccessStillHasValidRefresh(t *testing.T) {
	issued := time.Date(2026, 10, 17, 10, 0, 0, 0, time.UTC)
	m := NewJWTManager("a", "r")
	m.Now = fixedClock(issued)
	pair, err := m.GeneratePair(testClaims())
	require.NoError(t, err)

	m.Now = fixedClock(issued.Add(16 * time.Minute))

	_, err = m.ParseAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrTokenInvalid)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	_, err = m.ParseRefreshToken(pair.RefreshToken)
	assert.NoError(t, err)

	m.Now = fixedClock(issued.Add(7*24*time.Hour + time.Second))
	_, err = m.ParseRefreshToken(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParse_Malformed(t *testing.T) {
	m := NewJWTManager("a", "r")

	for _, tok := range []string{"", "not.a.jwt", "abc", strings.Repeat("x", 64)} {
		_, err := m.ParseAccessToken(tok)
		assert.ErrorIs(t, err, ErrTokenInvalid, "token %q", tok)
	}
}

func TestParse_TamperedSignature(t *testing.T) {
	m := NewJWTManager("a", "r")
	tok, _, err := m.GenerateAccessToken(testClaims())
	require.NoError(t, err)

	other := NewJWTManager("different", "r")
	forged, _, err := other.GenerateAccessToken(Claims{UserID: "admin", Role: "admin"})
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	forgedParts := strings.Split(forged, ".")
	mixed := forgedParts[0] + "." + forgedParts[1] + "." + parts[2]

	_, err = m.ParseAccessToken(mixed)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParse_RejectsNoneAlgorithm(t *testing.T) {
	m := NewJWTManager("a", "r")
	c := testClaims()
	c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(time.Hour))
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, c).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = m.ParseAccessToken(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParse_RequiresExpiry(t *testing.T) {
	m := NewJWTManager("a", "r")
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, testClaims()).SignedString(m.AccessSecret)
	require.NoError(t, err)

	_, err = m.ParseAccessToken(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
