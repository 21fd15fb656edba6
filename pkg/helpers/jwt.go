package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token lifetimes are fixed: short-lived access, week-long refresh
const (
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// Token kinds carried in the typ claim
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var (
	ErrTokenInvalid  = errors.New("invalid token")
	ErrSharedSecrets = errors.New("access and refresh secrets must differ")
)

// JWTManager handles generation and validation of JWT tokens.
// Access and refresh tokens are signed with different secrets so a leak of one
// cannot be used to mint the other.
type JWTManager struct {
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration

	// Now is the clock used for issuing and validating; defaults to time.Now
	Now func() time.Time
}

func NewJWTManager(accessSecret, refreshSecret string) *JWTManager {
	return &JWTManager{
		AccessSecret:  []byte(accessSecret),
		RefreshSecret: []byte(refreshSecret),
		AccessTTL:     AccessTokenTTL,
		RefreshTTL:    RefreshTokenTTL,
		Now:           time.Now,
	}
}

// Claims are embedded in both access and refresh tokens
type Claims struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Type     string `json:"typ"`
	jwt.RegisteredClaims
}

// TokenPair is an access/refresh pair with their expiry instants
type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

func (m *JWTManager) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

// CheckSecrets rejects a manager whose two secrets are empty or equal.
func (m *JWTManager) CheckSecrets() error {
	if len(m.AccessSecret) == 0 || len(m.RefreshSecret) == 0 {
		return errors.New("jwt secrets must not be empty")
	}
	if string(m.AccessSecret) == string(m.RefreshSecret) {
		return ErrSharedSecrets
	}
	return nil
}

func (m *JWTManager) sign(c Claims, typ string, secret []byte, ttl time.Duration) (string, time.Time, error) {
	now := m.now()
	c.Type = typ
	exp := now.Add(ttl)
	c.RegisteredClaims = jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
		IssuedAt:  jwt.NewNumericDate(now),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	s, err := t.SignedString(secret)
	return s, exp, err
}

func (m *JWTManager) GenerateAccessToken(c Claims) (string, time.Time, error) {
	return m.sign(c, TokenTypeAccess, m.AccessSecret, m.AccessTTL)
}

func (m *JWTManager) GenerateRefreshToken(c Claims) (string, time.Time, error) {
	return m.sign(c, TokenTypeRefresh, m.RefreshSecret, m.RefreshTTL)
}

// GeneratePair issues both tokens for the same claims
func (m *JWTManager) GeneratePair(c Claims) (TokenPair, error) {
	access, aexp, err := m.GenerateAccessToken(c)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, rexp, err := m.GenerateRefreshToken(c)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

func (m *JWTManager) ParseAccessToken(tokenStr string) (*Claims, error) {
	return m.parseToken(tokenStr, TokenTypeAccess, m.AccessSecret)
}

func (m *JWTManager) ParseRefreshToken(tokenStr string) (*Claims, error) {
	return m.parseToken(tokenStr, TokenTypeRefresh, m.RefreshSecret)
}

// parseToken verifies the signature and the typ claim, so the kinds stay apart
// even when both secrets are the same.
func (m *JWTManager) parseToken(tokenStr, typ string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	tkn, err := parser.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return nil, errors.Join(ErrTokenInvalid, err)
	}
	if !tkn.Valid || claims.UserID == "" || claims.Type != typ {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
