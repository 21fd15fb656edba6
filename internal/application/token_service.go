package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/ipdr-analysis/auth-server/internal/domain/entity"
	repo "github.com/ipdr-analysis/auth-server/internal/domain/repository"
	"github.com/ipdr-analysis/auth-server/pkg/helpers"
)

type TokenKind int

const (
	AccessToken TokenKind = iota
	RefreshToken
)

// TokenService issues and verifies the access/refresh pair.
// No revocation list exists: a refresh token stays usable until it expires, logout included.
type TokenService struct {
	JWT   *helpers.JWTManager
	Users repo.UserRepository
}

func NewTokenService(jwt *helpers.JWTManager, users repo.UserRepository) *TokenService {
	return &TokenService{JWT: jwt, Users: users}
}

func claimsFor(u *entity.User) helpers.Claims {
	return helpers.Claims{UserID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role}
}

// Issue mints a fresh access/refresh pair for u.
func (s *TokenService) Issue(u *entity.User) (helpers.TokenPair, error) {
	pair, err := s.JWT.GeneratePair(claimsFor(u))
	if err != nil {
		return helpers.TokenPair{}, fmt.Errorf("sign tokens: %w", err)
	}
	return pair, nil
}

// Verify checks signature, structure and expiry with the secret for kind.
// Every failure collapses into ErrInvalidToken.
func (s *TokenService) Verify(token string, kind TokenKind) (*helpers.Claims, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}
	var (
		c   *helpers.Claims
		err error
	)
	switch kind {
	case AccessToken:
		c, err = s.JWT.ParseAccessToken(token)
	case RefreshToken:
		c, err = s.JWT.ParseRefreshToken(token)
	default:
		return nil, ErrInvalidToken
	}
	if err != nil {
		return nil, ErrInvalidToken
	}
	return c, nil
}

// ResolveUser verifies token and loads the active user it names.
func (s *TokenService) ResolveUser(ctx context.Context, token string, kind TokenKind) (*entity.User, error) {
	c, err := s.Verify(token, kind)
	if err != nil {
		return nil, err
	}
	u, err := s.Users.FindByID(ctx, c.UserID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrInvalidToken
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreFailure, err)
	}
	if !u.IsActive {
		return nil, ErrInvalidToken
	}
	return u, nil
}

// RefreshAccess exchanges a refresh token for a new access token. The refresh
// token itself is not rotated.
func (s *TokenService) RefreshAccess(ctx context.Context, refreshToken string) (string, error) {
	u, err := s.ResolveUser(ctx, refreshToken, RefreshToken)
	if err != nil {
		return "", err
	}
	access, _, err := s.JWT.GenerateAccessToken(claimsFor(u))
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return access, nil
}
