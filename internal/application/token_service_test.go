package application

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ipdr-analysis/auth-server/internal/domain/entity"
	"github.com/ipdr-analysis/auth-server/internal/infrastructure/memory"
	"github.com/ipdr-analysis/auth-server/pkg/helpers"
)

func seededTokenService(t *testing.T) (*TokenService, *entity.User) {
	t.Helper()
	users := memory.NewUserRepository()
	u := &entity.User{ID: "u-1", Username: "bob", Email: "bob@x.com", Role: entity.RoleUser, IsActive: true}
	require.NoError(t, users.Create(context.Background(), u))
	return NewTokenService(helpers.NewJWTManager("a-secret", "r-secret"), users), u
}

func TestTokenService_IssueCarriesIdentity(t *testing.T) {
	svc, u := seededTokenService(t)

	pair, err := svc.Issue(u)
	require.NoError(t, err)

	c, err := svc.Verify(pair.AccessToken, AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "u-1", c.UserID)
	assert.Equal(t, "bob", c.Username)
	assert.Equal(t, "bob@x.com", c.Email)
	assert.Equal(t, entity.RoleUser, c.Role)

	assert.WithinDuration(t, time.Now().Add(helpers.AccessTokenTTL), pair.AccessTokenExpiry, 5*time.Second)
	assert.WithinDuration(t, time.Now().Add(helpers.RefreshTokenTTL), pair.RefreshTokenExpiry, 5*time.Second)
}

func TestTokenService_KindsDoNotCross(t *testing.T) {
	svc, u := seededTokenService(t)
	pair, err := svc.Issue(u)
	require.NoError(t, err)

	_, err = svc.Verify(pair.AccessToken, RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = svc.Verify(pair.RefreshToken, AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = svc.Verify(pair.AccessToken, TokenKind(42))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_KindsDoNotCrossWithSharedSecret(t *testing.T) {
	users := memory.NewUserRepository()
	u := &entity.User{ID: "u-2", Username: "carol", Email: "carol@x.com", Role: entity.RoleUser, IsActive: true}
	require.NoError(t, users.Create(context.Background(), u))
	svc := NewTokenService(helpers.NewJWTManager("same", "same"), users)

	pair, err := svc.Issue(u)
	require.NoError(t, err)

	_, err = svc.ResolveUser(context.Background(), pair.RefreshToken, AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = svc.RefreshAccess(context.Background(), pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_ResolveUser(t *testing.T) {
	svc, u := seededTokenService(t)
	pair, err := svc.Issue(u)
	require.NoError(t, err)

	got, err := svc.ResolveUser(context.Background(), pair.AccessToken, AccessToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
}

func TestTokenService_RefreshAccessDoesNotRotate(t *testing.T) {
	svc, u := seededTokenService(t)
	pair, err := svc.Issue(u)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		access, err := svc.RefreshAccess(context.Background(), pair.RefreshToken)
		require.NoError(t, err)
		_, err = svc.Verify(access, AccessToken)
		assert.NoError(t, err)
	}
}

func TestKeyedMutex_SerialisesPerKeyAndForgets(t *testing.T) {
	var km keyedMutex
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		inside  int
		maxSeen int
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := km.Lock("alice")
			defer unlock()
			mu.Lock()
			inside++
			if inside > maxSeen {
				maxSeen = inside
			}
			mu.Unlock()
			time.Sleep(time.Millisecond)
			mu.Lock()
			inside--
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen)
	assert.Empty(t, km.locks)
}

func TestKeyedMutex_IndependentKeys(t *testing.T) {
	var km keyedMutex
	unlockA := km.Lock("a")
	done := make(chan struct{})
	go func() {
		unlock := km.Lock("b")
		unlock()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on b blocked behind a")
	}
	unlockA()
}
