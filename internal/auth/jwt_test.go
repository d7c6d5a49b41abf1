// AngelaMos | 2026
// jwt_test.go

package auth

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zingbizz/blog-backend/internal/config"
	"github.com/zingbizz/blog-backend/internal/core"
)

func newTestJWTManager(t *testing.T, expire time.Duration) *JWTManager {
	t.Helper()

	dir := t.TempDir()
	privatePath := filepath.Join(dir, "private.pem")
	publicPath := filepath.Join(dir, "public.pem")

	require.NoError(t, GenerateKeyPair(privatePath, publicPath))

	manager, err := NewJWTManager(config.JWTConfig{
		PrivateKeyPath: privatePath,
		PublicKeyPath:  publicPath,
		SessionExpire:  expire,
		Issuer:         "blog-backend-test",
		Audience:       "blog-api-test",
	})
	require.NoError(t, err)

	return manager
}

func TestSessionTokenRoundTrip(t *testing.T) {
	manager := newTestJWTManager(t, time.Hour)
	ctx := context.Background()

	token, err := manager.CreateSessionToken(SessionTokenClaims{
		UserID:   "user-1",
		Username: "alice",
		Email:    "alice@example.com",
		Roles:    []string{"user", "editor"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.VerifySessionToken(ctx, token)
	require.NoError(t, err)

	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, []string{"user", "editor"}, claims.Roles)
}

func TestVerifySessionTokenRejectsGarbage(t *testing.T) {
	manager := newTestJWTManager(t, time.Hour)

	_, err := manager.VerifySessionToken(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestVerifySessionTokenRejectsTampering(t *testing.T) {
	manager := newTestJWTManager(t, time.Hour)

	token, err := manager.CreateSessionToken(SessionTokenClaims{
		UserID: "user-1", Username: "alice", Email: "a@b.c",
		Roles: []string{"user"},
	})
	require.NoError(t, err)

	tampered := token[:len(token)-4] + "AAAA"

	_, err = manager.VerifySessionToken(context.Background(), tampered)
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestVerifySessionTokenRejectsForeignKey(t *testing.T) {
	issuer := newTestJWTManager(t, time.Hour)
	verifier := newTestJWTManager(t, time.Hour)

	token, err := issuer.CreateSessionToken(SessionTokenClaims{
		UserID: "user-1", Username: "alice", Email: "a@b.c",
		Roles: []string{"user"},
	})
	require.NoError(t, err)

	_, err = verifier.VerifySessionToken(context.Background(), token)
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestVerifySessionTokenExpired(t *testing.T) {
	manager := newTestJWTManager(t, -time.Minute)

	token, err := manager.CreateSessionToken(SessionTokenClaims{
		UserID: "user-1", Username: "alice", Email: "a@b.c",
		Roles: []string{"user"},
	})
	require.NoError(t, err)

	_, err = manager.VerifySessionToken(context.Background(), token)
	assert.ErrorIs(t, err, core.ErrTokenExpired)
}

func TestJWKSHandler(t *testing.T) {
	manager := newTestJWTManager(t, time.Hour)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/.well-known/jwks.json", nil)

	manager.GetJWKSHandler()(rec, req)

	assert.Equal(t, 200, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `"keys"`)
	assert.Contains(t, rec.Body.String(), manager.GetKeyID())
	assert.NotContains(t, rec.Body.String(), `"d"`,
		"private key material must never be served")
}
