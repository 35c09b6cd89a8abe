package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/biblion/internal/mykafka"
	"github.com/Skotchmaster/biblion/pkg/tokens"
)

func newTestAuthService(t *testing.T) (*AuthService, *fakePublisher) {
	t.Helper()
	r, pub := setup(t)
	return &AuthService{
		Repo:          r,
		Events:        pub,
		JWTSecret:     []byte("test-jwt-secret"),
		RefreshSecret: []byte("test-refresh-secret"),
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    24 * time.Hour,
	}, pub
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	svc, pub := newTestAuthService(t)
	ctx := context.Background()

	res, err := svc.Register(ctx, "Ada", "Ada@Example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", res.User.Email)
	assert.False(t, res.Admin)

	claims, err := tokens.AccessClaimsFromToken(res.Pair.AccessToken, svc.JWTSecret)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID.String(), claims.Subject)
	assert.Equal(t, "user", claims.Role)

	_, err = svc.Register(ctx, "Ada again", "ADA@example.com", "secret2")
	assert.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), "an account with this email already exists")

	logged, err := svc.Login(ctx, " ADA@example.com ", "secret1")
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, logged.User.ID)

	assert.Equal(t, []string{mykafka.EventUserRegistered, mykafka.EventUserLoggedIn}, pub.types())
}

func TestAuthService_LoginFailures(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()
	_, err := svc.Register(ctx, "Ada", "ada@example.com", "secret1")
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
		want     error
	}{
		{"missing email", "", "secret1", ErrValidation},
		{"missing password", "ada@example.com", "", ErrValidation},
		{"unknown email", "bob@example.com", "secret1", ErrUnauthorized},
		{"wrong password", "ada@example.com", "nope-nope", ErrUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(ctx, tt.email, tt.password)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestAuthService_RegisterValidation(t *testing.T) {
	svc, _ := newTestAuthService(t)
	_, err := svc.Register(context.Background(), "", "a@b.c", "secret1")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.Register(context.Background(), "A", "a@b.c", "123")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAuthService_RegisterPasswordLength(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "A", "five@example.com", "12345")
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "at least 6 characters")

	_, err = svc.Register(ctx, "A", "six@example.com", "123456")
	assert.NoError(t, err)
}

func TestAuthService_Me(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()
	res, err := svc.Register(ctx, "Ada", "ada@example.com", "secret1")
	require.NoError(t, err)

	u, err := svc.Me(ctx, res.User.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Ada", u.Name)

	_, err = svc.Me(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.Me(ctx, "6f1b1c1e-0000-4000-8000-000000000000")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAuthService_RefreshRotatesAndLogoutRevokes(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()
	res, err := svc.Register(ctx, "Ada", "ada@example.com", "secret1")
	require.NoError(t, err)

	next, err := svc.Refresh(ctx, res.Pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, res.Pair.RefreshToken, next.RefreshToken)

	_, err = svc.Refresh(ctx, res.Pair.RefreshToken)
	assert.ErrorIs(t, err, ErrUnauthorized, "rotated token cannot be reused")

	_, err = svc.Refresh(ctx, "garbage")
	assert.ErrorIs(t, err, ErrUnauthorized)

	require.NoError(t, svc.Logout(ctx, next.RefreshToken))
	_, err = svc.Refresh(ctx, next.RefreshToken)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthService_EnsureAdmin(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	created, err := svc.EnsureAdmin(ctx, "admin@biblion.test", "admin-pass")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.EnsureAdmin(ctx, "admin@biblion.test", "admin-pass")
	require.NoError(t, err)
	assert.False(t, created)

	res, err := svc.Login(ctx, "admin@biblion.test", "admin-pass")
	require.NoError(t, err)
	assert.True(t, res.Admin)
}
