package usecase

import (
	"context"
	"strings"
	"testing"

	"movie-review/internal/dto/request"
	"movie-review/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_RegisterNormalizesAndRejectsDuplicates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.svc.Auth.Register(ctx, &request.RegisterRequest{
		Name:     "  Alice  ",
		Email:    "  Alice@Example.COM ",
		Password: "Secret1!",
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, "alice@example.com", user.Email)

	stored, err := env.repo.User.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "Secret1!", stored.PasswordHash)
	assert.True(t, utils.CheckPasswordHash("Secret1!", stored.PasswordHash))

	for _, email := range []string{"alice@example.com", "ALICE@EXAMPLE.COM", "\talice@example.com  "} {
		_, err := env.svc.Auth.Register(ctx, &request.RegisterRequest{
			Name:     "Alice Two",
			Email:    email,
			Password: "Secret1!",
		})
		assert.ErrorIs(t, err, ErrConflict, email)
	}
}

func TestAuthService_RegisterValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  request.RegisterRequest
	}{
		{"short name", request.RegisterRequest{Name: "Al", Email: "al@example.com", Password: "Secret1!"}},
		{"blank name", request.RegisterRequest{Name: "     ", Email: "al@example.com", Password: "Secret1!"}},
		{"bad email", request.RegisterRequest{Name: "Alice", Email: "not-an-email", Password: "Secret1!"}},
		{"short password", request.RegisterRequest{Name: "Alice", Email: "al@example.com", Password: "Se1!"}},
		{"no uppercase", request.RegisterRequest{Name: "Alice", Email: "al@example.com", Password: "secret1!"}},
		{"no lowercase", request.RegisterRequest{Name: "Alice", Email: "al@example.com", Password: "SECRET1!"}},
		{"no digit", request.RegisterRequest{Name: "Alice", Email: "al@example.com", Password: "Secrets!"}},
		{"no special", request.RegisterRequest{Name: "Alice", Email: "al@example.com", Password: "Secret12"}},
		{"password over 72 bytes", request.RegisterRequest{Name: "Alice", Email: "al@example.com", Password: "Aa1@" + strings.Repeat("x", 80)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			_, err := env.svc.Auth.Register(ctx, &req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}

	found, err := env.repo.User.FindByEmail(ctx, "al@example.com")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestAuthService_Login(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	registered, err := env.svc.Auth.Register(ctx, &request.RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "Secret1!",
	})
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		auth, err := env.svc.Auth.Login(ctx, &request.LoginRequest{Email: " ALICE@example.com", Password: "Secret1!"})
		require.NoError(t, err)
		assert.Equal(t, registered.ID, auth.ID)
		assert.Empty(t, auth.Role)

		subject, err := env.tokens.Verify(utils.TokenKindUser, auth.Token)
		require.NoError(t, err)
		assert.Equal(t, uuid.MustParse(registered.ID), subject)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := env.svc.Auth.Login(ctx, &request.LoginRequest{Email: "bob@example.com", Password: "Secret1!"})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := env.svc.Auth.Login(ctx, &request.LoginRequest{Email: "alice@example.com", Password: "Secret2!"})
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("password format checked before lookup", func(t *testing.T) {
		_, err := env.svc.Auth.Login(ctx, &request.LoginRequest{Email: "alice@example.com", Password: "secret"})
		assert.ErrorIs(t, err, ErrValidation)
	})
}
