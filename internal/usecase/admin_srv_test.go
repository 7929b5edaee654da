package usecase

import (
	"context"
	"testing"

	"movie-review/internal/data/entity"
	"movie-review/internal/dto/request"
	"movie-review/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminService_SeedSuperAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin, err := env.svc.Admin.SeedSuperAdmin(ctx, &request.AdminRegisterRequest{
		Name:     "Root",
		Email:    "Root@Example.com",
		Password: "Secret1!",
		Role:     "movie_admin",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleSuperAdmin, admin.Role)
	assert.Equal(t, "root@example.com", admin.Email)

	_, err = env.svc.Admin.SeedSuperAdmin(ctx, &request.AdminRegisterRequest{
		Name:     "Root Again",
		Email:    "root@example.com ",
		Password: "Secret1!",
	})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestAdminService_Register(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	super := seedAdmin(t, env, entity.RoleSuperAdmin)
	editor := seedAdmin(t, env, entity.RoleMovieAdmin)

	t.Run("default role", func(t *testing.T) {
		admin, err := env.svc.Admin.Register(ctx, super.ID, &request.AdminRegisterRequest{
			Name:     "Curator",
			Email:    "curator@example.com",
			Password: "Secret1!",
		})
		require.NoError(t, err)
		assert.Equal(t, entity.RoleMovieAdmin, admin.Role)
	})

	t.Run("explicit super admin", func(t *testing.T) {
		admin, err := env.svc.Admin.Register(ctx, super.ID, &request.AdminRegisterRequest{
			Name:     "Second Root",
			Email:    "root2@example.com",
			Password: "Secret1!",
			Role:     "super_admin",
		})
		require.NoError(t, err)
		assert.Equal(t, entity.RoleSuperAdmin, admin.Role)
	})

	t.Run("unknown role", func(t *testing.T) {
		_, err := env.svc.Admin.Register(ctx, super.ID, &request.AdminRegisterRequest{
			Name:     "Mystery",
			Email:    "mystery@example.com",
			Password: "Secret1!",
			Role:     "owner",
		})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("movie admin cannot register admins", func(t *testing.T) {
		_, err := env.svc.Admin.Register(ctx, editor.ID, &request.AdminRegisterRequest{
			Name:     "Sneaky",
			Email:    "sneaky@example.com",
			Password: "Secret1!",
		})
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("caller gone", func(t *testing.T) {
		_, err := env.svc.Admin.Register(ctx, uuid.New(), &request.AdminRegisterRequest{
			Name:     "Orphan",
			Email:    "orphan@example.com",
			Password: "Secret1!",
		})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestAdminService_Login(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.Admin.SeedSuperAdmin(ctx, &request.AdminRegisterRequest{
		Name:     "Root",
		Email:    "root@example.com",
		Password: "Secret1!",
	})
	require.NoError(t, err)

	auth, err := env.svc.Admin.Login(ctx, &request.LoginRequest{Email: "root@example.com", Password: "Secret1!"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleSuperAdmin, auth.Role)

	_, err = env.tokens.Verify(utils.TokenKindAdmin, auth.Token)
	assert.NoError(t, err)
	_, err = env.tokens.Verify(utils.TokenKindUser, auth.Token)
	assert.Error(t, err)

	_, err = env.svc.Admin.Login(ctx, &request.LoginRequest{Email: "root@example.com", Password: "Wrong12!"})
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = env.svc.Admin.Login(ctx, &request.LoginRequest{Email: "nobody@example.com", Password: "Secret1!"})
	assert.ErrorIs(t, err, ErrNotFound)

	// users and admins live in separate stores
	_, err = env.svc.Auth.Login(ctx, &request.LoginRequest{Email: "root@example.com", Password: "Secret1!"})
	assert.ErrorIs(t, err, ErrNotFound)
}
