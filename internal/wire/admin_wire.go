package wire

import (
	"movie-review/internal/adaptor"
	"movie-review/internal/data/entity"
	"movie-review/internal/data/repository"
	"movie-review/pkg/middleware"
	"movie-review/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAdmin(
	r chi.Router,
	adminHandler *adaptor.AdminHandler,
	repo *repository.Repository,
	tokens *utils.TokenManager,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Post("/admin/login", adminHandler.Login)

	// ==================== SUPER ADMIN ROUTES ====================
	r.With(
		middleware.AdminAuth(tokens, repo.Admin, log),
		middleware.RequireAdminRole(log, entity.RoleSuperAdmin),
	).Post("/admin/register", adminHandler.Register)
}
