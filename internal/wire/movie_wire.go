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

func wireMovie(
	r chi.Router,
	movieHandler *adaptor.MovieHandler,
	repo *repository.Repository,
	tokens *utils.TokenManager,
	log *zap.Logger,
) {
	r.Route("/movies", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		r.Get("/", movieHandler.ListMovies)
		r.Get("/{movieId}", movieHandler.GetMovie)

		// ==================== ADMIN ROUTES ====================
		r.Group(func(r chi.Router) {
			r.Use(middleware.AdminAuth(tokens, repo.Admin, log))
			r.Use(middleware.RequireAdminRole(log, entity.RoleSuperAdmin, entity.RoleMovieAdmin))

			r.Post("/add", movieHandler.AddMovie)                   // POST /api/movies/add
			r.Patch("/edit/{movieId}", movieHandler.EditMovie)      // PATCH /api/movies/edit/{movieId}
			r.Delete("/delete/{movieId}", movieHandler.DeleteMovie) // DELETE /api/movies/delete/{movieId}
		})
	})
}
