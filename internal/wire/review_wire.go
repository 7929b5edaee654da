package wire

import (
	"movie-review/internal/adaptor"
	"movie-review/internal/data/repository"
	"movie-review/pkg/middleware"
	"movie-review/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireReview(
	r chi.Router,
	reviewHandler *adaptor.ReviewHandler,
	repo *repository.Repository,
	tokens *utils.TokenManager,
	log *zap.Logger,
) {
	// ==================== USER ROUTES ====================
	r.Route("/reviews", func(r chi.Router) {
		r.Use(middleware.UserAuth(tokens, repo.User, log))

		r.Post("/{movieId}", reviewHandler.AddReview)
		r.Patch("/{movieId}/{reviewId}/edit", reviewHandler.EditReview)
		r.Delete("/{movieId}/{reviewId}/delete", reviewHandler.DeleteReview)
	})
}
