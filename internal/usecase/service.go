package usecase

import (
	"movie-review/internal/data/repository"
	"movie-review/pkg/storage"
	"movie-review/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth   AuthService
	Admin  AdminService
	Movie  MovieService
	Review ReviewService
}

func NewService(
	repo *repository.Repository,
	tokens *utils.TokenManager,
	uploader storage.Uploader,
	log *zap.Logger,
) *Service {
	return &Service{
		Auth:   NewAuthService(repo, tokens, log),
		Admin:  NewAdminService(repo, tokens, log),
		Movie:  NewMovieService(repo, uploader, log),
		Review: NewReviewService(repo, log),
	}
}
