package adaptor

import (
	"movie-review/internal/usecase"
	"movie-review/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth   *AuthHandler
	Admin  *AdminHandler
	Movie  *MovieHandler
	Review *ReviewHandler
}

func NewHandler(service *usecase.Service, config *utils.Config, log *zap.Logger) *Handler {
	return &Handler{
		Auth:   NewAuthHandler(service.Auth, log),
		Admin:  NewAdminHandler(service.Admin, log),
		Movie:  NewMovieHandler(service.Movie, config.Storage, log),
		Review: NewReviewHandler(service.Review, log),
	}
}
