package repository

import (
	"errors"

	"movie-review/internal/data/entity"
	"movie-review/pkg/database"

	"go.uber.org/zap"
)

// ErrDuplicate is returned when a write hits a unique index
// (email, or one review per user and movie).
var ErrDuplicate = errors.New("duplicate record")

// MovieFilter narrows FindAll/CountAll. Zero value matches everything.
type MovieFilter struct {
	Search string
	Genre  entity.Genre
}

type Repository struct {
	User   UserRepository
	Admin  AdminRepository
	Movie  MovieRepository
	Review ReviewRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:   NewUserRepository(db, log),
		Admin:  NewAdminRepository(db, log),
		Movie:  NewMovieRepository(db, log),
		Review: NewReviewRepository(db, log),
	}
}
