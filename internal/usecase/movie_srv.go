package usecase

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"movie-review/internal/data/entity"
	"movie-review/internal/data/repository"
	"movie-review/internal/dto/request"
	"movie-review/internal/dto/response"
	"movie-review/pkg/storage"
	"movie-review/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MovieService interface {
	ListMovies(ctx context.Context, req *request.MovieListRequest) (*response.MovieListResponse, error)
	GetMovie(ctx context.Context, movieID string) (*response.MovieDetailResponse, error)
	AddMovie(ctx context.Context, adminID uuid.UUID, req *request.MovieRequest, posterPath string) (*response.MovieResponse, error)
	EditMovie(ctx context.Context, adminID uuid.UUID, movieID string, req *request.MovieUpdateRequest, posterPath string) (*response.MovieResponse, error)
	DeleteMovie(ctx context.Context, adminID uuid.UUID, movieID string) error
}

type movieService struct {
	repo     *repository.Repository
	uploader storage.Uploader
	log      *zap.Logger
}

func NewMovieService(
	repo *repository.Repository,
	uploader storage.Uploader,
	log *zap.Logger,
) MovieService {
	return &movieService{
		repo:     repo,
		uploader: uploader,
		log:      log.With(zap.String("service", "movie")),
	}
}

func (s *movieService) ListMovies(ctx context.Context, req *request.MovieListRequest) (*response.MovieListResponse, error) {
	page := req.CurrentPage()
	limit := req.Limit()

	filter := repository.MovieFilter{Search: strings.TrimSpace(req.Search)}
	if genre := entity.Genre(strings.TrimSpace(req.Genre)); genre.Valid() {
		filter.Genre = genre
	} else if genre != "" {
		s.log.Debug("Ignoring unknown genre filter", zap.String("genre", req.Genre))
	}

	total, err := s.repo.Movie.CountAll(ctx, filter)
	if err != nil {
		s.log.Error("Failed to count movies", zap.Error(err))
		return nil, fmt.Errorf("count movies: %w", err)
	}

	var movies []*entity.Movie
	if offset := req.Offset(); int64(offset) < total {
		movies, err = s.repo.Movie.FindAll(ctx, filter, limit, offset)
		if err != nil {
			s.log.Error("Failed to get movies",
				zap.Error(err),
				zap.Int("page", page),
				zap.Int("limit", limit),
			)
			return nil, fmt.Errorf("get movies: %w", err)
		}
	}

	// An empty page is reported as not found, not as an empty list.
	if len(movies) == 0 {
		return nil, notFound("no movies found")
	}

	s.log.Info("Movies retrieved",
		zap.Int("count", len(movies)),
		zap.Int64("total", total),
		zap.Int("page", page),
		zap.Int("limit", limit),
	)

	resp := response.MoviesToListResponse(movies, page, limit, total)
	return &resp, nil
}

func (s *movieService) GetMovie(ctx context.Context, movieID string) (*response.MovieDetailResponse, error) {
	movie, err := s.findMovie(ctx, movieID)
	if err != nil {
		return nil, err
	}

	reviews, err := s.repo.Review.FindByMovieID(ctx, movie.ID)
	if err != nil {
		s.log.Error("Failed to get reviews for movie",
			zap.Error(err),
			zap.String("movie_id", movie.ID.String()),
		)
		return nil, fmt.Errorf("get reviews: %w", err)
	}

	resp := response.MovieToDetailResponse(movie, reviews)
	return &resp, nil
}

func (s *movieService) AddMovie(ctx context.Context, adminID uuid.UUID, req *request.MovieRequest, posterPath string) (*response.MovieResponse, error) {
	// 1. Admin must still exist
	if err := s.checkAdmin(ctx, adminID); err != nil {
		return nil, err
	}

	// 2. Validate fields
	req.Normalize()
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Add movie validation failed", zap.Any("errors", errs))
		return nil, invalidFields(errs)
	}
	if posterPath == "" {
		return nil, validationError("no file uploaded")
	}

	// 3. Upload poster
	asset, err := s.upload(ctx, posterPath)
	if err != nil {
		return nil, err
	}

	// 4. Persist
	movie := &entity.Movie{
		Base:        entity.NewBase(),
		Title:       req.Title,
		Description: req.Description,
		Genre:       entity.Genre(req.Genre.Single()),
		Director:    req.Director,
		Cast:        req.Cast,
		ReleaseYear: *req.ReleaseYear,
		Rating:      *req.Rating,
		PosterURL:   asset.URL,
		PosterID:    asset.Handle,
		ReviewIDs:   []uuid.UUID{},
	}
	if err := s.repo.Movie.Create(ctx, movie); err != nil {
		s.log.Error("Failed to create movie", zap.Error(err), zap.String("title", movie.Title))
		if delErr := s.uploader.Delete(ctx, asset.Handle); delErr != nil {
			s.log.Warn("Failed to release poster of unsaved movie",
				zap.Error(delErr),
				zap.String("poster_id", asset.Handle),
			)
		}
		return nil, fmt.Errorf("create movie: %w", err)
	}

	s.log.Info("Movie created",
		zap.String("movie_id", movie.ID.String()),
		zap.String("admin_id", adminID.String()),
		zap.String("title", movie.Title),
	)

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) EditMovie(ctx context.Context, adminID uuid.UUID, movieID string, req *request.MovieUpdateRequest, posterPath string) (*response.MovieResponse, error) {
	id, err := uuid.Parse(movieID)
	if err != nil {
		return nil, validationError("invalid movie id")
	}

	// Reject the whole patch before anything is touched.
	if unknown := request.UnknownMovieFields(req.Keys); len(unknown) > 0 {
		s.log.Warn("Edit movie with unknown fields", zap.Strings("fields", unknown))
		return nil, validationError("invalid update fields: %s", strings.Join(unknown, ", "))
	}
	if len(req.Keys) == 0 && posterPath == "" {
		return nil, validationError("no fields to update")
	}

	req.Normalize()
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Edit movie validation failed", zap.Any("errors", errs))
		return nil, invalidFields(errs)
	}

	if err := s.checkAdmin(ctx, adminID); err != nil {
		return nil, err
	}

	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get movie", zap.Error(err), zap.String("movie_id", movieID))
		return nil, fmt.Errorf("get movie: %w", err)
	}
	if movie == nil {
		return nil, notFound("movie not found")
	}

	applyMoviePatch(movie, req)

	if posterPath != "" {
		// The old asset goes first; a failing upload leaves the old URL dangling.
		if movie.PosterID != "" {
			if err := s.uploader.Delete(ctx, movie.PosterID); err != nil {
				s.log.Error("Failed to delete old poster",
					zap.Error(err),
					zap.String("movie_id", movieID),
					zap.String("poster_id", movie.PosterID),
				)
				return nil, fmt.Errorf("delete old poster: %w", err)
			}
		}

		asset, err := s.upload(ctx, posterPath)
		if err != nil {
			return nil, err
		}
		movie.PosterURL = asset.URL
		movie.PosterID = asset.Handle
	}

	movie.UpdatedAt = time.Now().UTC()
	if err := s.repo.Movie.Update(ctx, movie); err != nil {
		s.log.Error("Failed to update movie", zap.Error(err), zap.String("movie_id", movieID))
		return nil, fmt.Errorf("update movie: %w", err)
	}

	s.log.Info("Movie updated",
		zap.String("movie_id", movieID),
		zap.String("admin_id", adminID.String()),
		zap.Strings("fields", req.Keys),
		zap.Bool("new_poster", posterPath != ""),
	)

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func applyMoviePatch(movie *entity.Movie, req *request.MovieUpdateRequest) {
	if req.Title != nil {
		movie.Title = *req.Title
	}
	if req.Description != nil {
		movie.Description = *req.Description
	}
	if req.Genre != nil {
		movie.Genre = entity.Genre(req.Genre.Single())
	}
	if req.Director != nil {
		movie.Director = *req.Director
	}
	if req.Cast != nil {
		movie.Cast = req.Cast
	}
	if req.ReleaseYear != nil {
		movie.ReleaseYear = *req.ReleaseYear
	}
	if req.Rating != nil {
		movie.Rating = *req.Rating
	}
	// A URL only changes where the poster is read from; the stored asset
	// handle is kept so the asset can still be released.
	if req.Poster != nil {
		movie.PosterURL = *req.Poster
	}
}

// DeleteMovie releases the poster and removes the movie. Its reviews stay.
func (s *movieService) DeleteMovie(ctx context.Context, adminID uuid.UUID, movieID string) error {
	if err := s.checkAdmin(ctx, adminID); err != nil {
		return err
	}

	movie, err := s.findMovie(ctx, movieID)
	if err != nil {
		return err
	}

	if movie.PosterID != "" {
		if err := s.uploader.Delete(ctx, movie.PosterID); err != nil {
			s.log.Error("Failed to delete poster",
				zap.Error(err),
				zap.String("movie_id", movieID),
				zap.String("poster_id", movie.PosterID),
			)
			return fmt.Errorf("delete poster: %w", err)
		}
	}

	if err := s.repo.Movie.Delete(ctx, movie.ID); err != nil {
		s.log.Error("Failed to delete movie", zap.Error(err), zap.String("movie_id", movieID))
		return fmt.Errorf("delete movie: %w", err)
	}

	s.log.Info("Movie deleted",
		zap.String("movie_id", movieID),
		zap.String("admin_id", adminID.String()),
		zap.Int("orphaned_reviews", len(movie.ReviewIDs)),
	)
	return nil
}

func (s *movieService) findMovie(ctx context.Context, movieID string) (*entity.Movie, error) {
	id, err := uuid.Parse(movieID)
	if err != nil {
		return nil, validationError("invalid movie id")
	}

	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get movie", zap.Error(err), zap.String("movie_id", movieID))
		return nil, fmt.Errorf("get movie: %w", err)
	}
	if movie == nil {
		return nil, notFound("movie not found")
	}
	return movie, nil
}

func (s *movieService) checkAdmin(ctx context.Context, adminID uuid.UUID) error {
	admin, err := s.repo.Admin.FindByID(ctx, adminID)
	if err != nil {
		s.log.Error("Failed to get admin", zap.Error(err), zap.String("admin_id", adminID.String()))
		return fmt.Errorf("get admin: %w", err)
	}
	if admin == nil {
		return notFound("admin not found")
	}
	return nil
}

// upload pushes the poster to the image host and then removes the temp file.
func (s *movieService) upload(ctx context.Context, posterPath string) (*storage.Asset, error) {
	asset, err := s.uploader.Upload(ctx, posterPath)
	if err != nil {
		s.log.Warn("Poster upload failed", zap.Error(err), zap.String("path", posterPath))
		return nil, newError(ErrUpload, "%s", err.Error())
	}

	if err := os.Remove(posterPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.log.Warn("Failed to remove temp poster", zap.Error(err), zap.String("path", posterPath))
	}
	return asset, nil
}
