package adaptor

import (
	"errors"
	"io"
	"net/http"

	"movie-review/internal/dto/request"
	"movie-review/internal/usecase"
	"movie-review/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type MovieHandler struct {
	service usecase.MovieService
	posters posterReceiver
	log     *zap.Logger
}

func NewMovieHandler(service usecase.MovieService, cfg utils.StorageConfig, log *zap.Logger) *MovieHandler {
	return &MovieHandler{
		service: service,
		posters: newPosterReceiver(cfg.TempDir, cfg.MaxUploadMB),
		log:     log.With(zap.String("handler", "movie")),
	}
}

// ListMovies handles GET /api/movies
func (h *MovieHandler) ListMovies(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.MovieListRequest{
		PaginatedRequest: request.PaginatedRequest{
			Page:    utils.ParseInt(query.Get("page"), utils.DefaultPage),
			PerPage: utils.ParseInt(query.Get("limit"), utils.DefaultPerPage),
		},
		Search: query.Get("search"),
		Genre:  query.Get("genre"),
	}

	movies, err := h.service.ListMovies(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "list movies")
		return
	}

	utils.ResponseSuccess(w, "Movies retrieved successfully", movies)
}

// GetMovie handles GET /api/movies/{movieId}
func (h *MovieHandler) GetMovie(w http.ResponseWriter, r *http.Request) {
	movie, err := h.service.GetMovie(r.Context(), chi.URLParam(r, "movieId"))
	if err != nil {
		handleServiceError(w, h.log, err, "get movie")
		return
	}

	utils.ResponseSuccess(w, "Movie retrieved successfully", movie)
}

// AddMovie handles POST /api/movies/add (multipart, poster file required)
func (h *MovieHandler) AddMovie(w http.ResponseWriter, r *http.Request) {
	admin, ok := utils.GetAdminFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var (
		req        *request.MovieRequest
		posterPath string
	)

	if isMultipart(r) {
		if !h.parseMultipart(w, r) {
			return
		}

		var formErrs map[string]string
		req, formErrs = movieRequestFromForm(r.MultipartForm.Value)
		if len(formErrs) > 0 {
			utils.ResponseBadRequest(w, "Validation failed", formErrs)
			return
		}

		var ok bool
		if posterPath, ok = h.savePoster(w, r); !ok {
			return
		}
		defer cleanup(posterPath)
	} else {
		req = &request.MovieRequest{}
		if !decodeJSON(w, r, req) {
			return
		}
	}

	movie, err := h.service.AddMovie(r.Context(), admin.ID, req, posterPath)
	if err != nil {
		handleServiceError(w, h.log, err, "add movie")
		return
	}

	utils.ResponseCreated(w, "Movie added successfully", movie)
}

// EditMovie handles PATCH /api/movies/edit/{movieId} (JSON or multipart)
func (h *MovieHandler) EditMovie(w http.ResponseWriter, r *http.Request) {
	admin, ok := utils.GetAdminFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var (
		req        *request.MovieUpdateRequest
		posterPath string
	)

	if isMultipart(r) {
		if !h.parseMultipart(w, r) {
			return
		}

		var formErrs map[string]string
		req, formErrs = movieUpdateFromForm(r.MultipartForm.Value)
		if len(formErrs) > 0 {
			utils.ResponseBadRequest(w, "Validation failed", formErrs)
			return
		}

		var ok bool
		if posterPath, ok = h.savePoster(w, r); !ok {
			return
		}
		defer cleanup(posterPath)
	} else {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxJSONBody))
		if err != nil {
			utils.ResponseBadRequest(w, "Invalid request body", nil)
			return
		}
		if req, err = movieUpdateFromJSON(body); err != nil {
			utils.ResponseBadRequest(w, "Invalid request body", nil)
			return
		}
	}

	movie, err := h.service.EditMovie(r.Context(), admin.ID, chi.URLParam(r, "movieId"), req, posterPath)
	if err != nil {
		handleServiceError(w, h.log, err, "edit movie")
		return
	}

	utils.ResponseSuccess(w, "Movie updated successfully", movie)
}

// DeleteMovie handles DELETE /api/movies/delete/{movieId}
func (h *MovieHandler) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	admin, ok := utils.GetAdminFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	if err := h.service.DeleteMovie(r.Context(), admin.ID, chi.URLParam(r, "movieId")); err != nil {
		handleServiceError(w, h.log, err, "delete movie")
		return
	}

	utils.ResponseSuccess(w, "Movie deleted successfully", nil)
}

func (h *MovieHandler) parseMultipart(w http.ResponseWriter, r *http.Request) bool {
	if err := h.posters.parse(w, r); err != nil {
		if isTooLarge(err) {
			utils.ResponseTooLarge(w, "Poster file is too large")
			return false
		}
		h.log.Warn("Invalid multipart body", zap.Error(err))
		utils.ResponseBadRequest(w, "Invalid multipart form", nil)
		return false
	}
	return true
}

func (h *MovieHandler) savePoster(w http.ResponseWriter, r *http.Request) (string, bool) {
	path, err := h.posters.save(r)
	if err == nil {
		return path, true
	}

	if errors.Is(err, errPosterNotImage) {
		utils.ResponseBadRequest(w, err.Error(), nil)
		return "", false
	}
	h.log.Error("Failed to store poster", zap.Error(err))
	utils.ResponseInternalError(w, "Internal server error")
	return "", false
}
