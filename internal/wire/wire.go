package wire

import (
	"net/http"

	"movie-review/internal/adaptor"
	"movie-review/internal/data/repository"
	"movie-review/internal/usecase"
	"movie-review/pkg/middleware"
	"movie-review/pkg/storage"
	"movie-review/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App holds the wired router and the services behind it.
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring builds services, handlers and routes on top of repo and uploader.
func Wiring(
	repo *repository.Repository,
	config *utils.Config,
	tokens *utils.TokenManager,
	uploader storage.Uploader,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(repo, tokens, uploader, logger)
	handler := adaptor.NewHandler(service, config, logger)

	router := setupRouter(handler, repo, tokens, uploader, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	tokens *utils.TokenManager,
	uploader storage.Uploader,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS)

	r.Route("/api", func(r chi.Router) {
		wireAuth(r, handler.Auth)
		wireAdmin(r, handler.Admin, repo, tokens, logger)
		wireMovie(r, handler.Movie, repo, tokens, logger)
		wireReview(r, handler.Review, repo, tokens, logger)
	})

	// Local posters are served by the API itself
	if files, ok := uploader.(*storage.FileUploader); ok {
		r.Handle("/posters/*", http.StripPrefix("/posters/", http.FileServer(http.Dir(files.Dir()))))
	}

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return r
}
