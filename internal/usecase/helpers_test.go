package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"movie-review/internal/data/entity"
	"movie-review/internal/data/repository"
	"movie-review/internal/dto/request"
	"movie-review/pkg/storage"
	"movie-review/pkg/utils"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeUploader records every call in order.
type fakeUploader struct {
	calls     []string
	uploadErr error
	deleteErr error
	n         int
}

func (f *fakeUploader) Upload(_ context.Context, localPath string) (*storage.Asset, error) {
	f.calls = append(f.calls, "upload")
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	if _, err := os.Stat(localPath); err != nil {
		return nil, fmt.Errorf("poster not found: %w", err)
	}
	f.n++
	return &storage.Asset{
		URL:    fmt.Sprintf("https://cdn.test/posters/p%d.png", f.n),
		Handle: fmt.Sprintf("p%d", f.n),
	}, nil
}

func (f *fakeUploader) Delete(_ context.Context, handle string) error {
	f.calls = append(f.calls, "delete:"+handle)
	return f.deleteErr
}

type testEnv struct {
	svc      *Service
	repo     *repository.Repository
	uploader *fakeUploader
	tokens   *utils.TokenManager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	tokens, err := utils.NewTokenManager(utils.JWTConfig{Secret: "test-secret", Issuer: "test"})
	require.NoError(t, err)

	repo := repository.NewMemoryRepository()
	uploader := &fakeUploader{}
	return &testEnv{
		svc:      NewService(repo, tokens, uploader, zap.NewNop()),
		repo:     repo,
		uploader: uploader,
		tokens:   tokens,
	}
}

// poster writes a throwaway file standing in for an uploaded poster.
func poster(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "poster.png")
	require.NoError(t, os.WriteFile(path, []byte("\x89PNG\r\n\x1a\n"), 0o644))
	return path
}

func seedAdmin(t *testing.T, env *testEnv, role entity.AdminRole) *entity.Admin {
	t.Helper()
	admin := &entity.Admin{
		Base:  entity.NewBase(),
		Name:  "admin " + string(role),
		Email: string(role) + "@example.com",
		Role:  role,
	}
	require.NoError(t, env.repo.Admin.Create(context.Background(), admin))
	return admin
}

func seedUser(t *testing.T, env *testEnv, name string) *entity.User {
	t.Helper()
	user := &entity.User{
		Base:  entity.NewBase(),
		Name:  name,
		Email: name + "@example.com",
	}
	require.NoError(t, env.repo.User.Create(context.Background(), user))
	return user
}

func seedMovie(t *testing.T, env *testEnv, title string) *entity.Movie {
	t.Helper()
	movie := &entity.Movie{
		Base:        entity.NewBase(),
		Title:       title,
		Description: "A film about " + title,
		Genre:       entity.GenreDrama,
		Director:    "Jane Doe",
		Cast:        []string{"Lead Actor"},
		ReleaseYear: 2010,
		Rating:      7.5,
		PosterURL:   "https://cdn.test/posters/" + title + ".png",
		PosterID:    "poster-" + title,
	}
	require.NoError(t, env.repo.Movie.Create(context.Background(), movie))
	return movie
}

func validMovieRequest() *request.MovieRequest {
	year := 1999
	rating := 8.7
	return &request.MovieRequest{
		Title:       "The Matrix",
		Description: "A hacker learns the truth about reality.",
		Genre:       request.GenreList{"Sci-Fi"},
		Director:    "Lana Wachowski",
		Cast:        []string{"Keanu Reeves", "Carrie-Anne Moss"},
		ReleaseYear: &year,
		Rating:      &rating,
	}
}

func intPtr(v int) *int           { return &v }
func strPtr(v string) *string     { return &v }
func floatPtr(v float64) *float64 { return &v }
