package repository

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"movie-review/internal/data/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMovie(title string, genre entity.Genre, cast ...string) *entity.Movie {
	return &entity.Movie{
		Base:        entity.NewBase(),
		Title:       title,
		Description: "a film",
		Genre:       genre,
		Director:    "Someone",
		Cast:        cast,
		ReleaseYear: 2001,
		Rating:      7,
	}
}

func TestMemoryUsers_EmailUniqueCaseInsensitive(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.User.Create(ctx, &entity.User{Base: entity.NewBase(), Name: "alice", Email: "alice@example.com"}))

	err := repo.User.Create(ctx, &entity.User{Base: entity.NewBase(), Name: "alice2", Email: "ALICE@example.com"})
	assert.True(t, errors.Is(err, ErrDuplicate))

	found, err := repo.User.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "alice", found.Name)

	missing, err := repo.User.FindByEmail(ctx, "bob@example.com")
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMemoryMovies_SearchAndGenreFilter(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.Movie.Create(ctx, newMovie("Alien", entity.GenreSciFi, "Sigourney Weaver")))
	require.NoError(t, repo.Movie.Create(ctx, newMovie("Heat", entity.GenreThriller, "Al Pacino")))
	require.NoError(t, repo.Movie.Create(ctx, newMovie("Up", entity.GenreAdventure, "Ed Asner")))

	total, err := repo.Movie.CountAll(ctx, MovieFilter{Search: "weaver"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	total, err = repo.Movie.CountAll(ctx, MovieFilter{Search: "al"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total) // Alien title, Al Pacino cast

	movies, err := repo.Movie.FindAll(ctx, MovieFilter{Search: "al", Genre: entity.GenreThriller}, 10, 0)
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, "Heat", movies[0].Title)
}

func TestMemoryMovies_Paging(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	base := time.Now().UTC()
	for i := 0; i < 25; i++ {
		m := newMovie("Movie", entity.GenreDrama, "Cast")
		m.CreatedAt = base.Add(time.Duration(i) * time.Second)
		require.NoError(t, repo.Movie.Create(ctx, m))
	}

	page, err := repo.Movie.FindAll(ctx, MovieFilter{}, 10, 20)
	require.NoError(t, err)
	assert.Len(t, page, 5)

	empty, err := repo.Movie.FindAll(ctx, MovieFilter{}, 10, 30)
	require.NoError(t, err)
	assert.Empty(t, empty)

	for _, offset := range []int{-5, math.MaxInt} {
		empty, err = repo.Movie.FindAll(ctx, MovieFilter{}, 10, offset)
		require.NoError(t, err)
		assert.Empty(t, empty, offset)
	}

	tail, err := repo.Movie.FindAll(ctx, MovieFilter{}, math.MaxInt, 24)
	require.NoError(t, err)
	assert.Len(t, tail, 1)
}

func TestMemoryMovies_ReviewBackReferences(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	movie := newMovie("Alien", entity.GenreSciFi, "Sigourney Weaver")
	require.NoError(t, repo.Movie.Create(ctx, movie))

	first, second := entity.NewBase().ID, entity.NewBase().ID
	require.NoError(t, repo.Movie.AppendReview(ctx, movie.ID, first))
	require.NoError(t, repo.Movie.AppendReview(ctx, movie.ID, second))
	require.NoError(t, repo.Movie.RemoveReview(ctx, movie.ID, first))

	stored, err := repo.Movie.FindByID(ctx, movie.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{second}, stored.ReviewIDs)

	// Update never clobbers the back-references.
	stored.Title = "Aliens"
	stored.ReviewIDs = nil
	require.NoError(t, repo.Movie.Update(ctx, stored))
	again, err := repo.Movie.FindByID(ctx, movie.ID)
	require.NoError(t, err)
	assert.Equal(t, "Aliens", again.Title)
	assert.Len(t, again.ReviewIDs, 1)

	assert.Error(t, repo.Movie.AppendReview(ctx, entity.NewBase().ID, first))
}

func TestMemoryReviews_OnePerUserAndMovie(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	user, movie := entity.NewBase().ID, entity.NewBase().ID
	review := &entity.Review{Base: entity.NewBase(), UserID: user, MovieID: movie, Rating: 4, Comment: "good"}
	require.NoError(t, repo.Review.Create(ctx, review))

	dup := &entity.Review{Base: entity.NewBase(), UserID: user, MovieID: movie, Rating: 1, Comment: "bad"}
	assert.ErrorIs(t, repo.Review.Create(ctx, dup), ErrDuplicate)

	reviews, err := repo.Review.FindByMovieID(ctx, movie)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, "good", reviews[0].Comment)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\% \_x\\`, escapeLike(`100% _x\`))

	where, args := buildMovieWhere(MovieFilter{Search: " dune ", Genre: entity.GenreSciFi})
	assert.Contains(t, where, "unnest(cast_members)")
	assert.Contains(t, where, "genre = $2")
	assert.Equal(t, []interface{}{"%dune%", entity.GenreSciFi}, args)

	where, args = buildMovieWhere(MovieFilter{})
	assert.Empty(t, where)
	assert.Empty(t, args)
}
