package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"movie-review/internal/data/entity"
	"movie-review/internal/data/repository"
	"movie-review/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addReview(t *testing.T, env *testEnv, user *entity.User, movie *entity.Movie, rating int, comment string) uuid.UUID {
	t.Helper()
	review, err := env.svc.Review.AddReview(context.Background(), user.ID, movie.ID.String(), &request.CreateReviewRequest{
		Rating:  intPtr(rating),
		Comment: comment,
	})
	require.NoError(t, err)
	return uuid.MustParse(review.ID)
}

func TestReviewService_AddReview(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := seedUser(t, env, "alice")
	movie := seedMovie(t, env, "Heat")

	review, err := env.svc.Review.AddReview(ctx, user.ID, movie.ID.String(), &request.CreateReviewRequest{
		Rating:  intPtr(4),
		Comment: "  Solid heist film  ",
	})
	require.NoError(t, err)
	assert.Equal(t, 4, review.Rating)
	assert.Equal(t, "Solid heist film", review.Comment)
	assert.Equal(t, user.ID.String(), review.UserID)

	stored, err := env.repo.Movie.FindByID(ctx, movie.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{uuid.MustParse(review.ID)}, stored.ReviewIDs)
}

func TestReviewService_AddReviewOncePerMovie(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := seedUser(t, env, "alice")
	movie := seedMovie(t, env, "Heat")
	first := addReview(t, env, user, movie, 5, "Loved it")

	_, err := env.svc.Review.AddReview(ctx, user.ID, movie.ID.String(), &request.CreateReviewRequest{
		Rating:  intPtr(1),
		Comment: "Changed my mind",
	})
	assert.ErrorIs(t, err, ErrConflict)

	reviews, err := env.repo.Review.FindByMovieID(ctx, movie.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, first, reviews[0].ID)
	assert.Equal(t, 5, reviews[0].Rating)

	stored, err := env.repo.Movie.FindByID(ctx, movie.ID)
	require.NoError(t, err)
	assert.Len(t, stored.ReviewIDs, 1)

	// another movie is fine
	other := seedMovie(t, env, "Ronin")
	addReview(t, env, user, other, 3, "Good chase")
}

// lateReviews misses the existing review on lookup and then hits the unique
// index on insert, as a concurrent writer would.
type lateReviews struct {
	repository.ReviewRepository
}

func (lateReviews) FindByUserAndMovie(context.Context, uuid.UUID, uuid.UUID) (*entity.Review, error) {
	return nil, nil
}

func (lateReviews) Create(_ context.Context, review *entity.Review) error {
	return fmt.Errorf("create review for movie %s: %w", review.MovieID, repository.ErrDuplicate)
}

func TestReviewService_AddReviewLosesRace(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := seedUser(t, env, "alice")
	movie := seedMovie(t, env, "Heat")
	env.repo.Review = lateReviews{ReviewRepository: env.repo.Review}

	_, err := env.svc.Review.AddReview(ctx, user.ID, movie.ID.String(), &request.CreateReviewRequest{
		Rating:  intPtr(5),
		Comment: "Second writer",
	})
	assert.ErrorIs(t, err, ErrConflict)
	assert.EqualError(t, err, "you have already reviewed this movie")

	stored, err := env.repo.Movie.FindByID(ctx, movie.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.ReviewIDs)
}

func TestReviewService_AddReviewRejects(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := seedUser(t, env, "alice")
	movie := seedMovie(t, env, "Heat")

	tests := []struct {
		name    string
		userID  uuid.UUID
		movieID string
		req     request.CreateReviewRequest
		kind    error
	}{
		{"rating too high", user.ID, movie.ID.String(), request.CreateReviewRequest{Rating: intPtr(6), Comment: "x"}, ErrValidation},
		{"rating too low", user.ID, movie.ID.String(), request.CreateReviewRequest{Rating: intPtr(0), Comment: "x"}, ErrValidation},
		{"missing rating", user.ID, movie.ID.String(), request.CreateReviewRequest{Comment: "x"}, ErrValidation},
		{"blank comment", user.ID, movie.ID.String(), request.CreateReviewRequest{Rating: intPtr(3), Comment: "   "}, ErrValidation},
		{"bad movie id", user.ID, "nope", request.CreateReviewRequest{Rating: intPtr(3), Comment: "x"}, ErrValidation},
		{"unknown movie", user.ID, uuid.NewString(), request.CreateReviewRequest{Rating: intPtr(3), Comment: "x"}, ErrNotFound},
		{"unknown user", uuid.New(), movie.ID.String(), request.CreateReviewRequest{Rating: intPtr(3), Comment: "x"}, ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			_, err := env.svc.Review.AddReview(ctx, tt.userID, tt.movieID, &req)
			assert.ErrorIs(t, err, tt.kind)
		})
	}

	reviews, err := env.repo.Review.FindByMovieID(ctx, movie.ID)
	require.NoError(t, err)
	assert.Empty(t, reviews)
}

func TestReviewService_EditReview(t *testing.T) {
	ctx := context.Background()

	t.Run("partial update", func(t *testing.T) {
		env := newTestEnv(t)
		user := seedUser(t, env, "alice")
		movie := seedMovie(t, env, "Heat")
		id := addReview(t, env, user, movie, 3, "Decent")

		updated, err := env.svc.Review.EditReview(ctx, user.ID, movie.ID.String(), id.String(), &request.UpdateReviewRequest{
			Rating: intPtr(5),
		})
		require.NoError(t, err)
		assert.Equal(t, 5, updated.Rating)
		assert.Equal(t, "Decent", updated.Comment)

		stored, err := env.repo.Review.FindByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, 5, stored.Rating)
		assert.Equal(t, "Decent", stored.Comment)
	})

	t.Run("empty patch", func(t *testing.T) {
		env := newTestEnv(t)
		user := seedUser(t, env, "alice")
		movie := seedMovie(t, env, "Heat")
		id := addReview(t, env, user, movie, 3, "Decent")

		_, err := env.svc.Review.EditReview(ctx, user.ID, movie.ID.String(), id.String(), &request.UpdateReviewRequest{})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("invalid values", func(t *testing.T) {
		env := newTestEnv(t)
		user := seedUser(t, env, "alice")
		movie := seedMovie(t, env, "Heat")
		id := addReview(t, env, user, movie, 3, "Decent")

		_, err := env.svc.Review.EditReview(ctx, user.ID, movie.ID.String(), id.String(), &request.UpdateReviewRequest{
			Rating: intPtr(9),
		})
		assert.ErrorIs(t, err, ErrValidation)

		_, err = env.svc.Review.EditReview(ctx, user.ID, movie.ID.String(), id.String(), &request.UpdateReviewRequest{
			Comment: strPtr(""),
		})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("someone else's review", func(t *testing.T) {
		env := newTestEnv(t)
		alice := seedUser(t, env, "alice")
		bob := seedUser(t, env, "bob")
		movie := seedMovie(t, env, "Heat")
		id := addReview(t, env, alice, movie, 3, "Decent")

		_, err := env.svc.Review.EditReview(ctx, bob.ID, movie.ID.String(), id.String(), &request.UpdateReviewRequest{
			Comment: strPtr("Hijacked"),
		})
		assert.ErrorIs(t, err, ErrForbidden)
		assert.EqualError(t, err, "you can only edit your own review")

		stored, err := env.repo.Review.FindByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Decent", stored.Comment)
	})

	t.Run("review of another movie", func(t *testing.T) {
		env := newTestEnv(t)
		user := seedUser(t, env, "alice")
		heat := seedMovie(t, env, "Heat")
		ronin := seedMovie(t, env, "Ronin")
		id := addReview(t, env, user, heat, 3, "Decent")

		_, err := env.svc.Review.EditReview(ctx, user.ID, ronin.ID.String(), id.String(), &request.UpdateReviewRequest{
			Rating: intPtr(1),
		})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("bad ids", func(t *testing.T) {
		env := newTestEnv(t)
		user := seedUser(t, env, "alice")
		movie := seedMovie(t, env, "Heat")
		patch := &request.UpdateReviewRequest{Rating: intPtr(2)}

		_, err := env.svc.Review.EditReview(ctx, user.ID, movie.ID.String(), "nope", patch)
		assert.ErrorIs(t, err, ErrValidation)

		_, err = env.svc.Review.EditReview(ctx, user.ID, movie.ID.String(), uuid.NewString(), patch)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestReviewService_DeleteReview(t *testing.T) {
	ctx := context.Background()

	t.Run("owner deletes", func(t *testing.T) {
		env := newTestEnv(t)
		alice := seedUser(t, env, "alice")
		bob := seedUser(t, env, "bob")
		movie := seedMovie(t, env, "Heat")
		mine := addReview(t, env, alice, movie, 4, "Nice")
		theirs := addReview(t, env, bob, movie, 2, "Meh")

		require.NoError(t, env.svc.Review.DeleteReview(ctx, alice.ID, movie.ID.String(), mine.String()))

		gone, err := env.repo.Review.FindByID(ctx, mine)
		require.NoError(t, err)
		assert.Nil(t, gone)

		stored, err := env.repo.Movie.FindByID(ctx, movie.ID)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{theirs}, stored.ReviewIDs)

		// the pair is free again
		addReview(t, env, alice, movie, 5, "Second look")
	})

	t.Run("someone else's review", func(t *testing.T) {
		env := newTestEnv(t)
		alice := seedUser(t, env, "alice")
		bob := seedUser(t, env, "bob")
		movie := seedMovie(t, env, "Heat")
		id := addReview(t, env, alice, movie, 4, "Nice")

		err := env.svc.Review.DeleteReview(ctx, bob.ID, movie.ID.String(), id.String())
		assert.ErrorIs(t, err, ErrForbidden)
		assert.EqualError(t, err, "you can only delete your own review")

		stored, err := env.repo.Review.FindByID(ctx, id)
		require.NoError(t, err)
		assert.NotNil(t, stored)
	})

	t.Run("missing movie", func(t *testing.T) {
		env := newTestEnv(t)
		user := seedUser(t, env, "alice")

		err := env.svc.Review.DeleteReview(ctx, user.ID, uuid.NewString(), uuid.NewString())
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestReviewService_ValidationReportsFields(t *testing.T) {
	env := newTestEnv(t)
	user := seedUser(t, env, "alice")
	movie := seedMovie(t, env, "Heat")

	_, err := env.svc.Review.AddReview(context.Background(), user.ID, movie.ID.String(), &request.CreateReviewRequest{
		Rating:  intPtr(9),
		Comment: " ",
	})
	require.ErrorIs(t, err, ErrValidation)

	var svcErr *Error
	require.True(t, errors.As(err, &svcErr))
	assert.Equal(t, "Validation failed", svcErr.Msg)
	assert.Equal(t, map[string]string{
		"rating":  "Maximum value is 5",
		"comment": "This field is required",
	}, svcErr.Fields)
	assert.Equal(t, "Validation failed: comment: This field is required; rating: Maximum value is 5", err.Error())
}
