package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"movie-review/internal/data/entity"
	"movie-review/internal/data/repository"
	"movie-review/internal/dto/request"
	"movie-review/internal/dto/response"
	"movie-review/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReviewService interface {
	AddReview(ctx context.Context, userID uuid.UUID, movieID string, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
	EditReview(ctx context.Context, userID uuid.UUID, movieID, reviewID string, req *request.UpdateReviewRequest) (*response.ReviewResponse, error)
	DeleteReview(ctx context.Context, userID uuid.UUID, movieID, reviewID string) error
}

type reviewService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewReviewService(repo *repository.Repository, log *zap.Logger) ReviewService {
	return &reviewService{
		repo: repo,
		log:  log.With(zap.String("service", "review")),
	}
}

func (s *reviewService) AddReview(ctx context.Context, userID uuid.UUID, movieID string, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	// Parse IDs
	movieUUID, err := uuid.Parse(movieID)
	if err != nil {
		return nil, validationError("invalid movie id")
	}

	// Validate request
	req.Normalize()
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create review validation failed", zap.Any("errors", errs))
		return nil, invalidFields(errs)
	}

	// Check user and movie exist
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to get user", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, notFound("user not found")
	}

	if _, err := s.movie(ctx, movieUUID); err != nil {
		return nil, err
	}

	// One review per user and movie
	existing, err := s.repo.Review.FindByUserAndMovie(ctx, userID, movieUUID)
	if err != nil {
		s.log.Error("Failed to check existing review", zap.Error(err))
		return nil, fmt.Errorf("check existing review: %w", err)
	}
	if existing != nil {
		return nil, conflict("you have already reviewed this movie")
	}

	review := &entity.Review{
		Base:    entity.NewBase(),
		UserID:  userID,
		MovieID: movieUUID,
		Rating:  *req.Rating,
		Comment: req.Comment,
	}
	if err := s.repo.Review.Create(ctx, review); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, conflict("you have already reviewed this movie")
		}
		s.log.Error("Failed to create review", zap.Error(err))
		return nil, fmt.Errorf("create review: %w", err)
	}

	// Link review to movie; undo the insert if that fails.
	if err := s.repo.Movie.AppendReview(ctx, movieUUID, review.ID); err != nil {
		s.log.Error("Failed to link review to movie",
			zap.Error(err),
			zap.String("review_id", review.ID.String()),
			zap.String("movie_id", movieID),
		)
		if delErr := s.repo.Review.Delete(ctx, review.ID); delErr != nil {
			s.log.Error("Failed to roll back review", zap.Error(delErr), zap.String("review_id", review.ID.String()))
		}
		return nil, fmt.Errorf("link review: %w", err)
	}

	s.log.Info("Review created",
		zap.String("review_id", review.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("movie_id", movieID),
		zap.Int("rating", review.Rating),
	)

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *reviewService) EditReview(ctx context.Context, userID uuid.UUID, movieID, reviewID string, req *request.UpdateReviewRequest) (*response.ReviewResponse, error) {
	req.Normalize()
	if req.Empty() {
		return nil, validationError("at least one of rating or comment is required")
	}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update review validation failed", zap.Any("errors", errs))
		return nil, invalidFields(errs)
	}

	review, err := s.ownedReview(ctx, userID, movieID, reviewID, "edit")
	if err != nil {
		return nil, err
	}

	if req.Rating != nil {
		review.Rating = *req.Rating
	}
	if req.Comment != nil {
		review.Comment = *req.Comment
	}
	review.UpdatedAt = time.Now().UTC()

	if err := s.repo.Review.Update(ctx, review); err != nil {
		s.log.Error("Failed to update review", zap.Error(err), zap.String("review_id", reviewID))
		return nil, fmt.Errorf("update review: %w", err)
	}

	s.log.Info("Review updated",
		zap.String("review_id", reviewID),
		zap.String("user_id", userID.String()),
	)

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, userID uuid.UUID, movieID, reviewID string) error {
	review, err := s.ownedReview(ctx, userID, movieID, reviewID, "delete")
	if err != nil {
		return err
	}

	if err := s.repo.Review.Delete(ctx, review.ID); err != nil {
		s.log.Error("Failed to delete review", zap.Error(err), zap.String("review_id", reviewID))
		return fmt.Errorf("delete review: %w", err)
	}

	if err := s.repo.Movie.RemoveReview(ctx, review.MovieID, review.ID); err != nil {
		s.log.Error("Failed to unlink review from movie",
			zap.Error(err),
			zap.String("review_id", reviewID),
			zap.String("movie_id", movieID),
		)
		return fmt.Errorf("unlink review: %w", err)
	}

	s.log.Info("Review deleted",
		zap.String("review_id", reviewID),
		zap.String("user_id", userID.String()),
	)
	return nil
}

// ownedReview loads a review of movieID and checks that userID wrote it.
// A review of another movie is reported as missing.
func (s *reviewService) ownedReview(ctx context.Context, userID uuid.UUID, movieID, reviewID, action string) (*entity.Review, error) {
	movieUUID, err := uuid.Parse(movieID)
	if err != nil {
		return nil, validationError("invalid movie id")
	}
	reviewUUID, err := uuid.Parse(reviewID)
	if err != nil {
		return nil, validationError("invalid review id")
	}

	if _, err := s.movie(ctx, movieUUID); err != nil {
		return nil, err
	}

	review, err := s.repo.Review.FindByID(ctx, reviewUUID)
	if err != nil {
		s.log.Error("Failed to get review", zap.Error(err), zap.String("review_id", reviewID))
		return nil, fmt.Errorf("get review: %w", err)
	}
	if review == nil || review.MovieID != movieUUID {
		return nil, notFound("review not found")
	}

	if review.UserID != userID {
		s.log.Warn("Review ownership mismatch",
			zap.String("review_id", reviewID),
			zap.String("owner_id", review.UserID.String()),
			zap.String("user_id", userID.String()),
		)
		return nil, forbidden("you can only %s your own review", action)
	}

	return review, nil
}

func (s *reviewService) movie(ctx context.Context, id uuid.UUID) (*entity.Movie, error) {
	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get movie", zap.Error(err), zap.String("movie_id", id.String()))
		return nil, fmt.Errorf("get movie: %w", err)
	}
	if movie == nil {
		return nil, notFound("movie not found")
	}
	return movie, nil
}
