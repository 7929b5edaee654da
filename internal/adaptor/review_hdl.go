package adaptor

import (
	"net/http"

	"movie-review/internal/dto/request"
	"movie-review/internal/usecase"
	"movie-review/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ReviewHandler struct {
	service usecase.ReviewService
	log     *zap.Logger
}

func NewReviewHandler(service usecase.ReviewService, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		log:     log.With(zap.String("handler", "review")),
	}
}

// AddReview handles POST /api/reviews/{movieId}
func (h *ReviewHandler) AddReview(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetUserFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateReviewRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	review, err := h.service.AddReview(r.Context(), user.ID, chi.URLParam(r, "movieId"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "add review")
		return
	}

	utils.ResponseCreated(w, "Review added successfully", review)
}

// EditReview handles PATCH /api/reviews/{movieId}/{reviewId}/edit
func (h *ReviewHandler) EditReview(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetUserFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.UpdateReviewRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	review, err := h.service.EditReview(r.Context(), user.ID,
		chi.URLParam(r, "movieId"), chi.URLParam(r, "reviewId"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "edit review")
		return
	}

	utils.ResponseSuccess(w, "Review updated successfully", review)
}

// DeleteReview handles DELETE /api/reviews/{movieId}/{reviewId}/delete
func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetUserFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	err := h.service.DeleteReview(r.Context(), user.ID,
		chi.URLParam(r, "movieId"), chi.URLParam(r, "reviewId"))
	if err != nil {
		handleServiceError(w, h.log, err, "delete review")
		return
	}

	utils.ResponseSuccess(w, "Review deleted successfully", nil)
}
