package request

import "strings"

type CreateReviewRequest struct {
	Rating  *int   `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required,min=1,max=1000"`
}

func (r *CreateReviewRequest) Normalize() {
	r.Comment = strings.TrimSpace(r.Comment)
}

type UpdateReviewRequest struct {
	Rating  *int    `json:"rating,omitempty" validate:"omitnil,min=1,max=5"`
	Comment *string `json:"comment,omitempty" validate:"omitnil,min=1,max=1000"`
}

func (r *UpdateReviewRequest) Normalize() {
	r.Comment = trimPtr(r.Comment)
}

// Empty reports whether the patch carries no field at all.
func (r UpdateReviewRequest) Empty() bool {
	return r.Rating == nil && r.Comment == nil
}
