package request

import (
	"strings"

	"movie-review/pkg/utils"
)

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=3,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
}

// Normalize trims every field and lower-cases the email.
func (r *RegisterRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = utils.NormalizeEmail(r.Email)
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
}

func (r *LoginRequest) Normalize() {
	r.Email = utils.NormalizeEmail(r.Email)
}

type AdminRegisterRequest struct {
	Name     string `json:"name" validate:"required,min=3,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
	Role     string `json:"role,omitempty" validate:"omitempty,oneof=super_admin movie_admin"`
}

func (r *AdminRegisterRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = utils.NormalizeEmail(r.Email)
	r.Role = strings.TrimSpace(r.Role)
}
