package response

import (
	"time"

	"movie-review/internal/data/entity"
)

type AuthResponse struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Email     string           `json:"email"`
	Role      entity.AdminRole `json:"role,omitempty"`
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expires_at"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type AdminResponse struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Email     string           `json:"email"`
	Role      entity.AdminRole `json:"role"`
	CreatedAt time.Time        `json:"created_at"`
}

// Helper converters
func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:        user.ID.String(),
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}

func AdminToResponse(admin *entity.Admin) AdminResponse {
	return AdminResponse{
		ID:        admin.ID.String(),
		Name:      admin.Name,
		Email:     admin.Email,
		Role:      admin.Role,
		CreatedAt: admin.CreatedAt,
	}
}

func UserAuthToResponse(user *entity.User, token string, expiresAt time.Time) AuthResponse {
	return AuthResponse{
		ID:        user.ID.String(),
		Name:      user.Name,
		Email:     user.Email,
		Token:     token,
		ExpiresAt: expiresAt,
	}
}

func AdminAuthToResponse(admin *entity.Admin, token string, expiresAt time.Time) AuthResponse {
	return AuthResponse{
		ID:        admin.ID.String(),
		Name:      admin.Name,
		Email:     admin.Email,
		Role:      admin.Role,
		Token:     token,
		ExpiresAt: expiresAt,
	}
}
