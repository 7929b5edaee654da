package middleware

import (
	"errors"
	"net/http"

	"movie-review/internal/data/entity"
	"movie-review/internal/data/repository"
	"movie-review/pkg/utils"

	"go.uber.org/zap"
)

// UserAuth verifies a user bearer token and attaches the user to the context.
// A valid token whose user no longer exists is rejected.
func UserAuth(tokens *utils.TokenManager, userRepo repository.UserRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := utils.ExtractBearerToken(r.Header.Get("Authorization"))
			if err != nil {
				utils.ResponseUnauthorized(w, "Missing or malformed token. Use: Bearer <token>")
				return
			}

			userID, err := tokens.Verify(utils.TokenKindUser, token)
			if err != nil {
				logger.Warn("Rejected user token", zap.Error(err), zap.String("path", r.URL.Path))
				utils.ResponseUnauthorized(w, tokenMessage(err))
				return
			}

			user, err := userRepo.FindByID(r.Context(), userID)
			if err != nil {
				logger.Error("Failed to load user for token",
					zap.Error(err), zap.String("user_id", userID.String()))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}
			if user == nil {
				logger.Warn("Token for unknown user", zap.String("user_id", userID.String()))
				utils.ResponseUnauthorized(w, "User no longer exists")
				return
			}

			ctx := utils.SetUserContext(r.Context(), utils.UserIdentity{
				ID:    user.ID,
				Name:  user.Name,
				Email: user.Email,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminAuth is UserAuth for the admin identity space.
func AdminAuth(tokens *utils.TokenManager, adminRepo repository.AdminRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := utils.ExtractBearerToken(r.Header.Get("Authorization"))
			if err != nil {
				utils.ResponseUnauthorized(w, "Missing or malformed token. Use: Bearer <token>")
				return
			}

			adminID, err := tokens.Verify(utils.TokenKindAdmin, token)
			if err != nil {
				logger.Warn("Rejected admin token", zap.Error(err), zap.String("path", r.URL.Path))
				utils.ResponseUnauthorized(w, tokenMessage(err))
				return
			}

			admin, err := adminRepo.FindByID(r.Context(), adminID)
			if err != nil {
				logger.Error("Failed to load admin for token",
					zap.Error(err), zap.String("admin_id", adminID.String()))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}
			if admin == nil {
				logger.Warn("Token for unknown admin", zap.String("admin_id", adminID.String()))
				utils.ResponseUnauthorized(w, "Admin no longer exists")
				return
			}

			ctx := utils.SetAdminContext(r.Context(), utils.AdminIdentity{
				ID:    admin.ID,
				Name:  admin.Name,
				Email: admin.Email,
				Role:  string(admin.Role),
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdminRole lets the request through only if the admin set by
// AdminAuth holds one of roles. An empty role set fails every request.
func RequireAdminRole(logger *zap.Logger, roles ...entity.AdminRole) func(http.Handler) http.Handler {
	allowed := make(map[entity.AdminRole]struct{}, len(roles))
	for _, role := range roles {
		if role.Valid() {
			allowed[role] = struct{}{}
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(allowed) == 0 {
				logger.Error("Role gate configured without roles", zap.String("path", r.URL.Path))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			admin, ok := utils.GetAdminFromContext(r.Context())
			if !ok {
				utils.ResponseForbidden(w, "Admin access required")
				return
			}

			if _, ok := allowed[entity.AdminRole(admin.Role)]; !ok {
				logger.Warn("Role gate: access denied",
					zap.String("admin_id", admin.ID.String()),
					zap.String("role", admin.Role),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Access denied for role "+admin.Role)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func tokenMessage(err error) string {
	if errors.Is(err, utils.ErrExpiredToken) {
		return "Token expired"
	}
	return "Invalid token"
}
