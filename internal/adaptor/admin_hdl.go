package adaptor

import (
	"net/http"

	"movie-review/internal/dto/request"
	"movie-review/internal/usecase"
	"movie-review/pkg/utils"

	"go.uber.org/zap"
)

type AdminHandler struct {
	service usecase.AdminService
	log     *zap.Logger
}

func NewAdminHandler(service usecase.AdminService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		log:     log.With(zap.String("handler", "admin")),
	}
}

// Register handles POST /api/admin/register (super_admin only)
func (h *AdminHandler) Register(w http.ResponseWriter, r *http.Request) {
	caller, ok := utils.GetAdminFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.AdminRegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	admin, err := h.service.Register(r.Context(), caller.ID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "register admin")
		return
	}

	utils.ResponseCreated(w, "Admin registered successfully", admin)
}

// Login handles POST /api/admin/login
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	auth, err := h.service.Login(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "login admin")
		return
	}

	utils.ResponseSuccess(w, "Login successful", auth)
}
