package usecase

import (
	"context"
	"errors"
	"fmt"

	"movie-review/internal/data/entity"
	"movie-review/internal/data/repository"
	"movie-review/internal/dto/request"
	"movie-review/internal/dto/response"
	"movie-review/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AdminService manages admin identities. Admins never share a table, token
// audience or service with users.
type AdminService interface {
	Register(ctx context.Context, callerID uuid.UUID, req *request.AdminRegisterRequest) (*response.AdminResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	SeedSuperAdmin(ctx context.Context, req *request.AdminRegisterRequest) (*response.AdminResponse, error)
}

type adminService struct {
	repo   *repository.Repository
	tokens *utils.TokenManager
	log    *zap.Logger
}

func NewAdminService(
	repo *repository.Repository,
	tokens *utils.TokenManager,
	log *zap.Logger,
) AdminService {
	return &adminService{
		repo:   repo,
		tokens: tokens,
		log:    log.With(zap.String("service", "admin")),
	}
}

// Register creates an admin on behalf of an existing super_admin.
func (s *adminService) Register(ctx context.Context, callerID uuid.UUID, req *request.AdminRegisterRequest) (*response.AdminResponse, error) {
	caller, err := s.repo.Admin.FindByID(ctx, callerID)
	if err != nil {
		s.log.Error("Failed to load calling admin", zap.Error(err), zap.String("admin_id", callerID.String()))
		return nil, fmt.Errorf("find admin: %w", err)
	}
	if caller == nil {
		return nil, notFound("admin not found")
	}
	if caller.Role != entity.RoleSuperAdmin {
		s.log.Warn("Non super admin tried to register admin", zap.String("admin_id", callerID.String()))
		return nil, forbidden("only super admins can register admins")
	}

	return s.create(ctx, req, "")
}

// SeedSuperAdmin creates a super_admin without a caller. It is only reachable
// from the seed-admin command.
func (s *adminService) SeedSuperAdmin(ctx context.Context, req *request.AdminRegisterRequest) (*response.AdminResponse, error) {
	return s.create(ctx, req, entity.RoleSuperAdmin)
}

func (s *adminService) create(ctx context.Context, req *request.AdminRegisterRequest, forceRole entity.AdminRole) (*response.AdminResponse, error) {
	req.Normalize()
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Admin register validation failed", zap.Any("errors", errs))
		return nil, invalidFields(errs)
	}

	role := entity.RoleMovieAdmin
	if req.Role != "" {
		role = entity.AdminRole(req.Role)
	}
	if forceRole != "" {
		role = forceRole
	}

	existing, err := s.repo.Admin.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to check email", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, conflict("email already registered")
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	admin := &entity.Admin{
		Base:         entity.NewBase(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Role:         role,
	}
	if err := s.repo.Admin.Create(ctx, admin); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, conflict("email already registered")
		}
		s.log.Error("Failed to create admin", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("create admin: %w", err)
	}

	s.log.Info("Admin registered",
		zap.String("admin_id", admin.ID.String()),
		zap.String("email", admin.Email),
		zap.String("role", string(admin.Role)))

	resp := response.AdminToResponse(admin)
	return &resp, nil
}

func (s *adminService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	req.Normalize()
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Admin login validation failed", zap.Any("errors", errs))
		return nil, invalidFields(errs)
	}

	admin, err := s.repo.Admin.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to find admin by email", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("find admin: %w", err)
	}
	if admin == nil {
		return nil, notFound("admin not found")
	}

	if !utils.CheckPasswordHash(req.Password, admin.PasswordHash) {
		s.log.Warn("Invalid admin password", zap.String("admin_id", admin.ID.String()))
		return nil, unauthorized("invalid credentials")
	}

	token, expiresAt, err := s.tokens.Issue(utils.TokenKindAdmin, admin.ID)
	if err != nil {
		s.log.Error("Failed to issue token", zap.Error(err), zap.String("admin_id", admin.ID.String()))
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.log.Info("Admin logged in",
		zap.String("admin_id", admin.ID.String()),
		zap.String("role", string(admin.Role)))

	resp := response.AdminAuthToResponse(admin, token, expiresAt)
	return &resp, nil
}
