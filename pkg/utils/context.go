package utils

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	UserKey  contextKey = "user"
	AdminKey contextKey = "admin"
)

// UserIdentity is what UserAuth attaches to the request.
type UserIdentity struct {
	ID    uuid.UUID
	Name  string
	Email string
}

// AdminIdentity is what AdminAuth attaches to the request.
type AdminIdentity struct {
	ID    uuid.UUID
	Name  string
	Email string
	Role  string
}

func SetUserContext(ctx context.Context, user UserIdentity) context.Context {
	return context.WithValue(ctx, UserKey, user)
}

func GetUserFromContext(ctx context.Context) (UserIdentity, bool) {
	user, ok := ctx.Value(UserKey).(UserIdentity)
	if !ok || user.ID == uuid.Nil {
		return UserIdentity{}, false
	}
	return user, true
}

func SetAdminContext(ctx context.Context, admin AdminIdentity) context.Context {
	return context.WithValue(ctx, AdminKey, admin)
}

func GetAdminFromContext(ctx context.Context) (AdminIdentity, bool) {
	admin, ok := ctx.Value(AdminKey).(AdminIdentity)
	if !ok || admin.ID == uuid.Nil {
		return AdminIdentity{}, false
	}
	return admin, true
}
