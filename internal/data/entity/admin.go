package entity

type AdminRole string

const (
	RoleSuperAdmin AdminRole = "super_admin"
	RoleMovieAdmin AdminRole = "movie_admin"
)

func (r AdminRole) Valid() bool {
	return r == RoleSuperAdmin || r == RoleMovieAdmin
}

// Admin lives in its own table and token audience; it is never a User.
type Admin struct {
	Base
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password"`
	Role         AdminRole `db:"role"`
}
