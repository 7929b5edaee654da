package entity

type User struct {
	Base
	Name         string `db:"name"`
	Email        string `db:"email"` // lower-cased, trimmed
	PasswordHash string `db:"password"`
}
