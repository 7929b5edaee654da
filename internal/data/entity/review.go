package entity

import (
	"github.com/google/uuid"
)

// Review is unique per (UserID, MovieID).
type Review struct {
	Base
	UserID  uuid.UUID `db:"user_id"`
	MovieID uuid.UUID `db:"movie_id"`
	Rating  int       `db:"rating"` // 1-5
	Comment string    `db:"comment"`
}
