package entity

import "github.com/google/uuid"

type Genre string

const (
	GenreAction    Genre = "Action"
	GenreAdventure Genre = "Adventure"
	GenreComedy    Genre = "Comedy"
	GenreDrama     Genre = "Drama"
	GenreFantasy   Genre = "Fantasy"
	GenreHorror    Genre = "Horror"
	GenreMystery   Genre = "Mystery"
	GenreRomance   Genre = "Romance"
	GenreThriller  Genre = "Thriller"
	GenreSciFi     Genre = "Sci-Fi"
)

// Genres lists the catalog genres in display order.
var Genres = []Genre{
	GenreAction, GenreAdventure, GenreComedy, GenreDrama, GenreFantasy,
	GenreHorror, GenreMystery, GenreRomance, GenreThriller, GenreSciFi,
}

func (g Genre) Valid() bool {
	for _, known := range Genres {
		if g == known {
			return true
		}
	}
	return false
}

type Movie struct {
	Base
	Title       string      `db:"title"`
	Description string      `db:"description"`
	Genre       Genre       `db:"genre"`
	Director    string      `db:"director"`
	Cast        []string    `db:"cast_members"`
	ReleaseYear int         `db:"release_year"`
	Rating      float64     `db:"rating"` // 0-10
	PosterURL   string      `db:"poster_url"`
	PosterID    string      `db:"poster_id"` // asset handle at the image host
	ReviewIDs   []uuid.UUID `db:"review_ids"`
}
