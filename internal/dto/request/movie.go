package request

import (
	"encoding/json"
	"strings"
)

// GenreList accepts either a single genre or a list of genres.
type GenreList []string

func (g *GenreList) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		*g = GenreList{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*g = many
	return nil
}

// Single returns the genre of a one-element list.
func (g GenreList) Single() string {
	if len(g) == 0 {
		return ""
	}
	return g[0]
}

type MovieRequest struct {
	Title       string    `json:"title" validate:"required,min=1,max=100"`
	Description string    `json:"description" validate:"required,min=1,max=500"`
	Genre       GenreList `json:"genre" validate:"required,len=1,dive,required,oneof=Action Adventure Comedy Drama Fantasy Horror Mystery Romance Thriller Sci-Fi"`
	Director    string    `json:"director" validate:"required,min=1,max=100"`
	Cast        []string  `json:"cast" validate:"required,min=1,dive,required,max=100"`
	ReleaseYear *int      `json:"release_year" validate:"required,releaseyear"`
	Rating      *float64  `json:"rating" validate:"required,min=0,max=10"`
}

func (r *MovieRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.Director = strings.TrimSpace(r.Director)
	r.Genre = trimAll(r.Genre)
	r.Cast = trimAll(r.Cast)
}

// MoviePatchFields are the only keys an edit may carry.
var MoviePatchFields = []string{
	"title", "description", "genre", "director", "cast", "release_year", "rating", "poster",
}

// UnknownMovieFields returns the keys outside MoviePatchFields, in input order.
func UnknownMovieFields(keys []string) []string {
	var unknown []string
	for _, key := range keys {
		known := false
		for _, field := range MoviePatchFields {
			if key == field {
				known = true
				break
			}
		}
		if !known {
			unknown = append(unknown, key)
		}
	}
	return unknown
}

type MovieUpdateRequest struct {
	Title       *string   `json:"title,omitempty" validate:"omitnil,min=1,max=100"`
	Description *string   `json:"description,omitempty" validate:"omitnil,min=1,max=500"`
	Genre       GenreList `json:"genre,omitempty" validate:"omitnil,len=1,dive,required,oneof=Action Adventure Comedy Drama Fantasy Horror Mystery Romance Thriller Sci-Fi"`
	Director    *string   `json:"director,omitempty" validate:"omitnil,min=1,max=100"`
	Cast        []string  `json:"cast,omitempty" validate:"omitnil,min=1,dive,required,max=100"`
	ReleaseYear *int      `json:"release_year,omitempty" validate:"omitnil,releaseyear"`
	Rating      *float64  `json:"rating,omitempty" validate:"omitnil,min=0,max=10"`
	Poster      *string   `json:"poster,omitempty" validate:"omitnil,url"`

	// Keys holds every key the client sent, known or not.
	Keys []string `json:"-"`
}

func (r *MovieUpdateRequest) Normalize() {
	r.Title = trimPtr(r.Title)
	r.Description = trimPtr(r.Description)
	r.Director = trimPtr(r.Director)
	r.Poster = trimPtr(r.Poster)
	if r.Genre != nil {
		r.Genre = trimAll(r.Genre)
	}
	if r.Cast != nil {
		r.Cast = trimAll(r.Cast)
	}
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

func trimAll[S ~[]string](in S) S {
	out := make(S, len(in))
	for i, s := range in {
		out[i] = strings.TrimSpace(s)
	}
	return out
}
