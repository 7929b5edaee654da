package adaptor

import (
	"net/url"
	"testing"

	"movie-review/internal/dto/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormList(t *testing.T) {
	form := url.Values{
		"cast":   {"A", "B"},
		"genre":  {`["Drama"]`},
		"broken": {`["Drama"`},
		"single": {"Comedy"},
	}

	got, err := formList(form, "cast")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, got)

	got, err = formList(form, "genre")
	require.NoError(t, err)
	assert.Equal(t, []string{"Drama"}, got)

	got, err = formList(form, "single")
	require.NoError(t, err)
	assert.Equal(t, []string{"Comedy"}, got)

	_, err = formList(form, "broken")
	assert.Error(t, err)

	got, err = formList(form, "missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMovieRequestFromForm(t *testing.T) {
	req, errs := movieRequestFromForm(url.Values{
		"title":        {"Alien"},
		"genre":        {"Horror"},
		"cast":         {`["Sigourney Weaver","Tom Skerritt"]`},
		"release_year": {" 1979 "},
		"rating":       {"8.5"},
	})
	require.Empty(t, errs)
	assert.Equal(t, "Alien", req.Title)
	assert.Equal(t, request.GenreList{"Horror"}, req.Genre)
	assert.Equal(t, []string{"Sigourney Weaver", "Tom Skerritt"}, req.Cast)
	require.NotNil(t, req.ReleaseYear)
	assert.Equal(t, 1979, *req.ReleaseYear)
	require.NotNil(t, req.Rating)
	assert.Equal(t, 8.5, *req.Rating)

	_, errs = movieRequestFromForm(url.Values{
		"release_year": {"nineteen"},
		"rating":       {"high"},
	})
	assert.Contains(t, errs, "release_year")
	assert.Contains(t, errs, "rating")
}

func TestMovieUpdateFromForm(t *testing.T) {
	req, errs := movieUpdateFromForm(url.Values{
		"title":  {"Aliens"},
		"budget": {"100"},
	})
	require.Empty(t, errs)
	assert.Equal(t, []string{"budget", "title"}, req.Keys)
	require.NotNil(t, req.Title)
	assert.Equal(t, "Aliens", *req.Title)
	assert.Nil(t, req.Rating)
	assert.Nil(t, req.Genre)
}

func TestMovieUpdateFromJSON(t *testing.T) {
	req, err := movieUpdateFromJSON([]byte(`{"rating": 7.5, "genre": "Drama", "poster": "https://img.example.com/a.jpg"}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"genre", "poster", "rating"}, req.Keys)
	assert.Equal(t, request.GenreList{"Drama"}, req.Genre)
	require.NotNil(t, req.Poster)
	assert.Equal(t, "https://img.example.com/a.jpg", *req.Poster)

	req, err = movieUpdateFromJSON([]byte(`{"genre": ["Drama", "Comedy"]}`))
	require.NoError(t, err)
	assert.Equal(t, request.GenreList{"Drama", "Comedy"}, req.Genre)

	_, err = movieUpdateFromJSON([]byte(`[1, 2]`))
	assert.Error(t, err)
}
