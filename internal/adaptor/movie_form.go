package adaptor

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"movie-review/internal/dto/request"
)

// formList returns the values of key. A field may be repeated, or carry a
// JSON array as its single value.
func formList(form url.Values, key string) ([]string, error) {
	values, ok := form[key]
	if !ok {
		return nil, nil
	}
	if len(values) == 1 && strings.HasPrefix(strings.TrimSpace(values[0]), "[") {
		var list []string
		if err := json.Unmarshal([]byte(values[0]), &list); err != nil {
			return nil, fmt.Errorf("must be a JSON array of strings")
		}
		return list, nil
	}
	return values, nil
}

func formInt(form url.Values, key string, errs map[string]string) *int {
	if _, ok := form[key]; !ok {
		return nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(form.Get(key)))
	if err != nil {
		errs[key] = "Must be a whole number"
		return nil
	}
	return &v
}

func formFloat(form url.Values, key string, errs map[string]string) *float64 {
	if _, ok := form[key]; !ok {
		return nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(form.Get(key)), 64)
	if err != nil {
		errs[key] = "Must be a number"
		return nil
	}
	return &v
}

func formString(form url.Values, key string) *string {
	if _, ok := form[key]; !ok {
		return nil
	}
	v := form.Get(key)
	return &v
}

// movieRequestFromForm builds an add-movie request from multipart fields.
// Fields that cannot be parsed at all are reported in the returned map.
func movieRequestFromForm(form url.Values) (*request.MovieRequest, map[string]string) {
	errs := make(map[string]string)
	req := &request.MovieRequest{
		Title:       form.Get("title"),
		Description: form.Get("description"),
		Director:    form.Get("director"),
		ReleaseYear: formInt(form, "release_year", errs),
		Rating:      formFloat(form, "rating", errs),
	}

	genre, err := formList(form, "genre")
	if err != nil {
		errs["genre"] = err.Error()
	}
	req.Genre = genre

	cast, err := formList(form, "cast")
	if err != nil {
		errs["cast"] = err.Error()
	}
	req.Cast = cast

	return req, errs
}

// movieUpdateFromForm builds an edit-movie request; Keys lists every field
// name the form carried.
func movieUpdateFromForm(form url.Values) (*request.MovieUpdateRequest, map[string]string) {
	errs := make(map[string]string)
	req := &request.MovieUpdateRequest{
		Title:       formString(form, "title"),
		Description: formString(form, "description"),
		Director:    formString(form, "director"),
		Poster:      formString(form, "poster"),
		ReleaseYear: formInt(form, "release_year", errs),
		Rating:      formFloat(form, "rating", errs),
	}

	if genre, err := formList(form, "genre"); err != nil {
		errs["genre"] = err.Error()
	} else if genre != nil {
		req.Genre = genre
	}

	if cast, err := formList(form, "cast"); err != nil {
		errs["cast"] = err.Error()
	} else if cast != nil {
		req.Cast = cast
	}

	req.Keys = sortedKeys(form)
	return req, errs
}

// movieUpdateFromJSON decodes an edit-movie body and records its top-level keys.
func movieUpdateFromJSON(body []byte) (*request.MovieUpdateRequest, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}

	var req request.MovieUpdateRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	req.Keys = keys
	return &req, nil
}

func sortedKeys(form url.Values) []string {
	keys := make([]string, 0, len(form))
	for key := range form {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
