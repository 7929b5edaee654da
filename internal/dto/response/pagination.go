package response

import "movie-review/pkg/utils"

// PaginationMeta describes one page of a filtered result set.
type PaginationMeta struct {
	TotalMovies int64 `json:"total_movies"`
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	TotalPages  int   `json:"total_pages"`
}

func NewPaginationMeta(page, perPage int, total int64) PaginationMeta {
	return PaginationMeta{
		TotalMovies: total,
		CurrentPage: page,
		PerPage:     perPage,
		TotalPages:  utils.CalculateTotalPages(total, perPage),
	}
}
