package request

import "movie-review/pkg/utils"

type PaginatedRequest struct {
	Page    int `json:"page"`
	PerPage int `json:"limit"`
}

func (p PaginatedRequest) Offset() int {
	return utils.CalculateOffset(p.CurrentPage(), p.Limit())
}

// CurrentPage is Page, or 1 when unset or invalid.
func (p PaginatedRequest) CurrentPage() int {
	if p.Page < 1 {
		return utils.DefaultPage
	}
	return p.Page
}

func (p PaginatedRequest) Limit() int {
	if p.PerPage < 1 {
		return utils.DefaultPerPage
	}
	if p.PerPage > utils.MaxPerPage {
		return utils.MaxPerPage
	}
	return p.PerPage
}

type MovieListRequest struct {
	PaginatedRequest
	Search string `json:"search"`
	Genre  string `json:"genre"`
}
