package response

import (
	"time"

	"movie-review/internal/data/entity"
)

type MovieResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Genre       string    `json:"genre"`
	Director    string    `json:"director"`
	Cast        []string  `json:"cast"`
	ReleaseYear int       `json:"release_year"`
	Rating      float64   `json:"rating"`
	PosterURL   string    `json:"poster_url"`
	Reviews     []string  `json:"reviews"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type MovieDetailResponse struct {
	MovieResponse
	ReviewList []ReviewResponse `json:"review_list"`
}

type MovieListResponse struct {
	Movies     []MovieResponse `json:"movies"`
	Pagination PaginationMeta  `json:"pagination"`
}

// Helper converters
func MovieToResponse(movie *entity.Movie) MovieResponse {
	reviews := make([]string, 0, len(movie.ReviewIDs))
	for _, id := range movie.ReviewIDs {
		reviews = append(reviews, id.String())
	}

	cast := movie.Cast
	if cast == nil {
		cast = []string{}
	}

	return MovieResponse{
		ID:          movie.ID.String(),
		Title:       movie.Title,
		Description: movie.Description,
		Genre:       string(movie.Genre),
		Director:    movie.Director,
		Cast:        cast,
		ReleaseYear: movie.ReleaseYear,
		Rating:      movie.Rating,
		PosterURL:   movie.PosterURL,
		Reviews:     reviews,
		CreatedAt:   movie.CreatedAt,
		UpdatedAt:   movie.UpdatedAt,
	}
}

func MovieToDetailResponse(movie *entity.Movie, reviews []*entity.Review) MovieDetailResponse {
	list := make([]ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		list = append(list, ReviewToResponse(review))
	}
	return MovieDetailResponse{
		MovieResponse: MovieToResponse(movie),
		ReviewList:    list,
	}
}

func MoviesToListResponse(movies []*entity.Movie, page, perPage int, total int64) MovieListResponse {
	items := make([]MovieResponse, 0, len(movies))
	for _, movie := range movies {
		items = append(items, MovieToResponse(movie))
	}
	return MovieListResponse{
		Movies:     items,
		Pagination: NewPaginationMeta(page, perPage, total),
	}
}
