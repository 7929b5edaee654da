package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"movie-review/internal/data/entity"

	"github.com/google/uuid"
)

// memoryStore keeps every table in-process. It backs DB_DRIVER=memory and
// the tests, and enforces the same unique keys as the SQL schema.
type memoryStore struct {
	mu      sync.RWMutex
	users   map[uuid.UUID]entity.User
	admins  map[uuid.UUID]entity.Admin
	movies  map[uuid.UUID]entity.Movie
	reviews map[uuid.UUID]entity.Review
}

// NewMemoryRepository returns a Repository whose stores share one in-memory
// database.
func NewMemoryRepository() *Repository {
	m := &memoryStore{
		users:   make(map[uuid.UUID]entity.User),
		admins:  make(map[uuid.UUID]entity.Admin),
		movies:  make(map[uuid.UUID]entity.Movie),
		reviews: make(map[uuid.UUID]entity.Review),
	}
	return &Repository{
		User:   &memoryUsers{m},
		Admin:  &memoryAdmins{m},
		Movie:  &memoryMovies{m},
		Review: &memoryReviews{m},
	}
}

type memoryUsers struct{ m *memoryStore }

func (r *memoryUsers) Create(_ context.Context, user *entity.User) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, u := range r.m.users {
		if strings.EqualFold(u.Email, user.Email) {
			return fmt.Errorf("create user %s: %w", user.Email, ErrDuplicate)
		}
	}
	r.m.users[user.ID] = *user
	return nil
}

func (r *memoryUsers) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	u, ok := r.m.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *memoryUsers) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	for _, u := range r.m.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, nil
}

type memoryAdmins struct{ m *memoryStore }

func (r *memoryAdmins) Create(_ context.Context, admin *entity.Admin) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, a := range r.m.admins {
		if strings.EqualFold(a.Email, admin.Email) {
			return fmt.Errorf("create admin %s: %w", admin.Email, ErrDuplicate)
		}
	}
	r.m.admins[admin.ID] = *admin
	return nil
}

func (r *memoryAdmins) FindByID(_ context.Context, id uuid.UUID) (*entity.Admin, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	a, ok := r.m.admins[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r *memoryAdmins) FindByEmail(_ context.Context, email string) (*entity.Admin, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	for _, a := range r.m.admins {
		if strings.EqualFold(a.Email, email) {
			return &a, nil
		}
	}
	return nil, nil
}

type memoryMovies struct{ m *memoryStore }

// cloneMovie copies the slices so callers never alias stored state.
func cloneMovie(movie entity.Movie) *entity.Movie {
	movie.Cast = append([]string(nil), movie.Cast...)
	movie.ReviewIDs = append([]uuid.UUID{}, movie.ReviewIDs...)
	return &movie
}

func (r *memoryMovies) Create(_ context.Context, movie *entity.Movie) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.movies[movie.ID] = *cloneMovie(*movie)
	return nil
}

func (r *memoryMovies) FindByID(_ context.Context, id uuid.UUID) (*entity.Movie, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	movie, ok := r.m.movies[id]
	if !ok {
		return nil, nil
	}
	return cloneMovie(movie), nil
}

func (r *memoryMovies) Update(_ context.Context, movie *entity.Movie) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	stored, ok := r.m.movies[movie.ID]
	if !ok {
		return nil
	}
	updated := *cloneMovie(*movie)
	updated.ReviewIDs = stored.ReviewIDs
	updated.CreatedAt = stored.CreatedAt
	r.m.movies[movie.ID] = updated
	return nil
}

func (r *memoryMovies) Delete(_ context.Context, id uuid.UUID) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	delete(r.m.movies, id)
	return nil
}

// matches mirrors buildMovieWhere.
func (f MovieFilter) matches(movie entity.Movie) bool {
	if f.Genre != "" && movie.Genre != f.Genre {
		return false
	}
	search := strings.ToLower(strings.TrimSpace(f.Search))
	if search == "" {
		return true
	}
	fields := append([]string{movie.Title, movie.Description, string(movie.Genre), movie.Director}, movie.Cast...)
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}

func (r *memoryMovies) filtered(filter MovieFilter) []entity.Movie {
	var out []entity.Movie
	for _, movie := range r.m.movies {
		if filter.matches(movie) {
			out = append(out, movie)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out
}

func (r *memoryMovies) FindAll(_ context.Context, filter MovieFilter, limit, offset int) ([]*entity.Movie, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	all := r.filtered(filter)
	if offset < 0 || offset >= len(all) {
		return nil, nil
	}
	end := len(all)
	if limit > 0 && limit < end-offset {
		end = offset + limit
	}
	movies := make([]*entity.Movie, 0, end-offset)
	for _, movie := range all[offset:end] {
		movies = append(movies, cloneMovie(movie))
	}
	return movies, nil
}

func (r *memoryMovies) CountAll(_ context.Context, filter MovieFilter) (int64, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	return int64(len(r.filtered(filter))), nil
}

func (r *memoryMovies) AppendReview(_ context.Context, movieID, reviewID uuid.UUID) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	movie, ok := r.m.movies[movieID]
	if !ok {
		return fmt.Errorf("append review %s: movie %s no longer exists", reviewID, movieID)
	}
	movie.ReviewIDs = append(append([]uuid.UUID{}, movie.ReviewIDs...), reviewID)
	movie.UpdatedAt = time.Now().UTC()
	r.m.movies[movieID] = movie
	return nil
}

func (r *memoryMovies) RemoveReview(_ context.Context, movieID, reviewID uuid.UUID) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	movie, ok := r.m.movies[movieID]
	if !ok {
		return nil
	}
	kept := make([]uuid.UUID, 0, len(movie.ReviewIDs))
	for _, id := range movie.ReviewIDs {
		if id != reviewID {
			kept = append(kept, id)
		}
	}
	movie.ReviewIDs = kept
	movie.UpdatedAt = time.Now().UTC()
	r.m.movies[movieID] = movie
	return nil
}

type memoryReviews struct{ m *memoryStore }

func (r *memoryReviews) Create(_ context.Context, review *entity.Review) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, existing := range r.m.reviews {
		if existing.UserID == review.UserID && existing.MovieID == review.MovieID {
			return fmt.Errorf("create review for movie %s by user %s: %w",
				review.MovieID, review.UserID, ErrDuplicate)
		}
	}
	r.m.reviews[review.ID] = *review
	return nil
}

func (r *memoryReviews) FindByID(_ context.Context, id uuid.UUID) (*entity.Review, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	review, ok := r.m.reviews[id]
	if !ok {
		return nil, nil
	}
	return &review, nil
}

func (r *memoryReviews) FindByUserAndMovie(_ context.Context, userID, movieID uuid.UUID) (*entity.Review, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	for _, review := range r.m.reviews {
		if review.UserID == userID && review.MovieID == movieID {
			return &review, nil
		}
	}
	return nil, nil
}

func (r *memoryReviews) FindByMovieID(_ context.Context, movieID uuid.UUID) ([]*entity.Review, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	var reviews []*entity.Review
	for _, review := range r.m.reviews {
		if review.MovieID == movieID {
			review := review
			reviews = append(reviews, &review)
		}
	}
	sort.Slice(reviews, func(i, j int) bool {
		if !reviews[i].CreatedAt.Equal(reviews[j].CreatedAt) {
			return reviews[i].CreatedAt.Before(reviews[j].CreatedAt)
		}
		return reviews[i].ID.String() < reviews[j].ID.String()
	})
	return reviews, nil
}

func (r *memoryReviews) Update(_ context.Context, review *entity.Review) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	stored, ok := r.m.reviews[review.ID]
	if !ok {
		return nil
	}
	stored.Rating = review.Rating
	stored.Comment = review.Comment
	stored.UpdatedAt = review.UpdatedAt
	r.m.reviews[review.ID] = stored
	return nil
}

func (r *memoryReviews) Delete(_ context.Context, id uuid.UUID) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	delete(r.m.reviews, id)
	return nil
}
