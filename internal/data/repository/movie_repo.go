package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"movie-review/internal/data/entity"
	"movie-review/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type MovieRepository interface {
	// CRUD Movie
	Create(ctx context.Context, movie *entity.Movie) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error)
	Update(ctx context.Context, movie *entity.Movie) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindAll(ctx context.Context, filter MovieFilter, limit, offset int) ([]*entity.Movie, error)
	CountAll(ctx context.Context, filter MovieFilter) (int64, error)

	// Review back-references
	AppendReview(ctx context.Context, movieID, reviewID uuid.UUID) error
	RemoveReview(ctx context.Context, movieID, reviewID uuid.UUID) error
}

type movieRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMovieRepository(db database.PgxIface, log *zap.Logger) MovieRepository {
	return &movieRepository{
		db:  db,
		log: log.With(zap.String("repository", "movie")),
	}
}

const movieColumns = `id, title, description, genre, director, cast_members, release_year,
		       rating, poster_url, poster_id, review_ids, created_at, updated_at`

func (r *movieRepository) Create(ctx context.Context, movie *entity.Movie) error {
	query := `
		INSERT INTO movies (id, title, description, genre, director, cast_members,
		                    release_year, rating, poster_url, poster_id, review_ids,
		                    created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	reviewIDs := movie.ReviewIDs
	if reviewIDs == nil {
		reviewIDs = []uuid.UUID{}
	}

	_, err := r.db.Exec(ctx, query,
		movie.ID,
		movie.Title,
		movie.Description,
		movie.Genre,
		movie.Director,
		movie.Cast,
		movie.ReleaseYear,
		movie.Rating,
		movie.PosterURL,
		movie.PosterID,
		reviewIDs,
		movie.CreatedAt,
		movie.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create movie",
			zap.Error(err),
			zap.String("title", movie.Title),
		)
		return fmt.Errorf("failed to create movie: %w", err)
	}

	return nil
}

func (r *movieRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE id = $1`

	movie, err := scanMovie(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find movie by ID",
			zap.Error(err),
			zap.String("movie_id", id.String()),
		)
		return nil, fmt.Errorf("failed to find movie: %w", err)
	}

	return movie, nil
}

// Update writes every column except review_ids, which only
// AppendReview/RemoveReview touch.
func (r *movieRepository) Update(ctx context.Context, movie *entity.Movie) error {
	query := `
		UPDATE movies
		SET title = $2, description = $3, genre = $4, director = $5,
		    cast_members = $6, release_year = $7, rating = $8,
		    poster_url = $9, poster_id = $10, updated_at = $11
		WHERE id = $1
	`

	_, err := r.db.Exec(ctx, query,
		movie.ID,
		movie.Title,
		movie.Description,
		movie.Genre,
		movie.Director,
		movie.Cast,
		movie.ReleaseYear,
		movie.Rating,
		movie.PosterURL,
		movie.PosterID,
		movie.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update movie",
			zap.Error(err),
			zap.String("movie_id", movie.ID.String()),
		)
		return fmt.Errorf("failed to update movie: %w", err)
	}

	return nil
}

func (r *movieRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete movie",
			zap.Error(err),
			zap.String("movie_id", id.String()),
		)
		return fmt.Errorf("failed to delete movie: %w", err)
	}
	return nil
}

// buildMovieWhere renders the WHERE clause shared by FindAll and CountAll.
func buildMovieWhere(filter MovieFilter) (string, []interface{}) {
	var clauses []string
	args := []interface{}{}

	if search := strings.TrimSpace(filter.Search); search != "" {
		args = append(args, "%"+escapeLike(search)+"%")
		n := len(args)
		clauses = append(clauses, fmt.Sprintf(`(title ILIKE $%[1]d
			OR description ILIKE $%[1]d
			OR genre ILIKE $%[1]d
			OR director ILIKE $%[1]d
			OR EXISTS (SELECT 1 FROM unnest(cast_members) AS c WHERE c ILIKE $%[1]d))`, n))
	}

	if filter.Genre != "" {
		args = append(args, filter.Genre)
		clauses = append(clauses, fmt.Sprintf("genre = $%d", len(args)))
	}

	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// escapeLike makes % and _ in user input match literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func (r *movieRepository) FindAll(ctx context.Context, filter MovieFilter, limit, offset int) ([]*entity.Movie, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + movieColumns + ` FROM movies`)

	where, args := buildMovieWhere(filter)
	queryBuilder.WriteString(where)

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY created_at DESC, id LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2))
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		r.log.Error("Failed to find all movies",
			zap.Error(err),
			zap.String("search", filter.Search),
			zap.String("genre", string(filter.Genre)),
			zap.Int("offset", offset),
			zap.Int("limit", limit),
		)
		return nil, fmt.Errorf("failed to find movies: %w", err)
	}
	defer rows.Close()

	var movies []*entity.Movie
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			r.log.Error("Failed to scan movie row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan movie: %w", err)
		}
		movies = append(movies, movie)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	r.log.Debug("Movies found",
		zap.Int("count", len(movies)),
		zap.Int("offset", offset),
		zap.Int("limit", limit),
	)

	return movies, nil
}

func (r *movieRepository) CountAll(ctx context.Context, filter MovieFilter) (int64, error) {
	where, args := buildMovieWhere(filter)

	var total int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM movies`+where, args...).Scan(&total)
	if err != nil {
		r.log.Error("Failed to count movies",
			zap.Error(err),
			zap.String("search", filter.Search),
			zap.String("genre", string(filter.Genre)),
		)
		return 0, fmt.Errorf("failed to count movies: %w", err)
	}

	return total, nil
}

func (r *movieRepository) AppendReview(ctx context.Context, movieID, reviewID uuid.UUID) error {
	query := `
		UPDATE movies
		SET review_ids = array_append(review_ids, $2), updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query, movieID, reviewID)
	if err != nil {
		r.log.Error("Failed to append review to movie",
			zap.Error(err),
			zap.String("movie_id", movieID.String()),
			zap.String("review_id", reviewID.String()),
		)
		return fmt.Errorf("append review %s to movie %s: %w", reviewID, movieID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("append review %s: movie %s no longer exists", reviewID, movieID)
	}
	return nil
}

func (r *movieRepository) RemoveReview(ctx context.Context, movieID, reviewID uuid.UUID) error {
	query := `
		UPDATE movies
		SET review_ids = array_remove(review_ids, $2), updated_at = NOW()
		WHERE id = $1
	`

	if _, err := r.db.Exec(ctx, query, movieID, reviewID); err != nil {
		r.log.Error("Failed to remove review from movie",
			zap.Error(err),
			zap.String("movie_id", movieID.String()),
			zap.String("review_id", reviewID.String()),
		)
		return fmt.Errorf("remove review %s from movie %s: %w", reviewID, movieID, err)
	}
	return nil
}

func scanMovie(row pgx.Row) (*entity.Movie, error) {
	var movie entity.Movie
	err := row.Scan(
		&movie.ID,
		&movie.Title,
		&movie.Description,
		&movie.Genre,
		&movie.Director,
		&movie.Cast,
		&movie.ReleaseYear,
		&movie.Rating,
		&movie.PosterURL,
		&movie.PosterID,
		&movie.ReviewIDs,
		&movie.CreatedAt,
		&movie.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &movie, nil
}
