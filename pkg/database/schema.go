package database

import (
	"context"
	"fmt"
)

// schema is idempotent. reviews.movie_id has no foreign key: deleting a
// movie leaves its reviews in place.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id         UUID PRIMARY KEY,
	name       VARCHAR(30)  NOT NULL,
	email      VARCHAR(254) NOT NULL,
	password   TEXT         NOT NULL,
	created_at TIMESTAMPTZ  NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ  NOT NULL DEFAULT NOW()
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users (LOWER(email));

CREATE TABLE IF NOT EXISTS admins (
	id         UUID PRIMARY KEY,
	name       VARCHAR(30)  NOT NULL,
	email      VARCHAR(254) NOT NULL,
	password   TEXT         NOT NULL,
	role       VARCHAR(20)  NOT NULL DEFAULT 'movie_admin'
	           CHECK (role IN ('super_admin', 'movie_admin')),
	created_at TIMESTAMPTZ  NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ  NOT NULL DEFAULT NOW()
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_admins_email ON admins (LOWER(email));

CREATE TABLE IF NOT EXISTS movies (
	id           UUID PRIMARY KEY,
	title        VARCHAR(100) NOT NULL,
	description  VARCHAR(500) NOT NULL,
	genre        VARCHAR(20)  NOT NULL,
	director     VARCHAR(100) NOT NULL,
	cast_members TEXT[]       NOT NULL,
	release_year INTEGER      NOT NULL CHECK (release_year >= 1900),
	rating       DOUBLE PRECISION NOT NULL CHECK (rating >= 0 AND rating <= 10),
	poster_url   TEXT         NOT NULL DEFAULT '',
	poster_id    TEXT         NOT NULL DEFAULT '',
	review_ids   UUID[]       NOT NULL DEFAULT '{}',
	created_at   TIMESTAMPTZ  NOT NULL DEFAULT NOW(),
	updated_at   TIMESTAMPTZ  NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_movies_genre ON movies (genre);
CREATE INDEX IF NOT EXISTS idx_movies_created_at ON movies (created_at);

CREATE TABLE IF NOT EXISTS reviews (
	id         UUID PRIMARY KEY,
	user_id    UUID          NOT NULL REFERENCES users (id),
	movie_id   UUID          NOT NULL,
	rating     INTEGER       NOT NULL CHECK (rating BETWEEN 1 AND 5),
	comment    VARCHAR(1000) NOT NULL,
	created_at TIMESTAMPTZ   NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ   NOT NULL DEFAULT NOW(),
	CONSTRAINT uq_reviews_user_movie UNIQUE (user_id, movie_id)
);
CREATE INDEX IF NOT EXISTS idx_reviews_movie_id ON reviews (movie_id);
`

// EnsureSchema creates tables and indexes that do not exist yet.
func EnsureSchema(ctx context.Context, db PgxIface) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}
