package repository

import (
	"context"
	"database/sql"

	"github.com/movierental/backend/internal/model"
)

// MovieRepo encapsulates all database queries for the `movies` table.
// The repository performs no domain validation; the handler validates
// payloads before any of these methods are invoked.
type MovieRepo struct {
	db *sql.DB
}

func NewMovieRepo(db *sql.DB) *MovieRepo { return &MovieRepo{db: db} }

const movieColumns = "id, title, year, genre, rating, status, poster_path"

func scanMovie(row interface{ Scan(...any) error }) (model.Movie, error) {
	var m model.Movie
	var poster sql.NullString
	err := row.Scan(&m.ID, &m.Title, &m.Year, &m.Genre, &m.Rating, &m.Status, &poster)
	if err != nil {
		return model.Movie{}, err
	}
	if poster.Valid {
		p := poster.String
		m.PosterPath = &p
	}
	return m, nil
}

// List returns every movie in the catalogue.
func (r *MovieRepo) List(ctx context.Context) ([]model.Movie, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+movieColumns+" FROM movies ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movies := []model.Movie{}
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		movies = append(movies, m)
	}
	return movies, rows.Err()
}

// GetByID fetches a single movie. A missing row maps to ErrMovieNotFound.
func (r *MovieRepo) GetByID(ctx context.Context, id uint64) (model.Movie, error) {
	m, err := scanMovie(r.db.QueryRowContext(ctx,
		"SELECT "+movieColumns+" FROM movies WHERE id=? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return model.Movie{}, ErrMovieNotFound
	}
	return m, err
}

// Create inserts a movie and populates its generated id.
func (r *MovieRepo) Create(ctx context.Context, m *model.Movie) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO movies (title, year, genre, rating, status) VALUES (?,?,?,?,?)",
		m.Title, m.Year, m.Genre, m.Rating, m.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	return nil
}

// Update overwrites the mutable fields of a movie. A zero matched count
// maps to ErrMovieNotFound.
func (r *MovieRepo) Update(ctx context.Context, id uint64, m *model.Movie) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE movies SET title=?, year=?, genre=?, rating=?, status=? WHERE id=?",
		m.Title, m.Year, m.Genre, m.Rating, m.Status, id)
	if err != nil {
		return err
	}
	return notFoundIfZero(res, ErrMovieNotFound)
}

// Delete removes a movie. A zero matched count maps to ErrMovieNotFound.
func (r *MovieRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM movies WHERE id=?", id)
	if err != nil {
		return err
	}
	return notFoundIfZero(res, ErrMovieNotFound)
}

// AttachPoster stores the uploaded poster path on the movie.
func (r *MovieRepo) AttachPoster(ctx context.Context, id uint64, path string) error {
	res, err := r.db.ExecContext(ctx, "UPDATE movies SET poster_path=? WHERE id=?", path, id)
	if err != nil {
		return err
	}
	return notFoundIfZero(res, ErrMovieNotFound)
}

// notFoundIfZero converts a zero RowsAffected result into the given
// sentinel. The connection is opened with clientFoundRows=true, so the
// count reflects matched rows and a no-op update on an existing row is
// not mistaken for a missing one.
func notFoundIfZero(res sql.Result, sentinel error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sentinel
	}
	return nil
}
