package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-cinema/internal/logger"
	"github.com/MKhiriev/go-cinema/models"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgtype"
)

type movieRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewMovieRepository constructs the PostgreSQL movie repository.
func NewMovieRepository(db *DB, logger *logger.Logger) MovieRepository {
	logger.Debug().Msg("creating movie repository")
	return &movieRepository{
		db:     db,
		logger: logger,
	}
}

// scanMovie decodes a movie row. types decodes the text[] genres column
// and must not be shared between goroutines.
func scanMovie(row rowScanner, types *pgtype.Map) (models.Movie, error) {
	var m models.Movie
	err := row.Scan(
		&m.MovieID, &m.Title, &m.OriginalTitle, &m.Description, &m.Poster, &m.Backdrop,
		&m.ReleaseDate, &m.Duration, &m.Director, types.SQLScanner(&m.Genres), &m.OwnerID,
		&m.IsActive, &m.AccessLevel, &m.Rating, &m.CreatedAt, &m.UpdatedAt,
	)
	if m.Genres == nil {
		m.Genres = []string{}
	}
	return m, err
}

func movieError(err error) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return ErrMovieNotFound
	case postgresError(err) == pgerrcode.ForeignKeyViolation:
		return ErrReferenceNotFound
	default:
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
}

func (r *movieRepository) CreateMovie(ctx context.Context, movie models.Movie) (models.Movie, error) {
	genres := movie.Genres
	if genres == nil {
		genres = []string{}
	}

	row := r.db.executor(ctx).QueryRowContext(ctx, createMovie,
		movie.Title, movie.OriginalTitle, movie.Description, movie.Poster, movie.Backdrop,
		movie.ReleaseDate, movie.Duration, movie.Director, genres, movie.OwnerID, movie.AccessLevel,
	)

	return r.one(ctx, "*movieRepository.CreateMovie", row)
}

// GetMovie returns an active movie; soft-deleted ones yield [ErrMovieNotFound].
func (r *movieRepository) GetMovie(ctx context.Context, movieID int64) (models.Movie, error) {
	return r.one(ctx, "*movieRepository.GetMovie", r.db.executor(ctx).QueryRowContext(ctx, getMovie, movieID))
}

func (r *movieRepository) one(ctx context.Context, fn string, row *sql.Row) (models.Movie, error) {
	movie, err := scanMovie(row, pgtype.NewMap())
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			logger.FromContext(ctx).Err(err).Str("func", fn).Msg("error reading movie")
		}
		return models.Movie{}, movieError(err)
	}

	return movie, nil
}

func (r *movieRepository) ListActiveMovies(ctx context.Context, page models.Page) ([]models.Movie, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListQuery("movies", movieColumns, "movie_id", sq.Expr("is_active"), page)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.executor(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*movieRepository.ListActiveMovies").Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	types := pgtype.NewMap()
	movies := make([]models.Movie, 0)
	for rows.Next() {
		movie, scanErr := scanMovie(rows, types)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "*movieRepository.ListActiveMovies").Msg("failed to scan movie row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		movies = append(movies, movie)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return movies, nil
}

func (r *movieRepository) UpdateMovie(ctx context.Context, movieID int64, patch models.MoviePatch) (models.Movie, error) {
	query, args, err := buildMoviePatchQuery(movieID, patch)
	if err != nil {
		return models.Movie{}, err
	}

	return r.one(ctx, "*movieRepository.UpdateMovie", r.db.executor(ctx).QueryRowContext(ctx, query, args...))
}

func (r *movieRepository) SetAccessLevel(ctx context.Context, movieID int64, level models.AccessLevel) (models.Movie, error) {
	return r.one(ctx, "*movieRepository.SetAccessLevel", r.db.executor(ctx).QueryRowContext(ctx, setMovieAccessLevel, movieID, level))
}

// DeactivateMovie soft-deletes a movie.
func (r *movieRepository) DeactivateMovie(ctx context.Context, movieID int64) error {
	return execOne(ctx, r.db, "*movieRepository.DeactivateMovie", ErrMovieNotFound, deactivateMovie, movieID)
}

// SetRating stores a recomputed rating. Writing the current value again
// is a no-op and not an error.
func (r *movieRepository) SetRating(ctx context.Context, movieID int64, rating float64) error {
	if _, err := r.db.executor(ctx).ExecContext(ctx, setMovieRating, movieID, rating); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*movieRepository.SetRating").Int64("movie_id", movieID).Msg("failed to set rating")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}
