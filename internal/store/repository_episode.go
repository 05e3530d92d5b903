package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-cinema/internal/logger"
	"github.com/MKhiriev/go-cinema/models"
	"github.com/jackc/pgerrcode"
)

type episodeRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewEpisodeRepository constructs the PostgreSQL episode repository.
func NewEpisodeRepository(db *DB, logger *logger.Logger) EpisodeRepository {
	logger.Debug().Msg("creating episode repository")
	return &episodeRepository{
		db:     db,
		logger: logger,
	}
}

func scanEpisode(row rowScanner) (models.Episode, error) {
	var e models.Episode
	err := row.Scan(&e.EpisodeID, &e.MovieID, &e.Title, &e.EpisodeNumber, &e.Cost, &e.VideoRef, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

func episodeError(err error) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return ErrEpisodeNotFound
	case postgresError(err) == pgerrcode.ForeignKeyViolation:
		return ErrReferenceNotFound
	default:
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
}

func (r *episodeRepository) CreateEpisode(ctx context.Context, episode models.Episode) (models.Episode, error) {
	row := r.db.executor(ctx).QueryRowContext(ctx, createEpisode,
		episode.MovieID, episode.Title, episode.EpisodeNumber, episode.Cost, episode.VideoRef)

	return r.one(ctx, "*episodeRepository.CreateEpisode", row)
}

func (r *episodeRepository) GetEpisode(ctx context.Context, episodeID int64) (models.Episode, error) {
	return r.one(ctx, "*episodeRepository.GetEpisode", r.db.executor(ctx).QueryRowContext(ctx, getEpisode, episodeID))
}

func (r *episodeRepository) one(ctx context.Context, fn string, row *sql.Row) (models.Episode, error) {
	episode, err := scanEpisode(row)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			logger.FromContext(ctx).Err(err).Str("func", fn).Msg("error reading episode")
		}
		return models.Episode{}, episodeError(err)
	}

	return episode, nil
}

// ListEpisodesByMovie returns the episodes of a movie ordered by number.
func (r *episodeRepository) ListEpisodesByMovie(ctx context.Context, movieID int64) ([]models.Episode, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.executor(ctx).QueryContext(ctx, listEpisodesByMovie, movieID)
	if err != nil {
		log.Err(err).Str("func", "*episodeRepository.ListEpisodesByMovie").Int64("movie_id", movieID).Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	episodes := make([]models.Episode, 0)
	for rows.Next() {
		episode, scanErr := scanEpisode(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "*episodeRepository.ListEpisodesByMovie").Msg("failed to scan episode row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		episodes = append(episodes, episode)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return episodes, nil
}

func (r *episodeRepository) UpdateEpisode(ctx context.Context, episodeID int64, patch models.EpisodePatch) (models.Episode, error) {
	query, args, err := buildEpisodePatchQuery(episodeID, patch)
	if err != nil {
		return models.Episode{}, err
	}

	return r.one(ctx, "*episodeRepository.UpdateEpisode", r.db.executor(ctx).QueryRowContext(ctx, query, args...))
}

// DeleteEpisode removes the episode row; purchases of it cascade.
func (r *episodeRepository) DeleteEpisode(ctx context.Context, episodeID int64) error {
	return execOne(ctx, r.db, "*episodeRepository.DeleteEpisode", ErrEpisodeNotFound, deleteEpisode, episodeID)
}
