package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-cinema/internal/logger"
	"github.com/MKhiriev/go-cinema/internal/policy"
	"github.com/MKhiriev/go-cinema/internal/store"
	"github.com/MKhiriev/go-cinema/internal/validators"
	"github.com/MKhiriev/go-cinema/models"
)

type movieService struct {
	movies    store.MovieRepository
	validator validators.Validator
	now       func() time.Time
	logger    *logger.Logger
}

func NewMovieService(movies store.MovieRepository, validator validators.Validator, now func() time.Time, logger *logger.Logger) MovieService {
	return &movieService{
		movies:    movies,
		validator: validator,
		now:       now,
		logger:    logger,
	}
}

// CreateMovie stores a movie owned by actor. A missing access level means
// PUBLIC.
func (s *movieService) CreateMovie(ctx context.Context, actor models.User, movie models.NewMovie) (models.Movie, error) {
	if err := s.validator.Validate(ctx, movie); err != nil {
		return models.Movie{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	level := movie.AccessLevel
	if level == "" {
		level = models.AccessPublic
	}

	created, err := s.movies.CreateMovie(ctx, models.Movie{
		Title:         movie.Title,
		OriginalTitle: movie.OriginalTitle,
		Description:   movie.Description,
		Poster:        movie.Poster,
		Backdrop:      movie.Backdrop,
		ReleaseDate:   movie.ReleaseDate,
		Duration:      movie.Duration,
		Director:      movie.Director,
		Genres:        movie.Genres,
		OwnerID:       actor.UserID,
		IsActive:      true,
		AccessLevel:   level,
	})
	if err != nil {
		return models.Movie{}, fmt.Errorf("error creating movie: %w", err)
	}

	return created, nil
}

func (s *movieService) GetMovie(ctx context.Context, actor models.User, movieID int64) (models.Movie, error) {
	return accessibleMovie(ctx, s.movies, actor, movieID, s.now())
}

// ListMovies returns the active movies of the page actor may access.
func (s *movieService) ListMovies(ctx context.Context, actor models.User, page models.Page) ([]models.Movie, error) {
	movies, err := s.movies.ListActiveMovies(ctx, page.Normalize())
	if err != nil {
		return nil, fmt.Errorf("error listing movies: %w", err)
	}

	now := s.now()
	visible := make([]models.Movie, 0, len(movies))
	for _, m := range movies {
		if policy.CanAccess(actor, m, now) {
			visible = append(visible, m)
		}
	}
	return visible, nil
}

func (s *movieService) UpdateMovie(ctx context.Context, actor models.User, movieID int64, patch models.MoviePatch) (models.Movie, error) {
	if err := s.validator.Validate(ctx, patch); err != nil {
		return models.Movie{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	if _, err := modifiableMovie(ctx, s.movies, actor, movieID); err != nil {
		return models.Movie{}, err
	}

	updated, err := s.movies.UpdateMovie(ctx, movieID, patch)
	if err != nil {
		return models.Movie{}, fmt.Errorf("error updating movie %d: %w", movieID, err)
	}
	return updated, nil
}

// DeleteMovie soft-deletes the movie and returns its id.
func (s *movieService) DeleteMovie(ctx context.Context, actor models.User, movieID int64) (int64, error) {
	movie, err := s.movies.GetMovie(ctx, movieID)
	if err != nil {
		return 0, fmt.Errorf("error getting movie %d: %w", movieID, err)
	}
	if !policy.CanDelete(actor, movie) {
		return 0, fmt.Errorf("%w: delete of movie %d", ErrForbidden, movieID)
	}

	if err = s.movies.DeactivateMovie(ctx, movieID); err != nil {
		return 0, fmt.Errorf("error deleting movie %d: %w", movieID, err)
	}

	logger.FromContext(ctx).Info().Int64("movie_id", movieID).Int64("actor_id", actor.UserID).Msg("movie deactivated")
	return movieID, nil
}

func (s *movieService) SetAccessLevel(ctx context.Context, actor models.User, movieID int64, level models.AccessLevel) (models.Movie, error) {
	if err := s.validator.Validate(ctx, models.AccessLevelChangeRequest{AccessLevel: level}); err != nil {
		return models.Movie{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	if _, err := modifiableMovie(ctx, s.movies, actor, movieID); err != nil {
		return models.Movie{}, err
	}

	updated, err := s.movies.SetAccessLevel(ctx, movieID, level)
	if err != nil {
		return models.Movie{}, fmt.Errorf("error setting access level of movie %d: %w", movieID, err)
	}
	return updated, nil
}

// accessibleMovie loads an active movie and checks that user may view it.
func accessibleMovie(ctx context.Context, movies store.MovieRepository, user models.User, movieID int64, now time.Time) (models.Movie, error) {
	movie, err := movies.GetMovie(ctx, movieID)
	if err != nil {
		return models.Movie{}, fmt.Errorf("error getting movie %d: %w", movieID, err)
	}
	if !policy.CanAccess(user, movie, now) {
		return models.Movie{}, fmt.Errorf("%w: no access to movie %d", ErrForbidden, movieID)
	}
	return movie, nil
}

// modifiableMovie loads an active movie and checks that user may edit it.
func modifiableMovie(ctx context.Context, movies store.MovieRepository, user models.User, movieID int64) (models.Movie, error) {
	movie, err := movies.GetMovie(ctx, movieID)
	if err != nil {
		return models.Movie{}, fmt.Errorf("error getting movie %d: %w", movieID, err)
	}
	if !policy.CanModify(user, movie) {
		return models.Movie{}, fmt.Errorf("%w: modification of movie %d", ErrForbidden, movieID)
	}
	return movie, nil
}
