package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-cinema/internal/logger"
	"github.com/MKhiriev/go-cinema/internal/store"
	"github.com/MKhiriev/go-cinema/internal/validators"
	"github.com/MKhiriev/go-cinema/models"
)

type episodeService struct {
	movies    store.MovieRepository
	episodes  store.EpisodeRepository
	purchases store.PurchaseRepository
	validator validators.Validator
	now       func() time.Time
	logger    *logger.Logger
}

func NewEpisodeService(
	movies store.MovieRepository,
	episodes store.EpisodeRepository,
	purchases store.PurchaseRepository,
	validator validators.Validator,
	now func() time.Time,
	logger *logger.Logger,
) EpisodeService {
	return &episodeService{
		movies:    movies,
		episodes:  episodes,
		purchases: purchases,
		validator: validator,
		now:       now,
		logger:    logger,
	}
}

// CreateEpisode adds an episode to a movie actor may modify. A missing cost
// means models.DefaultEpisodeCost.
func (s *episodeService) CreateEpisode(ctx context.Context, actor models.User, episode models.NewEpisode) (models.EpisodeView, error) {
	if err := s.validator.Validate(ctx, episode); err != nil {
		return models.EpisodeView{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	if _, err := modifiableMovie(ctx, s.movies, actor, episode.MovieID); err != nil {
		return models.EpisodeView{}, err
	}

	cost := models.DefaultEpisodeCost
	if episode.Cost != nil {
		cost = *episode.Cost
	}

	created, err := s.episodes.CreateEpisode(ctx, models.Episode{
		MovieID:       episode.MovieID,
		Title:         episode.Title,
		EpisodeNumber: episode.EpisodeNumber,
		Cost:          cost,
		VideoRef:      episode.VideoRef,
	})
	if err != nil {
		return models.EpisodeView{}, fmt.Errorf("error creating episode: %w", err)
	}

	hasAccess, err := hasEpisodeAccess(ctx, s.purchases, actor, created.EpisodeID, s.now())
	if err != nil {
		return models.EpisodeView{}, err
	}
	return newEpisodeView(created, hasAccess, false), nil
}

// GetEpisode returns the episode of a movie actor may view. The video
// reference is only revealed when actor has access to the episode itself.
func (s *episodeService) GetEpisode(ctx context.Context, actor models.User, episodeID int64) (models.EpisodeView, error) {
	episode, err := s.episodes.GetEpisode(ctx, episodeID)
	if err != nil {
		return models.EpisodeView{}, fmt.Errorf("error getting episode %d: %w", episodeID, err)
	}

	now := s.now()
	if _, err = accessibleMovie(ctx, s.movies, actor, episode.MovieID, now); err != nil {
		return models.EpisodeView{}, err
	}

	hasAccess, err := hasEpisodeAccess(ctx, s.purchases, actor, episodeID, now)
	if err != nil {
		return models.EpisodeView{}, err
	}
	return newEpisodeView(episode, hasAccess, hasAccess), nil
}

// ListEpisodes returns the episodes of a movie ordered by number, each
// flagged with the actor's access. Video references are never listed.
func (s *episodeService) ListEpisodes(ctx context.Context, actor models.User, movieID int64) ([]models.EpisodeView, error) {
	now := s.now()
	if _, err := accessibleMovie(ctx, s.movies, actor, movieID, now); err != nil {
		return nil, err
	}

	episodes, err := s.episodes.ListEpisodesByMovie(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("error listing episodes of movie %d: %w", movieID, err)
	}

	premium := actor.IsPremiumActive(now)
	var owned map[int64]bool
	if !premium && len(episodes) > 0 {
		ids := make([]int64, 0, len(episodes))
		for _, e := range episodes {
			ids = append(ids, e.EpisodeID)
		}
		if owned, err = s.purchases.PurchasedEpisodeIDs(ctx, actor.UserID, ids); err != nil {
			return nil, fmt.Errorf("error reading purchases: %w", err)
		}
	}

	views := make([]models.EpisodeView, 0, len(episodes))
	for _, e := range episodes {
		views = append(views, newEpisodeView(e, premium || owned[e.EpisodeID], false))
	}
	return views, nil
}

func (s *episodeService) UpdateEpisode(ctx context.Context, actor models.User, episodeID int64, patch models.EpisodePatch) (models.Episode, error) {
	if err := s.validator.Validate(ctx, patch); err != nil {
		return models.Episode{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	if _, err := s.modifiableEpisode(ctx, actor, episodeID); err != nil {
		return models.Episode{}, err
	}

	updated, err := s.episodes.UpdateEpisode(ctx, episodeID, patch)
	if err != nil {
		return models.Episode{}, fmt.Errorf("error updating episode %d: %w", episodeID, err)
	}
	return updated, nil
}

// DeleteEpisode removes the episode row together with its purchases.
func (s *episodeService) DeleteEpisode(ctx context.Context, actor models.User, episodeID int64) (int64, error) {
	if _, err := s.modifiableEpisode(ctx, actor, episodeID); err != nil {
		return 0, err
	}

	if err := s.episodes.DeleteEpisode(ctx, episodeID); err != nil {
		return 0, fmt.Errorf("error deleting episode %d: %w", episodeID, err)
	}

	logger.FromContext(ctx).Info().Int64("episode_id", episodeID).Int64("actor_id", actor.UserID).Msg("episode deleted")
	return episodeID, nil
}

func (s *episodeService) modifiableEpisode(ctx context.Context, actor models.User, episodeID int64) (models.Episode, error) {
	episode, err := s.episodes.GetEpisode(ctx, episodeID)
	if err != nil {
		return models.Episode{}, fmt.Errorf("error getting episode %d: %w", episodeID, err)
	}
	if _, err = modifiableMovie(ctx, s.movies, actor, episode.MovieID); err != nil {
		return models.Episode{}, err
	}
	return episode, nil
}

func newEpisodeView(e models.Episode, hasAccess, showVideo bool) models.EpisodeView {
	if !showVideo {
		e.VideoRef = ""
	}
	return models.EpisodeView{Episode: e, HasAccess: hasAccess}
}

// hasEpisodeAccess is true for premium-active users and for owners of a
// purchase of the episode. Premium is judged on user as loaded for this
// request, never on a cached copy.
func hasEpisodeAccess(ctx context.Context, purchases store.PurchaseRepository, user models.User, episodeID int64, now time.Time) (bool, error) {
	if user.IsPremiumActive(now) {
		return true, nil
	}

	owned, err := purchases.HasPurchase(ctx, user.UserID, episodeID)
	if err != nil {
		return false, fmt.Errorf("error checking purchase of episode %d: %w", episodeID, err)
	}
	return owned, nil
}
