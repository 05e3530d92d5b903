package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-cinema/internal/logger"
	"github.com/MKhiriev/go-cinema/internal/store"
	"github.com/MKhiriev/go-cinema/models"
)

type maintenanceService struct {
	users    store.UserRepository
	movies   store.MovieRepository
	comments store.CommentRepository
	now      func() time.Time
	logger   *logger.Logger
}

func NewMaintenanceService(
	users store.UserRepository,
	movies store.MovieRepository,
	comments store.CommentRepository,
	now func() time.Time,
	logger *logger.Logger,
) MaintenanceService {
	return &maintenanceService{
		users:    users,
		movies:   movies,
		comments: comments,
		now:      now,
		logger:   logger,
	}
}

// SweepPremium reconciles every user flagged premium. A failing row does
// not stop the sweep.
func (s *maintenanceService) SweepPremium(ctx context.Context) ([]models.PremiumTransition, error) {
	log := logger.FromContext(ctx)

	users, err := s.users.ListPremiumUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing premium users: %w", err)
	}

	now := s.now()
	var (
		transitions []models.PremiumTransition
		errs        []error
	)
	for _, u := range users {
		previous := u.PremiumUntil
		if _, changed := u.ReconcilePremium(now); !changed {
			continue
		}

		cleared, err := s.users.ClearExpiredPremium(ctx, u.UserID, now)
		if err != nil {
			errs = append(errs, fmt.Errorf("user %d: %w", u.UserID, err))
			continue
		}
		if !cleared {
			// renewed or reconciled since the list was read
			continue
		}

		transitions = append(transitions, models.PremiumTransition{UserID: u.UserID, PremiumUntil: previous})
		log.Info().
			Int64("user_id", u.UserID).
			Any("premium_until", previous).
			Bool("old_status", true).
			Bool("new_status", false).
			Msg("premium status changed")
	}

	return transitions, errors.Join(errs...)
}

// RecomputeRatings writes the rounded comment mean of every active movie
// that has active comments. Movies without comments keep their rating.
func (s *maintenanceService) RecomputeRatings(ctx context.Context) (int, error) {
	aggregates, err := s.comments.AverageRatings(ctx)
	if err != nil {
		return 0, fmt.Errorf("error aggregating ratings: %w", err)
	}

	var (
		updated int
		errs    []error
	)
	for _, a := range aggregates {
		mean, ok := a.Mean()
		if !ok {
			continue
		}
		if err = s.movies.SetRating(ctx, a.MovieID, mean); err != nil {
			errs = append(errs, fmt.Errorf("movie %d: %w", a.MovieID, err))
			continue
		}
		updated++
	}

	return updated, errors.Join(errs...)
}
