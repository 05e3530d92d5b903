package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-cinema/internal/logger"
	"github.com/MKhiriev/go-cinema/internal/metrics"
	"github.com/MKhiriev/go-cinema/internal/store"
	"github.com/MKhiriev/go-cinema/models"
	"github.com/shopspring/decimal"
)

// purchaseService sells single episodes. The debit and the purchase row are
// written in one transaction holding the buyer's row lock.
type purchaseService struct {
	transactor store.Transactor
	users      store.UserRepository
	episodes   store.EpisodeRepository
	purchases  store.PurchaseRepository
	movies     store.MovieRepository
	now        func() time.Time
	logger     *logger.Logger
}

func NewPurchaseService(
	transactor store.Transactor,
	users store.UserRepository,
	episodes store.EpisodeRepository,
	purchases store.PurchaseRepository,
	movies store.MovieRepository,
	now func() time.Time,
	logger *logger.Logger,
) PurchaseService {
	return &purchaseService{
		transactor: transactor,
		users:      users,
		episodes:   episodes,
		purchases:  purchases,
		movies:     movies,
		now:        now,
		logger:     logger,
	}
}

// PurchaseEpisode buys episodeID for actor.
//
// A premium-active buyer is never charged: the purchase is recorded with a
// zero cost so access survives the subscription. Otherwise the episode cost
// is debited. It fails with:
//   - ErrAlreadyOwned when a purchase of the episode already exists.
//   - ErrInsufficientFunds when a non-premium balance is below the cost.
func (s *purchaseService) PurchaseEpisode(ctx context.Context, actor models.User, episodeID int64) (models.EpisodePurchase, error) {
	log := logger.FromContext(ctx)

	episode, err := s.episodes.GetEpisode(ctx, episodeID)
	if err != nil {
		return models.EpisodePurchase{}, fmt.Errorf("error getting episode %d: %w", episodeID, err)
	}
	if _, err = accessibleMovie(ctx, s.movies, actor, episode.MovieID, s.now()); err != nil {
		return models.EpisodePurchase{}, err
	}

	var result models.EpisodePurchase
	err = s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		buyer, err := s.users.GetUserForUpdate(ctx, actor.UserID)
		if err != nil {
			return fmt.Errorf("error locking user %d: %w", actor.UserID, err)
		}
		if !buyer.IsActive {
			return ErrAccountDisabled
		}

		owned, err := s.purchases.HasPurchase(ctx, buyer.UserID, episodeID)
		if err != nil {
			return fmt.Errorf("error checking purchase: %w", err)
		}
		if owned {
			return ErrAlreadyOwned
		}

		// A premium-active buyer already has access, yet gets a zero-cost row
		// instead of ErrAlreadyOwned. The row keeps the episode after the
		// subscription ends, at the price of accepting a redundant purchase.
		now := s.now()
		cost, balance := decimal.Zero, buyer.Money
		if !buyer.IsPremiumActive(now) {
			cost = episode.Cost
			balance, err = s.users.DebitMoney(ctx, buyer.UserID, cost)
			if errors.Is(err, store.ErrInsufficientFunds) {
				return ErrInsufficientFunds
			}
			if err != nil {
				return fmt.Errorf("error debiting user %d: %w", buyer.UserID, err)
			}
		}

		_, err = s.purchases.CreatePurchase(ctx, models.PurchasedEpisode{
			UserID:      buyer.UserID,
			EpisodeID:   episodeID,
			CostPaid:    cost,
			PurchasedAt: now,
		})
		if errors.Is(err, store.ErrAlreadyPurchased) {
			return ErrAlreadyOwned
		}
		if err != nil {
			return fmt.Errorf("error recording purchase: %w", err)
		}

		result = models.EpisodePurchase{EpisodeID: episodeID, CostPaid: cost, Balance: balance}
		return nil
	})
	if err != nil {
		metrics.Purchases.WithLabelValues(metrics.KindEpisode, purchaseResult(err)).Inc()
		return models.EpisodePurchase{}, err
	}

	metrics.Purchases.WithLabelValues(metrics.KindEpisode, metrics.ResultSuccess).Inc()
	log.Info().
		Int64("user_id", actor.UserID).
		Int64("episode_id", episodeID).
		Str("cost_paid", result.CostPaid.String()).
		Msg("episode purchased")
	return result, nil
}

func purchaseResult(err error) string {
	switch {
	case errors.Is(err, ErrInsufficientFunds):
		return metrics.ResultInsufficientFunds
	case errors.Is(err, ErrAlreadyOwned):
		return metrics.ResultAlreadyOwned
	default:
		return metrics.ResultError
	}
}
