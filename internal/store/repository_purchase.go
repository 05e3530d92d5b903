package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-cinema/internal/logger"
	"github.com/MKhiriev/go-cinema/models"
	"github.com/jackc/pgerrcode"
)

type purchaseRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewPurchaseRepository constructs the PostgreSQL episode purchase repository.
func NewPurchaseRepository(db *DB, logger *logger.Logger) PurchaseRepository {
	logger.Debug().Msg("creating purchase repository")
	return &purchaseRepository{
		db:     db,
		logger: logger,
	}
}

// CreatePurchase inserts a purchase row. A second row for the same
// (user_id, episode_id) pair is rejected with [ErrAlreadyPurchased].
func (r *purchaseRepository) CreatePurchase(ctx context.Context, purchase models.PurchasedEpisode) (models.PurchasedEpisode, error) {
	var created models.PurchasedEpisode
	err := r.db.executor(ctx).QueryRowContext(ctx, createPurchase,
		purchase.UserID, purchase.EpisodeID, purchase.CostPaid, purchase.PurchasedAt.UTC(),
	).Scan(&created.ID, &created.UserID, &created.EpisodeID, &created.CostPaid, &created.PurchasedAt)
	if err != nil {
		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.PurchasedEpisode{}, ErrAlreadyPurchased
		case pgerrcode.ForeignKeyViolation:
			return models.PurchasedEpisode{}, ErrReferenceNotFound
		}
		logger.FromContext(ctx).Err(err).
			Str("func", "*purchaseRepository.CreatePurchase").
			Int64("user_id", purchase.UserID).
			Int64("episode_id", purchase.EpisodeID).
			Msg("failed to insert purchase")
		return models.PurchasedEpisode{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return created, nil
}

func (r *purchaseRepository) HasPurchase(ctx context.Context, userID, episodeID int64) (bool, error) {
	var exists bool
	if err := r.db.executor(ctx).QueryRowContext(ctx, hasPurchase, userID, episodeID).Scan(&exists); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*purchaseRepository.HasPurchase").Msg("failed to query purchase")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return exists, nil
}

func (r *purchaseRepository) PurchasedEpisodeIDs(ctx context.Context, userID int64, episodeIDs []int64) (map[int64]bool, error) {
	owned := make(map[int64]bool, len(episodeIDs))
	if len(episodeIDs) == 0 {
		return owned, nil
	}

	rows, err := r.db.executor(ctx).QueryContext(ctx, purchasedEpisodeIDs, userID, episodeIDs)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*purchaseRepository.PurchasedEpisodeIDs").Msg("failed to query purchases")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		if err = rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		owned[id] = true
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return owned, nil
}
