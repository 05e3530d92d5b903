package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-cinema/internal/logger"
	"github.com/MKhiriev/go-cinema/internal/metrics"
	"github.com/MKhiriev/go-cinema/internal/store"
	"github.com/MKhiriev/go-cinema/internal/validators"
	"github.com/MKhiriev/go-cinema/models"
	"github.com/shopspring/decimal"
)

// PremiumPricing is the subscription price list.
type PremiumPricing struct {
	MonthlyPrice decimal.Decimal
	DaysPerMonth int
}

// Cost returns the price of months.
func (p PremiumPricing) Cost(months int) decimal.Decimal {
	return p.MonthlyPrice.Mul(decimal.NewFromInt(int64(months)))
}

// Extend returns the expiry after buying months at now. A running
// subscription is extended from its current expiry so no paid time is
// lost; otherwise the new period starts at now.
func (p PremiumPricing) Extend(user models.User, now time.Time, months int) time.Time {
	start := now
	if user.IsPremiumActive(now) {
		start = *user.PremiumUntil
	}
	return start.Add(time.Duration(p.DaysPerMonth*months) * 24 * time.Hour)
}

// idGenerator issues transaction identifiers.
type idGenerator interface {
	Generate() string
}

type premiumService struct {
	transactor store.Transactor
	users      store.UserRepository
	validator  validators.Validator
	pricing    PremiumPricing
	ids        idGenerator
	now        func() time.Time
	logger     *logger.Logger
}

func NewPremiumService(
	transactor store.Transactor,
	users store.UserRepository,
	validator validators.Validator,
	pricing PremiumPricing,
	ids idGenerator,
	now func() time.Time,
	logger *logger.Logger,
) PremiumService {
	return &premiumService{
		transactor: transactor,
		users:      users,
		validator:  validator,
		pricing:    pricing,
		ids:        ids,
		now:        now,
		logger:     logger,
	}
}

// PurchasePremium pays req.Months of subscription from the actor's balance
// inside one transaction holding the user row lock.
//
// Every call gets a fresh transaction id; retried requests are charged
// again. It fails with ErrInsufficientFundsForPremium when the balance is
// below the cost.
func (s *premiumService) PurchasePremium(ctx context.Context, actor models.User, req models.PremiumPurchaseRequest) (models.PremiumPurchase, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, req); err != nil {
		return models.PremiumPurchase{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	cost := s.pricing.Cost(req.Months)

	var result models.PremiumPurchase
	err := s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		user, err := s.users.GetUserForUpdate(ctx, actor.UserID)
		if err != nil {
			return fmt.Errorf("error locking user %d: %w", actor.UserID, err)
		}
		if !user.IsActive {
			return ErrAccountDisabled
		}

		now := s.now()
		until := s.pricing.Extend(user, now, req.Months)

		balance, err := s.users.DebitMoney(ctx, user.UserID, cost)
		if errors.Is(err, store.ErrInsufficientFunds) {
			return ErrInsufficientFundsForPremium
		}
		if err != nil {
			return fmt.Errorf("error debiting user %d: %w", user.UserID, err)
		}

		if err = s.users.SetPremiumUntil(ctx, user.UserID, until); err != nil {
			return fmt.Errorf("error extending premium of user %d: %w", user.UserID, err)
		}

		result = models.PremiumPurchase{
			TransactionID: s.ids.Generate(),
			PremiumUntil:  until,
			Cost:          cost,
			Balance:       balance,
		}
		return nil
	})
	if err != nil {
		metrics.Purchases.WithLabelValues(metrics.KindPremium, purchaseResult(err)).Inc()
		return models.PremiumPurchase{}, err
	}

	metrics.Purchases.WithLabelValues(metrics.KindPremium, metrics.ResultSuccess).Inc()
	log.Info().
		Int64("user_id", actor.UserID).
		Str("transaction_id", result.TransactionID).
		Str("payment_method", req.PaymentMethod).
		Int("months", req.Months).
		Str("cost", cost.String()).
		Time("premium_until", result.PremiumUntil).
		Msg("premium purchased")
	return result, nil
}

// GetStatus returns the actor's subscription after lazy reconciliation.
func (s *premiumService) GetStatus(ctx context.Context, actor models.User) (models.PremiumStatus, error) {
	user, err := activeUser(ctx, s.users, actor.UserID)
	if err != nil {
		return models.PremiumStatus{}, err
	}

	if err = reconcilePremium(ctx, s.users, &user, s.now()); err != nil {
		return models.PremiumStatus{}, err
	}

	return models.PremiumStatus{IsPremium: user.IsPremium, PremiumUntil: user.PremiumUntil}, nil
}
