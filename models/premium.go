package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PremiumPurchaseRequest asks to buy months of premium subscription,
// paid from the user's balance.
type PremiumPurchaseRequest struct {
	Months        int    `json:"months" validate:"required,min=1"`
	PaymentMethod string `json:"payment_method" validate:"omitempty,max=64"`
}

// PremiumPurchase is the outcome of a successful premium purchase.
type PremiumPurchase struct {
	TransactionID string          `json:"transaction_id"`
	PremiumUntil  time.Time       `json:"premium_until"`
	Cost          decimal.Decimal `json:"cost"`
	Balance       decimal.Decimal `json:"balance"`
}

// PremiumStatus is the reconciled subscription state of a user.
type PremiumStatus struct {
	IsPremium    bool       `json:"is_premium"`
	PremiumUntil *time.Time `json:"premium_until,omitempty"`
}

// EpisodePurchase is the outcome of a successful episode purchase.
// CostPaid is zero for premium-active buyers.
type EpisodePurchase struct {
	EpisodeID int64           `json:"episode_id"`
	CostPaid  decimal.Decimal `json:"cost_paid"`
	Balance   decimal.Decimal `json:"balance"`
}

// PremiumTransition records a subscription that the sweep switched off.
type PremiumTransition struct {
	UserID       int64
	PremiumUntil *time.Time
}
