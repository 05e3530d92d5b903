package models

import "github.com/shopspring/decimal"

// TokenResponse is returned by the token endpoint.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// DeletedResponse echoes the identifier of a deleted or deactivated entity.
type DeletedResponse struct {
	ID int64 `json:"id"`
}

// BalanceResponse reports a user's balance after a wallet operation.
type BalanceResponse struct {
	UserID  int64           `json:"user_id"`
	Balance decimal.Decimal `json:"balance"`
}
