package models

import "github.com/shopspring/decimal"

// Credentials is the body of a password token request.
// Username carries the account e-mail, as in the OAuth2 password grant.
type Credentials struct {
	Username string `json:"username" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest is the body of a registration request.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Name     string `json:"name" validate:"required,max=100"`
	Surname  string `json:"surname" validate:"required,max=100"`
	Age      *int   `json:"age,omitempty" validate:"omitempty,min=0,max=150"`
	About    string `json:"about" validate:"max=2000"`
	Location string `json:"location" validate:"max=255"`
}

// RoleChangeRequest is the body of a role change request.
type RoleChangeRequest struct {
	Role Role `json:"role" validate:"required"`
}

// LevelChangeRequest is the body of a level change request.
type LevelChangeRequest struct {
	Level int `json:"level"`
}

// AccessLevelChangeRequest is the body of a movie access level change.
type AccessLevelChangeRequest struct {
	AccessLevel AccessLevel `json:"access_level" validate:"required,oneof=PUBLIC PREMIUM PRIVATE"`
}

// AddMoneyRequest is the body of a balance top-up.
type AddMoneyRequest struct {
	Amount decimal.Decimal `json:"amount"`
}
