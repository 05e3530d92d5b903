package models

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a JWT session token.
//
// It embeds [jwt.Token] for low-level token operations and
// [jwt.RegisteredClaims] so it can be used directly as the claims target
// when parsing. The subject claim carries the account e-mail.
type Token struct {
	*jwt.Token `json:"-"`

	jwt.RegisteredClaims

	// SignedString is the compact JWS form handed to clients.
	SignedString string `json:"-"`

	// Email is the parsed subject claim.
	Email string `json:"-"`
}

// GetEmail returns the subject claim, failing when it is absent.
func (t *Token) GetEmail() (string, error) {
	subject, err := t.GetSubject()
	if err != nil {
		return "", err
	}
	if subject == "" {
		return "", errors.New("token has no subject")
	}

	return subject, nil
}

// String returns the compact JWS serialization of the token.
func (t *Token) String() string {
	return t.SignedString
}
