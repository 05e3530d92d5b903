// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors used by the transport layer. Callers can match against
// them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is not of the form "Bearer <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrEmptyToken is returned when the "Authorization" header contains the
	// expected scheme prefix but the token value itself is an empty string.
	ErrEmptyToken = errors.New("empty token in `Authorization` header")

	// ErrInvalidPathParameter is returned when a numeric path segment such
	// as {id} cannot be parsed.
	ErrInvalidPathParameter = errors.New("invalid path parameter")

	// ErrInvalidQueryParameter is returned for malformed pagination values.
	ErrInvalidQueryParameter = errors.New("invalid query parameter")

	// ErrInvalidBody is returned when a request body cannot be decoded.
	ErrInvalidBody = errors.New("invalid request body")

	// ErrOAuthStateMismatch is returned by the OAuth callback when the
	// state parameter does not match the one stored in the session.
	ErrOAuthStateMismatch = errors.New("oauth state mismatch")
)
