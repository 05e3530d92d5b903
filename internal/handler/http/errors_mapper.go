package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-cinema/internal/logger"
	"github.com/MKhiriev/go-cinema/internal/service"
	"github.com/MKhiriev/go-cinema/internal/store"
)

type errorStatus struct {
	target error
	status int
}

// errorStatuses is matched top to bottom. ErrInsufficientFundsForPremium
// wraps ErrInsufficientFunds, so it must come first.
var errorStatuses = []errorStatus{
	{service.ErrInsufficientFundsForPremium, http.StatusBadRequest},
	{service.ErrInsufficientFunds, http.StatusForbidden},
	{service.ErrAlreadyOwned, http.StatusBadRequest},

	{service.ErrInvalidDataProvided, http.StatusBadRequest},
	{service.ErrVersionIsNotSpecified, http.StatusBadRequest},
	{ErrInvalidPathParameter, http.StatusBadRequest},
	{ErrInvalidQueryParameter, http.StatusBadRequest},
	{ErrInvalidBody, http.StatusBadRequest},
	{ErrOAuthStateMismatch, http.StatusBadRequest},
	{service.ErrOAuthNoEmail, http.StatusBadRequest},

	{service.ErrInvalidCredentials, http.StatusUnauthorized},
	{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized},
	{ErrEmptyAuthorizationHeader, http.StatusUnauthorized},
	{ErrInvalidAuthorizationHeader, http.StatusUnauthorized},
	{ErrEmptyToken, http.StatusUnauthorized},

	{service.ErrAccountDisabled, http.StatusForbidden},
	{service.ErrForbidden, http.StatusForbidden},

	{store.ErrUserNotFound, http.StatusNotFound},
	{store.ErrMovieNotFound, http.StatusNotFound},
	{store.ErrEpisodeNotFound, http.StatusNotFound},
	{store.ErrCommentNotFound, http.StatusNotFound},
	{store.ErrReferenceNotFound, http.StatusNotFound},
	{service.ErrOAuthDisabled, http.StatusNotFound},

	{store.ErrEmailAlreadyExists, http.StatusConflict},

	{service.ErrTooManyAttempts, http.StatusTooManyRequests},

	{service.ErrOAuthExchangeFailed, http.StatusBadGateway},
}

func statusFromError(err error) int {
	for _, e := range errorStatuses {
		if errors.Is(err, e.target) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

// writeError logs err and answers with its mapped status. Internal errors
// get a generic body; everything else carries the error text.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)
	status := statusFromError(err)

	if status == http.StatusInternalServerError {
		log.Err(err).Str("path", r.URL.Path).Msg("unexpected error")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	log.Debug().Err(err).Int("status", status).Msg("request rejected")
	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}
	http.Error(w, err.Error(), status)
}
