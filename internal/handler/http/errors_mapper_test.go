package http

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/MKhiriev/go-cinema/internal/service"
	"github.com/MKhiriev/go-cinema/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{service.ErrInvalidDataProvided, http.StatusBadRequest},
		{service.ErrInvalidCredentials, http.StatusUnauthorized},
		{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized},
		{service.ErrAccountDisabled, http.StatusForbidden},
		{service.ErrForbidden, http.StatusForbidden},
		{service.ErrInsufficientFunds, http.StatusForbidden},
		{service.ErrInsufficientFundsForPremium, http.StatusBadRequest},
		{service.ErrAlreadyOwned, http.StatusBadRequest},
		{store.ErrMovieNotFound, http.StatusNotFound},
		{store.ErrEpisodeNotFound, http.StatusNotFound},
		{store.ErrEmailAlreadyExists, http.StatusConflict},
		{service.ErrTooManyAttempts, http.StatusTooManyRequests},
		{ErrInvalidPathParameter, http.StatusBadRequest},
		{fmt.Errorf("error getting movie 3: %w", store.ErrMovieNotFound), http.StatusNotFound},
		{fmt.Errorf("%w: months", service.ErrInvalidDataProvided), http.StatusBadRequest},
		{assert.AnError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, statusFromError(tt.err))
		})
	}
}
