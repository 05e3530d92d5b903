// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/MKhiriev/go-cinema/internal/service"
	"github.com/MKhiriev/go-cinema/internal/store"
	"github.com/MKhiriev/go-cinema/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// register
// ─────────────────────────────────────────────

func TestRegister(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{"created", `{"username":"alice","email":"alice@example.com","password":"secret-pass","name":"A","surname":"B"}`, nil, http.StatusCreated},
		{"duplicate email", `{"username":"alice","email":"alice@example.com","password":"secret-pass","name":"A","surname":"B"}`, store.ErrEmailAlreadyExists, http.StatusConflict},
		{"invalid data", `{"username":"al"}`, service.ErrInvalidDataProvided, http.StatusBadRequest},
		{"invalid json", `{invalid json}`, nil, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := &fakeAuthService{
				registerUserFn: func(_ context.Context, req models.RegisterRequest) (models.User, error) {
					if tt.err != nil {
						return models.User{}, tt.err
					}
					return models.User{UserID: 1, Username: req.Username, Email: req.Email, HashedPassword: "hash"}, nil
				},
			}
			h := newTestHandler(t, &service.Services{AuthService: auth})

			req := httptest.NewRequest(http.MethodPost, "/api/users/", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.Init().ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusCreated {
				assert.Contains(t, rec.Body.String(), `"username":"alice"`)
				assert.NotContains(t, rec.Body.String(), "hash")
			}
		})
	}
}

// ─────────────────────────────────────────────
// token
// ─────────────────────────────────────────────

func TestToken_FormAndJSON(t *testing.T) {
	auth := &fakeAuthService{
		authenticateFn: func(_ context.Context, c models.Credentials) (models.User, error) {
			if c.Username != "alice@example.com" || c.Password != "secret-pass" {
				return models.User{}, service.ErrInvalidCredentials
			}
			return testUser(1, models.RoleUser), nil
		},
	}
	h := newTestHandler(t, &service.Services{AuthService: auth})

	tests := []struct {
		name        string
		contentType string
		body        string
	}{
		{"form", "application/x-www-form-urlencoded", url.Values{"username": {"alice@example.com"}, "password": {"secret-pass"}}.Encode()},
		{"json", "application/json; charset=utf-8", `{"username":"alice@example.com","password":"secret-pass"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/auth/token", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", tt.contentType)
			rec := httptest.NewRecorder()
			h.Init().ServeHTTP(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)
			var resp models.TokenResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, "signed-for-alice@example.com", resp.AccessToken)
			assert.Equal(t, "bearer", resp.TokenType)
		})
	}
}

func TestToken_Failures(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"wrong password", service.ErrInvalidCredentials, http.StatusUnauthorized},
		{"rate limited", service.ErrTooManyAttempts, http.StatusTooManyRequests},
		{"disabled", service.ErrAccountDisabled, http.StatusForbidden},
		{"ledger failure", assert.AnError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := &fakeAuthService{
				authenticateFn: func(context.Context, models.Credentials) (models.User, error) {
					return models.User{}, tt.err
				},
			}
			h := newTestHandler(t, &service.Services{AuthService: auth})

			req := httptest.NewRequest(http.MethodPost, "/api/auth/token",
				strings.NewReader("username=alice%40example.com&password=x"))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			rec := httptest.NewRecorder()
			h.Init().ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusInternalServerError {
				assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
			}
		})
	}
}

// ─────────────────────────────────────────────
// Google OAuth
// ─────────────────────────────────────────────

func TestGoogleLogin_Disabled(t *testing.T) {
	h := newTestHandler(t, &service.Services{AuthService: &fakeAuthService{}})

	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/auth/google/login", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// googleRoundTrip performs the login redirect and returns the state it
// carried together with the session cookie.
func googleRoundTrip(t *testing.T, h *Handler) (string, *http.Cookie) {
	t.Helper()

	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/auth/google/login", nil))
	require.Equal(t, http.StatusFound, rec.Code)

	location, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	state := location.Query().Get("state")
	require.NotEmpty(t, state)

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	return state, cookies[0]
}

func TestGoogleCallback_Success(t *testing.T) {
	provider := &fakeOAuthProvider{
		exchangeFn: func(_ context.Context, code string) (models.OAuthIdentity, error) {
			assert.Equal(t, "auth-code", code)
			return models.OAuthIdentity{Email: "bob@example.com", GivenName: "Bob"}, nil
		},
	}
	auth := &fakeAuthService{
		loginWithOAuthFn: func(_ context.Context, identity models.OAuthIdentity) (models.User, error) {
			return models.User{UserID: 2, Email: identity.Email, IsActive: true}, nil
		},
	}
	h := newTestHandler(t, &service.Services{AuthService: auth, OAuthProvider: provider})
	state, cookie := googleRoundTrip(t, h)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/google/callback?code=auth-code&state="+url.QueryEscape(state), nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)
	location, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "localhost:5173", location.Host)
	assert.Equal(t, "/auth/callback", location.Path)
	assert.Equal(t, "signed-for-bob@example.com", location.Query().Get("token"))
}

func TestGoogleCallback_StateMismatch(t *testing.T) {
	provider := &fakeOAuthProvider{
		exchangeFn: func(context.Context, string) (models.OAuthIdentity, error) {
			t.Fatal("exchange must not be called")
			return models.OAuthIdentity{}, nil
		},
	}
	h := newTestHandler(t, &service.Services{AuthService: &fakeAuthService{}, OAuthProvider: provider})
	_, cookie := googleRoundTrip(t, h)

	t.Run("wrong state", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/google/callback?code=c&state=forged", nil)
		req.AddCookie(cookie)
		rec := httptest.NewRecorder()
		h.Init().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("no session", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Init().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/auth/google/callback?code=c&state=", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGoogleCallback_ExchangeFailure(t *testing.T) {
	provider := &fakeOAuthProvider{
		exchangeFn: func(context.Context, string) (models.OAuthIdentity, error) {
			return models.OAuthIdentity{}, service.ErrOAuthExchangeFailed
		},
	}
	h := newTestHandler(t, &service.Services{AuthService: &fakeAuthService{}, OAuthProvider: provider})
	state, cookie := googleRoundTrip(t, h)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/google/callback?code=bad&state="+url.QueryEscape(state), nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
