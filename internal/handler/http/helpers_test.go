package http

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/go-cinema/internal/service"
	"github.com/MKhiriev/go-cinema/models"
)

const testBearer = "Bearer valid-token"

// authAs returns an AuthService fake that resolves "valid-token" to user.
func authAs(user models.User) *fakeAuthService {
	return &fakeAuthService{
		parseTokenFn: func(_ context.Context, tokenString string) (models.User, error) {
			if tokenString != "valid-token" {
				return models.User{}, service.ErrTokenIsExpiredOrInvalid
			}
			return user, nil
		},
	}
}

// serve sends a request through the full router with the test bearer token.
func serve(t *testing.T, h *Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Authorization", testBearer)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)
	return rec
}
