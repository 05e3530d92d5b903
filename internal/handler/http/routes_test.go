package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/go-cinema/internal/service"
	"github.com/MKhiriev/go-cinema/models"
	"github.com/stretchr/testify/assert"
)

var protectedRoutes = []struct {
	method string
	path   string
}{
	{http.MethodGet, "/api/users/"},
	{http.MethodGet, "/api/users/me"},
	{http.MethodGet, "/api/users/username/alice"},
	{http.MethodGet, "/api/users/1"},
	{http.MethodPatch, "/api/users/1"},
	{http.MethodDelete, "/api/users/1"},
	{http.MethodPatch, "/api/users/1/role"},
	{http.MethodPatch, "/api/users/1/level"},
	{http.MethodPost, "/api/users/1/money/add"},
	{http.MethodGet, "/api/users/1/comments"},
	{http.MethodGet, "/api/movies/"},
	{http.MethodPost, "/api/movies/"},
	{http.MethodGet, "/api/movies/1"},
	{http.MethodPatch, "/api/movies/1"},
	{http.MethodDelete, "/api/movies/1"},
	{http.MethodPatch, "/api/movies/1/access-level"},
	{http.MethodPost, "/api/episodes/"},
	{http.MethodGet, "/api/episodes/movie/1"},
	{http.MethodGet, "/api/episodes/1"},
	{http.MethodPatch, "/api/episodes/1"},
	{http.MethodDelete, "/api/episodes/1"},
	{http.MethodPost, "/api/episodes/1/purchase"},
	{http.MethodPost, "/api/comments/"},
	{http.MethodGet, "/api/comments/movie/1"},
	{http.MethodPatch, "/api/comments/1"},
	{http.MethodDelete, "/api/comments/1"},
	{http.MethodPost, "/api/premium/purchase"},
	{http.MethodGet, "/api/premium/status"},
}

func TestRoutes_RequireAuthorization(t *testing.T) {
	h := newTestHandler(t, &service.Services{AuthService: authAs(testUser(1, models.RoleUser))})
	router := h.Init()

	for _, rt := range protectedRoutes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(rt.method, rt.path, strings.NewReader("{}")))

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
		})
	}
}

func TestRoutes_PublicEndpoints(t *testing.T) {
	h := newTestHandler(t, &service.Services{})
	router := h.Init()

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/api/version", http.StatusOK},
		{http.MethodGet, "/metrics", http.StatusOK},
		{http.MethodGet, "/api/auth/google/login", http.StatusNotFound},
		{http.MethodGet, "/api/unknown", http.StatusNotFound},
		{http.MethodPut, "/api/version", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestRoutes_TraceIDEchoed(t *testing.T) {
	h := newTestHandler(t, &service.Services{})

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	req.Header.Set(traceIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get(traceIDHeader))
}

func TestRoutes_PanicIsRecovered(t *testing.T) {
	h := newTestHandler(t, &service.Services{
		AuthService: authAs(testUser(1, models.RoleUser)),
		UserService: &fakeUserService{
			getProfileFn: func(_ context.Context, _ models.User) (models.User, error) {
				panic("boom")
			},
		},
	})

	rec := serve(t, h, http.MethodGet, "/api/users/me", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
