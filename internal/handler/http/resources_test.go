// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/MKhiriev/go-cinema/internal/service"
	"github.com/MKhiriev/go-cinema/internal/store"
	"github.com/MKhiriev/go-cinema/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUser_PublicView(t *testing.T) {
	viewer := testUser(1, models.RoleUser)
	target := testUser(2, models.RoleUser)
	target.Email = "bob@example.com"
	target.Username = "bob"

	h := newTestHandler(t, &service.Services{
		AuthService: authAs(viewer),
		UserService: &fakeUserService{
			getUserFn: func(_ context.Context, actor models.User, userID int64) (models.UserView, error) {
				assert.Equal(t, viewer.UserID, actor.UserID)
				assert.Equal(t, int64(2), userID)
				return models.UserView{User: target}, nil
			},
		},
	})

	rec := serve(t, h, http.MethodGet, "/api/users/2", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "bob", body["username"])
	assert.NotContains(t, body, "email")
	assert.NotContains(t, body, "money")
}

func TestGetUser_BadID(t *testing.T) {
	h := newTestHandler(t, &service.Services{
		AuthService: authAs(testUser(1, models.RoleUser)),
		UserService: &fakeUserService{},
	})

	rec := serve(t, h, http.MethodGet, "/api/users/abc", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListMovies_PassesPage(t *testing.T) {
	var got models.Page
	h := newTestHandler(t, &service.Services{
		AuthService: authAs(testUser(1, models.RoleUser)),
		MovieService: &fakeMovieService{
			listMoviesFn: func(_ context.Context, _ models.User, page models.Page) ([]models.Movie, error) {
				got = page
				return []models.Movie{{MovieID: 1, Title: "Dune"}}, nil
			},
		},
	})

	rec := serve(t, h, http.MethodGet, "/api/movies/?skip=5&limit=2", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.Page{Offset: 5, Limit: 2}, got)
	assert.Contains(t, rec.Body.String(), `"title":"Dune"`)
}

func TestMovieHandlers(t *testing.T) {
	owner := testUser(1, models.RoleUser)

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		svc        *fakeMovieService
		wantStatus int
	}{
		{
			name:   "create returns 201",
			method: http.MethodPost,
			path:   "/api/movies/",
			body:   `{"title":"Arrival"}`,
			svc: &fakeMovieService{
				createMovieFn: func(_ context.Context, _ models.User, m models.NewMovie) (models.Movie, error) {
					return models.Movie{MovieID: 9, Title: m.Title, AccessLevel: models.AccessPublic}, nil
				},
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "create with unknown access level",
			method:     http.MethodPost,
			path:       "/api/movies/",
			body:       `{"title":"Arrival","access_level":"SECRET"}`,
			svc:        &fakeMovieService{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "get missing movie",
			method: http.MethodGet,
			path:   "/api/movies/404",
			svc: &fakeMovieService{
				getMovieFn: func(_ context.Context, _ models.User, id int64) (models.Movie, error) {
					return models.Movie{}, fmt.Errorf("error getting movie %d: %w", id, store.ErrMovieNotFound)
				},
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:   "update by stranger",
			method: http.MethodPatch,
			path:   "/api/movies/3",
			body:   `{"title":"New"}`,
			svc: &fakeMovieService{
				updateMovieFn: func(_ context.Context, _ models.User, _ int64, _ models.MoviePatch) (models.Movie, error) {
					return models.Movie{}, service.ErrForbidden
				},
			},
			wantStatus: http.StatusForbidden,
		},
		{
			name:   "delete",
			method: http.MethodDelete,
			path:   "/api/movies/3",
			svc: &fakeMovieService{
				deleteMovieFn: func(_ context.Context, _ models.User, id int64) (int64, error) {
					return id, nil
				},
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "set access level",
			method: http.MethodPatch,
			path:   "/api/movies/3/access-level",
			body:   `{"access_level":"premium"}`,
			svc: &fakeMovieService{
				setAccessLevelFn: func(_ context.Context, _ models.User, id int64, level models.AccessLevel) (models.Movie, error) {
					assert.Equal(t, models.AccessPremium, level)
					return models.Movie{MovieID: id, AccessLevel: level}, nil
				},
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(t, &service.Services{AuthService: authAs(owner), MovieService: tt.svc})

			rec := serve(t, h, tt.method, tt.path, tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
		})
	}
}

func TestPurchaseEpisode_Statuses(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"success", nil, http.StatusOK},
		{"insufficient funds", fmt.Errorf("%w: balance 5", service.ErrInsufficientFunds), http.StatusForbidden},
		{"already owned", service.ErrAlreadyOwned, http.StatusBadRequest},
		{"unknown episode", store.ErrEpisodeNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(t, &service.Services{
				AuthService: authAs(testUser(1, models.RoleUser)),
				PurchaseService: &fakePurchaseService{
					purchaseEpisodeFn: func(_ context.Context, _ models.User, episodeID int64) (models.EpisodePurchase, error) {
						if tt.err != nil {
							return models.EpisodePurchase{}, tt.err
						}
						return models.EpisodePurchase{
							EpisodeID: episodeID,
							CostPaid:  decimal.NewFromInt(15),
							Balance:   decimal.NewFromInt(85),
						}, nil
					},
				},
			})

			rec := serve(t, h, http.MethodPost, "/api/episodes/7/purchase", "")

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.err == nil {
				assert.JSONEq(t, `{"episode_id":7,"cost_paid":"15","balance":"85"}`, rec.Body.String())
			}
		})
	}
}

func TestPurchasePremium_InsufficientFunds(t *testing.T) {
	h := newTestHandler(t, &service.Services{
		AuthService: authAs(testUser(1, models.RoleUser)),
		PremiumService: &fakePremiumService{
			purchasePremiumFn: func(_ context.Context, _ models.User, req models.PremiumPurchaseRequest) (models.PremiumPurchase, error) {
				assert.Equal(t, 3, req.Months)
				return models.PremiumPurchase{}, service.ErrInsufficientFundsForPremium
			},
		},
	})

	rec := serve(t, h, http.MethodPost, "/api/premium/purchase", `{"months":3,"payment_method":"card"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListEpisodes_HasAccessFlag(t *testing.T) {
	h := newTestHandler(t, &service.Services{
		AuthService: authAs(testUser(1, models.RoleUser)),
		EpisodeService: &fakeEpisodeService{
			listEpisodesFn: func(_ context.Context, _ models.User, movieID int64) ([]models.EpisodeView, error) {
				assert.Equal(t, int64(4), movieID)
				return []models.EpisodeView{
					{Episode: models.Episode{EpisodeID: 1, MovieID: 4, EpisodeNumber: 1}, HasAccess: true},
					{Episode: models.Episode{EpisodeID: 2, MovieID: 4, EpisodeNumber: 2}},
				}, nil
			},
		},
	})

	rec := serve(t, h, http.MethodGet, "/api/episodes/movie/4", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var got []models.EpisodeView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.True(t, got[0].HasAccess)
	assert.False(t, got[1].HasAccess)
}

func TestCreateComment(t *testing.T) {
	author := testUser(3, models.RoleUser)
	h := newTestHandler(t, &service.Services{
		AuthService: authAs(author),
		CommentService: &fakeCommentService{
			createCommentFn: func(_ context.Context, actor models.User, c models.NewComment) (models.Comment, error) {
				return models.Comment{CommentID: 11, UserID: actor.UserID, MovieID: c.MovieID, Content: c.Content, Rating: c.Rating, IsActive: true}, nil
			},
		},
	})

	rec := serve(t, h, http.MethodPost, "/api/comments/", `{"movie_id":4,"content":"great","rating":9}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"comment_id":11`)
	assert.Contains(t, rec.Body.String(), `"user_id":3`)
}

func TestAddMoney_MalformedAmount(t *testing.T) {
	h := newTestHandler(t, &service.Services{
		AuthService: authAs(testUser(1, models.RoleAdmin)),
		UserService: &fakeUserService{},
	})

	rec := serve(t, h, http.MethodPost, "/api/users/2/money/add", `{"amount":"lots"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
