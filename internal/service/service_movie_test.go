package service

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/go-cinema/internal/logger"
	"github.com/MKhiriev/go-cinema/internal/mock"
	"github.com/MKhiriev/go-cinema/internal/store"
	"github.com/MKhiriev/go-cinema/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestMovieService(t *testing.T) (MovieService, *mock.MockMovieRepository) {
	t.Helper()
	movies := mock.NewMockMovieRepository(gomock.NewController(t))
	return NewMovieService(movies, testValidator(), fixedClock, logger.Nop()), movies
}

func TestCreateMovie_DefaultsToPublic(t *testing.T) {
	svc, movies := newTestMovieService(t)
	owner := plainUser(7, models.RoleUser)

	movies.EXPECT().CreateMovie(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, m models.Movie) (models.Movie, error) {
			assert.Equal(t, models.AccessPublic, m.AccessLevel)
			assert.Equal(t, int64(7), m.OwnerID)
			assert.True(t, m.IsActive)
			m.MovieID = 1
			return m, nil
		})

	created, err := svc.CreateMovie(context.Background(), owner, models.NewMovie{Title: "Heat"})

	require.NoError(t, err)
	assert.Equal(t, int64(1), created.MovieID)
}

func TestCreateMovie_InvalidInput(t *testing.T) {
	svc, _ := newTestMovieService(t)

	_, err := svc.CreateMovie(context.Background(), plainUser(1, models.RoleUser), models.NewMovie{})

	require.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestGetMovie_AccessLevels(t *testing.T) {
	premium := models.Movie{MovieID: 2, OwnerID: 9, IsActive: true, AccessLevel: models.AccessPremium}
	private := models.Movie{MovieID: 3, OwnerID: 9, IsActive: true, AccessLevel: models.AccessPrivate}

	tests := []struct {
		name    string
		actor   models.User
		movie   models.Movie
		wantErr error
	}{
		{"public for anyone", plainUser(1, models.RoleUser), publicMovie(1, 9), nil},
		{"premium denied", plainUser(1, models.RoleUser), premium, ErrForbidden},
		{"premium for subscriber", premiumUser(1, fixedNow.Add(time.Hour)), premium, nil},
		{"premium after expiry", premiumUser(1, fixedNow), premium, ErrForbidden},
		{"private for owner", plainUser(9, models.RoleUser), private, nil},
		{"private for moderator", plainUser(1, models.RoleModerator), private, nil},
		{"private for subscriber", premiumUser(1, fixedNow.Add(time.Hour)), private, nil},
		{"private denied", plainUser(1, models.RoleUser), private, ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, movies := newTestMovieService(t)
			movies.EXPECT().GetMovie(gomock.Any(), tt.movie.MovieID).Return(tt.movie, nil)

			_, err := svc.GetMovie(context.Background(), tt.actor, tt.movie.MovieID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestGetMovie_NotFound(t *testing.T) {
	svc, movies := newTestMovieService(t)
	movies.EXPECT().GetMovie(gomock.Any(), int64(404)).Return(models.Movie{}, store.ErrMovieNotFound)

	_, err := svc.GetMovie(context.Background(), plainUser(1, models.RoleUser), 404)

	require.ErrorIs(t, err, store.ErrMovieNotFound)
}

func TestListMovies_FiltersInaccessible(t *testing.T) {
	svc, movies := newTestMovieService(t)
	listed := []models.Movie{
		publicMovie(1, 9),
		{MovieID: 2, OwnerID: 9, IsActive: true, AccessLevel: models.AccessPremium},
		{MovieID: 3, OwnerID: 1, IsActive: true, AccessLevel: models.AccessPrivate},
	}
	movies.EXPECT().ListActiveMovies(gomock.Any(), models.Page{Limit: models.DefaultPageLimit}).Return(listed, nil)

	got, err := svc.ListMovies(context.Background(), plainUser(1, models.RoleUser), models.Page{})

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].MovieID)
	assert.Equal(t, int64(3), got[1].MovieID)
}

func TestUpdateMovie_OwnershipRules(t *testing.T) {
	patch := models.MoviePatch{Title: ptr("Heat 2")}

	tests := []struct {
		name    string
		actor   models.User
		allowed bool
	}{
		{"owner", plainUser(9, models.RoleUser), true},
		{"admin", plainUser(1, models.RoleAdmin), true},
		{"moderator", plainUser(1, models.RoleModerator), false},
		{"stranger", plainUser(1, models.RoleUser), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, movies := newTestMovieService(t)
			movies.EXPECT().GetMovie(gomock.Any(), int64(1)).Return(publicMovie(1, 9), nil)
			if tt.allowed {
				movies.EXPECT().UpdateMovie(gomock.Any(), int64(1), patch).Return(publicMovie(1, 9), nil)
			}

			_, err := svc.UpdateMovie(context.Background(), tt.actor, 1, patch)
			if tt.allowed {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrForbidden)
		})
	}
}

func TestUpdateMovie_EmptyPatch(t *testing.T) {
	svc, _ := newTestMovieService(t)

	_, err := svc.UpdateMovie(context.Background(), plainUser(9, models.RoleUser), 1, models.MoviePatch{})

	require.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestDeleteMovie(t *testing.T) {
	t.Run("owner deletes", func(t *testing.T) {
		svc, movies := newTestMovieService(t)
		movies.EXPECT().GetMovie(gomock.Any(), int64(1)).Return(publicMovie(1, 9), nil)
		movies.EXPECT().DeactivateMovie(gomock.Any(), int64(1)).Return(nil)

		id, err := svc.DeleteMovie(context.Background(), plainUser(9, models.RoleUser), 1)
		require.NoError(t, err)
		assert.Equal(t, int64(1), id)
	})

	t.Run("stranger denied", func(t *testing.T) {
		svc, movies := newTestMovieService(t)
		movies.EXPECT().GetMovie(gomock.Any(), int64(1)).Return(publicMovie(1, 9), nil)

		_, err := svc.DeleteMovie(context.Background(), plainUser(2, models.RoleModerator), 1)
		assert.ErrorIs(t, err, ErrForbidden)
	})
}

func TestSetAccessLevel(t *testing.T) {
	svc, movies := newTestMovieService(t)
	updated := publicMovie(1, 9)
	updated.AccessLevel = models.AccessPremium

	movies.EXPECT().GetMovie(gomock.Any(), int64(1)).Return(publicMovie(1, 9), nil)
	movies.EXPECT().SetAccessLevel(gomock.Any(), int64(1), models.AccessPremium).Return(updated, nil)

	got, err := svc.SetAccessLevel(context.Background(), plainUser(9, models.RoleUser), 1, models.AccessPremium)

	require.NoError(t, err)
	assert.Equal(t, models.AccessPremium, got.AccessLevel)
}
