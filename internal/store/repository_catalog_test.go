package store

import (
	"context"
	"database/sql/driver"
	"reflect"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-cinema/internal/logger"
	"github.com/MKhiriev/go-cinema/models"
	"github.com/jackc/pgerrcode"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// passthroughConverter lets slice arguments reach sqlmock unchanged, the
// way the pgx driver accepts them.
type passthroughConverter struct{}

func (passthroughConverter) ConvertValue(v any) (driver.Value, error) {
	return v, nil
}

// sliceArg matches a slice argument by deep equality.
type sliceArg struct {
	want any
}

func (a sliceArg) Match(v driver.Value) bool {
	return reflect.DeepEqual(a.want, v)
}

func newTestCatalogDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New(sqlmock.ValueConverterOption(passthroughConverter{}))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return &DB{DB: conn, logger: logger.Nop()}, mock
}

var movieRowColumns = []string{
	"movie_id", "title", "original_title", "description", "poster", "backdrop", "release_date",
	"duration", "director", "genres", "owner_id", "is_active", "access_level", "rating",
	"created_at", "updated_at",
}

func movieRow(rows *sqlmock.Rows, id int64, level models.AccessLevel, genres string) *sqlmock.Rows {
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	return rows.AddRow(id, "Heat", "Heat", "", "", "", nil, 170, "Michael Mann", genres, int64(7), true, string(level), "8.3", now, now)
}

// ── movies ──────────────────────────────────────────────────────────────────

func TestMovieRepository_CreateMovie(t *testing.T) {
	db, mock := newTestCatalogDB(t)
	repo := NewMovieRepository(db, logger.Nop())

	mock.ExpectQuery("INSERT INTO movies").
		WithArgs("Heat", "", "", "", "", sqlmock.AnyArg(), 170, "Michael Mann", sliceArg{[]string{"crime", "drama"}}, int64(7), models.AccessPremium).
		WillReturnRows(movieRow(sqlmock.NewRows(movieRowColumns), 1, models.AccessPremium, "{crime,drama}"))

	created, err := repo.CreateMovie(context.Background(), models.Movie{
		Title:       "Heat",
		Duration:    170,
		Director:    "Michael Mann",
		Genres:      []string{"crime", "drama"},
		OwnerID:     7,
		AccessLevel: models.AccessPremium,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), created.MovieID)
	assert.Equal(t, []string{"crime", "drama"}, created.Genres)
	assert.Equal(t, models.AccessPremium, created.AccessLevel)
	assert.InDelta(t, 8.3, created.Rating, 1e-9)
	assert.Nil(t, created.ReleaseDate)
}

func TestMovieRepository_CreateMovie_UnknownOwner(t *testing.T) {
	db, mock := newTestCatalogDB(t)
	repo := NewMovieRepository(db, logger.Nop())

	mock.ExpectQuery("INSERT INTO movies").WillReturnError(pgError(pgerrcode.ForeignKeyViolation))

	_, err := repo.CreateMovie(context.Background(), models.Movie{Title: "Heat", OwnerID: 404})
	assert.ErrorIs(t, err, ErrReferenceNotFound)
}

func TestMovieRepository_GetMovie_SoftDeleted(t *testing.T) {
	db, mock := newTestCatalogDB(t)
	repo := NewMovieRepository(db, logger.Nop())

	mock.ExpectQuery("WHERE movie_id = \\$1 AND is_active").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(movieRowColumns))

	_, err := repo.GetMovie(context.Background(), 3)
	assert.ErrorIs(t, err, ErrMovieNotFound)
}

func TestMovieRepository_ListActiveMovies(t *testing.T) {
	db, mock := newTestCatalogDB(t)
	repo := NewMovieRepository(db, logger.Nop())

	rows := sqlmock.NewRows(movieRowColumns)
	movieRow(rows, 1, models.AccessPublic, "{}")
	movieRow(rows, 2, models.AccessPrivate, "{noir}")

	mock.ExpectQuery("FROM movies WHERE is_active ORDER BY movie_id LIMIT").WillReturnRows(rows)

	movies, err := repo.ListActiveMovies(context.Background(), models.Page{Limit: 10})
	require.NoError(t, err)
	require.Len(t, movies, 2)
	assert.Empty(t, movies[0].Genres)
	assert.Equal(t, []string{"noir"}, movies[1].Genres)
}

func TestMovieRepository_UpdateMovie_Genres(t *testing.T) {
	db, mock := newTestCatalogDB(t)
	repo := NewMovieRepository(db, logger.Nop())

	genres := []string{"thriller"}
	mock.ExpectQuery("UPDATE movies SET genres = \\$1, updated_at = NOW\\(\\) WHERE is_active AND movie_id = \\$2").
		WithArgs(sliceArg{genres}, int64(1)).
		WillReturnRows(movieRow(sqlmock.NewRows(movieRowColumns), 1, models.AccessPublic, "{thriller}"))

	movie, err := repo.UpdateMovie(context.Background(), 1, models.MoviePatch{Genres: &genres})
	require.NoError(t, err)
	assert.Equal(t, genres, movie.Genres)
}

func TestMovieRepository_DeactivateMovie(t *testing.T) {
	db, mock := newTestCatalogDB(t)
	repo := NewMovieRepository(db, logger.Nop())

	mock.ExpectExec("UPDATE movies\\s+SET is_active = FALSE").WithArgs(int64(1)).WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.DeactivateMovie(context.Background(), 1), ErrMovieNotFound)
}

func TestMovieRepository_SetRating(t *testing.T) {
	db, mock := newTestCatalogDB(t)
	repo := NewMovieRepository(db, logger.Nop())

	mock.ExpectExec("SET rating = \\$2").WithArgs(int64(1), 7.5).WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SetRating(context.Background(), 1, 7.5))
}

// ── episodes ────────────────────────────────────────────────────────────────

var episodeRowColumns = []string{"episode_id", "movie_id", "title", "episode_number", "cost", "video_ref", "created_at", "updated_at"}

func TestEpisodeRepository_ListOrdered(t *testing.T) {
	db, mock := newTestCatalogDB(t)
	repo := NewEpisodeRepository(db, logger.Nop())

	now := time.Now()
	mock.ExpectQuery("ORDER BY episode_number").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(episodeRowColumns).
			AddRow(int64(10), int64(1), "Pilot", 1, "15.00", "s3://pilot", now, now).
			AddRow(int64(11), int64(1), "Two", 2, "20.00", "s3://two", now, now))

	episodes, err := repo.ListEpisodesByMovie(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, episodes, 2)
	assert.True(t, episodes[0].Cost.Equal(decimal.NewFromInt(15)))
	assert.Equal(t, 2, episodes[1].EpisodeNumber)
}

func TestEpisodeRepository_DeleteIsPhysical(t *testing.T) {
	db, mock := newTestCatalogDB(t)
	repo := NewEpisodeRepository(db, logger.Nop())

	mock.ExpectExec("DELETE FROM episodes").WithArgs(int64(10)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM episodes").WithArgs(int64(10)).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.DeleteEpisode(context.Background(), 10))
	assert.ErrorIs(t, repo.DeleteEpisode(context.Background(), 10), ErrEpisodeNotFound)
}

func TestEpisodeRepository_GetMissing(t *testing.T) {
	db, mock := newTestCatalogDB(t)
	repo := NewEpisodeRepository(db, logger.Nop())

	mock.ExpectQuery("FROM episodes").WillReturnRows(sqlmock.NewRows(episodeRowColumns))

	_, err := repo.GetEpisode(context.Background(), 99)
	assert.ErrorIs(t, err, ErrEpisodeNotFound)
}

// ── purchases ───────────────────────────────────────────────────────────────

func TestPurchaseRepository_CreateDuplicate(t *testing.T) {
	db, mock := newTestCatalogDB(t)
	repo := NewPurchaseRepository(db, logger.Nop())

	mock.ExpectQuery("INSERT INTO purchased_episodes").WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreatePurchase(context.Background(), models.PurchasedEpisode{UserID: 1, EpisodeID: 2, PurchasedAt: time.Now()})
	assert.ErrorIs(t, err, ErrAlreadyPurchased)
}

func TestPurchaseRepository_HasPurchase(t *testing.T) {
	db, mock := newTestCatalogDB(t)
	repo := NewPurchaseRepository(db, logger.Nop())

	mock.ExpectQuery("SELECT EXISTS").WithArgs(int64(1), int64(2)).WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	owned, err := repo.HasPurchase(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.True(t, owned)
}

func TestPurchaseRepository_PurchasedEpisodeIDs(t *testing.T) {
	db, mock := newTestCatalogDB(t)
	repo := NewPurchaseRepository(db, logger.Nop())

	mock.ExpectQuery("episode_id = ANY\\(\\$2\\)").
		WithArgs(int64(1), sliceArg{[]int64{10, 11, 12}}).
		WillReturnRows(sqlmock.NewRows([]string{"episode_id"}).AddRow(int64(11)))

	owned, err := repo.PurchasedEpisodeIDs(context.Background(), 1, []int64{10, 11, 12})
	require.NoError(t, err)
	assert.Equal(t, map[int64]bool{11: true}, owned)
}

func TestPurchaseRepository_PurchasedEpisodeIDs_Empty(t *testing.T) {
	db, _ := newTestCatalogDB(t)
	repo := NewPurchaseRepository(db, logger.Nop())

	owned, err := repo.PurchasedEpisodeIDs(context.Background(), 1, nil)
	require.NoError(t, err)
	assert.Empty(t, owned)
}

// ── comments ────────────────────────────────────────────────────────────────

func TestCommentRepository_AverageRatings(t *testing.T) {
	db, mock := newTestCatalogDB(t)
	repo := NewCommentRepository(db, logger.Nop())

	mock.ExpectQuery("SUM\\(c.rating\\), COUNT\\(\\*\\)").
		WillReturnRows(sqlmock.NewRows([]string{"movie_id", "sum", "count"}).
			AddRow(int64(1), int64(17), int64(2)).
			AddRow(int64(4), int64(9), int64(1)))

	aggregates, err := repo.AverageRatings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.RatingAggregate{
		{MovieID: 1, Sum: 17, Count: 2},
		{MovieID: 4, Sum: 9, Count: 1},
	}, aggregates)
}

func TestCommentRepository_ListByMovie(t *testing.T) {
	db, mock := newTestCatalogDB(t)
	repo := NewCommentRepository(db, logger.Nop())

	now := time.Now()
	mock.ExpectQuery("FROM comments WHERE \\(movie_id = \\$1 AND is_active\\)").
		WillReturnRows(sqlmock.NewRows([]string{"comment_id", "user_id", "movie_id", "content", "rating", "is_active", "created_at", "updated_at"}).
			AddRow(int64(1), int64(2), int64(3), "great", 9, true, now, now))

	comments, err := repo.ListByMovie(context.Background(), 3, models.Page{})
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, 9, comments[0].Rating)
}

func TestCommentRepository_EmptyPatch(t *testing.T) {
	db, _ := newTestCatalogDB(t)
	repo := NewCommentRepository(db, logger.Nop())

	_, err := repo.UpdateComment(context.Background(), 1, models.CommentPatch{})
	assert.ErrorIs(t, err, ErrNothingToUpdate)
}
