package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-cinema/models"
)

// psql builds PostgreSQL statements with $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// ── users ───────────────────────────────────────────────────────────────────

const userColumns = `user_id, username, email, name, surname, photo, frame_photo, header_photo,
    about, location, age, role, is_active, is_premium, premium_until, money, level, title,
    hashed_password, created_at, updated_at`

const (
	createUser = `INSERT INTO users (username, email, name, surname, photo, about, location, age,
        role, is_active, money, level, title, hashed_password)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
    RETURNING ` + userColumns + `;`

	getUserByID = `SELECT ` + userColumns + `
    FROM users
    WHERE user_id = $1;`

	getUserByEmail = `SELECT ` + userColumns + `
    FROM users
    WHERE email = $1;`

	getUserByUsername = `SELECT ` + userColumns + `
    FROM users
    WHERE username = $1 AND is_active
    ORDER BY user_id
    LIMIT 1;`

	getUserForUpdate = `SELECT ` + userColumns + `
    FROM users
    WHERE user_id = $1
    FOR UPDATE;`

	listPremiumUsers = `SELECT ` + userColumns + `
    FROM users
    WHERE is_premium
    ORDER BY user_id;`

	deactivateUser = `UPDATE users
    SET is_active = FALSE, updated_at = NOW()
    WHERE user_id = $1 AND is_active;`

	setUserRole = `UPDATE users
    SET role = $2, updated_at = NOW()
    WHERE user_id = $1
    RETURNING ` + userColumns + `;`

	setUserLevel = `UPDATE users
    SET level = $2, title = $3, updated_at = NOW()
    WHERE user_id = $1
    RETURNING ` + userColumns + `;`

	addUserMoney = `UPDATE users
    SET money = money + $2, updated_at = NOW()
    WHERE user_id = $1
    RETURNING money;`

	debitUserMoney = `UPDATE users
    SET money = money - $2, updated_at = NOW()
    WHERE user_id = $1 AND money >= $2
    RETURNING money;`

	setUserPremiumUntil = `UPDATE users
    SET is_premium = TRUE, premium_until = $2, updated_at = NOW()
    WHERE user_id = $1;`

	clearExpiredPremium = `UPDATE users
    SET is_premium = FALSE, premium_until = NULL, updated_at = NOW()
    WHERE user_id = $1 AND is_premium AND (premium_until IS NULL OR premium_until <= $2);`
)

// ── login attempts ──────────────────────────────────────────────────────────

const (
	lockLoginAttempts = `SELECT pg_advisory_xact_lock(hashtext($1));`

	purgeLoginAttempts = `DELETE FROM login_attempts
    WHERE email = $1 AND created_at < $2;`

	countLoginAttempts = `SELECT COUNT(*)
    FROM login_attempts
    WHERE email = $1 AND created_at >= $2;`

	recordLoginAttempt = `INSERT INTO login_attempts (email, success, created_at)
    VALUES ($1, $2, $3);`
)

// ── movies ──────────────────────────────────────────────────────────────────

const movieColumns = `movie_id, title, original_title, description, poster, backdrop, release_date,
    duration, director, genres, owner_id, is_active, access_level, rating, created_at, updated_at`

const (
	createMovie = `INSERT INTO movies (title, original_title, description, poster, backdrop,
        release_date, duration, director, genres, owner_id, access_level)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
    RETURNING ` + movieColumns + `;`

	getMovie = `SELECT ` + movieColumns + `
    FROM movies
    WHERE movie_id = $1 AND is_active;`

	setMovieAccessLevel = `UPDATE movies
    SET access_level = $2, updated_at = NOW()
    WHERE movie_id = $1 AND is_active
    RETURNING ` + movieColumns + `;`

	deactivateMovie = `UPDATE movies
    SET is_active = FALSE, updated_at = NOW()
    WHERE movie_id = $1 AND is_active;`

	setMovieRating = `UPDATE movies
    SET rating = $2
    WHERE movie_id = $1 AND rating IS DISTINCT FROM $2;`
)

// ── episodes ────────────────────────────────────────────────────────────────

const episodeColumns = `episode_id, movie_id, title, episode_number, cost, video_ref, created_at, updated_at`

const (
	createEpisode = `INSERT INTO episodes (movie_id, title, episode_number, cost, video_ref)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING ` + episodeColumns + `;`

	getEpisode = `SELECT ` + episodeColumns + `
    FROM episodes
    WHERE episode_id = $1;`

	listEpisodesByMovie = `SELECT ` + episodeColumns + `
    FROM episodes
    WHERE movie_id = $1
    ORDER BY episode_number, episode_id;`

	deleteEpisode = `DELETE FROM episodes
    WHERE episode_id = $1;`
)

// ── purchases ───────────────────────────────────────────────────────────────

const (
	createPurchase = `INSERT INTO purchased_episodes (user_id, episode_id, cost_paid, purchased_at)
    VALUES ($1, $2, $3, $4)
    RETURNING id, user_id, episode_id, cost_paid, purchased_at;`

	hasPurchase = `SELECT EXISTS (
        SELECT 1 FROM purchased_episodes WHERE user_id = $1 AND episode_id = $2
    );`

	purchasedEpisodeIDs = `SELECT episode_id
    FROM purchased_episodes
    WHERE user_id = $1 AND episode_id = ANY($2);`
)

// ── comments ────────────────────────────────────────────────────────────────

const commentColumns = `comment_id, user_id, movie_id, content, rating, is_active, created_at, updated_at`

const (
	createComment = `INSERT INTO comments (user_id, movie_id, content, rating)
    VALUES ($1, $2, $3, $4)
    RETURNING ` + commentColumns + `;`

	getComment = `SELECT ` + commentColumns + `
    FROM comments
    WHERE comment_id = $1 AND is_active;`

	deactivateComment = `UPDATE comments
    SET is_active = FALSE, updated_at = NOW()
    WHERE comment_id = $1 AND is_active;`

	averageRatings = `SELECT c.movie_id, SUM(c.rating), COUNT(*)
    FROM comments c
    JOIN movies m ON m.movie_id = c.movie_id
    WHERE c.is_active AND m.is_active
    GROUP BY c.movie_id
    ORDER BY c.movie_id;`
)

// ── builders ────────────────────────────────────────────────────────────────

// buildUserPatchQuery renders an UPDATE that touches exactly the fields
// present in patch. It fails with ErrNothingToUpdate on an empty patch.
func buildUserPatchQuery(userID int64, patch models.UserPatch) (string, []any, error) {
	if patch.IsEmpty() {
		return "", nil, ErrNothingToUpdate
	}

	b := psql.Update("users")
	b = setIfPresent(b, "username", patch.Username)
	b = setIfPresent(b, "email", patch.Email)
	b = setIfPresent(b, "name", patch.Name)
	b = setIfPresent(b, "surname", patch.Surname)
	b = setIfPresent(b, "photo", patch.Photo)
	b = setIfPresent(b, "frame_photo", patch.FramePhoto)
	b = setIfPresent(b, "header_photo", patch.HeaderPhoto)
	b = setIfPresent(b, "about", patch.About)
	b = setIfPresent(b, "location", patch.Location)
	b = setIfPresent(b, "age", patch.Age)

	return finishUpdate(b, sq.Eq{"user_id": userID}, userColumns)
}

// buildMoviePatchQuery renders an UPDATE of an active movie.
func buildMoviePatchQuery(movieID int64, patch models.MoviePatch) (string, []any, error) {
	if patch.IsEmpty() {
		return "", nil, ErrNothingToUpdate
	}

	b := psql.Update("movies")
	b = setIfPresent(b, "title", patch.Title)
	b = setIfPresent(b, "original_title", patch.OriginalTitle)
	b = setIfPresent(b, "description", patch.Description)
	b = setIfPresent(b, "poster", patch.Poster)
	b = setIfPresent(b, "backdrop", patch.Backdrop)
	b = setIfPresent(b, "release_date", patch.ReleaseDate)
	b = setIfPresent(b, "duration", patch.Duration)
	b = setIfPresent(b, "director", patch.Director)
	b = setIfPresent(b, "genres", patch.Genres)

	return finishUpdate(b.Where("is_active"), sq.Eq{"movie_id": movieID}, movieColumns)
}

// buildEpisodePatchQuery renders an UPDATE of an episode.
func buildEpisodePatchQuery(episodeID int64, patch models.EpisodePatch) (string, []any, error) {
	if patch.IsEmpty() {
		return "", nil, ErrNothingToUpdate
	}

	b := psql.Update("episodes")
	b = setIfPresent(b, "title", patch.Title)
	b = setIfPresent(b, "episode_number", patch.EpisodeNumber)
	b = setIfPresent(b, "video_ref", patch.VideoRef)
	b = setIfPresent(b, "cost", patch.Cost)

	return finishUpdate(b, sq.Eq{"episode_id": episodeID}, episodeColumns)
}

// buildCommentPatchQuery renders an UPDATE of an active comment.
func buildCommentPatchQuery(commentID int64, patch models.CommentPatch) (string, []any, error) {
	if patch.IsEmpty() {
		return "", nil, ErrNothingToUpdate
	}

	b := psql.Update("comments")
	b = setIfPresent(b, "content", patch.Content)
	b = setIfPresent(b, "rating", patch.Rating)

	return finishUpdate(b.Where("is_active"), sq.Eq{"comment_id": commentID}, commentColumns)
}

func setIfPresent[T any](b sq.UpdateBuilder, column string, value *T) sq.UpdateBuilder {
	if value == nil {
		return b
	}
	return b.Set(column, *value)
}

func finishUpdate(b sq.UpdateBuilder, key sq.Eq, returning string) (string, []any, error) {
	query, args, err := b.
		Set("updated_at", sq.Expr("NOW()")).
		Where(key).
		Suffix("RETURNING " + returning).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildListQuery renders a paged SELECT of columns from table filtered by
// where and ordered by orderBy.
func buildListQuery(table, columns, orderBy string, where sq.Sqlizer, page models.Page) (string, []any, error) {
	page = page.Normalize()

	query, args, err := psql.
		Select(columns).
		From(table).
		Where(where).
		OrderBy(orderBy).
		Limit(page.Limit).
		Offset(page.Offset).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}
