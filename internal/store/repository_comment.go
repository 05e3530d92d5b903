package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-cinema/internal/logger"
	"github.com/MKhiriev/go-cinema/models"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
)

type commentRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewCommentRepository constructs the PostgreSQL comment repository.
func NewCommentRepository(db *DB, logger *logger.Logger) CommentRepository {
	logger.Debug().Msg("creating comment repository")
	return &commentRepository{
		db:     db,
		logger: logger,
	}
}

func scanComment(row rowScanner) (models.Comment, error) {
	var c models.Comment
	err := row.Scan(&c.CommentID, &c.UserID, &c.MovieID, &c.Content, &c.Rating, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func commentError(err error) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return ErrCommentNotFound
	case postgresError(err) == pgerrcode.ForeignKeyViolation:
		return ErrReferenceNotFound
	default:
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
}

func (r *commentRepository) CreateComment(ctx context.Context, comment models.Comment) (models.Comment, error) {
	row := r.db.executor(ctx).QueryRowContext(ctx, createComment, comment.UserID, comment.MovieID, comment.Content, comment.Rating)
	return r.one(ctx, "*commentRepository.CreateComment", row)
}

func (r *commentRepository) GetComment(ctx context.Context, commentID int64) (models.Comment, error) {
	return r.one(ctx, "*commentRepository.GetComment", r.db.executor(ctx).QueryRowContext(ctx, getComment, commentID))
}

func (r *commentRepository) one(ctx context.Context, fn string, row *sql.Row) (models.Comment, error) {
	comment, err := scanComment(row)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			logger.FromContext(ctx).Err(err).Str("func", fn).Msg("error reading comment")
		}
		return models.Comment{}, commentError(err)
	}

	return comment, nil
}

func (r *commentRepository) ListByMovie(ctx context.Context, movieID int64, page models.Page) ([]models.Comment, error) {
	return r.list(ctx, "*commentRepository.ListByMovie", sq.And{sq.Eq{"movie_id": movieID}, sq.Expr("is_active")}, page)
}

func (r *commentRepository) ListByUser(ctx context.Context, userID int64, page models.Page) ([]models.Comment, error) {
	return r.list(ctx, "*commentRepository.ListByUser", sq.And{sq.Eq{"user_id": userID}, sq.Expr("is_active")}, page)
}

func (r *commentRepository) list(ctx context.Context, fn string, where sq.Sqlizer, page models.Page) ([]models.Comment, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListQuery("comments", commentColumns, "created_at DESC, comment_id DESC", where, page)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.executor(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", fn).Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	comments := make([]models.Comment, 0)
	for rows.Next() {
		comment, scanErr := scanComment(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", fn).Msg("failed to scan comment row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		comments = append(comments, comment)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return comments, nil
}

func (r *commentRepository) UpdateComment(ctx context.Context, commentID int64, patch models.CommentPatch) (models.Comment, error) {
	query, args, err := buildCommentPatchQuery(commentID, patch)
	if err != nil {
		return models.Comment{}, err
	}

	return r.one(ctx, "*commentRepository.UpdateComment", r.db.executor(ctx).QueryRowContext(ctx, query, args...))
}

// DeactivateComment soft-deletes a comment, removing it from future
// rating computations.
func (r *commentRepository) DeactivateComment(ctx context.Context, commentID int64) error {
	return execOne(ctx, r.db, "*commentRepository.DeactivateComment", ErrCommentNotFound, deactivateComment, commentID)
}

// AverageRatings sums the active comment ratings per active movie. Movies
// without active comments are absent from the result.
func (r *commentRepository) AverageRatings(ctx context.Context) ([]models.RatingAggregate, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.executor(ctx).QueryContext(ctx, averageRatings)
	if err != nil {
		log.Err(err).Str("func", "*commentRepository.AverageRatings").Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	aggregates := make([]models.RatingAggregate, 0)
	for rows.Next() {
		var a models.RatingAggregate
		if err = rows.Scan(&a.MovieID, &a.Sum, &a.Count); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		aggregates = append(aggregates, a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return aggregates, nil
}
