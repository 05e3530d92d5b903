package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-cinema/internal/logger"
	"github.com/MKhiriev/go-cinema/internal/policy"
	"github.com/MKhiriev/go-cinema/internal/store"
	"github.com/MKhiriev/go-cinema/internal/validators"
	"github.com/MKhiriev/go-cinema/models"
)

type commentService struct {
	movies    store.MovieRepository
	comments  store.CommentRepository
	validator validators.Validator
	now       func() time.Time
	logger    *logger.Logger
}

func NewCommentService(
	movies store.MovieRepository,
	comments store.CommentRepository,
	validator validators.Validator,
	now func() time.Time,
	logger *logger.Logger,
) CommentService {
	return &commentService{
		movies:    movies,
		comments:  comments,
		validator: validator,
		now:       now,
		logger:    logger,
	}
}

// CreateComment posts a comment on a movie actor may view. The movie rating
// picks it up on the next rating sweep.
func (s *commentService) CreateComment(ctx context.Context, actor models.User, comment models.NewComment) (models.Comment, error) {
	if err := s.validator.Validate(ctx, comment); err != nil {
		return models.Comment{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	if _, err := accessibleMovie(ctx, s.movies, actor, comment.MovieID, s.now()); err != nil {
		return models.Comment{}, err
	}

	created, err := s.comments.CreateComment(ctx, models.Comment{
		UserID:   actor.UserID,
		MovieID:  comment.MovieID,
		Content:  comment.Content,
		Rating:   comment.Rating,
		IsActive: true,
	})
	if err != nil {
		return models.Comment{}, fmt.Errorf("error creating comment: %w", err)
	}
	return created, nil
}

func (s *commentService) ListMovieComments(ctx context.Context, actor models.User, movieID int64, page models.Page) ([]models.Comment, error) {
	if _, err := accessibleMovie(ctx, s.movies, actor, movieID, s.now()); err != nil {
		return nil, err
	}

	comments, err := s.comments.ListByMovie(ctx, movieID, page.Normalize())
	if err != nil {
		return nil, fmt.Errorf("error listing comments of movie %d: %w", movieID, err)
	}
	return comments, nil
}

func (s *commentService) ListUserComments(ctx context.Context, actor models.User, userID int64, page models.Page) ([]models.Comment, error) {
	comments, err := s.comments.ListByUser(ctx, userID, page.Normalize())
	if err != nil {
		return nil, fmt.Errorf("error listing comments of user %d: %w", userID, err)
	}
	return comments, nil
}

func (s *commentService) UpdateComment(ctx context.Context, actor models.User, commentID int64, patch models.CommentPatch) (models.Comment, error) {
	if err := s.validator.Validate(ctx, patch); err != nil {
		return models.Comment{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	if err := s.guard(ctx, actor, commentID); err != nil {
		return models.Comment{}, err
	}

	updated, err := s.comments.UpdateComment(ctx, commentID, patch)
	if err != nil {
		return models.Comment{}, fmt.Errorf("error updating comment %d: %w", commentID, err)
	}
	return updated, nil
}

// DeleteComment soft-deletes the comment and returns its id.
func (s *commentService) DeleteComment(ctx context.Context, actor models.User, commentID int64) (int64, error) {
	if err := s.guard(ctx, actor, commentID); err != nil {
		return 0, err
	}

	if err := s.comments.DeactivateComment(ctx, commentID); err != nil {
		return 0, fmt.Errorf("error deleting comment %d: %w", commentID, err)
	}

	logger.FromContext(ctx).Info().Int64("comment_id", commentID).Int64("actor_id", actor.UserID).Msg("comment deactivated")
	return commentID, nil
}

func (s *commentService) guard(ctx context.Context, actor models.User, commentID int64) error {
	comment, err := s.comments.GetComment(ctx, commentID)
	if err != nil {
		return fmt.Errorf("error getting comment %d: %w", commentID, err)
	}
	if !policy.CanManageComment(actor, comment) {
		return fmt.Errorf("%w: comment %d", ErrForbidden, commentID)
	}
	return nil
}
