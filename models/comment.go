package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Comment is a user's review of a movie. Active comments feed the movie
// rating.
type Comment struct {
	CommentID int64     `json:"comment_id"`
	UserID    int64     `json:"user_id"`
	MovieID   int64     `json:"movie_id"`
	Content   string    `json:"content"`
	Rating    int       `json:"rating"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Comment model.
func (c Comment) TableName() string {
	return "comments"
}

// NewComment is the payload for posting a comment.
type NewComment struct {
	MovieID int64  `json:"movie_id" validate:"required,gt=0"`
	Content string `json:"content" validate:"required,max=5000"`
	Rating  int    `json:"rating" validate:"required,min=1,max=10"`
}

// CommentPatch is a partial update of a comment.
type CommentPatch struct {
	Content *string `json:"content,omitempty" validate:"omitempty,min=1,max=5000"`
	Rating  *int    `json:"rating,omitempty" validate:"omitempty,min=1,max=10"`
}

// IsEmpty reports whether the patch carries no field at all.
func (p CommentPatch) IsEmpty() bool {
	return p.Content == nil && p.Rating == nil
}

// RatingAggregate sums the active comment ratings of a movie.
type RatingAggregate struct {
	MovieID int64
	Sum     int64
	Count   int64
}

// Mean returns the arithmetic mean rounded to one decimal place, halves
// away from zero. ok is false when there is nothing to average.
func (a RatingAggregate) Mean() (mean float64, ok bool) {
	if a.Count <= 0 {
		return 0, false
	}

	mean, _ = decimal.NewFromInt(a.Sum).
		DivRound(decimal.NewFromInt(a.Count), 8).
		Round(1).
		Float64()
	return mean, true
}
