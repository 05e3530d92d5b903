package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultEpisodeCost is charged for an episode created without a cost.
var DefaultEpisodeCost = decimal.NewFromInt(15)

// Episode belongs to a movie. Episodes are hard-deleted.
type Episode struct {
	EpisodeID     int64           `json:"episode_id"`
	MovieID       int64           `json:"movie_id"`
	Title         string          `json:"title"`
	EpisodeNumber int             `json:"episode_number"`
	Cost          decimal.Decimal `json:"cost"`
	VideoRef      string          `json:"video_ref,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Episode model.
func (e Episode) TableName() string {
	return "episodes"
}

// EpisodeView is an episode as seen by a particular user.
type EpisodeView struct {
	Episode
	HasAccess bool `json:"has_access"`
}

// NewEpisode is the payload for creating an episode.
type NewEpisode struct {
	MovieID       int64            `json:"movie_id" validate:"required,gt=0"`
	Title         string           `json:"title" validate:"required,max=255"`
	EpisodeNumber int              `json:"episode_number" validate:"required,gt=0"`
	VideoRef      string           `json:"video_ref" validate:"required,max=512"`
	Cost          *decimal.Decimal `json:"cost,omitempty"`
}

// EpisodePatch is a partial update of an episode. A nil field is left
// untouched.
type EpisodePatch struct {
	Title         *string          `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	EpisodeNumber *int             `json:"episode_number,omitempty" validate:"omitempty,gt=0"`
	VideoRef      *string          `json:"video_ref,omitempty" validate:"omitempty,min=1,max=512"`
	Cost          *decimal.Decimal `json:"cost,omitempty"`
}

// IsEmpty reports whether the patch carries no field at all.
func (p EpisodePatch) IsEmpty() bool {
	return p.Title == nil && p.EpisodeNumber == nil && p.VideoRef == nil && p.Cost == nil
}

// PurchasedEpisode grants a user permanent access to one episode.
type PurchasedEpisode struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"`
	EpisodeID   int64           `json:"episode_id"`
	CostPaid    decimal.Decimal `json:"cost_paid"`
	PurchasedAt time.Time       `json:"purchased_at"`
}
