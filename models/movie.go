package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// AccessLevel is the visibility tier of a movie.
type AccessLevel string

const (
	// AccessPublic movies are visible to every authenticated user.
	AccessPublic AccessLevel = "PUBLIC"
	// AccessPremium movies are visible to premium-active users.
	AccessPremium AccessLevel = "PREMIUM"
	// AccessPrivate movies are hidden from users without an active premium
	// subscription, except for the owner and moderators.
	AccessPrivate AccessLevel = "PRIVATE"
)

// ParseAccessLevel converts a case-insensitive access level name.
func ParseAccessLevel(s string) (AccessLevel, error) {
	level := AccessLevel(strings.ToUpper(strings.TrimSpace(s)))
	switch level {
	case AccessPublic, AccessPremium, AccessPrivate:
		return level, nil
	default:
		return "", fmt.Errorf("unknown access level %q", s)
	}
}

// UnmarshalJSON accepts access level names in any letter case.
func (a *AccessLevel) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	level, err := ParseAccessLevel(s)
	if err != nil {
		return err
	}
	*a = level
	return nil
}

// Movie is a catalog entry. Movies are soft-deleted through IsActive and
// their Rating is maintained by the rating sweep only.
type Movie struct {
	MovieID       int64       `json:"movie_id"`
	Title         string      `json:"title"`
	OriginalTitle string      `json:"original_title"`
	Description   string      `json:"description"`
	Poster        string      `json:"poster"`
	Backdrop      string      `json:"backdrop"`
	ReleaseDate   *time.Time  `json:"release_date,omitempty"`
	Duration      int         `json:"duration"`
	Director      string      `json:"director"`
	Genres        []string    `json:"genres"`
	OwnerID       int64       `json:"owner_id"`
	IsActive      bool        `json:"is_active"`
	AccessLevel   AccessLevel `json:"access_level"`
	Rating        float64     `json:"rating"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Movie model.
func (m Movie) TableName() string {
	return "movies"
}

// NewMovie is the payload for creating a movie.
type NewMovie struct {
	Title         string      `json:"title" validate:"required,max=255"`
	OriginalTitle string      `json:"original_title" validate:"max=255"`
	Description   string      `json:"description" validate:"max=5000"`
	Poster        string      `json:"poster" validate:"max=512"`
	Backdrop      string      `json:"backdrop" validate:"max=512"`
	ReleaseDate   *time.Time  `json:"release_date,omitempty"`
	Duration      int         `json:"duration" validate:"gte=0"`
	Director      string      `json:"director" validate:"max=255"`
	Genres        []string    `json:"genres" validate:"dive,required,max=64"`
	AccessLevel   AccessLevel `json:"access_level" validate:"omitempty,oneof=PUBLIC PREMIUM PRIVATE"`
}

// MoviePatch is a partial update of a movie. A nil field is left untouched.
type MoviePatch struct {
	Title         *string    `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	OriginalTitle *string    `json:"original_title,omitempty" validate:"omitempty,max=255"`
	Description   *string    `json:"description,omitempty" validate:"omitempty,max=5000"`
	Poster        *string    `json:"poster,omitempty" validate:"omitempty,max=512"`
	Backdrop      *string    `json:"backdrop,omitempty" validate:"omitempty,max=512"`
	ReleaseDate   *time.Time `json:"release_date,omitempty"`
	Duration      *int       `json:"duration,omitempty" validate:"omitempty,gte=0"`
	Director      *string    `json:"director,omitempty" validate:"omitempty,max=255"`
	Genres        *[]string  `json:"genres,omitempty" validate:"omitempty,dive,required,max=64"`
}

// IsEmpty reports whether the patch carries no field at all.
func (p MoviePatch) IsEmpty() bool {
	return p.Title == nil && p.OriginalTitle == nil && p.Description == nil &&
		p.Poster == nil && p.Backdrop == nil && p.ReleaseDate == nil &&
		p.Duration == nil && p.Director == nil && p.Genres == nil
}
