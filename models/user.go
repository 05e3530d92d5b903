package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// MinLevel and MaxLevel bound the cosmetic user level.
	MinLevel = 1
	MaxLevel = 100
)

// User represents an account of the catalog: identity, credentials, role,
// wallet balance and premium subscription state.
//
// HashedPassword never leaves the server; it is excluded from JSON.
type User struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`

	Name        string `json:"name"`
	Surname     string `json:"surname"`
	Photo       string `json:"photo"`
	FramePhoto  string `json:"frame_photo"`
	HeaderPhoto string `json:"header_photo"`
	About       string `json:"about"`
	Location    string `json:"location"`
	Age         *int   `json:"age,omitempty"`

	Role     Role `json:"role"`
	IsActive bool `json:"is_active"`

	// IsPremium together with PremiumUntil describes the subscription.
	// IsPremium implies PremiumUntil is set; stale flags are corrected
	// lazily by ReconcilePremium.
	IsPremium    bool       `json:"is_premium"`
	PremiumUntil *time.Time `json:"premium_until,omitempty"`

	Money decimal.Decimal `json:"money"`
	Level int             `json:"level"`
	Title string          `json:"title"`

	HashedPassword string `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// IsPremiumActive reports whether the subscription flag is set and the
// expiry is strictly after now.
func (u User) IsPremiumActive(now time.Time) bool {
	return u.IsPremium && u.PremiumUntil != nil && now.Before(*u.PremiumUntil)
}

// ReconcilePremium clears an elapsed subscription in place. It returns the
// resulting active status and whether the user was modified. A second call
// with the same now never reports a change.
func (u *User) ReconcilePremium(now time.Time) (active bool, changed bool) {
	if u.IsPremium && !u.IsPremiumActive(now) {
		u.IsPremium = false
		u.PremiumUntil = nil
		return false, true
	}

	return u.IsPremiumActive(now), false
}

// Public returns the limited profile shown to other users.
func (u User) Public() UserPublic {
	return UserPublic{
		UserID:      u.UserID,
		Username:    u.Username,
		Name:        u.Name,
		Surname:     u.Surname,
		Photo:       u.Photo,
		FramePhoto:  u.FramePhoto,
		HeaderPhoto: u.HeaderPhoto,
		About:       u.About,
		Location:    u.Location,
		Level:       u.Level,
		Title:       u.Title,
		IsPremium:   u.IsPremium,
		CreatedAt:   u.CreatedAt,
	}
}

// UserPublic is the limited view of a [User].
type UserPublic struct {
	UserID      int64     `json:"user_id"`
	Username    string    `json:"username"`
	Name        string    `json:"name"`
	Surname     string    `json:"surname"`
	Photo       string    `json:"photo"`
	FramePhoto  string    `json:"frame_photo"`
	HeaderPhoto string    `json:"header_photo"`
	About       string    `json:"about"`
	Location    string    `json:"location"`
	Level       int       `json:"level"`
	Title       string    `json:"title"`
	IsPremium   bool      `json:"is_premium"`
	CreatedAt   time.Time `json:"created_at"`
}

// UserPatch is a partial update of a user profile. A nil field is left
// untouched.
type UserPatch struct {
	Username    *string `json:"username,omitempty" validate:"omitempty,min=3,max=64"`
	Email       *string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Surname     *string `json:"surname,omitempty" validate:"omitempty,min=1,max=100"`
	Photo       *string `json:"photo,omitempty" validate:"omitempty,max=512"`
	FramePhoto  *string `json:"frame_photo,omitempty" validate:"omitempty,max=512"`
	HeaderPhoto *string `json:"header_photo,omitempty" validate:"omitempty,max=512"`
	About       *string `json:"about,omitempty" validate:"omitempty,max=2000"`
	Location    *string `json:"location,omitempty" validate:"omitempty,max=255"`
	Age         *int    `json:"age,omitempty" validate:"omitempty,min=0,max=150"`
}

// IsEmpty reports whether the patch carries no field at all.
func (p UserPatch) IsEmpty() bool {
	return p.Username == nil && p.Email == nil && p.Name == nil && p.Surname == nil &&
		p.Photo == nil && p.FramePhoto == nil && p.HeaderPhoto == nil &&
		p.About == nil && p.Location == nil && p.Age == nil
}

// Normalize returns the patch with the e-mail trimmed and lowercased, the
// form accounts are stored and looked up in.
func (p UserPatch) Normalize() UserPatch {
	if p.Email != nil {
		email := NormalizeEmail(*p.Email)
		p.Email = &email
	}
	return p
}

// NormalizeEmail trims and lowercases an e-mail address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ClampLevel bounds level to [MinLevel, MaxLevel].
func ClampLevel(level int) int {
	return max(MinLevel, min(level, MaxLevel))
}

// TitleForLevel returns the rank title displayed for a level.
func TitleForLevel(level int) string {
	switch {
	case level < 5:
		return "Newbie"
	case level < 10:
		return "Active user"
	case level < 20:
		return "Experienced user"
	case level < 50:
		return "Veteran"
	default:
		return "Legend"
	}
}

// UserView is a profile as seen by a particular actor. It marshals to the
// full [User] when Full is set and to [UserPublic] otherwise.
type UserView struct {
	User User
	Full bool
}

// MarshalJSON implements json.Marshaler.
func (v UserView) MarshalJSON() ([]byte, error) {
	if v.Full {
		return json.Marshal(v.User)
	}
	return json.Marshal(v.User.Public())
}
