// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package policy holds the access-control decisions of the catalog.
//
// Every function is pure: callers load the actor and the target first,
// ask the policy, then act. Nothing here performs I/O or mutates its
// arguments.
package policy

import (
	"time"

	"github.com/MKhiriev/go-cinema/models"
)

// CanAccess reports whether user may view movie at time now.
//
// PUBLIC movies are open to everybody. PREMIUM and PRIVATE ones are open to
// premium-active users. Owners and moderators see everything. An unknown
// level is restricted to the owner and moderators.
func CanAccess(user models.User, movie models.Movie, now time.Time) bool {
	if user.UserID == movie.OwnerID || user.Role.CanModerate() {
		return true
	}

	switch movie.AccessLevel {
	case models.AccessPublic:
		return true
	case models.AccessPremium, models.AccessPrivate:
		return user.IsPremiumActive(now)
	default:
		return false
	}
}

// CanModify reports whether user may edit movie or its episodes.
func CanModify(user models.User, movie models.Movie) bool {
	return user.UserID == movie.OwnerID || user.Role.IsAdmin()
}

// CanDelete reports whether user may delete movie.
func CanDelete(user models.User, movie models.Movie) bool {
	return CanModify(user, movie)
}

// CanModifyUser reports whether actor may edit target's profile.
//
// The hierarchy is strict: a role only ever manages roles below it, and a
// moderator manages plain users only.
func CanModifyUser(actor, target models.User) bool {
	switch {
	case actor.UserID == target.UserID:
		return true
	case actor.Role.IsSuperAdmin():
		return true
	case actor.Role == models.RoleAdmin:
		return !target.Role.IsAdmin()
	case actor.Role == models.RoleModerator:
		return target.Role == models.RoleUser
	default:
		return false
	}
}

// CanChangeRole reports whether actor may set target's role to newRole.
// Only a superadmin changes roles, and a superadmin is never demoted to
// USER by anyone else.
func CanChangeRole(actor, target models.User, newRole models.Role) bool {
	if !actor.Role.IsSuperAdmin() || !newRole.Valid() {
		return false
	}
	if target.Role.IsSuperAdmin() && newRole == models.RoleUser && !actor.Role.IsSuperAdmin() {
		return false
	}

	return true
}

// CanTopUp reports whether actor may add money to target's balance.
func CanTopUp(actor, target models.User) bool {
	return actor.UserID == target.UserID || actor.Role.IsAdmin()
}

// CanManageComment reports whether actor may edit or delete comment.
func CanManageComment(actor models.User, comment models.Comment) bool {
	return actor.UserID == comment.UserID || actor.Role.CanModerate()
}

// CanViewFullProfile reports whether actor sees target's private fields
// (e-mail, balance, role).
func CanViewFullProfile(actor, target models.User) bool {
	return actor.UserID == target.UserID || actor.Role.CanModerate()
}
