// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Role is a user's privilege tier. Roles are ordered: every role carries all
// privileges of the roles below it.
type Role string

const (
	RoleUser       Role = "USER"
	RoleModerator  Role = "MODERATOR"
	RoleAdmin      Role = "ADMIN"
	RoleSuperAdmin Role = "SUPERADMIN"
)

var roleRanks = map[Role]int{
	RoleUser:       1,
	RoleModerator:  2,
	RoleAdmin:      3,
	RoleSuperAdmin: 4,
}

// ParseRole converts a case-insensitive role name into a [Role].
func ParseRole(s string) (Role, error) {
	role := Role(strings.ToUpper(strings.TrimSpace(s)))
	if !role.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return role, nil
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, ok := roleRanks[r]
	return ok
}

// Rank returns the privilege rank of r. Unknown roles rank below USER.
func (r Role) Rank() int {
	return roleRanks[r]
}

// AtLeast reports whether r is the same as or more privileged than other.
func (r Role) AtLeast(other Role) bool {
	return r.Valid() && r.Rank() >= other.Rank()
}

// CanModerate reports whether r is MODERATOR or above.
func (r Role) CanModerate() bool {
	return r.AtLeast(RoleModerator)
}

// IsAdmin reports whether r is ADMIN or above.
func (r Role) IsAdmin() bool {
	return r.AtLeast(RoleAdmin)
}

// IsSuperAdmin reports whether r is SUPERADMIN.
func (r Role) IsSuperAdmin() bool {
	return r == RoleSuperAdmin
}

func (r Role) String() string {
	return string(r)
}

// UnmarshalJSON accepts role names in any letter case.
func (r *Role) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	role, err := ParseRole(s)
	if err != nil {
		return err
	}
	*r = role
	return nil
}
