// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"fmt"
	"strings"
	"time"
)

// UserRole is the role of a registered user in the website. It is not
// related to the PostgreSQL roles which are used by the server.
type UserRole string

// Valid values for the UserRole type. The empty role is replaced by
// UserRoleUser when a user is stored.
const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

// UserRoleError indicates an unknown user role.
type UserRoleError string

func (e UserRoleError) Error() string {
	return fmt.Sprintf("invalid user role: %q", string(e))
}

// Validate returns nil for the user and admin roles and an instance
// of UserRoleError otherwise.
func (r UserRole) Validate() error {
	switch r {
	case UserRoleUser, UserRoleAdmin:
		return nil
	default:
		return UserRoleError(r)
	}
}

// User is an entry of the users directory. Users are signed up by an
// external identity provider which syncs them by their email address,
// so the Email is unique among all users.
//
// Similar to testimonials, the CreatedAt field keeps its snake_case
// wire name.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Role      UserRole  `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// EntityID returns the server assigned identifier of the user.
func (u User) EntityID() string {
	return u.ID
}

// NormalizeEmail trims the spaces around an email address and lowers
// its case, so it can be compared with the stored addresses.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
