// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"strings"
	"time"
	"unicode/utf8"
)

// These constants are the inclusive bounds of a testimonial rating.
const (
	MinRating = 1
	MaxRating = 5
)

// DefaultInitials is used as the avatar of a testimonial which its
// customer name has no letters.
const DefaultInitials = "UR"

// Testimonial is a customer review. The Avatar may hold an image URI,
// an inline data blob, or a two letters initials fallback.
//
// The CreatedAt field keeps its snake_case wire name because the REST
// API returns testimonials rows as they are stored.
type Testimonial struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Rating    int       `json:"rating"`
	Text      string    `json:"text"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
}

// EntityID returns the server assigned identifier of the testimonial.
func (t Testimonial) EntityID() string {
	return t.ID
}

// WithAvatar returns a copy of t which has a non-empty avatar.
// If t.Avatar is empty, the initials of the customer name are used.
func (t Testimonial) WithAvatar() Testimonial {
	if t.Avatar == "" {
		t.Avatar = Initials(t.Name)
	}
	return t
}

// Initials returns the first two letters of the given name, in upper
// case. Leading and trailing spaces are ignored. A name with a single
// letter yields that letter alone and an empty (or blank) name yields
// the DefaultInitials.
func Initials(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultInitials
	}
	end := 0
	for i := 0; i < 2 && end < len(name); i++ {
		_, size := utf8.DecodeRuneInString(name[end:])
		end += size
	}
	return strings.ToUpper(name[:end])
}
