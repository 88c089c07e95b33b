// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import "fmt"

// Entity is implemented by all persisted records which are identified
// by a server assigned string. The Car, Package, Testimonial, and User
// structs are entities.
type Entity interface {
	EntityID() string
}

// Kind specifies the entity kind enum. Its string representation is
// the plural noun which is also used as the REST resource name.
type Kind int

// Valid values for the Kind enum.
const (
	KindInvalid Kind = iota // zero value is invalid

	KindCar
	KindPackage
	KindTestimonial
	KindUser
)

// KindError indicates an invalid entity kind.
type KindError int

// Error implements the error interface, returning a string
// representation of the KindError.
func (e KindError) Error() string {
	return fmt.Sprintf("invalid entity kind: %d", e)
}

// Validate returns nil if Kind value is valid. For invalid values,
// an instance of the KindError will be returned.
func (k Kind) Validate() error {
	switch k {
	case KindCar, KindPackage, KindTestimonial, KindUser:
		return nil
	default:
		return KindError(k)
	}
}

// String returns the plural noun of k, e.g., "cars". It panics if k
// is not valid.
func (k Kind) String() string {
	return k.Singular() + "s"
}

// Singular returns the singular noun of k in lower case, e.g., "car".
// It panics if k is not valid.
func (k Kind) Singular() string {
	switch k {
	case KindCar:
		return "car"
	case KindPackage:
		return "package"
	case KindTestimonial:
		return "testimonial"
	case KindUser:
		return "user"
	default:
		panic(KindError(k))
	}
}

// Title returns the singular noun of k with a capital first letter,
// e.g., "Car", as used in the REST API messages.
func (k Kind) Title() string {
	s := k.Singular()
	return string(s[0]-'a'+'A') + s[1:]
}
