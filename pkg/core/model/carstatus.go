// Copyright (c) 2023 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"errors"
	"fmt"
)

// CarStatus specifies the rental status enum of a car. Although this
// enum is numeric, it is (de)serialized as a string for readability
// and compatibility with the REST API which exchanges "Available" and
// "On Ride" strings.
type CarStatus int

// Valid values for the CarStatus enum.
const (
	CarStatusUnset CarStatus = iota // zero value means absent

	CarStatusAvailable // car may be booked
	CarStatusOnRide    // car is rented right now
)

// ErrUnknownCarStatus indicates that a given string may not be parsed
// as a known car status. The invalid string itself is not included
// because the caller of ParseCarStatus already knows about it and
// should wrap this error with that information if required.
var ErrUnknownCarStatus = errors.New("unknown car status")

// CarStatusError indicates an invalid car status which was found
// in a CarStatus variable (and not in a parsed string).
type CarStatusError int

// Error implements the error interface, returning a string
// representation of the CarStatusError.
func (e CarStatusError) Error() string {
	return fmt.Sprintf("invalid car status: %d", e)
}

// Validate returns nil if CarStatus value is valid. For invalid
// values, including the unset zero value, an instance of the
// CarStatusError will be returned.
func (s CarStatus) Validate() error {
	switch s {
	case CarStatusAvailable, CarStatusOnRide:
		return nil
	default:
		return CarStatusError(s)
	}
}

// String converts the CarStatus enum to its wire representation.
// The unset status is converted to an empty string. Other invalid
// values cause a panic.
func (s CarStatus) String() string {
	switch s {
	case CarStatusUnset:
		return ""
	case CarStatusAvailable:
		return "Available"
	case CarStatusOnRide:
		return "On Ride"
	default:
		panic(CarStatusError(s))
	}
}

// ParseCarStatus parses the given string and returns a CarStatus.
// An empty string is parsed as CarStatusUnset, so an absent status
// can be filled by the server later. For unknown strings,
// CarStatusUnset and ErrUnknownCarStatus will be returned.
func ParseCarStatus(s string) (CarStatus, error) {
	switch s {
	case "":
		return CarStatusUnset, nil
	case "Available":
		return CarStatusAvailable, nil
	case "On Ride":
		return CarStatusOnRide, nil
	default:
		return CarStatusUnset, ErrUnknownCarStatus
	}
}

// MarshalText implements the encoding.TextMarshaler interface.
func (s CarStatus) MarshalText() ([]byte, error) {
	switch s {
	case CarStatusUnset, CarStatusAvailable, CarStatusOnRide:
		return []byte(s.String()), nil
	default:
		return nil, CarStatusError(s)
	}
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
// In case of errors, s will be left unchanged.
func (s *CarStatus) UnmarshalText(text []byte) error {
	cs, err := ParseCarStatus(string(text))
	if err != nil {
		return fmt.Errorf("%q: %w", text, err)
	}
	*s = cs
	return nil
}
