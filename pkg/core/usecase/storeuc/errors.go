// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package storeuc

import (
	"errors"
	"fmt"

	"github.com/momeni/car-rental/pkg/core/model"
)

// Verb names a store operation in error messages.
type Verb string

// Supported verbs.
const (
	VerbFetch  Verb = "fetch"
	VerbCreate Verb = "create"
	VerbUpdate Verb = "update"
	VerbDelete Verb = "delete"
	VerbBook   Verb = "book"
	VerbSync   Verb = "sync"
)

// ErrNotLoaded indicates that an entity is not present in the local
// collection, so an operation which needs its current state cannot
// proceed.
var ErrNotLoaded = errors.New("entity is not loaded")

// ErrUnavailable indicates that a car cannot be booked because it is
// not available right now.
var ErrUnavailable = errors.New("car is not available")

// OpError is returned by the store mutators when the remote call (or
// a precondition) fails. The local collection is left unchanged in
// that case. Its message reads like "failed to create car" and the
// underlying cause is available by errors.Unwrap.
type OpError struct {
	Verb Verb
	Kind model.Kind
	Err  error
}

// Error returns "failed to {verb} {entity}: {cause}". The entity is
// plural for the fetch verb and singular otherwise.
func (e *OpError) Error() string {
	noun := e.Kind.Singular()
	if e.Verb == VerbFetch {
		noun = e.Kind.String()
	}
	if e.Err == nil {
		return fmt.Sprintf("failed to %s %s", e.Verb, noun)
	}
	return fmt.Sprintf("failed to %s %s: %v", e.Verb, noun, e.Err)
}

// Unwrap returns the underlying cause.
func (e *OpError) Unwrap() error {
	return e.Err
}
