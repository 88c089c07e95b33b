// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package settings

import (
	"cmp"
	"errors"
	"fmt"
)

// ErrInvalidRange indicates that a configured minimum is greater than
// its corresponding maximum.
var ErrInvalidRange = errors.New("minimum is greater than maximum")

// OutOfRangeError reports a setting Value which violated its Bound.
// Below is true if Bound was the minimum and false if it was the
// maximum.
type OutOfRangeError[T cmp.Ordered] struct {
	Value T
	Bound T
	Below bool
}

func (e *OutOfRangeError[T]) Error() string {
	if e.Below {
		return fmt.Sprintf("%v is less than the minimum %v", e.Value, e.Bound)
	}
	return fmt.Sprintf("%v is greater than the maximum %v", e.Value, e.Bound)
}

// VerifyRange checks the optional *value setting against the optional
// minb and maxb inclusive boundaries. A nil *value is accepted as is.
// An out of range value is clamped to the violated boundary and an
// *OutOfRangeError is returned. ErrInvalidRange is returned if minb is
// greater than maxb, and *value is left unchanged in that case.
func VerifyRange[T cmp.Ordered](value **T, minb, maxb *T) error {
	if minb != nil && maxb != nil && *minb > *maxb {
		return fmt.Errorf("%v > %v: %w", *minb, *maxb, ErrInvalidRange)
	}
	v := *value
	if v == nil {
		return nil
	}
	var err *OutOfRangeError[T]
	switch {
	case minb != nil && *v < *minb:
		err = &OutOfRangeError[T]{Value: *v, Bound: *minb, Below: true}
	case maxb != nil && *v > *maxb:
		err = &OutOfRangeError[T]{Value: *v, Bound: *maxb}
	default:
		return nil
	}
	clamped := err.Bound
	*value = &clamped
	return err
}
