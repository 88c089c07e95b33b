// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package cerr contains the core layer error types. An Error carries
// the HTTP status code which should be reported to API clients, so the
// repositories and use cases may classify a failure once and the
// RESTful resources may pass it along without knowing its origin.
package cerr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error wraps Err with the HTTPStatusCode which describes it.
type Error struct {
	Err            error
	HTTPStatusCode int
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%d] %s", e.HTTPStatusCode, e.Err.Error())
}

// BadRequest is used for invalid entities and booking requests, and
// for rows which violate a database constraint.
func BadRequest(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusBadRequest}
}

// NotFound is used when no car, package, or testimonial has the
// requested identifier.
func NotFound(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusNotFound}
}

// Conflict is used for duplicate identifiers.
func Conflict(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusConflict}
}

// StatusCode returns the HTTP status code of the first *Error in the
// err chain and the error which it wraps. Unclassified errors map to
// 500 and are returned as is.
func StatusCode(err error) (int, error) {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.HTTPStatusCode, ce.Err
	}
	return http.StatusInternalServerError, err
}
