// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package serdser contains the request binding and error responses
// which are shared by the cars, packages, testimonials, and bookings
// resources.
//
// Validation failures are written as a JSON object which maps each Go
// field name of the request to its messages, e.g.,
//
//	{"Name": ["Key: 'carReq.Name' Error:Field validation ..."]}
//
// and other failures are written as {"detail": "..."}.
package serdser

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/momeni/car-rental/pkg/core/cerr"
)

// FieldErrors maps request field names to their validation messages.
type FieldErrors map[string][]string

// Add appends msgs to the name field messages.
func (fe FieldErrors) Add(name string, msgs ...string) {
	fe[name] = append(fe[name], msgs...)
}

// Check adds msg for the name field unless ok holds, and returns ok.
func (fe FieldErrors) Check(ok bool, name, msg string) bool {
	if !ok {
		fe.Add(name, msg)
	}
	return ok
}

// Write writes fe as a 400 response if it is not empty and reports
// whether a response was written.
func (fe FieldErrors) Write(c *gin.Context) bool {
	if len(fe) == 0 {
		return false
	}
	c.JSON(http.StatusBadRequest, fe)
	return true
}

// Bind binds the request into req by b. It returns true on success.
// Otherwise, a 400 (or 500 for an unusable req type) response is
// written and false is returned.
func Bind(c *gin.Context, req any, b binding.Binding) bool {
	err := c.ShouldBindWith(req, b)
	if err == nil {
		return true
	}
	var ive *validator.InvalidValidationError
	var ves validator.ValidationErrors
	switch {
	case errors.As(err, &ive):
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
	case errors.As(err, &ves):
		fe := FieldErrors{}
		for _, ferr := range ves {
			fe.Add(ferr.Field(), ferr.Error())
		}
		fe.Write(c)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
	}
	return false
}

// BindJSON is Bind with the JSON binding.
func BindJSON(c *gin.Context, req any) bool {
	return Bind(c, req, binding.JSON)
}

// SerErr writes err as a {"detail": ...} response. The status code is
// taken from a wrapped *cerr.Error, defaulting to 500.
func SerErr(c *gin.Context, err error) {
	code, err := cerr.StatusCode(err)
	c.JSON(code, gin.H{"detail": err.Error()})
}
