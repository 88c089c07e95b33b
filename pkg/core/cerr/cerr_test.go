// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package cerr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/momeni/car-rental/pkg/core/cerr"
	"github.com/momeni/car-rental/pkg/core/model"
	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	errNoCar := errors.New("car not found")
	code, err := cerr.StatusCode(
		fmt.Errorf("getting car: %w", cerr.NotFound(errNoCar)),
	)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, errNoCar, err, "the wrapped error is reported")

	boom := errors.New("boom")
	code, err = cerr.StatusCode(boom)
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, boom, err)

	assert.EqualError(t, cerr.BadRequest(boom), "[400] boom")
}

func TestMismatchingSemVerError(t *testing.T) {
	for _, tc := range []struct {
		expected, actual model.SemVer
		upgradable       bool
	}{
		{model.SemVer{1, 1, 0}, model.SemVer{1, 0, 0}, true},
		{model.SemVer{1, 0, 0}, model.SemVer{1, 1, 0}, false},
		{model.SemVer{2, 0, 0}, model.SemVer{1, 1, 0}, false},
	} {
		err := &cerr.MismatchingSemVerError{tc.expected, tc.actual}
		assert.Equal(t, tc.upgradable, err.Upgradable(), err.Error())
		assert.Equal(t, tc.actual, err.Actual())
		assert.Equal(t, tc.expected, err.Expected())
	}
	assert.EqualError(
		t, &cerr.MismatchingSemVerError{{1, 1, 0}, {1, 0, 0}},
		"expected v1.1.0, but got v1.0.0",
	)
}
