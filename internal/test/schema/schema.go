// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package schema checks an initialized or upgraded database in tests.
// The tables and columns of each major version, and the rows which its
// dev initialization inserts, are checked by the schN sub-packages.
// Upgrades keep the existing rows, so the dev rows are checked after
// an upgrade too.
package schema

import (
	"context"
	"fmt"
	"testing"

	"github.com/momeni/car-rental/internal/test/schema/sch1"
	"github.com/momeni/car-rental/pkg/core/model"
	"github.com/momeni/car-rental/pkg/core/repo"
)

// Verifier is implemented by the schN.Verifier types. Failures are
// reported on t. Data checks only look for the expected rows, so
// extra rows are accepted.
type Verifier interface {
	VerifySchema(ctx context.Context, t *testing.T)
	VerifyDevData(ctx context.Context, t *testing.T)
	VerifyProdData(ctx context.Context, t *testing.T)
}

// NewVerifier returns the Verifier of the v schema version which
// queries the c connection.
func NewVerifier(c repo.Conn, v model.SemVer) (Verifier, error) {
	if v[0] != sch1.Major {
		return nil, fmt.Errorf("unsupported major: %d", v[0])
	}
	if v[1] > sch1.Minor {
		return nil, fmt.Errorf("unsupported minor: %d", v[1])
	}
	return sch1.New(c, v[1]), nil
}

// Verify checks the tables of the v schema version and its dev (or
// prod) rows using the c connection.
func Verify(
	ctx context.Context, t *testing.T, c repo.Conn, v model.SemVer, dev bool,
) error {
	sv, err := NewVerifier(c, v)
	if err != nil {
		return err
	}
	sv.VerifySchema(ctx, t)
	if dev {
		sv.VerifyDevData(ctx, t)
	} else {
		sv.VerifyProdData(ctx, t)
	}
	return nil
}
