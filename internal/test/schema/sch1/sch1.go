// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package sch1 provides database schema major version 1 verification
// logic. This implementation may be instantiated indirectly using
// the github.com/momeni/car-rental/internal/test/schema package.
package sch1

import (
	"context"
	"testing"

	"github.com/momeni/car-rental/pkg/adapter/db/postgres/migration/settle/stlmig1"
	"github.com/momeni/car-rental/pkg/adapter/db/postgres/migration/up/upmig1"
	"github.com/momeni/car-rental/pkg/core/model"
	"github.com/momeni/car-rental/pkg/core/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These constants present the relevant major, minor, and patch semantic
// versions of this schema verifier package. They are initialized based
// on the stlmig1 package because whenever a new minor version is
// released, the stlmig1 has to be updated based on it and this verifier
// needs to verify its updated changes too.
const (
	Major = stlmig1.Major
	Minor = stlmig1.Minor
	Patch = stlmig1.Patch
)

// columnsV1_0 lists the columns of each v1.0 table.
var columnsV1_0 = map[string][]string{
	"schema_info": {"id", "version"},
	"cars": {
		"id", "name", "brand", "model", "year", "image", "price",
		"transmission", "fuel_type", "seats", "category", "rating",
		"reviews_count", "status", "features", "created_at",
	},
	"packages": {
		"id", "title", "price", "pax", "vehicle", "organizer", "image",
		"description", "locations", "vehicle_options", "created_at",
	},
	"testimonials": {
		"id", "name", "rating", "text", "avatar", "created_at",
	},
}

// pricingColumns are added to the cars table by v1.1.
var pricingColumns = []string{
	"price_per_km", "slab_price_0_100", "slab_price_100_200",
	"slab_price_200_300",
}

// usersColumns are the columns of the users table, added by v1.2.
var usersColumns = []string{
	"id", "name", "email", "phone", "role", "created_at",
}

// Verifier implements the schema major version 1 verification logic. It
// implements github.com/momeni/car-rental/internal/test/schema.Verifier
// interface and wraps a database connection as noted in New function.
type Verifier struct {
	c     repo.Conn // database connection which is used for testing
	minor uint      // expected schema minor version
}

// New instantiates a Verifier struct, wrapping the `c` database
// connection and expecting the v1.minor schema.
func New(c repo.Conn, minor uint) *Verifier {
	return &Verifier{c: c, minor: minor}
}

// VerifySchema queries the information_schema in order to ensure that
// all tables and columns of the v1.minor schema exist in the current
// schema and that the recorded schema version matches.
// This process failures are reported using the `t` testing argument.
func (v *Verifier) VerifySchema(ctx context.Context, t *testing.T) {
	r := require.New(t)
	rows, err := v.c.Query(ctx, `SELECT table_name, column_name
FROM information_schema.columns
WHERE table_schema = current_schema()`)
	r.NoError(err, "querying information_schema.columns")
	actual := make(map[string]map[string]bool)
	for rows.Next() {
		var table, column string
		r.NoError(rows.Scan(&table, &column), "scanning column")
		if actual[table] == nil {
			actual[table] = make(map[string]bool)
		}
		actual[table][column] = true
	}
	rows.Close()
	r.NoError(rows.Err(), "iterating columns")

	for table, columns := range columnsV1_0 {
		for _, column := range columns {
			assert.True(
				t, actual[table][column], "missing %s.%s", table, column,
			)
		}
	}
	for _, column := range pricingColumns {
		assert.Equal(
			t, v.minor >= 1, actual["cars"][column],
			"cars.%s presence in v1.%d", column, v.minor,
		)
	}
	for _, column := range usersColumns {
		assert.Equal(
			t, v.minor >= 2, actual["users"][column],
			"users.%s presence in v1.%d", column, v.minor,
		)
	}
	sv, err := upmig1.ReadVersion(ctx, v.c)
	r.NoError(err, "reading schema version")
	assert.Equal(t, uint(Major), sv[0], "major version")
	assert.Equal(t, v.minor, sv[1], "minor version")
}

// VerifyDevData checks for presence of the development suitable initial
// data and marks possible issues using the `t` testing argument.
// Presence of extra rows is acceptable. In v1.1 and later, the sample
// cars must have the default rate schedule. Users are synced by the
// identity provider, so the users table has no sample rows.
func (v *Verifier) VerifyDevData(ctx context.Context, t *testing.T) {
	r := require.New(t)
	names := v.strings(ctx, r, "SELECT name FROM cars ORDER BY created_at")
	assert.Subset(
		t, names,
		[]string{"BMW Z4", "Mercedes-Benz SL", "Porsche Boxster"},
	)
	assert.NotEmpty(t, v.strings(ctx, r, "SELECT title FROM packages"))
	assert.NotEmpty(t, v.strings(ctx, r, "SELECT name FROM testimonials"))
	if v.minor < 1 {
		return
	}
	perKm := v.strings(ctx, r, `SELECT DISTINCT price_per_km::text
FROM cars WHERE name = 'BMW Z4'`)
	if assert.Len(t, perKm, 1) {
		assert.Equal(t, "15.00", perKm[0])
	}
	n := v.strings(ctx, r, `SELECT count(*)::text FROM cars
WHERE slab_price_0_100 <> ? OR slab_price_100_200 <> ?
OR slab_price_200_300 <> ?`,
		model.DefaultBand0To100, model.DefaultBand100To200,
		model.DefaultBand200To300,
	)
	assert.Equal(t, []string{"0"}, n, "sample cars with custom bands")
}

// VerifyProdData checks for presence of the production suitable initial
// data and marks possible issues using the `t` testing argument.
// The production schema has no sample rows, so only the recorded
// schema version is checked.
func (v *Verifier) VerifyProdData(ctx context.Context, t *testing.T) {
	sv, err := upmig1.ReadVersion(ctx, v.c)
	require.NoError(t, err, "reading schema version")
	assert.Equal(t, v.minor, sv[1])
}

func (v *Verifier) strings(
	ctx context.Context, r *require.Assertions, sql string, args ...any,
) []string {
	rows, err := v.c.Query(ctx, sql, args...)
	r.NoError(err, "running %q", sql)
	defer rows.Close()
	var ss []string
	for rows.Next() {
		var s string
		r.NoError(rows.Scan(&s), "scanning %q result", sql)
		ss = append(ss, s)
	}
	r.NoError(rows.Err(), "iterating %q result", sql)
	return ss
}
