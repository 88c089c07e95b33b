// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package upmig1 provides the upwards database schema Migrator type for
// major version 1. It upgrades a crweb1 schema in place, one minor
// version at a time, and records the reached version in the
// schema_info table. Minor versions only add columns or tables, so
// older codes may keep querying the upgraded schema.
package upmig1

import (
	"context"
	"errors"
	"fmt"

	"github.com/momeni/car-rental/pkg/core/model"
	"github.com/momeni/car-rental/pkg/core/repo"
)

// Major is the schema major version which is upgraded by Migrator.
const Major = 1

// step upgrades a schema from its (Minor - 1) minor version to the
// Minor minor version.
type step struct {
	Minor uint
	Up    func(ctx context.Context, tx repo.Tx) error
}

// steps lists the upgrade steps, sorted by their minor versions.
// The first entry upgrades v1.0 to v1.1 and so on.
var steps = []step{
	{Minor: 1, Up: addPricingBands},
	{Minor: 2, Up: createUsers},
}

// LatestMinor is the latest minor version which may be reached
// by the upgrade steps of this package.
var LatestMinor = steps[len(steps)-1].Minor

// ErrNoSchemaInfo indicates that the schema_info table has no row.
var ErrNoSchemaInfo = errors.New("schema version is not recorded")

// Migrator upgrades a v1.x schema in place, using the Tx transaction.
// The caller is responsible to commit that transaction.
type Migrator struct {
	Tx repo.Tx // a transaction of the database which is upgraded
}

// SchemaVersion reads the schema version from the schema_info table.
func (m *Migrator) SchemaVersion(ctx context.Context) (
	v model.SemVer, err error,
) {
	return ReadVersion(ctx, m.Tx)
}

// MigrateUp applies the upgrade steps which are required for reaching
// the target version, records the target version, and returns it.
// The target major version must be 1 and its minor version must not
// be older than the current version.
func (m *Migrator) MigrateUp(ctx context.Context, target model.SemVer) (
	model.SemVer, error,
) {
	cur, err := ReadVersion(ctx, m.Tx)
	if err != nil {
		return model.SemVer{}, err
	}
	switch {
	case cur[0] != Major || target[0] != Major:
		return model.SemVer{}, fmt.Errorf(
			"v%s to v%s: unsupported major version", cur, target,
		)
	case target[1] > LatestMinor:
		return model.SemVer{}, fmt.Errorf(
			"unsupported minor: %d", target[1],
		)
	case cur.Compare(target) > 0:
		return model.SemVer{}, fmt.Errorf(
			"cannot downgrade v%s to v%s", cur, target,
		)
	}
	if err := Upgrade(ctx, m.Tx, cur[1], target[1]); err != nil {
		return model.SemVer{}, err
	}
	if err := RecordVersion(ctx, m.Tx, target); err != nil {
		return model.SemVer{}, err
	}
	return target, nil
}

// Upgrade runs the upgrade steps which take the schema from the from
// minor version to the to minor version. It does not record the
// reached version.
func Upgrade(ctx context.Context, tx repo.Tx, from, to uint) error {
	for _, s := range steps {
		if s.Minor <= from || s.Minor > to {
			continue
		}
		if err := s.Up(ctx, tx); err != nil {
			return fmt.Errorf("upgrading to v1.%d: %w", s.Minor, err)
		}
	}
	return nil
}

// ReadVersion reads the schema version from the schema_info table.
func ReadVersion(ctx context.Context, q repo.Queryer) (
	v model.SemVer, err error,
) {
	rows, err := q.Query(ctx, "SELECT version FROM schema_info")
	if err != nil {
		return v, fmt.Errorf("querying schema_info: %w", err)
	}
	defer rows.Close()
	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return v, fmt.Errorf("reading schema_info: %w", err)
		}
		return v, ErrNoSchemaInfo
	}
	var s string
	if err = rows.Scan(&s); err != nil {
		return v, fmt.Errorf("scanning version: %w", err)
	}
	if v, err = model.ParseSemVer(s); err != nil {
		return v, fmt.Errorf("parsing schema_info: %w", err)
	}
	return v, nil
}

// RecordVersion replaces the version which is kept in the schema_info
// table with v.
func RecordVersion(
	ctx context.Context, q repo.Queryer, v model.SemVer,
) error {
	n, err := q.Exec(ctx, "UPDATE schema_info SET version=?", v.String())
	if err != nil {
		return fmt.Errorf("updating schema_info: %w", err)
	}
	if n != 1 {
		return ErrNoSchemaInfo
	}
	return nil
}

// addPricingBands adds the banded pricing columns of the cars table.
// The existing rows, which were created before the banded pricing
// existed, take the default rate schedule exactly once. Thereafter,
// the columns are mandatory and new rows take the same defaults if
// their inserts do not mention them.
func addPricingBands(ctx context.Context, tx repo.Tx) error {
	columns := []struct {
		name string
		rate float64
	}{
		{"price_per_km", model.DefaultPricePerKm},
		{"slab_price_0_100", model.DefaultBand0To100},
		{"slab_price_100_200", model.DefaultBand100To200},
		{"slab_price_200_300", model.DefaultBand200To300},
	}
	for _, c := range columns {
		if _, err := tx.Exec(ctx, fmt.Sprintf(
			"ALTER TABLE cars ADD COLUMN %s NUMERIC(10,2)", c.name,
		)); err != nil {
			return fmt.Errorf("adding %s column: %w", c.name, err)
		}
		if _, err := tx.Exec(ctx, fmt.Sprintf(
			"UPDATE cars SET %s=? WHERE %[1]s IS NULL", c.name,
		), c.rate); err != nil {
			return fmt.Errorf("filling %s column: %w", c.name, err)
		}
		if _, err := tx.Exec(ctx, fmt.Sprintf(
			`ALTER TABLE cars ALTER COLUMN %s SET DEFAULT %v,
ALTER COLUMN %[1]s SET NOT NULL,
ADD CONSTRAINT cars_%[1]s_check CHECK (%[1]s >= 0)`,
			c.name, c.rate,
		)); err != nil {
			return fmt.Errorf("constraining %s column: %w", c.name, err)
		}
	}
	return nil
}

// createUsers creates the users directory table. Users are synced by
// their email addresses, so emails are unique.
func createUsers(ctx context.Context, tx repo.Tx) error {
	if _, err := tx.Exec(ctx, `CREATE TABLE users (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    name TEXT NOT NULL DEFAULT '',
    email TEXT NOT NULL UNIQUE CHECK (email <> ''),
    phone TEXT NOT NULL DEFAULT '',
    role TEXT NOT NULL DEFAULT 'user' CHECK (role IN ('user', 'admin')),
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}
	return nil
}
