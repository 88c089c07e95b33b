// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package migration selects the schema version specific packages.
// Each major version N has a settle/stlmigN package which creates its
// tables (for any of its minor versions) and an up/upmigN package
// which upgrades an existing schema to a newer minor version in place.
package migration

import (
	"errors"
	"fmt"

	"github.com/momeni/car-rental/pkg/adapter/db/postgres/migration/settle/stlmig1"
	"github.com/momeni/car-rental/pkg/adapter/db/postgres/migration/up/upmig1"
	"github.com/momeni/car-rental/pkg/core/model"
	"github.com/momeni/car-rental/pkg/core/repo"
)

// Errors of the unknown schema versions.
var (
	ErrUnsupportedMajor = errors.New("unsupported schema major version")
	ErrUnsupportedMinor = errors.New("unsupported schema minor version")
)

type major struct {
	latest  model.SemVer
	settler func(tx repo.Tx, minor uint) repo.SchemaInitializer
	upper   func(tx repo.Tx) repo.SchemaMigrator
}

var majors = map[uint]major{
	1: {
		latest: model.SemVer{1, stlmig1.Minor, stlmig1.Patch},
		settler: func(tx repo.Tx, minor uint) repo.SchemaInitializer {
			return stlmig1.New(tx, minor)
		},
		upper: func(tx repo.Tx) repo.SchemaMigrator {
			return &upmig1.Migrator{Tx: tx}
		},
	},
}

// lookup finds the major version of v, ensuring that its minor version
// is known.
func lookup(v model.SemVer) (major, error) {
	m, ok := majors[v[0]]
	if !ok {
		return m, fmt.Errorf("v%s: %w", v, ErrUnsupportedMajor)
	}
	if v[1] > m.latest[1] {
		return m, fmt.Errorf("v%s: %w", v, ErrUnsupportedMinor)
	}
	return m, nil
}

// LatestVersion returns the latest known schema version with the same
// major version as v.
func LatestVersion(v model.SemVer) (model.SemVer, error) {
	m, err := lookup(v)
	return m.latest, err
}

// NewInitializer returns the initializer of the v schema version which
// creates its tables in tx. The caller commits tx.
func NewInitializer(tx repo.Tx, v model.SemVer) (
	repo.SchemaInitializer, error,
) {
	m, err := lookup(v)
	if err != nil {
		return nil, err
	}
	return m.settler(tx, v[1]), nil
}

// NewMigrator returns the migrator of the major version of v which
// reads and upgrades the schema version in tx. The caller commits tx.
func NewMigrator(tx repo.Tx, v model.SemVer) (repo.SchemaMigrator, error) {
	m, ok := majors[v[0]]
	if !ok {
		return nil, fmt.Errorf("v%s: %w", v, ErrUnsupportedMajor)
	}
	return m.upper(tx), nil
}
