// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"

	"github.com/momeni/car-rental/pkg/core/model"
)

// SchemaMigrator upgrades the tables of one schema major version in
// place. Each implementation wraps a transaction, so all upgrade
// steps are persisted together when the caller commits it.
//
// Minor versions of the same major version are backward compatible,
// so an upgrade only adds columns (possibly filling them for existing
// rows) and never needs a second database. For example, the v1.0
// cars table has no pricing bands and its upgrade to v1.1 adds those
// columns and fills them with the default rate schedule exactly once.
type SchemaMigrator interface {
	// SchemaVersion returns the semantic version which is recorded
	// in the database schema.
	SchemaVersion(ctx context.Context) (model.SemVer, error)

	// MigrateUp applies the upgrade steps one minor version at a time
	// until the target version is reached. The reached version is
	// recorded in the database and returned. Downgrades are rejected.
	MigrateUp(ctx context.Context, target model.SemVer) (
		model.SemVer, error,
	)
}
