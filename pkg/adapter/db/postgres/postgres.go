// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package postgres implements the repo Pool, Conn, and Tx interfaces
// over GORM and its pgx based PostgreSQL driver. The cars, packages,
// and testimonials repositories live in the sub-packages and unwrap a
// repo.Conn or repo.Tx into the Conn or Tx of this package in order to
// build their queries by GORM.
package postgres

import (
	"github.com/momeni/car-rental/pkg/adapter/db/postgres/migration/settle/stlmig1"
	"github.com/momeni/car-rental/pkg/core/model"
)

// The latest schema version is v1.2.0. The v1.1.0 added the pricing
// bands columns of cars to v1.0.0 and v1.2.0 adds the users table. Each major version N is created by its
// migration/settle/stlmigN package, so the constants follow the latest
// of those packages.
const (
	Major = stlmig1.Major
	Minor = stlmig1.Minor
	Patch = stlmig1.Patch
)

// Version is the schema version which the web server expects.
var Version = model.SemVer{Major, Minor, Patch}
