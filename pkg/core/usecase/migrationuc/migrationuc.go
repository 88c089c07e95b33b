// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package migrationuc provides the database schema use cases.
// It exposes InitDBUseCase for initializing of database schema with
// initial sample data (for development or production environment)
// and UpgradeDBUseCase for upgrading an existing schema in place to a
// newer minor version, e.g., adding the banded pricing columns of
// cars which were stored before that feature existed.
// This package also exposes the Settings interface which represents
// the expectations from a configuration file, so the use cases layer
// does not depend on the configuration file format.
package migrationuc
