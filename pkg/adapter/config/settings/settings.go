// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package settings provides the version-independent helpers of the
// configuration packages, such as the Duration type and the boundary
// values verification, in addition to the Config interface which must
// be implemented by each configuration settings major version.
package settings

import (
	"github.com/momeni/car-rental/pkg/core/model"
	"github.com/momeni/car-rental/pkg/core/usecase/migrationuc"
)

// Config describes the expected interface of the cfgN.Config structs.
// It contains the database-related settings by embedding the
// migrationuc.Settings interface, so a loaded Config can be passed to
// the database initialization and upgrade use cases directly.
//
// Asserting that each Config struct implements it (in its test file)
// ensures that a cfgN package which is copied from its previous major
// version keeps all relevant methods.
type Config interface {
	migrationuc.Settings

	// Version returns the semantic version of this Config contents.
	// The minor and patch versions may describe an older version than
	// the relevant package constants, but newer minor versions are
	// rejected during the loading phase.
	Version() model.SemVer

	// MajorVersion returns the major semantic version of this Config.
	// It only depends on the Config type and so can be called with a
	// nil instance too.
	MajorVersion() uint
}
