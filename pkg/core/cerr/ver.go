// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package cerr

import (
	"fmt"

	"github.com/momeni/car-rental/pkg/core/model"
)

// MismatchingSemVerError reports that a database schema (or any other
// versioned artifact) has the second version while the first one was
// required. Build it as &MismatchingSemVerError{expected, actual}.
type MismatchingSemVerError [2]model.SemVer

// Expected returns the required version.
func (msve *MismatchingSemVerError) Expected() model.SemVer {
	return msve[0]
}

// Actual returns the version which was found.
func (msve *MismatchingSemVerError) Actual() model.SemVer {
	return msve[1]
}

// Upgradable reports whether the actual version may be migrated up to
// the expected one in place, i.e., they share a major version and the
// actual version is older.
func (msve *MismatchingSemVerError) Upgradable() bool {
	return msve[0][0] == msve[1][0] && msve[1].Compare(msve[0]) < 0
}

func (msve *MismatchingSemVerError) Error() string {
	return fmt.Sprintf("expected v%s, but got v%s", msve[0], msve[1])
}
