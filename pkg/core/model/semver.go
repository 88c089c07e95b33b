// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"fmt"
	"strconv"
	"strings"
)

// SemVer is a released semantic version as {major, minor, patch}.
// It versions both the configuration file format and the database
// schema. A major version change needs a new schema (e.g., crweb2)
// while minor versions of the same major are migrated in place, such
// as adding the pricing bands columns of cars in v1.1.
type SemVer [3]uint

// ParseSemVer parses s as "major", "major.minor", or
// "major.minor.patch" where the missing components are zero.
func ParseSemVer(s string) (SemVer, error) {
	var sv SemVer
	parts := strings.Split(s, ".")
	if len(parts) > len(sv) {
		return sv, fmt.Errorf("version %q has too many components", s)
	}
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 0)
		if err != nil {
			return SemVer{}, fmt.Errorf(
				"version %q: component %q is not a number", s, p,
			)
		}
		sv[i] = uint(n)
	}
	return sv, nil
}

// UnmarshalText implements encoding.TextUnmarshaler, so versions may
// be written as strings in the YAML configuration file. The sv is
// left unchanged on errors.
func (sv *SemVer) UnmarshalText(text []byte) error {
	v, err := ParseSemVer(string(text))
	if err != nil {
		return err
	}
	*sv = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (sv SemVer) MarshalText() ([]byte, error) {
	return []byte(sv.String()), nil
}

func (sv SemVer) String() string {
	return fmt.Sprintf("%d.%d.%d", sv[0], sv[1], sv[2])
}

// Compare returns -1, 0, or +1 if sv is older than, equal to, or
// newer than other.
func (sv SemVer) Compare(other SemVer) int {
	for i := range sv {
		if sv[i] != other[i] {
			if sv[i] < other[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}
