// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package vers contains the common versions parsing which is required
// by all config versions. Two versions are tracked here, namely the
// configuration file and the database schema. Versions are parsed
// before the actual settings, so the matching cfgN package can be
// selected for loading them.
package vers

import (
	"fmt"

	"github.com/momeni/car-rental/pkg/core/cerr"
	"github.com/momeni/car-rental/pkg/core/model"
	"gopkg.in/yaml.v3"
)

// Config is inlined in each cfgN.Config, so the versions block is
// written at the top level of the configuration file.
type Config struct {
	Versions Versions `yaml:"versions"`
}

// Versions contains the configuration file and database schema versions
// which are used for detecting their relevant formats.
// The database version is the schema version which is expected by the
// server. Older minor versions may be upgraded in place.
type Versions struct {
	Database model.SemVer `yaml:"database"`
	Config   model.SemVer `yaml:"config"`
}

// Load parses only the versions of the data YAML document, ignoring
// its other fields.
func Load(data []byte) (*Config, error) {
	vc := &Config{}
	if err := yaml.Unmarshal(data, vc); err != nil {
		return nil, err
	}
	return vc, nil
}

// Validate checks that the configuration file version may be loaded
// by a binary which knows the latest config version. The major versions
// must be equal and the file minor version must not be newer.
// A *cerr.MismatchingSemVerError is wrapped otherwise.
func (vc *Config) Validate(latest model.SemVer) error {
	v := vc.Versions.Config
	if v[0] != latest[0] || v[1] > latest[1] {
		return fmt.Errorf(
			"unsupported config version: %w",
			&cerr.MismatchingSemVerError{latest, v},
		)
	}
	return nil
}
