// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package config is an adapter which accepts yaml formatted config
// files from its users and allows the crweb to instantiate different
// components, from the adapter or use cases layers, using those loaded
// configuration settings.
// These settings are versioned and maintained by sub-packages.
// However, the parsed and validated configurations should be passed
// to their ultimate components as a series of individual params (for
// the mandatory items) and a series of functional options (for
// the optional items), so they may be validated again in the relevant
// end-component such as a UseCase instance.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/momeni/car-rental/pkg/adapter/config/cfg1"
	"github.com/momeni/car-rental/pkg/adapter/config/vers"
)

// EnvConfigFile is the environment variable which may hold the
// configuration file path when it is not given explicitly.
const EnvConfigFile = "CONFIG_FILE"

// DefaultPath is the configuration file path which is used when
// neither a path is given explicitly nor EnvConfigFile is set.
const DefaultPath = "configs/sample-config.yaml"

// LoadEnv loads the environment variables from the .env file in the
// current working directory (if any). Already set variables are kept
// intact. A missing .env file is not an error.
func LoadEnv() error {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}
	return nil
}

// Path returns the configuration file path. The given path is returned
// if it is not empty. Otherwise, EnvConfigFile and then DefaultPath
// are consulted.
func Path(path string) string {
	if path != "" {
		return path
	}
	if path = os.Getenv(EnvConfigFile); path != "" {
		return path
	}
	return DefaultPath
}

// Load function loads the .env file, and then loads, validates, and
// normalizes the configuration file and returns its settings as an
// instance of the Config struct. Given path must belong to a
// configuration file which conforms with a known configuration
// settings major version. The database schema version must be
// supported by this binary too, although it may be older than the
// latest known version, so the database may be initialized with an
// older schema or upgraded in place.
func Load(path string) (*cfg1.Config, error) {
	if err := LoadEnv(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	v, err := vers.Load(data)
	if err != nil {
		return nil, fmt.Errorf("loading versions: %w", err)
	}
	if err = v.Validate(cfg1.Version); err != nil {
		return nil, err
	}
	c, err := cfg1.Load(data)
	if err != nil {
		return nil, fmt.Errorf("loading cfg1.Config: %w", err)
	}
	return c, nil
}
