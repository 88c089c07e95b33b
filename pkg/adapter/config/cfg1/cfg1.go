// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package cfg1 loads the version 1.x.y configuration files of crweb.
// All minor versions of a major version share one Config struct.
package cfg1

import (
	"context"
	"fmt"
	"os"

	"github.com/momeni/car-rental/pkg/adapter/config/vers"
	"github.com/momeni/car-rental/pkg/adapter/db/postgres/migration"
	"github.com/momeni/car-rental/pkg/core/model"
	"github.com/momeni/car-rental/pkg/core/repo"
	"github.com/momeni/car-rental/pkg/core/usecase/migrationuc"
	"gopkg.in/yaml.v3"
)

// Latest configuration file version which Config supports.
const (
	Major = 1
	Minor = 0
	Patch = 0
)

// Version is the latest configuration file version.
var Version = model.SemVer{Major, Minor, Patch}

// These environment variables override their configuration file
// counterparts when they are set to a non-empty value.
const (
	EnvDatabaseURL = "DATABASE_URL"
	EnvPort        = "PORT"
	EnvAPIURL      = "CRWEB_API_URL"
)

// Config is the v1.x.y configuration file. Its sections only use
// types of this package (or primitives), so the file format does not
// follow the changes of the models.
type Config struct {
	Database Database // PostgreSQL database connection settings
	Gin      Gin      // Gin-Gonic instantiation settings
	Usecases Usecases // Configuration settings for supported use cases
	Client   Client   // REST client settings of the admin commands

	Vers vers.Config `yaml:",inline"`
}

// The following methods implement the migrationuc.Settings interface
// by the Database section and the versions block.

// ConnectionPool connects to the configured database as r.
func (c *Config) ConnectionPool(
	ctx context.Context, r repo.Role,
) (repo.Pool, error) {
	p, err := c.Database.ConnectionPool(ctx, r)
	if err != nil {
		return nil, fmt.Errorf(
			"connecting to %q as %s: %w", c.Database.Name, r, err,
		)
	}
	return p, nil
}

func (c *Config) ConnectionInfo() (dbName, host string, port int) {
	return c.Database.ConnectionInfo()
}

func (c *Config) NewSchemaRepo() repo.Schema {
	return c.Database.NewSchemaRepo()
}

// SchemaInitializer creates the tables (and dev rows) of the configured
// schema version in tx.
func (c *Config) SchemaInitializer(tx repo.Tx) (
	repo.SchemaInitializer, error,
) {
	return migration.NewInitializer(tx, c.SchemaVersion())
}

// SchemaMigrator upgrades the schema in tx up to the configured version.
func (c *Config) SchemaMigrator(tx repo.Tx) (
	repo.SchemaMigrator, error,
) {
	return migration.NewMigrator(tx, c.SchemaVersion())
}

func (c *Config) RenewPasswords(
	ctx context.Context,
	change migrationuc.PasswordsChanger,
	roles ...repo.Role,
) (finalizer func() error, err error) {
	return c.Database.RenewPasswords(ctx, change, roles...)
}

// SchemaVersion returns the database version of the versions block.
// It is independent from the configuration file version.
func (c *Config) SchemaVersion() model.SemVer {
	return c.Vers.Versions.Database
}

// SetSchemaVersion replaces the database version, e.g., by the latest
// version before an upgrade. The file itself is not modified.
func (c *Config) SetSchemaVersion(sv model.SemVer) {
	c.Vers.Versions.Database = sv
}

// Version returns the configuration file version which may be older
// than the Version variable.
func (c *Config) Version() model.SemVer {
	return c.Vers.Versions.Config
}

// MajorVersion returns Major and may be called on a nil *Config.
func (c *Config) MajorVersion() uint {
	return Major
}

// Load parses the data YAML document as a v1 configuration file.
// Unknown keys are ignored and missing optional settings take their
// defaults. The EnvDatabaseURL, EnvPort, and EnvAPIURL environment
// variables override their settings before the validation.
func Load(data []byte) (*Config, error) {
	n := &yaml.Node{}
	if err := yaml.Unmarshal(data, n); err != nil {
		return nil, fmt.Errorf("unmarshalling yaml: %w", err)
	}
	if l := len(n.Content); l != 1 {
		return nil, fmt.Errorf(
			"found %d children nodes, instead of 1 mapping child", l,
		)
	}
	c := &Config{}
	if err := n.Decode(c); err != nil {
		return nil, fmt.Errorf("decoding yaml node: %w", err)
	}
	c.overrideFromEnv()
	if err := c.ValidateAndNormalize(); err != nil {
		return nil, fmt.Errorf("validating configs: %w", err)
	}
	return c, nil
}

func (c *Config) overrideFromEnv() {
	if u := os.Getenv(EnvDatabaseURL); u != "" {
		c.Database.URL = u
	}
	if p := os.Getenv(EnvPort); p != "" {
		addr := ":" + p
		c.Gin.Address = &addr
	}
	if u := os.Getenv(EnvAPIURL); u != "" {
		c.Client.BaseURL = u
	}
}

// ValidateAndNormalize checks all sections and fills their defaults.
func (c *Config) ValidateAndNormalize() error {
	if err := c.Vers.Validate(Version); err != nil {
		return err
	}
	if _, err := migration.LatestVersion(c.SchemaVersion()); err != nil {
		return fmt.Errorf(
			"unsupported database version %s: %w", c.SchemaVersion(), err,
		)
	}
	if err := c.Database.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating database settings: %w", err)
	}
	c.Gin.normalize()
	if err := c.Usecases.Booking.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating booking settings: %w", err)
	}
	if err := c.Client.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating client settings: %w", err)
	}
	return nil
}
