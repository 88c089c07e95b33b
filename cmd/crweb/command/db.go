// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"context"
	"fmt"

	"github.com/momeni/car-rental/pkg/adapter/db/postgres/migration"
	"github.com/momeni/car-rental/pkg/core/usecase/migrationuc"
	"github.com/spf13/cobra"
)

const credsRenewalMessage = `
The admin role password is read from the .pgpass file in the pass-dir
directory. Passwords of the admin and normal roles are renewed and the
new passwords are written into the .pgpass.new file before being
applied, so an interrupted initialization can be repeated.`

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Database management actions",
	Long: `Database management actions can be chosen by sub-commands.
For fresh installation in a development or production environment,
the init-dev or init-prod may be used and for an in place upgrade of
an existing installation to the latest schema minor version, the
upgrade may be used.`,
}

var initDevCmd = &cobra.Command{
	Use:   "init-dev",
	Short: "Initialize database contents with development suitable data",
	Long: `Initialize database contents with development suitable data
for the database schema version which is specified in the configuration
file. A few sample cars, tour packages, and testimonials are inserted.
` + credsRenewalMessage + `

The crwebX schema (for the major version X) is dropped and created
again, so its existing contents are lost.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return initDB(cmd.Context(), true)
	},
	Args: cobra.NoArgs,
}

var initProdCmd = &cobra.Command{
	Use:   "init-prod",
	Short: "Initialize database contents with production suitable data",
	Long: `Initialize database contents with production suitable data
for the database schema version which is specified in the configuration
file. All tables are created and left empty.
` + credsRenewalMessage + `

The crwebX schema (for the major version X) is dropped and created
again, so its existing contents are lost.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return initDB(cmd.Context(), false)
	},
	Args: cobra.NoArgs,
}

var upgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "Upgrade database schema to the latest minor version",
	Long: `Upgrade the database schema in place to the latest supported
minor version of its major version, e.g., adding the pricing bands
columns of v1.1 to a v1.0 cars table (filling them with the default
rate schedule) and creating the users table of v1.2. An up to date schema is left unchanged and downgrades
are refused. The configuration file is not modified, so its database
version should be updated afterwards, before serving the API.`,
	RunE: upgradeDB,
	Args: cobra.NoArgs,
}

func initDB(ctx context.Context, dev bool) error {
	c, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	iduc := migrationuc.NewInitDB(c)
	if dev {
		err = iduc.InitDev(ctx)
	} else {
		err = iduc.InitProd(ctx)
	}
	if err != nil {
		return fmt.Errorf("initializing DB (dev=%v): %w", dev, err)
	}
	fmt.Printf("database schema v%s is initialized\n", c.SchemaVersion())
	return nil
}

func upgradeDB(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	c, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	// the configured version may be older than the latest one
	latest, err := migration.LatestVersion(c.SchemaVersion())
	if err != nil {
		return fmt.Errorf("finding latest schema version: %w", err)
	}
	c.SetSchemaVersion(latest)
	v, err := migrationuc.NewUpgradeDB(c).Upgrade(ctx)
	if err != nil {
		return fmt.Errorf("upgrading DB: %w", err)
	}
	fmt.Printf("database schema is at v%s\n", v)
	return nil
}

func init() {
	dbCmd.AddCommand(initDevCmd, initProdCmd, upgradeCmd)
	rootCmd.AddCommand(dbCmd)
}
