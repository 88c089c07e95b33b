// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package migrationuc

import (
	"context"

	"github.com/momeni/car-rental/pkg/core/model"
	"github.com/momeni/car-rental/pkg/core/repo"
)

// PasswordsChanger sets the passwords[i] for the roles[i] role, e.g.,
// repo.SchemaQueryer.ChangePasswords in an ongoing transaction.
type PasswordsChanger func(
	ctx context.Context, roles []repo.Role, passwords []string,
) error

// Settings is the database section of a loaded configuration file,
// as required by the migration use cases.
type Settings interface {
	// ConnectionPool connects to the database as the r role. The
	// password of r is looked up in the .pgpass file of the pass-dir
	// whose lines are formatted as
	//
	//	host:port:dbname:role:password
	//
	// If a .pgpass.new file is left by an interrupted RenewPasswords,
	// and its password works, it is moved over the .pgpass file.
	ConnectionPool(ctx context.Context, r repo.Role) (repo.Pool, error)

	// ConnectionInfo returns the database name, host, and port.
	ConnectionInfo() (dbName, host string, port int)

	// NewSchemaRepo returns a Schema repository which suffixes the
	// role names and hashes the passwords as configured.
	NewSchemaRepo() repo.Schema

	// SchemaInitializer creates the tables of SchemaVersion in tx.
	SchemaInitializer(tx repo.Tx) (repo.SchemaInitializer, error)

	// SchemaMigrator reads or upgrades the schema version in tx.
	SchemaMigrator(tx repo.Tx) (repo.SchemaMigrator, error)

	// RenewPasswords generates random passwords for roles, writes
	// them into the .pgpass.new file, and then calls change. The
	// returned finalizer moves .pgpass.new over .pgpass and must be
	// called once the change transaction is committed.
	RenewPasswords(
		ctx context.Context, change PasswordsChanger, roles ...repo.Role,
	) (finalizer func() error, err error)

	// SchemaVersion returns the configured database schema version.
	SchemaVersion() model.SemVer
}
