// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import "context"

// SchemaInitializer creates the tables of one schema version in the
// current (empty) schema and records that version. It is bound to a
// transaction of the NormalRole by its creator.
type SchemaInitializer interface {
	// InitDevSchema also inserts a few sample cars, tour packages,
	// and testimonials.
	InitDevSchema(ctx context.Context) error

	// InitProdSchema leaves the tables empty.
	InitProdSchema(ctx context.Context) error
}

// Schema manages the crwebN schema and the database roles. It is used
// by the AdminRole during the database initialization.
type Schema interface {
	// Tx binds the repository to an ongoing transaction, so the
	// schema, the roles, and their new passwords become visible
	// together once it is committed.
	Tx(Tx) SchemaQueryer
}

// SchemaQueryer lists the administrative operations of Schema.
// Schema and role names must be trusted strings. Role names are
// suffixed by the role-suffix setting of the database.
type SchemaQueryer interface {
	// DropIfExists drops the schema and all of its tables, if it
	// exists.
	DropIfExists(ctx context.Context, schema string) error

	// CreateSchema creates an empty schema which must not exist.
	CreateSchema(ctx context.Context, schema string) error

	// CreateRoleIfNotExists creates a login role without password.
	CreateRoleIfNotExists(ctx context.Context, role Role) error

	// GrantPrivileges grants all privileges on schema to role.
	GrantPrivileges(ctx context.Context, schema string, role Role) error

	// SetSearchPath makes schema the only search_path entry of role,
	// so its queries may use unqualified table names.
	SetSearchPath(ctx context.Context, schema string, role Role) error

	// ChangePasswords sets the passwords[i] for the roles[i] role.
	// Only the hashed passwords are sent to the DBMS.
	ChangePasswords(
		ctx context.Context, roles []Role, passwords []string,
	) error
}
