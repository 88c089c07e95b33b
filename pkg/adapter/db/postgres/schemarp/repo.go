// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package schemarp implements the repo.Schema interface for creating
// the crwebN schema and managing the admin and crweb roles.
package schemarp

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/momeni/car-rental/pkg/adapter/db/postgres"
	"github.com/momeni/car-rental/pkg/core/repo"
	"github.com/momeni/car-rental/pkg/core/scram"
)

// scramIters is the PBKDF2 iterations count of the role passwords.
const scramIters = 15000

// Repo is a schema management repository. Its roleSuffix (possibly
// empty) is appended to all role names, so distinct databases of a
// DBMS may use distinct roles, e.g., in tests.
type Repo struct {
	roleSuffix repo.Role
	hasher     scram.Hasher
}

// New instantiates a schema management Repo.
func New(roleSuffix repo.Role, hasher scram.Hasher) *Repo {
	return &Repo{roleSuffix: roleSuffix, hasher: hasher}
}

type txQueryer struct {
	tx *postgres.Tx
	*Repo
}

// Tx unwraps tx which must be a *postgres.Tx and panics otherwise.
func (r *Repo) Tx(tx repo.Tx) repo.SchemaQueryer {
	return txQueryer{tx: tx.(*postgres.Tx), Repo: r}
}

// ident quotes name as an SQL identifier. DDL statements do not take
// parameters, so names are embedded in them.
func ident(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

func (tq txQueryer) role(r repo.Role) string {
	return ident(string(r.Suffixed(tq.roleSuffix)))
}

func (tq txQueryer) exec(ctx context.Context, sql string) error {
	_, err := tq.tx.Exec(ctx, sql)
	return err
}

func (tq txQueryer) DropIfExists(ctx context.Context, schema string) error {
	return tq.exec(ctx, "DROP SCHEMA IF EXISTS "+ident(schema)+" CASCADE")
}

func (tq txQueryer) CreateSchema(ctx context.Context, schema string) error {
	return tq.exec(ctx, "CREATE SCHEMA "+ident(schema))
}

func (tq txQueryer) CreateRoleIfNotExists(
	ctx context.Context, role repo.Role,
) error {
	rows, err := tq.tx.Query(
		ctx, "SELECT 1 FROM pg_roles WHERE rolname=?",
		string(role.Suffixed(tq.roleSuffix)),
	)
	if err != nil {
		return fmt.Errorf("querying pg_roles: %w", err)
	}
	exists := rows.Next()
	rows.Close()
	if err = rows.Err(); err != nil {
		return fmt.Errorf("iterating pg_roles: %w", err)
	}
	if exists {
		return nil
	}
	return tq.exec(ctx, "CREATE ROLE "+tq.role(role)+" WITH LOGIN")
}

func (tq txQueryer) GrantPrivileges(
	ctx context.Context, schema string, role repo.Role,
) error {
	return tq.exec(ctx, fmt.Sprintf(
		"GRANT ALL PRIVILEGES ON SCHEMA %s TO %s",
		ident(schema), tq.role(role),
	))
}

func (tq txQueryer) SetSearchPath(
	ctx context.Context, schema string, role repo.Role,
) error {
	return tq.exec(ctx, fmt.Sprintf(
		"ALTER ROLE %s SET search_path TO %s",
		tq.role(role), ident(schema),
	))
}

// ChangePasswords sends the SCRAM hashes of passwords, which only
// contain base64 letters and the ':', '$', and '-' separators.
func (tq txQueryer) ChangePasswords(
	ctx context.Context, roles []repo.Role, passwords []string,
) error {
	if len(roles) != len(passwords) {
		return errors.New("roles and passwords count do not match")
	}
	for i, role := range roles {
		hp, err := tq.hasher.Hash(passwords[i], "", scramIters)
		if err != nil {
			return fmt.Errorf("hashing password of %q: %w", role, err)
		}
		err = tq.exec(ctx, fmt.Sprintf(
			"ALTER ROLE %s WITH PASSWORD '%s'", tq.role(role), hp,
		))
		if err != nil {
			return fmt.Errorf("altering role %q: %w", role, err)
		}
	}
	return nil
}
