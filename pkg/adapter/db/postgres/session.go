// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres

import (
	"context"
	"database/sql"

	"github.com/momeni/car-rental/pkg/core/repo"
	"gorm.io/gorm"
)

// session implements the repo.Queryer methods over a *gorm.DB which
// is bound to one connection (for Conn) or transaction (for Tx).
//
// Statements use ? (or @name) placeholders which GORM converts to the
// $1, $2, ... placeholders of PostgreSQL. Statements with arguments
// are prepared, so they must contain exactly one SQL statement, while
// Exec without arguments may run a semicolon separated script (e.g.,
// the tables of a schema version). A Rows must be closed before the
// next statement on the same session.
type session struct {
	db *gorm.DB
}

// Exec runs sql with args and returns the number of affected rows.
func (s session) Exec(
	ctx context.Context, sql string, args ...any,
) (int64, error) {
	res := s.db.WithContext(ctx).Exec(sql, args...)
	return res.RowsAffected, res.Error
}

// Query runs sql with args and returns its result set.
func (s session) Query(
	ctx context.Context, sql string, args ...any,
) (repo.Rows, error) {
	rows, err := s.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	return sqlRows{rows}, nil
}

// GORM returns the session *gorm.DB which operates on ctx. It is used
// by the entity repositories for building their queries.
func (s session) GORM(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

// sqlRows drops the Close error of *sql.Rows which is reported by its
// Err method anyway.
type sqlRows struct {
	*sql.Rows
}

func (r sqlRows) Close() {
	_ = r.Rows.Close()
}
