// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import "context"

// Queryer runs raw SQL statements in a connection or transaction.
// The entity repository uses the gorm query builder instead, so raw
// statements are only needed for the DDL of schema migrations and
// for the schema checks of the tests.
type Queryer interface {
	// Exec runs a statement and returns the number of affected rows.
	Exec(ctx context.Context, sql string, args ...any) (int64, error)

	// Query runs a statement which returns rows. Callers must Close
	// the returned Rows.
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
}

// Rows iterates over the result of Queryer.Query.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}
