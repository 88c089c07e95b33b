// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres

import (
	"context"
	"fmt"

	"github.com/momeni/car-rental/pkg/core/repo"
)

// Conn is a connection which is acquired from a Pool. Statements which
// are executed on a Conn directly are auto-committed. A Conn must not
// be shared between goroutines.
type Conn struct {
	session
}

// TxHandler is a function which runs statements in a transaction.
type TxHandler = repo.TxHandler

// Tx begins a transaction and passes it to f. The transaction is
// committed if f returns nil and rolled back if f fails or panics.
// A panic is reported as an error.
func (c *Conn) Tx(ctx context.Context, f TxHandler) (err error) {
	gtx := c.db.WithContext(ctx).Begin()
	if err = gtx.Error; err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		r := recover()
		switch {
		case r != nil:
			err = fmt.Errorf("panicked: %v", r)
		case err == nil:
			if err = gtx.Commit().Error; err != nil {
				err = fmt.Errorf("commit: %w", err)
			}
			return
		default:
			err = fmt.Errorf("handler: %w", err)
		}
		if rbErr := gtx.Rollback().Error; rbErr != nil {
			err = fmt.Errorf("%w, rollback: %w", err, rbErr)
		}
	}()
	return f(ctx, &Tx{session{gtx}})
}

// IsConn marks Conn as a repo.Conn.
func (c *Conn) IsConn() {
}
