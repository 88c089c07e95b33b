// Copyright (c) 2023 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import "context"

// TxHandler is a function which runs statements in the given Tx.
// Returning a nil error commits the transaction, while a non-nil error
// (or a panic) rolls it back.
type TxHandler func(context.Context, Tx) error

// Conn represents a single database connection which is acquired
// from a Pool. Statements which are executed on a Conn directly run
// in their own auto-committed transactions. The Tx method may be used
// in order to run a series of statements in one transaction.
type Conn interface {
	Queryer

	// Tx begins a transaction, passes it to the handler function,
	// and commits or rolls it back based on the handler result.
	Tx(ctx context.Context, handler TxHandler) error

	// IsConn method prevents a non-Conn object (such as a Tx) to
	// mistakenly implement the Conn interface.
	IsConn()
}
