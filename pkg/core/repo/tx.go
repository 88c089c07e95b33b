// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

// Tx is a READ-COMMITTED transaction which is obtained by Conn.Tx.
// Entity repositories are bound to a Tx, so a use case may create a
// car and list it again atomically. A Tx must not be shared between
// goroutines.
type Tx interface {
	Queryer

	// IsTx is a marker, so a Conn cannot be passed as a Tx.
	IsTx()
}
