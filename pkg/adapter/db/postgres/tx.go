// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres

// Tx is a READ-COMMITTED transaction which is begun by Conn.Tx.
// Repository packages, such as carsrp and packagesrp, unwrap a repo.Tx
// into a *Tx and query it by its GORM method.
type Tx struct {
	session
}

// IsTx marks Tx as a repo.Tx.
func (tx *Tx) IsTx() {
}
