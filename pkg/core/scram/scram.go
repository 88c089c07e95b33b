// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package scram declares the password hashing expectations of the
// migration use cases. The db init commands renew the admin and crweb
// role passwords, and only their SCRAM hashes are put in the ALTER
// ROLE statements, so logging those statements does not leak them.
// The SCRAM conversations themselves are carried out by PostgreSQL and
// its driver, so no conversation interface is needed here.
package scram

// Hasher computes SCRAM stored credentials for a fixed hash function,
// such as SHA-256. User names do not affect the stored credentials,
// so they are not asked.
type Hasher interface {
	// Hash returns the stored credentials of pass in the format
	//
	//	SCRAM-{SHA-X}${iters}:{b64-salt}${b64-storedKey}:{b64-serverKey}
	//
	// using the base64 salt (or a random salt if it is empty) and
	// iters PBKDF2 iterations, which must be at least 4096.
	Hash(pass, salt string, iters int) (string, error)
}
