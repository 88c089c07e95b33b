// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

// Role names a PostgreSQL role which the crweb program connects as.
// Its password is looked up in the .pgpass file of the configured
// pass-dir, keyed by the host, port, database, and suffixed role name.
type Role string

const (
	// AdminRole is a super user which must be created manually. It is
	// only used by the db init-dev and init-prod commands in order to
	// (re)create the crwebX schema, create the NormalRole if missing,
	// and renew the roles passwords.
	AdminRole Role = "admin"

	// NormalRole owns the crwebX schema. Tables are created and
	// upgraded with it and the web server serves the cars, packages,
	// and testimonials with it.
	NormalRole Role = "crweb"
)

// Suffixed returns the r role name followed by the suffix. Suffixes
// let several deployments (or test cases) share a database cluster.
func (r Role) Suffixed(suffix Role) Role {
	return r + suffix
}
