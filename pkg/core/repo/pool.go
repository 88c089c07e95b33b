// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package repo contains the repository ports. These interfaces are
// used by the use cases layer in order to access the database, while
// their implementations are provided by the adapters layer.
package repo

import "context"

// ConnHandler is a function which uses the given Conn. The connection
// is released back to the pool when ConnHandler returns.
type ConnHandler func(context.Context, Conn) error

// Pool represents a database connections pool. It is safe to be used
// concurrently and each use case operation should acquire its own
// connection by calling the Conn method.
type Pool interface {
	Conn(ctx context.Context, handler ConnHandler) error

	// Close releases all connections. The pool may not be used after
	// calling Close.
	Close() error
}
