// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"

	"github.com/momeni/car-rental/pkg/core/model"
)

// EntitiesQueryer lists the operations which may be performed on one
// entity table, such as the cars table, having a connection or an
// ongoing transaction at hand.
//
// Missing (or malformed) identifiers are reported by an error which
// wraps a cerr.Error having the http.StatusNotFound status code.
type EntitiesQueryer[E model.Entity] interface {
	// List returns all entities, the most recently created first.
	List(ctx context.Context) ([]E, error)

	// Get returns the entity which is identified by id.
	Get(ctx context.Context, id string) (E, error)

	// Create inserts e, ignoring its identifier and creation time.
	// The stored entity, carrying its assigned identifier, is returned.
	Create(ctx context.Context, e E) (E, error)

	// Update overwrites all fields of the entity which is identified
	// by e.EntityID() and returns the stored entity.
	Update(ctx context.Context, e E) (E, error)

	// Delete removes the entity which is identified by id.
	Delete(ctx context.Context, id string) error
}

// Entities is a repository for one entity kind. Its Conn and Tx
// methods unwrap the given connection or transaction and return a
// queryer which runs the EntitiesQueryer operations over them.
type Entities[E model.Entity] interface {
	Conn(Conn) EntitiesQueryer[E]
	Tx(Tx) EntitiesQueryer[E]
}

// These aliases name the repositories of the supported entity kinds.
type (
	Cars         = Entities[model.Car]
	Packages     = Entities[model.Package]
	Testimonials = Entities[model.Testimonial]
)

// UsersQueryer adds the email based synchronization to the users
// entities operations.
type UsersQueryer interface {
	EntitiesQueryer[model.User]

	// Sync inserts u or, if a user with the same email exists,
	// overwrites its name, phone, and role. The stored user is
	// returned in both cases.
	Sync(ctx context.Context, u model.User) (model.User, error)
}

// Users is the repository of the users directory. Besides the Conn and
// Tx methods of Entities, it provides UsersConn for syncing users.
type Users interface {
	Entities[model.User]
	UsersConn(Conn) UsersQueryer
}
