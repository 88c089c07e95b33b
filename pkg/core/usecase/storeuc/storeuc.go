// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package storeuc contains the entity state store use case. A Store
// keeps three in-memory collections (cars, packages, and testimonials)
// which mirror a remote CRUD API. All mutations go through the store,
// call the remote API, and only then reconcile the in-memory
// collection with the server response. No optimistic local change is
// ever applied before the remote call returns.
//
// Each completed operation, including a refresh, emits exactly one
// Notification to the configured Notifier.
package storeuc

import (
	"context"

	"github.com/momeni/car-rental/pkg/core/model"
)

// Remote is the port which a Collection uses in order to reach the
// authoritative copy of its entities. The adapters layer provides it
// as a REST API client.
type Remote[E model.Entity] interface {
	// Kind returns the kind of entities which are managed remotely.
	Kind() model.Kind

	// List fetches all entities in the server defined order.
	List(ctx context.Context) ([]E, error)

	// Create sends e (ignoring its identifier) and returns the entity
	// as stored by the server, carrying its assigned identifier.
	Create(ctx context.Context, e E) (E, error)

	// Update sends e by its identifier and returns the stored entity.
	Update(ctx context.Context, e E) (E, error)

	// Delete removes the entity which is identified by id.
	Delete(ctx context.Context, id string) error
}

// Level is the severity of a Notification.
type Level int

// Valid values for the Level enum.
const (
	LevelInvalid Level = iota // zero value is invalid

	LevelSuccess
	LevelError
)

// String returns "success" or "error". Other values are reported as
// "invalid".
func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelError:
		return "error"
	default:
		return "invalid"
	}
}

// Notification describes the outcome of one store operation for users.
// The Err field is only set for failures.
type Notification struct {
	Level   Level
	Title   string
	Message string
	Err     error
}

// Notifier receives store notifications. Notify is called from the
// goroutine which performed the operation and should not block for
// long.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// NotifierFunc adapts an ordinary function to the Notifier interface.
type NotifierFunc func(ctx context.Context, n Notification)

// Notify calls f(ctx, n).
func (f NotifierFunc) Notify(ctx context.Context, n Notification) {
	f(ctx, n)
}

func success(msg string) Notification {
	return Notification{Level: LevelSuccess, Title: "Success", Message: msg}
}

func failure(msg string, err error) Notification {
	return Notification{
		Level: LevelError, Title: "Error", Message: msg, Err: err,
	}
}
