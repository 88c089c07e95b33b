// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package entityrp

import (
	"context"

	"github.com/momeni/car-rental/pkg/adapter/db/postgres"
	"github.com/momeni/car-rental/pkg/core/model"
	"github.com/momeni/car-rental/pkg/core/repo"
)

// Repo represents an entity repository which stores E entities in
// the table which is described by the R row type.
type Repo[E model.Entity, R Row[E]] struct {
	from FromEntity[E, R]
}

// New instantiates an entity Repo which uses the from function in
// order to convert entities to rows.
func New[E model.Entity, R Row[E]](from FromEntity[E, R]) *Repo[E, R] {
	return &Repo[E, R]{from: from}
}

// Conn unwraps the given repo.Conn instance, expecting to find an
// instance of *postgres.Conn as created by this adapter layer.
// Otherwise, it will panic. Unwrapped connection will be wrapped and
// returned as an instance of repo.EntitiesQueryer interface, so
// it can be used in the use cases layer without requiring to type
// assert again and again.
func (rp *Repo[E, R]) Conn(c repo.Conn) repo.EntitiesQueryer[E] {
	cc := c.(*postgres.Conn)
	return queryer[E, R, *postgres.Conn]{q: cc, from: rp.from}
}

// Tx unwraps the given repo.Tx instance, expecting to find an instance
// of *postgres.Tx as created by this adapter layer. Otherwise, it will
// panic. Unwrapped transaction will be wrapped and returned as an
// instance of repo.EntitiesQueryer interface.
func (rp *Repo[E, R]) Tx(tx repo.Tx) repo.EntitiesQueryer[E] {
	tt := tx.(*postgres.Tx)
	return queryer[E, R, *postgres.Tx]{q: tt, from: rp.from}
}

type queryer[E model.Entity, R Row[E], Q postgres.Queryer] struct {
	q    Q
	from FromEntity[E, R]
}

func (eq queryer[E, R, Q]) List(ctx context.Context) ([]E, error) {
	return List[E, R](ctx, eq.q)
}

func (eq queryer[E, R, Q]) Get(ctx context.Context, id string) (E, error) {
	return Get[E, R](ctx, eq.q, id)
}

func (eq queryer[E, R, Q]) Create(ctx context.Context, e E) (E, error) {
	return Create(ctx, eq.q, eq.from, e)
}

func (eq queryer[E, R, Q]) Update(ctx context.Context, e E) (E, error) {
	return Update(ctx, eq.q, eq.from, e)
}

func (eq queryer[E, R, Q]) Delete(ctx context.Context, id string) error {
	return Delete[E, R](ctx, eq.q, id)
}
