// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package entityuc contains the generic entity UseCase which supports
// the list, get, create, update, and delete use cases of one entity
// kind. The kind specific use case packages (e.g., carsuc) instantiate
// it with their own Normalizer in order to validate and complete the
// entities before they are stored.
package entityuc

import (
	"context"
	"fmt"

	"github.com/momeni/car-rental/pkg/core/cerr"
	"github.com/momeni/car-rental/pkg/core/log"
	"github.com/momeni/car-rental/pkg/core/model"
	"github.com/momeni/car-rental/pkg/core/repo"
)

// Normalizer validates the e entity and returns its completed copy,
// having absent fields filled with their default values. A returned
// error is reported as a bad request.
type Normalizer[E model.Entity] func(e E) (E, error)

// UseCase represents an entity use case. It holds a database
// connection pool, the entities repository instance (to be guided
// with the DB pool), and the normalizer of its entity kind.
type UseCase[E model.Entity] struct {
	kind      model.Kind
	pool      repo.Pool
	rp        repo.Entities[E]
	normalize Normalizer[E]
}

// New instantiates an entity use case for the k entity kind.
// The n normalizer may be nil if entities of this kind need no
// validation.
func New[E model.Entity](
	k model.Kind, p repo.Pool, rp repo.Entities[E], n Normalizer[E],
) (*UseCase[E], error) {
	if err := k.Validate(); err != nil {
		return nil, fmt.Errorf("invalid kind: %w", err)
	}
	if n == nil {
		n = func(e E) (E, error) {
			return e, nil
		}
	}
	return &UseCase[E]{kind: k, pool: p, rp: rp, normalize: n}, nil
}

// Kind returns the entity kind of this use case.
func (uc *UseCase[E]) Kind() model.Kind {
	return uc.kind
}

// List use case returns all entities, the most recently created first.
func (uc *UseCase[E]) List(ctx context.Context) (es []E, err error) {
	err = uc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		es, err = uc.rp.Conn(c).List(ctx)
		return err
	})
	if err != nil {
		es = nil
	}
	return
}

// Get use case returns the entity which is identified by id.
func (uc *UseCase[E]) Get(ctx context.Context, id string) (e E, err error) {
	err = uc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		e, err = uc.rp.Conn(c).Get(ctx, id)
		return err
	})
	return
}

// Create use case normalizes and stores the e entity. The stored
// entity, having its identifier and creation time, is returned.
func (uc *UseCase[E]) Create(ctx context.Context, e E) (created E, err error) {
	if e, err = uc.normalize(e); err != nil {
		return created, cerr.BadRequest(err)
	}
	err = uc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		created, err = uc.rp.Conn(c).Create(ctx, e)
		return err
	})
	if err != nil {
		var zero E
		return zero, err
	}
	log.Info(
		ctx, "entity created",
		log.Kind(uc.kind), log.ID(created.EntityID()),
	)
	return created, nil
}

// Update use case normalizes the e entity and overwrites the stored
// entity having the same identifier. The stored entity is returned.
func (uc *UseCase[E]) Update(ctx context.Context, e E) (updated E, err error) {
	if e, err = uc.normalize(e); err != nil {
		return updated, cerr.BadRequest(err)
	}
	err = uc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		updated, err = uc.rp.Conn(c).Update(ctx, e)
		return err
	})
	if err != nil {
		var zero E
		return zero, err
	}
	log.Info(ctx, "entity updated", log.Kind(uc.kind), log.ID(e.EntityID()))
	return updated, nil
}

// Delete use case removes the entity which is identified by id.
func (uc *UseCase[E]) Delete(ctx context.Context, id string) error {
	err := uc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return uc.rp.Conn(c).Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	log.Info(ctx, "entity deleted", log.Kind(uc.kind), log.ID(id))
	return nil
}
