// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package entityrp provides a generic reification of the
// repo.Entities interface using GORM. Each entity table is described
// by a row type (see the Row interface) in its own repository package,
// such as carsrp, which instantiates the generic Repo of this package.
//
// All tables are expected to have a uuid "id" primary key column and
// a "created_at" column which orders the listed rows.
package entityrp

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/momeni/car-rental/pkg/adapter/db/postgres"
	"github.com/momeni/car-rental/pkg/core/cerr"
	"github.com/momeni/car-rental/pkg/core/model"
	"gorm.io/gorm/clause"
)

// Row is implemented by the GORM models of entity tables. The R row
// type must be a struct (not a pointer) with value receiver methods.
type Row[E model.Entity] interface {
	// TableName returns the name of the table, without its schema.
	TableName() string

	// Entity converts this row to its entity model.
	Entity() (E, error)
}

// FromEntity converts the e entity to its row, setting its identifier
// to id. The creation time is left to the database.
type FromEntity[E model.Entity, R Row[E]] func(id uuid.UUID, e E) (R, error)

// ErrMalformedID indicates that an entity identifier is not a uuid.
// Such an identifier cannot match any row.
var ErrMalformedID = errors.New("malformed identifier")

// ParseID parses the id entity identifier. A malformed id is reported
// as a not found error.
func ParseID(id string) (uuid.UUID, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return uid, cerr.NotFound(fmt.Errorf("%q: %w", id, ErrMalformedID))
	}
	return uid, nil
}

// List returns all rows of the R table as entities, the most recently
// created first.
func List[E model.Entity, R Row[E], Q postgres.Queryer](
	ctx context.Context, q Q,
) ([]E, error) {
	var rows []R
	res := q.GORM(ctx).Order("created_at DESC").Find(&rows)
	if err := res.Error; err != nil {
		return nil, postgres.Classify("query", err)
	}
	es := make([]E, 0, len(rows))
	for _, r := range rows {
		e, err := r.Entity()
		if err != nil {
			return nil, fmt.Errorf("converting row: %w", err)
		}
		es = append(es, e)
	}
	return es, nil
}

// Get finds the row which is identified by id and returns its entity.
func Get[E model.Entity, R Row[E], Q postgres.Queryer](
	ctx context.Context, q Q, id string,
) (e E, err error) {
	uid, err := ParseID(id)
	if err != nil {
		return e, err
	}
	var r R
	res := q.GORM(ctx).Where("id = ?", uid).Take(&r)
	if err = res.Error; err != nil {
		return e, postgres.Classify("query", err)
	}
	return r.Entity()
}

// Create inserts the e entity with a fresh version 4 uuid identifier
// and returns the inserted row as an entity.
func Create[E model.Entity, R Row[E], Q postgres.Queryer](
	ctx context.Context, q Q, from FromEntity[E, R], e E,
) (created E, err error) {
	r, err := from(uuid.New(), e)
	if err != nil {
		return created, cerr.BadRequest(err)
	}
	res := q.GORM(ctx).Clauses(clause.Returning{}).Create(&r)
	if err = res.Error; err != nil {
		return created, postgres.Classify("insert", err)
	}
	return r.Entity()
}

// Upsert inserts the e entity with a fresh identifier or, if a row
// with the same conflict column value exists, overwrites its updates
// columns. The inserted or updated row is returned as an entity and
// keeps its original identifier and creation time.
func Upsert[E model.Entity, R Row[E], Q postgres.Queryer](
	ctx context.Context, q Q, from FromEntity[E, R], e E,
	conflict string, updates ...string,
) (stored E, err error) {
	r, err := from(uuid.New(), e)
	if err != nil {
		return stored, cerr.BadRequest(err)
	}
	res := q.GORM(ctx).Clauses(
		clause.OnConflict{
			Columns:   []clause.Column{{Name: conflict}},
			DoUpdates: clause.AssignmentColumns(updates),
		},
		clause.Returning{},
	).Create(&r)
	if err = res.Error; err != nil {
		return stored, postgres.Classify("upsert", err)
	}
	return r.Entity()
}

// Update overwrites all columns of the row which is identified by
// e.EntityID(), except its identifier and creation time, and returns
// the updated row as an entity.
func Update[E model.Entity, R Row[E], Q postgres.Queryer](
	ctx context.Context, q Q, from FromEntity[E, R], e E,
) (updated E, err error) {
	uid, err := ParseID(e.EntityID())
	if err != nil {
		return updated, err
	}
	r, err := from(uid, e)
	if err != nil {
		return updated, cerr.BadRequest(err)
	}
	res := q.GORM(ctx).Model(&r).Clauses(clause.Returning{}).Select(
		"*",
	).Omit(
		"id", "created_at",
	).Updates(&r)
	if err = res.Error; err != nil {
		return updated, postgres.Classify("update", err)
	}
	if n := res.RowsAffected; n != 1 {
		return updated, cerr.NotFound(
			fmt.Errorf("expected one row, but got %d", n),
		)
	}
	return r.Entity()
}

// Delete removes the row which is identified by id.
func Delete[E model.Entity, R Row[E], Q postgres.Queryer](
	ctx context.Context, q Q, id string,
) error {
	uid, err := ParseID(id)
	if err != nil {
		return err
	}
	res := q.GORM(ctx).Where("id = ?", uid).Delete(new(R))
	if err = res.Error; err != nil {
		return postgres.Classify("delete", err)
	}
	if n := res.RowsAffected; n != 1 {
		return cerr.NotFound(
			fmt.Errorf("expected one row, but got %d", n),
		)
	}
	return nil
}
