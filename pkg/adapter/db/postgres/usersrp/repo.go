// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package usersrp provides the users directory repository. The users
// table is added by the v1.2 schema and has a unique email column.
package usersrp

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/car-rental/pkg/adapter/db/postgres"
	"github.com/momeni/car-rental/pkg/adapter/db/postgres/entityrp"
	"github.com/momeni/car-rental/pkg/core/model"
	"github.com/momeni/car-rental/pkg/core/repo"
)

// Repo represents the users repository.
type Repo struct {
	*entityrp.Repo[model.User, gUser]
}

// New instantiates a users Repo.
func New() *Repo {
	return &Repo{Repo: entityrp.New[model.User, gUser](fromModel)}
}

// UsersConn unwraps c, expecting a *postgres.Conn, and returns a
// queryer which also syncs users by their email addresses.
func (rp *Repo) UsersConn(c repo.Conn) repo.UsersQueryer {
	return usersQueryer{
		EntitiesQueryer: rp.Conn(c),
		c:               c.(*postgres.Conn),
	}
}

type usersQueryer struct {
	repo.EntitiesQueryer[model.User]
	c *postgres.Conn
}

func (uq usersQueryer) Sync(
	ctx context.Context, u model.User,
) (model.User, error) {
	return entityrp.Upsert(
		ctx, uq.c, fromModel, u, "email", "name", "phone", "role",
	)
}

type gUser struct {
	ID        uuid.UUID `gorm:"primaryKey;type:uuid"`
	Name      string
	Email     string
	Phone     string
	Role      string
	CreatedAt time.Time
}

func (gu gUser) TableName() string {
	return "users"
}

func (gu gUser) Entity() (model.User, error) {
	return model.User{
		ID:        gu.ID.String(),
		Name:      gu.Name,
		Email:     gu.Email,
		Phone:     gu.Phone,
		Role:      model.UserRole(gu.Role),
		CreatedAt: gu.CreatedAt,
	}, nil
}

func fromModel(id uuid.UUID, u model.User) (gUser, error) {
	return gUser{
		ID:    id,
		Name:  u.Name,
		Email: u.Email,
		Phone: u.Phone,
		Role:  string(u.Role),
	}, nil
}
