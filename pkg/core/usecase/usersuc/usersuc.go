// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package usersuc contains the users directory UseCase. Besides the
// generic entity use cases, which serve the admin dashboard, users are
// synced by their email addresses whenever they sign in.
package usersuc

import (
	"context"
	"errors"
	"strings"

	"github.com/momeni/car-rental/pkg/core/cerr"
	"github.com/momeni/car-rental/pkg/core/log"
	"github.com/momeni/car-rental/pkg/core/model"
	"github.com/momeni/car-rental/pkg/core/repo"
	"github.com/momeni/car-rental/pkg/core/usecase/entityuc"
)

// UseCase represents a users use case.
type UseCase struct {
	*entityuc.UseCase[model.User]

	pool repo.Pool
	rp   repo.Users
}

// New instantiates a users use case.
func New(p repo.Pool, us repo.Users) (*UseCase, error) {
	uc, err := entityuc.New(model.KindUser, p, us, Normalize)
	if err != nil {
		return nil, err
	}
	return &UseCase{UseCase: uc, pool: p, rp: us}, nil
}

// ErrEmptyEmail indicates that a user has no email address.
var ErrEmptyEmail = errors.New("email is required")

// Normalize checks the email address and role of u. The email is
// trimmed and lowered, and an empty role becomes model.UserRoleUser.
func Normalize(u model.User) (model.User, error) {
	u.Email = model.NormalizeEmail(u.Email)
	if u.Email == "" {
		return u, ErrEmptyEmail
	}
	u.Name = strings.TrimSpace(u.Name)
	if u.Role == "" {
		u.Role = model.UserRoleUser
	}
	if err := u.Role.Validate(); err != nil {
		return u, err
	}
	return u, nil
}

// Sync use case stores u by its email address. An existing user with
// the same email takes the name, phone, and role of u while keeping
// its identifier. The stored user is returned.
func (uc *UseCase) Sync(ctx context.Context, u model.User) (
	synced model.User, err error,
) {
	if u, err = Normalize(u); err != nil {
		return synced, cerr.BadRequest(err)
	}
	err = uc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		synced, err = uc.rp.UsersConn(c).Sync(ctx, u)
		return err
	})
	if err != nil {
		return model.User{}, err
	}
	log.Info(
		ctx, "user synced",
		log.Kind(model.KindUser), log.ID(synced.ID),
	)
	return synced, nil
}
