// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package usersuc_test

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"testing"

	"github.com/momeni/car-rental/pkg/core/cerr"
	"github.com/momeni/car-rental/pkg/core/model"
	"github.com/momeni/car-rental/pkg/core/repo"
	"github.com/momeni/car-rental/pkg/core/usecase/usersuc"
	"github.com/stretchr/testify/require"
)

type fakePool struct{}

func (fakePool) Conn(ctx context.Context, h repo.ConnHandler) error {
	return h(ctx, nil)
}

func (fakePool) Close() error {
	return nil
}

var errNotSupported = errors.New("not supported")

// fakeUsers keeps users by their email addresses and only supports
// the Sync operation.
type fakeUsers struct {
	byEmail map[string]model.User
	lastID  int
}

func (fu *fakeUsers) Conn(repo.Conn) repo.EntitiesQueryer[model.User] {
	return usersQueryer{fu}
}

func (fu *fakeUsers) Tx(repo.Tx) repo.EntitiesQueryer[model.User] {
	return usersQueryer{fu}
}

func (fu *fakeUsers) UsersConn(repo.Conn) repo.UsersQueryer {
	return usersQueryer{fu}
}

type usersQueryer struct {
	*fakeUsers
}

func (uq usersQueryer) List(context.Context) ([]model.User, error) {
	return nil, errNotSupported
}

func (uq usersQueryer) Get(context.Context, string) (model.User, error) {
	return model.User{}, errNotSupported
}

func (uq usersQueryer) Create(context.Context, model.User) (model.User, error) {
	return model.User{}, errNotSupported
}

func (uq usersQueryer) Update(context.Context, model.User) (model.User, error) {
	return model.User{}, errNotSupported
}

func (uq usersQueryer) Delete(context.Context, string) error {
	return errNotSupported
}

func (uq usersQueryer) Sync(
	_ context.Context, u model.User,
) (model.User, error) {
	if old, ok := uq.byEmail[u.Email]; ok {
		u.ID = old.ID
	} else {
		uq.lastID++
		u.ID = strconv.Itoa(uq.lastID)
	}
	uq.byEmail[u.Email] = u
	return u, nil
}

func TestNormalize(t *testing.T) {
	t.Parallel()
	r := require.New(t)

	u, err := usersuc.Normalize(model.User{
		Name: " Ali ", Email: " Ali@Example.com",
	})
	r.NoError(err)
	r.Equal("Ali", u.Name)
	r.Equal("ali@example.com", u.Email)
	r.Equal(model.UserRoleUser, u.Role)

	u, err = usersuc.Normalize(model.User{
		Email: "a@example.com", Role: model.UserRoleAdmin,
	})
	r.NoError(err)
	r.Equal(model.UserRoleAdmin, u.Role)

	_, err = usersuc.Normalize(model.User{Name: "nobody"})
	r.ErrorIs(err, usersuc.ErrEmptyEmail)

	_, err = usersuc.Normalize(model.User{Email: "x@y.z", Role: "root"})
	var roleErr model.UserRoleError
	r.ErrorAs(err, &roleErr)
}

func TestSyncKeepsIdentifierByEmail(t *testing.T) {
	t.Parallel()
	r := require.New(t)
	ctx := context.Background()
	fu := &fakeUsers{byEmail: map[string]model.User{}}
	uc, err := usersuc.New(fakePool{}, fu)
	r.NoError(err)

	first, err := uc.Sync(ctx, model.User{Name: "Ali", Email: "ali@example.com"})
	r.NoError(err)
	r.Equal(model.UserRoleUser, first.Role)

	second, err := uc.Sync(ctx, model.User{
		Name: "Ali R", Email: "ALI@example.com", Phone: "98765",
		Role: model.UserRoleAdmin,
	})
	r.NoError(err)
	r.Equal(first.ID, second.ID, "same email must keep the user")
	r.Equal("Ali R", second.Name)
	r.Equal(model.UserRoleAdmin, second.Role)
	r.Len(fu.byEmail, 1)

	_, err = uc.Sync(ctx, model.User{Name: "no email"})
	code, _ := cerr.StatusCode(err)
	r.Equal(http.StatusBadRequest, code)
}
