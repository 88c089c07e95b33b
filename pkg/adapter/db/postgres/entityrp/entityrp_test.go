// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package entityrp_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/momeni/car-rental/internal/test/dbcontainer"
	"github.com/momeni/car-rental/pkg/adapter/db/postgres"
	"github.com/momeni/car-rental/pkg/adapter/db/postgres/carsrp"
	"github.com/momeni/car-rental/pkg/adapter/db/postgres/migration"
	"github.com/momeni/car-rental/pkg/adapter/db/postgres/packagesrp"
	"github.com/momeni/car-rental/pkg/adapter/db/postgres/testimonialsrp"
	"github.com/momeni/car-rental/pkg/adapter/db/postgres/usersrp"
	"github.com/momeni/car-rental/pkg/core/cerr"
	"github.com/momeni/car-rental/pkg/core/model"
	"github.com/momeni/car-rental/pkg/core/repo"
	"github.com/stretchr/testify/suite"
)

var errRollback = errors.New("rollback")

type IntegrationRepoTestSuite struct {
	suite.Suite

	Ctx  context.Context
	Pool *postgres.Pool
}

func TestIntegrationRepoTestSuite(t *testing.T) {
	ctx := context.Background()
	db := dbcontainer.New(ctx, t)
	if db == nil {
		return // errors are already reported
	}
	suite.Run(t, &IntegrationRepoTestSuite{Ctx: ctx, Pool: db.Pool})
}

func (irts *IntegrationRepoTestSuite) SetupSuite() {
	irts.Require().NoError(irts.tx(func(ctx context.Context, tx repo.Tx) error {
		si, err := migration.NewInitializer(tx, postgres.Version)
		if err != nil {
			return err
		}
		return si.InitDevSchema(ctx)
	}), "failed to create schema contents")
}

// tx runs f in a transaction which is committed if f returns nil.
func (irts *IntegrationRepoTestSuite) tx(
	f func(ctx context.Context, tx repo.Tx) error,
) error {
	return irts.Pool.Conn(
		irts.Ctx, func(ctx context.Context, c repo.Conn) error {
			return c.Tx(ctx, f)
		},
	)
}

func (irts *IntegrationRepoTestSuite) requireStatus(err error, code int) {
	irts.Require().Error(err)
	got, _ := cerr.StatusCode(err)
	irts.Equal(code, got, "error: %v", err)
}

func (irts *IntegrationRepoTestSuite) TestDevCarsHavePricing() {
	err := irts.tx(func(ctx context.Context, tx repo.Tx) error {
		cars, err := carsrp.New().Tx(tx).List(ctx)
		irts.Require().NoError(err)
		names := make([]string, 0, len(cars))
		for _, c := range cars {
			names = append(names, c.Name)
			irts.True(c.Pricing.Complete(), "car %q pricing", c.Name)
		}
		irts.Subset(names, []string{"BMW Z4", "Porsche Boxster"})
		return nil
	})
	irts.NoError(err)
}

func (irts *IntegrationRepoTestSuite) TestCarLifecycleIsRolledBack() {
	var id string
	err := irts.tx(func(ctx context.Context, tx repo.Tx) error {
		q := carsrp.New().Tx(tx)
		perKm := 18.0
		created, err := q.Create(ctx, model.Car{
			ID: "ignored", Name: "Rollback", Brand: "Audi", Model: "TT",
			Year: 2022, Image: "img", Price: 90, Seats: 2,
			Transmission: model.TransmissionAutomatic,
			FuelType:     model.FuelPetrol,
			Category:     model.CategoryConvertible,
			Pricing:      model.Pricing{PerKm: &perKm},
		})
		irts.Require().NoError(err)
		id = created.ID
		irts.NotEqual("ignored", id)
		irts.Equal(model.CarStatusAvailable, created.Status)
		irts.Equal(18.0, *created.PerKm)
		irts.Equal(model.DefaultBand0To100, *created.Band0To100)

		cars, err := q.List(ctx)
		irts.Require().NoError(err)
		irts.Equal(id, cars[0].ID, "the newest car comes first")

		created.Status = model.CarStatusOnRide
		updated, err := q.Update(ctx, created)
		irts.Require().NoError(err)
		irts.Equal(model.CarStatusOnRide, updated.Status)
		irts.True(created.CreatedAt.Equal(updated.CreatedAt))

		irts.Require().NoError(q.Delete(ctx, id))
		irts.requireStatus(q.Delete(ctx, id), http.StatusNotFound)
		return errRollback
	})
	irts.ErrorIs(err, errRollback)
	err = irts.tx(func(ctx context.Context, tx repo.Tx) error {
		_, err := carsrp.New().Tx(tx).Get(ctx, id)
		return err
	})
	irts.requireStatus(err, http.StatusNotFound)
}

func (irts *IntegrationRepoTestSuite) TestMissingIdentifiers() {
	err := irts.tx(func(ctx context.Context, tx repo.Tx) error {
		q := testimonialsrp.New().Tx(tx)
		for _, id := range []string{uuid.NewString(), "not-a-uuid"} {
			_, err := q.Get(ctx, id)
			irts.requireStatus(err, http.StatusNotFound)
			_, err = q.Update(ctx, model.Testimonial{ID: id, Name: "x"})
			irts.requireStatus(err, http.StatusNotFound)
			irts.requireStatus(q.Delete(ctx, id), http.StatusNotFound)
		}
		return nil
	})
	irts.NoError(err)
}

func (irts *IntegrationRepoTestSuite) TestPackageConstraints() {
	err := irts.tx(func(ctx context.Context, tx repo.Tx) error {
		q := packagesrp.New().Tx(tx)
		_, err := q.Create(ctx, model.Package{
			Price: "1000", Pax: "2", Vehicle: "SUV",
			Organizer: "Tours", Image: "img",
		})
		irts.requireStatus(err, http.StatusBadRequest)
		return errRollback
	})
	irts.ErrorIs(err, errRollback)
}

func (irts *IntegrationRepoTestSuite) TestUserSyncUpsertsByEmail() {
	err := irts.Pool.Conn(
		irts.Ctx, func(ctx context.Context, c repo.Conn) error {
			q := usersrp.New().UsersConn(c)
			first, err := q.Sync(ctx, model.User{
				Name: "Kiran", Email: "kiran@example.com", Phone: "111",
				Role: model.UserRoleUser,
			})
			irts.Require().NoError(err)
			defer func() {
				irts.NoError(q.Delete(ctx, first.ID))
			}()
			irts.NotEmpty(first.ID)
			irts.False(first.CreatedAt.IsZero())

			second, err := q.Sync(ctx, model.User{
				Name: "Kiran R", Email: "kiran@example.com", Phone: "222",
				Role: model.UserRoleAdmin,
			})
			irts.Require().NoError(err)
			irts.Equal(first.ID, second.ID)
			irts.Equal(first.CreatedAt.Unix(), second.CreatedAt.Unix())
			irts.Equal("Kiran R", second.Name)
			irts.Equal(model.UserRoleAdmin, second.Role)

			got, err := q.Get(ctx, first.ID)
			irts.Require().NoError(err)
			irts.Equal("222", got.Phone)

			_, err = q.Create(ctx, model.User{
				Email: "kiran@example.com", Role: model.UserRoleUser,
			})
			irts.requireStatus(err, http.StatusConflict)
			_, err = q.Sync(ctx, model.User{
				Email: "other@example.com", Role: "root",
			})
			irts.requireStatus(err, http.StatusBadRequest)
			return nil
		},
	)
	irts.NoError(err)
}
