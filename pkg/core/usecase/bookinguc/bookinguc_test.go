// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package bookinguc_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/momeni/car-rental/pkg/core/cerr"
	"github.com/momeni/car-rental/pkg/core/model"
	"github.com/momeni/car-rental/pkg/core/repo"
	"github.com/momeni/car-rental/pkg/core/usecase/bookinguc"
	"github.com/stretchr/testify/require"
)

type fakePool struct{}

func (fakePool) Conn(ctx context.Context, h repo.ConnHandler) error {
	return h(ctx, nil)
}

func (fakePool) Close() error {
	return nil
}

// fakeCars serves a fixed set of cars and only supports Get.
type fakeCars map[string]model.Car

func (fc fakeCars) Conn(repo.Conn) repo.EntitiesQueryer[model.Car] {
	return carsQueryer{fc}
}

func (fc fakeCars) Tx(repo.Tx) repo.EntitiesQueryer[model.Car] {
	return carsQueryer{fc}
}

type carsQueryer struct {
	fakeCars
}

func (cq carsQueryer) List(context.Context) ([]model.Car, error) {
	return nil, errors.New("not supported")
}

func (cq carsQueryer) Get(_ context.Context, id string) (model.Car, error) {
	c, ok := cq.fakeCars[id]
	if !ok {
		return c, cerr.NotFound(errors.New("car not found"))
	}
	return c, nil
}

func (cq carsQueryer) Create(context.Context, model.Car) (model.Car, error) {
	return model.Car{}, errors.New("not supported")
}

func (cq carsQueryer) Update(context.Context, model.Car) (model.Car, error) {
	return model.Car{}, errors.New("not supported")
}

func (cq carsQueryer) Delete(context.Context, string) error {
	return errors.New("not supported")
}

func TestQuote(t *testing.T) {
	t.Parallel()
	r := require.New(t)
	ctx := context.Background()
	cars := fakeCars{
		"c1": model.ApplyDefaults(model.Car{ID: "c1", Price: 80}),
	}
	uc, err := bookinguc.New(
		fakePool{}, cars, bookinguc.WithInsurancePerDay(10),
	)
	r.NoError(err)
	r.Equal(10.0, uc.InsurancePerDay())

	start := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	q, err := uc.Quote(ctx, "c1", start, start.Add(25*time.Hour), true, 150)
	r.NoError(err)
	r.Equal(model.Quote{
		CarID:     "c1",
		Days:      2,
		Rental:    160,
		Insurance: 20,
		Distance:  3500,
		Total:     3680,
	}, q)

	var ce *cerr.Error
	_, err = uc.Quote(ctx, "c1", start, start, false, 0)
	r.ErrorAs(err, &ce)
	r.Equal(http.StatusBadRequest, ce.HTTPStatusCode)
	r.ErrorIs(err, model.ErrEmptyPeriod)

	_, err = uc.Quote(ctx, "c2", start, start.Add(time.Hour), false, 0)
	r.ErrorAs(err, &ce)
	r.Equal(http.StatusNotFound, ce.HTTPStatusCode)
}

func TestDefaultInsurance(t *testing.T) {
	t.Parallel()
	uc, err := bookinguc.New(fakePool{}, fakeCars{})
	require.NoError(t, err)
	require.Equal(t, model.DefaultInsurancePerDay, uc.InsurancePerDay())

	_, err = bookinguc.New(
		fakePool{}, fakeCars{},
		bookinguc.WithInsurancePerDay(5), bookinguc.WithInsurancePerDay(6),
	)
	require.Error(t, err)
}
