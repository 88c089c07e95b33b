// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package carsuc contains the cars UseCase which supports the
// cars related use cases, i.e., listing, adding, editing, and removing
// the rental fleet cars.
package carsuc

import (
	"errors"
	"fmt"

	"github.com/momeni/car-rental/pkg/core/model"
	"github.com/momeni/car-rental/pkg/core/repo"
	"github.com/momeni/car-rental/pkg/core/usecase/entityuc"
)

// UseCase represents a cars use case. It holds a database connection
// pool and the cars repository instance (to be guided with the DB
// pool) through its embedded generic entities use case.
type UseCase struct {
	*entityuc.UseCase[model.Car]
}

// New instantiates a cars use case.
func New(p repo.Pool, c repo.Cars) (*UseCase, error) {
	uc, err := entityuc.New(model.KindCar, p, c, Normalize)
	if err != nil {
		return nil, err
	}
	return &UseCase{UseCase: uc}, nil
}

// Normalize validates the c car and fills its absent fields like the
// REST API does for new cars. That is, an absent status is taken as
// Available, absent features as an empty list, and absent pricing
// fields as the default rate schedule.
func Normalize(c model.Car) (model.Car, error) {
	if c.Status == model.CarStatusUnset {
		c.Status = model.CarStatusAvailable
	}
	if err := c.Status.Validate(); err != nil {
		return c, err
	}
	if c.Price < 0 {
		return c, fmt.Errorf("price (%v) is negative", c.Price)
	}
	if c.Features == nil {
		c.Features = []string{}
	}
	c = model.ApplyDefaults(c)
	for _, r := range []*float64{
		c.PerKm, c.Band0To100, c.Band100To200, c.Band200To300,
	} {
		if *r < 0 {
			return c, errors.New("pricing rates must not be negative")
		}
	}
	return c, nil
}
