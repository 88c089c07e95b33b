// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package bookinguc contains the booking UseCase which quotes the
// price of renting a car. Bookings are confirmed by the clients
// (see the storeuc package) and are not persisted.
package bookinguc

import (
	"context"
	"fmt"
	"time"

	"github.com/momeni/car-rental/pkg/core/cerr"
	"github.com/momeni/car-rental/pkg/core/model"
	"github.com/momeni/car-rental/pkg/core/repo"
)

// UseCase represents a booking use case. It holds a database
// connection pool, the cars repository instance (to be guided with
// the DB pool), and the booking specific settings.
type UseCase struct {
	pool   repo.Pool
	carsrp repo.Cars

	insurancePerDay float64
}

// New instantiates a booking use case.
// Required parameters are passed individually, so caller has to
// provision them and whenever they change, caller will notice and fix
// them due to a compilation error.
// Optional parameters are passed as a series of functional options
// in order to facilitate their validation and flexibility.
func New(p repo.Pool, c repo.Cars, opts ...Option) (*UseCase, error) {
	uc := &UseCase{pool: p, carsrp: c}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	// now, deal with defaults
	if uc.insurancePerDay == 0 {
		uc.insurancePerDay = model.DefaultInsurancePerDay
	}
	return uc, nil
}

// InsurancePerDay returns the configured daily insurance price.
func (uc *UseCase) InsurancePerDay() float64 {
	return uc.insurancePerDay
}

// Quote use case computes the price of renting the carID car from
// start until end, optionally with insurance, and driving it for km
// kilometers. A missing car is reported as a not found error, while
// an empty period or a negative distance is reported as a bad request.
func (uc *UseCase) Quote(
	ctx context.Context, carID string, start, end time.Time,
	insurance bool, km float64,
) (q model.Quote, err error) {
	var car model.Car
	err = uc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		car, err = uc.carsrp.Conn(c).Get(ctx, carID)
		return err
	})
	if err != nil {
		return model.Quote{}, err
	}
	q, err = model.NewQuote(car, start, end, insurance, uc.insurancePerDay, km)
	if err != nil {
		return model.Quote{}, cerr.BadRequest(err)
	}
	return q, nil
}
