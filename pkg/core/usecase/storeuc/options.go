// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package storeuc

import (
	"errors"
	"fmt"
)

// Option is a functional option for the Store.
type Option func(s *Store) error

// WithInsurancePerDay option configures the daily price of the
// optional booking insurance. It may be passed to the New() function.
func WithInsurancePerDay(price float64) Option {
	return func(s *Store) error {
		if price <= 0 {
			return fmt.Errorf("insurance price (%v) is not positive", price)
		}
		if s.insurancePerDay != 0 {
			return errors.New("insurance price is already configured")
		}
		s.insurancePerDay = price
		return nil
	}
}

// WithBookingIDGenerator option replaces the function which generates
// the booking identifiers. It is mainly useful for tests.
func WithBookingIDGenerator(f func() string) Option {
	return func(s *Store) error {
		if f == nil {
			return errors.New("nil booking id generator")
		}
		s.newBookingID = f
		return nil
	}
}
