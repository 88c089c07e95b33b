// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package bookinguc

import (
	"errors"
	"fmt"
)

// Option is a functional option for the booking use case.
type Option func(uc *UseCase) error

// WithInsurancePerDay option configures a booking UseCase instance
// in order to charge the given price for each day of an insured
// booking. This option may be passed to the New() function.
func WithInsurancePerDay(price float64) Option {
	return func(uc *UseCase) error {
		if price <= 0 {
			return fmt.Errorf("price (%v) is not positive", price)
		}
		if uc.insurancePerDay != 0 {
			return errors.New("insurance price is already configured")
		}
		uc.insurancePerDay = price
		return nil
	}
}
