// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package carsuc_test

import (
	"testing"

	"github.com/momeni/car-rental/pkg/core/model"
	"github.com/momeni/car-rental/pkg/core/usecase/carsuc"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	t.Parallel()
	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		r := require.New(t)
		c, err := carsuc.Normalize(model.Car{Name: "Swift", Price: 40})
		r.NoError(err)
		r.Equal(model.CarStatusAvailable, c.Status)
		r.NotNil(c.Features)
		r.Empty(c.Features)
		r.True(c.Complete())
		r.Equal(model.DefaultPricePerKm, *c.PerKm)
	})
	t.Run("kept values", func(t *testing.T) {
		t.Parallel()
		r := require.New(t)
		perKm := 9.5
		in := model.Car{
			Status:   model.CarStatusOnRide,
			Features: []string{"GPS"},
			Pricing:  model.Pricing{PerKm: &perKm},
		}
		c, err := carsuc.Normalize(in)
		r.NoError(err)
		r.Equal(model.CarStatusOnRide, c.Status)
		r.Equal([]string{"GPS"}, c.Features)
		r.Equal(9.5, *c.PerKm)
		r.Equal(model.DefaultBand0To100, *c.Band0To100)
	})
	t.Run("invalid", func(t *testing.T) {
		t.Parallel()
		r := require.New(t)
		_, err := carsuc.Normalize(model.Car{Price: -1})
		r.Error(err)
		_, err = carsuc.Normalize(model.Car{Status: model.CarStatus(7)})
		r.Error(err)
		neg := -2.0
		_, err = carsuc.Normalize(model.Car{
			Pricing: model.Pricing{Band100To200: &neg},
		})
		r.Error(err)
	})
}
