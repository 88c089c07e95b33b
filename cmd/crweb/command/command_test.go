// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/momeni/car-rental/pkg/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const carYAML = `
name: BMW Z4
brand: BMW
model: Z4
year: 2023
image: https://example.com/z4.jpg
price: 100
transmission: Automatic
fuelType: Petrol
seats: 2
category: Convertible
status: On Ride
slabPrice0to100: 30
features: [Heated seats, Cruise control]
`

func TestReadEntity(t *testing.T) {
	path := filepath.Join(t.TempDir(), "car.yaml")
	require.NoError(t, os.WriteFile(path, []byte(carYAML), 0o600))

	c, err := readEntity[model.Car](path, "car-1")
	require.NoError(t, err)
	assert.Equal(t, "car-1", c.ID)
	assert.Equal(t, model.FuelPetrol, c.FuelType)
	assert.Equal(t, model.CarStatusOnRide, c.Status)
	assert.Equal(t, []string{"Heated seats", "Cruise control"}, c.Features)
	require.NotNil(t, c.Band0To100)
	assert.Equal(t, 30.0, *c.Band0To100)
	assert.Nil(t, c.PerKm, "absent pricing is left to the server")

	c, err = readEntity[model.Car](path, "")
	require.NoError(t, err)
	assert.Empty(t, c.ID)
}

func TestReadEntityErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := readEntity[model.Car](filepath.Join(dir, "missing"), "")
	assert.Error(t, err)

	path := filepath.Join(dir, "list.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- a\n- b\n"), 0o600))
	_, err = readEntity[model.Car](path, "")
	assert.ErrorContains(t, err, "mapping")

	require.NoError(t, os.WriteFile(path, []byte("status: Parked\n"), 0o600))
	_, err = readEntity[model.Car](path, "")
	assert.Error(t, err, "unknown car status")
}

func TestPrintJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, printJSON(buf, model.Testimonial{
		ID: "t1", Name: "Ananya", Rating: 5,
	}))
	assert.Contains(t, buf.String(), "\n  \"name\": \"Ananya\",\n")
	assert.Contains(t, buf.String(), "\"created_at\"")
}

func TestCommandTree(t *testing.T) {
	for _, args := range [][]string{
		{"db", "init-dev"},
		{"db", "init-prod"},
		{"db", "upgrade"},
		{"cars", "list"},
		{"packages", "create"},
		{"testimonials", "delete"},
		{"users", "list"},
		{"users", "sync"},
		{"book"},
		{"quote"},
	} {
		cmd, rest, err := rootCmd.Find(args)
		require.NoError(t, err, "finding %v", args)
		assert.Empty(t, rest)
		assert.Equal(t, args[len(args)-1], cmd.Name())
	}
}
