// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/momeni/car-rental/pkg/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ExampleApplyDefaults() {
	perKm := 12.0
	c := model.ApplyDefaults(model.Car{
		Pricing: model.Pricing{PerKm: &perKm},
	})
	fmt.Println(*c.PerKm, *c.Band0To100, *c.Band100To200, *c.Band200To300)
	// Output:
	// 12 25 20 15
}

func ExamplePricing_Fare() {
	p := model.DefaultPricing()
	fmt.Println(p.Fare(0), p.Fare(150), p.Fare(300), p.Fare(350))
	// Output:
	// 0 3500 6000 6750
}

func ExampleInitials() {
	fmt.Println(model.Initials("john doe"))
	fmt.Println(model.Initials("  ali"))
	fmt.Println(model.Initials("é"))
	fmt.Println(model.Initials(""))
	// Output:
	// JO
	// AL
	// É
	// UR
}

func TestApplyDefaultsIsIdempotent(t *testing.T) {
	c := model.ApplyDefaults(model.Car{ID: "c1"})
	again := model.ApplyDefaults(c)
	assert.Equal(t, c, again)
	assert.True(t, again.Complete(), "all pricing fields must be set")
	assert.Equal(t, model.DefaultPricePerKm, *again.PerKm)
}

func TestApplyDefaultsKeepsPresentValues(t *testing.T) {
	zero, band := 0.0, 30.0
	c := model.ApplyDefaults(model.Car{Pricing: model.Pricing{
		PerKm:        &zero,
		Band100To200: &band,
	}})
	assert.Equal(t, 0.0, *c.PerKm, "present zero must not be replaced")
	assert.Equal(t, 30.0, *c.Band100To200)
	assert.Equal(t, model.DefaultBand0To100, *c.Band0To100)
	assert.Equal(t, model.DefaultBand200To300, *c.Band200To300)
}

func TestCarStatus(t *testing.T) {
	for _, tc := range []struct {
		text   string
		status model.CarStatus
	}{
		{"Available", model.CarStatusAvailable},
		{"On Ride", model.CarStatusOnRide},
		{"", model.CarStatusUnset},
	} {
		s, err := model.ParseCarStatus(tc.text)
		require.NoError(t, err, "parsing %q", tc.text)
		assert.Equal(t, tc.status, s)
		assert.Equal(t, tc.text, s.String())
	}
	_, err := model.ParseCarStatus("Parked")
	assert.ErrorIs(t, err, model.ErrUnknownCarStatus)
	assert.Error(t, model.CarStatusUnset.Validate())
	assert.NoError(t, model.CarStatusOnRide.Validate())
	_, err = model.CarStatus(7).MarshalText()
	assert.Equal(t, model.CarStatusError(7), err)
}

func TestCarWireFormat(t *testing.T) {
	data := []byte(`{
		"id": "c1",
		"name": "City Cruiser",
		"fuelType": "Hybrid",
		"reviews": 12,
		"status": "On Ride",
		"features": ["GPS", "Bluetooth"],
		"pricePerKm": 11,
		"slabPrice0to100": 21,
		"createdAt": "2024-05-01T10:00:00Z"
	}`)
	c := model.Car{}
	require.NoError(t, json.Unmarshal(data, &c))
	assert.Equal(t, "c1", c.EntityID())
	assert.Equal(t, model.FuelHybrid, c.FuelType)
	assert.Equal(t, 12, c.Reviews)
	assert.Equal(t, model.CarStatusOnRide, c.Status)
	assert.Equal(t, []string{"GPS", "Bluetooth"}, c.Features)
	require.NotNil(t, c.PerKm)
	assert.Equal(t, 11.0, *c.PerKm)
	assert.Nil(t, c.Band100To200, "absent bands must stay absent")
	assert.Equal(t, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), c.CreatedAt)

	b, err := json.Marshal(model.ApplyDefaults(c))
	require.NoError(t, err)
	m := map[string]any{}
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Equal(t, "On Ride", m["status"])
	assert.Equal(t, 20.0, m["slabPrice100to200"])
	assert.Equal(t, 15.0, m["slabPrice200to300"])
	assert.NotContains(t, m, "Pricing", "pricing must be inlined")
}

func TestNewQuote(t *testing.T) {
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	car := model.ApplyDefaults(model.Car{ID: "c1", Price: 100})

	q, err := model.NewQuote(car, start, start.Add(49*time.Hour), true, 15, 0)
	require.NoError(t, err)
	assert.Equal(t, model.Quote{
		CarID: "c1", Days: 3, Rental: 300, Insurance: 45, Total: 345,
	}, q)

	q, err = model.NewQuote(car, start, start.Add(24*time.Hour), false, 15, 150)
	require.NoError(t, err)
	assert.Equal(t, 1, q.Days)
	assert.Equal(t, 0.0, q.Insurance)
	assert.Equal(t, 3500.0, q.Distance)
	assert.Equal(t, 3600.0, q.Total)

	_, err = model.NewQuote(car, start, start, false, 15, 0)
	assert.ErrorIs(t, err, model.ErrEmptyPeriod)
	_, err = model.NewQuote(car, start, start.Add(time.Hour), false, 15, -1)
	assert.ErrorIs(t, err, model.ErrNegativeDistance)
}

func TestKind(t *testing.T) {
	assert.Equal(t, "cars", model.KindCar.String())
	assert.Equal(t, "testimonial", model.KindTestimonial.Singular())
	assert.Equal(t, "Package", model.KindPackage.Title())
	assert.Equal(t, "users", model.KindUser.String())
	assert.NoError(t, model.KindUser.Validate())
	assert.Error(t, model.KindInvalid.Validate())
}

func TestUserRole(t *testing.T) {
	assert.NoError(t, model.UserRoleUser.Validate())
	assert.NoError(t, model.UserRoleAdmin.Validate())
	assert.EqualError(
		t, model.UserRole("root").Validate(), `invalid user role: "root"`,
	)
	assert.Equal(t, "ali@example.com", model.NormalizeEmail(" Ali@Example.COM "))
}

func TestSemVerCompare(t *testing.T) {
	assert.Equal(t, -1, model.SemVer{1, 0, 0}.Compare(model.SemVer{1, 1, 0}))
	assert.Equal(t, 0, model.SemVer{1, 1, 0}.Compare(model.SemVer{1, 1, 0}))
	assert.Equal(t, 1, model.SemVer{2, 0, 0}.Compare(model.SemVer{1, 9, 9}))
}

func TestParseSemVer(t *testing.T) {
	for s, want := range map[string]model.SemVer{
		"1":     {1, 0, 0},
		"1.1":   {1, 1, 0},
		"2.3.4": {2, 3, 4},
	} {
		v, err := model.ParseSemVer(s)
		require.NoError(t, err, s)
		assert.Equal(t, want, v, s)
	}
	for _, s := range []string{"", "1.x", "1.2.3.4", "-1.0.0"} {
		_, err := model.ParseSemVer(s)
		assert.Error(t, err, s)
	}

	v := model.SemVer{1, 1, 0}
	assert.Error(t, v.UnmarshalText([]byte("v1")))
	assert.Equal(t, model.SemVer{1, 1, 0}, v, "unchanged on errors")
	b, err := v.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "1.1.0", string(b))
}
