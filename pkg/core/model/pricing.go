// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

// These constants form the default rate schedule of a car, per
// kilometer. Cars which were created before the banded pricing was
// introduced have no pricing fields and take these values.
const (
	DefaultPricePerKm   = 15.0 // base rate, also used beyond 300km
	DefaultBand0To100   = 25.0 // rate for the first 100km
	DefaultBand100To200 = 20.0 // rate for 100km to 200km
	DefaultBand200To300 = 15.0 // rate for 200km to 300km
)

// BandWidthKm is the length of each distance band in kilometers.
const BandWidthKm = 100.0

// Pricing is the per-kilometer pricing structure of a car. Fields are
// defined as pointers, so it is possible to detect if they are or are
// not initialized. An absent field can be filled by ApplyDefaults.
type Pricing struct {
	PerKm        *float64 `json:"pricePerKm,omitempty"`
	Band0To100   *float64 `json:"slabPrice0to100,omitempty"`
	Band100To200 *float64 `json:"slabPrice100to200,omitempty"`
	Band200To300 *float64 `json:"slabPrice200to300,omitempty"`
}

// DefaultPricing returns a Pricing instance which has all fields
// initialized with their default rate schedule values.
func DefaultPricing() Pricing {
	return Pricing{}.withDefaults()
}

func (p Pricing) withDefaults() Pricing {
	fill := func(f **float64, v float64) {
		if *f == nil {
			*f = &v
		}
	}
	fill(&p.PerKm, DefaultPricePerKm)
	fill(&p.Band0To100, DefaultBand0To100)
	fill(&p.Band100To200, DefaultBand100To200)
	fill(&p.Band200To300, DefaultBand200To300)
	return p
}

// ApplyDefaults returns a copy of the car c which has all of its
// absent pricing fields filled with the default rate schedule.
// Present pricing fields are never overwritten. Calling ApplyDefaults
// on its own result returns an equal car.
//
// ApplyDefaults is the migration step for cars which were recorded
// before the banded pricing existed. It should be applied once, when
// cars are loaded, and not at every usage site of the pricing fields.
func ApplyDefaults(c Car) Car {
	c.Pricing = c.Pricing.withDefaults()
	return c
}

// Complete reports whether all pricing fields are present.
func (p Pricing) Complete() bool {
	return p.PerKm != nil && p.Band0To100 != nil &&
		p.Band100To200 != nil && p.Band200To300 != nil
}

// Fare computes the distance based price of driving km kilometers.
// Each band rate is charged for the kilometers which fall in that band
// and the base PerKm rate is charged for kilometers beyond 300km.
// Absent fields are replaced by their default values and a
// non-positive km results in a zero fare.
func (p Pricing) Fare(km float64) float64 {
	if km <= 0 {
		return 0
	}
	p = p.withDefaults()
	rates := [...]float64{*p.Band0To100, *p.Band100To200, *p.Band200To300}
	var fare float64
	for _, r := range rates {
		d := min(km, BandWidthKm)
		fare += d * r
		km -= d
		if km <= 0 {
			return fare
		}
	}
	return fare + km*(*p.PerKm)
}
