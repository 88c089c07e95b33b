// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"errors"
	"math"
	"time"
)

// DefaultInsurancePerDay is the daily price of the optional insurance
// when no other value is configured.
const DefaultInsurancePerDay = 15.0

// ErrEmptyPeriod indicates that a booking end time is not after its
// start time.
var ErrEmptyPeriod = errors.New("end must be after start")

// ErrNegativeDistance indicates that a negative travel distance was
// given for a quote.
var ErrNegativeDistance = errors.New("distance must not be negative")

// Quote is the price breakdown of a car booking. Rental is the daily
// rate part, Insurance is the optional insurance part, and Distance
// is the banded per-kilometer part. Total is their sum.
type Quote struct {
	CarID     string  `json:"carId"`
	Days      int     `json:"days"`
	Rental    float64 `json:"rental"`
	Insurance float64 `json:"insurance"`
	Distance  float64 `json:"distance"`
	Total     float64 `json:"total"`
}

// NewQuote computes the price of renting the car c from start until
// end. Days are counted by rounding the period up to whole days, so
// a 25 hours rental takes two days. If insurance is true, perDay is
// charged for each day. The km kilometers are charged using the car
// pricing bands (see Pricing.Fare) and may be zero.
func NewQuote(
	c Car, start, end time.Time, insurance bool, perDay, km float64,
) (Quote, error) {
	if !end.After(start) {
		return Quote{}, ErrEmptyPeriod
	}
	if km < 0 {
		return Quote{}, ErrNegativeDistance
	}
	days := int(math.Ceil(end.Sub(start).Hours() / 24))
	q := Quote{
		CarID:    c.ID,
		Days:     days,
		Rental:   float64(days) * c.Price,
		Distance: c.Pricing.Fare(km),
	}
	if insurance {
		q.Insurance = float64(days) * perDay
	}
	q.Total = q.Rental + q.Insurance + q.Distance
	return q, nil
}

// Booking is a confirmed car reservation. Bookings are not persisted
// and only live as long as their confirmation is displayed.
type Booking struct {
	ID    string    `json:"id"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Quote Quote     `json:"quote"`
}
