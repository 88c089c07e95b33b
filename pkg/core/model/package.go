// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import "time"

// VehicleOption is one vehicle tier of a tour package, such as a
// Sedan for ₹2999 and an SUV for ₹3999. The Price is a display string
// because packages may show tiered or free-form prices.
type VehicleOption struct {
	Vehicle string `json:"vehicle"`
	Price   string `json:"price"`
}

// Package models a tour package as it is exchanged with the REST API.
// The Price and Pax fields are display strings, not numeric amounts.
// The VehicleOptions slice keeps its insertion order end-to-end.
type Package struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	Price          string          `json:"price"`
	Pax            string          `json:"pax"`
	Vehicle        string          `json:"vehicle"`
	Organizer      string          `json:"organizer"`
	Image          string          `json:"image"`
	Description    string          `json:"description,omitempty"`
	Locations      []string        `json:"locations,omitempty"`
	VehicleOptions []VehicleOption `json:"vehicleOptions,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// EntityID returns the server assigned identifier of the package.
func (p Package) EntityID() string {
	return p.ID
}
