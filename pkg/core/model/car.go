// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package model defines the inner most layer of the Clean Architecture
// containing the business-level models, also called entities or domain.
// This layer may not depend on outter layers, while all other layers
// may depend on it.
// By the way, it is acceptable to annotate structs in this package with
// multiple frameworks dependent tags (e.g., json tags which fix the wire
// format of the REST API) since adding more tags does not complicate
// definition of a struct, but can prevent unnecessary structs
// duplication.
package model

import "time"

// Transmission is the gearbox type of a car.
type Transmission string

// Known transmission values.
const (
	TransmissionAutomatic Transmission = "Automatic"
	TransmissionManual    Transmission = "Manual"
)

// FuelType is the fuel (or energy source) of a car.
type FuelType string

// Known fuel types.
const (
	FuelPetrol   FuelType = "Petrol"
	FuelDiesel   FuelType = "Diesel"
	FuelElectric FuelType = "Electric"
	FuelHybrid   FuelType = "Hybrid"
)

// Category groups cars for the catalog views.
type Category string

// Known car categories.
const (
	CategorySedan       Category = "Sedan"
	CategorySUV         Category = "SUV"
	CategorySports      Category = "Sports"
	CategoryEconomy     Category = "Economy"
	CategoryLuxury      Category = "Luxury"
	CategoryConvertible Category = "Convertible"
)

// Car models a rentable vehicle as it is exchanged with the REST API.
// The json tags fix the camelCase wire format while the persisted
// schema uses snake_case columns. For the struct which maps these
// fields to the cars table, see the unexported gCar struct in the
// pkg/adapter/db/postgres/carsrp/repo.go file.
//
// The ID is assigned by the server. A Car which is passed to a create
// operation has an empty ID.
type Car struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Brand        string       `json:"brand"`
	Model        string       `json:"model"`
	Year         int          `json:"year"`
	Image        string       `json:"image"`
	Price        float64      `json:"price"` // daily rental rate
	Transmission Transmission `json:"transmission"`
	FuelType     FuelType     `json:"fuelType"`
	Seats        int          `json:"seats"`
	Category     Category     `json:"category"`
	Rating       float64      `json:"rating"`
	Reviews      int          `json:"reviews"`
	Status       CarStatus    `json:"status"`
	Features     []string     `json:"features"`

	// Pricing is inlined, so its fields appear next to other car
	// fields on the wire (e.g., pricePerKm).
	Pricing

	CreatedAt time.Time `json:"createdAt"`
}

// EntityID returns the server assigned identifier of the car.
func (c Car) EntityID() string {
	return c.ID
}
