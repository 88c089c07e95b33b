// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package carsrp provides the cars repository, storing model.Car
// entities in the cars table of the latest schema version.
package carsrp

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/momeni/car-rental/pkg/adapter/db/postgres/entityrp"
	"github.com/momeni/car-rental/pkg/core/model"
)

// Repo represents the cars repository.
type Repo = entityrp.Repo[model.Car, gCar]

// New instantiates a cars Repo.
func New() *Repo {
	return entityrp.New[model.Car, gCar](fromModel)
}

// gCar is the GORM model of a cars table row. Pricing columns are not
// nullable because the schema upgrade fills them for older rows.
type gCar struct {
	ID              uuid.UUID `gorm:"primaryKey;type:uuid"`
	Name            string
	Brand           string
	CarModel        string `gorm:"column:model"`
	Year            int
	Image           string
	Price           float64
	Transmission    string
	FuelType        string
	Seats           int
	Category        string
	Rating          float64
	ReviewsCount    int
	Status          string
	Features        pq.StringArray `gorm:"type:text[]"`
	PricePerKm      float64
	SlabPrice0100   float64 `gorm:"column:slab_price_0_100"`
	SlabPrice100200 float64 `gorm:"column:slab_price_100_200"`
	SlabPrice200300 float64 `gorm:"column:slab_price_200_300"`
	CreatedAt       time.Time
}

func (gc gCar) TableName() string {
	return "cars"
}

func (gc gCar) Entity() (model.Car, error) {
	s, err := model.ParseCarStatus(gc.Status)
	if err != nil {
		return model.Car{}, fmt.Errorf("car %s: %w", gc.ID, err)
	}
	ptr := func(v float64) *float64 {
		return &v
	}
	return model.Car{
		ID:           gc.ID.String(),
		Name:         gc.Name,
		Brand:        gc.Brand,
		Model:        gc.CarModel,
		Year:         gc.Year,
		Image:        gc.Image,
		Price:        gc.Price,
		Transmission: model.Transmission(gc.Transmission),
		FuelType:     model.FuelType(gc.FuelType),
		Seats:        gc.Seats,
		Category:     model.Category(gc.Category),
		Rating:       gc.Rating,
		Reviews:      gc.ReviewsCount,
		Status:       s,
		Features:     append([]string{}, gc.Features...),
		Pricing: model.Pricing{
			PerKm:        ptr(gc.PricePerKm),
			Band0To100:   ptr(gc.SlabPrice0100),
			Band100To200: ptr(gc.SlabPrice100200),
			Band200To300: ptr(gc.SlabPrice200300),
		},
		CreatedAt: gc.CreatedAt,
	}, nil
}

// fromModel converts c to a row. Absent pricing fields are filled with
// their defaults, so callers may skip model.ApplyDefaults.
func fromModel(id uuid.UUID, c model.Car) (gCar, error) {
	if err := c.Status.Validate(); err != nil {
		return gCar{}, err
	}
	c = model.ApplyDefaults(c)
	features := pq.StringArray(c.Features)
	if features == nil {
		features = pq.StringArray{}
	}
	return gCar{
		ID:              id,
		Name:            c.Name,
		Brand:           c.Brand,
		CarModel:        c.Model,
		Year:            c.Year,
		Image:           c.Image,
		Price:           c.Price,
		Transmission:    string(c.Transmission),
		FuelType:        string(c.FuelType),
		Seats:           c.Seats,
		Category:        string(c.Category),
		Rating:          c.Rating,
		ReviewsCount:    c.Reviews,
		Status:          c.Status.String(),
		Features:        features,
		PricePerKm:      *c.PerKm,
		SlabPrice0100:   *c.Band0To100,
		SlabPrice100200: *c.Band100To200,
		SlabPrice200300: *c.Band200To300,
	}, nil
}
