// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package carsrs realizes the cars resource, allowing the cars
// manipulation REST APIs to be accepted and delegated to the
// cars use cases respectively.
package carsrs

import (
	"github.com/gin-gonic/gin"
	"github.com/momeni/car-rental/pkg/adapter/restful/gin/entityrs"
	"github.com/momeni/car-rental/pkg/core/model"
	"github.com/momeni/car-rental/pkg/core/usecase/carsuc"
)

// Register instantiates a resource adapting the cars use case instance
// with the relevant REST APIs including:
//  1. GET request to /api/cars in order to list cars,
//  2. GET request to /api/cars/:id in order to fetch one car,
//  3. POST request to /api/cars in order to add a car,
//  4. PUT request to /api/cars/:id in order to update a car, and
//  5. DELETE request to /api/cars/:id in order to delete a car.
func Register(r *gin.RouterGroup, cars *carsuc.UseCase) {
	entityrs.Register[model.Car, carReq](r, cars)
}
