// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package routes wires the car rental layers for the web server.
// Each entity kind has a carsrp-like repository, a carsuc-like use
// case, and a carsrs-like resource which are created here and mounted
// under /api.
package routes

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/momeni/car-rental/pkg/adapter/config/cfg1"
	"github.com/momeni/car-rental/pkg/adapter/db/postgres/carsrp"
	"github.com/momeni/car-rental/pkg/adapter/db/postgres/packagesrp"
	"github.com/momeni/car-rental/pkg/adapter/db/postgres/testimonialsrp"
	"github.com/momeni/car-rental/pkg/adapter/db/postgres/usersrp"
	"github.com/momeni/car-rental/pkg/adapter/restful/gin/bookingrs"
	"github.com/momeni/car-rental/pkg/adapter/restful/gin/carsrs"
	"github.com/momeni/car-rental/pkg/adapter/restful/gin/healthrs"
	"github.com/momeni/car-rental/pkg/adapter/restful/gin/packagesrs"
	"github.com/momeni/car-rental/pkg/adapter/restful/gin/testimonialsrs"
	"github.com/momeni/car-rental/pkg/adapter/restful/gin/usersrs"
	"github.com/momeni/car-rental/pkg/core/repo"
	"github.com/momeni/car-rental/pkg/core/usecase/carsuc"
	"github.com/momeni/car-rental/pkg/core/usecase/packagesuc"
	"github.com/momeni/car-rental/pkg/core/usecase/testimonialsuc"
	"github.com/momeni/car-rental/pkg/core/usecase/usersuc"
)

// Register mounts the health, entity, users, and booking resources
// on e.
// Use cases acquire connections of p per request, and the booking use
// case is configured by the u settings. The cars repository is shared
// by the cars and booking use cases.
func Register(e *gin.Engine, p repo.Pool, u cfg1.Usecases) error {
	carsRepo := carsrp.New()
	carsUseCase, err := carsuc.New(p, carsRepo)
	if err != nil {
		return fmt.Errorf("creating cars use case: %w", err)
	}
	packagesUseCase, err := packagesuc.New(p, packagesrp.New())
	if err != nil {
		return fmt.Errorf("creating packages use case: %w", err)
	}
	testimonialsUseCase, err := testimonialsuc.New(p, testimonialsrp.New())
	if err != nil {
		return fmt.Errorf("creating testimonials use case: %w", err)
	}
	usersUseCase, err := usersuc.New(p, usersrp.New())
	if err != nil {
		return fmt.Errorf("creating users use case: %w", err)
	}
	bookingUseCase, err := u.Booking.NewUseCase(p, carsRepo)
	if err != nil {
		return fmt.Errorf("creating booking use case: %w", err)
	}
	r := e.Group("/api")
	healthrs.Register(r, p)
	carsrs.Register(r, carsUseCase)
	packagesrs.Register(r, packagesUseCase)
	testimonialsrs.Register(r, testimonialsUseCase)
	usersrs.Register(r, usersUseCase)
	bookingrs.Register(r, bookingUseCase)
	return nil
}
