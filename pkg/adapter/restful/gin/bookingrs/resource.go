// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package bookingrs realizes the bookings resource which quotes the
// price of renting a car.
package bookingrs

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/momeni/car-rental/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/car-rental/pkg/core/usecase/bookinguc"
)

type resource struct {
	booking *bookinguc.UseCase
}

// Register instantiates a resource adapting the booking use case
// instance with the relevant REST APIs including:
//  1. POST request to /api/bookings/quote
//     in order to compute the price of renting a car.
func Register(r *gin.RouterGroup, booking *bookinguc.UseCase) {
	rs := &resource{booking: booking}
	r.POST("bookings/quote", rs.Quote)
}

type quoteReq struct {
	CarID      string    `json:"carId" binding:"required"`
	Start      time.Time `json:"start" binding:"required"`
	End        time.Time `json:"end" binding:"required"`
	Insurance  bool      `json:"insurance"`
	DistanceKm float64   `json:"distanceKm" binding:"gte=0"`
}

func (rs *resource) Quote(c *gin.Context) {
	req := &quoteReq{}
	if !serdser.BindJSON(c, req) {
		return
	}
	fe := serdser.FieldErrors{}
	fe.Check(req.End.After(req.Start), "End", "End must be after Start.")
	if fe.Write(c) {
		return
	}
	q, err := rs.booking.Quote(
		c, req.CarID, req.Start, req.End, req.Insurance, req.DistanceKm,
	)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, q)
}
