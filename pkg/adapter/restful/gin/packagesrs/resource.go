// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package packagesrs realizes the tour packages resource.
package packagesrs

import (
	"github.com/gin-gonic/gin"
	"github.com/momeni/car-rental/pkg/adapter/restful/gin/entityrs"
	"github.com/momeni/car-rental/pkg/core/model"
	"github.com/momeni/car-rental/pkg/core/usecase/packagesuc"
)

// Register adapts the packages use case with the GET, POST, PUT, and
// DELETE REST APIs under /api/packages.
func Register(r *gin.RouterGroup, packages *packagesuc.UseCase) {
	entityrs.Register[model.Package, packageReq](r, packages)
}

type vehicleOptionReq struct {
	Vehicle string `json:"vehicle" binding:"required"`
	Price   string `json:"price" binding:"required"`
}

type packageReq struct {
	Title          string             `json:"title" binding:"required"`
	Price          string             `json:"price" binding:"required"`
	Pax            string             `json:"pax" binding:"required"`
	Vehicle        string             `json:"vehicle" binding:"required"`
	Organizer      string             `json:"organizer" binding:"required"`
	Image          string             `json:"image" binding:"required"`
	Description    string             `json:"description"`
	Locations      []string           `json:"locations"`
	VehicleOptions []vehicleOptionReq `json:"vehicleOptions" binding:"dive"`
}

func (req packageReq) ToModel(id string) (model.Package, error) {
	opts := make([]model.VehicleOption, len(req.VehicleOptions))
	for i, o := range req.VehicleOptions {
		opts[i] = model.VehicleOption{Vehicle: o.Vehicle, Price: o.Price}
	}
	return model.Package{
		ID:             id,
		Title:          req.Title,
		Price:          req.Price,
		Pax:            req.Pax,
		Vehicle:        req.Vehicle,
		Organizer:      req.Organizer,
		Image:          req.Image,
		Description:    req.Description,
		Locations:      req.Locations,
		VehicleOptions: opts,
	}, nil
}
