// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package testimonialsrs realizes the testimonials resource.
package testimonialsrs

import (
	"github.com/gin-gonic/gin"
	"github.com/momeni/car-rental/pkg/adapter/restful/gin/entityrs"
	"github.com/momeni/car-rental/pkg/core/model"
	"github.com/momeni/car-rental/pkg/core/usecase/testimonialsuc"
)

// Register adapts the testimonials use case with the GET, POST, PUT,
// and DELETE REST APIs under /api/testimonials.
func Register(r *gin.RouterGroup, ts *testimonialsuc.UseCase) {
	entityrs.Register[model.Testimonial, testimonialReq](r, ts)
}

type testimonialReq struct {
	Name   string `json:"name" binding:"required"`
	Rating int    `json:"rating" binding:"required,min=1,max=5"`
	Text   string `json:"text" binding:"required"`
	Avatar string `json:"avatar"`
}

// ToModel converts the request into a testimonial. An empty avatar is
// replaced by the name initials in the use case.
func (req testimonialReq) ToModel(id string) (model.Testimonial, error) {
	return model.Testimonial{
		ID:     id,
		Name:   req.Name,
		Rating: req.Rating,
		Text:   req.Text,
		Avatar: req.Avatar,
	}, nil
}
