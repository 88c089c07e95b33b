// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package testimonialsrp provides the customer testimonials repository.
package testimonialsrp

import (
	"time"

	"github.com/google/uuid"
	"github.com/momeni/car-rental/pkg/adapter/db/postgres/entityrp"
	"github.com/momeni/car-rental/pkg/core/model"
)

// Repo represents the testimonials repository.
type Repo = entityrp.Repo[model.Testimonial, gTestimonial]

// New instantiates a testimonials Repo.
func New() *Repo {
	return entityrp.New[model.Testimonial, gTestimonial](fromModel)
}

type gTestimonial struct {
	ID        uuid.UUID `gorm:"primaryKey;type:uuid"`
	Name      string
	Rating    int
	Text      string
	Avatar    string
	CreatedAt time.Time
}

func (gt gTestimonial) TableName() string {
	return "testimonials"
}

func (gt gTestimonial) Entity() (model.Testimonial, error) {
	return model.Testimonial{
		ID:        gt.ID.String(),
		Name:      gt.Name,
		Rating:    gt.Rating,
		Text:      gt.Text,
		Avatar:    gt.Avatar,
		CreatedAt: gt.CreatedAt,
	}, nil
}

func fromModel(id uuid.UUID, t model.Testimonial) (gTestimonial, error) {
	return gTestimonial{
		ID:     id,
		Name:   t.Name,
		Rating: t.Rating,
		Text:   t.Text,
		Avatar: t.Avatar,
	}, nil
}
