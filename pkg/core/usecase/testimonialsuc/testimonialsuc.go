// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package testimonialsuc contains the customer testimonials UseCase.
package testimonialsuc

import (
	"errors"
	"fmt"
	"strings"

	"github.com/momeni/car-rental/pkg/core/model"
	"github.com/momeni/car-rental/pkg/core/repo"
	"github.com/momeni/car-rental/pkg/core/usecase/entityuc"
)

// UseCase represents a testimonials use case.
type UseCase struct {
	*entityuc.UseCase[model.Testimonial]
}

// New instantiates a testimonials use case.
func New(p repo.Pool, ts repo.Testimonials) (*UseCase, error) {
	uc, err := entityuc.New(model.KindTestimonial, p, ts, Normalize)
	if err != nil {
		return nil, err
	}
	return &UseCase{UseCase: uc}, nil
}

// ErrEmptyName indicates that a testimonial has no customer name.
var ErrEmptyName = errors.New("name is required")

// Normalize checks the customer name and rating of t and fills its
// empty avatar with the customer initials.
func Normalize(t model.Testimonial) (model.Testimonial, error) {
	if strings.TrimSpace(t.Name) == "" {
		return t, ErrEmptyName
	}
	if t.Rating < model.MinRating || t.Rating > model.MaxRating {
		return t, fmt.Errorf(
			"rating (%d) is not in [%d, %d]",
			t.Rating, model.MinRating, model.MaxRating,
		)
	}
	return t.WithAvatar(), nil
}
