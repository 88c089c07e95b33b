// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package packagesuc contains the tour packages UseCase.
package packagesuc

import (
	"errors"
	"fmt"
	"strings"

	"github.com/momeni/car-rental/pkg/core/model"
	"github.com/momeni/car-rental/pkg/core/repo"
	"github.com/momeni/car-rental/pkg/core/usecase/entityuc"
)

// UseCase represents a tour packages use case.
type UseCase struct {
	*entityuc.UseCase[model.Package]
}

// New instantiates a tour packages use case.
func New(p repo.Pool, ps repo.Packages) (*UseCase, error) {
	uc, err := entityuc.New(model.KindPackage, p, ps, Normalize)
	if err != nil {
		return nil, err
	}
	return &UseCase{UseCase: uc}, nil
}

// Normalize ensures that p has all of its required fields and that
// each vehicle option names its vehicle and price. The vehicle options
// order is kept as is. Absent lists are replaced by empty ones.
func Normalize(p model.Package) (model.Package, error) {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"title", p.Title},
		{"price", p.Price},
		{"pax", p.Pax},
		{"vehicle", p.Vehicle},
		{"organizer", p.Organizer},
		{"image", p.Image},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return p, fmt.Errorf(
			"missing fields: %s", strings.Join(missing, ", "),
		)
	}
	for i, vo := range p.VehicleOptions {
		if vo.Vehicle == "" || vo.Price == "" {
			return p, fmt.Errorf("vehicle option #%d: %w", i, errIncompleteOption)
		}
	}
	if p.Locations == nil {
		p.Locations = []string{}
	}
	if p.VehicleOptions == nil {
		p.VehicleOptions = []model.VehicleOption{}
	}
	return p, nil
}

var errIncompleteOption = errors.New("vehicle and price are required")
