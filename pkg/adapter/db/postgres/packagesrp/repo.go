// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package packagesrp provides the tour packages repository. Package
// locations are stored as a text array and vehicle options as a JSONB
// array which keeps their order.
package packagesrp

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/momeni/car-rental/pkg/adapter/db/postgres/entityrp"
	"github.com/momeni/car-rental/pkg/core/model"
)

// Repo represents the tour packages repository.
type Repo = entityrp.Repo[model.Package, gPackage]

// New instantiates a tour packages Repo.
func New() *Repo {
	return entityrp.New[model.Package, gPackage](fromModel)
}

type gPackage struct {
	ID             uuid.UUID `gorm:"primaryKey;type:uuid"`
	Title          string
	Price          string
	Pax            string
	Vehicle        string
	Organizer      string
	Image          string
	Description    string
	Locations      pq.StringArray `gorm:"type:text[]"`
	VehicleOptions VehicleOptions `gorm:"type:jsonb"`
	CreatedAt      time.Time
}

func (gp gPackage) TableName() string {
	return "packages"
}

func (gp gPackage) Entity() (model.Package, error) {
	return model.Package{
		ID:             gp.ID.String(),
		Title:          gp.Title,
		Price:          gp.Price,
		Pax:            gp.Pax,
		Vehicle:        gp.Vehicle,
		Organizer:      gp.Organizer,
		Image:          gp.Image,
		Description:    gp.Description,
		Locations:      append([]string{}, gp.Locations...),
		VehicleOptions: append([]model.VehicleOption{}, gp.VehicleOptions...),
		CreatedAt:      gp.CreatedAt,
	}, nil
}

func fromModel(id uuid.UUID, p model.Package) (gPackage, error) {
	locations := pq.StringArray(p.Locations)
	if locations == nil {
		locations = pq.StringArray{}
	}
	vos := VehicleOptions(p.VehicleOptions)
	if vos == nil {
		vos = VehicleOptions{}
	}
	return gPackage{
		ID:             id,
		Title:          p.Title,
		Price:          p.Price,
		Pax:            p.Pax,
		Vehicle:        p.Vehicle,
		Organizer:      p.Organizer,
		Image:          p.Image,
		Description:    p.Description,
		Locations:      locations,
		VehicleOptions: vos,
	}, nil
}

// VehicleOptions is the JSONB column type of package vehicle options.
type VehicleOptions []model.VehicleOption

// Value implements the driver.Valuer interface, encoding the options
// as a JSON array.
func (vos VehicleOptions) Value() (driver.Value, error) {
	if vos == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]model.VehicleOption(vos))
	if err != nil {
		return nil, fmt.Errorf("encoding vehicle options: %w", err)
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface, decoding a JSON array.
func (vos *VehicleOptions) Scan(src any) error {
	var b []byte
	switch v := src.(type) {
	case nil:
		*vos = VehicleOptions{}
		return nil
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("unexpected vehicle options type: %T", src)
	}
	var opts []model.VehicleOption
	if err := json.Unmarshal(b, &opts); err != nil {
		return fmt.Errorf("decoding vehicle options: %w", err)
	}
	*vos = opts
	return nil
}
