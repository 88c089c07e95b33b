// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package stlmig1 provides the Initializer type for database schema
// major version 1. It creates the v1.0 tables in an existing crweb1
// schema, optionally fills them with development suitable sample
// data, and upgrades them to the asked minor version using the upmig1
// package. Therefore, a freshly initialized schema and an upgraded
// one always have the same format.
package stlmig1

import (
	"context"
	"fmt"

	"github.com/momeni/car-rental/pkg/adapter/db/postgres/migration/up/upmig1"
	"github.com/momeni/car-rental/pkg/core/model"
	"github.com/momeni/car-rental/pkg/core/repo"
)

// These constants indicate the major, minor, and patch components of
// the latest database schema version which may be initialized by this
// package.
const (
	Major = 1
	Minor = 2
	Patch = 0
)

// Initializer creates and fills the tables of a v1.x schema.
//
// Each instance of Initializer wraps and uses a single transaction of
// the destination database, but the caller is responsible to commit
// that transaction in order to finalize the initialization.
type Initializer struct {
	tx    repo.Tx // destination database transaction
	minor uint    // target minor version
}

// New creates a new Initializer instance, wrapping the given `tx`
// database transaction. The `minor` argument selects the created
// schema minor version and must not exceed the Minor constant.
// The initializer expects the database schema to exist (and to be
// in the search_path of the current role) and only tries to create
// relevant tables in that schema.
func New(tx repo.Tx, minor uint) *Initializer {
	return &Initializer{
		tx:    tx,
		minor: minor,
	}
}

// InitDevSchema creates major version 1 tables in crweb1 schema and
// fills them with a few sample cars, packages, and testimonials.
func (i *Initializer) InitDevSchema(ctx context.Context) error {
	return i.init(ctx, true)
}

// InitProdSchema creates major version 1 tables in crweb1 schema and
// leaves them empty.
func (i *Initializer) InitProdSchema(ctx context.Context) error {
	return i.init(ctx, false)
}

// MajorVersion returns the major semantic version of this Initializer
// instance. This value matches with the Major constant which is
// defined in this package.
func (i *Initializer) MajorVersion() uint {
	return Major
}

func (i *Initializer) init(ctx context.Context, dev bool) error {
	if i.minor > Minor {
		return fmt.Errorf("unsupported minor: %d", i.minor)
	}
	if _, err := i.tx.Exec(ctx, tablesV1_0); err != nil {
		return fmt.Errorf("creating v1.0 tables: %w", err)
	}
	if dev {
		if _, err := i.tx.Exec(ctx, devDataV1_0); err != nil {
			return fmt.Errorf("inserting sample rows: %w", err)
		}
	}
	if err := upmig1.Upgrade(ctx, i.tx, 0, i.minor); err != nil {
		return err
	}

	v := model.SemVer{Major, i.minor, 0}
	if i.minor == Minor {
		v[2] = Patch
	}
	return upmig1.RecordVersion(ctx, i.tx, v)
}

const tablesV1_0 = `
CREATE TABLE schema_info (
    id BOOLEAN PRIMARY KEY DEFAULT TRUE CHECK (id),
    version TEXT NOT NULL
);
INSERT INTO schema_info (version) VALUES ('1.0.0');
CREATE TABLE cars (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    name TEXT NOT NULL,
    brand TEXT NOT NULL,
    model TEXT NOT NULL,
    year INTEGER NOT NULL,
    image TEXT NOT NULL,
    price NUMERIC(10,2) NOT NULL CHECK (price >= 0),
    transmission TEXT NOT NULL,
    fuel_type TEXT NOT NULL,
    seats INTEGER NOT NULL,
    category TEXT NOT NULL,
    rating NUMERIC(2,1) NOT NULL DEFAULT 0,
    reviews_count INTEGER NOT NULL DEFAULT 0,
    status TEXT NOT NULL DEFAULT 'Available'
        CHECK (status IN ('Available', 'On Ride')),
    features TEXT[] NOT NULL DEFAULT '{}',
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE packages (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    title TEXT NOT NULL CHECK (title <> ''),
    price TEXT NOT NULL,
    pax TEXT NOT NULL,
    vehicle TEXT NOT NULL,
    organizer TEXT NOT NULL,
    image TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    locations TEXT[] NOT NULL DEFAULT '{}',
    vehicle_options JSONB NOT NULL DEFAULT '[]',
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE testimonials (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    name TEXT NOT NULL CHECK (name <> ''),
    rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
    text TEXT NOT NULL,
    avatar TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

const devDataV1_0 = `
INSERT INTO cars (
    name, brand, model, year, image, price, transmission, fuel_type,
    seats, category, rating, reviews_count, status, features, created_at
) VALUES (
    'BMW Z4', 'BMW', 'Z4', 2024,
    'https://images.example.com/cars/bmw-z4.webp', 189,
    'Automatic', 'Petrol', 2, 'Convertible', 4.8, 145, 'Available',
    ARRAY['Convertible Top', 'Sport Seats', 'Premium Audio', 'GPS'],
    now() - interval '3 minutes'
), (
    'Mercedes-Benz SL', 'Mercedes-Benz', 'SL-Class', 2024,
    'https://images.example.com/cars/mercedes-sl.webp', 249,
    'Automatic', 'Petrol', 2, 'Convertible', 4.9, 178, 'Available',
    ARRAY['Retractable Hardtop', 'Leather Interior', 'Heated Seats',
        'Surround Sound'],
    now() - interval '2 minutes'
), (
    'Porsche Boxster', 'Porsche', 'Boxster', 2024,
    'https://images.example.com/cars/porsche-boxster.webp', 229,
    'Manual', 'Petrol', 2, 'Convertible', 4.9, 156, 'On Ride',
    ARRAY['Mid-Engine', 'Sport Chrono', 'PASM Suspension', 'Bose Audio'],
    now() - interval '1 minute'
);
INSERT INTO packages (
    title, price, pax, vehicle, organizer, image, description,
    locations, vehicle_options
) VALUES (
    'Coastal Weekend', '₹14,999', '2-4', 'Sedan', 'Sea Breeze Tours',
    'https://images.example.com/packages/coastal.webp',
    'Two days along the coast with hotel pickups.',
    ARRAY['Pondicherry', 'Mahabalipuram'],
    '[{"vehicle": "Sedan", "price": "₹14,999"},
      {"vehicle": "SUV", "price": "₹18,999"}]'
);
INSERT INTO testimonials (name, rating, text, avatar) VALUES (
    'Ananya Rao', 5, 'Clean car and a smooth pickup. Will book again.',
    'AN'
);
`
