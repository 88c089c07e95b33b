// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres

import (
	"context"

	"github.com/momeni/car-rental/pkg/core/repo"
	"gorm.io/gorm"
)

// Queryer constrains the generic entityrp queries to *Conn and *Tx,
// so listing the cars runs the same code with or without a transaction.
type Queryer interface {
	*Conn | *Tx
	repo.Queryer

	// GORM returns a *gorm.DB which operates on the ctx context.
	GORM(ctx context.Context) *gorm.DB
}
