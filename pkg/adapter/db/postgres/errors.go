// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/momeni/car-rental/pkg/core/cerr"
	"gorm.io/gorm"
)

// These constants are the PostgreSQL error codes which are caused by
// the client provided values (and not by the server state).
// See https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	codeInvalidTextRepresentation = "22P02"
	codeNotNullViolation          = "23502"
	codeUniqueViolation           = "23505"
	codeCheckViolation            = "23514"
)

// Classify wraps the err error (if it is not nil) with the what
// description and a cerr.Error having a relevant HTTP status code.
// Check and not-null violations are reported as bad requests, unique
// violations as conflicts, and missing records or malformed values
// (like a malformed uuid) as not found errors. Other errors are only
// wrapped with the what description.
func Classify(what string, err error) error {
	if err == nil {
		return nil
	}
	err = fmt.Errorf("%s: %w", what, err)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return cerr.NotFound(err)
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case codeCheckViolation, codeNotNullViolation:
		return cerr.BadRequest(err)
	case codeUniqueViolation:
		return cerr.Conflict(err)
	case codeInvalidTextRepresentation:
		return cerr.NotFound(err)
	default:
		return err
	}
}
