// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package migrationuc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/momeni/car-rental/pkg/core/cerr"
	"github.com/momeni/car-rental/pkg/core/log"
	"github.com/momeni/car-rental/pkg/core/model"
	"github.com/momeni/car-rental/pkg/core/repo"
)

// ErrDowngrade indicates that the database schema is newer than the
// asked target version. Downgrading is not supported.
var ErrDowngrade = errors.New("downgrading is not supported")

// UpgradeDBUseCase represents the in place schema upgrade use case.
// Minor versions of one major version are backward compatible, so
// the upgrade only needs to add and fill new columns in the crwebN
// schema and a second database is never required.
type UpgradeDBUseCase struct {
	settings Settings // target database settings
}

// NewUpgradeDB creates an UpgradeDBUseCase instance. The target schema
// version and the database connection information are taken from the
// `s` settings.
func NewUpgradeDB(s Settings) *UpgradeDBUseCase {
	return &UpgradeDBUseCase{settings: s}
}

// Upgrade connects to the database using the normal role, reads its
// current schema version, and upgrades it to the settings schema
// version in a single transaction. The reached schema version is
// returned. An up to date schema is left unchanged. The major versions
// must match and a newer database schema causes an ErrDowngrade error.
func (uduc *UpgradeDBUseCase) Upgrade(
	ctx context.Context,
) (v model.SemVer, err error) {
	target := uduc.settings.SchemaVersion()
	p, err := uduc.settings.ConnectionPool(ctx, repo.NormalRole)
	if err != nil {
		return v, fmt.Errorf("creating DB pool for normal role: %w", err)
	}
	defer p.Close()
	err = p.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			m, err := uduc.settings.SchemaMigrator(tx)
			if err != nil {
				return fmt.Errorf("creating SchemaMigrator: %w", err)
			}
			cur, err := m.SchemaVersion(ctx)
			if err != nil {
				return fmt.Errorf("reading schema version: %w", err)
			}
			if cur[0] != target[0] {
				return &cerr.MismatchingSemVerError{target, cur}
			}
			if cur.Compare(target) > 0 {
				return fmt.Errorf("v%s to v%s: %w", cur, target, ErrDowngrade)
			}
			if cur == target {
				v = cur
				return nil
			}
			v, err = m.MigrateUp(ctx, target)
			if err != nil {
				return fmt.Errorf("migrating v%s up: %w", cur, err)
			}
			log.Info(
				ctx, "database schema is upgraded",
				slog.String("from", cur.String()),
				slog.String("to", v.String()),
			)
			return nil
		})
	})
	if err != nil {
		return model.SemVer{}, fmt.Errorf("normal connection: %w", err)
	}
	return v, nil
}

// CheckSchemaVersion verifies that the database which is accessible
// through the `p` pool has the same schema version as the `s` settings
// expect. A *cerr.MismatchingSemVerError is returned otherwise, so
// the caller can ask for an upgrade before serving requests.
func CheckSchemaVersion(
	ctx context.Context, p repo.Pool, s Settings,
) error {
	expected := s.SchemaVersion()
	return p.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			m, err := s.SchemaMigrator(tx)
			if err != nil {
				return fmt.Errorf("creating SchemaMigrator: %w", err)
			}
			actual, err := m.SchemaVersion(ctx)
			if err != nil {
				return fmt.Errorf("reading schema version: %w", err)
			}
			if actual != expected {
				return &cerr.MismatchingSemVerError{expected, actual}
			}
			return nil
		})
	})
}
