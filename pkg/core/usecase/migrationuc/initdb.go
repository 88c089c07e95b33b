// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package migrationuc

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/momeni/car-rental/pkg/core/log"
	"github.com/momeni/car-rental/pkg/core/repo"
)

// InitDBUseCase (re)creates the crwebN schema of the configured
// database, where N is the major version of its schema version, and
// fills it by the development or production contents.
//
// Initialization has two phases. First, the admin role drops and
// creates the schema, creates the crweb role if missing, grants it
// the schema, and renews both roles passwords in one transaction.
// New passwords are written to .pgpass.new before the transaction
// and moved over .pgpass after its commit, so a failed run can be
// repeated. Second, the crweb role creates the tables, records the
// schema version, and inserts the sample rows (in dev mode only).
type InitDBUseCase struct {
	settings   Settings
	schemaRepo repo.Schema
}

// NewInitDB creates an InitDBUseCase for the ss database.
func NewInitDB(ss Settings) *InitDBUseCase {
	return &InitDBUseCase{
		settings:   ss,
		schemaRepo: ss.NewSchemaRepo(),
	}
}

// InitProd initializes an empty schema for production.
func (iduc *InitDBUseCase) InitProd(ctx context.Context) error {
	return iduc.initDB(ctx, false)
}

// InitDev initializes a schema with a few sample cars, tour packages,
// and testimonials for development.
func (iduc *InitDBUseCase) InitDev(ctx context.Context) error {
	return iduc.initDB(ctx, true)
}

func (iduc *InitDBUseCase) initDB(ctx context.Context, dev bool) error {
	v := iduc.settings.SchemaVersion()
	sn := SchemaName(v[0])
	ctx = log.With(
		ctx, slog.String("schema", sn), slog.String("version", v.String()),
	)
	if err := iduc.prepareSchema(ctx, sn); err != nil {
		return fmt.Errorf("preparing %q schema: %w", sn, err)
	}
	log.Debug(ctx, "empty schema is created and passwords are renewed")

	p, err := iduc.settings.ConnectionPool(ctx, repo.NormalRole)
	if err != nil {
		return fmt.Errorf("creating DB pool for normal role: %w", err)
	}
	defer p.Close()
	err = p.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			si, err := iduc.settings.SchemaInitializer(tx)
			if err != nil {
				return fmt.Errorf("creating SchemaInitializer: %w", err)
			}
			if dev {
				return si.InitDevSchema(ctx)
			}
			return si.InitProdSchema(ctx)
		})
	})
	if err != nil {
		return fmt.Errorf("creating tables (dev=%v): %w", dev, err)
	}
	log.Info(ctx, "database is initialized", slog.Bool("dev", dev))
	return nil
}

// prepareSchema runs the admin phase of initDB for the sn schema.
func (iduc *InitDBUseCase) prepareSchema(
	ctx context.Context, sn string,
) error {
	p, err := iduc.settings.ConnectionPool(ctx, repo.AdminRole)
	if err != nil {
		return fmt.Errorf("creating DB pool for admin: %w", err)
	}
	defer p.Close()
	var finalizer func() error
	err = p.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			q := iduc.schemaRepo.Tx(tx)
			steps := []struct {
				name string
				run  func() error
			}{
				{"dropping schema", func() error {
					return q.DropIfExists(ctx, sn)
				}},
				{"creating schema", func() error {
					return q.CreateSchema(ctx, sn)
				}},
				{"creating normal role", func() error {
					return q.CreateRoleIfNotExists(ctx, repo.NormalRole)
				}},
				{"granting schema to normal role", func() error {
					return q.GrantPrivileges(ctx, sn, repo.NormalRole)
				}},
				{"setting search_path of normal role", func() error {
					return q.SetSearchPath(ctx, sn, repo.NormalRole)
				}},
				{"renewing passwords", func() (err error) {
					finalizer, err = iduc.settings.RenewPasswords(
						ctx, q.ChangePasswords,
						repo.AdminRole, repo.NormalRole,
					)
					return err
				}},
			}
			for _, s := range steps {
				if err := s.run(); err != nil {
					return fmt.Errorf("%s: %w", s.name, err)
				}
			}
			return nil
		})
	})
	if err != nil {
		return fmt.Errorf("admin connection: %w", err)
	}
	if err = finalizer(); err != nil {
		return fmt.Errorf("replacing .pgpass file: %w", err)
	}
	return nil
}

// SchemaName returns crwebN for the major version N.
func SchemaName(major uint) string {
	return fmt.Sprintf("crweb%d", major)
}
