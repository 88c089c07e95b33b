// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package migrationuc_test

import (
	"context"
	"crypto/rand"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/momeni/car-rental/internal/test/dbcontainer"
	"github.com/momeni/car-rental/internal/test/schema"
	"github.com/momeni/car-rental/pkg/adapter/config/cfg1"
	"github.com/momeni/car-rental/pkg/adapter/config/vers"
	"github.com/momeni/car-rental/pkg/adapter/db/postgres"
	"github.com/momeni/car-rental/pkg/adapter/hash/scram"
	"github.com/momeni/car-rental/pkg/core/cerr"
	"github.com/momeni/car-rental/pkg/core/model"
	"github.com/momeni/car-rental/pkg/core/repo"
	"github.com/momeni/car-rental/pkg/core/usecase/migrationuc"
	"github.com/stretchr/testify/require"
)

var (
	v1_0 = model.SemVer{1, 0, 0}
	v1_1 = model.SemVer{1, 1, 0}
	v1_2 = model.SemVer{1, 2, 0}
)

type MigrationUseCasesTestSuite struct {
	Ctx context.Context
	*dbcontainer.DB

	dbDir  string
	hasher *scram.Mechanism
}

func TestMigrationUseCasesTestSuite(t *testing.T) {
	ctx := context.Background()
	db := dbcontainer.New(ctx, t)
	if db == nil {
		return // errors are already reported
	}
	migucts := &MigrationUseCasesTestSuite{
		Ctx: ctx,
		DB:  db,

		dbDir:  t.TempDir(),
		hasher: scram.SHA256(),
	}
	t.Run("initialization", migucts.TestInitDB)
	t.Run("upgrade", migucts.TestUpgradeDB)
}

// TestInitDB initializes one database per supported schema version
// and mode, and verifies the created tables and their contents.
func (migucts *MigrationUseCasesTestSuite) TestInitDB(t *testing.T) {
	for _, dev := range []bool{true, false} {
		for _, dbVer := range []model.SemVer{v1_0, v1_1, v1_2} {
			dev, dbVer := dev, dbVer
			name := dbName("init", dbVer, dev)
			t.Run(name, func(t *testing.T) {
				t.Parallel()
				r := require.New(t)
				c := migucts.createEmptyDB(t, name, dbVer)
				migucts.initDB(r, c, dev)
				verifySchema(migucts.Ctx, t, r, c, dbVer, dev)
			})
		}
	}
}

// TestUpgradeDB initializes v1.0 and v1.1 databases and upgrades them
// in place to the latest schema version. Repeating the upgrade must
// not change anything and an old configuration must refuse the
// upgraded database.
func (migucts *MigrationUseCasesTestSuite) TestUpgradeDB(t *testing.T) {
	for _, dev := range []bool{true, false} {
		for _, from := range []model.SemVer{v1_0, v1_1} {
			dev, from := dev, from
			name := dbName("upgrade", from, dev)
			t.Run(name, func(t *testing.T) {
				t.Parallel()
				migucts.upgrade(t, name, from, dev)
			})
		}
	}
}

func (migucts *MigrationUseCasesTestSuite) upgrade(
	t *testing.T, name string, from model.SemVer, dev bool,
) {
	r := require.New(t)
	old := migucts.createEmptyDB(t, name, from)
	migucts.initDB(r, old, dev)

	latest := *old
	latest.SetSchemaVersion(postgres.Version)
	r.Equal(v1_2, postgres.Version, "latest schema version")
	p, err := latest.ConnectionPool(migucts.Ctx, repo.NormalRole)
	r.NoError(err, "creating connection pool")
	defer p.Close()
	err = migrationuc.CheckSchemaVersion(migucts.Ctx, p, &latest)
	var mismatch *cerr.MismatchingSemVerError
	r.ErrorAs(err, &mismatch, "old schema is not served")
	r.Equal(from, mismatch.Actual())
	r.True(mismatch.Upgradable())

	v, err := migrationuc.NewUpgradeDB(&latest).Upgrade(migucts.Ctx)
	r.NoError(err, "upgrading v%s schema", from)
	r.Equal(v1_2, v)
	verifySchema(migucts.Ctx, t, r, &latest, v1_2, dev)
	r.NoError(
		migrationuc.CheckSchemaVersion(migucts.Ctx, p, &latest),
		"upgraded schema is served",
	)

	v, err = migrationuc.NewUpgradeDB(&latest).Upgrade(migucts.Ctx)
	r.NoError(err, "upgrading an up to date schema")
	r.Equal(v1_2, v)

	_, err = migrationuc.NewUpgradeDB(old).Upgrade(migucts.Ctx)
	r.ErrorIs(err, migrationuc.ErrDowngrade)
}

func dbName(prefix string, v model.SemVer, dev bool) string {
	mode := "prod"
	if dev {
		mode = "dev"
	}
	return fmt.Sprintf("%s_sch%d_%d_%d_%s", prefix, v[0], v[1], v[2], mode)
}

func (migucts *MigrationUseCasesTestSuite) initDB(
	r *require.Assertions, s migrationuc.Settings, dev bool,
) {
	iduc := migrationuc.NewInitDB(s)
	if dev {
		err := iduc.InitDev(migucts.Ctx)
		r.NoError(err, "initializing database with dev suitable data")
	} else {
		err := iduc.InitProd(migucts.Ctx)
		r.NoError(err, "initializing database with prod suitable data")
	}
}

func verifySchema(
	ctx context.Context,
	t *testing.T,
	r *require.Assertions,
	s migrationuc.Settings,
	dbVer model.SemVer,
	dev bool,
) {
	p, err := s.ConnectionPool(ctx, repo.NormalRole)
	r.NoError(err, "creating connection pool")
	defer p.Close()
	err = p.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return schema.Verify(ctx, t, c, dbVer, dev)
	})
	r.NoError(err, "verifying database schema")
}

// createEmptyDB creates the name database and an admin role for it
// with a random password. The password is written in a .pgpass file
// and a validated configuration which points to that database and
// expects the dbVer schema version is returned.
func (migucts *MigrationUseCasesTestSuite) createEmptyDB(
	t *testing.T, name string, dbVer model.SemVer,
) *cfg1.Config {
	r := require.New(t)
	roleSuffix := repo.Role("_" + name)
	u := repo.AdminRole.Suffixed(roleSuffix)
	p := randPass(r)
	err := migucts.Pool.Conn(
		migucts.Ctx, func(ctx context.Context, c repo.Conn) error {
			// The database and role creation DDL statements do not
			// support parameterized queries, nevertheless, the `name`
			// and `u` variables are trusted.
			if _, err := c.Exec(
				ctx, "CREATE DATABASE "+name,
			); err != nil {
				return fmt.Errorf("creating %q database: %w", name, err)
			}
			// The `p` password is hashed before being sent to DBMS, so
			// it may not leak even if it is recorded in some log file.
			hp, err := migucts.hasher.Hash(p, "", 15000)
			if err != nil {
				return fmt.Errorf(
					"computing scram hash of password: %w", err,
				)
			}
			// SUPERUSER is required for CREATE EXTENSION
			if _, err := c.Exec(
				ctx,
				fmt.Sprintf(
					`CREATE ROLE %s
WITH SUPERUSER LOGIN PASSWORD '%s';
GRANT ALL PRIVILEGES ON DATABASE %s TO %[1]s`,
					u, hp, name,
				),
			); err != nil {
				return fmt.Errorf("creating %q role: %w", u, err)
			}
			return nil
		},
	)
	r.NoError(err, "main connection error")
	d := filepath.Join(migucts.dbDir, name)
	r.NoError(os.Mkdir(d, 0o700), "creating %q dir", d)
	line := fmt.Sprintf(
		"%s:%d:%s:%s:%s\n", migucts.Host, migucts.Port, name, u, p,
	)
	pgpass := filepath.Join(d, ".pgpass")
	err = os.WriteFile(pgpass, []byte(line), 0o600)
	r.NoError(err, "writing %q file", pgpass)

	c := &cfg1.Config{
		Database: cfg1.Database{
			Host:       migucts.Host,
			Port:       migucts.Port,
			Name:       name,
			PassDir:    d,
			RoleSuffix: roleSuffix,
		},
		Vers: vers.Config{
			Versions: vers.Versions{
				Database: dbVer,
				Config:   cfg1.Version,
			},
		},
	}
	r.NoError(c.ValidateAndNormalize(), "validating *cfg1.Config")
	return c
}

func randPass(r *require.Assertions) string {
	b := make([]byte, 8)
	_, err := rand.Read(b)
	r.NoError(err, "generating a random password")
	return fmt.Sprintf("%x", b)
}
