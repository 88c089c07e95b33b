// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package cfg1

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/momeni/car-rental/pkg/adapter/db/postgres"
	"github.com/momeni/car-rental/pkg/adapter/db/postgres/schemarp"
	"github.com/momeni/car-rental/pkg/adapter/hash/scram"
	"github.com/momeni/car-rental/pkg/core/log"
	"github.com/momeni/car-rental/pkg/core/repo"
	scrami "github.com/momeni/car-rental/pkg/core/scram"
	"github.com/momeni/car-rental/pkg/core/usecase/migrationuc"
)

// ErrNoPassword indicates that a pass-file has no line for the asked
// host, port, database, and role.
var ErrNoPassword = errors.New("no matching password line")

// Database contains the database related configuration settings.
type Database struct {
	Host    string // domain name or IP address of the DBMS server
	Port    int    // port number of the DBMS server
	Name    string // database name, like crweb
	PassDir string `yaml:"pass-dir"` // path of the passwords dir

	// URL is an optional connection URL for the normal role which
	// replaces the pass-file lookup. It is usually taken from the
	// DATABASE_URL environment variable. The admin role always uses
	// the pass-file since it needs a distinct password.
	URL string `yaml:"url,omitempty"`

	// RoleSuffix specifies a possibly empty suffix for the database
	// role names. Normally, repo.AdminRole and repo.NormalRole roles
	// are used. In the parallel test cases, it is required to create
	// multiple non-colliding roles in the same database cluster and
	// so having a unique (per test) role suffix helps with parallelism.
	RoleSuffix repo.Role `yaml:"role-suffix,omitempty"`

	// AuthMethod specifies the database authentication method name.
	// Currently, only scram-sha-1 and scram-sha-256 methods are
	// supported. The scram-sha-256 is the default value.
	AuthMethod string `yaml:"auth-method,omitempty"`

	hasher scrami.Hasher `yaml:"-"`
}

// ConnectionPool creates a database connection pool using the
// connection information which are kept in the `d` settings.
// Initially, the .pgpass file in the d.PassDir folder is checked
// which should conform with the pgpass format with lines like this:
//
//	host:port:dbname:role:password
//
// If a database connection could be established, created pool and nil
// error will be returned. Otherwise, passwords might have been updated
// during a previous incomplete initialization. So the .pgpass.new
// file in the same d.PassDir folder is checked too. If a connection
// could be established successfully, the .pgpass.new will be moved to
// the .pgpass file, so the .pgpass.new file may be overwritten safely
// by the subsequent initialization operations.
//
// The `d.RoleSuffix` will be appended to the given `r` role name too.
// If d.URL is set, it is used for the repo.NormalRole as is.
func (d Database) ConnectionPool(
	ctx context.Context, r repo.Role,
) (repo.Pool, error) {
	if r == repo.NormalRole && d.URL != "" {
		p, err := postgres.NewPool(ctx, d.URL)
		if err != nil {
			return nil, fmt.Errorf("using the database url: %w", err)
		}
		return p, nil
	}
	path := filepath.Join(d.PassDir, ".pgpass")
	u, err := d.ConnectionURL(r, path)
	if err != nil {
		return nil, fmt.Errorf("using %q pass-file: %w", path, err)
	}
	p, err := postgres.NewPool(ctx, u)
	if err == nil {
		return p, nil
	}
	newPath := filepath.Join(d.PassDir, ".pgpass.new")
	log.Warn(
		ctx, "trying the new pass-file",
		log.Err("err", err),
	)
	u, err = d.ConnectionURL(r, newPath)
	if err != nil {
		return nil, fmt.Errorf("using %q pass-file: %w", newPath, err)
	}
	p, err = postgres.NewPool(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("can use neither pass-file: %w", err)
	}
	if err = os.Rename(newPath, path); err != nil {
		p.Close()
		return nil, fmt.Errorf("os.Rename: %w", err)
	}
	return p, nil
}

// ConnectionURL returns the database connection URL embedding the host,
// port, role name, database name, and password value. These items are
// directly taken from the `d` settings, but the role name which is
// specified by the `r` argument (and suffixed by d.RoleSuffix) and the
// password value which is read from the given `path` file. Returned URL
// has the postgresql scheme.
// The `path` file may contain empty or `#`-commented lines in addition
// to the password specifying lines.
func (d Database) ConnectionURL(
	r repo.Role, path string,
) (string, error) {
	passLines, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading pass-file: %w", err)
	}
	r = r.Suffixed(d.RoleSuffix)
	prfx := fmt.Sprintf("%s:%d:%s:%s:", d.Host, d.Port, d.Name, r)
	var pass string
	for _, line := range strings.Split(string(passLines), "\n") {
		if line == "" || line[0] == '#' {
			continue
		}
		if strings.HasPrefix(line, prfx) {
			pass = line[len(prfx):]
			break
		}
	}
	if pass == "" {
		return "", ErrNoPassword
	}
	u := url.URL{
		Scheme: "postgresql",
		User:   url.UserPassword(string(r), pass),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.Name,
	}
	return u.String(), nil
}

// ConnectionInfo returns the host, port, and database name of the
// connection information which are kept in this Database instance.
func (d Database) ConnectionInfo() (dbName, host string, port int) {
	return d.Name, d.Host, d.Port
}

// NewSchemaRepo instantiates a fresh Schema repository.
// Role names are suffixed by d.RoleSuffix and role passwords are hashed
// based on d.AuthMethod. The ValidateAndNormalize method is expected to
// be called beforehand, so the hasher is created.
func (d Database) NewSchemaRepo() repo.Schema {
	return schemarp.New(d.RoleSuffix, d.hasher)
}

// RenewPasswords generates new secure passwords for the given roles
// and after recording them in a temporary file (i.e., .pgpass.new file
// in the `d.PassDir` directory), will use the `change` function in
// order to update the passwords of those `roles` in the database too.
// The `change` function argument should perform the update operation
// in a transaction which may or may not be committed when the
// RenewPasswords function returns. In case of a successful commitment,
// the temporary passwords file should be moved over the main passwords
// file (i.e., .pgpass file in the `d.PassDir` directory) using the
// returned finalizer function.
//
// The `d.RoleSuffix` will be appended to the role names which are
// written in the pass-file. The `change` function receives the
// unsuffixed roles.
func (d Database) RenewPasswords(
	ctx context.Context,
	change migrationuc.PasswordsChanger,
	roles ...repo.Role,
) (finalizer func() error, err error) {
	passwords := make([]string, len(roles))
	b := make([]byte, 16) // 128 bits
	enc := base64.RawStdEncoding
	p := make([]byte, enc.EncodedLen(len(b)))
	prfx := fmt.Sprintf("%s:%d:%s", d.Host, d.Port, d.Name)
	lines := make([]string, len(passwords))
	for i, r := range roles {
		if _, err = rand.Read(b); err != nil {
			return nil, fmt.Errorf("rand.Read for i=%d: %w", i, err)
		}
		enc.Encode(p, b)
		passwords[i] = string(p)
		r = r.Suffixed(d.RoleSuffix)
		lines[i] = fmt.Sprintf("%s:%s:%s\n", prfx, r, passwords[i])
	}
	orgPath := filepath.Join(d.PassDir, ".pgpass")
	newPath := filepath.Join(d.PassDir, ".pgpass.new")
	finalizer = func() error {
		return os.Rename(newPath, orgPath)
	}
	err = os.WriteFile(newPath, []byte(strings.Join(lines, "")), 0o600)
	if err != nil {
		return nil, fmt.Errorf("writing %q file: %w", newPath, err)
	}
	if err = change(ctx, roles, passwords); err != nil {
		return nil, fmt.Errorf("passwords change callback: %w", err)
	}
	return finalizer, nil
}

// ValidateAndNormalize validates the database settings and creates
// the passwords hasher. It takes a pointer receiver since the empty
// AuthMethod is replaced by its default value.
func (d *Database) ValidateAndNormalize() error {
	if d.AuthMethod == "" {
		d.AuthMethod = scram.DefaultAuthMethod
	}
	m, ok := scram.ForAuthMethod(d.AuthMethod)
	if !ok {
		return fmt.Errorf(
			"unsupported database authentication method: %q",
			d.AuthMethod,
		)
	}
	d.hasher = m
	if d.URL == "" && d.PassDir == "" {
		return errors.New("either pass-dir or url must be given")
	}
	return nil
}
