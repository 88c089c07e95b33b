// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package dbcontainer starts a throwaway postgres:16 container for the
// integration test suites of the repositories, the RESTful resources,
// and the migration use cases. Containers are managed by docker or
// podman; for podman, export the socket path beforehand, e.g.,
//
//	DOCKER_HOST=unix://$XDG_RUNTIME_DIR/podman/podman.sock
//
// Integration tests are skipped by go test -short.
package dbcontainer

import (
	"context"
	"errors"
	"net"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/bitcomplete/sqltestutil"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/momeni/car-rental/pkg/adapter/db/postgres"
	"github.com/stretchr/testify/assert"
)

// StartupTimeout bounds the container start and the first connection.
const StartupTimeout = 60 * time.Second

// DB is a running container and a pool of superuser connections.
type DB struct {
	Pool *postgres.Pool
	Host string // as published on the local machine, e.g., 127.0.0.1
	Port int
}

// New starts a container and connects to it. Both are released by the
// t cleanup functions. If anything fails, the error is reported on t
// and nil is returned, so callers may simply return.
func New(ctx context.Context, t *testing.T) *DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping PostgreSQL integration tests in short mode")
	}
	startCtx, cancel := context.WithTimeout(ctx, StartupTimeout)
	defer cancel()
	pg, err := sqltestutil.StartPostgresContainer(startCtx, "16")
	if !assert.NoError(t, err, "starting postgres container") {
		return nil
	}
	t.Cleanup(func() {
		assert.NoError(t, pg.Shutdown(ctx), "stopping postgres container")
	})

	u, err := url.Parse(pg.ConnectionString())
	if !assert.NoError(t, err, "parsing container URL") {
		return nil
	}
	port, err := strconv.Atoi(u.Port())
	if !assert.NoError(t, err, "parsing container port") {
		return nil
	}
	pool, err := connect(startCtx, u.String())
	if !assert.NoError(t, err, "connecting to postgres container") {
		return nil
	}
	t.Cleanup(func() {
		assert.NoError(t, pool.Close(), "closing connections pool")
	})
	return &DB{Pool: pool, Host: u.Hostname(), Port: port}
}

// connect retries while the server is starting up or its port is not
// published yet, until ctx expires.
func connect(ctx context.Context, u string) (*postgres.Pool, error) {
	for {
		pool, err := postgres.NewPool(ctx, u)
		if err == nil {
			return pool, nil
		}
		var pgErr *pgconn.PgError
		var netErr net.Error
		starting := errors.As(err, &pgErr) && pgErr.SQLState() == "57P03"
		if ctx.Err() != nil || !(starting || errors.As(err, &netErr)) {
			return nil, err
		}
		time.Sleep(100 * time.Millisecond)
	}
}
