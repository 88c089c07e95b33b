// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres

import (
	"context"
	"fmt"

	"github.com/momeni/car-rental/pkg/core/repo"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Pool is a PostgreSQL connection pool which may be used concurrently.
// The web server keeps one pool of the crweb role, while the db init
// commands open one pool per role.
type Pool struct {
	*gorm.DB
}

// NewPool opens a pool for the url connection string and tests it by
// acquiring a connection. Failed and slow queries are logged by the
// core log package.
func NewPool(ctx context.Context, url string) (*Pool, error) {
	gdb, err := gorm.Open(postgres.Open(url), &gorm.Config{
		Logger: newGormLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("gorm.Open: %w", err)
	}
	pool := &Pool{DB: gdb}
	if err = pool.Conn(ctx, NoOpConnHandler); err != nil {
		pool.Close()
		return nil, fmt.Errorf("testing connection: %w", err)
	}
	return pool, nil
}

// NoOpConnHandler is a repo.ConnHandler which ignores its connection.
// Passing it to Pool.Conn checks that the pool can connect.
func NoOpConnHandler(context.Context, repo.Conn) error {
	return nil
}

// Conn runs f with a dedicated connection of p, which is returned to
// p afterwards.
func (p *Pool) Conn(ctx context.Context, f repo.ConnHandler) error {
	return p.DB.WithContext(ctx).Connection(func(c *gorm.DB) error {
		return f(ctx, &Conn{session{c}})
	})
}

// Close releases the connections of p. The gorm sessions which were
// derived from p may not be used afterwards.
func (p *Pool) Close() error {
	sqlDB, err := p.DB.DB()
	if err != nil {
		return fmt.Errorf("gorm.DB.DB: %w", err)
	}
	return sqlDB.Close()
}
