// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package healthrs realizes the health check resource.
package healthrs

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/momeni/car-rental/pkg/core/log"
	"github.com/momeni/car-rental/pkg/core/repo"
)

// Health is the health check response.
type Health struct {
	Status    string    `json:"status"`    // ok or degraded
	Timestamp time.Time `json:"timestamp"` // server time in UTC
	Database  string    `json:"database"`  // up or down
}

type resource struct {
	pool repo.Pool
}

// Register instantiates the health resource for GET /api/health.
// The database is reported as up if a trivial query can be run using
// the p pool. A down database is reported with the 503 status code.
func Register(r *gin.RouterGroup, p repo.Pool) {
	rs := &resource{pool: p}
	r.GET("health", rs.Health)
}

func (rs *resource) Health(c *gin.Context) {
	h := Health{Status: "ok", Timestamp: time.Now().UTC(), Database: "up"}
	code := http.StatusOK
	err := rs.pool.Conn(c, func(ctx context.Context, cn repo.Conn) error {
		_, err := cn.Exec(ctx, "SELECT 1")
		return err
	})
	if err != nil {
		log.Warn(c, "database health check failed", log.Err("err", err))
		h.Status, h.Database = "degraded", "down"
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, h)
}
