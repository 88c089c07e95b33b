// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/momeni/car-rental/pkg/core/log"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SlowQueryThreshold is the elapsed time which makes a query slow.
const SlowQueryThreshold = 200 * time.Millisecond

// gormLogger writes the GORM logs by the core log package, so they
// are structured like the other records and carry the context attrs.
// Failed and slow queries are warnings. Other queries are logged at
// the debug level if level is logger.Info.
type gormLogger struct {
	level logger.LogLevel
	slow  time.Duration
}

func newGormLogger() gormLogger {
	return gormLogger{level: logger.Warn, slow: SlowQueryThreshold}
}

func (gl gormLogger) LogMode(level logger.LogLevel) logger.Interface {
	gl.level = level
	return gl
}

func (gl gormLogger) Info(ctx context.Context, msg string, args ...any) {
	if gl.level >= logger.Info {
		log.Info(ctx, fmt.Sprintf(msg, args...))
	}
}

func (gl gormLogger) Warn(ctx context.Context, msg string, args ...any) {
	if gl.level >= logger.Warn {
		log.Warn(ctx, fmt.Sprintf(msg, args...))
	}
}

func (gl gormLogger) Error(ctx context.Context, msg string, args ...any) {
	if gl.level >= logger.Error {
		log.Error(ctx, fmt.Sprintf(msg, args...))
	}
}

func (gl gormLogger) Trace(
	ctx context.Context,
	begin time.Time,
	fc func() (sql string, rowsAffected int64),
	err error,
) {
	elapsed := time.Since(begin)
	failed := err != nil && !errors.Is(err, gorm.ErrRecordNotFound)
	switch {
	case failed && gl.level >= logger.Error:
		sql, rows := fc()
		log.Warn(
			ctx, "query failed", slog.String("sql", sql),
			slog.Int64("rows", rows), slog.Duration("elapsed", elapsed),
			log.Err("err", err),
		)
	case elapsed > gl.slow && gl.level >= logger.Warn:
		sql, rows := fc()
		log.Warn(
			ctx, "slow query", slog.String("sql", sql),
			slog.Int64("rows", rows), slog.Duration("elapsed", elapsed),
		)
	case gl.level >= logger.Info:
		sql, rows := fc()
		log.Debug(
			ctx, "query", slog.String("sql", sql),
			slog.Int64("rows", rows), slog.Duration("elapsed", elapsed),
		)
	}
}
