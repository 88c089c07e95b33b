// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package gin wraps the gin-gonic engine, so the REST resources may be
// registered on an engine which logs requests and recovers panics
// through the default slog logger.
package gin

import (
	"log/slog"

	ginslogger "github.com/FabienMht/ginslog/logger"
	ginslogrecovery "github.com/FabienMht/ginslog/recovery"
	"github.com/gin-gonic/gin"
)

type (
	HandlerFunc = gin.HandlerFunc
	Engine      = gin.Engine
)

// New returns an engine without the default gin middlewares, using
// the given ones instead.
func New(middlewares ...HandlerFunc) *Engine {
	e := gin.New()
	e.Use(middlewares...)
	return e
}

// Logger returns a middleware which writes one access log record per
// request using the default slog logger.
func Logger() HandlerFunc {
	return ginslogger.New(slog.Default())
}

// Recovery returns a middleware which recovers from panics, logs them
// with the default slog logger, and responds with 500.
func Recovery() HandlerFunc {
	return ginslogrecovery.New(slog.Default())
}
