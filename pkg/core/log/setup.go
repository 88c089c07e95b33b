// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package log

import (
	"io"
	"log/slog"
)

// Setup creates a slog.Logger which writes records with at least
// the given level into w and installs it as the default logger, so
// the Debug, Info, Warn, and Error functions use it. Records are
// formatted as JSON lines if json is true, otherwise, they are
// formatted as key=value text lines. The created logger is returned
// too, so it may be passed to the frameworks which take a logger.
func Setup(w io.Writer, level slog.Level, json bool) *slog.Logger {
	opts := &slog.HandlerOptions{
		AddSource: level <= slog.LevelDebug,
		Level:     level,
	}
	var h slog.Handler
	if json {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	l := slog.New(h)
	slog.SetDefault(l)
	return l
}
