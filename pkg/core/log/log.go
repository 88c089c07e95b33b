// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package log is the structured logging facade of the car rental
// layers. It wraps the default log/slog logger (which is installed by
// Setup) with the Debug, Info, Warn, and Error functions taking a
// context, a message, and statically typed slog.Attr arguments, so
// simple values are logged without allocation.
//
// Attributes which are shared by a sequence of calls, such as the
// entity kind which a store collection manages or the schema version
// which is being migrated, may be attached to a context using With.
// All records which are logged with that context (or its children)
// carry them after their own attributes.
package log

import (
	"context"
	"log/slog"
	"runtime"
	"time"
)

type ctxAttrsKey struct{}

// With returns a child of ctx which carries attrs in addition to the
// attributes of ctx itself.
func With(ctx context.Context, attrs ...slog.Attr) context.Context {
	if len(attrs) == 0 {
		return ctx
	}
	parent := attrsOf(ctx)
	all := make([]slog.Attr, 0, len(parent)+len(attrs))
	all = append(all, parent...)
	all = append(all, attrs...)
	return context.WithValue(ctx, ctxAttrsKey{}, all)
}

func attrsOf(ctx context.Context) []slog.Attr {
	attrs, _ := ctx.Value(ctxAttrsKey{}).([]slog.Attr)
	return attrs
}

// Debug logs msg and attrs with the given context at the debug level.
func Debug(ctx context.Context, msg string, attrs ...slog.Attr) {
	emit(ctx, slog.LevelDebug, msg, attrs)
}

// Info logs msg and attrs with the given context at the info level.
func Info(ctx context.Context, msg string, attrs ...slog.Attr) {
	emit(ctx, slog.LevelInfo, msg, attrs)
}

// Warn logs msg and attrs with the given context at the warning level.
func Warn(ctx context.Context, msg string, attrs ...slog.Attr) {
	emit(ctx, slog.LevelWarn, msg, attrs)
}

// Error logs msg and attrs with the given context at the error level.
func Error(ctx context.Context, msg string, attrs ...slog.Attr) {
	emit(ctx, slog.LevelError, msg, attrs)
}

// emit must be called directly by the exported logging functions, so
// the source position which is recorded is their caller's.
func emit(
	ctx context.Context, level slog.Level, msg string, attrs []slog.Attr,
) {
	l := slog.Default()
	if !l.Enabled(ctx, level) {
		return
	}
	var pcs [1]uintptr
	runtime.Callers(3, pcs[:]) // runtime.Callers, emit, Info/Error/...
	r := slog.NewRecord(time.Now(), level, msg, pcs[0])
	r.AddAttrs(attrs...)
	r.AddAttrs(attrsOf(ctx)...)
	_ = l.Handler().Handle(ctx, r)
}
