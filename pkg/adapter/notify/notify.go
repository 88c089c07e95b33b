// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package notify provides the storeuc.Notifier implementations which
// show the store notifications to users. The Log notifier records them
// with the structured logger and the Writer notifier prints them as
// toast-like lines, e.g., for the CLI.
package notify

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/momeni/car-rental/pkg/core/log"
	"github.com/momeni/car-rental/pkg/core/usecase/storeuc"
)

// Log returns a notifier which logs success notifications at the info
// level and error notifications at the error level.
func Log() storeuc.Notifier {
	return storeuc.NotifierFunc(func(
		ctx context.Context, n storeuc.Notification,
	) {
		attrs := []slog.Attr{slog.String("title", n.Title)}
		if n.Level == storeuc.LevelError {
			attrs = append(attrs, log.Err("err", n.Err))
			log.Error(ctx, n.Message, attrs...)
			return
		}
		log.Info(ctx, n.Message, attrs...)
	})
}

// Writer prints notifications into an io.Writer, one line each.
// Notifications may be emitted concurrently (e.g., while all store
// collections are refreshed), so lines are written under a lock.
type Writer struct {
	mu      sync.Mutex
	w       io.Writer
	verbose bool
}

// NewWriter instantiates a Writer notifier. When verbose is false,
// only the failures are printed.
func NewWriter(w io.Writer, verbose bool) *Writer {
	return &Writer{w: w, verbose: verbose}
}

// Notify prints n like "[Error] Failed to add car: cause".
func (nw *Writer) Notify(_ context.Context, n storeuc.Notification) {
	if n.Level != storeuc.LevelError && !nw.verbose {
		return
	}
	line := fmt.Sprintf("[%s] %s", n.Title, n.Message)
	if n.Err != nil {
		line += ": " + causeOf(n.Err)
	}
	nw.mu.Lock()
	defer nw.mu.Unlock()
	fmt.Fprintln(nw.w, line)
}

// causeOf drops the "failed to ..." prefix of an *storeuc.OpError
// since the notification message says the same thing.
func causeOf(err error) string {
	if oe, ok := err.(*storeuc.OpError); ok && oe.Err != nil {
		return oe.Err.Error()
	}
	return err.Error()
}
