// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package log

import (
	"log/slog"

	"github.com/momeni/car-rental/pkg/core/model"
)

// Valuer returns an Attr which is resolved lazily by the slog handler,
// so settings such as the client timeout are formatted only when their
// record is enabled.
func Valuer(key string, value slog.LogValuer) slog.Attr {
	return slog.Any(key, value)
}

// Err returns an Attr with the message of the value error, or
// "no-error" for a nil error.
func Err(key string, value error) slog.Attr {
	if value == nil {
		return slog.String(key, "no-error")
	}
	return slog.String(key, value.Error())
}

// Kind returns an Attr for the given entity kind, using its plural
// noun (e.g., "cars"). Invalid kinds are logged by their number.
func Kind(k model.Kind) slog.Attr {
	if err := k.Validate(); err != nil {
		return slog.Int("kind", int(k))
	}
	return slog.String("kind", k.String())
}

// ID returns an Attr for the given entity identifier.
func ID(id string) slog.Attr {
	return slog.String("id", id)
}
