// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package settings

import (
	"errors"
	"log/slog"
	"strings"
	"time"
)

// Duration is a time.Duration which is written in the configuration
// file as a string, e.g., "timeout: 1m30s".
type Duration time.Duration

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// UnmarshalText parses data by time.ParseDuration. The d is only
// updated on success.
func (d *Duration) UnmarshalText(data []byte) error {
	parsed, err := time.ParseDuration(string(data))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// Marshal formats d like time.Duration does, without its zero minutes
// and seconds suffixes, e.g., "10s", "5m", or "2h". A nil d gives nil.
func (d *Duration) Marshal() *string {
	if d == nil {
		return nil
	}
	s := d.Std().String()
	for _, zero := range []string{"m0s", "h0m"} {
		if strings.HasSuffix(s, zero) {
			s = s[:len(s)-2]
		}
	}
	return &s
}

// MarshalText implements encoding.TextMarshaler by Marshal.
func (d *Duration) MarshalText() ([]byte, error) {
	s := d.Marshal()
	if s == nil {
		return nil, errors.New("nil duration")
	}
	return []byte(*s), nil
}

// LogValue implements slog.LogValuer.
func (d *Duration) LogValue() slog.Value {
	if d == nil {
		return slog.StringValue("nil-duration")
	}
	return slog.DurationValue(d.Std())
}
