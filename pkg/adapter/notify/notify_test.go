// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package notify_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/momeni/car-rental/pkg/adapter/notify"
	"github.com/momeni/car-rental/pkg/core/model"
	"github.com/momeni/car-rental/pkg/core/usecase/storeuc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	added = storeuc.Notification{
		Level: storeuc.LevelSuccess, Title: "Success",
		Message: "Car added successfully",
	}
	failed = storeuc.Notification{
		Level: storeuc.LevelError, Title: "Error",
		Message: "Failed to add car",
		Err: &storeuc.OpError{
			Verb: storeuc.VerbCreate, Kind: model.KindCar,
			Err: errors.New("400 Bad Request: Name: required"),
		},
	}
)

func ExampleWriter() {
	ctx := context.Background()
	n := notify.NewWriter(os.Stdout, true)
	n.Notify(ctx, added)
	n.Notify(ctx, failed)
	// Output:
	// [Success] Car added successfully
	// [Error] Failed to add car: 400 Bad Request: Name: required
}

func TestWriterQuiet(t *testing.T) {
	buf := &bytes.Buffer{}
	n := notify.NewWriter(buf, false)
	n.Notify(context.Background(), added)
	assert.Empty(t, buf.String(), "successes are not printed")
	n.Notify(context.Background(), failed)
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
}

func TestLog(t *testing.T) {
	old := slog.Default()
	defer slog.SetDefault(old)

	buf := &bytes.Buffer{}
	slog.SetDefault(slog.New(slog.NewJSONHandler(buf, nil)))
	notify.Log().Notify(context.Background(), failed)

	rec := map[string]any{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec), "one JSON line")
	assert.Equal(t, "ERROR", rec["level"])
	assert.Equal(t, "Failed to add car", rec["msg"])
	assert.Equal(t, "Error", rec["title"])
	assert.Equal(
		t, "failed to create car: 400 Bad Request: Name: required",
		rec["err"],
	)
}
