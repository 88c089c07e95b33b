// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package restclient

import (
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/goccy/go-json"
	"github.com/momeni/car-rental/pkg/core/model"
	"github.com/momeni/car-rental/pkg/core/usecase/storeuc"
)

// maxErrBody is the maximum number of bytes which are read from an
// error response body.
const maxErrBody = 4096

// StatusError reports a non-2xx response of the REST API.
type StatusError struct {
	Verb   storeuc.Verb // attempted operation, like create
	Kind   model.Kind   // entity kind of the attempted operation
	Code   int          // HTTP status code
	Detail string       // server provided reason, may be empty
}

// Error returns the status code, its text, and the server detail like
// "404 Not Found: record not found".
func (e *StatusError) Error() string {
	s := fmt.Sprintf("%d %s", e.Code, http.StatusText(e.Code))
	if e.Detail == "" {
		return s
	}
	return s + ": " + e.Detail
}

// NotFound reports whether the server could not find the entity.
func (e *StatusError) NotFound() bool {
	return e.Code == http.StatusNotFound
}

// detail extracts a human readable reason from an error response body.
// The {"detail": ...} and {"error": ...} bodies and the validation
// errors bodies which map field names to their messages are known.
// Other bodies are returned as is.
func detail(body []byte) string {
	m := map[string]any{}
	if err := json.Unmarshal(body, &m); err != nil {
		return strings.TrimSpace(string(body))
	}
	for _, k := range []string{"detail", "error", "message"} {
		if s, ok := m[k].(string); ok && s != "" {
			return s
		}
	}
	fields := make([]string, 0, len(m))
	for k := range m {
		fields = append(fields, k)
	}
	slices.Sort(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		msgs, ok := m[f].([]any)
		if !ok {
			continue
		}
		ss := make([]string, 0, len(msgs))
		for _, msg := range msgs {
			ss = append(ss, fmt.Sprint(msg))
		}
		parts = append(parts, f+": "+strings.Join(ss, ", "))
	}
	return strings.Join(parts, "; ")
}
