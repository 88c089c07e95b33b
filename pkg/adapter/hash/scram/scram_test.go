// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package scram_test

import (
	"encoding/base64"
	"regexp"
	"strconv"
	"testing"

	"github.com/momeni/car-rental/pkg/adapter/hash/scram"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xscram "github.com/xdg-go/scram"
)

var hashPattern = regexp.MustCompile(
	`^(SCRAM-SHA-1|SCRAM-SHA-256)\$(\d+):([^$]+)\$([^:]+):(.+)$`,
)

const salt = "W22ZaJ0SNY7soEsUEjb6gQ=="

func TestHashErrors(t *testing.T) {
	m := scram.SHA256()
	_, err := m.Hash("", salt, 4096)
	assert.Error(t, err, "empty password")
	_, err = m.Hash("pencil", salt, 4095)
	assert.Error(t, err, "few iterations")
	_, err = m.Hash("pencil", "not base64!", 4096)
	assert.Error(t, err, "malformed salt")
}

func TestHashIsDeterministicForFixedSalt(t *testing.T) {
	m := scram.SHA256()
	h1, err := m.Hash("pencil", salt, 4096)
	require.NoError(t, err)
	h2, err := m.Hash("pencil", salt, 4096)
	require.NoError(t, err)
	assert.Equal(t, h1, h2)

	h3, err := m.Hash("pencil", "", 4096)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h3, "random salt")
	h4, err := m.Hash("pencil", "", 4096)
	require.NoError(t, err)
	assert.NotEqual(t, h3, h4, "random salt")
}

// TestHashAuthenticates parses the hashes as stored credentials and
// runs a complete SCRAM conversation against them.
func TestHashAuthenticates(t *testing.T) {
	for _, tc := range []struct {
		name string
		m    *scram.Mechanism
		hgf  xscram.HashGeneratorFcn
	}{
		{"SCRAM-SHA-1", scram.SHA1(), xscram.SHA1},
		{"SCRAM-SHA-256", scram.SHA256(), xscram.SHA256},
	} {
		t.Run(tc.name, func(t *testing.T) {
			r := require.New(t)
			h, err := tc.m.Hash("pencil", "", 15000)
			r.NoError(err)
			parts := hashPattern.FindStringSubmatch(h)
			r.Len(parts, 6, "hash format: %q", h)
			r.Equal(tc.name, parts[1])
			iters, err := strconv.Atoi(parts[2])
			r.NoError(err)
			r.Equal(15000, iters)
			saltBytes, err := base64.StdEncoding.DecodeString(parts[3])
			r.NoError(err)
			storedKey, err := base64.StdEncoding.DecodeString(parts[4])
			r.NoError(err)
			serverKey, err := base64.StdEncoding.DecodeString(parts[5])
			r.NoError(err)

			srv, err := tc.hgf.NewServer(func(string) (
				xscram.StoredCredentials, error,
			) {
				return xscram.StoredCredentials{
					KeyFactors: xscram.KeyFactors{
						Salt:  string(saltBytes),
						Iters: iters,
					},
					StoredKey: storedKey,
					ServerKey: serverKey,
				}, nil
			})
			r.NoError(err)
			assert.True(t, converse(t, srv, tc.hgf, "pencil"))
			assert.False(t, converse(t, srv, tc.hgf, "pen"))
		})
	}
}

func converse(
	t *testing.T,
	srv *xscram.Server,
	hgf xscram.HashGeneratorFcn,
	pass string,
) bool {
	r := require.New(t)
	c, err := hgf.NewClient("crweb", pass, "")
	r.NoError(err)
	cc := c.NewConversation()
	sc := srv.NewConversation()
	msg, err := cc.Step("")
	r.NoError(err, "client first")
	msg, err = sc.Step(msg)
	r.NoError(err, "server first")
	msg, err = cc.Step(msg)
	r.NoError(err, "client final")
	msg, err = sc.Step(msg)
	if err != nil {
		return false
	}
	_, err = cc.Step(msg)
	return err == nil && cc.Valid() && sc.Valid()
}

func TestForAuthMethod(t *testing.T) {
	m, ok := scram.ForAuthMethod(scram.DefaultAuthMethod)
	require.True(t, ok)
	assert.Equal(t, "SCRAM-SHA-256", m.Name())
	m, ok = scram.ForAuthMethod("SCRAM-SHA-1")
	require.True(t, ok)
	assert.Equal(t, "SCRAM-SHA-1", m.Name())
	_, ok = scram.ForAuthMethod("md5")
	assert.False(t, ok)
}
