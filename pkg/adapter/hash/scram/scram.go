// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package scram hashes the database role passwords in the SCRAM
// stored credentials format which PostgreSQL accepts in the CREATE
// ROLE and ALTER ROLE statements, using the github.com/xdg-go/scram
// module. The admin and crweb role passwords which are renewed by the
// db init commands are sent to the database server only in this form.
package scram

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/xdg-go/scram"
)

// DefaultAuthMethod is used when the configuration file leaves the
// database auth-method empty.
const DefaultAuthMethod = "scram-sha-256"

// MinIters is the minimum PBKDF2 iterations count which Hash accepts.
const MinIters = 4096

// Mechanism hashes passwords with a fixed underlying hash function.
// It implements the pkg/core/scram.Hasher interface.
type Mechanism struct {
	hgf  scram.HashGeneratorFcn
	size int // bytes of the hash output, also used as the salt size
	name string
}

// SHA1 returns the SCRAM-SHA-1 mechanism.
func SHA1() *Mechanism {
	return &Mechanism{hgf: scram.SHA1, size: 20, name: "SCRAM-SHA-1"}
}

// SHA256 returns the SCRAM-SHA-256 mechanism.
func SHA256() *Mechanism {
	return &Mechanism{hgf: scram.SHA256, size: 32, name: "SCRAM-SHA-256"}
}

// ForAuthMethod returns the mechanism of a PostgreSQL authentication
// method name, i.e., scram-sha-1 or scram-sha-256 (case-insensitive).
// The ok is false for other methods.
func ForAuthMethod(method string) (m *Mechanism, ok bool) {
	switch strings.ToLower(method) {
	case "scram-sha-1":
		return SHA1(), true
	case "scram-sha-256":
		return SHA256(), true
	}
	return nil, false
}

// Name returns the mechanism name as it prefixes the hash strings.
func (m *Mechanism) Name() string {
	return m.name
}

// Hash computes the stored credentials of the pass password as
//
//	SCRAM-{SHA-X}${iters}:{b64-salt}${b64-storedKey}:{b64-serverKey}
//
// The pass is normalized by SASLprep (RFC 4013) and must be non-empty.
// The salt is a base64 string, and a random salt is generated if it
// is empty. The iters must be at least MinIters.
func (m *Mechanism) Hash(pass, salt string, iters int) (string, error) {
	if pass == "" {
		return "", errors.New("password must be non-empty")
	}
	if iters < MinIters {
		return "", fmt.Errorf(
			"iters (%d) is less than %d", iters, MinIters,
		)
	}
	if salt == "" {
		var err error
		if salt, err = m.randomSalt(); err != nil {
			return "", err
		}
	}
	rawSalt, err := base64.StdEncoding.DecodeString(salt)
	if err != nil {
		return "", fmt.Errorf("decoding base64 salt: %w", err)
	}
	// user and authzID do not affect the stored credentials
	c, err := m.hgf.NewClient("crweb", pass, "")
	if err != nil {
		return "", fmt.Errorf("creating SCRAM client: %w", err)
	}
	sc := c.GetStoredCredentials(scram.KeyFactors{
		Salt:  string(rawSalt),
		Iters: iters,
	})
	enc := base64.StdEncoding.EncodeToString
	return fmt.Sprintf(
		"%s$%d:%s$%s:%s",
		m.name, iters, salt, enc(sc.StoredKey), enc(sc.ServerKey),
	), nil
}

func (m *Mechanism) randomSalt() (string, error) {
	b := make([]byte, m.size)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("creating random salt: %w", err)
	}
	return base64.StdEncoding.EncodeToString(b), nil
}
