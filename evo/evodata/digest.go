// Copyright 2026 The EVO Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package evodata

import (
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
	"strings"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/blake2s"
	"golang.org/x/crypto/sha3"

	"go.chromium.org/luci/common/errors"
)

// DigestScheme selects a strong hash which can be computed over a payload
// for identification. Digests are never stored in a container; the footer
// checksum is the only integrity code in the format.
type DigestScheme byte

// These are the available digest algorithms.
const (
	DigestNone DigestScheme = iota
	DigestSHA2_256
	DigestSHA2_512
	DigestBLAKE2s
	DigestBLAKE2b
	DigestSHA3_256
	DigestSHA3_512
)

var digestNames = map[DigestScheme]string{
	DigestNone:     "none",
	DigestSHA2_256: "sha256",
	DigestSHA2_512: "sha512",
	DigestBLAKE2s:  "blake2s",
	DigestBLAKE2b:  "blake2b",
	DigestSHA3_256: "sha3-256",
	DigestSHA3_512: "sha3-512",
}

func (d DigestScheme) String() string {
	if n, ok := digestNames[d]; ok {
		return n
	}
	return fmt.Sprintf("DigestScheme(0x%x)", byte(d))
}

// Valid returns nil iff the DigestScheme is valid.
func (d DigestScheme) Valid() error {
	if _, ok := digestNames[d]; !ok {
		return errors.Reason("unknown digest scheme 0x%x", byte(d)).Tag(ConfigError).Err()
	}
	return nil
}

// ParseDigestScheme parses the name of a digest scheme, as returned by
// DigestScheme.String.
func ParseDigestScheme(name string) (DigestScheme, error) {
	name = strings.ToLower(name)
	for d, n := range digestNames {
		if n == name {
			return d, nil
		}
	}
	return DigestNone, errors.Reason("unknown digest scheme %q", name).Tag(ConfigError).Err()
}

// Hash gets the hash.Hash associated with this scheme. It returns nil for
// DigestNone and panics for an invalid scheme.
func (d DigestScheme) Hash() hash.Hash {
	var h hash.Hash
	switch d {
	case DigestNone:
		return nil
	case DigestSHA2_256:
		h = sha256.New()
	case DigestSHA2_512:
		h = sha512.New()
	case DigestBLAKE2s:
		h, _ = blake2s.New256(nil)
	case DigestBLAKE2b:
		h, _ = blake2b.New512(nil)
	case DigestSHA3_256:
		h = sha3.New256()
	case DigestSHA3_512:
		h = sha3.New512()
	}
	if h == nil {
		panic(d.Valid())
	}
	return h
}
