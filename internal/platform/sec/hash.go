// Copyright (c) 2026 Plinth. All rights reserved.
// Author: engineering@plinth.app

package sec

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// Password digest parameters.
const (
	// saltLength is the byte length of the random per-password salt.
	saltLength = 16

	// digestIterations is the PBKDF2 iteration count.
	digestIterations = 4096

	// digestLength is the byte length of the derived key.
	digestLength = 32
)

// HashPassword derives a salted digest of a plain-text password.
//
// # Format
//
// The stored value is "salt$digest" where both parts are lowercase hex:
// the salt is random per password, the digest is PBKDF2-SHA256 of the
// password keyed by that salt. Two hashes of the same password never match.
func HashPassword(plainTextPassword string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("sec: failed to generate salt: %w", err)
	}

	digest := pbkdf2.Key([]byte(plainTextPassword), salt, digestIterations, digestLength, sha256.New)

	return hex.EncodeToString(salt) + "$" + hex.EncodeToString(digest), nil
}

// CheckPasswordHash compares a plain-text password with its stored digest.
//
// # Fail Closed
//
// Any malformed stored value (missing separator, non-hex parts) returns
// false rather than an error. Verification must never panic or leak the
// reason for a mismatch past this boundary.
func CheckPasswordHash(plainTextPassword, existingHash string) bool {
	saltHex, digestHex, found := strings.Cut(existingHash, "$")
	if !found {
		return false
	}

	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return false
	}

	expected, err := hex.DecodeString(digestHex)
	if err != nil {
		return false
	}

	candidate := pbkdf2.Key([]byte(plainTextPassword), salt, digestIterations, digestLength, sha256.New)

	// Constant-time comparison to prevent timing attacks.
	return hmac.Equal(candidate, expected)
}
