package notecrypt

import (
	"crypto/sha256"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/pbkdf2"
)

const (
	keySize  = 32 // 256-bit derived key
	saltSize = 16 // 128-bit salt

	legacyIterations = 1000
	v1Iterations     = 600_000

	// Argon2id parameters for Version2 (OWASP recommended minimums).
	argonTime    = 3
	argonMemory  = 64 * 1024 // 64 MiB
	argonThreads = 4
)

// DeriveKey derives the 32-byte key used by version v from a secret phrase
// and salt. The result is deterministic for a (phrase, salt, version) triple.
// The caller owns the returned slice and should wipe it when done.
func DeriveKey(secretPhrase, salt []byte, v Version) ([]byte, error) {
	sc, err := schemeFor(v)
	if err != nil {
		return nil, err
	}
	if len(salt) != sc.saltSize {
		return nil, ErrInvalidFormat
	}
	return sc.deriveKey(secretPhrase, salt), nil
}

// pbkdf2SHA256 returns a PBKDF2-HMAC-SHA256 derivation with a fixed
// iteration count.
func pbkdf2SHA256(iterations int) func(phrase, salt []byte) []byte {
	return func(phrase, salt []byte) []byte {
		return pbkdf2.Key(phrase, salt, iterations, keySize, sha256.New)
	}
}

func argon2id(phrase, salt []byte) []byte {
	return argon2.IDKey(phrase, salt, argonTime, argonMemory, argonThreads, keySize)
}

// wipe zeroes key material.
func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
