package notecrypt

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeriveKey_Deterministic(t *testing.T) {
	salt := bytes.Repeat([]byte{0xAB}, saltSize)

	for _, v := range allVersions {
		t.Run(v.String(), func(t *testing.T) {
			k1, err := DeriveKey([]byte(testPhrase), salt, v)
			require.NoError(t, err)
			k2, err := DeriveKey([]byte(testPhrase), salt, v)
			require.NoError(t, err)

			require.Len(t, k1, keySize)
			require.Equal(t, k1, k2)
		})
	}
}

func TestDeriveKey_DifferentInputs(t *testing.T) {
	salt1 := bytes.Repeat([]byte{0x01}, saltSize)
	salt2 := bytes.Repeat([]byte{0x02}, saltSize)

	for _, v := range allVersions {
		t.Run(v.String(), func(t *testing.T) {
			base, err := DeriveKey([]byte(testPhrase), salt1, v)
			require.NoError(t, err)

			otherSalt, err := DeriveKey([]byte(testPhrase), salt2, v)
			require.NoError(t, err)
			require.NotEqual(t, base, otherSalt, "different salts should produce different keys")

			otherPhrase, err := DeriveKey([]byte(wrongPhrase), salt1, v)
			require.NoError(t, err)
			require.NotEqual(t, base, otherPhrase, "different phrases should produce different keys")
		})
	}
}

func TestDeriveKey_VersionsAreSeparated(t *testing.T) {
	salt := bytes.Repeat([]byte{0x11}, saltSize)

	legacy, err := DeriveKey([]byte(testPhrase), salt, VersionLegacy)
	require.NoError(t, err)
	v1, err := DeriveKey([]byte(testPhrase), salt, Version1)
	require.NoError(t, err)
	v2, err := DeriveKey([]byte(testPhrase), salt, Version2)
	require.NoError(t, err)

	require.NotEqual(t, legacy, v1)
	require.NotEqual(t, legacy, v2)
	require.NotEqual(t, v1, v2)
}

func TestDeriveKey_InvalidSalt(t *testing.T) {
	for _, size := range []int{0, 8, 15, 17, 32} {
		_, err := DeriveKey([]byte(testPhrase), make([]byte, size), Version2)
		require.ErrorIs(t, err, ErrInvalidFormat)
	}
}

func TestDeriveKey_UnknownVersion(t *testing.T) {
	_, err := DeriveKey([]byte(testPhrase), make([]byte, saltSize), Version(42))
	require.ErrorIs(t, err, ErrUnsupportedVersion)
}

// TestDeriveKey_KnownVector pins PBKDF2-HMAC-SHA256 against RFC 7914 §11.
// If it changes, every stored legacy and v1 envelope becomes unreadable.
func TestDeriveKey_KnownVector(t *testing.T) {
	got := pbkdf2SHA256(1)([]byte("passwd"), []byte("salt"))
	want, err := hex.DecodeString("55ac046e56e3089fec1691c22544b605f94185216dde0465e68b9d57c20dacbc")
	require.NoError(t, err)
	require.Equal(t, want, got,
		"key derivation changed - this breaks backward compatibility")
}

func TestWipe(t *testing.T) {
	b := []byte("sensitive")
	wipe(b)
	require.Equal(t, make([]byte, len("sensitive")), b)

	wipe(nil) // must not panic
}
