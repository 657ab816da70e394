package notecrypt

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/subtle"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/chacha20poly1305"
)

// Version identifies a complete envelope parameter set: key derivation
// function and parameters, cipher, and field sizes. Parameters of a
// registered version never change; stronger settings get a new version.
type Version uint8

const (
	// VersionLegacy is the untagged format: PBKDF2-HMAC-SHA256 with 1000
	// iterations and AES-256-CBC with PKCS#7 padding. It has no
	// authentication tag.
	VersionLegacy Version = 0

	// Version1 is PBKDF2-HMAC-SHA256 with 600000 iterations and AES-256-GCM.
	Version1 Version = 1

	// Version2 is Argon2id (t=3, m=64 MiB, p=4) and XChaCha20-Poly1305.
	Version2 Version = 2

	// DefaultVersion is used for new envelopes unless WithVersion is given.
	DefaultVersion = Version2
)

const (
	versionPrefix = "v"
	legacyName    = "legacy"
)

// String returns "legacy" or the envelope tag ("v1", "v2").
func (v Version) String() string {
	if v == VersionLegacy {
		return legacyName
	}
	return versionPrefix + strconv.Itoa(int(v))
}

// ParseVersion parses the output of Version.String.
func ParseVersion(s string) (Version, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == legacyName {
		return VersionLegacy, nil
	}
	v, err := parseVersionTag(s)
	if err != nil {
		return 0, err
	}
	return v, nil
}

// parseVersionTag parses "v<digits>" and checks the version is registered.
func parseVersionTag(tag string) (Version, error) {
	digits, ok := strings.CutPrefix(tag, versionPrefix)
	if !ok || digits == "" {
		return 0, ErrInvalidFormat
	}
	n, err := strconv.ParseUint(digits, 10, 8)
	if err != nil {
		return 0, ErrInvalidFormat
	}
	v := Version(n)
	if v == VersionLegacy {
		// legacy envelopes are untagged
		return 0, ErrUnsupportedVersion
	}
	if _, ok := schemes[v]; !ok {
		return 0, ErrUnsupportedVersion
	}
	return v, nil
}

// scheme binds a Version to its primitives.
type scheme struct {
	version   Version
	saltSize  int
	nonceSize int

	// compress schemes carry a compression flag byte inside the sealed payload.
	compress bool

	// legacy schemes have no integrity check beyond padding and text decoding,
	// and reject empty results.
	legacy bool

	deriveKey func(phrase, salt []byte) []byte
	seal      func(key, nonce, plaintext, header []byte) ([]byte, error)
	open      func(key, nonce, ciphertext, header []byte) ([]byte, error)
}

var schemes = map[Version]*scheme{
	VersionLegacy: {
		version:   VersionLegacy,
		saltSize:  saltSize,
		nonceSize: aes.BlockSize,
		legacy:    true,
		deriveKey: pbkdf2SHA256(legacyIterations),
		seal:      sealCBC,
		open:      openCBC,
	},
	Version1: {
		version:   Version1,
		saltSize:  saltSize,
		nonceSize: 12,
		compress:  true,
		deriveKey: pbkdf2SHA256(v1Iterations),
		seal:      sealAEAD(newAESGCM),
		open:      openAEAD(newAESGCM),
	},
	Version2: {
		version:   Version2,
		saltSize:  saltSize,
		nonceSize: chacha20poly1305.NonceSizeX,
		compress:  true,
		deriveKey: argon2id,
		seal:      sealAEAD(chacha20poly1305.NewX),
		open:      openAEAD(chacha20poly1305.NewX),
	},
}

// schemeFor returns the registered scheme for v.
func schemeFor(v Version) (*scheme, error) {
	sc, ok := schemes[v]
	if !ok {
		return nil, ErrUnsupportedVersion
	}
	return sc, nil
}

func newAESGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// sealAEAD encrypts with the AEAD built by newAEAD. The envelope header is
// bound as associated data so the version tag, salt and nonce are
// authenticated together with the ciphertext.
func sealAEAD(newAEAD func(key []byte) (cipher.AEAD, error)) func(key, nonce, plaintext, header []byte) ([]byte, error) {
	return func(key, nonce, plaintext, header []byte) ([]byte, error) {
		aead, err := newAEAD(key)
		if err != nil {
			return nil, fmt.Errorf("create aead: %w", err)
		}
		if len(nonce) != aead.NonceSize() {
			return nil, fmt.Errorf("nonce must be %d bytes", aead.NonceSize())
		}
		return aead.Seal(nil, nonce, plaintext, header), nil
	}
}

func openAEAD(newAEAD func(key []byte) (cipher.AEAD, error)) func(key, nonce, ciphertext, header []byte) ([]byte, error) {
	return func(key, nonce, ciphertext, header []byte) ([]byte, error) {
		aead, err := newAEAD(key)
		if err != nil {
			return nil, ErrWrongSecretOrCorruptData
		}
		if len(nonce) != aead.NonceSize() || len(ciphertext) < aead.Overhead() {
			return nil, ErrWrongSecretOrCorruptData
		}
		plaintext, err := aead.Open(nil, nonce, ciphertext, header)
		if err != nil {
			return nil, ErrWrongSecretOrCorruptData
		}
		return plaintext, nil
	}
}

// sealCBC encrypts with AES-256-CBC and PKCS#7 padding. The header is unused:
// CBC carries no associated data.
func sealCBC(key, iv, plaintext, _ []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create block cipher: %w", err)
	}
	if len(iv) != aes.BlockSize {
		return nil, fmt.Errorf("iv must be %d bytes", aes.BlockSize)
	}
	padded := pkcs7Pad(plaintext, aes.BlockSize)
	out := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out, padded)
	return out, nil
}

func openCBC(key, iv, ciphertext, _ []byte) ([]byte, error) {
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 || len(iv) != aes.BlockSize {
		return nil, ErrWrongSecretOrCorruptData
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, ErrWrongSecretOrCorruptData
	}
	out := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(out, ciphertext)
	plaintext, ok := pkcs7Unpad(out, aes.BlockSize)
	if !ok {
		return nil, ErrWrongSecretOrCorruptData
	}
	return plaintext, nil
}

// pkcs7Pad always adds between 1 and blockSize bytes.
func pkcs7Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	padded := make([]byte, len(data), len(data)+n)
	copy(padded, data)
	return append(padded, bytes.Repeat([]byte{byte(n)}, n)...)
}

// pkcs7Unpad checks every padding byte before trimming.
func pkcs7Unpad(data []byte, blockSize int) ([]byte, bool) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, false
	}
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize {
		return nil, false
	}
	want := bytes.Repeat([]byte{byte(n)}, n)
	if subtle.ConstantTimeCompare(data[len(data)-n:], want) != 1 {
		return nil, false
	}
	return data[:len(data)-n], true
}
