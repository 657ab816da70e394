package notecrypt

// Envelope format:
//
//	legacy:    <hex salt>:<hex iv>:<base64 ciphertext>
//	versioned: v<N>.<hex salt>:<hex nonce>:<base64 ciphertext>
//
// Hex, standard base64 and the "v<N>." tag never contain the delimiter, so
// every envelope has exactly two delimiters. For AEAD versions the header
// (everything before the second delimiter) is authenticated as associated data.

import (
	"encoding/base64"
	"encoding/hex"
	"strings"
)

const (
	delimiter  = ":"
	versionSep = "."
)

// envelope is a parsed, decoded envelope.
type envelope struct {
	version    Version
	salt       []byte
	nonce      []byte
	ciphertext []byte
	header     string
}

// formatHeader assembles "<tag.><hex salt>:<hex nonce>".
func formatHeader(v Version, salt, nonce []byte) string {
	var b strings.Builder
	b.Grow(len(versionPrefix) + 4 + 2*len(salt) + 1 + 2*len(nonce))
	if v != VersionLegacy {
		b.WriteString(v.String())
		b.WriteString(versionSep)
	}
	b.WriteString(hex.EncodeToString(salt))
	b.WriteString(delimiter)
	b.WriteString(hex.EncodeToString(nonce))
	return b.String()
}

// formatEnvelope appends the encoded ciphertext to a header from formatHeader.
func formatEnvelope(header string, ciphertext []byte) string {
	return header + delimiter + base64.StdEncoding.EncodeToString(ciphertext)
}

// splitEnvelope splits s into exactly three non-empty fields.
func splitEnvelope(s string) ([3]string, error) {
	var fields [3]string
	parts := strings.Split(s, delimiter)
	if len(parts) != len(fields) {
		return fields, ErrInvalidFormat
	}
	for i, p := range parts {
		if p == "" {
			return fields, ErrInvalidFormat
		}
		fields[i] = p
	}
	return fields, nil
}

// splitVersion separates an optional "v<N>." tag from the first field.
func splitVersion(field string) (Version, string, error) {
	tag, rest, found := strings.Cut(field, versionSep)
	if !found {
		return VersionLegacy, field, nil
	}
	if rest == "" {
		return 0, "", ErrInvalidFormat
	}
	v, err := parseVersionTag(tag)
	if err != nil {
		return 0, "", err
	}
	return v, rest, nil
}

// parseEnvelope parses and decodes every field of s.
func parseEnvelope(s string) (*envelope, error) {
	fields, err := splitEnvelope(s)
	if err != nil {
		return nil, err
	}

	version, saltField, err := splitVersion(fields[0])
	if err != nil {
		return nil, err
	}
	sc, err := schemeFor(version)
	if err != nil {
		return nil, err
	}

	salt, err := decodeHexField(saltField, sc.saltSize)
	if err != nil {
		return nil, err
	}
	nonce, err := decodeHexField(fields[1], sc.nonceSize)
	if err != nil {
		return nil, err
	}
	ciphertext, err := base64.StdEncoding.Strict().DecodeString(fields[2])
	if err != nil || len(ciphertext) == 0 {
		return nil, ErrInvalidFormat
	}

	return &envelope{
		version:    version,
		salt:       salt,
		nonce:      nonce,
		ciphertext: ciphertext,
		header:     fields[0] + delimiter + fields[1],
	}, nil
}

// decodeHexField decodes a hex field that must hold exactly size bytes.
func decodeHexField(field string, size int) ([]byte, error) {
	if len(field) != hex.EncodedLen(size) {
		return nil, ErrInvalidFormat
	}
	b, err := hex.DecodeString(field)
	if err != nil {
		return nil, ErrInvalidFormat
	}
	return b, nil
}

// EnvelopeVersion reports the version of envelope without deriving a key.
// It validates the field layout but not the field contents.
func EnvelopeVersion(envelope string) (Version, error) {
	fields, err := splitEnvelope(envelope)
	if err != nil {
		return 0, err
	}
	v, _, err := splitVersion(fields[0])
	if err != nil {
		return 0, err
	}
	return v, nil
}
