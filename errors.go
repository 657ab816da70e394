package notecrypt

import "errors"

var (
	// ErrInvalidFormat indicates the envelope does not parse into exactly three
	// non-empty fields, or a field is not valid for its encoding.
	ErrInvalidFormat = errors.New("notecrypt: invalid envelope format")

	// ErrWrongSecretOrCorruptData indicates decryption failed. The cause is
	// almost always a wrong secret phrase, but corrupted data looks the same.
	ErrWrongSecretOrCorruptData = errors.New("notecrypt: wrong secret phrase or corrupted data")

	// ErrEncryptionFailed indicates a fatal fault during encryption (no secure
	// randomness, plaintext not encodable). It must not be retried.
	ErrEncryptionFailed = errors.New("notecrypt: encryption failed")

	// ErrUnsupportedVersion indicates the envelope carries a version tag this
	// package does not know.
	ErrUnsupportedVersion = errors.New("notecrypt: unsupported envelope version")

	// ErrInvalidText indicates the plaintext is not valid UTF-8.
	ErrInvalidText = errors.New("notecrypt: plaintext is not valid UTF-8")

	// ErrEmptySecretPhrase indicates an empty secret phrase was given to Encrypt.
	ErrEmptySecretPhrase = errors.New("notecrypt: secret phrase is empty")

	// ErrPlaintextTooLarge indicates the note exceeds the configured maximum size.
	ErrPlaintextTooLarge = errors.New("notecrypt: plaintext too large")

	// ErrDecompressionFailed indicates zstd decompression of an authenticated
	// payload failed.
	ErrDecompressionFailed = errors.New("notecrypt: decompression failed")

	// ErrUnsupportedCompression indicates an unknown compression flag.
	ErrUnsupportedCompression = errors.New("notecrypt: unsupported compression algorithm")

	// ErrInvalidConfig indicates an option passed to New is out of range.
	ErrInvalidConfig = errors.New("notecrypt: invalid configuration")

	// ErrSessionClosed indicates the Session was used after Close() was called.
	ErrSessionClosed = errors.New("notecrypt: session is closed")
)

// UserMessage returns text suitable for showing an end user for err.
// Decrypt failures point at the secret phrase, the overwhelmingly likely cause.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrWrongSecretOrCorruptData):
		return "Failed to decrypt note. Check your secret phrase."
	case errors.Is(err, ErrInvalidFormat), errors.Is(err, ErrUnsupportedVersion),
		errors.Is(err, ErrDecompressionFailed), errors.Is(err, ErrUnsupportedCompression):
		return "This note could not be read. It may have been damaged or created by a newer version."
	case errors.Is(err, ErrEmptySecretPhrase):
		return "Enter your secret phrase."
	case errors.Is(err, ErrPlaintextTooLarge):
		return "This note is larger than the allowed size."
	case errors.Is(err, ErrSessionClosed):
		return "Your session has ended. Enter your secret phrase again."
	default:
		return "Failed to encrypt note."
	}
}
