package notecrypt

import "io"

// Option is a functional option for configuring a Codec.
type Option func(*config)

// WithVersion selects the envelope version produced by Encrypt.
// Decrypt always accepts every registered version.
func WithVersion(v Version) Option {
	return func(c *config) {
		c.version = v
	}
}

// WithRandom replaces the source of salts and nonces. The reader must be
// cryptographically secure and safe for concurrent use; crypto/rand.Reader
// is the default. A read error makes Encrypt fail with ErrEncryptionFailed.
func WithRandom(r io.Reader) Option {
	return func(c *config) {
		c.random = r
	}
}

// WithMaxPlaintextSize caps the note size in bytes accepted by Encrypt and
// produced by Decrypt. Default is 10 MiB. Bounding the note bounds the
// worst-case latency of a call.
func WithMaxPlaintextSize(bytes int) Option {
	return func(c *config) {
		c.maxPlaintextSize = bytes
	}
}

// WithCompressionThreshold sets the minimum size in bytes before compression is attempted.
// Default is 1024 (1KB). Only versions after VersionLegacy compress.
func WithCompressionThreshold(bytes int) Option {
	return func(c *config) {
		c.compressionThreshold = bytes
	}
}

// WithCompressionDisabled disables compression entirely.
func WithCompressionDisabled() Option {
	return func(c *config) {
		c.compressionDisabled = true
	}
}
