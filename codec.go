package notecrypt

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"unicode/utf8"
)

const defaultMaxPlaintextSize = 10 * 1024 * 1024 // 10MB

// envelopeOverhead is an upper bound on everything an envelope adds to the
// ciphertext: tag, salt, nonce, delimiters, padding or AEAD tag, flag byte.
const envelopeOverhead = 256

// Codec encrypts notes into envelopes and back.
// It holds only immutable configuration and is safe for concurrent use.
// No key material outlives a single call.
type Codec struct {
	cfg *config
}

// config holds codec configuration options.
type config struct {
	version              Version
	random               io.Reader
	maxPlaintextSize     int
	compressionThreshold int
	compressionDisabled  bool
}

// defaultConfig returns the default configuration.
func defaultConfig() *config {
	return &config{
		version:              DefaultVersion,
		random:               rand.Reader,
		maxPlaintextSize:     defaultMaxPlaintextSize,
		compressionThreshold: defaultCompressionThreshold,
	}
}

var defaultCodec = &Codec{cfg: defaultConfig()}

// New creates a Codec with the given options.
//
// Example:
//
//	codec, err := notecrypt.New(
//	    notecrypt.WithVersion(notecrypt.Version1),
//	    notecrypt.WithMaxPlaintextSize(1 << 20),
//	)
func New(opts ...Option) (*Codec, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if _, err := schemeFor(cfg.version); err != nil {
		return nil, err
	}
	if cfg.random == nil {
		return nil, fmt.Errorf("%w: random source is nil", ErrInvalidConfig)
	}
	if cfg.maxPlaintextSize <= 0 {
		return nil, fmt.Errorf("%w: max plaintext size must be > 0", ErrInvalidConfig)
	}
	if cfg.compressionThreshold <= 0 {
		return nil, fmt.Errorf("%w: compression threshold must be > 0", ErrInvalidConfig)
	}

	return &Codec{cfg: cfg}, nil
}

// Encrypt encrypts plaintext under secretPhrase with the default codec.
func Encrypt(plaintext, secretPhrase string) (string, error) {
	return defaultCodec.Encrypt(plaintext, secretPhrase)
}

// Decrypt decrypts envelope under secretPhrase with the default codec.
func Decrypt(envelope, secretPhrase string) (string, error) {
	return defaultCodec.Decrypt(envelope, secretPhrase)
}

// Version returns the envelope version this codec produces.
func (c *Codec) Version() Version {
	return c.cfg.version
}

// Encrypt turns a note into an envelope carrying everything needed for
// decryption except the secret phrase. Every call draws a fresh salt and
// nonce, so encrypting the same note twice yields different envelopes.
//
// Errors wrapping ErrEncryptionFailed are fatal and must not be retried.
func (c *Codec) Encrypt(plaintext, secretPhrase string) (string, error) {
	return c.encrypt([]byte(plaintext), []byte(secretPhrase))
}

// Decrypt reverses Encrypt. It fails with ErrInvalidFormat if envelope is
// malformed and with ErrWrongSecretOrCorruptData if the phrase is wrong or
// the data was altered; the two causes cannot be told apart.
//
// For VersionLegacy envelopes the only correctness signal is valid padding
// and valid non-empty UTF-8, so a wrong phrase is accepted with very small
// probability. Later versions are authenticated.
func (c *Codec) Decrypt(envelope, secretPhrase string) (string, error) {
	plaintext, err := c.decrypt(envelope, []byte(secretPhrase))
	if err != nil {
		return "", err
	}
	defer wipe(plaintext)
	return string(plaintext), nil
}

func (c *Codec) encrypt(plaintext, phrase []byte) (string, error) {
	if len(phrase) == 0 {
		return "", ErrEmptySecretPhrase
	}
	if len(plaintext) > c.cfg.maxPlaintextSize {
		return "", ErrPlaintextTooLarge
	}
	if !utf8.Valid(plaintext) {
		return "", fmt.Errorf("%w: %w", ErrEncryptionFailed, ErrInvalidText)
	}

	sc, err := schemeFor(c.cfg.version)
	if err != nil {
		return "", err
	}

	salt, err := c.randomBytes(sc.saltSize)
	if err != nil {
		return "", fmt.Errorf("%w: generate salt: %w", ErrEncryptionFailed, err)
	}
	nonce, err := c.randomBytes(sc.nonceSize)
	if err != nil {
		return "", fmt.Errorf("%w: generate nonce: %w", ErrEncryptionFailed, err)
	}

	key := sc.deriveKey(phrase, salt)
	defer wipe(key)

	payload := plaintext
	if sc.compress {
		payload = maybeCompress(plaintext, c.cfg.compressionThreshold, c.cfg.compressionDisabled)
	}

	header := formatHeader(sc.version, salt, nonce)
	ciphertext, err := sc.seal(key, nonce, payload, []byte(header))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncryptionFailed, err)
	}

	return formatEnvelope(header, ciphertext), nil
}

func (c *Codec) decrypt(envelope string, phrase []byte) ([]byte, error) {
	if len(envelope) > c.maxEnvelopeSize() {
		return nil, fmt.Errorf("%w: envelope exceeds size limit", ErrInvalidFormat)
	}

	env, err := parseEnvelope(envelope)
	if err != nil {
		return nil, err
	}
	sc, err := schemeFor(env.version)
	if err != nil {
		return nil, err
	}

	key := sc.deriveKey(phrase, env.salt)
	defer wipe(key)

	plaintext, err := sc.open(key, env.nonce, env.ciphertext, []byte(env.header))
	if err != nil {
		return nil, err
	}

	if sc.compress {
		plaintext, err = decompress(plaintext, c.cfg.maxPlaintextSize)
		if err != nil {
			return nil, err
		}
	}

	if !utf8.Valid(plaintext) {
		return nil, ErrWrongSecretOrCorruptData
	}
	if sc.legacy && len(plaintext) == 0 {
		return nil, ErrWrongSecretOrCorruptData
	}
	if len(plaintext) > c.cfg.maxPlaintextSize {
		return nil, ErrPlaintextTooLarge
	}

	return plaintext, nil
}

// maxEnvelopeSize bounds the input accepted by Decrypt so a hostile envelope
// cannot force a huge allocation before key derivation.
func (c *Codec) maxEnvelopeSize() int {
	return base64.StdEncoding.EncodedLen(c.cfg.maxPlaintextSize+envelopeOverhead) + envelopeOverhead
}

// randomBytes reads n bytes from the configured random source.
func (c *Codec) randomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(c.cfg.random, b); err != nil {
		return nil, err
	}
	return b, nil
}
