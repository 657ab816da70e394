// Package config loads the notecrypt command's settings from the environment.
package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"

	"github.com/ai8future/notecrypt"
)

// envPrefix is prepended to every variable name below.
const envPrefix = "NOTECRYPT_"

var (
	// ErrInvalidVersion indicates NOTECRYPT_VERSION is not a known envelope version.
	ErrInvalidVersion = errors.New("invalid envelope version")
	// ErrInvalidLimits indicates a non-positive size limit.
	ErrInvalidLimits = errors.New("invalid size limits")
	// ErrInvalidLogLevel indicates NOTECRYPT_LOG_LEVEL is not a zerolog level.
	ErrInvalidLogLevel = errors.New("invalid log level")
)

// Config holds the command's settings.
type Config struct {
	// SecretPhrase is the phrase notes are encrypted under.
	// Env: NOTECRYPT_SECRET_PHRASE
	SecretPhrase string `env:"SECRET_PHRASE"`

	// PhraseFile is a file holding the secret phrase; it wins over SecretPhrase.
	// Env: NOTECRYPT_PHRASE_FILE
	PhraseFile string `env:"PHRASE_FILE"`

	// Version is the envelope version written by encrypt and upgrade
	// ("legacy", "v1", "v2").
	// Env: NOTECRYPT_VERSION
	Version string `env:"VERSION" envDefault:"v2"`

	// MaxNoteSize caps the note size in bytes.
	// Env: NOTECRYPT_MAX_NOTE_SIZE
	MaxNoteSize int `env:"MAX_NOTE_SIZE" envDefault:"10485760"`

	// CompressionThreshold is the note size from which compression is tried.
	// Env: NOTECRYPT_COMPRESSION_THRESHOLD
	CompressionThreshold int `env:"COMPRESSION_THRESHOLD" envDefault:"1024"`

	// DisableCompression turns compression off.
	// Env: NOTECRYPT_DISABLE_COMPRESSION
	DisableCompression bool `env:"DISABLE_COMPRESSION"`

	// LogLevel is a zerolog level name.
	// Env: NOTECRYPT_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads the configuration from the process environment.
func Load() (*Config, error) {
	return load(env.Options{Prefix: envPrefix})
}

// LoadFrom reads the configuration from environ instead of the process
// environment. Keys include the NOTECRYPT_ prefix.
func LoadFrom(environ map[string]string) (*Config, error) {
	return load(env.Options{Prefix: envPrefix, Environment: environ})
}

func load(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("error getting env configs: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) validate() error {
	if _, err := notecrypt.ParseVersion(cfg.Version); err != nil {
		return fmt.Errorf("%w %q: %w", ErrInvalidVersion, cfg.Version, err)
	}
	if cfg.MaxNoteSize <= 0 || cfg.CompressionThreshold <= 0 {
		return ErrInvalidLimits
	}
	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidLogLevel, err)
	}
	return nil
}

// CodecOptions converts the configuration into notecrypt options.
// versionOverride, when non-empty, replaces cfg.Version.
func (cfg *Config) CodecOptions(versionOverride string) ([]notecrypt.Option, error) {
	name := cfg.Version
	if versionOverride != "" {
		name = versionOverride
	}
	v, err := notecrypt.ParseVersion(name)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrInvalidVersion, name, err)
	}

	opts := []notecrypt.Option{
		notecrypt.WithVersion(v),
		notecrypt.WithMaxPlaintextSize(cfg.MaxNoteSize),
		notecrypt.WithCompressionThreshold(cfg.CompressionThreshold),
	}
	if cfg.DisableCompression {
		opts = append(opts, notecrypt.WithCompressionDisabled())
	}
	return opts, nil
}
