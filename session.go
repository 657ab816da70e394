package notecrypt

import (
	"fmt"
	"sync"

	"github.com/awnumar/memguard"
)

// Session holds a secret phrase for the lifetime of a user session and
// encrypts and decrypts notes with it. The phrase is kept in a memguard
// enclave (encrypted, outside the Go heap) and is only decrypted into locked
// memory for the duration of a single call.
//
// A Session is safe for concurrent use.
type Session struct {
	codec *Codec

	mu     sync.RWMutex
	phrase *memguard.Enclave // nil after Close
}

// NewSession seals secretPhrase into a new Session using codec (the default
// codec if nil). secretPhrase is wiped before NewSession returns, so the
// caller must not reuse it.
func NewSession(codec *Codec, secretPhrase []byte) (*Session, error) {
	if len(secretPhrase) == 0 {
		return nil, ErrEmptySecretPhrase
	}
	if codec == nil {
		codec = defaultCodec
	}
	return &Session{
		codec:  codec,
		phrase: memguard.NewEnclave(secretPhrase),
	}, nil
}

// withPhrase opens the enclave for the duration of fn.
func (s *Session) withPhrase(fn func(phrase []byte) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.phrase == nil {
		return ErrSessionClosed
	}
	buf, err := s.phrase.Open()
	if err != nil {
		return fmt.Errorf("notecrypt: open session phrase: %w", err)
	}
	defer buf.Destroy()

	return fn(buf.Bytes())
}

// Encrypt encrypts plaintext with the session's phrase.
func (s *Session) Encrypt(plaintext string) (string, error) {
	var envelope string
	err := s.withPhrase(func(phrase []byte) error {
		var err error
		envelope, err = s.codec.encrypt([]byte(plaintext), phrase)
		return err
	})
	return envelope, err
}

// Decrypt decrypts envelope with the session's phrase.
func (s *Session) Decrypt(envelope string) (string, error) {
	var plaintext string
	err := s.withPhrase(func(phrase []byte) error {
		b, err := s.codec.decrypt(envelope, phrase)
		if err != nil {
			return err
		}
		plaintext = string(b)
		wipe(b)
		return nil
	})
	return plaintext, err
}

// Upgrade re-encrypts envelope under the codec's version if it is older.
func (s *Session) Upgrade(envelope string) (string, error) {
	var upgraded string
	err := s.withPhrase(func(phrase []byte) error {
		var err error
		upgraded, err = s.codec.upgrade(envelope, phrase)
		return err
	})
	return upgraded, err
}

// Codec returns the codec the session encrypts with.
func (s *Session) Codec() *Codec {
	return s.codec
}

// Close releases the phrase. After calling Close every method fails with
// ErrSessionClosed. Close is idempotent.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phrase = nil
}
