package notecrypt

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewSession_WipesInput(t *testing.T) {
	phrase := []byte(testPhrase)

	session, err := NewSession(nil, phrase)
	require.NoError(t, err)
	defer session.Close()

	require.Equal(t, make([]byte, len(testPhrase)), phrase)
	require.Equal(t, DefaultVersion, session.Codec().Version())
}

func TestNewSession_EmptyPhrase(t *testing.T) {
	_, err := NewSession(nil, nil)
	require.ErrorIs(t, err, ErrEmptySecretPhrase)

	_, err = NewSession(nil, []byte{})
	require.ErrorIs(t, err, ErrEmptySecretPhrase)
}

func TestSession_RoundTrip(t *testing.T) {
	codec := newTestCodec(t, Version1)
	session, err := NewSession(codec, []byte(testPhrase))
	require.NoError(t, err)
	defer session.Close()

	envelope, err := session.Encrypt("Buy milk")
	require.NoError(t, err)

	// interoperates with the stateless API
	plaintext, err := codec.Decrypt(envelope, testPhrase)
	require.NoError(t, err)
	require.Equal(t, "Buy milk", plaintext)

	plaintext, err = session.Decrypt(envelope)
	require.NoError(t, err)
	require.Equal(t, "Buy milk", plaintext)
}

func TestSession_WrongPhrase(t *testing.T) {
	codec := newTestCodec(t, Version1)
	envelope, err := codec.Encrypt("Buy milk", testPhrase)
	require.NoError(t, err)

	session, err := NewSession(codec, []byte(wrongPhrase))
	require.NoError(t, err)
	defer session.Close()

	_, err = session.Decrypt(envelope)
	require.ErrorIs(t, err, ErrWrongSecretOrCorruptData)
}

func TestSession_Upgrade(t *testing.T) {
	legacyEnvelope, err := newTestCodec(t, VersionLegacy).Encrypt("Buy milk", testPhrase)
	require.NoError(t, err)

	session, err := NewSession(newTestCodec(t, Version1), []byte(testPhrase))
	require.NoError(t, err)
	defer session.Close()

	upgraded, err := session.Upgrade(legacyEnvelope)
	require.NoError(t, err)

	v, err := EnvelopeVersion(upgraded)
	require.NoError(t, err)
	require.Equal(t, Version1, v)

	plaintext, err := session.Decrypt(upgraded)
	require.NoError(t, err)
	require.Equal(t, "Buy milk", plaintext)
}

func TestSession_Close(t *testing.T) {
	session, err := NewSession(newTestCodec(t, VersionLegacy), []byte(testPhrase))
	require.NoError(t, err)

	envelope, err := session.Encrypt("Buy milk")
	require.NoError(t, err)

	session.Close()
	session.Close() // idempotent

	_, err = session.Encrypt("Buy milk")
	require.ErrorIs(t, err, ErrSessionClosed)

	_, err = session.Decrypt(envelope)
	require.ErrorIs(t, err, ErrSessionClosed)

	_, err = session.Upgrade(envelope)
	require.ErrorIs(t, err, ErrSessionClosed)
}

func TestSession_Concurrent(t *testing.T) {
	session, err := NewSession(newTestCodec(t, VersionLegacy), []byte(testPhrase))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			envelope, err := session.Encrypt("Buy milk")
			if err != nil {
				// only once the session is closed
				require.ErrorIs(t, err, ErrSessionClosed)
				return
			}
			_, err = session.Decrypt(envelope)
			if err != nil {
				require.ErrorIs(t, err, ErrSessionClosed)
			}
		}()
	}
	session.Close()
	wg.Wait()
}
