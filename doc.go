// Package notecrypt encrypts notes client-side into opaque envelope strings
// so that storage and transport layers never see note content.
//
// A note is encrypted under a key derived from the user's secret phrase and
// a fresh random salt. The result is a self-describing envelope that carries
// everything needed for decryption except the phrase itself. Nothing is
// cached between calls: every Encrypt and Decrypt derives its own key and
// wipes it before returning.
//
// # Basic Usage
//
//	envelope, err := notecrypt.Encrypt("Buy milk", phrase)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	plaintext, err := notecrypt.Decrypt(envelope, phrase)
//	if errors.Is(err, notecrypt.ErrWrongSecretOrCorruptData) {
//	    fmt.Println(notecrypt.UserMessage(err)) // "... Check your secret phrase."
//	}
//
// # Envelope Format
//
//	legacy:    <hex salt>:<hex iv>:<base64 ciphertext>
//	versioned: v<N>.<hex salt>:<hex nonce>:<base64 ciphertext>
//
// Every envelope contains exactly two ':' delimiters and three non-empty
// fields. The version tag selects the complete parameter set:
//
//   - legacy: PBKDF2-HMAC-SHA256 (1000 iterations), AES-256-CBC with PKCS#7
//   - v1: PBKDF2-HMAC-SHA256 (600000 iterations), AES-256-GCM
//   - v2: Argon2id (t=3, 64 MiB, p=4), XChaCha20-Poly1305 (default)
//
// For v1 and v2 the header (tag, salt and nonce) is authenticated as
// associated data, and a wrong phrase or any modification yields
// ErrWrongSecretOrCorruptData.
//
// IMPORTANT: legacy envelopes are not authenticated. Decrypt can only infer a
// correct phrase from valid padding and valid non-empty UTF-8, so a wrong
// phrase is accepted with very small probability, and empty notes cannot be
// represented. Upgrade legacy envelopes with Codec.Upgrade.
//
// # Upgrades
//
//	codec, _ := notecrypt.New() // writes v2
//	if codec.NeedsUpgrade(envelope) {
//	    envelope, err = codec.Upgrade(envelope, phrase)
//	}
//
// # Sessions
//
// A Session keeps the phrase in a memguard enclave for the lifetime of a
// user session:
//
//	session, _ := notecrypt.NewSession(nil, phraseBytes)
//	defer session.Close()
//	envelope, _ := session.Encrypt("Buy milk")
package notecrypt
