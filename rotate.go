package notecrypt

// NeedsUpgrade reports whether envelope was produced by a version other than
// the one this codec writes.
//
// Note: Returns false if the envelope is malformed. Use EnvelopeVersion
// if you need to detect malformed envelopes.
func (c *Codec) NeedsUpgrade(envelope string) bool {
	v, err := EnvelopeVersion(envelope)
	if err != nil {
		return false
	}
	return v != c.cfg.version
}

// Upgrade re-encrypts envelope under the codec's version with a fresh salt
// and nonce. Envelopes already at that version are returned unchanged
// without deriving a key.
func (c *Codec) Upgrade(envelope, secretPhrase string) (string, error) {
	return c.upgrade(envelope, []byte(secretPhrase))
}

func (c *Codec) upgrade(envelope string, phrase []byte) (string, error) {
	v, err := EnvelopeVersion(envelope)
	if err != nil {
		return "", err
	}
	if v == c.cfg.version {
		return envelope, nil
	}
	return c.reseal(envelope, phrase, phrase)
}

// ChangeSecretPhrase decrypts envelope with oldPhrase and re-encrypts the
// note with newPhrase under the codec's version.
func (c *Codec) ChangeSecretPhrase(envelope, oldPhrase, newPhrase string) (string, error) {
	return c.reseal(envelope, []byte(oldPhrase), []byte(newPhrase))
}

func (c *Codec) reseal(envelope string, oldPhrase, newPhrase []byte) (string, error) {
	plaintext, err := c.decrypt(envelope, oldPhrase)
	if err != nil {
		return "", err
	}
	defer wipe(plaintext)
	return c.encrypt(plaintext, newPhrase)
}
