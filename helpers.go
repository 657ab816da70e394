package notecrypt

import (
	"encoding/json"
	"fmt"
)

// EncryptJSON encrypts a JSON-serializable value, such as a note body
// together with its tags.
func EncryptJSON[T any](c *Codec, data T, secretPhrase string) (string, error) {
	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncryptionFailed, err)
	}
	defer wipe(jsonBytes)
	return c.encrypt(jsonBytes, []byte(secretPhrase))
}

// DecryptJSON decrypts and unmarshals JSON data.
func DecryptJSON[T any](c *Codec, envelope, secretPhrase string) (T, error) {
	var zero T

	plaintext, err := c.decrypt(envelope, []byte(secretPhrase))
	if err != nil {
		return zero, err
	}
	defer wipe(plaintext)

	var result T
	if err := json.Unmarshal(plaintext, &result); err != nil {
		return zero, err
	}
	return result, nil
}
