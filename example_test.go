package notecrypt_test

import (
	"errors"
	"fmt"

	"github.com/ai8future/notecrypt"
)

func Example() {
	phrase := "correct horse battery staple"

	envelope, err := notecrypt.Encrypt("Buy milk", phrase)
	if err != nil {
		panic(err)
	}

	plaintext, err := notecrypt.Decrypt(envelope, phrase)
	if err != nil {
		panic(err)
	}
	fmt.Println(plaintext)

	_, err = notecrypt.Decrypt(envelope, "wrong phrase")
	fmt.Println(errors.Is(err, notecrypt.ErrWrongSecretOrCorruptData))
	fmt.Println(notecrypt.UserMessage(err))

	// Output:
	// Buy milk
	// true
	// Failed to decrypt note. Check your secret phrase.
}

func Example_malformedEnvelope() {
	_, err := notecrypt.Decrypt("aa:bb", "correct horse battery staple")
	fmt.Println(errors.Is(err, notecrypt.ErrInvalidFormat))
	// Output: true
}

func Example_upgrade() {
	phrase := "correct horse battery staple"

	// Phase 1: an older client wrote a legacy envelope
	legacy, _ := notecrypt.New(notecrypt.WithVersion(notecrypt.VersionLegacy))
	oldEnvelope, _ := legacy.Encrypt("secret note", phrase)

	// Phase 2: the current client reads it and upgrades it
	codec, _ := notecrypt.New(notecrypt.WithVersion(notecrypt.Version1))

	data, _ := codec.Decrypt(oldEnvelope, phrase)
	fmt.Println("Old data:", data)
	fmt.Println("Needs upgrade:", codec.NeedsUpgrade(oldEnvelope))

	newEnvelope, _ := codec.Upgrade(oldEnvelope, phrase)
	v, _ := notecrypt.EnvelopeVersion(newEnvelope)
	fmt.Println("Version:", v)
	fmt.Println("Needs upgrade:", codec.NeedsUpgrade(newEnvelope))

	// Output:
	// Old data: secret note
	// Needs upgrade: true
	// Version: v1
	// Needs upgrade: false
}

func Example_session() {
	codec, _ := notecrypt.New(notecrypt.WithVersion(notecrypt.Version1))

	session, err := notecrypt.NewSession(codec, []byte("correct horse battery staple"))
	if err != nil {
		panic(err)
	}
	defer session.Close()

	envelope, _ := session.Encrypt("Buy milk")
	plaintext, _ := session.Decrypt(envelope)
	fmt.Println(plaintext)
	// Output: Buy milk
}

func ExampleEncryptJSON() {
	type note struct {
		Body string   `json:"body"`
		Tags []string `json:"tags"`
	}
	phrase := "correct horse battery staple"
	codec, _ := notecrypt.New(notecrypt.WithVersion(notecrypt.Version1))

	envelope, _ := notecrypt.EncryptJSON(codec, note{Body: "Buy milk", Tags: []string{"home"}}, phrase)
	n, _ := notecrypt.DecryptJSON[note](codec, envelope, phrase)
	fmt.Println(n.Body, n.Tags)
	// Output: Buy milk [home]
}
