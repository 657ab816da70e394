package notecrypt

import (
	"bytes"
	"strings"
	"testing"
)

// Encrypt benchmarks per version; key derivation dominates small notes.

func benchmarkEncrypt(b *testing.B, v Version, size int) {
	codec, err := New(WithVersion(v))
	if err != nil {
		b.Fatal(err)
	}
	note := strings.Repeat("x", size)
	b.SetBytes(int64(size))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := codec.Encrypt(note, testPhrase); err != nil {
			b.Fatal(err)
		}
	}
}

func benchmarkDecrypt(b *testing.B, v Version, size int) {
	codec, err := New(WithVersion(v))
	if err != nil {
		b.Fatal(err)
	}
	envelope, err := codec.Encrypt(strings.Repeat("x", size), testPhrase)
	if err != nil {
		b.Fatal(err)
	}
	b.SetBytes(int64(size))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := codec.Decrypt(envelope, testPhrase); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEncrypt_Legacy_100B(b *testing.B) { benchmarkEncrypt(b, VersionLegacy, 100) }
func BenchmarkEncrypt_V1_100B(b *testing.B)     { benchmarkEncrypt(b, Version1, 100) }
func BenchmarkEncrypt_V2_100B(b *testing.B)     { benchmarkEncrypt(b, Version2, 100) }
func BenchmarkEncrypt_V2_1MB(b *testing.B)      { benchmarkEncrypt(b, Version2, 1024*1024) }

func BenchmarkDecrypt_Legacy_100B(b *testing.B) { benchmarkDecrypt(b, VersionLegacy, 100) }
func BenchmarkDecrypt_V1_100B(b *testing.B)     { benchmarkDecrypt(b, Version1, 100) }
func BenchmarkDecrypt_V2_100B(b *testing.B)     { benchmarkDecrypt(b, Version2, 100) }
func BenchmarkDecrypt_V2_1MB(b *testing.B)      { benchmarkDecrypt(b, Version2, 1024*1024) }

// Key derivation benchmarks

func BenchmarkDeriveKey_Legacy(b *testing.B) { benchmarkDeriveKey(b, VersionLegacy) }
func BenchmarkDeriveKey_V1(b *testing.B)     { benchmarkDeriveKey(b, Version1) }
func BenchmarkDeriveKey_V2(b *testing.B)     { benchmarkDeriveKey(b, Version2) }

func benchmarkDeriveKey(b *testing.B, v Version) {
	phrase := []byte(testPhrase)
	salt := bytes.Repeat([]byte{0x01}, saltSize)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := DeriveKey(phrase, salt, v); err != nil {
			b.Fatal(err)
		}
	}
}

// Envelope parsing benchmark

func BenchmarkParseEnvelope(b *testing.B) {
	codec, _ := New(WithVersion(VersionLegacy))
	envelope, _ := codec.Encrypt(strings.Repeat("x", 1024), testPhrase)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := parseEnvelope(envelope); err != nil {
			b.Fatal(err)
		}
	}
}
