// Package secretbox seals short secrets, such as user API keys, for storage.
//
// Sealed values are "v1:" followed by base64(nonce || ciphertext) using
// XChaCha20-Poly1305 with a key derived from the application secret via HKDF-SHA256.
package secretbox

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

const (
	versionPrefix = "v1:"
	hkdfInfo      = "flashdeck/user-settings/v1"
	minSecretLen  = 32
)

var (
	// ErrSecretTooShort is returned by New when the master secret is under 32 bytes.
	ErrSecretTooShort = errors.New("secretbox: master secret must be at least 32 bytes")

	// ErrMalformed is returned by Open when the input is not a sealed value.
	ErrMalformed = errors.New("secretbox: malformed sealed value")

	// ErrDecrypt is returned by Open when authentication fails.
	ErrDecrypt = errors.New("secretbox: unable to open sealed value")
)

// Box seals and opens values with a single derived key. It is safe for concurrent use.
type Box struct {
	key []byte
}

// New derives the sealing key from secret.
func New(secret string) (*Box, error) {
	if len(secret) < minSecretLen {
		return nil, ErrSecretTooShort
	}

	key := make([]byte, chacha20poly1305.KeySize)
	kdf := hkdf.New(sha256.New, []byte(secret), nil, []byte(hkdfInfo))
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, fmt.Errorf("secretbox: derive key: %w", err)
	}

	return &Box{key: key}, nil
}

// Seal encrypts plaintext. The empty string seals to the empty string so
// that "no key saved" stays distinguishable without decrypting.
func (b *Box) Seal(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	aead, err := chacha20poly1305.NewX(b.key)
	if err != nil {
		return "", fmt.Errorf("secretbox: init cipher: %w", err)
	}

	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(plaintext)+aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("secretbox: generate nonce: %w", err)
	}

	sealed := aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return versionPrefix + base64.RawStdEncoding.EncodeToString(sealed), nil
}

// Open reverses Seal.
func (b *Box) Open(sealed string) (string, error) {
	if sealed == "" {
		return "", nil
	}

	encoded, ok := strings.CutPrefix(sealed, versionPrefix)
	if !ok {
		return "", ErrMalformed
	}

	raw, err := base64.RawStdEncoding.DecodeString(encoded)
	if err != nil {
		return "", ErrMalformed
	}

	aead, err := chacha20poly1305.NewX(b.key)
	if err != nil {
		return "", fmt.Errorf("secretbox: init cipher: %w", err)
	}

	if len(raw) < aead.NonceSize()+aead.Overhead() {
		return "", ErrMalformed
	}

	nonce, ciphertext := raw[:aead.NonceSize()], raw[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", ErrDecrypt
	}

	return string(plaintext), nil
}
