package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fernet/fernet-go"
)

// encryptedPrefix marks a secret stored as a fernet token.
const encryptedPrefix = "fernet:"

// ErrSecretsKeyMissing is returned when an encrypted secret is configured
// without SECRETS_KEY.
var ErrSecretsKeyMissing = errors.New("encrypted secret configured but SECRETS_KEY is not set")

// ErrSecretUndecryptable is returned when a fernet token fails verification.
var ErrSecretUndecryptable = errors.New("secret could not be decrypted with SECRETS_KEY")

// secretBox decrypts provider secrets that were stored encrypted, so the
// deployment environment only ever holds the fernet key in plain text.
type secretBox struct {
	keys []*fernet.Key
}

// newSecretBox decodes a comma-separated list of fernet keys. The first key
// is used for encryption, all of them for decryption to allow rotation.
func newSecretBox(encodedKeys string) (*secretBox, error) {
	if strings.TrimSpace(encodedKeys) == "" {
		return &secretBox{}, nil
	}
	keys, err := fernet.DecodeKeys(splitList(encodedKeys)...)
	if err != nil {
		return nil, fmt.Errorf("invalid SECRETS_KEY: %w", err)
	}
	return &secretBox{keys: keys}, nil
}

// Open returns value unchanged unless it carries the fernet prefix, in which
// case the token is verified and decrypted.
func (b *secretBox) Open(value string) (string, error) {
	if !strings.HasPrefix(value, encryptedPrefix) {
		return value, nil
	}
	if len(b.keys) == 0 {
		return "", ErrSecretsKeyMissing
	}

	token := strings.TrimPrefix(value, encryptedPrefix)
	// Negative TTL: stored secrets do not expire.
	msg := fernet.VerifyAndDecrypt([]byte(token), -1, b.keys)
	if msg == nil {
		return "", ErrSecretUndecryptable
	}
	return string(msg), nil
}

// Seal encrypts a secret for storage in the environment.
func (b *secretBox) Seal(secret string) (string, error) {
	if len(b.keys) == 0 {
		return "", ErrSecretsKeyMissing
	}
	tok, err := fernet.EncryptAndSign([]byte(secret), b.keys[0])
	if err != nil {
		return "", err
	}
	return encryptedPrefix + string(tok), nil
}

// SealSecret encrypts secret with the given fernet key and returns the value
// to place in EOD_API_KEY or MISTRAL_API_KEY.
func SealSecret(encodedKey, secret string) (string, error) {
	box, err := newSecretBox(encodedKey)
	if err != nil {
		return "", err
	}
	return box.Seal(secret)
}
