package auth

import (
	"crypto/rand"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// CredentialStore persists the sealed token record. The gorm-backed
// persister implements it; tests use an in-memory stand-in.
type CredentialStore interface {
	SaveCredential(ciphertext []byte) error
	LoadCredential() ([]byte, bool, error)
	DeleteCredential() error
}

// Vault seals the auth token before it touches device storage. With a
// nil key the token is stored as-is, which keeps development setups
// working without a provisioned device key.
type Vault struct {
	key   []byte
	store CredentialStore
}

func NewVault(key []byte, store CredentialStore) (*Vault, error) {
	if key != nil && len(key) != chacha20poly1305.KeySize {
		return nil, fmt.Errorf("device key must be %d bytes, got %d", chacha20poly1305.KeySize, len(key))
	}
	return &Vault{key: key, store: store}, nil
}

// Save persists the token, last write wins. Called by the login
// operation before it resolves so the very next request can read the
// token back.
func (v *Vault) Save(token string) error {
	sealed, err := v.seal([]byte(token))
	if err != nil {
		return fmt.Errorf("failed to seal token: %w", err)
	}
	return v.store.SaveCredential(sealed)
}

// Load returns the stored token, reporting false when none exists.
func (v *Vault) Load() (string, bool, error) {
	sealed, ok, err := v.store.LoadCredential()
	if err != nil || !ok {
		return "", false, err
	}

	token, err := v.open(sealed)
	if err != nil {
		// an unreadable credential behaves like a missing one
		return "", false, nil
	}
	return string(token), true, nil
}

// Clear removes the stored token. Logout depends on this completing
// before it returns so a relaunch cannot resurrect the session.
func (v *Vault) Clear() error {
	return v.store.DeleteCredential()
}

func (v *Vault) seal(plaintext []byte) ([]byte, error) {
	if v.key == nil {
		return plaintext, nil
	}

	aead, err := chacha20poly1305.NewX(v.key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}

	return aead.Seal(nonce, nonce, plaintext, nil), nil
}

func (v *Vault) open(sealed []byte) ([]byte, error) {
	if v.key == nil {
		return sealed, nil
	}

	aead, err := chacha20poly1305.NewX(v.key)
	if err != nil {
		return nil, err
	}

	if len(sealed) < aead.NonceSize() {
		return nil, errors.New("sealed credential too short")
	}

	nonce, ciphertext := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]
	return aead.Open(nil, nonce, ciphertext, nil)
}
