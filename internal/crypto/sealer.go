package crypto

import (
	"bytes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	stderrors "errors"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/crypto/chacha20poly1305"
)

// Sealed blob layout: magic ‖ nonce ‖ ciphertext+tag. The blob is
// self-describing; nothing outside it is needed to decrypt except the key.
var sealMagic = []byte("FTS1")

// fieldMarker prefixes every encrypted field value. Stored values without
// it are legacy plaintext rows from before field encryption; values with it
// that fail to open are corrupted or keyed wrong, and that is a real error,
// never silently returned as text.
const fieldMarker = "enc1:"

var (
	// ErrNotSealed is returned when a blob lacks the sealed format header.
	ErrNotSealed = stderrors.New("input is not a sealed blob")
	// ErrOpenFailed is returned when authentication fails: the blob was
	// tampered with or sealed under a different key.
	ErrOpenFailed = stderrors.New("authentication failed: wrong key or corrupted data")
)

// Sealer encrypts fields and artifacts with the process key.
type Sealer struct {
	aead cipher.AEAD
}

// NewSealer builds a Sealer over the KeyStore's key.
func NewSealer(ks *KeyStore) (*Sealer, error) {
	aead, err := chacha20poly1305.New(ks.Key())
	if err != nil {
		return nil, errors.Wrap(err, "init aead")
	}
	return &Sealer{aead: aead}, nil
}

// Seal encrypts plain with a fresh random nonce. Two calls on the same
// input produce different blobs.
func (s *Sealer) Seal(plain []byte) ([]byte, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, errors.Wrap(err, "generate nonce")
	}
	out := make([]byte, 0, len(sealMagic)+len(nonce)+len(plain)+s.aead.Overhead())
	out = append(out, sealMagic...)
	out = append(out, nonce...)
	return s.aead.Seal(out, nonce, plain, nil), nil
}

// Open authenticates and decrypts a sealed blob.
func (s *Sealer) Open(sealed []byte) ([]byte, error) {
	ns := s.aead.NonceSize()
	if len(sealed) < len(sealMagic)+ns+s.aead.Overhead() || !bytes.HasPrefix(sealed, sealMagic) {
		return nil, ErrNotSealed
	}
	nonce := sealed[len(sealMagic) : len(sealMagic)+ns]
	plain, err := s.aead.Open(nil, nonce, sealed[len(sealMagic)+ns:], nil)
	if err != nil {
		return nil, ErrOpenFailed
	}
	return plain, nil
}

// EncryptField seals a sensitive text field for row storage. Empty input
// stays empty: "no note" must not produce spurious ciphertext.
func (s *Sealer) EncryptField(text string) (string, error) {
	if text == "" {
		return "", nil
	}
	sealed, err := s.Seal([]byte(text))
	if err != nil {
		return "", err
	}
	return fieldMarker + base64.StdEncoding.EncodeToString(sealed), nil
}

// DecryptField reverses EncryptField. Values without the field marker are
// legacy plaintext (rows written before field encryption existed, an
// intentional migration affordance) and pass through unchanged. A marked
// value that fails to decode or authenticate returns an error; a legacy
// plaintext value that happens to start with the marker is therefore
// indistinguishable from ciphertext and surfaces as that error.
func (s *Sealer) DecryptField(stored string) (string, error) {
	if stored == "" {
		return "", nil
	}
	if !strings.HasPrefix(stored, fieldMarker) {
		return stored, nil
	}
	sealed, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(stored, fieldMarker))
	if err != nil {
		return "", errors.Wrap(ErrOpenFailed, "malformed field encoding")
	}
	plain, err := s.Open(sealed)
	if err != nil {
		return "", err
	}
	return string(plain), nil
}

// IsEncryptedField reports whether a stored value carries the encrypted
// field marker.
func IsEncryptedField(stored string) bool {
	return strings.HasPrefix(stored, fieldMarker)
}
