package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/crypto/pbkdf2"
)

const (
	// PassphraseEnv selects passphrase-derived-key mode when set and
	// non-blank. Absent or blank selects file-key mode.
	PassphraseEnv = "FINTRACK_PASSPHRASE"

	KeyBytes  = 32
	SaltBytes = 16

	kdfIterations = 390000

	saltFile = "kdf_salt.bin"
	keyFile  = "secret.key"
)

// ErrKeyMaterial marks unreadable or malformed salt/key files. There is no
// fallback for key material: callers must abort bootstrap.
var ErrKeyMaterial = stderrors.New("key material unreadable or malformed")

// KeyStore owns the process key. It is immutable after Load; no component
// may re-derive or replace the key mid-run.
type KeyStore struct {
	key []byte
}

// Load obtains the process key from dir, reading the passphrase from the
// environment. First run creates the salt or key file with owner-only
// permissions; later runs only read.
func Load(dir string) (*KeyStore, error) {
	return LoadWithPassphrase(dir, os.Getenv(PassphraseEnv))
}

// LoadWithPassphrase is Load with an explicit passphrase. A passphrase that
// is empty after trimming is treated as absent; a present passphrase is used
// untrimmed for derivation.
func LoadWithPassphrase(dir, passphrase string) (*KeyStore, error) {
	if strings.TrimSpace(passphrase) == "" {
		key, err := loadOrCreateFileKey(dir)
		if err != nil {
			return nil, err
		}
		return &KeyStore{key: key}, nil
	}
	salt, err := loadOrCreateSalt(dir)
	if err != nil {
		return nil, err
	}
	key := pbkdf2.Key([]byte(passphrase), salt, kdfIterations, KeyBytes, sha256.New)
	return &KeyStore{key: key}, nil
}

// Key returns the raw key bytes. Callers must treat them as read-only.
func (k *KeyStore) Key() []byte { return k.key }

func loadOrCreateSalt(dir string) ([]byte, error) {
	path := filepath.Join(dir, saltFile)
	salt, err := readExisting(path, SaltBytes)
	if err != nil || salt != nil {
		return salt, err
	}
	salt = make([]byte, SaltBytes)
	if _, err := rand.Read(salt); err != nil {
		return nil, errors.Wrap(err, "generate kdf salt")
	}
	if err := writeSecret(path, salt); err != nil {
		return nil, err
	}
	return salt, nil
}

func loadOrCreateFileKey(dir string) ([]byte, error) {
	path := filepath.Join(dir, keyFile)
	key, err := readExisting(path, KeyBytes)
	if err != nil || key != nil {
		return key, err
	}
	key = make([]byte, KeyBytes)
	if _, err := rand.Read(key); err != nil {
		return nil, errors.Wrap(err, "generate file key")
	}
	if err := writeSecret(path, key); err != nil {
		return nil, err
	}
	return key, nil
}

// readExisting returns the file content if present, nil if absent, and
// ErrKeyMaterial if present but unreadable or not exactly want bytes.
func readExisting(path string, want int) ([]byte, error) {
	b, err := os.ReadFile(path)
	if stderrors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(ErrKeyMaterial, "read %s: %v", filepath.Base(path), err)
	}
	if len(b) != want {
		return nil, errors.Wrapf(ErrKeyMaterial, "%s is %d bytes, want %d", filepath.Base(path), len(b), want)
	}
	return b, nil
}

// writeSecret persists key material with owner-only permissions. Existing
// files are never rewritten, so permissions cannot widen on later runs.
func writeSecret(path string, b []byte) error {
	if err := os.WriteFile(path, b, 0o600); err != nil {
		return errors.Wrapf(err, "write %s", filepath.Base(path))
	}
	return nil
}
