package store

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"fintrack/internal/domain"
)

// ArtifactStore persists plaintext artifacts alongside their sealed
// siblings. The plaintext form is a convenience copy; the sealed form is
// the confidential one and always gets written.
type ArtifactStore struct {
	sealer domain.Sealer
}

func NewArtifactStore(sealer domain.Sealer) *ArtifactStore {
	return &ArtifactStore{sealer: sealer}
}

// WriteArtifact writes plain to path (when keepPlain) and a sealed copy to
// the ".enc" sibling. The sealed sibling is written last so it never
// reflects content newer than the plaintext copy.
func (s *ArtifactStore) WriteArtifact(path string, plain []byte, keepPlain bool) error {
	if keepPlain {
		if err := WriteFile(path, plain, 0o644); err != nil {
			return errors.Wrapf(err, "write %s", filepath.Base(path))
		}
	}
	return s.WriteSealed(domain.Sealed(path), plain)
}

// WriteSealed seals plain and writes it to path with owner-only permissions.
func (s *ArtifactStore) WriteSealed(path string, plain []byte) error {
	sealed, err := s.sealer.Seal(plain)
	if err != nil {
		return errors.Wrapf(err, "seal %s", filepath.Base(path))
	}
	if err := WriteFile(path, sealed, 0o600); err != nil {
		return errors.Wrapf(err, "write %s", filepath.Base(path))
	}
	return nil
}

// ReadSealed opens the sealed file at path and returns its plaintext.
func (s *ArtifactStore) ReadSealed(path string) ([]byte, error) {
	sealed, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", filepath.Base(path))
	}
	return s.sealer.Open(sealed)
}

// WriteFile writes bytes via a temp file, then atomically replaces the target.
func WriteFile(path string, b []byte, mode os.FileMode) error {
	dir := filepath.Dir(path)
	base := filepath.Base(path)

	f, err := os.CreateTemp(dir, base+".tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()

	// Best-effort cleanup if anything fails before rename.
	defer func() { _ = os.Remove(tmp) }()

	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Chmod(mode); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	return os.Rename(tmp, path)
}
