package export

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"fintrack/internal/domain"
)

// BuildBundle packs the given files (missing ones are skipped) into a
// tar.gz and seals the archive, producing the secure-export blob. The
// members are already sealed artifacts; the outer seal keeps the bundle a
// single opaque unit.
func BuildBundle(sealer domain.Sealer, baseDir string, paths []string) ([]byte, error) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)

	for _, p := range paths {
		if err := addFile(tw, baseDir, p); err != nil {
			return nil, err
		}
	}
	if err := tw.Close(); err != nil {
		return nil, errors.Wrap(err, "close tar")
	}
	if err := gz.Close(); err != nil {
		return nil, errors.Wrap(err, "close gzip")
	}
	return sealer.Seal(buf.Bytes())
}

func addFile(tw *tar.Writer, baseDir, path string) error {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return errors.Wrapf(err, "stat %s", path)
	}
	arcname, err := filepath.Rel(baseDir, path)
	if err != nil {
		arcname = filepath.Base(path)
	}
	hdr, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return errors.Wrapf(err, "tar header %s", path)
	}
	hdr.Name = arcname
	if err := tw.WriteHeader(hdr); err != nil {
		return errors.Wrapf(err, "write header %s", arcname)
	}
	if _, err := io.Copy(tw, f); err != nil {
		return errors.Wrapf(err, "add %s", arcname)
	}
	return nil
}
