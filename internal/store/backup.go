package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"fintrack/internal/domain"
)

// DefaultRetention is the number of backup records kept per category.
const DefaultRetention = 20

const backupTimeFormat = "2006-01-02_15-04-05"

// BackupSource yields the current decrypted content of one artifact
// category, or an error if it cannot be produced right now.
type BackupSource func() ([]byte, error)

// BackupRotator snapshots artifact categories into timestamped sealed
// records and prunes each category to a retention count. Backups are a
// best-effort safety net: Run never fails the write path.
type BackupRotator struct {
	dir       string
	retention int
	sealer    domain.Sealer
	log       logrus.FieldLogger
	now       func() time.Time
}

func NewBackupRotator(dir string, retention int, sealer domain.Sealer, log logrus.FieldLogger) *BackupRotator {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &BackupRotator{
		dir:       dir,
		retention: retention,
		sealer:    sealer,
		log:       log,
		now:       time.Now,
	}
}

// SetClock overrides the timestamp source. Tests use it to pin record names.
func (r *BackupRotator) SetClock(now func() time.Time) { r.now = now }

// Run snapshots every category in order. A failure in one category is
// logged and the remaining categories still run.
func (r *BackupRotator) Run(sources map[string]BackupSource) {
	for _, category := range domain.Categories {
		src, ok := sources[category]
		if !ok {
			continue
		}
		plain, err := src()
		if err != nil {
			r.log.WithError(err).WithField("category", category).Warn("backup source failed, skipping category")
			continue
		}
		if err := r.Snapshot(category, plain); err != nil {
			r.log.WithError(err).WithField("category", category).Warn("backup failed for category")
		}
	}
}

// Snapshot re-seals plain with a fresh nonce into a new timestamped record
// and prunes the category. Re-sealing (instead of copying an existing
// sealed file) keeps every backup independently decryptable.
func (r *BackupRotator) Snapshot(category string, plain []byte) error {
	sealed, err := r.sealer.Seal(plain)
	if err != nil {
		return errors.Wrapf(err, "seal %s backup", category)
	}
	path := r.recordPath(category)
	if err := WriteFile(path, sealed, 0o600); err != nil {
		return errors.Wrapf(err, "write %s backup", category)
	}
	return r.prune(category)
}

// recordPath picks a fresh record name. Same-second snapshots get a
// numeric suffix so records are never overwritten and name order stays
// deterministic.
func (r *BackupRotator) recordPath(category string) string {
	ts := r.now().Format(backupTimeFormat)
	path := filepath.Join(r.dir, fmt.Sprintf("%s_%s%s", category, ts, domain.SealedSuffix))
	for n := 2; ; n++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path
		}
		path = filepath.Join(r.dir, fmt.Sprintf("%s_%s_%d%s", category, ts, n, domain.SealedSuffix))
	}
}

// prune deletes records beyond the retention count, oldest first. The
// embedded timestamp sorts lexicographically, so name order is creation
// order; full-name comparison breaks same-second ties.
func (r *BackupRotator) prune(category string) error {
	records, err := r.Records(category)
	if err != nil {
		return err
	}
	if len(records) <= r.retention {
		return nil
	}
	for _, name := range records[r.retention:] {
		if err := os.Remove(filepath.Join(r.dir, name)); err != nil {
			return errors.Wrapf(err, "prune %s", name)
		}
	}
	return nil
}

// Records lists a category's record names, newest first.
func (r *BackupRotator) Records(category string) ([]string, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, errors.Wrap(err, "list backups")
	}
	var names []string
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, category+"_") && strings.HasSuffix(name, domain.SealedSuffix) {
			names = append(names, name)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	return names, nil
}
