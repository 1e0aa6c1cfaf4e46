package artifacts

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"fintrack/internal/domain"
	"fintrack/internal/export"
	"fintrack/internal/store"
)

// Service regenerates and snapshots artifacts. All content flows from the
// ledger; nothing here is authoritative except the sealed dump it writes.
type Service struct {
	layout  domain.Layout
	ledger  domain.Ledger
	sealer  domain.Sealer
	files   *store.ArtifactStore
	rotator *store.BackupRotator
	log     logrus.FieldLogger
	now     func() time.Time
}

func New(layout domain.Layout, led domain.Ledger, sealer domain.Sealer,
	files *store.ArtifactStore, rotator *store.BackupRotator, log logrus.FieldLogger) *Service {
	return &Service{
		layout:  layout,
		ledger:  led,
		sealer:  sealer,
		files:   files,
		rotator: rotator,
		log:     log,
		now:     time.Now,
	}
}

// Reconcile rebuilds every derived artifact from the ledger and reseals it,
// including the sealed dump. It is idempotent; bootstrap runs it once and
// the operator can run it any time as a repair tool.
func (s *Service) Reconcile() error {
	if err := s.RebuildExports(); err != nil {
		return err
	}
	dump, err := s.ledger.Dump()
	if err != nil {
		return err
	}
	return s.files.WriteSealed(s.layout.DumpSealed, []byte(dump))
}

// RebuildExports regenerates the display artifacts (CSV, workbook, state)
// without touching the sealed dump. Bootstrap uses it after a failed
// restore: the unapplied dump is the only authoritative copy of the data
// and must survive for a later operator restore under the right key.
func (s *Service) RebuildExports() error {
	rows, err := s.ledger.All()
	if err != nil {
		return err
	}
	view := s.decryptForView(rows)

	csvBytes, err := export.BuildCSV(view)
	if err != nil {
		return err
	}
	if err := s.files.WriteArtifact(s.layout.CSVFile, csvBytes, true); err != nil {
		return err
	}

	wbBytes, err := export.BuildWorkbook(view)
	if err != nil {
		return err
	}
	if err := s.files.WriteArtifact(s.layout.WorkbookFile, wbBytes, true); err != nil {
		return err
	}

	stateBytes, err := export.EncodeState(s.currentState(rows))
	if err != nil {
		return err
	}
	return s.files.WriteArtifact(s.layout.StateFile, stateBytes, true)
}

// Backup snapshots every category from current ledger-derived content.
// Each source rebuilds its content fresh, so every backup is re-sealed with
// a fresh nonce and independently decryptable. Failures are logged by the
// rotator and never propagate to the write path.
func (s *Service) Backup() {
	s.rotator.Run(map[string]store.BackupSource{
		domain.CategoryDump: func() ([]byte, error) {
			dump, err := s.ledger.Dump()
			return []byte(dump), err
		},
		domain.CategoryCSV: func() ([]byte, error) {
			rows, err := s.ledger.All()
			if err != nil {
				return nil, err
			}
			return export.BuildCSV(s.decryptForView(rows))
		},
		domain.CategoryWorkbook: func() ([]byte, error) {
			rows, err := s.ledger.All()
			if err != nil {
				return nil, err
			}
			return export.BuildWorkbook(s.decryptForView(rows))
		},
		domain.CategoryState: func() ([]byte, error) {
			rows, err := s.ledger.All()
			if err != nil {
				return nil, err
			}
			return export.EncodeState(s.currentState(rows))
		},
	})
}

// SecureBundle writes a sealed tar.gz of all current sealed artifacts and
// returns its path.
func (s *Service) SecureBundle() (string, error) {
	blob, err := export.BuildBundle(s.sealer, s.layout.DataDir, []string{
		s.layout.DumpSealed,
		domain.Sealed(s.layout.CSVFile),
		domain.Sealed(s.layout.WorkbookFile),
		domain.Sealed(s.layout.StateFile),
	})
	if err != nil {
		return "", errors.Wrap(err, "build secure bundle")
	}
	name := fmt.Sprintf("secure_export_%s.tar.gz%s", s.now().Format("2006-01-02_15-04-05"), domain.SealedSuffix)
	path := filepath.Join(s.layout.DataDir, name)
	if err := store.WriteFile(path, blob, 0o600); err != nil {
		return "", errors.Wrap(err, "write secure bundle")
	}
	return path, nil
}

// DecryptArtifact opens one sealed artifact into out. Failure writes
// nothing: no partial-success artifact.
func (s *Service) DecryptArtifact(in, out string) error {
	plain, err := s.files.ReadSealed(in)
	if err != nil {
		return err
	}
	return store.WriteFile(out, plain, 0o600)
}

// decryptForView returns rows with note/tags decrypted for human-readable
// exports. A field that fails to open keeps its stored value; that is an
// explicit display-path degradation, logged so corruption is visible.
func (s *Service) decryptForView(rows []domain.Record) []domain.Record {
	out := make([]domain.Record, len(rows))
	for i, r := range rows {
		note, err := s.sealer.DecryptField(r.Note)
		if err != nil {
			s.log.WithError(err).WithField("record", r.ID).Warn("note field failed to decrypt, exporting stored value")
			note = r.Note
		}
		tags, err := s.sealer.DecryptField(r.Tags)
		if err != nil {
			s.log.WithError(err).WithField("record", r.ID).Warn("tags field failed to decrypt, exporting stored value")
			tags = r.Tags
		}
		r.Note, r.Tags = note, tags
		out[i] = r
	}
	return out
}

func (s *Service) currentState(rows []domain.Record) export.State {
	st := export.State{DayIndex: len(rows)}
	if len(rows) > 0 {
		st.BalanceRollover = rows[len(rows)-1].Balance
	}
	return st
}
