package records

import (
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"fintrack/internal/domain"
)

// ArtifactRefresher is the slice of the artifact service the writer needs.
type ArtifactRefresher interface {
	Reconcile() error
	Backup()
}

// Entry is user input for one day.
type Entry struct {
	Pocket int
	Extra  int
	Food   int
	Other  int
	Note   string
}

// Service is the single mutating consumer of the engine. Callers must
// serialize writes; the engine assumes one mutation in flight at a time.
type Service struct {
	ledger    domain.Ledger
	sealer    domain.Sealer
	artifacts ArtifactRefresher
	log       logrus.FieldLogger
	now       func() time.Time
}

func New(led domain.Ledger, sealer domain.Sealer, artifacts ArtifactRefresher, log logrus.FieldLogger) *Service {
	return &Service{
		ledger:    led,
		sealer:    sealer,
		artifacts: artifacts,
		log:       log,
		now:       time.Now,
	}
}

// SetClock overrides the timestamp source for tests.
func (s *Service) SetClock(now func() time.Time) { s.now = now }

// Save computes totals, auto-tags the note, seals the sensitive fields and
// inserts the row. The insert is the only step that can fail the save;
// artifact refresh and backups degrade to logged warnings.
func (s *Service) Save(e Entry) (domain.Record, error) {
	now := s.now()
	tags := AutoTag(e.Note)

	r := domain.Record{
		Date:        now.Format("2006-01-02"),
		Pocket:      e.Pocket,
		Extra:       e.Extra,
		TotalIncome: e.Pocket + e.Extra,
		Food:        e.Food,
		Other:       e.Other,
		TotalSpent:  e.Food + e.Other,
		Note:        e.Note,
		Tags:        tags,
		CreatedAt:   now.Format(time.RFC3339),
	}
	r.Balance = r.TotalIncome - r.TotalSpent

	sealedNote, err := s.sealer.EncryptField(e.Note)
	if err != nil {
		return domain.Record{}, errors.Wrap(err, "seal note")
	}
	sealedTags, err := s.sealer.EncryptField(tags)
	if err != nil {
		return domain.Record{}, errors.Wrap(err, "seal tags")
	}

	stored := r
	stored.Note, stored.Tags = sealedNote, sealedTags
	id, err := s.ledger.Insert(stored)
	if err != nil {
		return domain.Record{}, errors.Wrap(err, "persist record")
	}
	r.ID = id

	if err := s.artifacts.Reconcile(); err != nil {
		s.log.WithError(err).Warn("artifact refresh failed after save, store remains authoritative")
	}
	s.artifacts.Backup()

	return r, nil
}

// List returns all records with sensitive fields decrypted for display.
// A field that fails to open keeps its stored value, with a logged warning.
func (s *Service) List() ([]domain.Record, error) {
	rows, err := s.ledger.All()
	if err != nil {
		return nil, err
	}
	for i := range rows {
		if note, err := s.sealer.DecryptField(rows[i].Note); err == nil {
			rows[i].Note = note
		} else {
			s.log.WithError(err).WithField("record", rows[i].ID).Warn("note field failed to decrypt")
		}
		if tags, err := s.sealer.DecryptField(rows[i].Tags); err == nil {
			rows[i].Tags = tags
		} else {
			s.log.WithError(err).WithField("record", rows[i].ID).Warn("tags field failed to decrypt")
		}
	}
	return rows, nil
}
