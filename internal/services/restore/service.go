package restore

import (
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"fintrack/internal/domain"
	"fintrack/internal/ledger"
)

// Service restores the ledger from sealed dumps.
type Service struct {
	ledger    domain.Ledger
	sealer    domain.Sealer
	artifacts domain.Reconciler
	log       logrus.FieldLogger
}

func New(led domain.Ledger, sealer domain.Sealer, artifacts domain.Reconciler, log logrus.FieldLogger) *Service {
	return &Service{ledger: led, sealer: sealer, artifacts: artifacts, log: log}
}

// FromSealedDump authenticates and decrypts the dump at path, then replaces
// the records table from it and regenerates every derived artifact. Any
// failure before the table replacement leaves the live store untouched.
func (s *Service) FromSealedDump(path string) error {
	sealed, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "read sealed dump")
	}
	script, err := s.sealer.Open(sealed)
	if err != nil {
		return errors.Wrap(err, "restore aborted, dump failed authentication")
	}
	if err := ledger.ValidateScript(string(script)); err != nil {
		return errors.Wrap(err, "restore aborted")
	}

	if err := s.ledger.RestoreScript(string(script)); err != nil {
		return errors.Wrap(err, "apply dump")
	}
	s.log.WithField("dump", path).Info("ledger restored from sealed dump")

	if err := s.artifacts.Reconcile(); err != nil {
		return errors.Wrap(err, "regenerate artifacts after restore")
	}
	return nil
}
