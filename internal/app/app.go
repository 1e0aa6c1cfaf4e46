package app

import (
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"fintrack/internal/crypto"
	"fintrack/internal/domain"
	"fintrack/internal/ledger"
	"fintrack/internal/services/artifacts"
	"fintrack/internal/services/records"
	"fintrack/internal/services/restore"
	"fintrack/internal/store"
)

// App bundles the wired services for the CLI.
type App struct {
	Layout    domain.Layout
	Records   *records.Service
	Artifacts *artifacts.Service
	Restore   *restore.Service
	Log       *logrus.Logger

	ledger *ledger.Store
}

// Initialize performs the ordered bootstrap: directories, key material,
// ledger schema, restore-if-fresh, artifact reconcile. Key failures and
// artifact seal failures here are fatal; there is no degraded mode at
// bootstrap.
func Initialize(cfg Config) (*App, error) {
	log := newLogger(cfg.Verbose)
	layout := domain.NewLayout(cfg.DataDir)

	if err := os.MkdirAll(layout.DataDir, 0o700); err != nil {
		return nil, errors.Wrap(err, "create data dir")
	}
	if err := os.MkdirAll(layout.BackupDir, 0o700); err != nil {
		return nil, errors.Wrap(err, "create backup dir")
	}

	ks, err := crypto.Load(layout.DataDir)
	if err != nil {
		return nil, errors.Wrap(err, "load key material")
	}
	sealer, err := crypto.NewSealer(ks)
	if err != nil {
		return nil, err
	}

	// Whether this run starts with no live database decides if the
	// sealed dump may be auto-applied below.
	_, statErr := os.Stat(layout.DBFile)
	freshDB := os.IsNotExist(statErr)

	led, err := ledger.Open(layout.DBFile)
	if err != nil {
		return nil, err
	}

	files := store.NewArtifactStore(sealer)
	rotator := store.NewBackupRotator(layout.BackupDir, cfg.Retention, sealer, log)
	artifactSvc := artifacts.New(layout, led, sealer, files, rotator, log)
	restoreSvc := restore.New(led, sealer, artifactSvc, log)
	recordSvc := records.New(led, sealer, artifactSvc, log)

	restoreFailed := false
	if freshDB {
		if _, err := os.Stat(layout.DumpSealed); err == nil {
			if err := restoreSvc.FromSealedDump(layout.DumpSealed); err != nil {
				log.WithError(err).Warn("bootstrap restore from sealed dump failed, continuing with empty ledger")
				restoreFailed = true
			}
		}
	}

	// After a failed restore the unapplied dump is the only authoritative
	// copy of the data: rebuild the display exports but leave the dump on
	// disk for an operator restore under the right key.
	if restoreFailed {
		if err := artifactSvc.RebuildExports(); err != nil {
			_ = led.Close()
			return nil, errors.Wrap(err, "rebuild exports")
		}
	} else if err := artifactSvc.Reconcile(); err != nil {
		_ = led.Close()
		return nil, errors.Wrap(err, "reconcile artifacts")
	}

	return &App{
		Layout:    layout,
		Records:   recordSvc,
		Artifacts: artifactSvc,
		Restore:   restoreSvc,
		Log:       log,
		ledger:    led,
	}, nil
}

// Close releases the ledger handle.
func (a *App) Close() error { return a.ledger.Close() }

func newLogger(verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.InfoLevel)
	}
	return log
}
