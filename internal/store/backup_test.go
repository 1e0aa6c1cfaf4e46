package store_test

import (
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"fintrack/internal/domain"
	"fintrack/internal/store"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestSnapshot_RetentionBound(t *testing.T) {
	dir := t.TempDir()
	rot := store.NewBackupRotator(dir, 20, newSealer(t), quietLogger())

	base := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 21; i++ {
		rot.SetClock(func(i int) func() time.Time {
			return func() time.Time { return base.Add(time.Duration(i) * time.Second) }
		}(i))
		if err := rot.Snapshot(domain.CategoryDump, []byte(fmt.Sprintf("dump %d", i))); err != nil {
			t.Fatalf("snapshot %d: %v", i, err)
		}
	}

	records, err := rot.Records(domain.CategoryDump)
	if err != nil {
		t.Fatalf("records: %v", err)
	}
	if len(records) != 20 {
		t.Fatalf("retained %d records, want 20", len(records))
	}
	oldest := "dbdump_" + base.Format("2006-01-02_15-04-05") + ".enc"
	for _, name := range records {
		if name == oldest {
			t.Fatal("oldest record should have been pruned")
		}
	}
}

func TestSnapshot_SameSecond_Deterministic(t *testing.T) {
	dir := t.TempDir()
	rot := store.NewBackupRotator(dir, 2, newSealer(t), quietLogger())
	at := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	rot.SetClock(func() time.Time { return at })

	for i := 0; i < 3; i++ {
		if err := rot.Snapshot(domain.CategoryCSV, []byte("csv")); err != nil {
			t.Fatalf("snapshot %d: %v", i, err)
		}
	}
	records, err := rot.Records(domain.CategoryCSV)
	if err != nil {
		t.Fatalf("records: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("retained %d records, want 2", len(records))
	}
	// Suffixed names sort after the bare timestamp, so the bare (first,
	// oldest) record is the pruned one.
	base := "csv_" + at.Format("2006-01-02_15-04-05") + ".enc"
	for _, name := range records {
		if name == base {
			t.Fatal("first same-second record should have been pruned")
		}
	}
}

func TestRun_CategoryFailure_Isolated(t *testing.T) {
	dir := t.TempDir()
	rot := store.NewBackupRotator(dir, 5, newSealer(t), quietLogger())

	rot.Run(map[string]store.BackupSource{
		domain.CategoryDump: func() ([]byte, error) { return nil, fmt.Errorf("dump unavailable") },
		domain.CategoryCSV:  func() ([]byte, error) { return []byte("csv content"), nil },
	})

	csvRecords, err := rot.Records(domain.CategoryCSV)
	if err != nil {
		t.Fatalf("records: %v", err)
	}
	if len(csvRecords) != 1 {
		t.Fatalf("csv records = %d, want 1 despite dump failure", len(csvRecords))
	}
	dumpRecords, err := rot.Records(domain.CategoryDump)
	if err != nil {
		t.Fatalf("records: %v", err)
	}
	if len(dumpRecords) != 0 {
		t.Fatalf("dump records = %d, want 0", len(dumpRecords))
	}
}

func TestSnapshot_IndependentlyDecryptable(t *testing.T) {
	dir := t.TempDir()
	sealer := newSealer(t)
	rot := store.NewBackupRotator(dir, 5, sealer, quietLogger())

	if err := rot.Snapshot(domain.CategoryState, []byte(`{"day_index":7}`)); err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	records, err := rot.Records(domain.CategoryState)
	if err != nil || len(records) != 1 {
		t.Fatalf("records = %v, %v", records, err)
	}

	files := store.NewArtifactStore(sealer)
	plain, err := files.ReadSealed(dir + "/" + records[0])
	if err != nil {
		t.Fatalf("open backup: %v", err)
	}
	if string(plain) != `{"day_index":7}` {
		t.Fatalf("backup content = %q", plain)
	}
}
