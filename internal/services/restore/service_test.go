package restore_test

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"fintrack/internal/crypto"
	"fintrack/internal/domain"
	"fintrack/internal/ledger"
	"fintrack/internal/services/artifacts"
	"fintrack/internal/services/records"
	"fintrack/internal/services/restore"
	"fintrack/internal/store"
)

type stack struct {
	layout  domain.Layout
	ledger  *ledger.Store
	sealer  *crypto.Sealer
	art     *artifacts.Service
	restore *restore.Service
	records *records.Service
}

// newStack wires a full engine over one data dir and a shared keystore dir,
// mirroring the bootstrap order.
func newStack(t *testing.T, keyDir string) *stack {
	t.Helper()
	layout := domain.NewLayout(t.TempDir())
	if err := os.MkdirAll(layout.BackupDir, 0o700); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	ks, err := crypto.LoadWithPassphrase(keyDir, "correct horse battery")
	if err != nil {
		t.Fatalf("keystore: %v", err)
	}
	sealer, err := crypto.NewSealer(ks)
	if err != nil {
		t.Fatalf("sealer: %v", err)
	}
	led, err := ledger.Open(layout.DBFile)
	if err != nil {
		t.Fatalf("ledger: %v", err)
	}
	t.Cleanup(func() { _ = led.Close() })

	log := logrus.New()
	log.SetOutput(io.Discard)

	files := store.NewArtifactStore(sealer)
	rot := store.NewBackupRotator(layout.BackupDir, 20, sealer, log)
	art := artifacts.New(layout, led, sealer, files, rot, log)
	return &stack{
		layout:  layout,
		ledger:  led,
		sealer:  sealer,
		art:     art,
		restore: restore.New(led, sealer, art, log),
		records: records.New(led, sealer, art, log),
	}
}

func TestFromSealedDump_RoundTrip(t *testing.T) {
	keyDir := t.TempDir()
	src := newStack(t, keyDir)

	if _, err := src.records.Save(records.Entry{Pocket: 100, Food: 30, Note: "coffee with friends"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := src.records.Save(records.Entry{Pocket: 80, Other: 10, Note: "bus trip"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	// Reconcile during save wrote the sealed dump.
	if _, err := os.Stat(src.layout.DumpSealed); err != nil {
		t.Fatalf("sealed dump missing: %v", err)
	}

	dst := newStack(t, keyDir)
	if err := dst.restore.FromSealedDump(src.layout.DumpSealed); err != nil {
		t.Fatalf("restore: %v", err)
	}

	want, err := src.records.List()
	if err != nil {
		t.Fatalf("src list: %v", err)
	}
	got, err := dst.records.List()
	if err != nil {
		t.Fatalf("dst list: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("restored %d rows, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Note != want[i].Note || got[i].Balance != want[i].Balance {
			t.Fatalf("row %d mismatch: %+v vs %+v", i, got[i], want[i])
		}
	}

	// The regenerated export reflects the restored store exactly.
	csvBytes, err := os.ReadFile(dst.layout.CSVFile)
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if !strings.Contains(string(csvBytes), "coffee with friends") {
		t.Fatal("regenerated export missing restored note")
	}
	srcCSV, err := os.ReadFile(src.layout.CSVFile)
	if err != nil {
		t.Fatalf("read src csv: %v", err)
	}
	if string(csvBytes) != string(srcCSV) {
		t.Fatal("restored export differs from source export")
	}
}

func TestFromSealedDump_Tampered_LeavesStoreUntouched(t *testing.T) {
	keyDir := t.TempDir()
	src := newStack(t, keyDir)
	if _, err := src.records.Save(records.Entry{Pocket: 100, Note: "coffee with friends"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	dst := newStack(t, keyDir)
	if _, err := dst.records.Save(records.Entry{Pocket: 55, Note: "live data"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	sealed, err := os.ReadFile(src.layout.DumpSealed)
	if err != nil {
		t.Fatalf("read dump: %v", err)
	}
	sealed[len(sealed)-1] ^= 0x01
	tampered := filepath.Join(t.TempDir(), "tampered.enc")
	if err := os.WriteFile(tampered, sealed, 0o600); err != nil {
		t.Fatalf("write tampered: %v", err)
	}

	if err := dst.restore.FromSealedDump(tampered); err == nil {
		t.Fatal("expected restore failure on tampered dump")
	}

	rows, err := dst.records.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 1 || rows[0].Note != "live data" {
		t.Fatalf("live store changed after failed restore: %+v", rows)
	}
}

func TestFromSealedDump_WrongKey_Fails(t *testing.T) {
	src := newStack(t, t.TempDir())
	if _, err := src.records.Save(records.Entry{Pocket: 100, Note: "secret"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	other := newStack(t, t.TempDir()) // different salt, different key
	if err := other.restore.FromSealedDump(src.layout.DumpSealed); err == nil {
		t.Fatal("expected authentication failure under a different key")
	}
	n, err := other.ledger.Count()
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Fatalf("rows = %d, want 0", n)
	}
}
