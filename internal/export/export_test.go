package export_test

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"fintrack/internal/crypto"
	"fintrack/internal/domain"
	"fintrack/internal/export"
)

func sampleRows() []domain.Record {
	return []domain.Record{
		{
			Date: "2026-08-24", Pocket: 100, Extra: 0, TotalIncome: 100,
			Food: 30, Other: 0, TotalSpent: 30, Balance: 70,
			Note: "coffee with friends", Tags: "#food",
		},
		{
			Date: "2026-08-25", Pocket: 100, Extra: 50, TotalIncome: 150,
			Food: 0, Other: 20, TotalSpent: 20, Balance: 130,
			Note: "bus trip", Tags: "#travel",
		},
	}
}

func TestBuildCSV(t *testing.T) {
	b, err := export.BuildCSV(sampleRows())
	if err != nil {
		t.Fatalf("build csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	if len(lines) != 3 {
		t.Fatalf("csv lines = %d, want 3", len(lines))
	}
	if !strings.HasPrefix(lines[0], "Date,Pocket Money,Extra Income") {
		t.Fatalf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], "coffee with friends") {
		t.Fatalf("row = %q, want decrypted note", lines[1])
	}
}

func TestBuildWorkbook(t *testing.T) {
	b, err := export.BuildWorkbook(sampleRows())
	if err != nil {
		t.Fatalf("build workbook: %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(b))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	got, err := f.GetCellValue(export.SheetName, "I2")
	if err != nil {
		t.Fatalf("read cell: %v", err)
	}
	if got != "coffee with friends" {
		t.Fatalf("I2 = %q, want note", got)
	}
}

func TestState_RoundTrip(t *testing.T) {
	b, err := export.EncodeState(export.State{DayIndex: 7, BalanceRollover: 130})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	s, err := export.DecodeState(b)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if s.DayIndex != 7 || s.BalanceRollover != 130 {
		t.Fatalf("state = %+v", s)
	}
}

func TestBuildBundle_SealedTarball(t *testing.T) {
	dir := t.TempDir()
	ks, err := crypto.LoadWithPassphrase(t.TempDir(), "correct horse battery")
	if err != nil {
		t.Fatalf("keystore: %v", err)
	}
	sealer, err := crypto.NewSealer(ks)
	if err != nil {
		t.Fatalf("sealer: %v", err)
	}

	a := filepath.Join(dir, "a.enc")
	if err := os.WriteFile(a, []byte("sealed-a"), 0o600); err != nil {
		t.Fatalf("seed: %v", err)
	}
	missing := filepath.Join(dir, "gone.enc")

	blob, err := export.BuildBundle(sealer, dir, []string{a, missing})
	if err != nil {
		t.Fatalf("build bundle: %v", err)
	}

	plain, err := sealer.Open(blob)
	if err != nil {
		t.Fatalf("open bundle: %v", err)
	}
	gz, err := gzip.NewReader(bytes.NewReader(plain))
	if err != nil {
		t.Fatalf("gzip: %v", err)
	}
	tr := tar.NewReader(gz)

	var names []string
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("tar next: %v", err)
		}
		names = append(names, hdr.Name)
	}
	if len(names) != 1 || names[0] != "a.enc" {
		t.Fatalf("bundle members = %v, want [a.enc]", names)
	}
}
