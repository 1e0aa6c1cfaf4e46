package domain

import "path/filepath"

// SealedSuffix is appended to an artifact path to name its encrypted sibling.
const SealedSuffix = ".enc"

// Backup categories. Each names one artifact family in the backup directory.
const (
	CategoryDump     = "dbdump"
	CategoryCSV      = "csv"
	CategoryWorkbook = "workbook"
	CategoryState    = "state"
)

// Categories lists all backup categories in a fixed order.
var Categories = []string{CategoryDump, CategoryCSV, CategoryWorkbook, CategoryState}

// Layout fixes every persisted path under a single data directory.
type Layout struct {
	DataDir   string
	BackupDir string

	DBFile       string
	CSVFile      string
	WorkbookFile string
	StateFile    string

	// The dump exists only in sealed form; it is the authoritative
	// restore artifact.
	DumpSealed string
}

// NewLayout derives the stable file layout from a data directory.
func NewLayout(dataDir string) Layout {
	return Layout{
		DataDir:      dataDir,
		BackupDir:    filepath.Join(dataDir, "backup"),
		DBFile:       filepath.Join(dataDir, "finance.db"),
		CSVFile:      filepath.Join(dataDir, "daily_finance_tracker.csv"),
		WorkbookFile: filepath.Join(dataDir, "daily_finance_tracker.xlsx"),
		StateFile:    filepath.Join(dataDir, "finance_state.json"),
		DumpSealed:   filepath.Join(dataDir, "finance_dump.sql"+SealedSuffix),
	}
}

// Sealed returns the encrypted sibling path for a plaintext artifact.
func Sealed(path string) string { return path + SealedSuffix }
