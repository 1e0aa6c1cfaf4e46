package ledger

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Dump renders the records table as a self-contained SQL script: drop,
// recreate, and one INSERT per row. Executing the script on any database
// reproduces the table exactly, which makes the (sealed) dump the
// authoritative restore artifact.
func (s *Store) Dump() (string, error) {
	rows, err := s.All()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("DROP TABLE IF EXISTS records;\n")
	b.WriteString(strings.TrimSpace(schema))
	b.WriteString(";\n")
	for _, r := range rows {
		fmt.Fprintf(&b,
			"INSERT INTO records (id, date, pocket, extra, total_income, food, other, total_spent, balance, note, tags, created_at) "+
				"VALUES (%d, %s, %d, %d, %d, %d, %d, %d, %d, %s, %s, %s);\n",
			r.ID, quote(r.Date), r.Pocket, r.Extra, r.TotalIncome, r.Food, r.Other,
			r.TotalSpent, r.Balance, quote(r.Note), quote(r.Tags), quote(r.CreatedAt))
	}
	return b.String(), nil
}

// quote renders a SQL string literal, doubling embedded quotes.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// ValidateScript rejects scripts that clearly are not a records dump, as a
// cheap sanity check before a destructive restore.
func ValidateScript(script string) error {
	if !strings.Contains(script, "CREATE TABLE") || !strings.Contains(script, "records") {
		return errors.New("script does not look like a records dump")
	}
	return nil
}
