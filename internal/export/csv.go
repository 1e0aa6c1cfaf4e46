package export

import (
	"bytes"
	"encoding/csv"

	"github.com/pkg/errors"

	"fintrack/internal/domain"
)

// BuildCSV renders records (fields already decrypted for human viewing)
// into the tabular export.
func BuildCSV(rows []domain.Record) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(domain.Columns); err != nil {
		return nil, errors.Wrap(err, "write csv header")
	}
	for _, r := range rows {
		if err := w.Write(r.Row()); err != nil {
			return nil, errors.Wrap(err, "write csv row")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, errors.Wrap(err, "flush csv")
	}
	return buf.Bytes(), nil
}
