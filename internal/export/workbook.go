package export

import (
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"fintrack/internal/domain"
)

// SheetName is the single sheet carrying the daily records.
const SheetName = "Daily Records"

// BuildWorkbook renders records into xlsx bytes.
func BuildWorkbook(rows []domain.Record) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, errors.Wrap(err, "name sheet")
	}

	header := make([]interface{}, len(domain.Columns))
	for i, c := range domain.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, errors.Wrap(err, "write header row")
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, errors.Wrap(err, "cell name")
		}
		row := []interface{}{
			r.Date, r.Pocket, r.Extra, r.TotalIncome, r.Food,
			r.Other, r.TotalSpent, r.Balance, r.Note, r.Tags,
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, errors.Wrap(err, "write row")
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, errors.Wrap(err, "render workbook")
	}
	return buf.Bytes(), nil
}
