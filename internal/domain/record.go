package domain

import "strconv"

// Columns is the export header shared by the CSV and workbook artifacts.
var Columns = []string{
	"Date",
	"Pocket Money",
	"Extra Income",
	"Total Income",
	"Food & Drinks",
	"Other Spending",
	"Total Spent",
	"Balance",
	"Note",
	"Tags",
}

// Record is one daily ledger row. Note and Tags are the only sensitive
// fields; in the database they are held in sealed form, everywhere a Record
// is handed to a display or export path they are plaintext.
type Record struct {
	ID          int64
	Date        string // YYYY-MM-DD
	Pocket      int
	Extra       int
	TotalIncome int
	Food        int
	Other       int
	TotalSpent  int
	Balance     int
	Note        string
	Tags        string
	CreatedAt   string // RFC 3339
}

// Row renders the record in Columns order for flat exports.
func (r Record) Row() []string {
	return []string{
		r.Date,
		strconv.Itoa(r.Pocket),
		strconv.Itoa(r.Extra),
		strconv.Itoa(r.TotalIncome),
		strconv.Itoa(r.Food),
		strconv.Itoa(r.Other),
		strconv.Itoa(r.TotalSpent),
		strconv.Itoa(r.Balance),
		r.Note,
		r.Tags,
	}
}
