package ledger

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"fintrack/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS records (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	date TEXT,
	pocket INTEGER,
	extra INTEGER,
	total_income INTEGER,
	food INTEGER,
	other INTEGER,
	total_spent INTEGER,
	balance INTEGER,
	note TEXT,
	tags TEXT,
	created_at TEXT
)`

// Store wraps the SQLite database holding the records table.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and ensures the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "create schema")
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Insert stores one row. Note and tags arrive already sealed by the caller;
// the ledger never sees field plaintext.
func (s *Store) Insert(r domain.Record) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO records
		 (date, pocket, extra, total_income, food, other, total_spent, balance, note, tags, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Date, r.Pocket, r.Extra, r.TotalIncome, r.Food, r.Other, r.TotalSpent, r.Balance,
		r.Note, r.Tags, r.CreatedAt,
	)
	if err != nil {
		return 0, errors.Wrap(err, "insert record")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, errors.Wrap(err, "last insert id")
	}
	return id, nil
}

// All returns every row, oldest first.
func (s *Store) All() ([]domain.Record, error) {
	rows, err := s.db.Query(
		`SELECT id, date, pocket, extra, total_income, food, other, total_spent, balance, note, tags, created_at
		 FROM records ORDER BY date ASC, id ASC`)
	if err != nil {
		return nil, errors.Wrap(err, "query records")
	}
	defer rows.Close()

	var out []domain.Record
	for rows.Next() {
		var r domain.Record
		if err := rows.Scan(&r.ID, &r.Date, &r.Pocket, &r.Extra, &r.TotalIncome, &r.Food,
			&r.Other, &r.TotalSpent, &r.Balance, &r.Note, &r.Tags, &r.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "scan record")
		}
		out = append(out, r)
	}
	return out, errors.Wrap(rows.Err(), "iterate records")
}

// Count returns the number of rows.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM records`).Scan(&n); err != nil {
		return 0, errors.Wrap(err, "count records")
	}
	return n, nil
}

// RestoreScript replaces the records table from a dump script inside a
// single transaction. Callers must have authenticated the script first; by
// the time this runs, decryption is already complete.
func (s *Store) RestoreScript(script string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return errors.Wrap(err, "begin restore")
	}
	if _, err := tx.Exec(script); err != nil {
		_ = tx.Rollback()
		return errors.Wrap(err, "execute dump script")
	}
	return errors.Wrap(tx.Commit(), "commit restore")
}
