package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"punchsheet/internal/timeutil"
	"punchsheet/rates"
)

type SQLiteStore struct {
	db *sql.DB
}

var (
	ErrRatesNotFound    = errors.New("rates not found")
	ErrNotRatesDatabase = errors.New("not a rates database")
)

func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// InspectRates counts the rates stored in an existing database without
// creating or changing anything in it. Files that are not SQLite or have
// no rates table fail with ErrNotRatesDatabase.
func InspectRates(path string) (int, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return 0, fmt.Errorf("open sqlite db: %w", err)
	}
	defer db.Close()

	var tables int
	err = db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'rates';`).Scan(&tables)
	if err != nil {
		return 0, fmt.Errorf("%s: %w: %v", path, ErrNotRatesDatabase, err)
	}
	if tables == 0 {
		return 0, fmt.Errorf("%s: %w: no rates table", path, ErrNotRatesDatabase)
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM rates;`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count rates: %w", err)
	}
	return count, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) ensureSchema() error {
	// Amounts are stored as decimal text so rates round-trip exactly.
	const schema = `
CREATE TABLE IF NOT EXISTS rates (
	employee_id TEXT PRIMARY KEY,
	rate TEXT NOT NULL,
	start_date TEXT NOT NULL DEFAULT '',
	extra TEXT NOT NULL DEFAULT '0',
	details TEXT NOT NULL DEFAULT '',
	source_file TEXT NOT NULL DEFAULT '',
	imported_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// ReplaceRates swaps the stored table for records in one transaction and
// returns the number of rows written.
func (s *SQLiteStore) ReplaceRates(records []rates.Record, sourceFile string) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM rates;`); err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("clear rates: %w", err)
	}

	const insertStmt = `
INSERT OR REPLACE INTO rates (
	employee_id,
	rate,
	start_date,
	extra,
	details,
	source_file
) VALUES (?, ?, ?, ?, ?, ?);`

	stmt, err := tx.Prepare(insertStmt)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("prepare insert statement: %w", err)
	}
	defer stmt.Close()

	written := 0
	for _, record := range records {
		id := strings.TrimSpace(record.EmployeeID)
		if id == "" {
			continue
		}
		startRaw := ""
		if record.HasStart() {
			startRaw = record.Start.Format(timeutil.DateLayout)
		}
		if _, err := stmt.Exec(id, record.Rate.String(), startRaw, record.Extra.String(), record.Details, sourceFile); err != nil {
			_ = tx.Rollback()
			return written, fmt.Errorf("insert rate for %s: %w", id, err)
		}
		written++
	}

	if err := tx.Commit(); err != nil {
		return written, fmt.Errorf("commit transaction: %w", err)
	}

	return written, nil
}

// ListRates returns all stored rates ordered by employee ID. An empty
// table is reported as ErrRatesNotFound.
func (s *SQLiteStore) ListRates() ([]rates.Record, error) {
	const query = `
SELECT
	employee_id,
	rate,
	start_date,
	extra,
	details
FROM rates;
`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("query rates: %w", err)
	}
	defer rows.Close()

	records := make([]rates.Record, 0, 64)
	for rows.Next() {
		record, err := scanRate(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rates: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrRatesNotFound
	}

	table, _ := rates.NewTable(records)
	return table.Records(), nil
}

// GetRate returns the stored rate of one employee.
func (s *SQLiteStore) GetRate(employeeID string) (rates.Record, bool, error) {
	const query = `
SELECT
	employee_id,
	rate,
	start_date,
	extra,
	details
FROM rates
WHERE employee_id = ?;
`

	record, err := scanRate(s.db.QueryRow(query, strings.TrimSpace(employeeID)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return rates.Record{}, false, nil
		}
		return rates.Record{}, false, err
	}
	return record, true, nil
}

func (s *SQLiteStore) DeleteAllRates() (int64, error) {
	res, err := s.db.Exec(`DELETE FROM rates;`)
	if err != nil {
		return 0, fmt.Errorf("delete rates: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("read deleted row count: %w", err)
	}
	return rows, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRate(row rowScanner) (rates.Record, error) {
	var (
		record   rates.Record
		rateRaw  string
		startRaw string
		extraRaw string
	)
	if err := row.Scan(&record.EmployeeID, &rateRaw, &startRaw, &extraRaw, &record.Details); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return rates.Record{}, err
		}
		return rates.Record{}, fmt.Errorf("scan rate: %w", err)
	}

	var err error
	record.Rate, err = decimal.NewFromString(rateRaw)
	if err != nil {
		return rates.Record{}, fmt.Errorf("parse stored rate %q for %s: %w", rateRaw, record.EmployeeID, err)
	}
	record.Extra, err = decimal.NewFromString(extraRaw)
	if err != nil {
		return rates.Record{}, fmt.Errorf("parse stored extra %q for %s: %w", extraRaw, record.EmployeeID, err)
	}
	if startRaw != "" {
		record.Start, err = timeutil.ParseDate(startRaw)
		if err != nil {
			return rates.Record{}, fmt.Errorf("parse stored start %q for %s: %w", startRaw, record.EmployeeID, err)
		}
	}
	return record, nil
}
