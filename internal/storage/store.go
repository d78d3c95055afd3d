package storage

import (
	"database/sql"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/matthewjhunter/longbox/internal/errs"
)

const busyTimeoutMS = 5000

// Store owns the single open handle to a collection database.
type Store struct {
	db   *sqlx.DB
	path string
}

// Open opens (creating if needed) the database at path and ensures the
// schema exists. Opening an already initialized file changes nothing.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errs.Invalid("database path", path, "must not be empty")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errs.Storage("resolve database path", err)
	}

	db, err := sqlx.Open("sqlite", dsn(abs))
	if err != nil {
		return nil, errs.Storage("failed to open database", err)
	}

	// One writer, one handle: every operation is serialized on this connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errs.Storage("failed to connect to database", err)
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, errs.Storage("failed to initialize schema", err)
	}

	return &Store{db: db, path: abs}, nil
}

// dsn builds a file: URI for abs. The path is percent-escaped so names
// containing '?', '#' or '%' still address the intended file.
func dsn(abs string) string {
	p := filepath.ToSlash(abs)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	u := url.URL{
		Scheme:   "file",
		Path:     p,
		RawQuery: fmt.Sprintf("_pragma=busy_timeout(%d)&_pragma=foreign_keys(1)", busyTimeoutMS),
	}
	return u.String()
}

// Close closes the database connection
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the absolute path of the open database file.
func (s *Store) Path() string {
	return s.path
}

// Stats returns the number of records of each kind.
func (s *Store) Stats() (Stats, error) {
	var st Stats
	err := s.db.Get(&st, `
		SELECT
			(SELECT COUNT(*) FROM sequenced_items) AS sequenced,
			(SELECT COUNT(*) FROM categorized_items) AS categorized,
			(SELECT COUNT(*) FROM narrative_items) AS narrative`)
	if err != nil {
		return Stats{}, errs.Storage("failed to count records", err)
	}
	return st, nil
}

// Backup writes a consistent copy of the open database to dest. dest must
// not already exist.
func (s *Store) Backup(dest string) error {
	abs, err := filepath.Abs(dest)
	if err != nil {
		return errs.Storage("resolve backup path", err)
	}
	if abs == s.path {
		return errs.Invalid("backup path", dest, "is the open database")
	}
	if _, err := s.db.Exec("VACUUM INTO ?", abs); err != nil {
		return errs.Storage("failed to back up database", err)
	}
	return nil
}

// QueryResult is the outcome of an ad-hoc statement.
type QueryResult struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// RawQuery runs an arbitrary SQL statement and returns its rows as text.
// Statements that return no rows yield an empty result.
func (s *Store) RawQuery(query string, args ...any) (*QueryResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errs.Invalid("query", query, "must not be empty")
	}
	rows, err := s.db.Queryx(query, args...)
	if err != nil {
		return nil, errs.Storage("failed to run query", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, errs.Storage("failed to read columns", err)
	}

	result := &QueryResult{Columns: cols, Rows: [][]string{}}
	for rows.Next() {
		vals, err := rows.SliceScan()
		if err != nil {
			return nil, errs.Storage("failed to scan row", err)
		}
		row := make([]string, len(vals))
		for i, v := range vals {
			row[i] = cellString(v)
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Storage("failed to read rows", err)
	}
	return result, nil
}

func cellString(v any) string {
	switch t := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(t)
	default:
		return fmt.Sprint(t)
	}
}

// exec runs a single mutating statement. Each call commits on its own.
func (s *Store) exec(op, query string, args ...any) (sql.Result, error) {
	res, err := s.db.Exec(query, args...)
	if err != nil {
		return nil, errs.Storage(op, err)
	}
	return res, nil
}
