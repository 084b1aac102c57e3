// Package catalog persists file fingerprints in a SQLite database so that
// separate scans can be compared for likely-identical files.
package catalog

import (
	"github.com/inojacob/gethash/internal/herror"

	"database/sql"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const versionKey = "version"
const version = 1

// FileRecord is one cataloged fingerprint.
type FileRecord struct {
	Path      string
	Sum       uint64
	Size      uint64
	ScannedAt time.Time
}

// DuplicateSet groups the paths that share a fingerprint and size.
type DuplicateSet struct {
	Sum   uint64
	Size  uint64
	Paths []string
}

// Summary describes the catalog contents.
type Summary struct {
	Files     int64
	Distinct  int64
	Duplicate int64
}

// A database session, or a transaction.
//
// Calling Begin() returns a Session that is a transaction; calling Commit()
// on that session commits it. The db field is non-nil for a new session. For
// an open transaction, db is nil and tx is non-nil. Once Commit() is called,
// both are nil and any further method calls fail.
type Session struct {
	db *sql.DB
	tx *sql.Tx
}

var inMemoryDbCtr int64 = 0

// NewInMemory returns a session backed by a fresh in-memory database, for
// tests. Each call gets a distinct database that still supports multiple
// connections (https://www.sqlite.org/inmemorydb.html#sharedmemdb).
func NewInMemory() (*Session, herror.Interface) {
	ctr := atomic.AddInt64(&inMemoryDbCtr, 1)
	return New(fmt.Sprintf("file:gethashmemdb%d?mode=memory&cache=shared", ctr))
}

func New(dataSourceName string) (*Session, herror.Interface) {
	db, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, herror.Internal(err, "")
	}
	// execute dummy statement to catch problems with db access
	if _, err := db.Exec(""); err != nil {
		return nil, herror.Unlikely(err, fmt.Sprintf("unable to access database at '%s'", dataSourceName), `
Ensure that the directory is writable, and if the database file already exists, ensure it is readable and writable.
		`)
	}
	s := &Session{db: db}
	if herr := s.checkVersion(); herr != nil {
		return nil, herr
	}
	if err := s.initSchema(); err != nil {
		return nil, herror.Internal(err, "")
	}
	return s, nil
}

func (s *Session) checkVersion() herror.Interface {
	_, err := s.db.Exec(`
	CREATE TABLE IF NOT EXISTS meta
	(
		key   TEXT UNIQUE NOT NULL,
		value BLOB NOT NULL
	)
	`)
	if err != nil {
		return herror.Internal(err, "")
	}
	row := s.db.QueryRow("SELECT value FROM meta WHERE key = ?", versionKey)
	var dbVersion string
	err = row.Scan(&dbVersion)
	if err == sql.ErrNoRows {
		_, err = s.db.Exec("INSERT INTO meta (key, value) VALUES (?, ?)", versionKey, strconv.Itoa(version))
		if err != nil {
			return herror.Internal(err, "")
		}
		return nil
	}
	if err != nil {
		return herror.Internal(err, "")
	}
	dbVersionInt, err := strconv.ParseInt(dbVersion, 10, 0)
	if err != nil || dbVersionInt != version {
		return herror.Unlikely(nil, fmt.Sprintf("database version mismatch: expected %d, got %s", version, dbVersion), `
This database was likely produced by an incompatible version of gethash. Either use a compatible version, or delete the database (by running 'gh forget') and try again.
		`)
	}
	return nil
}

func (s *Session) initSchema() error {
	// fingerprint sums are unsigned 64-bit values; they are stored in
	// SQLite's signed INTEGER column with the same bit pattern
	_, err := s.db.Exec(`
	CREATE TABLE IF NOT EXISTS fingerprint
	(
		path       TEXT PRIMARY KEY NOT NULL,
		sum        INTEGER NOT NULL,
		size       INTEGER NOT NULL,
		scanned_at INTEGER NOT NULL
	)
	`)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
	CREATE INDEX IF NOT EXISTS fingerprint_sum_size ON fingerprint (sum, size)
	`)
	return err
}

func (s *Session) Begin() (*Session, herror.Interface) {
	if s.tx != nil {
		return nil, herror.Internal(nil, "cannot Begin(): already in a transaction")
	}
	if s.db == nil {
		return nil, herror.Internal(nil, "cannot Begin(): finished transaction")
	}
	tx, err := s.db.Begin()
	if err != nil {
		return nil, herror.Internal(err, "")
	}
	return &Session{db: nil, tx: tx}, nil
}

func (s *Session) Commit() herror.Interface {
	if s.tx == nil {
		return herror.Internal(nil, "Commit(): not in a running transaction")
	}
	if err := s.tx.Commit(); err != nil {
		return herror.Internal(err, "")
	}
	s.tx = nil
	return nil
}

func (s *Session) Rollback() herror.Interface {
	if s.tx == nil {
		return herror.Internal(nil, "Rollback(): not in a running transaction")
	}
	if err := s.tx.Rollback(); err != nil {
		return herror.Internal(err, "")
	}
	s.tx = nil
	return nil
}

func (s *Session) query(query string, args ...interface{}) (*sql.Rows, error) {
	if s.tx != nil {
		return s.tx.Query(query, args...)
	}
	if s.db == nil {
		return nil, herror.Internal(nil, "transaction is finished")
	}
	return s.db.Query(query, args...)
}

func (s *Session) queryRow(query string, args ...interface{}) (*sql.Row, herror.Interface) {
	if s.tx != nil {
		return s.tx.QueryRow(query, args...), nil
	}
	if s.db == nil {
		return nil, herror.Internal(nil, "transaction is finished")
	}
	return s.db.QueryRow(query, args...), nil
}

func (s *Session) exec(query string, args ...interface{}) (sql.Result, error) {
	if s.tx != nil {
		return s.tx.Exec(query, args...)
	}
	if s.db == nil {
		return nil, herror.Internal(nil, "transaction is finished")
	}
	return s.db.Exec(query, args...)
}

// Put inserts a fingerprint record, replacing any previous record for the
// same path.
func (s *Session) Put(record FileRecord) herror.Interface {
	_, err := s.exec(`
	INSERT INTO fingerprint (path, sum, size, scanned_at) VALUES (?, ?, ?, ?)
	ON CONFLICT (path) DO UPDATE SET sum = excluded.sum, size = excluded.size, scanned_at = excluded.scanned_at
	`, record.Path, int64(record.Sum), int64(record.Size), record.ScannedAt.Unix())
	if err != nil {
		return herror.Internal(err, "")
	}
	return nil
}

// Get returns the record for a path, or nil if the path is not cataloged.
func (s *Session) Get(path string) (*FileRecord, herror.Interface) {
	row, herr := s.queryRow(`
	SELECT path, sum, size, scanned_at FROM fingerprint WHERE path = ?
	`, path)
	if herr != nil {
		return nil, herr
	}
	var record FileRecord
	var sum, size, scannedAt int64
	err := row.Scan(&record.Path, &sum, &size, &scannedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, herror.Internal(err, "")
	}
	record.Sum = uint64(sum)
	record.Size = uint64(size)
	record.ScannedAt = time.Unix(scannedAt, 0)
	return &record, nil
}

// Duplicates returns the groups of cataloged paths sharing a (sum, size)
// pair, largest files first.
func (s *Session) Duplicates() ([]DuplicateSet, herror.Interface) {
	rows, err := s.query(`
	SELECT f.path, f.sum, f.size FROM fingerprint f
	JOIN (
		SELECT sum, size FROM fingerprint GROUP BY sum, size HAVING COUNT(*) > 1
	) d ON f.sum = d.sum AND f.size = d.size
	ORDER BY f.size DESC, f.sum, f.path
	`)
	if err != nil {
		return nil, herror.Internal(err, "")
	}
	defer rows.Close()
	var sets []DuplicateSet
	for rows.Next() {
		var path string
		var sum, size int64
		if err := rows.Scan(&path, &sum, &size); err != nil {
			return nil, herror.Internal(err, "")
		}
		if len(sets) == 0 || sets[len(sets)-1].Sum != uint64(sum) || sets[len(sets)-1].Size != uint64(size) {
			sets = append(sets, DuplicateSet{Sum: uint64(sum), Size: uint64(size)})
		}
		last := &sets[len(sets)-1]
		last.Paths = append(last.Paths, path)
	}
	if err := rows.Err(); err != nil {
		return nil, herror.Internal(err, "")
	}
	return sets, nil
}

// CatalogSummary counts cataloged files and distinct fingerprints.
func (s *Session) CatalogSummary() (Summary, herror.Interface) {
	row, herr := s.queryRow(`
	SELECT COUNT(*), COUNT(DISTINCT sum || '/' || size) FROM fingerprint
	`)
	if herr != nil {
		return Summary{}, herr
	}
	var summary Summary
	if err := row.Scan(&summary.Files, &summary.Distinct); err != nil {
		return Summary{}, herror.Internal(err, "")
	}
	summary.Duplicate = summary.Files - summary.Distinct
	return summary, nil
}

// RemoveDir drops all records at or below the given absolute path.
func (s *Session) RemoveDir(path string) herror.Interface {
	_, err := s.exec(`
	DELETE FROM fingerprint WHERE path = ? OR path LIKE ? || '/%'
	`, path, path)
	if err != nil {
		return herror.Internal(err, "")
	}
	return nil
}

// RemoveAll empties the catalog.
func (s *Session) RemoveAll() herror.Interface {
	_, err := s.exec(`DELETE FROM fingerprint`)
	if err != nil {
		return herror.Internal(err, "")
	}
	return nil
}
