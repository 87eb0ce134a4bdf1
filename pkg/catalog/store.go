// Package catalog is the durable store for idiom pairs and their
// variant links, backed by a single SQLite file that may live in a
// folder-synced directory shared with teammates.
package catalog

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/hazyhaar/idiom-ledger/pkg/lang"
	"github.com/hazyhaar/idiom-ledger/pkg/similarity"
)

var (
	// ErrNotFound means an operation referenced an unknown idiom id.
	ErrNotFound = errors.New("idiom not found")
	// ErrMissingFields means a required text field is empty after
	// normalization.
	ErrMissingFields = errors.New("idiom and translation are required in both languages")
	// ErrSelfLink means a variant link was attempted from an idiom to itself.
	ErrSelfLink = errors.New("an idiom cannot be a variant of itself")
)

// Candidate is an idiom-shaped value that has not been persisted yet.
type Candidate struct {
	CreatedBy     string
	IdiomEN       string
	IdiomHE       string
	TranslationEN string
	TranslationHE string
	HalfEN        string
	HalfHE        string
	OffEN         string
	OffHE         string
}

// Normalize canonicalizes every text field in place.
func (c *Candidate) Normalize() {
	c.CreatedBy = lang.Normalize(c.CreatedBy)
	c.IdiomEN = lang.Normalize(c.IdiomEN)
	c.IdiomHE = lang.Normalize(c.IdiomHE)
	c.TranslationEN = lang.Normalize(c.TranslationEN)
	c.TranslationHE = lang.Normalize(c.TranslationHE)
	c.HalfEN = lang.Normalize(c.HalfEN)
	c.HalfHE = lang.Normalize(c.HalfHE)
	c.OffEN = lang.Normalize(c.OffEN)
	c.OffHE = lang.Normalize(c.OffHE)
}

// Valid reports whether the four required fields are non-empty after
// normalization.
func (c *Candidate) Valid() bool {
	return lang.RequiredFieldsPresent(c.IdiomEN, c.IdiomHE, c.TranslationEN, c.TranslationHE)
}

// Idiom is one persisted catalog record.
type Idiom struct {
	ID int64
	Candidate
	CreatedAt time.Time
}

// Store wraps the SQLite catalog. Calls are synchronous and the store
// is not internally thread-safe; SQLite's WAL mode tolerates another
// process touching the same file, but nothing here resolves sync-folder
// races between machines.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the catalog database at path, creating the
// parent directory and both tables if needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("open catalog db: %w", err)
	}

	const ddl = `
	CREATE TABLE IF NOT EXISTS idioms (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		idiom_en       TEXT NOT NULL,
		idiom_he       TEXT NOT NULL,
		translation_en TEXT NOT NULL,
		translation_he TEXT NOT NULL,
		half_en        TEXT NOT NULL DEFAULT '',
		half_he        TEXT NOT NULL DEFAULT '',
		off_en         TEXT NOT NULL DEFAULT '',
		off_he         TEXT NOT NULL DEFAULT '',
		created_by     TEXT NOT NULL,
		created_at     INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS variant_links (
		idiom_id   INTEGER NOT NULL REFERENCES idioms(id) ON DELETE CASCADE,
		variant_id INTEGER NOT NULL REFERENCES idioms(id) ON DELETE CASCADE,
		PRIMARY KEY (idiom_id, variant_id)
	);`
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("create catalog tables: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the SQLite handle.
func (s *Store) Close() error {
	return s.db.Close()
}

const idiomCols = `id, idiom_en, idiom_he, translation_en, translation_he,
	half_en, half_he, off_en, off_he, created_by, created_at`

func scanIdiom(row interface{ Scan(...any) error }) (Idiom, error) {
	var i Idiom
	var createdAt int64
	err := row.Scan(&i.ID, &i.IdiomEN, &i.IdiomHE, &i.TranslationEN, &i.TranslationHE,
		&i.HalfEN, &i.HalfHE, &i.OffEN, &i.OffHE, &i.CreatedBy, &createdAt)
	if err != nil {
		return Idiom{}, err
	}
	i.CreatedAt = time.Unix(createdAt, 0).UTC()
	return i, nil
}

// AddIdiom normalizes and persists a candidate, returning the new id.
// The required-fields invariant is enforced here as well as at the
// front-end boundary.
func (s *Store) AddIdiom(c Candidate) (int64, error) {
	c.Normalize()
	if !c.Valid() {
		return 0, ErrMissingFields
	}

	res, err := s.db.Exec(`INSERT INTO idioms
		(idiom_en, idiom_he, translation_en, translation_he,
		 half_en, half_he, off_en, off_he, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.IdiomEN, c.IdiomHE, c.TranslationEN, c.TranslationHE,
		c.HalfEN, c.HalfHE, c.OffEN, c.OffHE, c.CreatedBy, time.Now().Unix())
	if err != nil {
		return 0, fmt.Errorf("insert idiom: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert idiom: %w", err)
	}
	return id, nil
}

// GetIdiom fetches one record by id.
func (s *Store) GetIdiom(id int64) (Idiom, error) {
	row := s.db.QueryRow(`SELECT `+idiomCols+` FROM idioms WHERE id = ?`, id)
	i, err := scanIdiom(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Idiom{}, fmt.Errorf("idiom %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return Idiom{}, fmt.Errorf("get idiom %d: %w", id, err)
	}
	return i, nil
}

// GetAllIdioms returns every record ordered by id ascending. The
// matcher's first-seen-wins tie-break relies on this order.
func (s *Store) GetAllIdioms() ([]Idiom, error) {
	rows, err := s.db.Query(`SELECT ` + idiomCols + ` FROM idioms ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list idioms: %w", err)
	}
	defer rows.Close()

	var idioms []Idiom
	for rows.Next() {
		i, err := scanIdiom(rows)
		if err != nil {
			return nil, fmt.Errorf("scan idiom: %w", err)
		}
		idioms = append(idioms, i)
	}
	return idioms, rows.Err()
}

// UpdateIdiom replaces every text field of an existing record.
func (s *Store) UpdateIdiom(id int64, c Candidate) error {
	c.Normalize()
	if !c.Valid() {
		return ErrMissingFields
	}

	res, err := s.db.Exec(`UPDATE idioms SET
		idiom_en = ?, idiom_he = ?, translation_en = ?, translation_he = ?,
		half_en = ?, half_he = ?, off_en = ?, off_he = ?
		WHERE id = ?`,
		c.IdiomEN, c.IdiomHE, c.TranslationEN, c.TranslationHE,
		c.HalfEN, c.HalfHE, c.OffEN, c.OffHE, id)
	if err != nil {
		return fmt.Errorf("update idiom %d: %w", id, err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("idiom %d: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteIdiom removes a record; its variant links go with it via
// cascading foreign keys.
func (s *Store) DeleteIdiom(id int64) error {
	res, err := s.db.Exec(`DELETE FROM idioms WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete idiom %d: %w", id, err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("idiom %d: %w", id, ErrNotFound)
	}
	return nil
}

// AddVariantLink records that two idioms are variants of each other.
// The link is symmetric (both directions are inserted) and idempotent
// (re-linking an existing pair changes nothing). Self-links are
// rejected.
func (s *Store) AddVariantLink(id1, id2 int64) error {
	if id1 == id2 {
		return ErrSelfLink
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("link %d<->%d: %w", id1, id2, err)
	}
	defer tx.Rollback()

	const q = `INSERT OR IGNORE INTO variant_links (idiom_id, variant_id) VALUES (?, ?)`
	if _, err := tx.Exec(q, id1, id2); err != nil {
		return fmt.Errorf("link %d->%d: %w", id1, id2, err)
	}
	if _, err := tx.Exec(q, id2, id1); err != nil {
		return fmt.Errorf("link %d->%d: %w", id2, id1, err)
	}
	return tx.Commit()
}

// Variants returns the ids linked to id, ascending.
func (s *Store) Variants(id int64) ([]int64, error) {
	rows, err := s.db.Query(`SELECT variant_id FROM variant_links WHERE idiom_id = ? ORDER BY variant_id`, id)
	if err != nil {
		return nil, fmt.Errorf("variants of %d: %w", id, err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var v int64
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan variant id: %w", err)
		}
		ids = append(ids, v)
	}
	return ids, rows.Err()
}

// CountByCreator returns how many idioms a user has entered.
func (s *Store) CountByCreator(username string) (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM idioms WHERE created_by = ?`, username).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count idioms by %s: %w", username, err)
	}
	return n, nil
}

// MatchEntries converts stored idioms into the matcher's input form,
// preserving order.
func MatchEntries(idioms []Idiom) []similarity.Entry {
	entries := make([]similarity.Entry, len(idioms))
	for i, idm := range idioms {
		entries[i] = similarity.Entry{ID: idm.ID, EN: idm.IdiomEN, HE: idm.IdiomHE}
	}
	return entries
}
