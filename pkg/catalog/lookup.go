package catalog

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/hazyhaar/idiom-ledger/pkg/lang"
)

// Exact-text duplicate checks used by front ends before the fuzzy scan.
// Inputs are normalized here so that callers and the stored rows agree.

func (s *Store) findOne(query, arg string) (Idiom, bool, error) {
	row := s.db.QueryRow(`SELECT `+idiomCols+` FROM idioms WHERE `+query+` ORDER BY id LIMIT 1`, arg)
	i, err := scanIdiom(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Idiom{}, false, nil
	}
	if err != nil {
		return Idiom{}, false, fmt.Errorf("lookup idiom: %w", err)
	}
	return i, true, nil
}

// FindByEnglish returns the first idiom whose English text equals en.
func (s *Store) FindByEnglish(en string) (Idiom, bool, error) {
	return s.findOne(`idiom_en = ?`, lang.Normalize(en))
}

// FindByHebrew returns the first idiom whose Hebrew text equals he.
func (s *Store) FindByHebrew(he string) (Idiom, bool, error) {
	return s.findOne(`idiom_he = ?`, lang.Normalize(he))
}

// FindExactPair returns the first idiom matching both texts exactly.
func (s *Store) FindExactPair(en, he string) (Idiom, bool, error) {
	row := s.db.QueryRow(`SELECT `+idiomCols+` FROM idioms WHERE idiom_en = ? AND idiom_he = ? ORDER BY id LIMIT 1`,
		lang.Normalize(en), lang.Normalize(he))
	i, err := scanIdiom(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Idiom{}, false, nil
	}
	if err != nil {
		return Idiom{}, false, fmt.Errorf("lookup idiom pair: %w", err)
	}
	return i, true, nil
}
