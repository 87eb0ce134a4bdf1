package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ImportCSV loads a previously exported catalog file into the store.
// Exported ids are remapped to freshly assigned ids, and variant links
// are re-created between rows that both appear in the file. Returns the
// number of idioms imported.
func (s *Store) ImportCSV(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open import file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return 0, fmt.Errorf("read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.TrimSpace(h)] = i
	}
	for _, required := range csvHeader {
		if _, ok := col[required]; !ok && required != "variants" && required != "created_at" {
			return 0, fmt.Errorf("import file missing column %q", required)
		}
	}

	field := func(record []string, name string) string {
		idx, ok := col[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return record[idx]
	}

	// First pass: insert rows, remembering how exported ids map to the
	// ids this store assigned.
	newID := make(map[int64]int64)
	links := make(map[int64][]int64)
	count := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, fmt.Errorf("read row: %w", err)
		}

		oldID, err := strconv.ParseInt(field(record, "id"), 10, 64)
		if err != nil {
			return count, fmt.Errorf("bad id %q: %w", field(record, "id"), err)
		}

		c := Candidate{
			CreatedBy:     field(record, "created_by"),
			IdiomEN:       field(record, "idiom_en"),
			IdiomHE:       field(record, "idiom_he"),
			TranslationEN: field(record, "translation_en"),
			TranslationHE: field(record, "translation_he"),
			HalfEN:        field(record, "half_en"),
			HalfHE:        field(record, "half_he"),
			OffEN:         field(record, "off_en"),
			OffHE:         field(record, "off_he"),
		}
		id, err := s.AddIdiom(c)
		if err != nil {
			return count, fmt.Errorf("import row %d: %w", oldID, err)
		}
		newID[oldID] = id
		count++

		if v := strings.TrimSpace(field(record, "variants")); v != "" {
			for _, part := range strings.Split(v, ",") {
				linked, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
				if err != nil {
					return count, fmt.Errorf("row %d: bad variant id %q: %w", oldID, part, err)
				}
				links[oldID] = append(links[oldID], linked)
			}
		}
	}

	// Second pass: re-create links. AddVariantLink is idempotent, so the
	// symmetric entries in the file are harmless.
	for oldID, linked := range links {
		for _, oldLinked := range linked {
			to, ok := newID[oldLinked]
			if !ok {
				continue // linked row absent from the file
			}
			if err := s.AddVariantLink(newID[oldID], to); err != nil {
				return count, fmt.Errorf("relink %d<->%d: %w", oldID, oldLinked, err)
			}
		}
	}

	return count, nil
}
