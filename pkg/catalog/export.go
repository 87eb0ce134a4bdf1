package catalog

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// csvHeader is the column layout of an export file. Import relies on it.
var csvHeader = []string{
	"id", "idiom_en", "idiom_he", "translation_en", "translation_he",
	"half_en", "half_he", "off_en", "off_he",
	"created_by", "created_at", "variants",
}

// ExportCSV writes the whole catalog to path as UTF-8 CSV with a
// byte-order mark so spreadsheet tools pick up the Hebrew columns
// correctly. The variants column is a comma-joined list of linked ids.
// Returns the number of rows written.
func (s *Store) ExportCSV(path string) (int, error) {
	idioms, err := s.GetAllIdioms()
	if err != nil {
		return 0, err
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create export file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString("\uFEFF"); err != nil {
		return 0, fmt.Errorf("write BOM: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return 0, fmt.Errorf("write header: %w", err)
	}

	for _, i := range idioms {
		variants, err := s.Variants(i.ID)
		if err != nil {
			return 0, err
		}
		if err := w.Write([]string{
			strconv.FormatInt(i.ID, 10),
			i.IdiomEN, i.IdiomHE, i.TranslationEN, i.TranslationHE,
			i.HalfEN, i.HalfHE, i.OffEN, i.OffHE,
			i.CreatedBy, i.CreatedAt.Format("2006-01-02 15:04:05"),
			joinIDs(variants),
		}); err != nil {
			return 0, fmt.Errorf("write row %d: %w", i.ID, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return 0, fmt.Errorf("flush export: %w", err)
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("close export file: %w", err)
	}
	return len(idioms), nil
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}
