package similarity

import (
	"testing"

	"github.com/hazyhaar/idiom-ledger/pkg/lang"
)

func TestBestMatchPicksHighestScore(t *testing.T) {
	entries := []Entry{
		{ID: 1, EN: "night", HE: ""},
		{ID: 2, EN: "night bowl", HE: ""},
		{ID: 3, EN: "light owl", HE: ""},
	}

	m, ok := BestMatch(entries, "night owl", "", DefaultThresholds)
	if !ok {
		t.Fatal("expected a match")
	}
	if m.ID != 2 {
		t.Errorf("best id = %d, want 2", m.ID)
	}
	if m.Lang != lang.EN {
		t.Errorf("lang = %q, want en", m.Lang)
	}
	if m.Score <= 0.9 {
		t.Errorf("score = %v, want > 0.9", m.Score)
	}
}

func TestBestMatchTieKeepsEarliest(t *testing.T) {
	entries := []Entry{
		{ID: 1, EN: "night owl", HE: ""},
		{ID: 2, EN: "night owl", HE: ""},
	}
	m, ok := BestMatch(entries, "night owl", "", DefaultThresholds)
	if !ok || m.ID != 1 {
		t.Fatalf("tie should keep the first entry, got %+v ok=%v", m, ok)
	}
}

func TestBestMatchThresholdBoundary(t *testing.T) {
	entries := []Entry{{ID: 1, EN: "abcde", HE: ""}}

	// Ratio("abcxy", "abcde") is exactly 0.6.
	if _, ok := BestMatch(entries, "abcxy", "", Thresholds{EN: 0.60, HE: 0.60}); !ok {
		t.Error("score equal to the threshold must be accepted")
	}
	if _, ok := BestMatch(entries, "abcxy", "", Thresholds{EN: 0.61, HE: 0.61}); ok {
		t.Error("score below the threshold must be rejected")
	}
}

func TestBestMatchCrossLanguageIsolation(t *testing.T) {
	entries := []Entry{{ID: 1, EN: "break the ice", HE: "קרח"}}

	// Empty English side: English scoring is skipped entirely, and the
	// Hebrew score (about 0.545) is under the threshold.
	if m, ok := BestMatch(entries, "", "קרח שבור", DefaultThresholds); ok {
		t.Fatalf("expected no match, got %+v", m)
	}

	// With a lower Hebrew threshold the same candidate matches, and only
	// via the Hebrew field.
	m, ok := BestMatch(entries, "", "קרח שבור", Thresholds{EN: 0.60, HE: 0.50})
	if !ok {
		t.Fatal("expected a Hebrew-side match")
	}
	if m.Lang != lang.HE {
		t.Errorf("lang = %q, want he", m.Lang)
	}

	// Hebrew text in the English slot never reaches the English fields.
	if m, ok := BestMatch(entries, "קרח שבור", "", Thresholds{EN: 0, HE: 0}); ok {
		t.Fatalf("Hebrew text must not be scored as English, got %+v", m)
	}
}

func TestBestMatchSkipsEmptyStoredFields(t *testing.T) {
	entries := []Entry{{ID: 1, EN: "", HE: "שלום"}}
	if m, ok := BestMatch(entries, "hello", "", Thresholds{EN: 0, HE: 0}); ok {
		t.Fatalf("entry without an English field matched via English: %+v", m)
	}
}

func TestBestMatchEmptyCatalog(t *testing.T) {
	if m, ok := BestMatch(nil, "break the ice", "קרח שבור", DefaultThresholds); ok {
		t.Fatalf("empty catalog produced %+v", m)
	}
}

func TestBestMatchBothLanguages(t *testing.T) {
	entries := []Entry{{ID: 1, EN: "break the ice", HE: "קרח שבור"}}

	m, ok := BestMatch(entries, "break an ice", "קרח שבור", DefaultThresholds)
	if !ok {
		t.Fatal("expected a match")
	}
	// English scores 0.8, Hebrew scores 1.0; Hebrew wins.
	if m.ID != 1 || m.Lang != lang.HE || !almostEqual(m.Score, 1.0) {
		t.Errorf("got %+v, want id=1 lang=he score=1.0", m)
	}
}

func TestSimilarCollectsAllHits(t *testing.T) {
	entries := []Entry{
		{ID: 1, EN: "night bowl", HE: "קרח"},
		{ID: 2, EN: "something else entirely", HE: "אחר"},
		{ID: 3, EN: "night fowl", HE: ""},
	}

	hits := Similar(entries, "night owl", "", SimilarThreshold)
	if len(hits) != 2 {
		t.Fatalf("got %d hits, want 2: %+v", len(hits), hits)
	}
	// Input order is preserved (id ascending).
	if hits[0].ID != 1 || hits[1].ID != 3 {
		t.Errorf("hit order = %d,%d, want 1,3", hits[0].ID, hits[1].ID)
	}
	if !almostEqual(hits[0].ScoreEN, 90) {
		t.Errorf("ScoreEN = %v, want 90", hits[0].ScoreEN)
	}
	if hits[0].ScoreHE != 0 {
		t.Errorf("ScoreHE = %v, want 0 for an empty Hebrew candidate", hits[0].ScoreHE)
	}
}

func TestSimilarThresholdIsStrict(t *testing.T) {
	// Percent("abcde", "abcdx") is exactly 80: not over the threshold.
	entries := []Entry{{ID: 1, EN: "abcdx", HE: ""}}
	if hits := Similar(entries, "abcde", "", 80); len(hits) != 0 {
		t.Errorf("score equal to the threshold must not be listed: %+v", hits)
	}
}
