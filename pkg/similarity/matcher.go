package similarity

import (
	"github.com/hazyhaar/idiom-ledger/pkg/lang"
)

// Entry is one stored idiom pair as the matcher sees it. Callers pass
// entries in id-ascending order; the matcher's tie-break depends on it.
type Entry struct {
	ID int64
	EN string
	HE string
}

// Thresholds carries the per-language minimum scores for BestMatch.
// Each side is tuned independently.
type Thresholds struct {
	EN float64
	HE float64
}

// DefaultThresholds are the stock per-language cutoffs.
var DefaultThresholds = Thresholds{EN: 0.60, HE: 0.60}

// Match is a winning comparison: which idiom, how close, via which
// language field.
type Match struct {
	ID    int64
	Score float64
	Lang  lang.Tag
}

// BestMatch scans entries for the closest existing idiom to the new
// pair (newEN, newHE) and reports whether any comparison met its
// language's threshold.
//
// Each side is scored only when the new text actually classifies as
// that language and the stored field is non-empty; an English string is
// never scored against a Hebrew field or vice versa. A score wins when
// it meets its threshold and strictly exceeds the current best, so an
// exact tie keeps the earliest entry (lowest id with id-ordered input).
func BestMatch(entries []Entry, newEN, newHE string, th Thresholds) (Match, bool) {
	newEN = lang.Normalize(newEN)
	newHE = lang.Normalize(newHE)

	scoreEN := lang.IsEnglish(newEN)
	scoreHE := lang.IsHebrew(newHE)

	var best Match
	found := false
	for _, e := range entries {
		if scoreEN {
			if en := lang.Normalize(e.EN); en != "" {
				s := Ratio(newEN, en)
				if s >= th.EN && (!found || s > best.Score) {
					best = Match{ID: e.ID, Score: s, Lang: lang.EN}
					found = true
				}
			}
		}
		if scoreHE {
			if he := lang.Normalize(e.HE); he != "" {
				s := Ratio(newHE, he)
				if s >= th.HE && (!found || s > best.Score) {
					best = Match{ID: e.ID, Score: s, Lang: lang.HE}
					found = true
				}
			}
		}
	}
	return best, found
}

// SimilarThreshold is the percentage cutoff for the list-producing mode.
const SimilarThreshold = 80

// Hit is one catalog entry flagged by Similar, with both side scores on
// the 0–100 scale.
type Hit struct {
	ID      int64
	ScoreEN float64
	ScoreHE float64
}

// Similar collects every entry whose Hebrew-side or English-side
// percentage exceeds threshold, in input (id-ascending) order. Unlike
// BestMatch it returns all candidates, for front ends that want to show
// a human several options instead of auto-picking one.
func Similar(entries []Entry, newEN, newHE string, threshold float64) []Hit {
	newEN = lang.Normalize(newEN)
	newHE = lang.Normalize(newHE)

	var hits []Hit
	for _, e := range entries {
		h := Hit{ID: e.ID}
		if lang.IsEnglish(newEN) {
			if en := lang.Normalize(e.EN); en != "" {
				h.ScoreEN = Percent(newEN, en)
			}
		}
		if lang.IsHebrew(newHE) {
			if he := lang.Normalize(e.HE); he != "" {
				h.ScoreHE = Percent(newHE, he)
			}
		}
		if h.ScoreEN > threshold || h.ScoreHE > threshold {
			hits = append(hits, h)
		}
	}
	return hits
}
