package main

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/hazyhaar/idiom-ledger/pkg/catalog"
	"github.com/hazyhaar/idiom-ledger/pkg/similarity"
)

func tempStore(t *testing.T) *catalog.Store {
	t.Helper()
	s, err := catalog.Open(filepath.Join(t.TempDir(), "idioms.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func runScript(t *testing.T, store *catalog.Store, lines ...string) string {
	t.Helper()
	var out strings.Builder
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	if err := runLoop(in, &out, store, similarity.DefaultThresholds); err != nil {
		t.Fatalf("runLoop: %v", err)
	}
	return out.String()
}

func TestLoopExitTokens(t *testing.T) {
	store := tempStore(t)
	for _, token := range []string{"q", "quit", "EXIT", "out"} {
		out := runScript(t, store, "dana", token)
		if !strings.Contains(out, "Goodbye.") {
			t.Errorf("token %q did not exit cleanly:\n%s", token, out)
		}
	}
}

func TestLoopRequiresUsername(t *testing.T) {
	out := runScript(t, tempStore(t), "")
	if !strings.Contains(out, "Username required") {
		t.Errorf("missing username not rejected:\n%s", out)
	}
}

func TestLoopInsertsFreshIdiom(t *testing.T) {
	store := tempStore(t)
	out := runScript(t, store,
		"dana",
		"break the ice", "קרח שבור", "start a conversation", "לפתוח שיחה",
		"", "", "", "",
		"q")

	if !strings.Contains(out, "Added IDIOM #1") {
		t.Fatalf("idiom not added:\n%s", out)
	}
	got, err := store.GetIdiom(1)
	if err != nil {
		t.Fatalf("GetIdiom: %v", err)
	}
	if got.CreatedBy != "dana" || got.IdiomHE != "קרח שבור" {
		t.Errorf("stored %+v", got.Candidate)
	}
}

func TestLoopRejectsMissingFieldsAndContinues(t *testing.T) {
	store := tempStore(t)
	out := runScript(t, store,
		"dana",
		// Missing Hebrew translation: rejected, session continues.
		"break the ice", "קרח שבור", "start a conversation", "",
		"", "", "", "",
		// A complete entry afterwards still goes through.
		"spill the beans", "לגלות סוד", "reveal a secret", "לגלות סוד",
		"", "", "", "",
		"q")

	if !strings.Contains(out, "Missing required fields") {
		t.Fatalf("validation message missing:\n%s", out)
	}
	if !strings.Contains(out, "Added IDIOM #1") {
		t.Fatalf("session did not continue after rejection:\n%s", out)
	}
}

func TestLoopConfirmedVariantIsLinked(t *testing.T) {
	store := tempStore(t)
	out := runScript(t, store,
		"dana",
		"break the ice", "קרח שבור", "start a conversation", "לפתוח שיחה",
		"", "", "", "",
		"break an ice", "קרח שבור", "same thing", "אותו דבר",
		"", "", "", "",
		"y",
		"q")

	if !strings.Contains(out, "Possible variant found") {
		t.Fatalf("variant prompt missing:\n%s", out)
	}
	if !strings.Contains(out, "Added VARIANT #2 linked to #1") {
		t.Fatalf("variant not linked:\n%s", out)
	}
	links, err := store.Variants(1)
	if err != nil {
		t.Fatalf("Variants: %v", err)
	}
	if len(links) != 1 || links[0] != 2 {
		t.Errorf("Variants(1) = %v, want [2]", links)
	}
}

func TestLoopDeclinedVariantSavedUnlinked(t *testing.T) {
	store := tempStore(t)
	runScript(t, store,
		"dana",
		"break the ice", "קרח שבור", "start a conversation", "לפתוח שיחה",
		"", "", "", "",
		"break an ice", "קרח שבור", "same thing", "אותו דבר",
		"", "", "", "",
		"n",
		"q")

	links, err := store.Variants(1)
	if err != nil {
		t.Fatalf("Variants: %v", err)
	}
	if len(links) != 0 {
		t.Errorf("declined variant still linked: %v", links)
	}
	if _, err := store.GetIdiom(2); err != nil {
		t.Errorf("declined variant not saved: %v", err)
	}
}

func TestLoopMilestoneEveryTen(t *testing.T) {
	store := tempStore(t)
	// Nine existing entries by the same user; the tenth goes through the
	// loop and is deliberately dissimilar to all of them so no variant
	// prompt interferes with the script.
	words := []string{"one", "two", "three", "four", "five", "six", "seven", "eight", "nine"}
	for i, w := range words {
		_, err := store.AddIdiom(catalog.Candidate{
			CreatedBy: "dana",
			IdiomEN:   "filler " + w, IdiomHE: "ממלא " + strings.Repeat("א", i+1),
			TranslationEN: "filler", TranslationHE: "ממלא",
		})
		if err != nil {
			t.Fatalf("AddIdiom: %v", err)
		}
	}

	out := runScript(t, store,
		"dana",
		"zigzag", "זגזג", "back and forth", "הלוך ושוב",
		"", "", "", "",
		"q")

	if !strings.Contains(out, "added 10 idioms so far") {
		t.Fatalf("milestone message missing:\n%s", out)
	}
}
