package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/hazyhaar/idiom-ledger/pkg/catalog"
	"github.com/hazyhaar/idiom-ledger/pkg/lang"
	"github.com/hazyhaar/idiom-ledger/pkg/similarity"
)

var exitTokens = map[string]bool{"q": true, "quit": true, "exit": true, "out": true}

func isExit(s string) bool {
	return exitTokens[strings.ToLower(s)]
}

// runLoop is the line-oriented front end: prompt for each field, scan
// for a variant, ask for confirmation on a hit, persist. Errors are
// reported per entry and the loop continues; only input ending (EOF,
// closed terminal) leaves the loop.
func runLoop(in io.Reader, out io.Writer, store *catalog.Store, th similarity.Thresholds) error {
	sc := bufio.NewScanner(in)
	prompt := func(label string) (string, bool) {
		fmt.Fprint(out, label)
		if !sc.Scan() {
			return "", false
		}
		return lang.Normalize(sc.Text()), true
	}

	fmt.Fprintln(out, "=== Idiom Ledger ===")
	fmt.Fprintln(out, "Enter 'q' to quit.")
	fmt.Fprintln(out)

	username, ok := prompt("Enter your username: ")
	if !ok || username == "" || isExit(username) {
		fmt.Fprintln(out, "Username required. Exiting.")
		return sc.Err()
	}
	fmt.Fprintf(out, "\nWelcome, %s. Start entering idioms.\n", username)

	for {
		fmt.Fprintln(out, "\n--- New idiom ---")

		idiomEN, ok := prompt("Idiom (English): ")
		if !ok || isExit(idiomEN) {
			break
		}
		idiomHE, ok := prompt("Idiom (Hebrew): ")
		if !ok || isExit(idiomHE) {
			break
		}
		transEN, ok := prompt("Translation (EN): ")
		if !ok {
			break
		}
		transHE, ok := prompt("Translation (HE): ")
		if !ok {
			break
		}
		halfEN, ok := prompt("Half (EN) [optional]: ")
		if !ok {
			break
		}
		halfHE, ok := prompt("Half (HE) [optional]: ")
		if !ok {
			break
		}
		offEN, ok := prompt("Off (EN) [optional]: ")
		if !ok {
			break
		}
		offHE, ok := prompt("Off (HE) [optional]: ")
		if !ok {
			break
		}

		if !lang.RequiredFieldsPresent(idiomEN, idiomHE, transEN, transHE) {
			fmt.Fprintln(out, "Missing required fields: idiom + translation in both languages.")
			continue
		}

		c := catalog.Candidate{
			CreatedBy:     username,
			IdiomEN:       idiomEN,
			IdiomHE:       idiomHE,
			TranslationEN: transEN,
			TranslationHE: transHE,
			HalfEN:        halfEN,
			HalfHE:        halfHE,
			OffEN:         offEN,
			OffHE:         offHE,
		}

		all, err := store.GetAllIdioms()
		if err != nil {
			fmt.Fprintf(out, "ERROR: %v\n", err)
			continue
		}

		if m, found := similarity.BestMatch(catalog.MatchEntries(all), c.IdiomEN, c.IdiomHE, th); found {
			matched, err := store.GetIdiom(m.ID)
			if err != nil {
				fmt.Fprintf(out, "ERROR: %v\n", err)
				continue
			}

			fmt.Fprintln(out, "\nPossible variant found:")
			fmt.Fprintf(out, "  EN: %s\n", matched.IdiomEN)
			fmt.Fprintf(out, "  HE: %s\n", matched.IdiomHE)
			fmt.Fprintf(out, "  Similarity: %.3f (%s)\n", m.Score, m.Lang)

			answer, ok := prompt("Is this a variant? (y/n): ")
			if !ok {
				break
			}
			if strings.HasPrefix(strings.ToLower(answer), "y") {
				id, err := store.AddIdiom(c)
				if err != nil {
					fmt.Fprintf(out, "ERROR: %v\n", err)
					continue
				}
				if err := store.AddVariantLink(m.ID, id); err != nil {
					fmt.Fprintf(out, "ERROR: %v\n", err)
					continue
				}
				fmt.Fprintf(out, "Added VARIANT #%d linked to #%d\n", id, m.ID)
				continue
			}
		}

		id, err := store.AddIdiom(c)
		if err != nil {
			fmt.Fprintf(out, "ERROR: %v\n", err)
			continue
		}
		fmt.Fprintf(out, "Added IDIOM #%d\n", id)

		if count, err := store.CountByCreator(username); err == nil && count%10 == 0 {
			fmt.Fprintf(out, "%s, you have added %d idioms so far!\n", username, count)
		}
	}

	fmt.Fprintln(out, "Goodbye.")
	return sc.Err()
}
