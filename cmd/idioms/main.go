package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/hazyhaar/idiom-ledger/internal/ui"
	"github.com/hazyhaar/idiom-ledger/pkg/catalog"
	"github.com/hazyhaar/idiom-ledger/pkg/config"
	"github.com/hazyhaar/idiom-ledger/pkg/similarity"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	switch os.Args[1] {
	case "loop":
		cmdLoop(os.Args[2:], logger)
	case "form":
		cmdForm(os.Args[2:], logger)
	case "export":
		cmdExport(os.Args[2:], logger)
	case "import":
		cmdImport(os.Args[2:], logger)
	case "edit":
		cmdEdit(os.Args[2:], logger)
	case "delete":
		cmdDelete(os.Args[2:], logger)
	case "set-db":
		cmdSetDB(os.Args[2:], logger)
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `Usage: idioms <command>

Commands:
  loop     Interactive line-by-line entry
  form     Full-screen entry form
  export   Export the catalog to CSV
  import   Import a previously exported CSV
  edit     Replace the text fields of an idiom
  delete   Delete an idiom (links cascade)
  set-db   Choose the database folder
`)
}

// settingsFlag registers the shared -settings flag on a command's flag set.
func settingsFlag(fs *flag.FlagSet) *string {
	def, err := config.DefaultPath()
	if err != nil {
		def = "settings.yaml"
	}
	return fs.String("settings", def, "path to the settings file")
}

func loadSettings(path string, logger *slog.Logger) config.Settings {
	s, err := config.Load(path)
	if err != nil {
		logger.Error("load settings", "path", path, "error", err)
		os.Exit(1)
	}
	return s
}

func openStore(s config.Settings, logger *slog.Logger) *catalog.Store {
	path, err := s.DBPath()
	if err != nil {
		logger.Error("store not configured", "error", err)
		os.Exit(1)
	}
	store, err := catalog.Open(path)
	if err != nil {
		logger.Error("open store", "path", path, "error", err)
		os.Exit(1)
	}
	return store
}

func thresholds(s config.Settings) similarity.Thresholds {
	return similarity.Thresholds{EN: s.ThresholdEN, HE: s.ThresholdHE}
}

func cmdLoop(args []string, logger *slog.Logger) {
	fs := flag.NewFlagSet("loop", flag.ExitOnError)
	settingsPath := settingsFlag(fs)
	fs.Parse(args)

	settings := loadSettings(*settingsPath, logger)
	store := openStore(settings, logger)
	defer store.Close()

	if err := runLoop(os.Stdin, os.Stdout, store, thresholds(settings)); err != nil {
		logger.Error("loop aborted", "error", err)
		os.Exit(1)
	}
}

func cmdForm(args []string, logger *slog.Logger) {
	fs := flag.NewFlagSet("form", flag.ExitOnError)
	settingsPath := settingsFlag(fs)
	username := fs.String("user", "", "name recorded as the creator of new idioms")
	fs.Parse(args)

	if *username == "" {
		fmt.Fprintln(os.Stderr, "form: -user is required")
		os.Exit(1)
	}

	settings := loadSettings(*settingsPath, logger)
	store := openStore(settings, logger)
	defer store.Close()

	if err := ui.Run(store, *username); err != nil {
		logger.Error("form aborted", "error", err)
		os.Exit(1)
	}
}

func cmdExport(args []string, logger *slog.Logger) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	settingsPath := settingsFlag(fs)
	out := fs.String("out", "", "output file (default: idioms_export.csv next to the database)")
	fs.Parse(args)

	settings := loadSettings(*settingsPath, logger)
	store := openStore(settings, logger)
	defer store.Close()

	path := *out
	if path == "" {
		var err error
		path, err = settings.ExportPath()
		if err != nil {
			logger.Error("resolve export path", "error", err)
			os.Exit(1)
		}
	}

	n, err := store.ExportCSV(path)
	if err != nil {
		logger.Error("export failed", "path", path, "error", err)
		os.Exit(1)
	}
	fmt.Printf("Exported %d idioms to %s\n", n, path)
}

func cmdImport(args []string, logger *slog.Logger) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	settingsPath := settingsFlag(fs)
	in := fs.String("in", "", "CSV file to import (required)")
	fs.Parse(args)

	if *in == "" {
		fmt.Fprintln(os.Stderr, "import: -in is required")
		os.Exit(1)
	}

	settings := loadSettings(*settingsPath, logger)
	store := openStore(settings, logger)
	defer store.Close()

	n, err := store.ImportCSV(*in)
	if err != nil {
		logger.Error("import failed", "path", *in, "imported", n, "error", err)
		os.Exit(1)
	}
	fmt.Printf("Imported %d idioms from %s\n", n, *in)
}

func cmdEdit(args []string, logger *slog.Logger) {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	settingsPath := settingsFlag(fs)
	id := fs.Int64("id", 0, "idiom id to edit (required)")
	idiomEN := fs.String("en", "", "new English idiom text")
	idiomHE := fs.String("he", "", "new Hebrew idiom text")
	transEN := fs.String("trans-en", "", "new English translation")
	transHE := fs.String("trans-he", "", "new Hebrew translation")
	fs.Parse(args)

	if *id == 0 {
		fmt.Fprintln(os.Stderr, "edit: -id is required")
		os.Exit(1)
	}

	settings := loadSettings(*settingsPath, logger)
	store := openStore(settings, logger)
	defer store.Close()

	current, err := store.GetIdiom(*id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			fmt.Fprintln(os.Stderr, "id not found")
			os.Exit(1)
		}
		logger.Error("load idiom", "id", *id, "error", err)
		os.Exit(1)
	}

	// Flags left empty keep the stored value.
	c := current.Candidate
	if *idiomEN != "" {
		c.IdiomEN = *idiomEN
	}
	if *idiomHE != "" {
		c.IdiomHE = *idiomHE
	}
	if *transEN != "" {
		c.TranslationEN = *transEN
	}
	if *transHE != "" {
		c.TranslationHE = *transHE
	}

	if err := store.UpdateIdiom(*id, c); err != nil {
		logger.Error("update failed", "id", *id, "error", err)
		os.Exit(1)
	}
	fmt.Println("Updated successfully.")
}

func cmdDelete(args []string, logger *slog.Logger) {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	settingsPath := settingsFlag(fs)
	id := fs.Int64("id", 0, "idiom id to delete (required)")
	yes := fs.Bool("yes", false, "skip the confirmation prompt")
	fs.Parse(args)

	if *id == 0 {
		fmt.Fprintln(os.Stderr, "delete: -id is required")
		os.Exit(1)
	}

	settings := loadSettings(*settingsPath, logger)
	store := openStore(settings, logger)
	defer store.Close()

	idiom, err := store.GetIdiom(*id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			fmt.Fprintln(os.Stderr, "id not found")
			os.Exit(1)
		}
		logger.Error("load idiom", "id", *id, "error", err)
		os.Exit(1)
	}

	if !*yes {
		fmt.Printf("Delete idiom '%s | %s'? (y/n): ", idiom.IdiomHE, idiom.IdiomEN)
		sc := bufio.NewScanner(os.Stdin)
		if !sc.Scan() || !strings.HasPrefix(strings.ToLower(strings.TrimSpace(sc.Text())), "y") {
			fmt.Println("Cancelled.")
			return
		}
	}

	if err := store.DeleteIdiom(*id); err != nil {
		logger.Error("delete failed", "id", *id, "error", err)
		os.Exit(1)
	}
	fmt.Println("Deleted successfully.")
}

func cmdSetDB(args []string, logger *slog.Logger) {
	fs := flag.NewFlagSet("set-db", flag.ExitOnError)
	settingsPath := settingsFlag(fs)
	dir := fs.String("dir", "", "folder that holds (or will hold) idioms.db (required)")
	fs.Parse(args)

	if *dir == "" {
		fmt.Fprintln(os.Stderr, "set-db: -dir is required")
		os.Exit(1)
	}

	settings := loadSettings(*settingsPath, logger)
	settings.DBDir = *dir
	if err := config.Save(*settingsPath, settings); err != nil {
		logger.Error("save settings", "path", *settingsPath, "error", err)
		os.Exit(1)
	}
	fmt.Printf("Database folder set to %s\n", *dir)
}
