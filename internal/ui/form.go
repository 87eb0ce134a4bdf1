// Package ui is the interactive form front end: a full-screen entry
// form that runs the variant scan on submit and asks the user to
// confirm a link before anything is persisted.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hazyhaar/idiom-ledger/pkg/catalog"
	"github.com/hazyhaar/idiom-ledger/pkg/similarity"
)

const (
	fieldIdiomEN = iota
	fieldIdiomHE
	fieldTranslationEN
	fieldTranslationHE
	fieldHalfEN
	fieldHalfHE
	fieldOffEN
	fieldOffHE
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Idiom (EN)", "Idiom (HE)",
	"Translation (EN)", "Translation (HE)",
	"Half (EN, optional)", "Half (HE, optional)",
	"Off (EN, optional)", "Off (HE, optional)",
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	focusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("160"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("35"))
	promptStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

type mode int

const (
	modeInput mode = iota
	modeConfirm
)

// candidateRow pairs a matcher hit with the stored idiom it points at,
// so the confirm view can show the human what matched.
type candidateRow struct {
	hit   similarity.Hit
	idiom catalog.Idiom
}

// scanResultMsg carries the outcome of a submit: either a validation
// failure, a list of near-duplicates to confirm, or nothing similar.
type scanResultMsg struct {
	rejection  string
	candidates []candidateRow
}

type savedMsg struct {
	id        int64
	variantOf int64 // 0 when saved unlinked
}

type errMsg struct{ err error }

// Form is the bubbletea model for the entry form.
type Form struct {
	store    *catalog.Store
	username string

	inputs [fieldCount]textinput.Model
	focus  int
	mode   mode

	pending    catalog.Candidate
	candidates []candidateRow

	log     []string
	errLine string
	busy    bool
}

// NewForm builds the form bound to an open store.
func NewForm(store *catalog.Store, username string) *Form {
	f := &Form{store: store, username: username}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Placeholder = fieldLabels[i]
		ti.CharLimit = 200
		f.inputs[i] = ti
	}
	f.inputs[0].Focus()
	return f
}

func (f *Form) Init() tea.Cmd {
	return textinput.Blink
}

func (f *Form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch f.mode {
		case modeConfirm:
			return f.updateConfirm(msg)
		default:
			return f.updateInput(msg)
		}

	case scanResultMsg:
		f.busy = false
		if msg.rejection != "" {
			f.errLine = msg.rejection
			return f, nil
		}
		if len(msg.candidates) > 0 {
			f.candidates = msg.candidates
			f.mode = modeConfirm
			return f, nil
		}
		return f, f.saveCmd(0)

	case savedMsg:
		f.busy = false
		if msg.variantOf != 0 {
			f.log = append(f.log, fmt.Sprintf("added variant #%d linked to #%d", msg.id, msg.variantOf))
		} else {
			f.log = append(f.log, fmt.Sprintf("added idiom #%d", msg.id))
		}
		f.resetFields()
		return f, nil

	case errMsg:
		f.busy = false
		f.errLine = msg.err.Error()
		return f, nil
	}

	return f, f.updateFocused(msg)
}

func (f *Form) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return f, tea.Quit

	case "tab", "down":
		f.setFocus((f.focus + 1) % fieldCount)
		return f, nil

	case "shift+tab", "up":
		f.setFocus((f.focus + fieldCount - 1) % fieldCount)
		return f, nil

	case "enter":
		if f.focus < fieldCount-1 {
			f.setFocus(f.focus + 1)
			return f, nil
		}
		fallthrough

	case "ctrl+s":
		if f.busy {
			return f, nil
		}
		f.errLine = ""
		f.pending = f.collect()
		f.busy = true
		return f, f.scanCmd(f.pending)
	}

	return f, f.updateFocused(msg)
}

func (f *Form) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		f.mode = modeInput
		return f, f.saveCmd(f.candidates[0].idiom.ID)
	case "n", "N":
		f.mode = modeInput
		return f, f.saveCmd(0)
	case "esc":
		// Back to editing without saving anything.
		f.mode = modeInput
		f.candidates = nil
		return f, nil
	case "ctrl+c":
		return f, tea.Quit
	}
	return f, nil
}

func (f *Form) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *Form) setFocus(i int) {
	f.inputs[f.focus].Blur()
	f.focus = i
	f.inputs[f.focus].Focus()
}

func (f *Form) collect() catalog.Candidate {
	return catalog.Candidate{
		CreatedBy:     f.username,
		IdiomEN:       f.inputs[fieldIdiomEN].Value(),
		IdiomHE:       f.inputs[fieldIdiomHE].Value(),
		TranslationEN: f.inputs[fieldTranslationEN].Value(),
		TranslationHE: f.inputs[fieldTranslationHE].Value(),
		HalfEN:        f.inputs[fieldHalfEN].Value(),
		HalfHE:        f.inputs[fieldHalfHE].Value(),
		OffEN:         f.inputs[fieldOffEN].Value(),
		OffHE:         f.inputs[fieldOffHE].Value(),
	}
}

func (f *Form) resetFields() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
	}
	f.setFocus(0)
	f.candidates = nil
	f.pending = catalog.Candidate{}
}

// scanCmd validates the candidate, runs the duplicate pre-checks, then
// the list-mode fuzzy scan, off the update loop so typing stays
// responsive while the catalog is read.
func (f *Form) scanCmd(c catalog.Candidate) tea.Cmd {
	return func() tea.Msg {
		c.Normalize()
		if !c.Valid() {
			return scanResultMsg{rejection: catalog.ErrMissingFields.Error()}
		}

		if _, ok, err := f.store.FindExactPair(c.IdiomEN, c.IdiomHE); err != nil {
			return errMsg{err}
		} else if ok {
			return scanResultMsg{rejection: "this idiom already exists"}
		}
		if _, ok, err := f.store.FindByHebrew(c.IdiomHE); err != nil {
			return errMsg{err}
		} else if ok {
			return scanResultMsg{rejection: "the Hebrew idiom already exists"}
		}
		if _, ok, err := f.store.FindByEnglish(c.IdiomEN); err != nil {
			return errMsg{err}
		} else if ok {
			return scanResultMsg{rejection: "the English idiom already exists"}
		}

		all, err := f.store.GetAllIdioms()
		if err != nil {
			return errMsg{err}
		}
		hits := similarity.Similar(catalog.MatchEntries(all), c.IdiomEN, c.IdiomHE, similarity.SimilarThreshold)

		byID := make(map[int64]catalog.Idiom, len(all))
		for _, i := range all {
			byID[i.ID] = i
		}
		rows := make([]candidateRow, 0, len(hits))
		for _, h := range hits {
			rows = append(rows, candidateRow{hit: h, idiom: byID[h.ID]})
		}
		return scanResultMsg{candidates: rows}
	}
}

func (f *Form) saveCmd(variantOf int64) tea.Cmd {
	pending := f.pending
	return func() tea.Msg {
		id, err := f.store.AddIdiom(pending)
		if err != nil {
			return errMsg{err}
		}
		if variantOf != 0 {
			if err := f.store.AddVariantLink(variantOf, id); err != nil {
				return errMsg{err}
			}
		}
		return savedMsg{id: id, variantOf: variantOf}
	}
}

func (f *Form) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Idiom Ledger") + "\n\n")

	if f.mode == modeConfirm {
		b.WriteString(f.confirmView())
	} else {
		for i := range f.inputs {
			label := labelStyle.Render(fieldLabels[i])
			if i == f.focus {
				label = focusStyle.Render(fieldLabels[i])
			}
			fmt.Fprintf(&b, "%s\n%s\n", label, f.inputs[i].View())
		}
		b.WriteString(helpStyle.Render("tab: next field • enter on last field / ctrl+s: submit • esc: quit"))
	}

	if f.errLine != "" {
		b.WriteString("\n" + errorStyle.Render("✗ "+f.errLine))
	}
	if f.busy {
		b.WriteString("\n" + helpStyle.Render("scanning catalog..."))
	}
	for i := len(f.log) - 1; i >= 0 && i >= len(f.log)-6; i-- {
		b.WriteString("\n" + okStyle.Render("✓ "+f.log[i]))
	}
	return b.String()
}

func (f *Form) confirmView() string {
	var b strings.Builder
	b.WriteString(promptStyle.Render("Possible variant found:") + "\n\n")
	top := f.candidates[0]
	fmt.Fprintf(&b, "  EN: %s\n  HE: %s\n  similarity: EN %.0f%% / HE %.0f%%\n",
		top.idiom.IdiomEN, top.idiom.IdiomHE, top.hit.ScoreEN, top.hit.ScoreHE)
	if len(f.candidates) > 1 {
		fmt.Fprintf(&b, "  (%d more candidates in the catalog)\n", len(f.candidates)-1)
	}
	b.WriteString("\n" + promptStyle.Render("Is the new entry a variant of this idiom? (y/n, esc to edit)"))
	return b.String()
}

// Run starts the form program and blocks until the user quits.
func Run(store *catalog.Store, username string) error {
	p := tea.NewProgram(NewForm(store, username))
	_, err := p.Run()
	return err
}
