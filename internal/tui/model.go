// Package tui is the terminal front end of the CV builder: a multi-step form over
// cvstate.State with template selection and PDF export.
//
// It follows the bubbletea Model/Update/View loop. All edits go through the cvstate
// operations, so the terminal and HTTP front ends share the same rules.
package tui

import (
	"context"
	"fmt"
	"log"
	"slices"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jonathan/cv-builder/internal/cvstate"
	"github.com/jonathan/cv-builder/internal/export"
	"github.com/jonathan/cv-builder/internal/types"
)

// ExportFunc renders st to a PDF and saves it.
type ExportFunc func(ctx context.Context, st cvstate.State) (*export.Result, error)

// Options configures a Model.
type Options struct {
	// Export runs the pipeline. Nil disables the export key.
	Export  ExportFunc
	Verbose bool
}

type exportDoneMsg struct {
	result *export.Result
	err    error
}

// Model is the form's bubbletea model.
type Model struct {
	ctx     context.Context
	state   cvstate.State
	export  ExportFunc
	verbose bool

	inputs []textinput.Model
	focus  int
	// entry is the selected experience or education entry, or skill on the skills step.
	entry int

	status     string
	err        string
	lastResult *export.Result

	width  int
	height int
}

// New builds a model positioned on st's current step.
func New(ctx context.Context, st cvstate.State, opts Options) *Model {
	m := &Model{
		ctx:     ctx,
		state:   st,
		export:  opts.Export,
		verbose: opts.Verbose,
	}
	m.loadInputs()
	return m
}

// State returns the form state as edited so far.
func (m *Model) State() cvstate.State {
	return m.state
}

// LastResult returns the most recent successful export, if any.
func (m *Model) LastResult() *export.Result {
	return m.lastResult
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case exportDoneMsg:
		return m, m.finishExport(msg)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "ctrl+n":
			return m, m.moveStep(cvstate.NextStep)
		case "ctrl+p":
			return m, m.moveStep(cvstate.PreviousStep)
		case "tab", "down":
			return m, m.moveFocus(1)
		case "shift+tab", "up":
			return m, m.moveFocus(-1)
		case "ctrl+down":
			return m, m.moveEntry(1)
		case "ctrl+up":
			return m, m.moveEntry(-1)
		case "ctrl+a":
			return m, m.addEntry()
		case "ctrl+d":
			return m, m.removeEntry()
		case "ctrl+r":
			m.toggleCurrent()
			return m, nil
		case "ctrl+t":
			m.cycleTemplate()
			return m, nil
		case "ctrl+e":
			return m, m.startExport()
		case "enter":
			if m.stepID() == "skills" {
				m.addSkill()
				return m, nil
			}
			return m, m.moveFocus(1)
		}
		return m, m.updateInput(msg)
	}
	return m, nil
}

func (m *Model) stepID() string {
	return m.state.CurrentStep().ID
}

// entryCount is the number of selectable items on the current step.
func (m *Model) entryCount() int {
	switch m.stepID() {
	case "experience":
		return len(m.state.Document.Experience)
	case "education":
		return len(m.state.Document.Education)
	case "skills":
		return len(m.state.Document.Skills)
	default:
		return 0
	}
}

// editable reports whether the inputs on screen are bound to something.
func (m *Model) editable() bool {
	switch m.stepID() {
	case "experience", "education":
		return m.entryCount() > 0
	default:
		return true
	}
}

// loadInputs rebuilds the inputs of the current step from the document.
func (m *Model) loadInputs() tea.Cmd {
	if n := m.entryCount(); m.entry >= n {
		m.entry = max(0, n-1)
	}
	fields := fieldsFor(m.stepID())
	m.inputs = make([]textinput.Model, len(fields))
	for i, f := range fields {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = f.placeholder
		in.CharLimit = 500
		in.Width = 48
		in.SetValue(f.get(&m.state.Document, m.entry))
		m.inputs[i] = in
	}
	if m.focus >= len(m.inputs) {
		m.focus = 0
	}
	return m.inputs[m.focus].Focus()
}

func (m *Model) updateInput(msg tea.Msg) tea.Cmd {
	if !m.editable() || len(m.inputs) == 0 {
		return nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	f := fieldsFor(m.stepID())[m.focus]
	m.state = f.set(m.state, m.entry, m.inputs[m.focus].Value())
	return cmd
}

func (m *Model) moveStep(move func(cvstate.State) cvstate.State) tea.Cmd {
	next := move(m.state)
	if next.Step == m.state.Step {
		return nil
	}
	m.state = next
	m.focus = 0
	m.entry = 0
	m.err = ""
	return m.loadInputs()
}

func (m *Model) moveFocus(delta int) tea.Cmd {
	if len(m.inputs) < 2 {
		return nil
	}
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + delta + len(m.inputs)) % len(m.inputs)
	return m.inputs[m.focus].Focus()
}

func (m *Model) moveEntry(delta int) tea.Cmd {
	n := m.entryCount()
	if n < 2 {
		return nil
	}
	m.entry = (m.entry + delta + n) % n
	if m.stepID() == "skills" {
		return nil
	}
	return m.loadInputs()
}

func (m *Model) addEntry() tea.Cmd {
	switch m.stepID() {
	case "experience":
		m.state, _ = cvstate.AddExperience(m.state)
	case "education":
		m.state, _ = cvstate.AddEducation(m.state)
	default:
		return nil
	}
	m.entry = m.entryCount() - 1
	m.focus = 0
	return m.loadInputs()
}

func (m *Model) removeEntry() tea.Cmd {
	if m.entryCount() == 0 {
		return nil
	}
	doc := m.state.Document
	var err error
	switch m.stepID() {
	case "experience":
		m.state, err = cvstate.RemoveExperience(m.state, doc.Experience[m.entry].ID)
	case "education":
		m.state, err = cvstate.RemoveEducation(m.state, doc.Education[m.entry].ID)
	case "skills":
		m.state = cvstate.RemoveSkill(m.state, doc.Skills[m.entry])
	}
	if err != nil {
		m.err = err.Error()
		return nil
	}
	return m.loadInputs()
}

func (m *Model) addSkill() {
	st, added := cvstate.AddSkill(m.state, m.inputs[0].Value())
	if !added {
		return
	}
	m.state = st
	m.entry = len(st.Document.Skills) - 1
	m.inputs[0].SetValue("")
}

func (m *Model) toggleCurrent() {
	if m.stepID() != "experience" || m.entryCount() == 0 {
		return
	}
	id := m.state.Document.Experience[m.entry].ID
	if st, err := cvstate.UpdateExperience(m.state, id, func(e *types.ExperienceEntry) { e.Current = !e.Current }); err == nil {
		m.state = st
	}
}

func (m *Model) cycleTemplate() {
	i := slices.Index(types.Templates, m.state.Template)
	next := types.Templates[(i+1)%len(types.Templates)]
	if st, err := cvstate.SelectTemplate(m.state, next); err == nil {
		m.state = st
	}
}

// startExport begins an export from the last step. A second request while one is
// running is ignored.
func (m *Model) startExport() tea.Cmd {
	if !m.state.IsLastStep() {
		m.status = "Go to the last step to download your CV"
		return nil
	}
	if m.export == nil {
		m.err = "Export is not available"
		return nil
	}
	st, err := cvstate.BeginExport(m.state)
	if err != nil {
		return nil
	}
	m.state = st
	m.err = ""
	m.status = "Generating PDF..."

	ctx, run := m.ctx, m.export
	return func() tea.Msg {
		res, err := run(ctx, st)
		return exportDoneMsg{result: res, err: err}
	}
}

func (m *Model) finishExport(msg exportDoneMsg) tea.Cmd {
	m.state = cvstate.EndExport(m.state)
	if msg.err == nil && msg.result == nil {
		msg.err = fmt.Errorf("export returned no result")
	}
	if msg.err != nil {
		log.Printf("[EXPORT] %v", msg.err)
		m.status = ""
		m.err = export.UserMessage
		return nil
	}
	m.lastResult = msg.result
	m.err = ""
	m.status = fmt.Sprintf("Saved %s (%d page(s))", msg.result.Location, msg.result.Pages)
	if m.verbose {
		log.Printf("[EXPORT] Saved %s, %d bytes", msg.result.Location, msg.result.Bytes)
	}
	return nil
}

// Run starts the form on the terminal and returns the state when the user quits.
func Run(ctx context.Context, st cvstate.State, opts Options) (cvstate.State, error) {
	m := New(ctx, st, opts)
	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return m.State(), err
	}
	if fm, ok := final.(*Model); ok {
		return fm.State(), nil
	}
	return m.State(), nil
}
