package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-builder/internal/cvstate"
	"github.com/jonathan/cv-builder/internal/export"
	"github.com/jonathan/cv-builder/internal/types"
)

func key(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func typeText(m *Model, s string) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func press(m *Model, keys ...tea.KeyType) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(key(k))
	}
	return cmd
}

func newTestModel(t *testing.T, exportFn ExportFunc) *Model {
	t.Helper()
	return New(context.Background(), cvstate.New(), Options{Export: exportFn})
}

func TestModel_PersonalInfo(t *testing.T) {
	m := newTestModel(t, nil)

	typeText(m, "Jane Doe")
	press(m, tea.KeyTab)
	typeText(m, "jane@example.com")

	info := m.State().Document.PersonalInfo
	assert.Equal(t, "Jane Doe", info.FullName)
	assert.Equal(t, "jane@example.com", info.Email)
	assert.Equal(t, "Jane_Doe_CV.pdf", m.State().FileName())

	view := m.View()
	assert.Contains(t, view, "Step 1 of 4")
	assert.Contains(t, view, "Personal Info")
	assert.Contains(t, view, "Jane_Doe_CV.pdf")
}

func TestModel_StepNavigationClamps(t *testing.T) {
	m := newTestModel(t, nil)

	press(m, tea.KeyCtrlP)
	assert.Equal(t, 0, m.State().Step)

	press(m, tea.KeyCtrlN, tea.KeyCtrlN, tea.KeyCtrlN, tea.KeyCtrlN, tea.KeyCtrlN)
	assert.Equal(t, 3, m.State().Step)
	assert.True(t, m.State().IsLastStep())
	assert.Contains(t, m.View(), "Step 4 of 4")
	assert.Contains(t, m.View(), "ctrl+e download PDF")

	press(m, tea.KeyCtrlP)
	assert.Equal(t, 2, m.State().Step)
	assert.NotContains(t, m.View(), "ctrl+e download PDF")
}

func TestModel_ExperienceEntries(t *testing.T) {
	m := newTestModel(t, nil)
	press(m, tea.KeyCtrlN)
	require.Equal(t, "experience", m.State().CurrentStep().ID)

	assert.Contains(t, m.View(), "No experience added yet")

	// Typing without an entry changes nothing
	typeText(m, "Ghost")
	assert.Empty(t, m.State().Document.Experience)

	press(m, tea.KeyCtrlA)
	typeText(m, "Acme")
	press(m, tea.KeyCtrlA)
	typeText(m, "Globex")
	press(m, tea.KeyCtrlR)

	exp := m.State().Document.Experience
	require.Len(t, exp, 2)
	assert.Equal(t, "Acme", exp[0].Company)
	assert.Equal(t, "Globex", exp[1].Company)
	assert.True(t, exp[1].Current)
	assert.NotEqual(t, exp[0].ID, exp[1].ID)
	assert.Contains(t, m.View(), "Entry 2 of 2")

	// Cycling loads the other entry's values into the inputs
	press(m, tea.KeyCtrlUp)
	assert.Contains(t, m.View(), "Entry 1 of 2")
	assert.Equal(t, "Acme", m.inputs[0].Value())

	press(m, tea.KeyCtrlD)
	exp = m.State().Document.Experience
	require.Len(t, exp, 1)
	assert.Equal(t, "Globex", exp[0].Company)
	assert.Equal(t, "Globex", m.inputs[0].Value())
}

func TestModel_EducationEntry(t *testing.T) {
	m := newTestModel(t, nil)
	press(m, tea.KeyCtrlN, tea.KeyCtrlN, tea.KeyCtrlA)

	typeText(m, "MIT")
	press(m, tea.KeyShiftTab) // wraps to GPA
	typeText(m, "3.9")

	edu := m.State().Document.Education
	require.Len(t, edu, 1)
	assert.Equal(t, "MIT", edu[0].School)
	assert.Equal(t, "3.9", edu[0].GPA)
}

func TestModel_Skills(t *testing.T) {
	m := newTestModel(t, nil)
	press(m, tea.KeyCtrlN, tea.KeyCtrlN, tea.KeyCtrlN)

	typeText(m, "Go")
	press(m, tea.KeyEnter)
	typeText(m, "Rust")
	press(m, tea.KeyEnter)
	assert.Equal(t, []string{"Go", "Rust"}, m.State().Document.Skills)
	assert.Empty(t, m.inputs[0].Value())

	// A duplicate is not added and stays in the input
	typeText(m, "Go")
	press(m, tea.KeyEnter)
	assert.Equal(t, []string{"Go", "Rust"}, m.State().Document.Skills)
	assert.Equal(t, "Go", m.inputs[0].Value())

	// The selection follows the last added skill; remove it
	press(m, tea.KeyCtrlD)
	assert.Equal(t, []string{"Go"}, m.State().Document.Skills)
}

func TestModel_TemplateCycle(t *testing.T) {
	m := newTestModel(t, nil)
	assert.Equal(t, types.TemplateClassic, m.State().Template)

	press(m, tea.KeyCtrlT)
	assert.Equal(t, types.TemplateModern, m.State().Template)
	press(m, tea.KeyCtrlT)
	assert.Equal(t, types.TemplateMinimal, m.State().Template)
	press(m, tea.KeyCtrlT)
	assert.Equal(t, types.TemplateClassic, m.State().Template)
}

func TestModel_Export(t *testing.T) {
	var got cvstate.State
	calls := 0
	m := newTestModel(t, func(_ context.Context, st cvstate.State) (*export.Result, error) {
		calls++
		got = st
		return &export.Result{FileName: st.FileName(), Location: "/tmp/" + st.FileName(), Pages: 2}, nil
	})
	typeText(m, "Jane Doe")

	// Only available on the last step
	assert.Nil(t, press(m, tea.KeyCtrlE))
	assert.Contains(t, m.View(), "last step")

	press(m, tea.KeyCtrlN, tea.KeyCtrlN, tea.KeyCtrlN)
	cmd := press(m, tea.KeyCtrlE)
	require.NotNil(t, cmd)
	assert.True(t, m.State().Exporting)
	assert.Contains(t, m.View(), "Generating PDF...")

	// A second request while running is ignored
	assert.Nil(t, press(m, tea.KeyCtrlE))

	m.Update(cmd())
	assert.Equal(t, 1, calls)
	assert.Equal(t, "Jane Doe", got.Document.PersonalInfo.FullName)
	assert.False(t, m.State().Exporting)
	require.NotNil(t, m.LastResult())
	assert.Contains(t, m.View(), "Saved /tmp/Jane_Doe_CV.pdf (2 page(s))")
}

func TestModel_ExportFailure(t *testing.T) {
	m := newTestModel(t, func(context.Context, cvstate.State) (*export.Result, error) {
		return nil, errors.New("chrome went away")
	})
	press(m, tea.KeyCtrlN, tea.KeyCtrlN, tea.KeyCtrlN)

	cmd := press(m, tea.KeyCtrlE)
	require.NotNil(t, cmd)
	m.Update(cmd())

	assert.False(t, m.State().Exporting)
	view := m.View()
	assert.Contains(t, view, export.UserMessage)
	assert.NotContains(t, view, "chrome went away")
	assert.Nil(t, m.LastResult())

	// Export is available again after a failure
	assert.NotNil(t, press(m, tea.KeyCtrlE))
}

func TestModel_ExportUnavailable(t *testing.T) {
	m := New(context.Background(), cvstate.State{Document: types.NewCVDocument(), Step: 3, Template: types.TemplateClassic}, Options{})

	assert.Nil(t, press(m, tea.KeyCtrlE))
	assert.Contains(t, m.View(), "Export is not available")
	assert.False(t, m.State().Exporting)
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(t, nil)
	cmd := press(m, tea.KeyEsc)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
