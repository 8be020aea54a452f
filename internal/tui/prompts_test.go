package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

func TestPromptsDisabled(t *testing.T) {
	t.Setenv(EnvNonInteractive, "1")
	require.False(t, InteractiveAllowed())

	_, err := PromptConfirm("Delete?", false)
	require.ErrorIs(t, err, ErrInteractiveDisabled)

	_, err = PromptTextInput("Title:", "")
	require.ErrorIs(t, err, ErrInteractiveDisabled)

	_, err = PromptSelect("Pick", []SelectOption{{Label: "a", Value: "a"}}, 0)
	require.ErrorIs(t, err, ErrInteractiveDisabled)

	_, err = EditTitle("old")
	require.ErrorIs(t, err, ErrInteractiveDisabled)
}

func TestSelectModel(t *testing.T) {
	m := SelectModel{
		Title:   "Pick one",
		Options: []SelectOption{{Label: "First", Value: "1"}, {Label: "Second", Value: "2"}},
	}

	step := func(m SelectModel, msg tea.KeyMsg) SelectModel {
		next, _ := m.Update(msg)
		return next.(SelectModel)
	}

	m = step(m, tea.KeyMsg{Type: tea.KeyUp})
	require.Equal(t, 1, m.Cursor, "wraps to the last option")
	m = step(m, tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, 0, m.Cursor, "wraps to the first option")
	require.Contains(t, m.View(), "First")

	m = step(m, tea.KeyMsg{Type: tea.KeyDown})
	m = step(m, tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.Done)
	require.Equal(t, "2", m.Selected)
	require.Empty(t, m.View())

	canceled := step(SelectModel{Options: m.Options}, tea.KeyMsg{Type: tea.KeyEsc})
	require.ErrorIs(t, canceled.Err, ErrCanceled)
}

func TestTextInputModel(t *testing.T) {
	m := newTextInputModel("Title:", "draft")
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	m = next.(textInputModel)
	require.Equal(t, "drafts", m.textInput.Value())

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.ErrorIs(t, next.(textInputModel).err, ErrCanceled)
}

func TestFirstContentLine(t *testing.T) {
	require.Equal(t, "Write docs", FirstContentLine("\n# comment\n  Write docs  \nmore"))
	require.Empty(t, FirstContentLine("# only comments\n\n"))
}
