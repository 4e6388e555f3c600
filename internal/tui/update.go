package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"pypath/internal/calc"
	"pypath/internal/model"
)

// MsgAnalysisReady indicates that the calculation has completed.
type MsgAnalysisReady model.Analysis

// MsgError indicates an error occurred.
type MsgError error

// initCalcCmd runs the calculation in the background.
func (m AppModel) initCalcCmd() tea.Cmd {
	return func() tea.Msg {
		a, err := m.Run()
		if err != nil {
			return MsgError(err)
		}
		return MsgAnalysisReady(a)
	}
}

// Update handles events.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.WindowSize = msg
		return m, nil

	case MsgAnalysisReady:
		m.Loading = false
		m.Analysis = model.Analysis(msg)
		m.FilteredIndices = allIndices(len(m.Analysis.PathEntries))
		m.SelectedIdx = 0
		return m, nil

	case MsgError:
		m.Err = msg
		m.Loading = false
		return m, nil

	case tea.KeyMsg:
		if m.InputMode {
			switch msg.Type {
			case tea.KeyEnter:
				m.InputMode = false
				m.performSearch()
				return m, nil
			case tea.KeyEsc:
				m.InputMode = false
				m.InputBuffer.Blur()
				m.clearSearch()
				return m, nil
			}
			m.InputBuffer, cmd = m.InputBuffer.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "esc":
			switch {
			case m.ShowHelp:
				m.ShowHelp = false
			case m.SearchActive:
				m.InputBuffer.SetValue("")
				m.clearSearch()
			case m.ShowSteps:
				m.ShowSteps = false
			case m.RightFocus:
				m.RightFocus = false
			}
		case "up", "k":
			if m.ShowHelp {
				if m.HelpScrollY > 0 {
					m.HelpScrollY--
				}
			} else if m.ShowSteps {
				if m.StepsScrollY > 0 {
					m.StepsScrollY--
				}
			} else if m.RightFocus {
				if m.DetailsScrollY > 0 {
					m.DetailsScrollY--
				}
			} else if m.SelectedIdx > 0 {
				m.SelectedIdx--
				m.DetailsScrollY = 0
			}
		case "down", "j":
			if m.ShowHelp {
				m.HelpScrollY++
			} else if m.ShowSteps {
				m.StepsScrollY++
			} else if m.RightFocus {
				m.DetailsScrollY++
			} else if m.SelectedIdx < len(m.FilteredIndices)-1 {
				m.SelectedIdx++
				m.DetailsScrollY = 0
			}
		case "tab":
			if !m.ShowSteps && !m.ShowHelp {
				m.RightFocus = !m.RightFocus
			}
		case "s":
			m.ShowSteps = !m.ShowSteps
			m.StepsScrollY = 0
		case "w":
			m.InputMode = true
			m.ShowSteps = false
			m.InputBuffer.Focus()
			m.InputBuffer.SetValue("")
			return m, textinput.Blink
		case "?":
			m.ShowHelp = !m.ShowHelp
			m.HelpScrollY = 0
		}
	}

	return m, cmd
}

// performSearch filters the entry list to the directories containing a
// module matching the query, first match first.
func (m *AppModel) performSearch() {
	term := strings.ToLower(strings.TrimSpace(m.InputBuffer.Value()))
	if term == "" {
		m.clearSearch()
		return
	}

	m.SearchActive = true
	m.Matches = calc.FindModules(m.Analysis.PathEntries, term)
	m.FilteredIndices = nil
	m.SearchMatches = make(map[int]string)
	for _, match := range m.Matches {
		m.FilteredIndices = append(m.FilteredIndices, match.Index)
		m.SearchMatches[match.Index] = match.MatchedFile
	}

	if m.SelectedIdx >= len(m.FilteredIndices) {
		m.SelectedIdx = 0
	}
	m.DetailsScrollY = 0
}

func (m *AppModel) clearSearch() {
	m.SearchActive = false
	m.Matches = nil
	m.SearchMatches = nil
	m.FilteredIndices = allIndices(len(m.Analysis.PathEntries))
	if m.SelectedIdx >= len(m.FilteredIndices) {
		m.SelectedIdx = 0
	}
}

func allIndices(n int) []int {
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	return indices
}
