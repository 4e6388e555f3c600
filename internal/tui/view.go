package tui

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pypath/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	adviceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208")) // Orange

	matchStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81")). // Sky Blue/Cyan
			Bold(true)
)

const (
	borderColor = lipgloss.Color("63")
	activeColor = lipgloss.Color("205")
)

func (m AppModel) View() string {
	if m.Loading {
		return "\n  Calculating path configuration... please wait.\n"
	}
	if m.Err != nil {
		return fmt.Sprintf("\n  Error: %v\n", m.Err)
	}
	if m.ShowHelp {
		return m.renderHelpDialog()
	}

	width := m.WindowSize.Width
	height := m.WindowSize.Height

	netWidth := width - 6
	if netWidth < 20 {
		netWidth = 20
	}
	leftWidth := netWidth / 2
	rightWidth := netWidth - leftWidth

	boxHeight := height - 6
	if boxHeight < 6 {
		boxHeight = 6
	}
	interiorHeight := boxHeight - 2
	if interiorHeight < 2 {
		interiorHeight = 2
	}

	left := m.renderEntryList(leftWidth, interiorHeight)

	var right string
	if m.ShowSteps {
		right = m.renderSteps(rightWidth, interiorHeight)
	} else {
		right = m.renderDetails(rightWidth, interiorHeight)
	}

	help := "Help: ↑/↓: Navigate • Tab: Switch Panel • s: Search Steps • w: Find Module • ?: Help • q: Quit"
	if m.ShowSteps {
		help = "Steps Mode: ↑/↓: Scroll • s/Esc: Return • q: Quit"
	} else if m.RightFocus {
		help = "Details Mode: ↑/↓: Scroll • Tab: Return to Entry List • q: Quit"
	}

	footer := "\n\n" + help
	if m.InputMode {
		footer = fmt.Sprintf("\n\nFind module: %s", m.InputBuffer.View())
	} else if m.SearchActive {
		footer = fmt.Sprintf("\n\nShowing entries containing %q • Esc: clear • %s", m.InputBuffer.Value(), help)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, left, right) + footer
}

func (m AppModel) renderEntryList(width, interiorHeight int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Module Search Path"))
	b.WriteString("\n\n")

	// Header is 2 lines (title + blank).
	visibleItems := interiorHeight - 2
	if visibleItems < 1 {
		visibleItems = 1
	}
	startIdx := 0
	endIdx := len(m.FilteredIndices)

	if len(m.FilteredIndices) > visibleItems {
		if m.SelectedIdx >= visibleItems/2 {
			startIdx = m.SelectedIdx - (visibleItems / 2)
		}
		if startIdx < 0 {
			startIdx = 0
		}
		if startIdx+visibleItems > len(m.FilteredIndices) {
			startIdx = len(m.FilteredIndices) - visibleItems
		}
		endIdx = startIdx + visibleItems
	}

	for i := startIdx; i < endIdx; i++ {
		idx := m.FilteredIndices[i]
		entry := m.Analysis.PathEntries[idx]

		statusIcon := model.IconOK
		switch {
		case entry.Source == model.SourceEnv:
			statusIcon = model.IconEnv
		case entry.IsDuplicate:
			statusIcon = model.IconDuplicate
		case !entry.Exists:
			statusIcon = model.IconMissing
		case entry.Source == model.SourceZip:
			statusIcon = model.IconZip
		}

		line := fmt.Sprintf("%2d. %s %s", idx+1, statusIcon, entry.Value)
		if entry.IsDuplicate {
			line += " (duplicate)"
		} else if !entry.Exists {
			line += " (missing)"
		}
		if idx == 0 {
			line += " (highest priority " + model.IconFirst + ")"
		} else if idx == len(m.Analysis.PathEntries)-1 {
			line += " (lowest priority " + model.IconLast + ")"
		}

		if len(line) > width-2 {
			line = line[:width-5] + "..."
		}

		style := normalStyle
		if m.SearchActive {
			if i == m.SelectedIdx {
				style = selectedStyle
			} else if i == 0 {
				// The first match is where the import resolves.
				style = matchStyle
			}
		} else if i == m.SelectedIdx {
			style = selectedStyle
		}

		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	if len(m.FilteredIndices) == 0 {
		b.WriteString(dimStyle.Render("No entries."))
	}

	color := borderColor
	if !m.RightFocus && !m.ShowSteps {
		color = activeColor
	}
	return lipgloss.NewStyle().
		Width(width).
		Height(interiorHeight).
		Border(lipgloss.NormalBorder()).
		BorderForeground(color).
		Render(strings.TrimSuffix(b.String(), "\n"))
}

func (m AppModel) renderDetails(width, interiorHeight int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Details"))
	b.WriteString("\n")

	cfg := m.Analysis.Config
	fmt.Fprintf(&b, "\nExecutable:   %s", cfg.ProgramFullPath)
	fmt.Fprintf(&b, "\nPrefix:       %s (%s)", cfg.Prefix, m.Analysis.PrefixProvenance)
	fmt.Fprintf(&b, "\nExec prefix:  %s (%s)", cfg.ExecPrefix, m.Analysis.ExecPrefixProvenance)
	if m.Analysis.VenvCfgFile != "" {
		fmt.Fprintf(&b, "\nVirtual env:  %s", m.Analysis.VenvCfgFile)
	}

	if len(m.FilteredIndices) > 0 && m.SelectedIdx < len(m.FilteredIndices) {
		idx := m.FilteredIndices[m.SelectedIdx]
		entry := m.Analysis.PathEntries[idx]

		fmt.Fprintf(&b, "\n\nDirectory:  %s", entry.Value)
		fmt.Fprintf(&b, "\nAdded by:   %s", entry.Source)
		if !entry.Exists {
			b.WriteString("\nStatus:     " + model.IconMissing + " does not exist")
		}
		if entry.IsDuplicate {
			b.WriteString(adviceStyle.Render(fmt.Sprintf(
				"\n\n%s DUPLICATE detected!\n%s", model.IconDuplicate, entry.Remediation)))
		}

		// Venv entries get the cfg line that put them there.
		if m.Analysis.VenvCfgFile != "" && entry.Source != model.SourceEnv {
			ctx := model.GetLineContext(m.Analysis.VenvCfgFile, m.Analysis.VenvCfgLine)
			if ctx.ErrorMsg == "" {
				fmt.Fprintf(&b, "\n\n--- %s ---", m.Analysis.VenvCfgFile)
				if ctx.HasBefore1 {
					fmt.Fprintf(&b, "\n  %4d  %s", ctx.LineNumber-1, ctx.Before1)
				}
				fmt.Fprintf(&b, "\n» %4d  %s", ctx.LineNumber, ctx.Target)
				if ctx.HasAfter1 {
					fmt.Fprintf(&b, "\n  %4d  %s", ctx.LineNumber+1, ctx.After1)
				}
			}
		}

		if m.SearchActive {
			if filename, ok := m.SearchMatches[idx]; ok {
				fullPath := entry.Value + "/" + filename
				if info, err := os.Lstat(fullPath); err == nil {
					b.WriteString("\n\n--- Found Module ---")
					fmt.Fprintf(&b, "\nName:       %s", filename)
					fmt.Fprintf(&b, "\nPath:       %s", fullPath)
					fmt.Fprintf(&b, "\nSize:       %d bytes", info.Size())
					fmt.Fprintf(&b, "\nModified:   %s", info.ModTime().Format("2006-01-02 15:04:05"))
					if m.SelectedIdx > 0 {
						b.WriteString(adviceStyle.Render(
							"\n\nShadowed: an earlier entry also matches; imports resolve there."))
					}
				}
			}
		}
	}

	if len(m.Analysis.Diagnostics) > 0 {
		b.WriteString("\n\nDiagnostics:")
		for _, d := range m.Analysis.Diagnostics {
			b.WriteString(adviceStyle.Render("\n  - " + d))
		}
	}

	return m.renderScrolled(b.String(), width, interiorHeight, m.DetailsScrollY, m.RightFocus)
}

func (m AppModel) renderSteps(width, interiorHeight int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Search Steps"))
	b.WriteString("\n")

	for _, s := range m.Analysis.Steps {
		status := model.IconMissing
		if s.Found {
			status = model.IconOK
		}
		if s.Detail == "build tree" {
			status = model.IconBuild
		}
		fmt.Fprintf(&b, "\n[%-11s] %s %s", s.Stage, status, s.Candidate)
		if s.Detail != "" {
			fmt.Fprintf(&b, " (%s)", s.Detail)
		}
	}
	if len(m.Analysis.Steps) == 0 {
		b.WriteString("\nNo probes recorded.")
	}

	return m.renderScrolled(b.String(), width, interiorHeight, m.StepsScrollY, true)
}

// renderScrolled slices content to the interior height at the given scroll
// offset and draws the bordered panel around it.
func (m AppModel) renderScrolled(content string, width, interiorHeight, scrollY int, focused bool) string {
	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	startY := scrollY
	if startY > len(lines)-interiorHeight {
		startY = len(lines) - interiorHeight
	}
	if startY < 0 {
		startY = 0
	}
	endY := startY + interiorHeight
	if endY > len(lines) {
		endY = len(lines)
	}

	visibleLines := lines[startY:endY]
	var sb strings.Builder
	for i, line := range visibleLines {
		if len(line) > width {
			line = line[:width-4] + "..."
		}
		sb.WriteString(line)
		if i < len(visibleLines)-1 {
			sb.WriteString("\n")
		}
	}

	color := borderColor
	if focused {
		color = activeColor
	}
	return lipgloss.NewStyle().
		Width(width).
		Height(interiorHeight).
		Border(lipgloss.NormalBorder()).
		BorderForeground(color).
		Render(sb.String())
}

const helpContent = `pypath: interpreter path configuration explorer

Keys:
  ↑/↓ or k/j   Navigate the entry list (or scroll the active panel)
  Tab          Switch focus between the entry list and the details panel
  s            Toggle the probe log: every location the search tried
  w            Find a module: type a name and see which entry wins
  ?            Toggle this help
  Esc          Back out of the current mode
  q            Quit

Icons:
  ` + model.IconEnv + `  entry injected by $PYTHONPATH
  ` + model.IconZip + `  the stdlib zip archive
  ` + model.IconDuplicate + `  duplicate of an earlier entry
  ` + model.IconMissing + `  directory or archive does not exist
  ` + model.IconBuild + `  running from an uninstalled build tree`

func (m AppModel) renderHelpDialog() string {
	w, h := m.WindowSize.Width, m.WindowSize.Height
	if w < 20 || h < 10 {
		return "Window too small"
	}

	helpWidth := w * 80 / 100
	if helpWidth < 40 {
		helpWidth = 40
	}
	if helpWidth > w-4 {
		helpWidth = w - 4
	}
	helpHeight := h - 6
	if helpHeight < 5 {
		helpHeight = 5
	}

	lines := strings.Split(helpContent, "\n")
	contentHeight := helpHeight - 2

	startY := m.HelpScrollY
	if startY > len(lines)-contentHeight {
		startY = len(lines) - contentHeight
	}
	if startY < 0 {
		startY = 0
	}

	endY := startY + contentHeight
	if endY > len(lines) {
		endY = len(lines)
	}

	dialog := lipgloss.NewStyle().
		Width(helpWidth).
		Height(helpHeight).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Padding(0, 1).
		Render(strings.Join(lines[startY:endY], "\n"))

	return lipgloss.Place(w, h,
		lipgloss.Center, lipgloss.Center,
		dialog,
	)
}

// Run starts the TUI on the alternate screen and blocks until it exits.
func Run(m AppModel) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
