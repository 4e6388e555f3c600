package tui

import (
	"pypath/internal/calc"
	"pypath/internal/model"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// AppModel holds the TUI state.
type AppModel struct {
	// Data
	Analysis model.Analysis
	Loading  bool
	Err      error

	// The calculation, run once in the background on startup.
	Run func() (model.Analysis, error)

	// UI state
	SelectedIdx    int
	WindowSize     tea.WindowSizeMsg
	DetailsScrollY int
	RightFocus     bool

	// View modes
	ShowSteps    bool
	StepsScrollY int
	ShowHelp     bool
	HelpScrollY  int

	// Module search state ('w')
	InputMode       bool
	InputBuffer     textinput.Model
	SearchActive    bool
	FilteredIndices []int              // indices of PathEntries to show
	SearchMatches   map[int]string     // PathEntry index -> matched filename
	Matches         []calc.ModuleMatch // raw matches, in search order
}

// InitialModel returns the initial state. run performs the path calculation
// and is invoked from a background command.
func InitialModel(run func() (model.Analysis, error)) AppModel {
	ti := textinput.New()
	ti.Placeholder = "Module name..."
	ti.CharLimit = 50
	ti.Width = 20

	return AppModel{
		Loading:     true,
		Run:         run,
		InputBuffer: ti,
		SelectedIdx: 0,
	}
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.initCalcCmd())
}
