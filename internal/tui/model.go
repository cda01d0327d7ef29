package tui

import (
	"os"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/MH0386/doctainr/internal/config"
	"github.com/MH0386/doctainr/internal/state"
)

// tab identifies one of the dashboard pages.
type tab int

const (
	tabDashboard tab = iota
	tabContainers
	tabImages
	tabVolumes
	tabSettings
)

var tabNames = []string{"Dashboard", "Containers", "Images", "Volumes", "Settings"}

func (t tab) String() string { return tabNames[t] }

// model is the Bubble Tea model for the doctainr dashboard.
type model struct {
	app     *state.AppState
	cfg     *config.Config
	cfgPath string

	active tab
	cursor int // selected row on the containers page
	width  int
	height int

	hostInput   textinput.Model
	editingHost bool
	spin        spinner.Model
	changes     chan struct{}
	quitting    bool
}

func newModel(app *state.AppState, cfg *config.Config, cfgPath string) model {
	ti := textinput.New()
	ti.Placeholder = "unix:///var/run/docker.sock"
	ti.CharLimit = 256
	ti.Width = 60
	ti.Blur()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	// Get initial terminal size so the first render isn't at width=0
	w, h, _ := term.GetSize(int(os.Stdout.Fd()))
	if w == 0 {
		w = 80
	}
	if h == 0 {
		h = 24
	}

	return model{
		app:       app,
		cfg:       cfg,
		cfgPath:   cfgPath,
		hostInput: ti,
		spin:      sp,
		changes:   app.Subscribe(),
		width:     w,
		height:    h,
	}
}

func (m model) refreshInterval() time.Duration {
	return time.Duration(m.cfg.RefreshSeconds) * time.Second
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		m.spin.Tick,
		waitForChange(m.changes),
		tickCmd(m.refreshInterval()),
		func() tea.Msg {
			m.app.RefreshAll()
			return nil
		},
	)
}
