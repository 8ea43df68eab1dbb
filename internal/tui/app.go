package tui

import (
	"sort"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mpetrik/skydeck/internal/domain"
	"github.com/mpetrik/skydeck/internal/skyblock"
	"github.com/mpetrik/skydeck/internal/store"
	"github.com/mpetrik/skydeck/internal/worker"
)

// Model is the main Bubble Tea model for the kiosk. It never talks to
// a backend directly: records arrive over worker channels, commands go
// out through the music worker's fire-and-forget surface.
type Model struct {
	music   *worker.MusicWorker
	printer *worker.PrinterWorker
	clock   skyblock.Clock
	anchor  time.Time
	ui      *store.UIStore
	keys    KeyMap

	track      domain.TrackRecord
	playlists  domain.PlaylistSet
	printerRec domain.PrinterRecord
	now        time.Time
	tick       time.Duration

	view           string
	sidebarVisible bool
	cursor         int
	filter         textinput.Model
	filtering      bool

	trackBar progress.Model
	printBar progress.Model
	fwBar    progress.Model

	width  int
	height int
}

// NewModel creates the kiosk model. uiState is the persisted (or
// default) presentation state restored at startup.
func NewModel(music *worker.MusicWorker, printer *worker.PrinterWorker, clock skyblock.Clock,
	anchor time.Time, ui *store.UIStore, uiState store.UIState, tick time.Duration) Model {

	filter := textinput.New()
	filter.Placeholder = "filter playlists"
	filter.CharLimit = 64

	view := uiState.View
	if view != store.ViewPlaylists {
		view = store.ViewNowPlaying
	}

	return Model{
		music:          music,
		printer:        printer,
		clock:          clock,
		anchor:         anchor,
		ui:             ui,
		keys:           DefaultKeyMap(),
		track:          domain.FallbackTrack(),
		playlists:      domain.FallbackPlaylists(),
		printerRec:     domain.FallbackPrinter(),
		now:            time.Now(),
		tick:           tick,
		view:           view,
		sidebarVisible: uiState.SidebarVisible,
		cursor:         uiState.PlaylistCursor,
		filter:         filter,
		trackBar:       progress.New(progress.WithGradient("#1DB954", "#3DFFA0"), progress.WithoutPercentage()),
		printBar:       progress.New(progress.WithSolidFill("#E8A020"), progress.WithoutPercentage()),
		fwBar:          progress.New(progress.WithSolidFill("#E8A020"), progress.WithoutPercentage()),
	}
}

// Init starts the channel pumps and the sidebar clock.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		waitForTrack(m.music.Tracks()),
		waitForPlaylists(m.music.Playlists()),
		waitForPrinter(m.printer.Updates()),
		tickClock(m.tick),
	)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.trackBar.Width = contentWidth(m.width, m.sidebarVisible) - 14
		m.printBar.Width = 12
		m.fwBar.Width = sidebarWidth - 4
		return m, nil

	case TrackMsg:
		m.track = msg.Track
		return m, waitForTrack(m.music.Tracks())

	case PlaylistsMsg:
		m.playlists = msg.Playlists
		if m.cursor >= len(m.playlists.Names) {
			m.cursor = 0
		}
		return m, waitForPlaylists(m.music.Playlists())

	case PrinterMsg:
		m.printerRec = msg.Printer
		return m, waitForPrinter(m.printer.Updates())

	case ClockTickMsg:
		m.now = msg.Time
		return m, tickClock(m.tick)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.filtering {
		return m.handleFilterKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.saveState()
		return m, tea.Quit

	case key.Matches(msg, m.keys.PlayPause):
		m.music.PlayPause()

	case key.Matches(msg, m.keys.Next):
		m.music.Next()

	case key.Matches(msg, m.keys.Prev):
		m.music.Previous()

	case key.Matches(msg, m.keys.Shuffle):
		// The backend command is an absolute set; derive the target
		// from the last published record.
		m.music.SetShuffle(!m.track.Shuffle)

	case key.Matches(msg, m.keys.Loop):
		m.music.SetLoop(!m.track.Loop)

	case key.Matches(msg, m.keys.ToggleSidebar):
		m.sidebarVisible = !m.sidebarVisible
		m.saveState()

	case key.Matches(msg, m.keys.ToggleView):
		m.toggleView()

	case key.Matches(msg, m.keys.Filter):
		if m.view == store.ViewPlaylists {
			m.filtering = true
			m.filter.Focus()
		}

	case key.Matches(msg, m.keys.Up):
		if m.view == store.ViewPlaylists && m.cursor > 0 {
			m.cursor--
			m.saveState()
		}

	case key.Matches(msg, m.keys.Down):
		if m.view == store.ViewPlaylists && m.cursor < len(m.visiblePlaylists())-1 {
			m.cursor++
			m.saveState()
		}

	case key.Matches(msg, m.keys.Enter):
		if m.view == store.ViewNowPlaying {
			m.toggleView()
		} else {
			if names := m.visiblePlaylists(); len(names) > 0 && m.cursor < len(names) {
				m.music.LoadPlaylist(names[m.cursor])
			}
			m.toggleView()
		}
	}

	return m, nil
}

func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.filtering = false
		m.filter.Blur()
		m.filter.SetValue("")
		m.cursor = 0
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		m.filtering = false
		m.filter.Blur()
		m.cursor = 0
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	return m, cmd
}

func (m *Model) toggleView() {
	if m.view == store.ViewNowPlaying {
		m.view = store.ViewPlaylists
	} else {
		m.view = store.ViewNowPlaying
	}
	m.saveState()
}

func (m *Model) saveState() {
	if m.ui == nil {
		return
	}
	m.ui.Save(store.UIState{
		View:           m.view,
		SidebarVisible: m.sidebarVisible,
		PlaylistCursor: m.cursor,
	})
}

// visiblePlaylists applies the fuzzy filter to the published playlist
// names, preserving backend order when no filter is active.
func (m Model) visiblePlaylists() []string {
	query := m.filter.Value()
	if query == "" {
		return m.playlists.Names
	}

	ranks := fuzzy.RankFindNormalizedFold(query, m.playlists.Names)
	sort.Sort(ranks)

	names := make([]string, 0, len(ranks))
	for _, r := range ranks {
		names = append(names, r.Target)
	}
	return names
}
