package ui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/five82/tao/internal/library"
	"github.com/five82/tao/internal/prefs"
	"github.com/five82/tao/internal/session"
)

// View represents the current active view.
type View int

const (
	ViewChapter View = iota
	ViewSearch
	ViewFavorites
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Session   *session.Session
	PollTick  time.Duration
	ThemeName string
	PrefsPath string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	session   *session.Session
	prefsPath string
	pollTick  time.Duration
	keys      keyMap

	// UI state
	theme  Theme
	view   View
	width  int
	height int
	ready  bool

	// Data state
	snapshot library.Snapshot
	spinner  spinner.Model

	// Chapter view
	chapter  viewport.Model
	markdown *markdownRenderer

	// List views
	searchInput   textinput.Model
	searchFocused bool
	selected      int

	showHelp bool

	// Last action outcome, shown in the footer until the next key.
	status    string
	statusErr bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick == 0 {
		pollTick = DefaultPollInterval
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = prefs.Default().Theme
	}

	ti := textinput.New()
	ti.Placeholder = "Search titles, text, interpretations, keywords..."
	ti.Prompt = "/ "
	ti.CharLimit = 120

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return Model{
		ctx:         ctx,
		session:     opts.Session,
		prefsPath:   opts.PrefsPath,
		pollTick:    pollTick,
		keys:        DefaultKeyMap(),
		theme:       GetTheme(themeName),
		view:        ViewChapter,
		markdown:    &markdownRenderer{},
		searchInput: ti,
		spinner:     spin,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		fetchSnapshotCmd(m.session.Store()),
		tickCmd(m.pollTick),
		m.spinner.Tick,
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.status = ""
		m.statusErr = false
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.chapter = viewport.New(msg.Width, bodyHeight(msg.Height))
		} else {
			m.chapter.Width = msg.Width
			m.chapter.Height = bodyHeight(msg.Height)
		}
		m.searchInput.Width = max(msg.Width-6, 10)
		m.ready = true
		m.refreshChapter()
		return m, nil

	case tickMsg:
		if m.settled() {
			return m, nil
		}
		return m, tea.Batch(fetchSnapshotCmd(m.session.Store()), tickCmd(m.pollTick))

	case spinner.TickMsg:
		if m.settled() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case snapshotMsg:
		wasLoaded := m.snapshot.Loaded
		m.snapshot = library.Snapshot(msg)
		if m.snapshot.Loaded && !wasLoaded {
			if m.view == ViewSearch {
				m.session.Search(m.searchInput.Value())
			}
			m.refreshChapter()
		}
		return m, nil
	}

	if m.searchFocused {
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

// settled reports whether the loader has finished, one way or the other.
func (m Model) settled() bool {
	return m.snapshot.Loaded || m.snapshot.Failed()
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		lipgloss.NewStyle().Height(bodyHeight(m.height)).MaxHeight(bodyHeight(m.height)).Render(m.renderBody()),
		m.renderFooter(),
	)
}

// renderBody renders the active view.
func (m Model) renderBody() string {
	if !m.snapshot.Loaded {
		return m.renderLoading()
	}
	switch m.view {
	case ViewSearch:
		return m.renderSearch()
	case ViewFavorites:
		return m.renderFavorites()
	default:
		return m.renderChapter()
	}
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.searchFocused {
		return m.handleSearchInputKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		m.refreshChapter()
		return m, nil
	}

	// Everything past this point needs chapters.
	if !m.snapshot.Loaded {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Next):
		m.session.Next()
		m.showChapter()
		return m, nil

	case key.Matches(msg, m.keys.Prev):
		m.session.Prev()
		m.showChapter()
		return m, nil

	case key.Matches(msg, m.keys.Random):
		m.session.Random()
		m.showChapter()
		return m, nil

	case key.Matches(msg, m.keys.Search):
		return m, m.openSearch(m.session.Query())

	case key.Matches(msg, m.keys.Favorites):
		if m.view == ViewFavorites {
			m.view = ViewChapter
			return m, nil
		}
		m.view = ViewFavorites
		m.selected = 0
		return m, nil

	case key.Matches(msg, m.keys.ToggleFavorite):
		m.toggleFavorite()
		return m, nil

	case key.Matches(msg, m.keys.ToggleOriginal):
		show := m.session.ToggleOriginal()
		m.savePrefs()
		m.refreshChapter()
		if show {
			m.setStatus("Showing original text")
		} else {
			m.setStatus("Hiding original text")
		}
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		if m.view == ViewSearch {
			m.session.ClearSearch()
			m.searchInput.SetValue("")
		}
		m.view = ViewChapter
		return m, nil
	}

	if m.view == ViewChapter {
		return m.handleChapterKey(msg)
	}
	return m.handleListKey(msg)
}

// handleChapterKey handles scrolling and keyword shortcuts in the chapter view.
func (m Model) handleChapterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Down):
		m.chapter.ScrollDown(1)
	case key.Matches(msg, m.keys.Up):
		m.chapter.ScrollUp(1)
	case key.Matches(msg, m.keys.HalfPageDown):
		m.chapter.HalfPageDown()
	case key.Matches(msg, m.keys.HalfPageUp):
		m.chapter.HalfPageUp()
	case key.Matches(msg, m.keys.Top):
		m.chapter.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		m.chapter.GotoBottom()
	default:
		d, err := strconv.Atoi(msg.String())
		if err != nil {
			return m, nil
		}
		ch, ok := m.session.Current()
		if !ok {
			return m, nil
		}
		kw, ok := keywordAt(ch, d)
		if !ok {
			return m, nil
		}
		m.session.SearchKeyword(kw)
		m.searchInput.SetValue(kw)
		m.searchFocused = false
		m.searchInput.Blur()
		m.view = ViewSearch
		m.selected = 0
	}
	return m, nil
}

// handleListKey handles selection in the search and favorites lists.
func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Down):
		m.moveSelection(1)
	case key.Matches(msg, m.keys.Up):
		m.moveSelection(-1)
	case key.Matches(msg, m.keys.HalfPageDown):
		m.moveSelection(bodyHeight(m.height) / 2)
	case key.Matches(msg, m.keys.HalfPageUp):
		m.moveSelection(-bodyHeight(m.height) / 2)
	case key.Matches(msg, m.keys.Top):
		m.selected = 0
	case key.Matches(msg, m.keys.Bottom):
		m.moveSelection(len(m.listItems()))
	case key.Matches(msg, m.keys.Open):
		m.openSelected()
	}
	return m, nil
}

// handleSearchInputKey handles keys while the search input has focus.
func (m Model) handleSearchInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.searchFocused = false
		m.searchInput.Blur()
		if m.searchInput.Value() == "" {
			m.session.ClearSearch()
			m.view = ViewChapter
		}
		return m, nil

	case tea.KeyEnter:
		m.searchFocused = false
		m.searchInput.Blur()
		m.openSelected()
		return m, nil

	case tea.KeyUp:
		m.moveSelection(-1)
		return m, nil

	case tea.KeyDown:
		m.moveSelection(1)
		return m, nil
	}

	before := m.searchInput.Value()
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if after := m.searchInput.Value(); after != before {
		m.session.Search(after)
		m.selected = 0
	}
	return m, cmd
}

// openSearch switches to the search view with the input focused.
func (m *Model) openSearch(query string) tea.Cmd {
	m.view = ViewSearch
	m.selected = 0
	m.searchInput.SetValue(query)
	m.searchInput.CursorEnd()
	m.session.Search(query)
	m.searchFocused = true
	return m.searchInput.Focus()
}

// openSelected jumps to the highlighted list entry.
func (m *Model) openSelected() {
	ch, ok := m.selectedChapter()
	if !ok {
		return
	}
	m.session.GoTo(ch.Ordinal)
	m.searchInput.SetValue("")
	m.showChapter()
}

// showChapter switches to the chapter view at the top of the cursor chapter.
func (m *Model) showChapter() {
	m.view = ViewChapter
	m.refreshChapter()
	if m.ready {
		m.chapter.GotoTop()
	}
}

// toggleFavorite flips the chapter under the cursor or the list selection.
func (m *Model) toggleFavorite() {
	ordinal := m.session.CurrentOrdinal()
	if m.view != ViewChapter {
		ch, ok := m.selectedChapter()
		if !ok {
			return
		}
		ordinal = ch.Ordinal
	}

	marked, err := m.session.ToggleFavorite(m.ctx, ordinal)
	if err != nil {
		m.session.Logger().Warn("favorite not saved", zap.Int("chapter", ordinal), zap.Error(err))
		m.setError(fmt.Sprintf("Favorite not saved: %v", err))
	} else if marked {
		m.setStatus(fmt.Sprintf("Chapter %d added to favorites", ordinal))
	} else {
		m.setStatus(fmt.Sprintf("Chapter %d removed from favorites", ordinal))
	}

	if m.view == ViewFavorites {
		m.moveSelection(0)
	}
	m.refreshChapter()
}

// savePrefs writes the theme and original-text toggle.
func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name, ShowOriginal: m.session.ShowOriginal()}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.session.Logger().Warn("prefs not saved", zap.String("path", m.prefsPath), zap.Error(err))
		m.setError("Preferences not saved")
	}
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(s string) {
	m.status = s
	m.statusErr = true
}

// Messages

type tickMsg time.Time

type snapshotMsg library.Snapshot

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *library.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	if opts.Session == nil {
		return errors.New("ui: session is required")
	}
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
