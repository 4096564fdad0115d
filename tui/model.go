// Package tui renders the reader as a terminal application: a header, a
// scrollable list of headline cards, and overlays for article detail and
// settings.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/pevans/newscards/app"
	"github.com/pevans/newscards/newsfeed"
	"github.com/pevans/newscards/scraper"
)

// Layout in terminal rows.
const (
	headerHeight = 2
	footerHeight = 1
	cardHeight   = 3
	cardStride   = cardHeight + 1
)

type session int

const (
	listView session = iota
	detailView
	settingsView
)

// Settings form fields, in focus order.
const (
	fieldURL = iota
	fieldSelector
	fieldDark
	fieldSubmit
	fieldCount
)

// card is one row of the list. It captures the feed generation and index it
// was built from, so opening it later always refers to that same item.
type card struct {
	generation uuid.UUID
	index      int
	title      string
}

func (c card) label() string {
	return fmt.Sprintf("%d. %s", c.index+1, c.title)
}

func newCards(feed newsfeed.Feed) []card {
	cards := make([]card, 0, feed.Len())
	for i, item := range feed.Items {
		cards = append(cards, card{
			generation: feed.Generation,
			index:      i,
			title:      item.Title,
		})
	}
	return cards
}

// Model is the bubbletea model of the reader.
type Model struct {
	fetcher app.Fetcher
	state   app.State
	keys    keyMap
	styles  styles

	session session
	cards   []card
	cursor  int
	width   int
	height  int

	list       viewport.Model
	detailPane viewport.Model
	detail     app.Detail

	urlInput      textinput.Model
	selectorInput textinput.Model
	darkMode      bool
	focus         int

	spinner spinner.Model
	help    help.Model

	// Reloads and detail opens are tracked apart so neither supersedes the
	// other; within each kind only the latest result is accepted.
	reloadReq request
	detailReq request
}

// request is one in-flight fetch. Results carrying another token are stale.
type request struct {
	token  uuid.UUID
	cancel context.CancelFunc
}

// start cancels any previous request of this kind and begins a new one.
func (r *request) start() (context.Context, uuid.UUID) {
	r.finish()
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.token = uuid.New()
	return ctx, r.token
}

// finish forgets the request; any late result is dropped.
func (r *request) finish() {
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.token = uuid.Nil
}

func (r request) pending() bool {
	return r.token != uuid.Nil
}

// New creates a model that scrapes with f, starting from cfg.
func New(f app.Fetcher, cfg scraper.SourceConfig) *Model {
	urlInput := textinput.New()
	urlInput.Placeholder = "Haber Sayfası URL'si"

	selectorInput := textinput.New()
	selectorInput.Placeholder = "CSS Seçici"

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := &Model{
		fetcher:       f,
		state:         app.NewState(cfg),
		keys:          newKeyMap(),
		session:       listView,
		width:         80,
		height:        24,
		list:          viewport.New(80, 24-headerHeight-footerHeight),
		detailPane:    viewport.New(68, 16),
		urlInput:      urlInput,
		selectorInput: selectorInput,
		spinner:       sp,
		help:          help.New(),
	}
	m.applyTheme()
	return m
}

// Run starts the program and blocks until the user quits.
func Run(m *Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// State returns the current application state.
func (m *Model) State() app.State {
	return m.state
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.reload())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case feedLoadedMsg:
		if msg.token != m.reloadReq.token {
			return m, nil
		}
		m.reloadReq.finish()
		m.state.Feed = msg.feed
		m.cards = newCards(msg.feed)
		m.cursor = 0
		m.list.GotoTop()
		m.renderList()
		return m, nil

	case detailLoadedMsg:
		if msg.token != m.detailReq.token {
			return m, nil
		}
		m.detailReq.finish()
		if msg.detail.Title != "" {
			m.detail.Title = msg.detail.Title
		}
		m.detail.Text = msg.detail.Text
		m.renderDetail()
		m.detailPane.GotoTop()
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		switch m.session {
		case detailView:
			return m.handleDetailKey(msg)
		case settingsView:
			return m.handleSettingsKey(msg)
		default:
			return m.handleListKey(msg)
		}
	}

	return m, nil
}

func (m *Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.finishRequests()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.PageUp):
		m.moveCursor(-m.pageSize())
	case key.Matches(msg, m.keys.PageDown):
		m.moveCursor(m.pageSize())
	case key.Matches(msg, m.keys.Open):
		if len(m.cards) > 0 {
			return m, m.openCard(m.cards[m.cursor])
		}
	case key.Matches(msg, m.keys.Menu):
		return m, m.openSettings()
	case key.Matches(msg, m.keys.Reload):
		return m, m.reload()
	}
	return m, nil
}

func (m *Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		m.finishRequests()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		m.detailReq.finish()
		m.session = listView
		return m, nil
	}

	var cmd tea.Cmd
	m.detailPane, cmd = m.detailPane.Update(msg)
	return m, cmd
}

func (m *Model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		m.finishRequests()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		m.closeSettings()
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		return m, m.submitSettings()
	case key.Matches(msg, m.keys.Next):
		return m, m.setFocus((m.focus + 1) % fieldCount)
	case key.Matches(msg, m.keys.Prev):
		return m, m.setFocus((m.focus + fieldCount - 1) % fieldCount)
	case m.focus == fieldDark && key.Matches(msg, m.keys.Toggle):
		m.darkMode = !m.darkMode
		return m, nil
	}

	var cmd tea.Cmd
	switch m.focus {
	case fieldURL:
		m.urlInput, cmd = m.urlInput.Update(msg)
	case fieldSelector:
		m.selectorInput, cmd = m.selectorInput.Update(msg)
	}
	return m, cmd
}

func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.session {
	case detailView:
		m.detailPane, cmd = m.detailPane.Update(msg)
		return m, cmd
	case settingsView:
		return m, nil
	}

	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		if msg.Y == 0 && msg.X < 2 {
			return m, m.openSettings()
		}
		if index, ok := m.cardAt(msg.Y); ok {
			m.cursor = index
			m.renderList()
			return m, m.openCard(m.cards[index])
		}
		return m, nil
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// loading reports whether any fetch is in flight.
func (m *Model) loading() bool {
	return m.reloadReq.pending() || m.detailReq.pending()
}

// finishRequests abandons every fetch in flight.
func (m *Model) finishRequests() {
	m.reloadReq.finish()
	m.detailReq.finish()
}

func (m *Model) reload() tea.Cmd {
	ctx, token := m.reloadReq.start()
	return reloadCmd(ctx, m.fetcher, m.state.Config, token)
}

func (m *Model) openCard(c card) tea.Cmd {
	ctx, token := m.detailReq.start()
	m.session = detailView
	m.detail = app.Detail{Title: c.title}
	m.renderDetail()
	return openDetailCmd(ctx, m.fetcher, m.state.Feed, c, token)
}

func (m *Model) openSettings() tea.Cmd {
	sub := m.state.Config.Submission()
	m.urlInput.SetValue(sub.ListingURL)
	m.selectorInput.SetValue(sub.ListingSelector)
	m.darkMode = sub.DarkMode
	m.session = settingsView
	return m.setFocus(fieldURL)
}

func (m *Model) closeSettings() {
	m.urlInput.Blur()
	m.selectorInput.Blur()
	m.session = listView
}

func (m *Model) submitSettings() tea.Cmd {
	m.state = app.ApplySettings(m.state, scraper.Submission{
		ListingURL:      m.urlInput.Value(),
		ListingSelector: m.selectorInput.Value(),
		DarkMode:        m.darkMode,
	})
	m.closeSettings()
	m.applyTheme()
	return m.reload()
}

func (m *Model) setFocus(field int) tea.Cmd {
	m.focus = field
	m.urlInput.Blur()
	m.selectorInput.Blur()
	switch field {
	case fieldURL:
		return m.urlInput.Focus()
	case fieldSelector:
		return m.selectorInput.Focus()
	}
	return nil
}

func (m *Model) moveCursor(delta int) {
	if len(m.cards) == 0 {
		return
	}
	m.cursor = max(0, min(len(m.cards)-1, m.cursor+delta))
	m.renderList()
}

func (m *Model) pageSize() int {
	return max(1, m.list.Height/cardStride)
}

// cardAt maps a screen row to the card drawn there.
func (m *Model) cardAt(y int) (int, bool) {
	line := y - headerHeight
	if line < 0 || line >= m.list.Height {
		return 0, false
	}
	line += m.list.YOffset
	index := line / cardStride
	if line%cardStride >= cardHeight || index >= len(m.cards) {
		return 0, false
	}
	return index, true
}

func (m *Model) applyTheme() {
	m.styles = newStyles(NewTheme(m.state.Config.DarkMode))
	m.renderList()
	m.renderDetail()
}

func (m *Model) resize() {
	m.list.Width = m.width
	m.list.Height = max(1, m.height-headerHeight-footerHeight)
	m.detailPane.Width = max(10, m.overlayWidth()-4)
	m.detailPane.Height = max(1, m.list.Height*9/10-4)
	m.help.Width = m.width
	m.renderList()
	m.renderDetail()
}

func (m *Model) overlayWidth() int {
	return m.width * 9 / 10
}
