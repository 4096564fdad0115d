package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const appTitle = "📰 Haber Uygulaması"

func (m *Model) View() string {
	var body string
	switch m.session {
	case detailView:
		body = m.place(m.detailOverlay())
	case settingsView:
		body = m.place(m.settingsOverlay())
	default:
		body = m.list.View()
	}

	return m.styles.window.
		Width(m.width).
		Height(m.height).
		Render(lipgloss.JoinVertical(lipgloss.Left, m.headerView(), body, m.footerView()))
}

func (m *Model) headerView() string {
	line := "≡  " + appTitle
	if m.loading() {
		line += "  " + m.spinner.View()
	}
	return m.styles.header.Render(line) + "\n"
}

func (m *Model) footerView() string {
	switch m.session {
	case detailView:
		return m.help.View(overlayKeys(m.keys))
	case settingsView:
		return m.help.View(settingsKeys(m.keys))
	default:
		return m.help.View(listKeys(m.keys))
	}
}

// place centres an overlay in the area normally taken by the list.
func (m *Model) place(overlay string) string {
	return lipgloss.Place(
		m.width, m.list.Height,
		lipgloss.Center, lipgloss.Center,
		overlay,
		lipgloss.WithWhitespaceBackground(NewTheme(m.state.Config.DarkMode).Window),
	)
}

// renderList draws every card into the list viewport. All rows are rendered
// up front; the viewport only scrolls.
func (m *Model) renderList() {
	cardWidth := max(4, m.width-2)
	textWidth := max(1, cardWidth-2)

	rows := make([]string, 0, len(m.cards))
	for i, c := range m.cards {
		style := m.styles.card
		if i == m.cursor {
			style = m.styles.selectedCard
		}
		label := ansi.Truncate(c.label(), textWidth, "…")
		rows = append(rows, style.Width(cardWidth).Render(label))
	}

	m.list.SetContent(strings.Join(rows, "\n\n"))
	m.ensureCursorVisible()
}

func (m *Model) ensureCursorVisible() {
	if len(m.cards) == 0 {
		return
	}
	top := m.cursor * cardStride
	bottom := top + cardHeight
	switch {
	case top < m.list.YOffset:
		m.list.SetYOffset(top)
	case bottom > m.list.YOffset+m.list.Height:
		m.list.SetYOffset(bottom - m.list.Height)
	}
}

func (m *Model) renderDetail() {
	wrapped := m.styles.text.Width(m.detailPane.Width).Render(m.detail.Text)
	m.detailPane.SetContent(wrapped)
}

func (m *Model) detailOverlay() string {
	width := m.detailPane.Width
	heading := m.styles.heading.Render(ansi.Truncate(m.detail.Title, width, "…"))

	content := m.detailPane.View()
	if m.detailReq.pending() {
		content = m.spinner.View()
	}

	return m.styles.overlay.
		Width(width + 2).
		Render(heading + "\n\n" + content)
}

func (m *Model) settingsOverlay() string {
	field := func(index int, label string) string {
		if m.focus == index {
			return m.styles.focused.Render(label)
		}
		return m.styles.label.Render(label)
	}

	toggle := "[ ] Karanlık Mod"
	if m.darkMode {
		toggle = "[x] Karanlık Mod"
	}

	lines := []string{
		m.styles.heading.Render("Ayarlar"),
		"",
		field(fieldURL, "Haber Sayfası:"),
		m.urlInput.View(),
		"",
		field(fieldSelector, "CSS Seçici:"),
		m.selectorInput.View(),
		"",
		field(fieldDark, toggle),
		"",
		field(fieldSubmit, "[ Yükle ]"),
	}

	return m.styles.overlay.
		Width(max(10, m.overlayWidth()-2)).
		Render(strings.Join(lines, "\n"))
}
