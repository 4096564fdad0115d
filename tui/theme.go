package tui

import (
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Theme holds the colours for one of the two display modes.
type Theme struct {
	Window lipgloss.Color
	Card   lipgloss.Color
	Text   lipgloss.Color
	Accent lipgloss.Color
}

// NewTheme returns the dark or light theme.
func NewTheme(dark bool) Theme {
	if dark {
		return Theme{
			Window: lipgloss.Color("#1a1a1a"),
			Card:   lipgloss.Color("#333333"),
			Text:   lipgloss.Color("#ffffff"),
			Accent: lipgloss.Color("#4fa3ff"),
		}
	}
	return Theme{
		Window: lipgloss.Color("#ffffff"),
		Card:   lipgloss.Color("#e6e6e6"),
		Text:   lipgloss.Color("#000000"),
		Accent: lipgloss.Color("#0060c0"),
	}
}

// ContrastText picks white text for backgrounds whose red channel is below
// one half, black otherwise.
func ContrastText(bg lipgloss.Color) lipgloss.Color {
	c, err := colorful.Hex(string(bg))
	if err != nil || c.R < 0.5 {
		return lipgloss.Color("#ffffff")
	}
	return lipgloss.Color("#000000")
}

// styles are the lipgloss styles derived from a theme.
type styles struct {
	window       lipgloss.Style
	header       lipgloss.Style
	card         lipgloss.Style
	selectedCard lipgloss.Style
	overlay      lipgloss.Style
	heading      lipgloss.Style
	label        lipgloss.Style
	focused      lipgloss.Style
	text         lipgloss.Style
}

func newStyles(t Theme) styles {
	cardText := ContrastText(t.Card)

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Card).
		Background(t.Card).
		Foreground(cardText).
		Padding(0, 1)

	return styles{
		window: lipgloss.NewStyle().
			Background(t.Window).
			Foreground(t.Text),
		header: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Text).
			Background(t.Window),
		card:         card,
		selectedCard: card.BorderForeground(t.Accent),
		overlay: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Accent).
			Background(t.Window).
			Foreground(t.Text).
			Padding(0, 1),
		heading: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Accent),
		label: lipgloss.NewStyle().
			Foreground(t.Text),
		focused: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Accent),
		text: lipgloss.NewStyle().
			Foreground(t.Text),
	}
}
