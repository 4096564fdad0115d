package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/pevans/newscards/app"
	"github.com/pevans/newscards/newsfeed"
	"github.com/pevans/newscards/scraper"
)

// feedLoadedMsg is emitted after a listing reload.
type feedLoadedMsg struct {
	token uuid.UUID
	feed  newsfeed.Feed
}

// detailLoadedMsg is emitted after a detail page has been fetched.
type detailLoadedMsg struct {
	token  uuid.UUID
	detail app.Detail
}

// reloadCmd fetches the listing described by cfg.
func reloadCmd(ctx context.Context, f app.Fetcher, cfg scraper.SourceConfig, token uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		return feedLoadedMsg{
			token: token,
			feed:  app.LoadFeed(ctx, f, cfg),
		}
	}
}

// openDetailCmd fetches the article for one card.
func openDetailCmd(ctx context.Context, f app.Fetcher, feed newsfeed.Feed, c card, token uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		return detailLoadedMsg{
			token:  token,
			detail: app.OpenDetail(ctx, f, feed, c.generation, c.index),
		}
	}
}
