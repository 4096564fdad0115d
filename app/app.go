// Package app holds the reader's state and the operations that move it
// forward: reloading the listing, applying settings and opening an item.
package app

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/pevans/newscards/discovery"
	"github.com/pevans/newscards/newsfeed"
	"github.com/pevans/newscards/scraper"
)

// DetailErrorPrefix starts the text shown when a detail page could not be
// fetched.
const DetailErrorPrefix = "Detay alınamadı: "

// Fetcher retrieves a page body.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// State is everything the reader knows: where to scrape and what it found
// last time.
type State struct {
	Config scraper.SourceConfig
	Feed   newsfeed.Feed
}

// NewState creates a state for cfg with an empty feed.
func NewState(cfg scraper.SourceConfig) State {
	return State{
		Config: cfg,
		Feed:   newsfeed.NewFeed(nil),
	}
}

// Detail is the content shown when an item is opened.
type Detail struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// Reload fetches the listing page for st.Config and returns st with its feed
// replaced. A failed fetch yields a feed holding one placeholder item.
func Reload(ctx context.Context, f Fetcher, st State) State {
	st.Feed = LoadFeed(ctx, f, st.Config)
	return st
}

// LoadFeed fetches and extracts the listing described by cfg.
func LoadFeed(ctx context.Context, f Fetcher, cfg scraper.SourceConfig) newsfeed.Feed {
	body, err := f.Fetch(ctx, cfg.ListingURL)
	if err != nil {
		log.Printf("ERROR: Failed to load listing %s: %v", cfg.ListingURL, err)
		return newsfeed.ErrorFeed(err)
	}

	items := discovery.ExtractListing(body, cfg.ListingSelector, cfg.LinkBase())
	log.Printf("INFO: Loaded %d items from %s", len(items), cfg.ListingURL)
	return newsfeed.NewFeed(items)
}

// ApplySettings returns st with its configuration updated from a settings
// submission. The feed is left alone; callers reload afterwards.
func ApplySettings(st State, sub scraper.Submission) State {
	st.Config = st.Config.Apply(sub)
	if err := discovery.ValidateSelector(st.Config.ListingSelector); err != nil {
		log.Printf("WARN: %v", err)
	}
	return st
}

// OpenDetail fetches and extracts the article behind item index of the feed
// identified by generation. Lookups that cannot be satisfied (stale
// generation, bad index, an item without a link) are answered without any
// network I/O.
func OpenDetail(ctx context.Context, f Fetcher, feed newsfeed.Feed, generation uuid.UUID, index int) Detail {
	item, err := feed.Get(generation, index)
	if err != nil {
		return Detail{Text: DetailErrorPrefix + err.Error()}
	}

	detail := Detail{Title: item.Title}
	if item.URL == "" {
		detail.Text = discovery.DetailNotFound
		return detail
	}

	body, err := f.Fetch(ctx, item.URL)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			log.Printf("ERROR: Failed to load detail %s: %v", item.URL, err)
		}
		detail.Text = DetailErrorPrefix + err.Error()
		return detail
	}

	detail.Text = discovery.ExtractDetail(body)
	return detail
}
