package newsfeed

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// NewsItem is a single headline scraped from a listing page.
type NewsItem struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// ErrorTitlePrefix starts the title of the placeholder item shown when a
// listing could not be fetched.
const ErrorTitlePrefix = "Hata: "

var (
	// ErrStaleGeneration is returned when an index is used against a feed
	// other than the one it was taken from.
	ErrStaleGeneration = errors.New("feed has been reloaded")

	// ErrIndexOutOfRange is returned for an index outside the feed.
	ErrIndexOutOfRange = errors.New("index out of range")
)

// Feed is the ordered set of headlines from one reload. It is replaced
// wholesale, never edited; Generation identifies which reload produced it.
type Feed struct {
	Generation uuid.UUID  `json:"generation"`
	Items      []NewsItem `json:"items"`
}

// NewFeed creates a feed holding items in the given order under a fresh
// generation.
func NewFeed(items []NewsItem) Feed {
	if items == nil {
		items = []NewsItem{}
	}
	return Feed{
		Generation: uuid.New(),
		Items:      items,
	}
}

// ErrorFeed creates a feed with a single placeholder item describing err, so
// a failed reload still has a row to render.
func ErrorFeed(err error) Feed {
	return NewFeed([]NewsItem{{
		Title: ErrorTitlePrefix + err.Error(),
		URL:   "",
	}})
}

// Len returns the number of items.
func (f Feed) Len() int {
	return len(f.Items)
}

// Get returns the item at index, provided generation still matches the feed.
func (f Feed) Get(generation uuid.UUID, index int) (NewsItem, error) {
	if generation != f.Generation {
		return NewsItem{}, ErrStaleGeneration
	}
	if index < 0 || index >= len(f.Items) {
		return NewsItem{}, fmt.Errorf("%w: %d (feed has %d items)", ErrIndexOutOfRange, index, len(f.Items))
	}
	return f.Items[index], nil
}
