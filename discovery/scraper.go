package discovery

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/pevans/newscards/newsfeed"
	"github.com/pevans/newscards/scraper"
	"golang.org/x/net/html"
)

// DetailNotFound is returned by ExtractDetail when the page has no article
// container.
const DetailNotFound = "Detay bulunamadı."

// parse builds a document from raw HTML. The HTML parser recovers from
// malformed markup, so a failure here only means the reader itself broke;
// an empty document is returned in that case.
func parse(text string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return goquery.NewDocumentFromNode(&html.Node{Type: html.DocumentNode})
	}
	return doc
}

// normalize trims text and collapses runs of whitespace to a single space.
func normalize(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// ResolveLink makes href absolute. Anything not starting with "http" is
// treated as relative and prefixed with base.
func ResolveLink(href, base string) string {
	if strings.HasPrefix(href, "http") {
		return href
	}
	return base + href
}

// ExtractListing returns one item per element matching selector, in document
// order. Elements without text or without an href are skipped. An invalid
// selector matches nothing.
func ExtractListing(page, selector, base string) []newsfeed.NewsItem {
	doc := parse(page)

	items := []newsfeed.NewsItem{}
	doc.Find(selector).Each(func(i int, s *goquery.Selection) {
		title := normalize(s.Text())
		href, _ := s.Attr("href")
		href = strings.TrimSpace(href)
		if title == "" || href == "" {
			return
		}

		items = append(items, newsfeed.NewsItem{
			Title: title,
			URL:   ResolveLink(href, base),
		})
	})

	return items
}

// ExtractDetail collects the paragraphs of the first article container,
// joins them with a blank line and truncates the result to
// scraper.MaxDetailLength characters.
func ExtractDetail(page string) string {
	doc := parse(page)

	container := doc.Find(scraper.DetailSelector).First()
	if container.Length() == 0 {
		return DetailNotFound
	}

	paragraphs := []string{}
	container.Find("p").Each(func(i int, s *goquery.Selection) {
		if text := normalize(s.Text()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})

	return truncate(strings.Join(paragraphs, "\n\n"), scraper.MaxDetailLength)
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// ValidateSelector reports whether selector compiles. Extraction never
// depends on this; it exists so callers can warn about a selector that will
// match nothing.
func ValidateSelector(selector string) error {
	if _, err := cascadia.ParseGroup(selector); err != nil {
		return fmt.Errorf("invalid selector %q: %w", selector, err)
	}
	return nil
}
