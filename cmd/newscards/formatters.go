package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/pevans/newscards/app"
	"github.com/pevans/newscards/newsfeed"
)

// printListTable prints items in human-readable numbered form
func printListTable(feed newsfeed.Feed, width int) {
	if feed.Len() == 0 {
		fmt.Println("No items to display.")
		return
	}

	for i, item := range feed.Items {
		line := fmt.Sprintf("%d. %s", i+1, item.Title)
		if width > 0 {
			line = ansi.Truncate(line, width, "...")
		}

		fmt.Println(line)
		if item.URL != "" {
			fmt.Printf("   %s\n", item.URL)
		}
	}
}

// printListJSON prints items in JSON format
func printListJSON(feed newsfeed.Feed) {
	output := map[string]any{
		"generation": feed.Generation,
		"items":      feed.Items,
		"total":      feed.Len(),
	}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to marshal JSON: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(string(data))
}

// printDetail prints an article's title and wrapped text
func printDetail(detail app.Detail, width int) {
	fmt.Println(detail.Title)
	fmt.Println(strings.Repeat("=", min(width, len([]rune(detail.Title)))))
	fmt.Println()

	paragraphs := strings.Split(detail.Text, "\n\n")
	for i, p := range paragraphs {
		if i > 0 {
			fmt.Println()
		}
		fmt.Println(wrapText(p, width))
	}
}

// wrapText wraps text to a maximum line width
func wrapText(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return text
	}

	var lines []string
	var currentLine strings.Builder

	for _, word := range words {
		if currentLine.Len() == 0 {
			currentLine.WriteString(word)
		} else if len([]rune(currentLine.String()))+1+len([]rune(word)) <= width {
			currentLine.WriteString(" ")
			currentLine.WriteString(word)
		} else {
			lines = append(lines, currentLine.String())
			currentLine.Reset()
			currentLine.WriteString(word)
		}
	}

	if currentLine.Len() > 0 {
		lines = append(lines, currentLine.String())
	}

	return strings.Join(lines, "\n")
}
